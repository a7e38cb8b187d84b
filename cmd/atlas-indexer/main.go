// atlas-indexer ingests business records and knowledge facts into the
// search store. Reads JSON-lines files, embeds fact content in batches,
// and creates the FT indexes on first run.
//
// Usage:
//
//	atlas-indexer -tenant acme -businesses businesses.jsonl -facts facts.jsonl
//
// Env vars:
//
//	VALKEY_ADDR      — store address (default: localhost:6379)
//	VALKEY_PASSWORD  — store password
//	OPENAI_API_KEY   — embedding provider API key
//	OPENAI_BASE_URL  — embedding provider base URL (optional)
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	dbRedis "github.com/kailas-cloud/atlas/internal/db/redis"
	"github.com/kailas-cloud/atlas/internal/domain"
	"github.com/kailas-cloud/atlas/internal/domain/business"
	"github.com/kailas-cloud/atlas/internal/domain/geo"
	"github.com/kailas-cloud/atlas/internal/domain/tenant"
	"github.com/kailas-cloud/atlas/internal/domain/tier"
	candidaterepo "github.com/kailas-cloud/atlas/internal/repository/candidate"
	knowledgerepo "github.com/kailas-cloud/atlas/internal/repository/knowledge"
	tenantrepo "github.com/kailas-cloud/atlas/internal/repository/tenantconfig"
	openaiTransport "github.com/kailas-cloud/atlas/internal/transport/openai"
)

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Fatal(err)
	}
}

type config struct {
	tenant         string
	businessesPath string
	factsPath      string
	batchSize      int
	dimensions     int
	model          string
	instruction    string
	hnswM          int
	hnswEF         int
	minRating      float64
	maxResults     int
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.tenant, "tenant", "", "tenant id to ingest under (required)")
	flag.StringVar(&cfg.businessesPath, "businesses", "", "JSON-lines file of business records")
	flag.StringVar(&cfg.factsPath, "facts", "", "JSON-lines file of knowledge facts")
	flag.IntVar(&cfg.batchSize, "batch-size", 64, "facts per embedding batch")
	flag.IntVar(&cfg.dimensions, "dimensions", 1024, "embedding vector dimensions")
	flag.StringVar(&cfg.model, "model", "Qwen/Qwen3-Embedding-8B", "embedding model")
	flag.StringVar(&cfg.instruction, "instruction", "", "document instruction prefix for fact embeddings")
	flag.IntVar(&cfg.hnswM, "hnsw-m", 32, "HNSW M parameter for the fact index")
	flag.IntVar(&cfg.hnswEF, "hnsw-ef", 400, "HNSW EF_CONSTRUCTION parameter for the fact index")
	flag.Float64Var(&cfg.minRating, "min-rating", -1, "tenant minimum rating override (-1 = leave unset)")
	flag.IntVar(&cfg.maxResults, "max-results", 0, "tenant max results override (0 = leave unset)")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg config) error {
	if cfg.tenant == "" {
		return fmt.Errorf("-tenant is required")
	}
	if cfg.businessesPath == "" && cfg.factsPath == "" {
		return fmt.Errorf("nothing to do: pass -businesses and/or -facts")
	}

	start := time.Now()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    []string{env("VALKEY_ADDR", "localhost:6379")},
		Password: env("VALKEY_PASSWORD", ""),
	})
	if err != nil {
		return fmt.Errorf("store connect: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, 10*time.Second); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	if cfg.minRating >= 0 || cfg.maxResults > 0 {
		tcfg := tenant.New(max(cfg.minRating, 0), cfg.maxResults)
		if err := tenantrepo.NewWriter(store).Set(ctx, cfg.tenant, tcfg); err != nil {
			return err
		}
		log.Printf("tenant %s config set: min_rating=%g max_results=%d",
			cfg.tenant, tcfg.MinRating(), tcfg.MaxResults())
	}

	var businesses, facts int

	if cfg.businessesPath != "" {
		businesses, err = loadBusinesses(ctx, store, cfg)
		if err != nil {
			return err
		}
	}

	if cfg.factsPath != "" {
		facts, err = loadFacts(ctx, store, cfg)
		if err != nil {
			return err
		}
	}

	log.Printf("DONE in %s: %d businesses, %d facts",
		time.Since(start).Round(time.Second), businesses, facts)
	return nil
}

// businessRecord is one JSON line of the businesses file.
type businessRecord struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Tier   string  `json:"tier"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

func loadBusinesses(ctx context.Context, store *dbRedis.Store, cfg config) (int, error) {
	log.Println("=== Businesses ===")

	writer := candidaterepo.NewWriter(store)
	if err := writer.EnsureIndex(ctx); err != nil {
		return 0, err
	}

	var batch []business.Candidate
	total := 0

	err := forEachLine(cfg.businessesPath, func(line []byte) error {
		var rec businessRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("business line %d: %w", total+1, err)
		}
		if rec.ID == "" {
			return fmt.Errorf("business line %d: missing id", total+1)
		}

		batch = append(batch, business.New(
			rec.ID, rec.Name, rec.Rating,
			tier.Parse(rec.Tier),
			geo.Coordinate{Lat: rec.Lat, Lng: rec.Lng},
		))
		total++

		if len(batch) >= cfg.batchSize {
			if err := writer.UpsertBatch(ctx, cfg.tenant, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
		return nil
	})
	if err != nil {
		return total, err
	}

	if err := writer.UpsertBatch(ctx, cfg.tenant, batch); err != nil {
		return total, err
	}
	log.Printf("businesses done: %d loaded", total)
	return total, nil
}

// factRecord is one JSON line of the facts file.
type factRecord struct {
	BusinessID string `json:"businessId"`
	Content    string `json:"content"`
}

func loadFacts(ctx context.Context, store *dbRedis.Store, cfg config) (int, error) {
	log.Println("=== Facts ===")

	embedder := newEmbedder(cfg)
	writer := knowledgerepo.NewWriter(store, cfg.dimensions).
		WithHNSW(cfg.hnswM, cfg.hnswEF)
	if err := writer.EnsureIndex(ctx); err != nil {
		return 0, err
	}

	var batch []factRecord
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := embedAndUpsert(ctx, embedder, writer, cfg.tenant, batch); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	lines := 0
	err := forEachLine(cfg.factsPath, func(line []byte) error {
		var rec factRecord
		lines++
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("fact line %d: %w", lines, err)
		}
		if rec.BusinessID == "" || rec.Content == "" {
			return fmt.Errorf("fact line %d: missing businessId or content", lines)
		}

		batch = append(batch, rec)
		if len(batch) >= cfg.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return total, err
	}

	if err := flush(); err != nil {
		return total, err
	}
	log.Printf("facts done: %d loaded", total)
	return total, nil
}

func embedAndUpsert(
	ctx context.Context,
	embedder domain.Embedder,
	writer *knowledgerepo.Writer,
	tenantID string,
	batch []factRecord,
) error {
	texts := make([]string, len(batch))
	for i, rec := range batch {
		texts[i] = rec.Content
	}

	res, err := embedBatch(ctx, embedder, texts)
	if err != nil {
		return fmt.Errorf("embed facts: %w", err)
	}

	facts := make([]knowledgerepo.Fact, len(batch))
	for i, rec := range batch {
		facts[i] = knowledgerepo.Fact{
			ID:         uuid.NewString(),
			BusinessID: rec.BusinessID,
			Content:    rec.Content,
			Vector:     res.Embeddings[i],
		}
	}
	return writer.UpsertBatch(ctx, tenantID, facts)
}

// embedBatch uses the provider's native batch endpoint when it has one.
func embedBatch(ctx context.Context, e domain.Embedder, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := e.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, e, texts)
}

func newEmbedder(cfg config) domain.Embedder {
	var embedder domain.Embedder = openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     os.Getenv("OPENAI_API_KEY"),
		BaseURL:    os.Getenv("OPENAI_BASE_URL"),
		Model:      cfg.model,
		Dimensions: cfg.dimensions,
		Provider:   "openai",
	})
	if cfg.instruction != "" {
		embedder = domain.NewInstructionEmbedder(embedder, cfg.instruction)
	}
	return embedder
}

func forEachLine(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
