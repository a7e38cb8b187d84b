package knowledge

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/kailas-cloud/atlas/internal/db"
	"github.com/kailas-cloud/atlas/internal/domain"
)

// Fact is one indexable statement about a business.
type Fact struct {
	ID         string
	BusinessID string
	Content    string
	Vector     []float32
}

// writeStore is the consumer interface for fact ingestion.
type writeStore interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Writer ingests embedded facts for the knowledge index.
type Writer struct {
	store     writeStore
	vectorDim int
	hnswM     int
	hnswEF    int
}

// NewWriter creates a fact ingestion writer.
func NewWriter(s writeStore, vectorDim int) *Writer {
	return &Writer{store: s, vectorDim: vectorDim}
}

// WithHNSW overrides HNSW build parameters for the fact index.
func (w *Writer) WithHNSW(m, efConstruct int) *Writer {
	w.hnswM = m
	w.hnswEF = efConstruct
	return w
}

// UpsertBatch stores a batch of embedded facts for one tenant in a single
// pipelined round-trip.
func (w *Writer) UpsertBatch(ctx context.Context, tenantID string, facts []Fact) error {
	if len(facts) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(facts))
	for i, f := range facts {
		if len(f.Vector) != w.vectorDim {
			return fmt.Errorf("fact %s: vector dim %d, want %d", f.ID, len(f.Vector), w.vectorDim)
		}
		items[i] = db.HashSetItem{
			Key: domain.FactKey(tenantID, f.ID),
			Fields: map[string]string{
				"business_id": f.BusinessID,
				"tenant":      tenantID,
				"content":     f.Content,
				"vector":      vectorToBytes(f.Vector),
			},
		}
	}

	if err := w.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert facts %s: %w", tenantID, err)
	}
	return nil
}

// EnsureIndex creates the fact FT index if it does not exist yet.
func (w *Writer) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:        domain.FactIndex,
		StorageType: db.StorageHash,
		Prefixes:    []string{domain.KeyPrefix + "fact:"},
		Fields: []db.IndexField{
			{Name: "tenant", Type: db.IndexFieldTag},
			{Name: "business_id", Type: db.IndexFieldTag},
			{
				Name:              "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         w.vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           w.hnswM,
				VectorEFConstruct: w.hnswEF,
			},
		},
	}

	err := w.store.CreateIndex(ctx, def)
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create fact index: %w", err)
	}
	return nil
}

// vectorToBytes serializes a float32 vector to the little-endian blob
// RediSearch expects in hash vector fields.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
