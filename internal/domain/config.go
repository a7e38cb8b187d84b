package domain

// KeyPrefix namespaces every Atlas key in the store.
const KeyPrefix = "atlas:"

// BusinessKey returns the hash key for a business record.
func BusinessKey(tenantID, businessID string) string {
	return KeyPrefix + "biz:" + tenantID + ":" + businessID
}

// FactKey returns the hash key for an indexed business fact.
func FactKey(tenantID, factID string) string {
	return KeyPrefix + "fact:" + tenantID + ":" + factID
}

// TenantKey returns the hash key for a tenant configuration.
func TenantKey(tenantID string) string {
	return KeyPrefix + "tenant:" + tenantID
}

// Index names for the FT.SEARCH indexes over businesses and facts.
const (
	BusinessIndex = KeyPrefix + "biz:idx"
	FactIndex     = KeyPrefix + "fact:idx"
)

// VectorConfig holds internal vectorization settings for fact embeddings.
type VectorConfig struct {
	Model               string
	Dimensions          int
	DistanceMetric      string
	Algorithm           string
	DocumentInstruction string
	QueryInstruction    string
}

// DefaultVectorConfig returns the default configuration tuned for Qwen3-Embedding-8B.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:               "Qwen3-Embedding-8B",
		Dimensions:          1024,
		DistanceMetric:      "cosine",
		Algorithm:           "hnsw",
		DocumentInstruction: "Represent this business fact for semantic search",
		QueryInstruction:    "Represent this query for retrieving similar business facts",
	}
}
