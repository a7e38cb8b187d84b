package db

// KNNQuery is the input for vector similarity search. Filter, when
// non-empty, is a prefilter expression in FT.SEARCH syntax applied before
// the KNN clause (callers are responsible for escaping).
type KNNQuery struct {
	IndexName    string
	Filter       string
	Vector       []float32
	K            int
	ReturnFields []string
}

// FilterQuery is the input for a plain filtered FT.SEARCH (no vector).
type FilterQuery struct {
	IndexName    string
	Query        string
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
