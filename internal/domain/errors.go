package domain

import "errors"

var (
	// ErrEmptyQuery signals a missing or blank query text.
	ErrEmptyQuery = errors.New("empty query text")
	// ErrUnknownTenant signals a tenant id no resolver vouched for.
	ErrUnknownTenant = errors.New("unknown tenant")
	// ErrKnowledgeSearch signals a knowledge store failure.
	ErrKnowledgeSearch = errors.New("knowledge search failed")
	// ErrCandidateFetch signals a scoped candidate fetch failure.
	ErrCandidateFetch = errors.New("candidate fetch failed")
	// ErrModelUnavailable signals a missing or offline language model.
	ErrModelUnavailable = errors.New("language model unavailable")
	// ErrMalformedModelOutput signals a model response that failed validation.
	ErrMalformedModelOutput = errors.New("malformed model output")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
)
