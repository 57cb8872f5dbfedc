// Package knowledge provides access to external knowledge sources and
// guarantees that retrieved content is sanitized before it can reach a
// model prompt.
package knowledge

import (
	"context"

	"github.com/nordlys-ai/assistant-platform/internal/compliance"
	"github.com/nordlys-ai/assistant-platform/internal/observability/metrics"
	"github.com/nordlys-ai/assistant-platform/internal/sanitize"
	"github.com/nordlys-ai/assistant-platform/pkg/logging"
)

// Snippet is one piece of retrieved knowledge content.
type Snippet struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Retriever searches an external knowledge source. Implementations wrap
// whatever backend serves the content (knowledge base, SharePoint, legal
// reference lookup).
type Retriever interface {
	Search(ctx context.Context, query string, limit int) ([]Snippet, error)
}

// SafeRetriever decorates a Retriever and masks sensitive identifiers in
// every returned snippet. Retrieval callers never see unsanitized content.
type SafeRetriever struct {
	inner     Retriever
	sanitizer *sanitize.Sanitizer
	audit     *compliance.AuditService
	metrics   *metrics.SanitizerMetrics
	logger    *logging.Logger
}

// NewSafeRetriever wraps inner with sanitization. Audit and metrics are
// optional.
func NewSafeRetriever(inner Retriever, sanitizer *sanitize.Sanitizer, audit *compliance.AuditService, m *metrics.SanitizerMetrics, logger *logging.Logger) *SafeRetriever {
	if logger == nil {
		logger = logging.Default()
	}
	return &SafeRetriever{
		inner:     inner,
		sanitizer: sanitizer,
		audit:     audit,
		metrics:   m,
		logger:    logger,
	}
}

// Search retrieves snippets from the wrapped source and sanitizes each one.
func (r *SafeRetriever) Search(ctx context.Context, query string, limit int) ([]Snippet, error) {
	snippets, err := r.inner.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	for i := range snippets {
		res := r.sanitizer.Sanitize(snippets[i].Content)
		if !res.ContainsPII() {
			continue
		}
		snippets[i].Content = res.SanitizedText
		for _, c := range res.Categories {
			r.metrics.ObserveDetection(c, compliance.ChannelKnowledgeSnippet)
		}
		r.logger.Warn("masked sensitive identifiers in retrieved snippet",
			"source", snippets[i].Source,
			"categories", res.Categories,
		)
		if r.audit != nil {
			if err := r.audit.LogPIIDetected(ctx, "", compliance.ChannelKnowledgeSnippet, snippets[i].Source, res.Categories); err != nil {
				r.logger.Error("failed to record knowledge audit event", "error", err)
			}
		}
	}
	return snippets, nil
}
