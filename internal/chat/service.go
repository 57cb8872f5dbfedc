// Package chat implements the chat-turn pipeline: user input is sanitized,
// enriched with retrieved knowledge and forwarded to the model. Only
// sanitized text ever leaves the service.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nordlys-ai/assistant-platform/internal/compliance"
	"github.com/nordlys-ai/assistant-platform/internal/knowledge"
	"github.com/nordlys-ai/assistant-platform/internal/observability/metrics"
	"github.com/nordlys-ai/assistant-platform/internal/sanitize"
	"github.com/nordlys-ai/assistant-platform/pkg/logging"
)

// MessageRequest is one user chat turn.
type MessageRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

// MessageResponse is the assistant reply for one turn. Notices carries the
// sanitizer warnings so the frontend can tell the user what was masked.
type MessageResponse struct {
	ConversationID string   `json:"conversationId"`
	Reply          string   `json:"reply"`
	Notices        []string `json:"notices,omitempty"`
}

// Service runs the sanitize-retrieve-complete pipeline for a chat turn.
type Service struct {
	model        ModelClient
	retriever    knowledge.Retriever
	sanitizer    *sanitize.Sanitizer
	audit        *compliance.AuditService
	metrics      *metrics.SanitizerMetrics
	logger       *logging.Logger
	systemPrompt string
	maxSnippets  int
}

// ServiceConfig holds the service dependencies. Retriever, Audit and
// Metrics are optional.
type ServiceConfig struct {
	Model        ModelClient
	Retriever    knowledge.Retriever
	Sanitizer    *sanitize.Sanitizer
	Audit        *compliance.AuditService
	Metrics      *metrics.SanitizerMetrics
	Logger       *logging.Logger
	SystemPrompt string
	MaxSnippets  int
}

// NewService creates a chat service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	sanitizer := cfg.Sanitizer
	if sanitizer == nil {
		sanitizer = sanitize.New(logger)
	}
	maxSnippets := cfg.MaxSnippets
	if maxSnippets <= 0 {
		maxSnippets = 4
	}
	return &Service{
		model:        cfg.Model,
		retriever:    cfg.Retriever,
		sanitizer:    sanitizer,
		audit:        cfg.Audit,
		metrics:      cfg.Metrics,
		logger:       logger,
		systemPrompt: cfg.SystemPrompt,
		maxSnippets:  maxSnippets,
	}
}

// ProcessMessage handles one chat turn. The user message is sanitized before
// anything else happens; the model only ever sees the masked text.
func (s *Service) ProcessMessage(ctx context.Context, req MessageRequest) (MessageResponse, error) {
	start := time.Now()
	res := s.sanitizer.Sanitize(req.Message)
	s.metrics.ObserveSanitizeLatency(time.Since(start).Seconds())

	if res.ContainsPII() {
		for _, c := range res.Categories {
			s.metrics.ObserveDetection(c, compliance.ChannelChatInput)
		}
		if s.audit != nil {
			if err := s.audit.LogPIIDetected(ctx, req.ConversationID, compliance.ChannelChatInput, "", res.Categories); err != nil {
				s.logger.Error("failed to record audit event", "error", err, "conversation_id", req.ConversationID)
			}
		}
	}

	prompt := res.SanitizedText
	if s.retriever != nil {
		snippets, err := s.retriever.Search(ctx, res.SanitizedText, s.maxSnippets)
		if err != nil {
			// Retrieval is best-effort; answer without context.
			s.logger.Error("knowledge retrieval failed", "error", err, "conversation_id", req.ConversationID)
		} else if len(snippets) > 0 {
			prompt = buildPrompt(res.SanitizedText, snippets)
		}
	}

	reply, err := s.model.Complete(ctx, s.systemPrompt, prompt)
	if err != nil {
		return MessageResponse{}, fmt.Errorf("process message: %w", err)
	}

	return MessageResponse{
		ConversationID: req.ConversationID,
		Reply:          reply,
		Notices:        res.Warnings,
	}, nil
}

// buildPrompt appends retrieved context below the user question.
func buildPrompt(message string, snippets []knowledge.Snippet) string {
	var b strings.Builder
	b.WriteString(message)
	b.WriteString("\n\nRelevant kontekst:\n")
	for _, snip := range snippets {
		b.WriteString("- ")
		if snip.Title != "" {
			b.WriteString(snip.Title)
			b.WriteString(": ")
		}
		b.WriteString(snip.Content)
		b.WriteString("\n")
	}
	return b.String()
}
