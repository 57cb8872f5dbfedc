// Package handlers holds HTTP handlers that do not belong to a domain
// package of their own.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nordlys-ai/assistant-platform/internal/compliance"
	"github.com/nordlys-ai/assistant-platform/internal/observability/metrics"
	"github.com/nordlys-ai/assistant-platform/internal/sanitize"
	"github.com/nordlys-ai/assistant-platform/pkg/logging"
)

// SanitizeHandler exposes the sanitization engine directly, for operator
// tooling and for callers outside the chat pipeline.
type SanitizeHandler struct {
	sanitizer *sanitize.Sanitizer
	metrics   *metrics.SanitizerMetrics
	logger    *logging.Logger
}

// NewSanitizeHandler creates the handler. Metrics is optional.
func NewSanitizeHandler(sanitizer *sanitize.Sanitizer, m *metrics.SanitizerMetrics, logger *logging.Logger) *SanitizeHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SanitizeHandler{
		sanitizer: sanitizer,
		metrics:   m,
		logger:    logger,
	}
}

type sanitizeRequest struct {
	Text string `json:"text"`
}

type sanitizeResponse struct {
	SanitizedText string   `json:"sanitizedText"`
	Warnings      []string `json:"warnings"`
	ContainsPII   bool     `json:"containsPii"`
}

// Sanitize handles POST /api/sanitize.
func (h *SanitizeHandler) Sanitize(w http.ResponseWriter, r *http.Request) {
	var req sanitizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode sanitize request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	res := h.sanitizer.Sanitize(req.Text)
	h.metrics.ObserveSanitizeLatency(time.Since(start).Seconds())
	for _, c := range res.Categories {
		h.metrics.ObserveDetection(c, compliance.ChannelChatInput)
	}

	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sanitizeResponse{
		SanitizedText: res.SanitizedText,
		Warnings:      warnings,
		ContainsPII:   res.ContainsPII(),
	}); err != nil {
		h.logger.Error("failed to write sanitize response", "error", err)
	}
}
