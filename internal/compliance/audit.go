// Package compliance records regulatory audit events for operator review.
package compliance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditEventType represents the type of compliance event.
type AuditEventType string

const (
	// EventPIIDetected is logged when sensitive identifiers are masked in
	// user-supplied chat input.
	EventPIIDetected AuditEventType = "compliance.pii_detected"
	// EventKnowledgePIIDetected is logged when sensitive identifiers are
	// masked in content retrieved from a knowledge source.
	EventKnowledgePIIDetected AuditEventType = "compliance.knowledge_pii_detected"
)

// Channel names used in audit details and metrics labels.
const (
	ChannelChatInput        = "chat_input"
	ChannelKnowledgeSnippet = "knowledge_snippet"
)

// AuditEvent represents an immutable compliance audit record. The original
// text is never stored; only the detected categories and where they came
// from.
type AuditEvent struct {
	ID             string          `json:"id"`
	EventType      AuditEventType  `json:"event_type"`
	ConversationID string          `json:"conversation_id,omitempty"`
	Channel        string          `json:"channel"`
	Details        json.RawMessage `json:"details,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PIIDetails holds event-specific details for masked-identifier events.
type PIIDetails struct {
	Categories []string `json:"categories"`
	Source     string   `json:"source,omitempty"`
}

// AuditService persists compliance audit events.
type AuditService struct {
	db *sql.DB
}

// NewAuditService creates a new audit service.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// LogEvent records a compliance audit event.
func (s *AuditService) LogEvent(ctx context.Context, event AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO compliance_audit_events (
			id, event_type, conversation_id, channel, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		string(event.EventType),
		event.ConversationID,
		event.Channel,
		[]byte(event.Details),
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// LogPIIDetected records that identifiers of the given categories were
// masked on the given channel. Maps the channel to the matching event type.
func (s *AuditService) LogPIIDetected(ctx context.Context, conversationID, channel, source string, categories []string) error {
	details, err := json.Marshal(PIIDetails{Categories: categories, Source: source})
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	eventType := EventPIIDetected
	if channel == ChannelKnowledgeSnippet {
		eventType = EventKnowledgePIIDetected
	}

	return s.LogEvent(ctx, AuditEvent{
		EventType:      eventType,
		ConversationID: conversationID,
		Channel:        channel,
		Details:        details,
	})
}

// RecentEvents returns the most recent audit events, newest first.
func (s *AuditService) RecentEvents(ctx context.Context, limit int) ([]AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, event_type, conversation_id, channel, details, created_at
		FROM compliance_audit_events
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []AuditEvent
	for rows.Next() {
		var e AuditEvent
		var details []byte
		if err := rows.Scan(&e.ID, &e.EventType, &e.ConversationID, &e.Channel, &details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Details = details
		events = append(events, e)
	}
	return events, rows.Err()
}
