package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/loganlanou/laserwood/storage/db"
	"github.com/oklog/ulid/v2"
)

// RecordedResponse is the reply given the first time a checkout session was fulfilled.
type RecordedResponse struct {
	EventID    string
	StatusCode int
	Body       []byte
}

// WebhookLedger remembers which checkout sessions have been fulfilled so repeat
// deliveries of the same event are answered without fulfilling twice.
type WebhookLedger struct {
	queries *db.Queries
}

func NewWebhookLedger(queries *db.Queries) *WebhookLedger {
	return &WebhookLedger{queries: queries}
}

// WebhookLedger returns a ledger backed by this database.
func (s *Storage) WebhookLedger() *WebhookLedger {
	return NewWebhookLedger(s.Queries)
}

// Lookup returns the recorded response for sessionID, if any.
func (l *WebhookLedger) Lookup(ctx context.Context, sessionID string) (*RecordedResponse, bool, error) {
	row, err := l.queries.GetWebhookEventBySession(ctx, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup webhook event: %w", err)
	}
	return &RecordedResponse{
		EventID:    row.EventID,
		StatusCode: int(row.StatusCode),
		Body:       []byte(row.Response),
	}, true, nil
}

// Record stores the response for sessionID. The first record wins; it reports whether
// this call inserted.
func (l *WebhookLedger) Record(ctx context.Context, sessionID, eventID, eventType string, status int, body []byte) (bool, error) {
	n, err := l.queries.CreateWebhookEvent(ctx, db.CreateWebhookEventParams{
		ID:         ulid.Make().String(),
		SessionID:  sessionID,
		EventID:    eventID,
		EventType:  eventType,
		StatusCode: int64(status),
		Response:   string(body),
	})
	if err != nil {
		return false, fmt.Errorf("record webhook event: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of fulfilled sessions on record.
func (l *WebhookLedger) Count(ctx context.Context) (int64, error) {
	return l.queries.CountWebhookEvents(ctx)
}
