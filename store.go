// store.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MessageStore is an optional append-only audit log of inbound and
// outbound traffic. All methods are nil-safe so the bot runs without a
// database when DATABASE_URL is unset; logging failures never abort
// message handling.
type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	if db == nil {
		return nil
	}
	return &MessageStore{db: db}
}

const createMessagesTable = `
CREATE TABLE IF NOT EXISTS messages (
    id         BIGSERIAL PRIMARY KEY,
    direction  TEXT NOT NULL,
    psid       TEXT NOT NULL,
    mid        TEXT,
    body       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Init creates the messages table if it doesn't exist yet.
func (s *MessageStore) Init(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, createMessagesTable); err != nil {
		return fmt.Errorf("error creating messages table: %v", err)
	}
	return nil
}

// LogInbound records a user message.
func (s *MessageStore) LogInbound(ctx context.Context, psid, mid, body string) {
	s.insert(ctx, "in", psid, mid, body)
}

// LogOutbound records a reply we sent.
func (s *MessageStore) LogOutbound(ctx context.Context, psid, body string) {
	s.insert(ctx, "out", psid, "", body)
}

func (s *MessageStore) insert(ctx context.Context, direction, psid, mid, body string) {
	if s == nil {
		return
	}

	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(queryCtx,
		"INSERT INTO messages (direction, psid, mid, body) VALUES ($1, $2, $3, $4)",
		direction, psid, mid, body)
	if err != nil {
		LogWarn("could not log %s message for %s: %v", direction, psid, err)
	}
}
