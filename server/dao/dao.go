// Package dao provides data access objects for the Shrdlite server: a
// persisted planning Session (the world plus the Ambiguity Manager's
// suspended state) and the utterance history recorded against it.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
)

// Store holds all the repositories backing a running server.
type Store interface {
	Sessions() SessionRepository
	Commands() CommandRepository
	Close() error
}

// Session is a persisted planning session: the live world state and
// whatever the Ambiguity Manager has suspended, serialized across server
// restarts.
type Session struct {
	ID      uuid.UUID
	Created time.Time
	World   *blocks.World
	Amb     *blocks.Session
}

type SessionRepository interface {
	Create(ctx context.Context, sesh Session) (Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	Update(ctx context.Context, id uuid.UUID, sesh Session) (Session, error)
	Delete(ctx context.Context, id uuid.UUID) (Session, error)
	Close() error
}

// Command is one recorded utterance and the response lines it produced,
// kept for GET /api/v1/sessions/{id} to show a transcript.
type Command struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Created   time.Time
	Utterance string
	Response  []string
	ErrMsg    string
}

type CommandRepository interface {
	Create(ctx context.Context, cmd Command) (Command, error)
	GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]Command, error)
	Close() error
}
