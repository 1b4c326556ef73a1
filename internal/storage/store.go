package storage

import (
	"context"
	"time"
)

// Note is the free-text TODO annotation of one call.
type Note struct {
	CallName   string
	Body       string
	SpecDigest uint64
	UpdatedAt  time.Time
}

// Stale reports whether the note was written against another document version.
func (n *Note) Stale(digest uint64) bool {
	return n.SpecDigest != 0 && digest != 0 && n.SpecDigest != digest
}

// NoteStore defines operations for persisting call annotations.
type NoteStore interface {
	// SaveNote upserts the note of a call; a blank body removes it.
	SaveNote(ctx context.Context, note *Note) error

	// GetNote retrieves the note of a call, nil when there is none.
	GetNote(ctx context.Context, callName string) (*Note, error)

	// ListNotes returns every note ordered by call name.
	ListNotes(ctx context.Context) ([]*Note, error)

	// DeleteNote removes the note of a call.
	DeleteNote(ctx context.Context, callName string) error

	Close() error
}
