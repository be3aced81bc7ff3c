package content

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned for an unknown or unpublished post.
	ErrNotFound = errors.New("content not found")
	// ErrSchema is returned when a content directory declares a manifest
	// schema this build cannot read.
	ErrSchema = errors.New("unsupported content schema")
)

// Source provides the desktop's content.
type Source interface {
	Catalog(ctx context.Context) (Catalog, error)
	Post(ctx context.Context, slug string) (Post, error)
}

// ContactSender is implemented by sources that accept contact messages.
type ContactSender interface {
	SendContact(ctx context.Context, msg ContactMessage) error
}

// Watcher is implemented by sources that can report changes.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}
