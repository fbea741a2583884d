// Package storage provides the per-user data model and persistence
// boundary for ingested channels, videos, and comments.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common storage conditions.
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("storage: not found")
	// ErrAlreadyExists indicates the entity already exists in storage.
	ErrAlreadyExists = errors.New("storage: already exists")
	// ErrInvalidInput indicates invalid or malformed input was provided.
	ErrInvalidInput = errors.New("storage: invalid input")
)

// StorageError wraps storage errors with operation and entity context.
// Use errors.As() to extract this error type and get operation details.
type StorageError struct {
	// Op is the operation that failed ("create", "read", "update").
	Op string
	// Entity is the entity type ("channel", "video", "comment").
	Entity string
	// ID is the entity ID if applicable.
	ID string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the storage error.
func (e *StorageError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("storage: %s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error { return e.Err }

// Store is the persistence boundary for the ingestion pipeline.
// Implementations must be safe for concurrent use.
type Store interface {
	// CreateChannel registers a channel name for a user. The owned ID and
	// timestamps are assigned by the store.
	CreateChannel(ctx context.Context, channel *Channel) error

	// ListChannels returns all channels registered by the user.
	ListChannels(ctx context.Context, userID string) ([]*Channel, error)

	// SetChannelYouTubeID persists the resolved upstream channel ID onto
	// the channel row. Once set, the value is treated as immutable truth
	// for that name.
	SetChannelYouTubeID(ctx context.Context, id, youtubeID string) error

	// UpsertVideo inserts the video unless a row with the same
	// (youtube_id, user_id) dedup key already exists. It returns the
	// stored row and whether it was created by this call. The operation is
	// atomic: two concurrent upserts of the same key yield one row.
	UpsertVideo(ctx context.Context, video *Video) (*Video, bool, error)

	// ListVideos returns all stored videos owned by the user.
	ListVideos(ctx context.Context, userID string) ([]*Video, error)

	// UpdateVideoStats overwrites only the four counters and the
	// updated-at timestamp of the video row. All other fields are fixed at
	// creation.
	UpdateVideoStats(ctx context.Context, id string, stats VideoStats) error

	// InsertComments appends comment rows. Comments carry no dedup key:
	// re-running ingestion for a video that already has comments appends
	// duplicates. Kept as observed product behavior, pending a decision.
	InsertComments(ctx context.Context, comments []*Comment) error

	// Close releases any resources held by the store.
	Close() error
}
