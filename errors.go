package ideagen

import (
	"github.com/marcNY/youtube-idea-generator/ingest"
	"github.com/marcNY/youtube-idea-generator/storage"
	"github.com/marcNY/youtube-idea-generator/youtube"
)

// Error types re-exported for library users.
//
// All error types support the standard patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ideagen.ErrChannelNotFound) {
//		fmt.Println("channel not found")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var callErr *ideagen.CallError
//	if errors.As(err, &callErr) {
//		fmt.Printf("%s failed for %s: %v\n", callErr.Op, callErr.ID, callErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// CallError wraps upstream catalog call failures.
	CallError = youtube.CallError
	// StorageError wraps errors during storage operations.
	StorageError = storage.StorageError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrNoUser indicates no authenticated user identity was supplied.
	ErrNoUser = ingest.ErrNoUser
	// ErrNoChannels indicates the user has no registered channels.
	ErrNoChannels = ingest.ErrNoChannels

	// ErrChannelNotFound indicates the channel does not exist upstream.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrVideoNotFound indicates the video does not exist upstream.
	ErrVideoNotFound = youtube.ErrVideoNotFound
	// ErrQuotaExceeded indicates the daily API quota is spent.
	ErrQuotaExceeded = youtube.ErrQuotaExceeded
	// ErrRateLimited indicates upstream rate limiting.
	ErrRateLimited = youtube.ErrRateLimited

	// ErrNotFound indicates an entity was not found in storage.
	ErrNotFound = storage.ErrNotFound
	// ErrAlreadyExists indicates an entity already exists in storage.
	ErrAlreadyExists = storage.ErrAlreadyExists
	// ErrInvalidInput indicates invalid input was provided to storage.
	ErrInvalidInput = storage.ErrInvalidInput
)
