package youtube

import (
	"context"
	"errors"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for catalog operations.
var (
	ErrChannelNotFound = errors.New("youtube: channel not found")
	ErrVideoNotFound   = errors.New("youtube: video not found")
	ErrQuotaExceeded   = errors.New("youtube: quota exceeded")
	ErrRateLimited     = errors.New("youtube: rate limited")
)

// ErrorKind classifies an upstream failure so callers can make explicit
// continue/abort decisions instead of treating every error alike.
type ErrorKind int

const (
	// KindTransport covers network failures and unclassified API errors.
	KindTransport ErrorKind = iota
	// KindNotFound means the requested entity does not exist upstream.
	KindNotFound
	// KindQuotaExceeded means the daily API quota is spent.
	KindQuotaExceeded
	// KindRateLimited means requests are arriving too fast; retryable.
	KindRateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "transport"
	}
}

// Kind classifies err. Sentinel errors map directly; *googleapi.Error is
// classified by HTTP status and error reason. Everything else is transport.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrChannelNotFound), errors.Is(err, ErrVideoNotFound):
		return KindNotFound
	case errors.Is(err, ErrQuotaExceeded):
		return KindQuotaExceeded
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 404 {
			return KindNotFound
		}
		for _, item := range apiErr.Errors {
			switch item.Reason {
			case "quotaExceeded", "dailyLimitExceeded":
				return KindQuotaExceeded
			case "rateLimitExceeded", "userRateLimitExceeded":
				return KindRateLimited
			}
		}
	}

	return KindTransport
}

// retryable reports whether an upstream call should be retried.
// Quota exhaustion is permanent for the day; retrying only burns time.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch Kind(err) {
	case KindNotFound, KindQuotaExceeded:
		return false
	default:
		return true
	}
}

// CallError wraps an upstream call failure with context about what failed.
// Use errors.As() to extract it:
//
//	var callErr *youtube.CallError
//	if errors.As(err, &callErr) {
//		fmt.Printf("%s for %s failed: %v\n", callErr.Op, callErr.ID, callErr.Err)
//	}
type CallError struct {
	// Op is the upstream operation ("search.channel", "search.videos",
	// "videos.list", "commentThreads.list").
	Op string
	// ID is the channel or video the call was scoped to.
	ID string
	// Err is the underlying error.
	Err error
}

func (e *CallError) Error() string {
	return "youtube: " + e.Op + " " + e.ID + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is() and errors.As().
func (e *CallError) Unwrap() error { return e.Err }
