// Package youtube provides read access to the YouTube Data API v3 catalog:
// channel resolution, video enumeration, detail batches, and comment threads.
package youtube

import (
	"context"
	"time"
)

// Page size limits imposed by the upstream API.
const (
	// SearchPageSize is the page size used when enumerating channel videos.
	SearchPageSize = 50
	// DetailBatchSize is the maximum number of video IDs per details call.
	DetailBatchSize = 50
	// CommentPageSize is the page size used when paginating comment threads.
	CommentPageSize = 100
)

// Catalog is the read interface over the upstream video catalog.
// *Client implements it; tests substitute a double.
type Catalog interface {
	// ResolveChannelID maps a human-readable channel name to its stable
	// upstream channel ID. Returns ErrChannelNotFound when the search
	// yields no channel.
	ResolveChannelID(ctx context.Context, name string) (string, error)

	// ChannelVideoIDs enumerates all video IDs published under the channel,
	// newest first. On a mid-pagination failure it returns the IDs
	// accumulated so far together with the error; callers decide whether
	// partial results are acceptable.
	ChannelVideoIDs(ctx context.Context, channelID string) ([]string, error)

	// VideoDetails fetches snippet and statistics for up to DetailBatchSize
	// videos in one call. Output length is at most len(ids); videos the
	// upstream no longer knows are simply absent from the result.
	VideoDetails(ctx context.Context, ids []string) ([]VideoDetail, error)

	// TopComments returns at most limit top-level comments for the video,
	// in upstream order. Pagination stops as soon as the limit is reached.
	// On a mid-pagination failure it returns the comments accumulated so
	// far together with the error.
	TopComments(ctx context.Context, videoID string, limit int) ([]Comment, error)
}

// VideoDetail is the normalized per-video record returned by VideoDetails.
// Counters default to zero when the upstream omits statistics.
type VideoDetail struct {
	ID           string
	Title        string
	Description  string
	PublishedAt  time.Time
	ThumbnailURL string
	ChannelID    string
	ChannelTitle string
	ViewCount    int64
	LikeCount    int64
	DislikeCount int64
	CommentCount int64
}

// Comment is a top-level comment on a video. The upstream API does not
// expose dislike counts.
type Comment struct {
	ID          string
	Text        string
	LikeCount   int64
	PublishedAt time.Time
}
