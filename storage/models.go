package storage

import "time"

// Channel is a user-registered channel name, resolved lazily to its
// upstream channel ID on first ingestion.
type Channel struct {
	// ID is the internal unique identifier (UUID).
	ID string `json:"id"`
	// Name is the user-supplied channel name.
	Name string `json:"name"`
	// YouTubeID is the resolved upstream channel ID (e.g. "UCxxxx").
	// Empty until resolution succeeds; set at most once per name.
	YouTubeID string `json:"youtube_id,omitempty"`
	// UserID is the owning user.
	UserID string `json:"user_id"`
	// CreatedAt is when the channel was registered.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the row was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// Video is one ingested video. At most one row exists per
// (YouTubeID, UserID) pair; that pair is the dedup key. Counters are
// refreshable, every other field is set once at creation.
type Video struct {
	// ID is the internal unique identifier (UUID).
	ID string `json:"id"`
	// YouTubeID is the upstream video ID (e.g. "dQw4w9WgXcQ").
	YouTubeID string `json:"youtube_id"`
	// Title is the video title at ingestion time.
	Title string `json:"title"`
	// Description is the video description at ingestion time.
	Description string `json:"description,omitempty"`
	// PublishedAt is when the video was published upstream.
	PublishedAt time.Time `json:"published_at"`
	// ThumbnailURL is the best-available thumbnail at ingestion time.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	// ChannelID is the upstream channel ID the video belongs to.
	ChannelID string `json:"channel_id"`
	// ChannelTitle is a snapshot of the channel title at ingestion time.
	ChannelTitle string `json:"channel_title"`
	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Refreshable counters.
	ViewCount    int64 `json:"view_count"`
	LikeCount    int64 `json:"like_count"`
	DislikeCount int64 `json:"dislike_count"`
	CommentCount int64 `json:"comment_count"`

	// CreatedAt is when the row was first ingested.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the row was last modified (stats refresh included).
	UpdatedAt time.Time `json:"updated_at"`
}

// VideoStats carries the refreshable counters for UpdateVideoStats.
type VideoStats struct {
	ViewCount    int64
	LikeCount    int64
	DislikeCount int64
	CommentCount int64
}

// Comment is a top-level comment captured during ingestion. Rows are
// created once and never updated or deleted by the pipeline.
type Comment struct {
	// ID is the internal unique identifier (UUID).
	ID string `json:"id"`
	// VideoID references Video.ID, the owned row ID of the parent video.
	VideoID string `json:"video_id"`
	// UserID is the owning user.
	UserID string `json:"user_id"`
	// Text is the comment body.
	Text string `json:"text"`
	// LikeCount is the comment's like count at ingestion time.
	LikeCount int64 `json:"like_count"`
	// DislikeCount is always zero; the upstream API does not expose it.
	DislikeCount int64 `json:"dislike_count"`
	// PublishedAt is when the comment was published upstream.
	PublishedAt time.Time `json:"published_at"`
	// CreatedAt is when the row was ingested.
	CreatedAt time.Time `json:"created_at"`
}
