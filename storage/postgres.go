package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL for the Postgres store. The unique index on
// (youtube_id, user_id) is what makes UpsertVideo atomic: concurrent
// check-then-insert races collapse into one row at the store boundary.
const Schema = `
CREATE TABLE IF NOT EXISTS channels (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	youtube_id  TEXT NOT NULL DEFAULT '',
	user_id     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS videos (
	id            UUID PRIMARY KEY,
	youtube_id    TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	published_at  TIMESTAMPTZ,
	thumbnail_url TEXT NOT NULL DEFAULT '',
	channel_id    TEXT NOT NULL DEFAULT '',
	channel_title TEXT NOT NULL DEFAULT '',
	user_id       TEXT NOT NULL,
	view_count    BIGINT NOT NULL DEFAULT 0,
	like_count    BIGINT NOT NULL DEFAULT 0,
	dislike_count BIGINT NOT NULL DEFAULT 0,
	comment_count BIGINT NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL,
	UNIQUE (youtube_id, user_id)
);

CREATE TABLE IF NOT EXISTS comments (
	id            UUID PRIMARY KEY,
	video_id      UUID NOT NULL REFERENCES videos(id),
	user_id       TEXT NOT NULL,
	text          TEXT NOT NULL,
	like_count    BIGINT NOT NULL DEFAULT 0,
	dislike_count BIGINT NOT NULL DEFAULT 0,
	published_at  TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS comments_video_id_idx ON comments (video_id);
`

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &StorageError{Op: "connect", Entity: "store", Err: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &StorageError{Op: "connect", Entity: "store", Err: err}
	}
	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		return nil, &StorageError{Op: "migrate", Entity: "store", Err: err}
	}
	return &PostgresStore{pool: pool}, nil
}

// CreateChannel registers a channel for a user.
func (s *PostgresStore) CreateChannel(ctx context.Context, channel *Channel) error {
	if channel == nil || channel.Name == "" || channel.UserID == "" {
		return &StorageError{Op: "create", Entity: "channel", Err: ErrInvalidInput}
	}

	now := time.Now().UTC()
	channel.ID = uuid.New().String()
	channel.CreatedAt = now
	channel.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO channels (id, name, youtube_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		channel.ID, channel.Name, channel.YouTubeID, channel.UserID, channel.CreatedAt, channel.UpdatedAt)
	if err != nil {
		return &StorageError{Op: "create", Entity: "channel", ID: channel.ID, Err: err}
	}
	return nil
}

// ListChannels returns the user's channels, oldest registration first.
func (s *PostgresStore) ListChannels(ctx context.Context, userID string) ([]*Channel, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, youtube_id, user_id, created_at, updated_at
		FROM channels
		WHERE user_id = $1
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, &StorageError{Op: "read", Entity: "channel", Err: err}
	}
	defer rows.Close()

	var channels []*Channel
	for rows.Next() {
		var ch Channel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.YouTubeID, &ch.UserID, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
			return nil, &StorageError{Op: "read", Entity: "channel", Err: err}
		}
		channels = append(channels, &ch)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "read", Entity: "channel", Err: err}
	}
	return channels, nil
}

// SetChannelYouTubeID persists the resolved upstream ID on the channel row.
func (s *PostgresStore) SetChannelYouTubeID(ctx context.Context, id, youtubeID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE channels SET youtube_id = $2, updated_at = $3 WHERE id = $1`,
		id, youtubeID, time.Now().UTC())
	if err != nil {
		return &StorageError{Op: "update", Entity: "channel", ID: id, Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &StorageError{Op: "update", Entity: "channel", ID: id, Err: ErrNotFound}
	}
	return nil
}

// UpsertVideo inserts the video or returns the existing row for its dedup
// key. ON CONFLICT DO NOTHING plus a follow-up select keeps the operation
// race-free under the unique index.
func (s *PostgresStore) UpsertVideo(ctx context.Context, video *Video) (*Video, bool, error) {
	if video == nil || video.YouTubeID == "" || video.UserID == "" {
		return nil, false, &StorageError{Op: "create", Entity: "video", Err: ErrInvalidInput}
	}

	now := time.Now().UTC()
	id := uuid.New().String()

	tag, err := s.pool.Exec(ctx, `
		INSERT INTO videos (id, youtube_id, title, description, published_at, thumbnail_url,
			channel_id, channel_title, user_id, view_count, like_count, dislike_count,
			comment_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (youtube_id, user_id) DO NOTHING`,
		id, video.YouTubeID, video.Title, video.Description, video.PublishedAt, video.ThumbnailURL,
		video.ChannelID, video.ChannelTitle, video.UserID, video.ViewCount, video.LikeCount,
		video.DislikeCount, video.CommentCount, now, now)
	if err != nil {
		return nil, false, &StorageError{Op: "create", Entity: "video", ID: video.YouTubeID, Err: err}
	}

	stored, err := s.videoByDedupKey(ctx, video.UserID, video.YouTubeID)
	if err != nil {
		return nil, false, err
	}
	return stored, tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) videoByDedupKey(ctx context.Context, userID, youtubeID string) (*Video, error) {
	var v Video
	err := s.pool.QueryRow(ctx, `
		SELECT id, youtube_id, title, description, published_at, thumbnail_url,
			channel_id, channel_title, user_id, view_count, like_count, dislike_count,
			comment_count, created_at, updated_at
		FROM videos
		WHERE user_id = $1 AND youtube_id = $2`, userID, youtubeID).Scan(
		&v.ID, &v.YouTubeID, &v.Title, &v.Description, &v.PublishedAt, &v.ThumbnailURL,
		&v.ChannelID, &v.ChannelTitle, &v.UserID, &v.ViewCount, &v.LikeCount, &v.DislikeCount,
		&v.CommentCount, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &StorageError{Op: "read", Entity: "video", ID: youtubeID, Err: ErrNotFound}
		}
		return nil, &StorageError{Op: "read", Entity: "video", ID: youtubeID, Err: err}
	}
	return &v, nil
}

// ListVideos returns all videos owned by the user, newest publication first.
func (s *PostgresStore) ListVideos(ctx context.Context, userID string) ([]*Video, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, youtube_id, title, description, published_at, thumbnail_url,
			channel_id, channel_title, user_id, view_count, like_count, dislike_count,
			comment_count, created_at, updated_at
		FROM videos
		WHERE user_id = $1
		ORDER BY published_at DESC`, userID)
	if err != nil {
		return nil, &StorageError{Op: "read", Entity: "video", Err: err}
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(
			&v.ID, &v.YouTubeID, &v.Title, &v.Description, &v.PublishedAt, &v.ThumbnailURL,
			&v.ChannelID, &v.ChannelTitle, &v.UserID, &v.ViewCount, &v.LikeCount, &v.DislikeCount,
			&v.CommentCount, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, &StorageError{Op: "read", Entity: "video", Err: err}
		}
		videos = append(videos, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "read", Entity: "video", Err: err}
	}
	return videos, nil
}

// UpdateVideoStats overwrites the counters and updated-at of one video.
func (s *PostgresStore) UpdateVideoStats(ctx context.Context, id string, stats VideoStats) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE videos
		SET view_count = $2, like_count = $3, dislike_count = $4, comment_count = $5, updated_at = $6
		WHERE id = $1`,
		id, stats.ViewCount, stats.LikeCount, stats.DislikeCount, stats.CommentCount, time.Now().UTC())
	if err != nil {
		return &StorageError{Op: "update", Entity: "video", ID: id, Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &StorageError{Op: "update", Entity: "video", ID: id, Err: ErrNotFound}
	}
	return nil
}

// InsertComments appends comment rows in one batch.
func (s *PostgresStore) InsertComments(ctx context.Context, comments []*Comment) error {
	if len(comments) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	now := time.Now().UTC()
	for _, c := range comments {
		if c == nil || c.VideoID == "" {
			return &StorageError{Op: "create", Entity: "comment", Err: ErrInvalidInput}
		}
		c.ID = uuid.New().String()
		c.CreatedAt = now
		batch.Queue(`
			INSERT INTO comments (id, video_id, user_id, text, like_count, dislike_count, published_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			c.ID, c.VideoID, c.UserID, c.Text, c.LikeCount, c.DislikeCount, c.PublishedAt, c.CreatedAt)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range comments {
		if _, err := results.Exec(); err != nil {
			return &StorageError{Op: "create", Entity: "comment", Err: err}
		}
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
