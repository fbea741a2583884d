// Package ingest drives the end-to-end pipeline: resolve registered
// channels, enumerate their videos, fetch details and comments, and
// reconcile everything against the per-user store.
package ingest

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/marcNY/youtube-idea-generator/storage"
	"github.com/marcNY/youtube-idea-generator/youtube"
)

// Precondition failures. Both are fatal to the whole run; no partial work
// is attempted.
var (
	// ErrNoUser indicates no authenticated user identity was supplied.
	ErrNoUser = errors.New("ingest: no authenticated user")
	// ErrNoChannels indicates the user has no registered channels.
	ErrNoChannels = errors.New("ingest: no channels registered")
)

// Service orchestrates ingestion runs. Construct with New; the upstream
// catalog and store are injected so tests can substitute doubles.
type Service struct {
	catalog      youtube.Catalog
	store        storage.Store
	log          zerolog.Logger
	commentLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithCommentLimit caps how many comments are retained per video.
// Defaults to youtube.CommentPageSize.
func WithCommentLimit(limit int) Option {
	return func(s *Service) { s.commentLimit = limit }
}

// New creates an ingestion service.
func New(catalog youtube.Catalog, store storage.Store, opts ...Option) *Service {
	s := &Service{
		catalog:      catalog,
		store:        store,
		log:          zerolog.Nop(),
		commentLimit: youtube.CommentPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IngestAll runs one ingestion pass over every channel registered by the
// user and returns the videos created by this run. Pre-existing videos are
// not returned even though their comments are refreshed. Upstream failures
// are absorbed per channel or per page; store failures abort the run with
// earlier writes left committed (no rollback).
func (s *Service) IngestAll(ctx context.Context, userID string) ([]*storage.Video, error) {
	if userID == "" {
		return nil, ErrNoUser
	}

	channels, err := s.store.ListChannels(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	var created []*storage.Video
	for _, ch := range channels {
		videos, err := s.ingestChannel(ctx, ch)
		created = append(created, videos...)
		if err != nil {
			return created, err
		}
	}

	s.log.Info().Str("user", userID).Int("new_videos", len(created)).Msg("ingestion run complete")
	return created, nil
}

// ingestChannel processes one channel. The returned error is always a
// store failure; upstream failures only shrink the result.
func (s *Service) ingestChannel(ctx context.Context, ch *storage.Channel) ([]*storage.Video, error) {
	channelID := ch.YouTubeID
	if channelID == "" {
		id, err := s.catalog.ResolveChannelID(ctx, ch.Name)
		if err != nil {
			s.log.Warn().Err(err).
				Str("channel", ch.Name).
				Stringer("kind", youtube.Kind(err)).
				Msg("channel resolution failed, skipping")
			return nil, nil
		}
		if err := s.store.SetChannelYouTubeID(ctx, ch.ID, id); err != nil {
			return nil, err
		}
		channelID = id
	}

	ids, err := s.catalog.ChannelVideoIDs(ctx, channelID)
	if err != nil {
		s.log.Warn().Err(err).
			Str("channel", ch.Name).
			Int("listed", len(ids)).
			Msg("video listing incomplete, continuing with partial results")
	}

	var created []*storage.Video
	for start := 0; start < len(ids); start += youtube.DetailBatchSize {
		end := min(start+youtube.DetailBatchSize, len(ids))

		details, err := s.catalog.VideoDetails(ctx, ids[start:end])
		if err != nil {
			s.log.Warn().Err(err).
				Str("channel", ch.Name).
				Int("batch_size", end-start).
				Msg("detail batch failed, skipping")
			continue
		}

		for _, d := range details {
			video, isNew, err := s.store.UpsertVideo(ctx, &storage.Video{
				YouTubeID:    d.ID,
				Title:        d.Title,
				Description:  d.Description,
				PublishedAt:  d.PublishedAt,
				ThumbnailURL: d.ThumbnailURL,
				ChannelID:    d.ChannelID,
				ChannelTitle: d.ChannelTitle,
				UserID:       ch.UserID,
				ViewCount:    d.ViewCount,
				LikeCount:    d.LikeCount,
				DislikeCount: d.DislikeCount,
				CommentCount: d.CommentCount,
			})
			if err != nil {
				return created, err
			}
			if isNew {
				created = append(created, video)
			}

			// Comments are re-fetched and re-inserted on every run, for
			// new and pre-existing videos alike.
			if err := s.syncComments(ctx, ch.UserID, video); err != nil {
				return created, err
			}
		}
	}

	return created, nil
}

// syncComments fetches up to the comment limit and appends the rows under
// the video's owned ID. A partial upstream fetch still inserts what was
// fetched; only store failures are returned.
func (s *Service) syncComments(ctx context.Context, userID string, video *storage.Video) error {
	comments, err := s.catalog.TopComments(ctx, video.YouTubeID, s.commentLimit)
	if err != nil {
		s.log.Warn().Err(err).
			Str("video", video.YouTubeID).
			Int("fetched", len(comments)).
			Msg("comment fetch incomplete")
	}
	if len(comments) == 0 {
		return nil
	}

	rows := make([]*storage.Comment, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, &storage.Comment{
			VideoID:     video.ID,
			UserID:      userID,
			Text:        c.Text,
			LikeCount:   c.LikeCount,
			PublishedAt: c.PublishedAt,
		})
	}
	return s.store.InsertComments(ctx, rows)
}
