package ingest

import (
	"context"

	"github.com/marcNY/youtube-idea-generator/storage"
)

// RefreshStatistics re-fetches details for every stored video of the user
// and overwrites only the four counters and the updated-at timestamp.
// Title, description, thumbnail, and published time are never revised. A
// video the upstream no longer resolves (deleted or private) is skipped
// silently and stays in storage untouched.
func (s *Service) RefreshStatistics(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrNoUser
	}

	videos, err := s.store.ListVideos(ctx, userID)
	if err != nil {
		return err
	}

	for _, v := range videos {
		details, err := s.catalog.VideoDetails(ctx, []string{v.YouTubeID})
		if err != nil {
			s.log.Warn().Err(err).Str("video", v.YouTubeID).Msg("stats fetch failed, skipping")
			continue
		}
		if len(details) == 0 {
			s.log.Debug().Str("video", v.YouTubeID).Msg("video gone upstream, skipping")
			continue
		}

		d := details[0]
		err = s.store.UpdateVideoStats(ctx, v.ID, storage.VideoStats{
			ViewCount:    d.ViewCount,
			LikeCount:    d.LikeCount,
			DislikeCount: d.DislikeCount,
			CommentCount: d.CommentCount,
		})
		if err != nil {
			return err
		}
	}

	s.log.Info().Str("user", userID).Int("videos", len(videos)).Msg("statistics refresh complete")
	return nil
}
