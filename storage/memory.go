package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store entirely in memory. It backs tests and
// local dry runs; data does not survive the process.
type MemoryStore struct {
	mu       sync.RWMutex
	channels map[string]*Channel // internal ID -> channel
	videos   map[string]*Video   // internal ID -> video
	comments []*Comment
	videoKey map[string]string // userID + "\x00" + youtubeID -> internal ID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		channels: make(map[string]*Channel),
		videos:   make(map[string]*Video),
		videoKey: make(map[string]string),
	}
}

func videoDedupKey(userID, youtubeID string) string {
	return userID + "\x00" + youtubeID
}

// CreateChannel registers a channel for a user.
func (s *MemoryStore) CreateChannel(ctx context.Context, channel *Channel) error {
	if channel == nil || channel.Name == "" || channel.UserID == "" {
		return &StorageError{Op: "create", Entity: "channel", Err: ErrInvalidInput}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	channel.ID = uuid.New().String()
	channel.CreatedAt = now
	channel.UpdatedAt = now

	stored := *channel
	s.channels[channel.ID] = &stored
	return nil
}

// ListChannels returns the user's channels in registration order.
func (s *MemoryStore) ListChannels(ctx context.Context, userID string) ([]*Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Channel
	for _, ch := range s.channels {
		if ch.UserID == userID {
			c := *ch
			out = append(out, &c)
		}
	}
	return out, nil
}

// SetChannelYouTubeID persists the resolved upstream ID on the channel row.
func (s *MemoryStore) SetChannelYouTubeID(ctx context.Context, id, youtubeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[id]
	if !ok {
		return &StorageError{Op: "update", Entity: "channel", ID: id, Err: ErrNotFound}
	}
	ch.YouTubeID = youtubeID
	ch.UpdatedAt = time.Now().UTC()
	return nil
}

// UpsertVideo inserts the video or returns the existing row for its dedup
// key. The whole operation holds the store lock, so concurrent upserts of
// the same key cannot both insert.
func (s *MemoryStore) UpsertVideo(ctx context.Context, video *Video) (*Video, bool, error) {
	if video == nil || video.YouTubeID == "" || video.UserID == "" {
		return nil, false, &StorageError{Op: "create", Entity: "video", Err: ErrInvalidInput}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := videoDedupKey(video.UserID, video.YouTubeID)
	if id, ok := s.videoKey[key]; ok {
		existing := *s.videos[id]
		return &existing, false, nil
	}

	now := time.Now().UTC()
	stored := *video
	stored.ID = uuid.New().String()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.videos[stored.ID] = &stored
	s.videoKey[key] = stored.ID

	result := stored
	return &result, true, nil
}

// ListVideos returns all videos owned by the user.
func (s *MemoryStore) ListVideos(ctx context.Context, userID string) ([]*Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Video
	for _, v := range s.videos {
		if v.UserID == userID {
			video := *v
			out = append(out, &video)
		}
	}
	return out, nil
}

// UpdateVideoStats overwrites the counters and updated-at of one video.
func (s *MemoryStore) UpdateVideoStats(ctx context.Context, id string, stats VideoStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[id]
	if !ok {
		return &StorageError{Op: "update", Entity: "video", ID: id, Err: ErrNotFound}
	}

	v.ViewCount = stats.ViewCount
	v.LikeCount = stats.LikeCount
	v.DislikeCount = stats.DislikeCount
	v.CommentCount = stats.CommentCount
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// InsertComments appends comment rows, assigning owned IDs.
func (s *MemoryStore) InsertComments(ctx context.Context, comments []*Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, c := range comments {
		if c == nil || c.VideoID == "" {
			return &StorageError{Op: "create", Entity: "comment", Err: ErrInvalidInput}
		}
		stored := *c
		stored.ID = uuid.New().String()
		stored.CreatedAt = now
		s.comments = append(s.comments, &stored)
	}
	return nil
}

// CommentsByVideo returns the stored comments for a video. Test helper
// beyond the Store interface.
func (s *MemoryStore) CommentsByVideo(videoID string) []*Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Comment
	for _, c := range s.comments {
		if c.VideoID == videoID {
			comment := *c
			out = append(out, &comment)
		}
	}
	return out
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
