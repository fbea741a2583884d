package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/youtube/v3"

	"github.com/marcNY/youtube-idea-generator/retry"
)

// newTestClient builds a Client against an httptest server serving the
// given handler, with retries and rate limiting effectively disabled.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), "test-key",
		WithEndpoint(srv.URL),
		WithRateLimit(10000, 10000),
		WithRetry(retry.Config{
			MaxRetries:     0,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     time.Millisecond,
			Multiplier:     2,
		}),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), ""); err == nil {
		t.Error("NewClient() with empty key should fail")
	}
}

func TestResolveChannelID(t *testing.T) {
	var gotQuery, gotType, gotMax string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/search") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = q.Get("q")
		gotType = q.Get("type")
		gotMax = q.Get("maxResults")

		writeJSON(t, w, &youtube.SearchListResponse{
			Items: []*youtube.SearchResult{
				{Id: &youtube.ResourceId{ChannelId: "UCX1"}},
			},
		})
	}))

	id, err := client.ResolveChannelID(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("ResolveChannelID() error = %v", err)
	}
	if id != "UCX1" {
		t.Errorf("ResolveChannelID() = %q, want %q", id, "UCX1")
	}
	if gotQuery != "Acme" {
		t.Errorf("search q = %q, want %q", gotQuery, "Acme")
	}
	if gotType != "channel" {
		t.Errorf("search type = %q, want %q", gotType, "channel")
	}
	if gotMax != "1" {
		t.Errorf("search maxResults = %q, want %q", gotMax, "1")
	}
}

func TestResolveChannelID_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &youtube.SearchListResponse{})
	}))

	_, err := client.ResolveChannelID(context.Background(), "nope")
	if !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("ResolveChannelID() error = %v, want ErrChannelNotFound", err)
	}
	if Kind(err) != KindNotFound {
		t.Errorf("Kind() = %v, want KindNotFound", Kind(err))
	}
}

func TestChannelVideoIDs_Pagination(t *testing.T) {
	var requests int
	var secondPageToken string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		q := r.URL.Query()
		if ch := q.Get("channelId"); ch != "UCX1" {
			t.Errorf("channelId = %q, want %q", ch, "UCX1")
		}
		if order := q.Get("order"); order != "date" {
			t.Errorf("order = %q, want %q", order, "date")
		}
		if max := q.Get("maxResults"); max != "50" {
			t.Errorf("maxResults = %q, want %q", max, "50")
		}

		switch requests {
		case 1:
			items := make([]*youtube.SearchResult, 50)
			for i := range items {
				items[i] = &youtube.SearchResult{Id: &youtube.ResourceId{VideoId: fmt.Sprintf("vid%02d", i)}}
			}
			writeJSON(t, w, &youtube.SearchListResponse{Items: items, NextPageToken: "page2"})
		case 2:
			secondPageToken = q.Get("pageToken")
			writeJSON(t, w, &youtube.SearchListResponse{Items: []*youtube.SearchResult{
				{Id: &youtube.ResourceId{VideoId: "vid50"}},
				{Id: &youtube.ResourceId{VideoId: "vid51"}},
				{Id: &youtube.ResourceId{VideoId: "vid52"}},
			}})
		default:
			t.Errorf("unexpected request %d after exhausted pagination", requests)
		}
	}))

	ids, err := client.ChannelVideoIDs(context.Background(), "UCX1")
	if err != nil {
		t.Fatalf("ChannelVideoIDs() error = %v", err)
	}
	if len(ids) != 53 {
		t.Fatalf("ChannelVideoIDs() returned %d ids, want 53", len(ids))
	}
	if ids[0] != "vid00" || ids[52] != "vid52" {
		t.Errorf("ids out of order: first %q, last %q", ids[0], ids[52])
	}
	if requests != 2 {
		t.Errorf("server saw %d requests, want 2", requests)
	}
	if secondPageToken != "page2" {
		t.Errorf("second request pageToken = %q, want %q", secondPageToken, "page2")
	}
}

func TestChannelVideoIDs_PartialFailure(t *testing.T) {
	var requests int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			items := make([]*youtube.SearchResult, 50)
			for i := range items {
				items[i] = &youtube.SearchResult{Id: &youtube.ResourceId{VideoId: fmt.Sprintf("vid%02d", i)}}
			}
			writeJSON(t, w, &youtube.SearchListResponse{Items: items, NextPageToken: "page2"})
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	ids, err := client.ChannelVideoIDs(context.Background(), "UCX1")
	if err == nil {
		t.Fatal("ChannelVideoIDs() error = nil, want transport error")
	}
	if len(ids) != 50 {
		t.Errorf("ChannelVideoIDs() returned %d partial ids, want 50", len(ids))
	}
	if Kind(err) != KindTransport {
		t.Errorf("Kind() = %v, want KindTransport", Kind(err))
	}
}

func TestVideoDetails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/videos") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		writeJSON(t, w, &youtube.VideoListResponse{
			Items: []*youtube.Video{
				{
					Id: "vid1",
					Snippet: &youtube.VideoSnippet{
						Title:        "First",
						Description:  "desc",
						ChannelId:    "UCX1",
						ChannelTitle: "Acme",
						PublishedAt:  "2024-03-01T12:00:00Z",
						Thumbnails: &youtube.ThumbnailDetails{
							Default: &youtube.Thumbnail{Url: "http://img/default.jpg"},
							Medium:  &youtube.Thumbnail{Url: "http://img/medium.jpg"},
						},
					},
					Statistics: &youtube.VideoStatistics{
						ViewCount:    1200,
						LikeCount:    34,
						CommentCount: 7,
					},
				},
				{
					// Statistics absent entirely; counters must default to zero.
					Id: "vid2",
					Snippet: &youtube.VideoSnippet{
						Title:       "Second",
						PublishedAt: "2024-03-02T12:00:00Z",
					},
				},
			},
		})
	}))

	details, err := client.VideoDetails(context.Background(), []string{"vid1", "vid2"})
	if err != nil {
		t.Fatalf("VideoDetails() error = %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("VideoDetails() returned %d records, want 2", len(details))
	}

	first := details[0]
	if first.ID != "vid1" || first.Title != "First" || first.ChannelTitle != "Acme" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.ThumbnailURL != "http://img/medium.jpg" {
		t.Errorf("ThumbnailURL = %q, want medium variant", first.ThumbnailURL)
	}
	if first.ViewCount != 1200 || first.LikeCount != 34 || first.CommentCount != 7 {
		t.Errorf("unexpected counters: %+v", first)
	}
	if want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC); !first.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", first.PublishedAt, want)
	}

	second := details[1]
	if second.ViewCount != 0 || second.LikeCount != 0 || second.DislikeCount != 0 || second.CommentCount != 0 {
		t.Errorf("absent statistics should default to zero, got %+v", second)
	}
}

func TestVideoDetails_InputBounds(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	if got, err := client.VideoDetails(context.Background(), nil); err != nil || got != nil {
		t.Errorf("VideoDetails(nil) = %v, %v, want nil, nil", got, err)
	}

	tooMany := make([]string, DetailBatchSize+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("vid%d", i)
	}
	if _, err := client.VideoDetails(context.Background(), tooMany); err == nil {
		t.Error("VideoDetails() with oversized batch should fail")
	}
}

func TestTopComments_CapStopsPagination(t *testing.T) {
	var requests int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if !strings.HasSuffix(r.URL.Path, "/commentThreads") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if vid := r.URL.Query().Get("videoId"); vid != "vid1" {
			t.Errorf("videoId = %q, want %q", vid, "vid1")
		}

		items := make([]*youtube.CommentThread, 100)
		for i := range items {
			items[i] = &youtube.CommentThread{
				Id: fmt.Sprintf("c%03d", i),
				Snippet: &youtube.CommentThreadSnippet{
					TopLevelComment: &youtube.Comment{
						Snippet: &youtube.CommentSnippet{
							TextDisplay: fmt.Sprintf("comment %d", i),
							LikeCount:   int64(i),
							PublishedAt: "2024-03-01T12:00:00Z",
						},
					},
				},
			}
		}
		// A token is always offered; the cap must stop the pager anyway.
		writeJSON(t, w, &youtube.CommentThreadListResponse{Items: items, NextPageToken: "more"})
	}))

	comments, err := client.TopComments(context.Background(), "vid1", 100)
	if err != nil {
		t.Fatalf("TopComments() error = %v", err)
	}
	if len(comments) != 100 {
		t.Fatalf("TopComments() returned %d comments, want 100", len(comments))
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1 (cap should stop pagination)", requests)
	}
	if comments[0].Text != "comment 0" || comments[0].LikeCount != 0 {
		t.Errorf("unexpected first comment: %+v", comments[0])
	}
}

func TestTopComments_SinglePage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &youtube.CommentThreadListResponse{
			Items: []*youtube.CommentThread{
				{
					Id: "c1",
					Snippet: &youtube.CommentThreadSnippet{
						TopLevelComment: &youtube.Comment{
							Snippet: &youtube.CommentSnippet{TextDisplay: "only one", LikeCount: 3},
						},
					},
				},
			},
		})
	}))

	comments, err := client.TopComments(context.Background(), "vid1", 100)
	if err != nil {
		t.Fatalf("TopComments() error = %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("TopComments() returned %d comments, want 1", len(comments))
	}
}

func TestTopComments_PartialFailure(t *testing.T) {
	var requests int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			items := make([]*youtube.CommentThread, 60)
			for i := range items {
				items[i] = &youtube.CommentThread{
					Id: fmt.Sprintf("c%02d", i),
					Snippet: &youtube.CommentThreadSnippet{
						TopLevelComment: &youtube.Comment{
							Snippet: &youtube.CommentSnippet{TextDisplay: "hi"},
						},
					},
				}
			}
			writeJSON(t, w, &youtube.CommentThreadListResponse{Items: items, NextPageToken: "page2"})
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	comments, err := client.TopComments(context.Background(), "vid1", 100)
	if err == nil {
		t.Fatal("TopComments() error = nil, want transport error")
	}
	if len(comments) != 60 {
		t.Errorf("TopComments() returned %d partial comments, want 60", len(comments))
	}
}
