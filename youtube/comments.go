package youtube

import (
	"context"
	"time"
)

// CommentPager lazily walks a video's top-level comment threads, one page
// of up to CommentPageSize comments per Next call.
type CommentPager struct {
	c         *Client
	videoID   string
	pageToken string
	done      bool
}

// CommentPages returns a pager over the video's top-level comments.
func (c *Client) CommentPages(videoID string) *CommentPager {
	return &CommentPager{c: c, videoID: videoID}
}

// More reports whether another page may be available.
func (p *CommentPager) More() bool {
	return !p.done
}

// Next fetches the next page of comments.
func (p *CommentPager) Next(ctx context.Context) ([]Comment, error) {
	if p.done {
		return nil, nil
	}

	var comments []Comment
	err := p.c.do(ctx, "commentThreads.list", p.videoID, func(ctx context.Context) error {
		call := p.c.svc.CommentThreads.List([]string{"snippet"}).
			VideoId(p.videoID).
			MaxResults(CommentPageSize).
			Context(ctx)
		if p.pageToken != "" {
			call = call.PageToken(p.pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return err
		}

		comments = comments[:0]
		for _, item := range resp.Items {
			if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
				continue
			}
			s := item.Snippet.TopLevelComment.Snippet

			comment := Comment{
				ID:        item.Id,
				Text:      s.TextDisplay,
				LikeCount: s.LikeCount,
			}
			if t, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
				comment.PublishedAt = t
			}
			comments = append(comments, comment)
		}

		p.pageToken = resp.NextPageToken
		p.done = resp.NextPageToken == ""
		return nil
	})
	if err != nil {
		p.done = true
		return nil, err
	}

	return comments, nil
}

// TopComments collects at most limit comments, stopping pagination as soon
// as the limit is reached rather than fetching further pages. A limit of 0
// or less means CommentPageSize. On a mid-pagination failure the comments
// gathered so far are returned alongside the error.
func (c *Client) TopComments(ctx context.Context, videoID string, limit int) ([]Comment, error) {
	if limit <= 0 {
		limit = CommentPageSize
	}

	var all []Comment
	pager := c.CommentPages(videoID)
	for pager.More() {
		page, err := pager.Next(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, page...)
		if len(all) >= limit {
			all = all[:limit]
			break
		}
	}

	return all, nil
}
