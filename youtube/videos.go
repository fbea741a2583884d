package youtube

import (
	"context"
	"fmt"
	"time"
)

// VideoPager lazily walks a channel's uploads newest-first, one page of
// SearchPageSize IDs per Next call. A pager is single-use; create a new one
// to restart from the first page.
type VideoPager struct {
	c         *Client
	channelID string
	pageToken string
	done      bool
}

// VideoPages returns a pager over all video IDs for the channel.
func (c *Client) VideoPages(channelID string) *VideoPager {
	return &VideoPager{c: c, channelID: channelID}
}

// More reports whether another page may be available. It is true until a
// page arrives without a continuation token.
func (p *VideoPager) More() bool {
	return !p.done
}

// Next fetches the next page of video IDs. Termination is guaranteed by the
// upstream contract: a continuation token is only returned when more pages
// exist.
func (p *VideoPager) Next(ctx context.Context) ([]string, error) {
	if p.done {
		return nil, nil
	}

	var ids []string
	err := p.c.do(ctx, "search.videos", p.channelID, func(ctx context.Context) error {
		call := p.c.svc.Search.List([]string{"id"}).
			ChannelId(p.channelID).
			Type("video").
			Order("date").
			MaxResults(SearchPageSize).
			Context(ctx)
		if p.pageToken != "" {
			call = call.PageToken(p.pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return err
		}

		ids = ids[:0]
		for _, item := range resp.Items {
			if item.Id != nil && item.Id.VideoId != "" {
				ids = append(ids, item.Id.VideoId)
			}
		}

		p.pageToken = resp.NextPageToken
		p.done = resp.NextPageToken == ""
		return nil
	})
	if err != nil {
		p.done = true
		return nil, err
	}

	return ids, nil
}

// ChannelVideoIDs drains a VideoPager into the complete newest-first ID
// list. A failed page ends enumeration; the IDs gathered so far are
// returned alongside the error.
func (c *Client) ChannelVideoIDs(ctx context.Context, channelID string) ([]string, error) {
	var all []string

	pager := c.VideoPages(channelID)
	for pager.More() {
		page, err := pager.Next(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, page...)
	}

	return all, nil
}

// VideoDetails fetches snippet and statistics for the given IDs in one
// batched call. Videos missing upstream are absent from the result; absent
// statistics yield zero counters.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]VideoDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > DetailBatchSize {
		return nil, fmt.Errorf("youtube: detail batch of %d exceeds limit of %d", len(ids), DetailBatchSize)
	}

	var details []VideoDetail
	err := c.do(ctx, "videos.list", ids[0], func(ctx context.Context) error {
		resp, err := c.svc.Videos.List([]string{"snippet", "statistics"}).
			Id(ids...).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}

		details = details[:0]
		for _, v := range resp.Items {
			d := VideoDetail{ID: v.Id}

			if v.Snippet != nil {
				d.Title = v.Snippet.Title
				d.Description = v.Snippet.Description
				d.ChannelID = v.Snippet.ChannelId
				d.ChannelTitle = v.Snippet.ChannelTitle
				d.ThumbnailURL = BestThumbnail(v.Snippet.Thumbnails)
				if t, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
					d.PublishedAt = t
				}
			}

			if v.Statistics != nil {
				d.ViewCount = int64(v.Statistics.ViewCount)
				d.LikeCount = int64(v.Statistics.LikeCount)
				d.DislikeCount = int64(v.Statistics.DislikeCount)
				d.CommentCount = int64(v.Statistics.CommentCount)
			}

			details = append(details, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return details, nil
}
