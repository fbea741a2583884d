package youtube

import "context"

// ResolveChannelID maps a channel name to its upstream channel ID using a
// single search scoped to channels. The top hit wins. An empty result set
// is reported as ErrChannelNotFound, wrapped in a *CallError.
func (c *Client) ResolveChannelID(ctx context.Context, name string) (string, error) {
	var id string

	err := c.do(ctx, "search.channel", name, func(ctx context.Context) error {
		resp, err := c.svc.Search.List([]string{"id"}).
			Q(name).
			Type("channel").
			MaxResults(1).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}

		if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.ChannelId == "" {
			return ErrChannelNotFound
		}
		id = resp.Items[0].Id.ChannelId
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}
