package api

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// TopStoriesLimit is how many stories the panel shows.
const TopStoriesLimit = 5

var storyEndpoints = map[StoryType]string{
	StoryTypeTop:  "/topstories.json",
	StoryTypeNew:  "/newstories.json",
	StoryTypeBest: "/beststories.json",
	StoryTypeAsk:  "/askstories.json",
	StoryTypeShow: "/showstories.json",
	StoryTypeJobs: "/jobstories.json",
}

// GetStoryIDs fetches the ranked list of story IDs for a given story type.
func (c *Client) GetStoryIDs(ctx context.Context, st StoryType) ([]int, error) {
	path, ok := storyEndpoints[st]
	if !ok {
		return nil, errors.Errorf("unknown story type: %s", st)
	}
	var ids []int
	if err := c.get(ctx, "list", c.baseURL+path, &ids); err != nil {
		return nil, errors.Wrapf(err, "fetching %s stories", st)
	}
	return ids, nil
}

// FetchTopStories fetches the first limit top story IDs, then all of their
// items concurrently. The result keeps listing order. If any single item
// fails to fetch or validate, the whole call fails and no stories are
// returned; the remaining requests are cancelled.
func (c *Client) FetchTopStories(ctx context.Context, limit int) ([]Story, error) {
	if limit <= 0 {
		return nil, errors.Errorf("story limit must be positive, got %d", limit)
	}

	ids, err := c.GetStoryIDs(ctx, StoryTypeTop)
	if err != nil {
		return nil, err
	}
	if limit < len(ids) {
		ids = ids[:limit]
	}

	stories := make([]Story, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			item, err := c.GetItem(gctx, id)
			if err != nil {
				return errors.Wrapf(err, "fetching story %d", id)
			}
			story, err := ParseStory(item)
			if err != nil {
				var mde *MalformedDataError
				if errors.As(err, &mde) && mde.ID == 0 {
					mde.ID = id
				}
				return err
			}
			// Each goroutine owns its own index.
			stories[i] = story
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stories, nil
}
