// Package newsview wires the story fetcher, the renderer and a display
// surface into the "fetch and render" command.
package newsview

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fragmede/hnpanel/internal/api"
	"github.com/fragmede/hnpanel/internal/command"
	"github.com/fragmede/hnpanel/internal/panel"
	"github.com/fragmede/hnpanel/internal/render"
)

const (
	// CommandName triggers FetchAndRender.
	CommandName = "hackernews.getLatest"

	PageTitle   = "Hacker News"
	errorPrefix = "Failed to fetch Hacker News: "
)

// StoryFetcher returns the first limit top stories in rank order.
type StoryFetcher interface {
	FetchTopStories(ctx context.Context, limit int) ([]api.Story, error)
}

// Viewer renders the top stories onto a surface.
type Viewer struct {
	fetcher StoryFetcher
	surface panel.Surface
	log     logrus.FieldLogger
}

// New creates a Viewer.
func New(fetcher StoryFetcher, surface panel.Surface, log logrus.FieldLogger) *Viewer {
	return &Viewer{fetcher: fetcher, surface: surface, log: log}
}

// Register adds the fetch and render command to reg.
func (v *Viewer) Register(reg *command.Registry) error {
	return reg.Register(CommandName, v.FetchAndRender)
}

// FetchAndRender fetches the top stories and shows them as one page. Any
// failure aborts the whole page and is reported once on the surface, except
// cancellation, which means the user dismissed the panel.
func (v *Viewer) FetchAndRender(ctx context.Context) error {
	log := v.log.WithFields(logrus.Fields{
		"invocation": uuid.NewString(),
		"command":    CommandName,
	})

	err := v.fetchAndRender(ctx, log)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		log.Info("fetch cancelled")
	default:
		log.WithError(err).Error("fetch and render failed")
		v.surface.ShowError(errorPrefix + err.Error())
	}
	return err
}

func (v *Viewer) fetchAndRender(ctx context.Context, log logrus.FieldLogger) error {
	stories, err := v.fetcher.FetchTopStories(ctx, api.TopStoriesLimit)
	if err != nil {
		return err
	}
	log.WithField("story_count", len(stories)).Debug("fetched stories")

	page := render.RenderPage(render.RenderEntries(stories), v.surface.StylesheetURI())
	if err := v.surface.Show(PageTitle, page); err != nil {
		return errors.Wrap(err, "showing page")
	}
	log.WithField("story_count", len(stories)).Info("rendered top stories")
	return nil
}
