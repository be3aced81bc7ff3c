package desktop

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/journalos/internal/content"
)

var errNoSource = errors.New("no content source configured")

// CatalogMsg carries a freshly loaded catalog.
type CatalogMsg struct {
	Catalog content.Catalog
	Err     error
}

// PostLoadedMsg carries a post fetched for a new reader window.
type PostLoadedMsg struct {
	Slug string
	Post content.Post
	Err  error
}

// ContentChangedMsg is sent when the content watcher sees a change.
type ContentChangedMsg struct{}

// LoadCatalog fetches the catalog in the background. Windows that are
// already open keep what they were built with; new windows see the result.
func (d *Desktop) LoadCatalog() tea.Cmd {
	src, parent := d.source, d.ctx
	return func() tea.Msg {
		if src == nil {
			return CatalogMsg{Err: errNoSource}
		}
		ctx, cancel := context.WithTimeout(parent, loadTimeout)
		defer cancel()
		cat, err := src.Catalog(ctx)
		return CatalogMsg{Catalog: cat, Err: err}
	}
}

// LoadPost fetches a post before its window opens.
func (d *Desktop) LoadPost(slug string) tea.Cmd {
	src, parent := d.source, d.ctx
	return func() tea.Msg {
		if src == nil {
			return PostLoadedMsg{Slug: slug, Err: errNoSource}
		}
		ctx, cancel := context.WithTimeout(parent, loadTimeout)
		defer cancel()
		post, err := src.Post(ctx, slug)
		return PostLoadedMsg{Slug: slug, Post: post, Err: err}
	}
}

// watch runs the content watcher until the desktop closes.
func (d *Desktop) watch() {
	err := d.watcher.Watch(d.ctx, func() {
		select {
		case d.changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		d.logger.Warn("content watcher stopped", "err", err)
	}
}

// waitForChange blocks until the watcher reports a change or the desktop
// closes.
func (d *Desktop) waitForChange() tea.Cmd {
	changes, done := d.changes, d.ctx.Done()
	return func() tea.Msg {
		select {
		case <-changes:
			return ContentChangedMsg{}
		case <-done:
			return nil
		}
	}
}
