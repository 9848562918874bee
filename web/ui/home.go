package ui

import (
	"context"
	"net/http"
	"time"

	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/models/dtos"
	"charlesfind/safaritracker/internal/services"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HomeHandler renders the home screen shell. The recent list and stats
// load through HomeFeedHandler so placeholders show first.
func (h *UIHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	data := pageData(r, "Home", "home")
	data["Flash"] = popFlash(w, r)
	data["PlaceholderCount"] = constants.HomeFeedLimit
	h.views.RenderTemplate(w, "home.html", data)
}

// HomeFeedHandler is the HTMX partial with the latest sightings and today's stats
func (h *UIHandler) HomeFeedHandler(w http.ResponseWriter, r *http.Request) {
	var (
		feed     = services.NewFeed(h.feed, constants.HomeFeedLimit)
		stats    *dtos.ReserveStats
		statsErr error
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		// the snapshot carries the failure; the stats still render
		_ = feed.Refresh(ctx)
		return nil
	})
	g.Go(func() error {
		statsCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		stats, statsErr = h.stats.GetStats(statsCtx)
		return nil
	})
	_ = g.Wait()

	if statsErr != nil {
		h.logger.Warn("Home stats unavailable", zap.Error(statsErr))
	}

	data := feedData(feed.Snapshot(), "/home/feed", "#home-feed")
	data["Stats"] = stats
	h.views.RenderPartial(w, "home_feed", data)
}

// feedData maps a feed snapshot to the sighting_list partial's fields
func feedData(snap services.FeedSnapshot, retryURL, retryTarget string) map[string]interface{} {
	data := map[string]interface{}{
		"FeedError":   snap.Phase == services.FeedFailed,
		"Pending":     snap.Phase == services.FeedPending,
		"RetryURL":    retryURL,
		"RetryTarget": retryTarget,
	}
	if snap.Phase != services.FeedFailed {
		data["Sightings"] = services.PresentSightings(snap.Records, time.Now(), nil)
	}
	return data
}
