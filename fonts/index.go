package fonts

import (
	"context"
	"strconv"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/pagemark/pagemark/geom"
	"github.com/pagemark/pagemark/log"
)

// warmConcurrency bounds how many pages are analyzed at once.
const warmConcurrency = 4

// Index is the session-local, per-page text-run cache behind the probe.
// Pages are populated once, either by Warm or by SetPageRuns, and live for
// the duration of the editing session. Lookups are a linear scan: a few
// hundred runs per page at most.
type Index struct {
	runs *gocache.Cache
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{runs: gocache.New(gocache.NoExpiration, 0)}
}

// SetPageRuns stores the layout of one page.
func (ix *Index) SetPageRuns(page int, runs []TextRun) {
	ix.runs.Set(strconv.Itoa(page), runs, gocache.NoExpiration)
}

// Ready reports whether a page's layout has been cached.
func (ix *Index) Ready(page int) bool {
	_, ok := ix.runs.Get(strconv.Itoa(page))
	return ok
}

// StyleAt returns the style of the first cached run enclosing p. It
// reports false when no run contains the point or the page has not been
// analyzed yet; both are silent fallbacks, not errors.
func (ix *Index) StyleAt(page int, p geom.Point) (RunStyle, bool) {
	v, ok := ix.runs.Get(strconv.Itoa(page))
	if !ok {
		return RunStyle{}, false
	}
	for _, run := range v.([]TextRun) {
		if run.BBox.Contains(p) {
			return run.Style, true
		}
	}
	return RunStyle{}, false
}

// Warm analyzes pages 1..pageCount through layout and caches the results.
// Pages run concurrently; a page that fails analysis is logged and left
// uncached so later probes on it simply miss.
func (ix *Index) Warm(ctx context.Context, pageCount int, layout Layout) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for page := 1; page <= pageCount; page++ {
		page := page
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			runs, err := layout.PageRuns(ctx, page)
			if err != nil {
				log.Trace.Printf("layout analysis failed for page %d: %v", page, err)
				return nil
			}
			ix.SetPageRuns(page, runs)
			return nil
		})
	}
	return g.Wait()
}
