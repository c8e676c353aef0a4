// ABOUTME: Dashboard hook and parallel loading of several hooks
// ABOUTME: Independent loads run concurrently through errgroup

package hooks

import (
	"context"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"golang.org/x/sync/errgroup"
)

type DashboardAPI interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

// Dashboard holds the single home screen summary
type Dashboard struct {
	*Resource[models.Dashboard]
}

func NewDashboard(api DashboardAPI, c *cache.Cache) *Dashboard {
	return &Dashboard{Resource: NewResource("dashboard", c, func(ctx context.Context) ([]models.Dashboard, error) {
		d, err := api.Dashboard(ctx)
		if err != nil {
			return nil, err
		}
		return []models.Dashboard{*d}, nil
	})}
}

// Summary returns the loaded dashboard, or nil before the first load
func (h *Dashboard) Summary() *models.Dashboard {
	items := h.Items()
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}

// LoadAll loads every hook concurrently. Each hook records its own
// outcome; the first error is returned.
func LoadAll(ctx context.Context, loaders ...Loader) error {
	var g errgroup.Group
	for _, l := range loaders {
		g.Go(func() error { return l.Load(ctx) })
	}
	return g.Wait()
}

// ReloadAll is LoadAll that bypasses the cache
func ReloadAll(ctx context.Context, loaders ...interface{ Reload(context.Context) error }) error {
	var g errgroup.Group
	for _, l := range loaders {
		g.Go(func() error { return l.Reload(ctx) })
	}
	return g.Wait()
}
