package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/model"
)

// ActivityLimit is how many recent activities the dashboard shows.
const ActivityLimit = 10

type Service struct{}

func NewService() *Service { return &Service{} }

// Get fetches stats and the activity feed concurrently.
func (s *Service) Get(ctx context.Context, api *client.API) (*model.Dashboard, error) {
	var (
		stats      *model.Stats
		activities []model.Activity
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = api.Stats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		activities, err = api.RecentActivities(ctx, ActivityLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []model.Activity{}
	}
	return &model.Dashboard{Stats: *stats, Activities: activities}, nil
}
