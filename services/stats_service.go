package services

import (
	"context"

	"github.com/SierraFuelsDev/fuelwarden/models"

	"golang.org/x/sync/errgroup"
)

// GetUserStats fans out to the four per-entity reads concurrently and
// combines them. There is no error isolation: any failing sub-read fails the
// aggregate.
func (s *DatabaseService) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	if userID == "" {
		return nil, models.ErrNotAuthenticated
	}

	var stats models.UserStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := s.GetUserProfile(gctx, userID)
		if err != nil {
			return err
		}
		stats.ProfileComplete = profile != nil
		return nil
	})
	g.Go(func() error {
		logs, err := s.GetUserMealLogs(gctx, userID, "")
		if err != nil {
			return err
		}
		stats.TotalMealLogs = len(logs)
		return nil
	})
	g.Go(func() error {
		plans, err := s.GetUserMealPlans(gctx, userID, "")
		if err != nil {
			return err
		}
		stats.TotalMealPlans = len(plans)
		return nil
	})
	g.Go(func() error {
		sched, err := s.GetActivitySchedule(gctx, userID)
		if err != nil {
			return err
		}
		if sched != nil {
			stats.TotalActivities = len(sched.Schedule)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
