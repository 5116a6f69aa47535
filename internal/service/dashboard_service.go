package service

import (
	"context"

	"github.com/fitstack/fitstack/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DashboardSummary is the per-user counts card shown on the home screen.
type DashboardSummary struct {
	Workouts         int64 `json:"workouts"`
	WorkoutPlans     int64 `json:"workout_plans"`
	NutritionEntries int64 `json:"nutrition_entries"`
	ProgressRecords  int64 `json:"progress_records"`
	// Challenges is the library-wide total, not just the currently
	// running ones. Count cannot express the start/end window filter.
	Challenges int64 `json:"challenges"`
}

// DashboardService aggregates per-resource totals for one user.
type DashboardService struct {
	workouts   domain.ListRepository[domain.Workout]
	plans      domain.ListRepository[domain.WorkoutPlan]
	entries    domain.ListRepository[domain.NutritionEntry]
	progress   domain.ListRepository[domain.ProgressRecord]
	challenges domain.ListRepository[domain.Challenge]
}

func NewDashboardService(
	workouts domain.ListRepository[domain.Workout],
	plans domain.ListRepository[domain.WorkoutPlan],
	entries domain.ListRepository[domain.NutritionEntry],
	progress domain.ListRepository[domain.ProgressRecord],
	challenges domain.ListRepository[domain.Challenge],
) *DashboardService {
	return &DashboardService{
		workouts:   workouts,
		plans:      plans,
		entries:    entries,
		progress:   progress,
		challenges: challenges,
	}
}

// Summary fans the count queries out concurrently; the page renders from one
// round trip.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*DashboardSummary, error) {
	var summary DashboardSummary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.workouts.Count(ctx, userID)
		summary.Workouts = n
		return err
	})
	g.Go(func() error {
		n, err := s.plans.Count(ctx, userID)
		summary.WorkoutPlans = n
		return err
	})
	g.Go(func() error {
		n, err := s.entries.Count(ctx, userID)
		summary.NutritionEntries = n
		return err
	})
	g.Go(func() error {
		n, err := s.progress.Count(ctx, userID)
		summary.ProgressRecords = n
		return err
	})
	g.Go(func() error {
		n, err := s.challenges.Count(ctx, "")
		summary.Challenges = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}
