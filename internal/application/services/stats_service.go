package services

import (
	"context"
	"time"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
)

// RecentReviewWindow is how far back the dashboard counts recent reviews
const RecentReviewWindow = 7 * 24 * time.Hour

// StatsService computes the administration dashboard totals
type StatsService struct {
	users      repositories.UserRepository
	categories repositories.CategoryRepository
	roles      repositories.RoleRepository
	locations  repositories.LocationRepository
	places     repositories.PlaceRepository
	reviews    repositories.ReviewRepository
	gate       auth.Authorizer
	now        func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(
	users repositories.UserRepository,
	categories repositories.CategoryRepository,
	roles repositories.RoleRepository,
	locations repositories.LocationRepository,
	places repositories.PlaceRepository,
	reviews repositories.ReviewRepository,
	gate auth.Authorizer,
) *StatsService {
	return &StatsService{
		users:      users,
		categories: categories,
		roles:      roles,
		locations:  locations,
		places:     places,
		reviews:    reviews,
		gate:       gate,
		now:        time.Now,
	}
}

// Get returns the directory totals
func (s *StatsService) Get(ctx context.Context, identity *auth.Identity) (*entities.DirectoryStats, error) {
	if err := s.gate.Authorize(identity, auth.PermReadStats); err != nil {
		return nil, err
	}

	stats := &entities.DirectoryStats{}
	counters := []struct {
		dst   *int
		count func(context.Context) (int, error)
	}{
		{&stats.TotalUsers, s.users.Count},
		{&stats.TotalCategories, s.categories.Count},
		{&stats.TotalRoles, s.roles.Count},
		{&stats.TotalLocations, s.locations.Count},
		{&stats.TotalPlaces, s.places.Count},
		{&stats.TotalReviews, s.reviews.Count},
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	recent, err := s.reviews.CountSince(ctx, s.now().Add(-RecentReviewWindow))
	if err != nil {
		return nil, err
	}
	stats.RecentReviews = recent

	return stats, nil
}
