package routes

import (
	"net/http"
	"time"

	"github.com/zatekoja/tourism-directory/backend/internal/api/handlers"
	"github.com/zatekoja/tourism-directory/backend/internal/api/middleware"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
)

// Handlers groups the route handlers
type Handlers struct {
	Auth      *handlers.AuthHandler
	Category  *handlers.CategoryHandler
	Location  *handlers.LocationHandler
	Amenity   *handlers.AmenityHandler
	Place     *handlers.PlaceHandler
	Review    *handlers.ReviewHandler
	Favorite  *handlers.FavoriteHandler
	User      *handlers.UserHandler
	Admin     *handlers.AdminHandler
	Health    *handlers.HealthHandler
	Telemetry http.Handler
}

// Options configures the middleware chain
type Options struct {
	AllowedOrigins           []string
	Session                  middleware.SessionResolver
	SessionCookie            string
	Cache                    *middleware.CacheMiddleware
	Metrics                  *observability.Metrics
	AuthPerMinute            int
	RecommendationsPerMinute int
}

// Router holds all route handlers
type Router struct {
	mux      *http.ServeMux
	handlers Handlers
	opts     Options
}

// NewRouter creates a new router
func NewRouter(h Handlers, opts Options) *Router {
	return &Router{
		mux:      http.NewServeMux(),
		handlers: h,
		opts:     opts,
	}
}

// handle registers pattern with per-route observability so spans carry the matched pattern
func (r *Router) handle(pattern string, h http.HandlerFunc, mws ...func(http.Handler) http.Handler) {
	var handler http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	r.mux.Handle(pattern, middleware.ObservabilityMiddleware(r.opts.Metrics)(handler))
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	h := r.handlers

	// Health and telemetry
	if h.Health != nil {
		r.mux.HandleFunc("GET /health", h.Health.Health)
	}
	if h.Telemetry != nil {
		r.mux.Handle("GET /metrics", h.Telemetry)
	}

	authLimit := middleware.RateLimit(r.opts.AuthPerMinute, time.Minute)
	recommendationLimit := middleware.RateLimit(r.opts.RecommendationsPerMinute, time.Minute)

	// Auth endpoints
	r.handle("POST /auth/register", h.Auth.Register, authLimit)
	r.handle("POST /auth/login", h.Auth.Login, authLimit)
	r.handle("POST /auth/logout", h.Auth.Logout)
	r.handle("GET /auth/me", h.Auth.Me)

	// Category endpoints
	r.handle("GET /categories", h.Category.ListCategories)
	r.handle("GET /categories/{query}", h.Category.GetCategory)
	r.handle("GET /categories/{query}/recommendations", h.Category.GetRecommendations, recommendationLimit)
	r.handle("GET /admin/categories", h.Category.AdminListCategories)
	r.handle("POST /admin/categories", h.Category.CreateCategory)
	r.handle("GET /admin/categories/{id}", h.Category.AdminGetCategory)
	r.handle("PUT /admin/categories/{id}", h.Category.UpdateCategory)
	r.handle("POST /admin/categories/{id}/toggle", h.Category.ToggleCategory)
	r.handle("DELETE /admin/categories/{id}", h.Category.DeleteCategory)

	// Location endpoints
	r.handle("GET /locations", h.Location.ListLocations)
	r.handle("POST /locations", h.Location.CreateLocation)
	r.handle("GET /locations/{id}", h.Location.GetLocation)
	r.handle("PUT /locations/{id}", h.Location.UpdateLocation)
	r.handle("DELETE /locations/{id}", h.Location.DeleteLocation)

	// Amenity endpoints
	r.handle("GET /amenities", h.Amenity.ListAmenities)
	r.handle("POST /amenities", h.Amenity.CreateAmenity)
	r.handle("GET /amenities/{id}", h.Amenity.GetAmenity)
	r.handle("PUT /amenities/{id}", h.Amenity.UpdateAmenity)
	r.handle("DELETE /amenities/{id}", h.Amenity.DeleteAmenity)

	// Place endpoints
	r.handle("GET /places", h.Place.ListPlaces)
	r.handle("POST /places", h.Place.CreatePlace)
	r.handle("GET /places/search", h.Place.SearchPlaces)
	r.handle("GET /places/slug/{slug}", h.Place.GetPlaceBySlug)
	r.handle("GET /places/{id}", h.Place.GetPlace)
	r.handle("PUT /places/{id}", h.Place.UpdatePlace)
	r.handle("DELETE /places/{id}", h.Place.DeletePlace)

	// Review endpoints
	r.handle("GET /reviews", h.Review.ListReviews)
	r.handle("POST /reviews", h.Review.CreateReview)
	r.handle("GET /reviews/{id}", h.Review.GetReview)
	r.handle("PUT /reviews/{id}", h.Review.UpdateReview)
	r.handle("DELETE /reviews/{id}", h.Review.DeleteReview)

	// Favorite endpoints
	r.handle("GET /favorites", h.Favorite.ListFavorites)
	r.handle("POST /favorites", h.Favorite.AddFavorite)
	r.handle("GET /favorites/{placeId}", h.Favorite.GetFavoriteStatus)
	r.handle("DELETE /favorites/{placeId}", h.Favorite.RemoveFavorite)

	// Admin endpoints
	r.handle("GET /admin/users", h.User.ListUsers)
	r.handle("POST /admin/users", h.User.CreateUser)
	r.handle("GET /admin/users/{id}", h.User.GetUser)
	r.handle("PUT /admin/users/{id}", h.User.UpdateUser)
	r.handle("DELETE /admin/users/{id}", h.User.DeleteUser)
	r.handle("POST /admin/users/{id}/reset-password", h.User.ResetPassword)
	r.handle("GET /admin/roles", h.Admin.ListRoles)
	r.handle("GET /admin/stats", h.Admin.GetStats)

	var handler http.Handler = r.mux

	if r.opts.Cache != nil {
		handler = r.opts.Cache.Middleware(handler)
	}

	if r.opts.Session != nil {
		handler = middleware.SessionMiddleware(r.opts.Session, r.opts.SessionCookie)(handler)
	}

	handler = middleware.ResponseOptimization(handler)

	handler = middleware.LoggingMiddleware(handler)

	handler = middleware.CORSMiddleware(r.opts.AllowedOrigins)(handler)

	return handler
}
