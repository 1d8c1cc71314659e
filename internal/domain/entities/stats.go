package entities

// DirectoryStats are the totals shown on the administration dashboard
type DirectoryStats struct {
	TotalUsers      int `json:"totalUsers"`
	TotalCategories int `json:"totalCategories"`
	TotalRoles      int `json:"totalRoles"`
	TotalLocations  int `json:"totalLocations"`
	TotalPlaces     int `json:"totalPlaces"`
	TotalReviews    int `json:"totalReviews"`
	RecentReviews   int `json:"recentReviews"`
}
