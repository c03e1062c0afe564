package dto

import "jobboard/internal/usecase/dashboard"

type DashboardStats struct {
	TotalPosted       int `json:"total_posted"`
	PostedThisMonth   int `json:"posted_this_month"`
	DistinctLocations int `json:"distinct_locations"`
	SavedCount        int `json:"saved_count"`
}

type DashboardResponse struct {
	Posted []ListingResponse `json:"posted"`
	Saved  []ListingResponse `json:"saved"`
	Stats  DashboardStats    `json:"stats"`
}

func NewDashboardResponse(o dashboard.Overview) DashboardResponse {
	return DashboardResponse{
		Posted: NewListingResponses(o.Posted),
		Saved:  NewListingResponses(o.Saved),
		Stats: DashboardStats{
			TotalPosted:       o.Stats.TotalPosted,
			PostedThisMonth:   o.Stats.PostedThisMonth,
			DistinctLocations: o.Stats.DistinctLocations,
			SavedCount:        o.Stats.SavedCount,
		},
	}
}
