package dto

import "jobboard/internal/usecase/browser"

func NewBrowseResponse(s browser.Snapshot) BrowseResponse {
	return BrowseResponse{
		Jobs:     NewListingResponses(s.Listings),
		Count:    s.Count,
		Query:    s.Query,
		Location: s.Location,
	}
}
