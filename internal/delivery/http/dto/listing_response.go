package dto

import (
	"time"

	"jobboard/internal/domain/listing"

	"github.com/google/uuid"
)

type ListingResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	JobType     string    `json:"job_type"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListingRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Location    string `json:"location"`
	JobType     string `json:"job_type"`
}

// BrowseResponse is one browse cycle. Query is the canonical query string and
// Location the navigable path it corresponds to.
type BrowseResponse struct {
	Jobs     []ListingResponse `json:"jobs"`
	Count    int               `json:"count"`
	Query    string            `json:"query"`
	Location string            `json:"location"`
}

type SaveStatusResponse struct {
	JobID uuid.UUID `json:"job_id"`
	Saved bool      `json:"saved"`
}

type ApplyResponse struct {
	Mailto string `json:"mailto"`
}

func (r ListingRequest) Fields() listing.Fields {
	return listing.Fields{
		Title:       r.Title,
		Company:     r.Company,
		Description: r.Description,
		Location:    r.Location,
		Category:    listing.Category(r.JobType),
	}
}

func NewListingResponse(l listing.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Company:     l.Company,
		Description: l.Description,
		Location:    l.Location,
		JobType:     string(l.Category),
		UserID:      l.OwnerID,
		CreatedAt:   l.CreatedAt.UTC(),
		UpdatedAt:   l.UpdatedAt.UTC(),
	}
}

func NewListingResponses(items []listing.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewListingResponse(it))
	}
	return out
}
