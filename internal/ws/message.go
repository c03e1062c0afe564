package ws

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/usecase/browser"
)

const (
	MessageFilter      = "filter"
	MessageRefresh     = "refresh"
	MessageSnapshot    = "snapshot"
	MessageJobsUpdated = "jobs_updated"
	MessageError       = "error"
)

// inbound is what a client may send. Query is a filter query string such as
// "search=go&type=Contract".
type inbound struct {
	Type  string `json:"type"`
	Query string `json:"query"`
}

type snapshotEvent struct {
	Type     string                `json:"type"`
	State    string                `json:"state"`
	Query    string                `json:"query"`
	Location string                `json:"location"`
	Count    int                   `json:"count"`
	Jobs     []dto.ListingResponse `json:"jobs"`
	Failed   bool                  `json:"failed"`
}

type jobsUpdatedEvent struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newSnapshotEvent(s browser.Snapshot) snapshotEvent {
	return snapshotEvent{
		Type:     MessageSnapshot,
		State:    s.State.String(),
		Query:    s.Query,
		Location: s.Location,
		Count:    s.Count,
		Jobs:     dto.NewListingResponses(s.Listings),
		Failed:   s.Failed,
	}
}
