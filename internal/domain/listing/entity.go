package listing

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryFullTime Category = "Full-Time"
	CategoryPartTime Category = "Part-Time"
	CategoryContract Category = "Contract"
)

func Categories() []Category {
	return []Category{CategoryFullTime, CategoryPartTime, CategoryContract}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFullTime, CategoryPartTime, CategoryContract:
		return true
	}
	return false
}

type Listing struct {
	ID          uuid.UUID
	Title       string
	Company     string
	Description string
	Location    string
	Category    Category
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fields are the owner-editable attributes of a listing. The validate tags are
// the rule table checked before any store call.
type Fields struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Company     string   `json:"company" validate:"required,min=2"`
	Description string   `json:"description" validate:"required,min=50"`
	Location    string   `json:"location" validate:"required,min=2"`
	Category    Category `json:"job_type" validate:"required,oneof=Full-Time Part-Time Contract"`
}

func (l Listing) Fields() Fields {
	return Fields{
		Title:       l.Title,
		Company:     l.Company,
		Description: l.Description,
		Location:    l.Location,
		Category:    l.Category,
	}
}
