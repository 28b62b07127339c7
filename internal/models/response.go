package models

import "time"

// ErrorResponse represents error response format
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// AdResponse is the API view of an ad. Promotion activity is derived at
// read time, so a stale boosted flag with a past expiry renders as inactive.
type AdResponse struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Brand                string      `json:"brand"`
	Model                string      `json:"model"`
	Year                 *int        `json:"year,omitempty"`
	Price                *float64    `json:"price,omitempty"`
	Mileage              *int        `json:"mileage,omitempty"`
	EngineCapacity       *int        `json:"engine_capacity,omitempty"`
	Location             string      `json:"location"`
	ListingType          ListingType `json:"listing_type"`
	Status               AdStatus    `json:"status"`
	Published            bool        `json:"published"`
	IsDraft              bool        `json:"is_draft"`
	RejectionDescription *string     `json:"rejection_description,omitempty"`
	CreatedBy            string      `json:"created_by"`
	IsBoosted            bool        `json:"is_boosted"`
	IsFeatured           bool        `json:"is_featured"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// ToResponse converts an Ad to its API view at the given instant.
func (a *Ad) ToResponse(now time.Time) AdResponse {
	return AdResponse{
		ID:                   a.ID,
		Title:                a.Title,
		Description:          a.Description,
		Brand:                a.Brand,
		Model:                a.Model,
		Year:                 a.Year,
		Price:                a.Price,
		Mileage:              a.Mileage,
		EngineCapacity:       a.EngineCC,
		Location:             a.Location,
		ListingType:          a.ListingType,
		Status:               a.Status,
		Published:            a.Published,
		IsDraft:              a.IsDraft,
		RejectionDescription: a.RejectionDescription,
		CreatedBy:            a.CreatedBy,
		IsBoosted:            a.IsBoostedAt(now),
		IsFeatured:           a.IsFeaturedAt(now),
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

// ListingResponse is the paged listing API response.
type ListingResponse struct {
	Items []AdResponse `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// FromAds converts ads to their API views at the given instant.
func FromAds(ads []Ad, now time.Time) []AdResponse {
	items := make([]AdResponse, len(ads))
	for i := range ads {
		items[i] = ads[i].ToResponse(now)
	}
	return items
}

// ComparisonResponse is the API view of a resolved comparison.
type ComparisonResponse struct {
	First         AdResponse        `json:"first"`
	Second        *AdResponse       `json:"second,omitempty"`
	SecondCleared bool              `json:"second_cleared,omitempty"`
	Winners       map[string]Winner `json:"winners,omitempty"`
}

// ToResponse converts a Comparison to its API view at the given instant.
func (c Comparison) ToResponse(now time.Time) ComparisonResponse {
	resp := ComparisonResponse{
		First:         c.First.ToResponse(now),
		SecondCleared: c.SecondCleared,
		Winners:       c.Winners,
	}
	if c.Second != nil {
		second := c.Second.ToResponse(now)
		resp.Second = &second
	}
	return resp
}
