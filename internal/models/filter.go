package models

import (
	"fmt"
	"strings"
)

// AdFilter is a declarative description of a listing query. It carries no
// SQL so the visibility predicate stays testable independent of any store;
// the persistence adapter translates it.
type AdFilter struct {
	// CreatedBy, when non-empty, restricts the result to that owner's ads.
	CreatedBy string
	// Statuses, when non-empty, restricts the result to those statuses.
	// Empty means no status restriction.
	Statuses []AdStatus
	// ListingType, when non-empty, restricts to one listing type.
	ListingType ListingType
	// SearchText, when non-empty, is matched as a full substring against
	// title, description, brand, model, phone, whatsapp, creator name and
	// creator email (any single field containing it is a hit).
	SearchText string
}

// BuildFilter translates a viewer role and filter intent into an AdFilter
// consistent with the visibility rules:
//
//   - filterByUser restricts to the requester's own ads across every status;
//     owners manage drafts, rejected and expired ads alike.
//   - admins browsing the general listing see every status.
//   - everyone else sees ACTIVE ads only.
func BuildFilter(role Role, filterByUser bool, requesterID, searchText, listingType string) (AdFilter, error) {
	filter := AdFilter{
		SearchText: strings.TrimSpace(searchText),
	}

	lt, err := ParseListingType(listingType)
	if err != nil {
		return AdFilter{}, err
	}
	filter.ListingType = lt

	if filterByUser {
		if strings.TrimSpace(requesterID) == "" {
			return AdFilter{}, fmt.Errorf("%w: own-ads filter needs a signed-in requester", ErrAuthenticationRequired)
		}
		filter.CreatedBy = requesterID
		return filter, nil
	}

	if role == RoleAdmin {
		return filter, nil
	}

	filter.Statuses = []AdStatus{StatusActive}
	return filter, nil
}

// Matches applies the filter to a single ad in memory. The mock repository
// uses it directly; the postgres repository translates the same semantics
// to SQL.
func (f AdFilter) Matches(ad *Ad) bool {
	if f.CreatedBy != "" && ad.CreatedBy != f.CreatedBy {
		return false
	}

	if len(f.Statuses) > 0 {
		found := false
		for _, status := range f.Statuses {
			if ad.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.ListingType != "" && ad.ListingType != f.ListingType {
		return false
	}

	if f.SearchText != "" && !adContains(ad, f.SearchText) {
		return false
	}

	return true
}

// adContains reports whether any searchable field contains the full search
// string, case-insensitively.
func adContains(ad *Ad, search string) bool {
	needle := strings.ToLower(search)
	fields := []string{
		ad.Title,
		ad.Description,
		ad.Brand,
		ad.Model,
		ad.Phone,
		ad.Whatsapp,
		ad.CreatorName,
		ad.CreatorEmail,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// ListingParams is the raw listing request as it arrives at the service.
type ListingParams struct {
	FilterByUser bool
	SearchText   string
	ListingType  string
	Page         int
	Limit        int
}
