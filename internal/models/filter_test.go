package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFilter_VisibilityByRole(t *testing.T) {
	tests := []struct {
		name         string
		role         Role
		filterByUser bool
		requesterID  string
		wantStatuses []AdStatus
		wantCreator  string
	}{
		{
			name:         "anonymous sees active only",
			role:         RoleAnonymous,
			wantStatuses: []AdStatus{StatusActive},
		},
		{
			name:         "authenticated non-admin sees active only",
			role:         RoleUser,
			requesterID:  "user-1",
			wantStatuses: []AdStatus{StatusActive},
		},
		{
			name: "admin sees every status",
			role: RoleAdmin,
		},
		{
			name:         "owner self-filter spans every status",
			role:         RoleUser,
			filterByUser: true,
			requesterID:  "user-1",
			wantCreator:  "user-1",
		},
		{
			name:         "admin self-filter is still owner-scoped",
			role:         RoleAdmin,
			filterByUser: true,
			requesterID:  "admin-1",
			wantCreator:  "admin-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := BuildFilter(tt.role, tt.filterByUser, tt.requesterID, "", "")
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatuses, filter.Statuses)
			assert.Equal(t, tt.wantCreator, filter.CreatedBy)
		})
	}
}

func TestBuildFilter_SelfFilterRequiresIdentity(t *testing.T) {
	_, err := BuildFilter(RoleUser, true, "", "", "")
	assert.ErrorIs(t, err, ErrAuthenticationRequired)

	_, err = BuildFilter(RoleAnonymous, true, "   ", "", "")
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestBuildFilter_ListingType(t *testing.T) {
	tests := []struct {
		input   string
		want    ListingType
		wantErr bool
	}{
		{input: "", want: ""},
		{input: "all", want: ""},
		{input: "ALL", want: ""},
		{input: "sell", want: ListingSell},
		{input: "Rent", want: ListingRent},
		{input: "HIRE", want: ListingHire},
		{input: "want", want: ListingWant},
		{input: "lease", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("type "+tt.input, func(t *testing.T) {
			filter, err := BuildFilter(RoleAnonymous, false, "", "", tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, filter.ListingType)
		})
	}
}

func TestAdFilter_Matches(t *testing.T) {
	ad := &Ad{
		ID:           "ad-1",
		Title:        "Honda Civic for sale",
		Description:  "Well maintained",
		Brand:        "Honda",
		Model:        "Civic",
		Phone:        "0771234567",
		CreatorName:  "Nadia",
		CreatorEmail: "nadia@example.com",
		CreatedBy:    "user-1",
		ListingType:  ListingSell,
		Status:       StatusActive,
		Published:    true,
	}

	t.Run("status restriction", func(t *testing.T) {
		filter := AdFilter{Statuses: []AdStatus{StatusActive}}
		assert.True(t, filter.Matches(ad))

		draft := *ad
		draft.Status = StatusDraft
		assert.False(t, filter.Matches(&draft))
	})

	t.Run("owner restriction", func(t *testing.T) {
		assert.True(t, AdFilter{CreatedBy: "user-1"}.Matches(ad))
		assert.False(t, AdFilter{CreatedBy: "user-2"}.Matches(ad))
	})

	t.Run("listing type restriction", func(t *testing.T) {
		assert.True(t, AdFilter{ListingType: ListingSell}.Matches(ad))
		assert.False(t, AdFilter{ListingType: ListingRent}.Matches(ad))
	})

	t.Run("search hits any single field", func(t *testing.T) {
		assert.True(t, AdFilter{SearchText: "civic"}.Matches(ad))
		assert.True(t, AdFilter{SearchText: "0771234"}.Matches(ad))
		assert.True(t, AdFilter{SearchText: "nadia@example.com"}.Matches(ad))
		assert.False(t, AdFilter{SearchText: "toyota"}.Matches(ad))
	})

	t.Run("search is a full substring, not tokenized", func(t *testing.T) {
		// "Honda sale" does not appear contiguously in any one field.
		assert.False(t, AdFilter{SearchText: "Honda sale"}.Matches(ad))
		assert.True(t, AdFilter{SearchText: "Civic for sale"}.Matches(ad))
	})
}
