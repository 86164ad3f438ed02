//go:build unit

package venue_test

import (
	"testing"

	"courtside/internal/domain/venue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  venue.Status
		errIs error
	}{
		{name: "pending", input: "pending", want: venue.StatusPending},
		{name: "approved", input: "approved", want: venue.StatusApproved},
		{name: "rejected", input: "rejected", want: venue.StatusRejected},
		{name: "unknown value", input: "suspended", errIs: venue.ErrInvalidVenueStatus},
		{name: "empty", input: "", errIs: venue.ErrInvalidVenueStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := venue.NewStatus(tt.input)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.input, status.String())
		})
	}
}

func TestVenuePubliclyBookable(t *testing.T) {
	tests := []struct {
		name     string
		status   venue.Status
		isActive bool
		want     bool
	}{
		{name: "approved and active", status: venue.StatusApproved, isActive: true, want: true},
		{name: "approved but inactive", status: venue.StatusApproved, isActive: false, want: false},
		{name: "pending", status: venue.StatusPending, isActive: true, want: false},
		{name: "rejected", status: venue.StatusRejected, isActive: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := venue.Reconstruct(uuid.New(), uuid.New(), "Riverside Sports Hall", tt.status, tt.isActive)
			assert.Equal(t, tt.want, v.PubliclyBookable())
		})
	}
}
