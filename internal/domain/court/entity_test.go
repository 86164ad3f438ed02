//go:build unit

package court_test

import (
	"strings"
	"testing"

	"courtside/internal/domain/court"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourt(t *testing.T) {
	id := uuid.New()
	venueID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		c, err := court.NewCourt(id, venueID, "Court 1", "tennis", 2000, true)
		require.NoError(t, err)

		assert.Equal(t, id, c.ID())
		assert.Equal(t, venueID, c.VenueID())
		assert.Equal(t, "Court 1", c.Name())
		assert.Equal(t, "tennis", c.Sport())
		assert.Equal(t, int64(2000), c.PricePerHourCents())
		assert.True(t, c.IsActive())
	})

	t.Run("name is trimmed", func(t *testing.T) {
		c, err := court.NewCourt(id, venueID, "  Court 1  ", "tennis", 2000, true)
		require.NoError(t, err)
		assert.Equal(t, "Court 1", c.Name())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := court.NewCourt(id, venueID, "   ", "tennis", 2000, true)
		require.ErrorIs(t, err, court.ErrEmptyCourtName)
	})

	t.Run("name above maximum length", func(t *testing.T) {
		_, err := court.NewCourt(id, venueID, strings.Repeat("x", court.MaxCourtNameLength+1), "tennis", 2000, true)
		require.ErrorIs(t, err, court.ErrCourtNameTooLong)
	})

	t.Run("negative hourly price", func(t *testing.T) {
		_, err := court.NewCourt(id, venueID, "Court 1", "tennis", -1, true)
		require.ErrorIs(t, err, court.ErrNegativePrice)
	})
}
