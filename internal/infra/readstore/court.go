package readstore

import (
	"context"

	"courtside/internal/domain/court"
	"courtside/internal/domain/venue"
	"courtside/internal/infra"
	"courtside/internal/infra/db"
	"courtside/internal/pkg/pgconv"
	"courtside/internal/usecase/queries"
	"courtside/internal/usecase/shared"

	"github.com/google/uuid"
)

type CourtReadStore struct {
	db db.DBTX
}

func NewCourtReadStore(dbtx db.DBTX) *CourtReadStore {
	return &CourtReadStore{db: dbtx}
}

const findCourtByIDSQL = `
SELECT c.id, c.venue_id, v.name, c.name, c.sport, c.price_per_hour_cents, c.is_active
FROM courts c
JOIN venues v ON v.id = c.venue_id
WHERE c.id = $1`

func (r *CourtReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CourtView, error) {
	var view queries.CourtView
	err := r.db.QueryRow(ctx, findCourtByIDSQL, id).Scan(
		&view.ID,
		&view.VenueID,
		&view.VenueName,
		&view.Name,
		&view.Sport,
		&view.PricePerHourCents,
		&view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find court by ID", err)
	}
	return &view, nil
}

// Listed courts are restricted to what customers may book.
const listCourtsSQL = `
SELECT c.id, c.venue_id, v.name, c.name, c.sport, c.price_per_hour_cents, c.is_active
FROM courts c
JOIN venues v ON v.id = c.venue_id
WHERE c.is_active AND v.is_active AND v.status = 'approved'
ORDER BY v.name, c.name`

func (r *CourtReadStore) List(ctx context.Context) ([]*queries.CourtView, error) {
	rows, err := r.db.Query(ctx, listCourtsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list courts", err)
	}
	defer rows.Close()

	var result []*queries.CourtView
	for rows.Next() {
		var view queries.CourtView
		if err := rows.Scan(
			&view.ID,
			&view.VenueID,
			&view.VenueName,
			&view.Name,
			&view.Sport,
			&view.PricePerHourCents,
			&view.IsActive,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan court row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read court rows", err)
	}
	return result, nil
}

const courtSnapshotSQL = `
SELECT c.id, c.venue_id, v.owner_id, v.name, c.name, c.sport, c.price_per_hour_cents, c.is_active,
       v.status, v.is_active
FROM courts c
JOIN venues v ON v.id = c.venue_id
WHERE c.id = $1`

// Snapshot serves the write side's court preconditions. The row is
// reconstructed into court and venue entities so commands evaluate the
// aggregate rules rather than raw columns.
func (r *CourtReadStore) Snapshot(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.CourtSnapshot, error) {
	var (
		courtID, venueID, ownerID uuid.UUID
		venueName, courtName      string
		sport, venueStatus        string
		pricePerHourCents         int64
		courtActive, venueActive  bool
	)
	err := dbtx.QueryRow(ctx, courtSnapshotSQL, id).Scan(
		&courtID,
		&venueID,
		&ownerID,
		&venueName,
		&courtName,
		&sport,
		&pricePerHourCents,
		&courtActive,
		&venueStatus,
		&venueActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load court snapshot", err)
	}

	courtEntity, err := court.NewCourt(courtID, venueID, courtName, sport, pricePerHourCents, courtActive)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid court row", err)
	}
	status, err := venue.NewStatus(venueStatus)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid venue row", err)
	}
	return &shared.CourtSnapshot{
		Court: courtEntity,
		Venue: venue.Reconstruct(venueID, ownerID, venueName, status, venueActive),
	}, nil
}
