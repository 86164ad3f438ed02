package venue

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidVenueStatus = errors.New("invalid venue status")

// Status tracks the admin approval workflow for a venue.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidVenueStatus
	}
	return status, nil
}

type Venue struct {
	id       uuid.UUID
	ownerID  uuid.UUID
	name     string
	status   Status
	isActive bool
}

func Reconstruct(id, ownerID uuid.UUID, name string, status Status, isActive bool) *Venue {
	return &Venue{
		id:       id,
		ownerID:  ownerID,
		name:     name,
		status:   status,
		isActive: isActive,
	}
}

func (v *Venue) ID() uuid.UUID      { return v.id }
func (v *Venue) OwnerID() uuid.UUID { return v.ownerID }
func (v *Venue) Name() string       { return v.name }
func (v *Venue) Status() Status     { return v.status }
func (v *Venue) IsActive() bool     { return v.isActive }

// PubliclyBookable gates customer bookings on approval and active state.
func (v *Venue) PubliclyBookable() bool {
	return v.status == StatusApproved && v.isActive
}
