package court

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyCourtName   = errors.New("court name cannot be empty")
	ErrCourtNameTooLong = errors.New("court name is too long (max 255 characters)")
	ErrNegativePrice    = errors.New("hourly price cannot be negative")
)

const MaxCourtNameLength = 255

type Court struct {
	id                uuid.UUID
	venueID           uuid.UUID
	name              string
	sport             string
	pricePerHourCents int64
	isActive          bool
}

func NewCourt(id, venueID uuid.UUID, name, sport string, pricePerHourCents int64, isActive bool) (*Court, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCourtName
	}
	if len(name) > MaxCourtNameLength {
		return nil, ErrCourtNameTooLong
	}
	if pricePerHourCents < 0 {
		return nil, ErrNegativePrice
	}

	return &Court{
		id:                id,
		venueID:           venueID,
		name:              name,
		sport:             sport,
		pricePerHourCents: pricePerHourCents,
		isActive:          isActive,
	}, nil
}

func (c *Court) ID() uuid.UUID            { return c.id }
func (c *Court) VenueID() uuid.UUID       { return c.venueID }
func (c *Court) Name() string             { return c.name }
func (c *Court) Sport() string            { return c.sport }
func (c *Court) PricePerHourCents() int64 { return c.pricePerHourCents }
func (c *Court) IsActive() bool           { return c.isActive }
