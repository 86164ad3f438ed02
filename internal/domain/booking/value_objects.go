package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeOfDay = errors.New("time of day must be HH:MM within a single day")
	ErrInvalidInterval  = errors.New("interval start must be before end")
)

// TimeOfDay is a wall-clock time expressed as minutes from midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay accepts exactly "HH:MM"; "24:00" is allowed as an end
// boundary. Anything else, including trailing characters, is rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeOfDay
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidTimeOfDay
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) Minutes() int {
	return int(t)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On anchors the time of day to a calendar date in the given location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(t)/60, int(t)%60, 0, 0, date.Location())
}

// Interval is a half-open [start, end) range of wall-clock time on one date.
type Interval struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewInterval(start, end TimeOfDay) (Interval, error) {
	if start < 0 || int(end) > minutesPerDay || start >= end {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start, end: end}, nil
}

// ParseInterval builds an interval from "HH:MM" boundaries.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(s, e)
}

func (iv Interval) Start() TimeOfDay { return iv.start }
func (iv Interval) End() TimeOfDay   { return iv.end }

func (iv Interval) DurationMinutes() int {
	return int(iv.end) - int(iv.start)
}

// Overlaps applies the half-open rule: touching endpoints do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.start < other.end && other.start < iv.end
}

func (iv Interval) String() string {
	return iv.start.String() + "-" + iv.end.String()
}

// Money is an amount in cents; bookings never deal in fractional cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// PriceFor prorates an hourly rate over an interval's duration.
func PriceFor(pricePerHourCents int64, iv Interval) Money {
	return Money{cents: pricePerHourCents * int64(iv.DurationMinutes()) / 60}
}

type Notes struct {
	value string
}

func NewNotes(value string) Notes {
	return Notes{value: value}
}

func (n Notes) String() string {
	return n.value
}

func (n Notes) IsEmpty() bool {
	return n.value == ""
}
