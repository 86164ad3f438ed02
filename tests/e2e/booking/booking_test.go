//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"courtside/internal/domain/user"
	"courtside/internal/handler/dto/request"
	"courtside/internal/handler/dto/response"
	"courtside/tests/common/authtest"
	"courtside/tests/common/dbtest"
	"courtside/tests/common/httptest"
	"courtside/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type bookingSuite struct {
	e2e.SharedSuite

	courtID     uuid.UUID
	memberToken string
	otherToken  string
	adminToken  string
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleOwner))
	venueID := dbtest.CreateTestVenue(t, s.DB, ownerID, "Riverside Sports Hall")
	s.courtID = dbtest.CreateTestCourt(t, s.DB, venueID, "Court 1", 2000)
	dbtest.SeedWeeklyGrid(t, s.DB, s.courtID)

	s.memberToken = authtest.CreateAndLogin(t, s.DB, s.Router, "member@example.com", string(user.RoleMember))
	s.otherToken = authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", string(user.RoleMember))
	s.adminToken = authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
}

// futureDate is a date far enough out that the cancellation window is open.
func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func (s *bookingSuite) createBooking(token, date, start, end string) *response.BookingResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
		CourtID:   s.courtID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return &res
}

func (s *bookingSuite) TestCreateBooking() {
	s.Run("single slot is priced from the hourly rate", func() {
		t := s.T()

		res := s.createBooking(s.memberToken, futureDate(), "10:00", "11:30")

		expected := &response.BookingResponse{
			CourtName:     "Court 1",
			VenueName:     "Riverside Sports Hall",
			Date:          futureDate(),
			Status:        "confirmed",
			PaymentStatus: "paid",
			TotalCents:    3000,
			Slots: []response.BookingSlotResponse{
				{StartTime: "10:00", EndTime: "11:30", DurationMin: 90, AmountCents: 3000},
			},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "UserID", "CourtID", "CreatedAt", "UpdatedAt"),
			cmpopts.IgnoreFields(response.BookingSlotResponse{}, "ID"),
		}
		if diff := cmp.Diff(expected, res, opts...); diff != "" {
			t.Errorf("booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("overlapping booking is rejected across users", func() {
		t := s.T()

		s.createBooking(s.memberToken, futureDate(), "10:00", "11:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			CourtID:   s.courtID,
			Date:      futureDate(),
			StartTime: "10:30",
			EndTime:   "11:30",
		}, s.otherToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("touching intervals do not conflict", func() {
		s.createBooking(s.memberToken, futureDate(), "10:00", "11:00")
		s.createBooking(s.otherToken, futureDate(), "11:00", "12:00")
	})

	s.Run("past date is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			CourtID:   s.courtID,
			Date:      time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
			StartTime: "10:00",
			EndTime:   "11:00",
		}, s.memberToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("unknown court returns not found", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			CourtID:   uuid.New(),
			Date:      futureDate(),
			StartTime: "10:00",
			EndTime:   "11:00",
		}, s.memberToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("court in an unapproved venue is not bookable", func() {
		t := s.T()

		_, err := s.DB.Exec(t.Context(), "UPDATE venues SET status = 'pending'")
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			CourtID:   s.courtID,
			Date:      futureDate(),
			StartTime: "10:00",
			EndTime:   "11:00",
		}, s.memberToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("inverted time range is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			CourtID:   s.courtID,
			Date:      futureDate(),
			StartTime: "11:00",
			EndTime:   "10:00",
		}, s.memberToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestBulkBooking() {
	s.Run("several slots book atomically under one total", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/bulk", request.CreateBulkBookingRequest{
			CourtID: s.courtID,
			Date:    futureDate(),
			Slots: []request.SlotRange{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "10:00", EndTime: "11:00"},
				{StartTime: "14:00", EndTime: "15:00"},
			},
		}, s.memberToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, int64(6000), res.TotalCents)
		require.Len(t, res.Slots, 3)
	})

	s.Run("one conflicting slot rolls back the whole batch", func() {
		t := s.T()

		s.createBooking(s.otherToken, futureDate(), "10:00", "11:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/bulk", request.CreateBulkBookingRequest{
			CourtID: s.courtID,
			Date:    futureDate(),
			Slots: []request.SlotRange{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "10:30", EndTime: "11:30"},
			},
		}, s.memberToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// Nothing from the failed batch may survive, including the clean slot.
		var count int
		err := s.DB.QueryRow(t.Context(),
			"SELECT count(*) FROM bookings b JOIN users u ON u.id = b.user_id WHERE u.email = 'member@example.com'").Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)

		listW := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, s.memberToken)
		require.Equal(t, http.StatusOK, listW.Code)
		require.Equal(t, "[]", listW.Body.String())
	})

	s.Run("slots overlapping each other within the batch are rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/bulk", request.CreateBulkBookingRequest{
			CourtID: s.courtID,
			Date:    futureDate(),
			Slots: []request.SlotRange{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "09:30", EndTime: "10:30"},
			},
		}, s.memberToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("batch size is capped", func() {
		t := s.T()

		slots := make([]request.SlotRange, 0, 13)
		for hour := 6; hour < 19; hour++ {
			slots = append(slots, request.SlotRange{
				StartTime: fmt.Sprintf("%02d:00", hour),
				EndTime:   fmt.Sprintf("%02d:00", hour+1),
			})
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/bulk", request.CreateBulkBookingRequest{
			CourtID: s.courtID,
			Date:    futureDate(),
			Slots:   slots,
		}, s.memberToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestGetBooking() {
	s.Run("members only see their own bookings", func() {
		t := s.T()

		created := s.createBooking(s.memberToken, futureDate(), "10:00", "11:00")

		own := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, s.memberToken)
		require.Equal(t, http.StatusOK, own.Code)

		foreign := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, s.otherToken)
		require.Equal(t, http.StatusForbidden, foreign.Code)

		admin := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, s.adminToken)
		require.Equal(t, http.StatusOK, admin.Code)
	})

	s.Run("unknown booking returns not found", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+uuid.NewString(), nil, s.memberToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *bookingSuite) TestAvailability() {
	s.Run("projection flags booked template slots", func() {
		t := s.T()

		s.createBooking(s.memberToken, futureDate(), "10:00", "11:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("/api/courts/%s/availability?date=%s", s.courtID, futureDate()), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Len(t, res.Slots, 16, "hourly template from 06:00 to 22:00")

		for _, slot := range res.Slots {
			if slot.StartTime == "10:00" {
				require.True(t, slot.Booked, "booked slot not flagged")
			} else {
				require.False(t, slot.Booked, "slot %s wrongly flagged", slot.StartTime)
			}
		}
	})

	s.Run("maintenance slots drop out of the projection", func() {
		t := s.T()

		_, err := s.DB.Exec(t.Context(),
			"UPDATE weekly_slots SET is_maintenance = true WHERE court_id = $1 AND start_time = '06:00'", s.courtID)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("/api/courts/%s/availability?date=%s", s.courtID, futureDate()), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Len(t, res.Slots, 15)
		for _, slot := range res.Slots {
			require.NotEqual(t, "06:00", slot.StartTime)
		}
	})
}

func (s *bookingSuite) TestCancelBooking() {
	s.Run("cancelling ahead of the window frees the slot", func() {
		t := s.T()

		created := s.createBooking(s.memberToken, futureDate(), "10:00", "11:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+created.ID.String()+"/cancel", nil, s.memberToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, "cancelled", res.Status)
		require.Equal(t, "refunded", res.PaymentStatus)

		// The freed slot can be booked again, by anyone.
		s.createBooking(s.otherToken, futureDate(), "10:00", "11:00")
	})

	s.Run("cancelling twice is rejected", func() {
		t := s.T()

		created := s.createBooking(s.memberToken, futureDate(), "10:00", "11:00")

		first := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+created.ID.String()+"/cancel", nil, s.memberToken)
		require.Equal(t, http.StatusOK, first.Code)

		second := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+created.ID.String()+"/cancel", nil, s.memberToken)
		require.Equal(t, http.StatusUnprocessableEntity, second.Code, second.Body.String())
	})

	s.Run("cancelling inside the window is rejected", func() {
		t := s.T()

		bookingID := s.insertNearTermBooking(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+bookingID.String()+"/cancel", nil, s.memberToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("members cannot cancel another user's booking", func() {
		t := s.T()

		created := s.createBooking(s.memberToken, futureDate(), "10:00", "11:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+created.ID.String()+"/cancel", nil, s.otherToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("admins can cancel any booking", func() {
		t := s.T()

		created := s.createBooking(s.memberToken, futureDate(), "10:00", "11:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingsURL+"/"+created.ID.String()+"/cancel", nil, s.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

// insertNearTermBooking writes a confirmed booking starting roughly 12 hours
// from now directly into the store, inside the 24h cancellation window but
// still in the future.
func (s *bookingSuite) insertNearTermBooking(t *testing.T) uuid.UUID {
	t.Helper()

	target := time.Now().Add(12 * time.Hour)
	hour := target.Hour()
	if hour == 23 {
		hour = 22
	}
	start := fmt.Sprintf("%02d:00", hour)
	end := fmt.Sprintf("%02d:00", hour+1)
	date := target.Format("2006-01-02")

	ctx := context.Background()
	var memberID uuid.UUID
	err := s.DB.QueryRow(ctx, "SELECT id FROM users WHERE email = 'member@example.com'").Scan(&memberID)
	require.NoError(t, err)

	bookingID := uuid.New()
	_, err = s.DB.Exec(ctx,
		"INSERT INTO bookings (id, user_id, court_id, booking_date, total_cents, status, payment_status) VALUES ($1, $2, $3, $4::date, 2000, 'confirmed', 'paid')",
		bookingID, memberID, s.courtID, date)
	require.NoError(t, err)

	_, err = s.DB.Exec(ctx,
		"INSERT INTO booking_slots (id, booking_id, court_id, booking_date, start_time, end_time, duration_min, amount_cents, active) VALUES ($1, $2, $3, $4::date, $5::time, $6::time, 60, 2000, true)",
		uuid.New(), bookingID, s.courtID, date, start, end)
	require.NoError(t, err)

	return bookingID
}
