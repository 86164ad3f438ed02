//go:build e2e

package schedule_test

import (
	"fmt"
	"net/http"
	"testing"

	"courtside/internal/domain/user"
	"courtside/internal/handler/dto/request"
	"courtside/internal/handler/dto/response"
	"courtside/tests/common/authtest"
	"courtside/tests/common/dbtest"
	"courtside/tests/common/httptest"
	"courtside/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type scheduleSuite struct {
	e2e.SharedSuite

	courtID     uuid.UUID
	ownerToken  string
	rivalToken  string
	memberToken string
	adminToken  string
}

func TestScheduleSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(scheduleSuite))
}

func (s *scheduleSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleOwner))
	venueID := dbtest.CreateTestVenue(t, s.DB, ownerID, "Riverside Sports Hall")
	s.courtID = dbtest.CreateTestCourt(t, s.DB, venueID, "Court 1", 2000)

	s.ownerToken = authtest.LoginUser(t, s.Router, "owner@example.com", "password123")
	s.rivalToken = authtest.CreateAndLogin(t, s.DB, s.Router, "rival@example.com", string(user.RoleOwner))
	s.memberToken = authtest.CreateAndLogin(t, s.DB, s.Router, "member@example.com", string(user.RoleMember))
	s.adminToken = authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
}

func (s *scheduleSuite) slotsURL() string {
	return fmt.Sprintf("/api/courts/%s/slots", s.courtID)
}

func (s *scheduleSuite) TestUpsertWeeklySlots() {
	mondayMorning := request.UpsertWeeklySlotsRequest{
		Slots: []request.WeeklySlotEntry{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", Available: true},
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "11:00", Available: true},
		},
	}

	s.Run("venue owner writes the template", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, s.slotsURL(), mondayMorning, s.ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		get := httptest.PerformRequest(t, s.Router, http.MethodGet, s.slotsURL()+"?day=1", nil, s.ownerToken)
		require.Equal(t, http.StatusOK, get.Code, get.Body.String())

		var views []response.WeeklySlotResponse
		require.NoError(t, httptest.DecodeResponseBody(t, get.Body, &views))
		require.Len(t, views, 2)
		require.Equal(t, "09:00", views[0].StartTime)
		require.True(t, views[0].Available)
	})

	s.Run("upsert toggles flags on existing entries", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, s.slotsURL(), mondayMorning, s.ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		update := request.UpsertWeeklySlotsRequest{
			Slots: []request.WeeklySlotEntry{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", Available: true, Maintenance: true},
			},
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, s.slotsURL(), update, s.ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		var count int
		err := s.DB.QueryRow(t.Context(),
			"SELECT count(*) FROM weekly_slots WHERE court_id = $1 AND day_of_week = 1", s.courtID).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 2, count, "upsert must not duplicate entries")

		get := httptest.PerformRequest(t, s.Router, http.MethodGet, s.slotsURL()+"?day=1", nil, s.ownerToken)
		var views []response.WeeklySlotResponse
		require.NoError(t, httptest.DecodeResponseBody(t, get.Body, &views))
		require.True(t, views[0].Maintenance)
	})

	s.Run("overlapping template entries are rejected", func() {
		t := s.T()

		overlapping := request.UpsertWeeklySlotsRequest{
			Slots: []request.WeeklySlotEntry{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30", Available: true},
				{DayOfWeek: 1, StartTime: "10:00", EndTime: "11:00", Available: true},
			},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, s.slotsURL(), overlapping, s.ownerToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("same interval on different days does not conflict", func() {
		t := s.T()

		acrossDays := request.UpsertWeeklySlotsRequest{
			Slots: []request.WeeklySlotEntry{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", Available: true},
				{DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00", Available: true},
			},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, s.slotsURL(), acrossDays, s.ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})

	s.Run("owner of another venue is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, s.slotsURL(), mondayMorning, s.rivalToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("members cannot reach template management", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, s.slotsURL(), mondayMorning, s.memberToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("admins may write any court's template", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, s.slotsURL(), mondayMorning, s.adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})

	s.Run("unknown court returns not found", func() {
		t := s.T()

		url := fmt.Sprintf("/api/courts/%s/slots", uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url, mondayMorning, s.ownerToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

func (s *scheduleSuite) TestGetWeeklySlots() {
	s.Run("day outside 0-6 is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, s.slotsURL()+"?day=7", nil, s.ownerToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("missing day is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, s.slotsURL(), nil, s.ownerToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}
