package api

import (
	"errors"
	"net/http"
	"strconv"

	"courtside/internal/domain/schedule"
	reqdto "courtside/internal/handler/dto/request"
	resdto "courtside/internal/handler/dto/response"
	"courtside/internal/handler/middleware"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	scheduleCommands commands.ScheduleCommands
	scheduleQueries  queries.ScheduleQueries
}

func NewScheduleHandler(scheduleCommands commands.ScheduleCommands, scheduleQueries queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleCommands: scheduleCommands,
		scheduleQueries:  scheduleQueries,
	}
}

// @Summary Upsert weekly slots
// @Description Replace flags on a court's weekly availability template
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Court ID"
// @Param request body reqdto.UpsertWeeklySlotsRequest true "Weekly template"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /courts/{id}/slots [put]
func (h *ScheduleHandler) UpsertWeeklySlots(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	role, roleOK := middleware.GetUserRole(c)
	if !ok || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	courtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid court ID format",
		})
		return
	}

	var req reqdto.UpsertWeeklySlotsRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.scheduleCommands.UpsertWeeklySlots(c.Request.Context(), courtID, req, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCourtNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Court not found"})
		case errors.Is(err, commands.ErrNotCourtOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Court belongs to another owner"})
		case errors.Is(err, commands.ErrTemplateConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Weekly template intervals overlap"})
		case errors.Is(err, commands.ErrInvalidTemplate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weekly template"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get weekly slots
// @Description Get a court's weekly template for one weekday
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Court ID"
// @Param day query int true "Day of week (0=Sunday .. 6=Saturday)"
// @Success 200 {array} resdto.WeeklySlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /courts/{id}/slots [get]
func (h *ScheduleHandler) GetWeeklySlots(c *gin.Context) {
	courtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid court ID format",
		})
		return
	}

	dayInt, err := strconv.Atoi(c.Query("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing day, expected 0-6",
		})
		return
	}
	day, err := schedule.NewDayOfWeek(dayInt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing day, expected 0-6",
		})
		return
	}

	views, err := h.scheduleQueries.WeeklySlots(c.Request.Context(), courtID, day)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Court not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.WeeklySlotResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromWeeklySlotView(v)
	}

	c.JSON(http.StatusOK, response)
}
