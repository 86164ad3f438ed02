package api

import (
	"net/http"
	"time"

	resdto "courtside/internal/handler/dto/response"
	"courtside/internal/infra"
	"courtside/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CourtHandler struct {
	courtQueries queries.CourtQueries
}

func NewCourtHandler(courtQueries queries.CourtQueries) *CourtHandler {
	return &CourtHandler{courtQueries: courtQueries}
}

// @Summary List courts
// @Description List bookable courts across approved venues
// @Tags courts
// @Produce json
// @Success 200 {array} resdto.CourtResponse
// @Router /courts [get]
func (h *CourtHandler) ListCourts(c *gin.Context) {
	views, err := h.courtQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.CourtResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromCourtView(v)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get court
// @Description Get court by ID
// @Tags courts
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} resdto.CourtResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /courts/{id} [get]
func (h *CourtHandler) GetCourt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid court ID format",
		})
		return
	}

	view, err := h.courtQueries.GetByID(c.Request.Context(), id)
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

	c.JSON(http.StatusOK, resdto.FromCourtView(view))
}

// @Summary Court availability
// @Description Project the weekly template onto a date with booked flags
// @Tags courts
// @Produce json
// @Param id path string true "Court ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /courts/{id}/availability [get]
func (h *CourtHandler) GetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid court ID format",
		})
		return
	}

	dateStr := c.Query("date")
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing date, expected YYYY-MM-DD",
		})
		return
	}

	slots, err := h.courtQueries.Availability(c.Request.Context(), id, date)
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

	c.JSON(http.StatusOK, resdto.FromAvailability(id, dateStr, slots))
}

func isNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}
