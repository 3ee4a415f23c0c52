package handler

import (
	"github.com/gin-gonic/gin"

	workforceapp "github.com/siteops/backend/internal/application/workforce"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	BaseHandler
	attendanceService *workforceapp.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService *workforceapp.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// RegisterRoutes registers attendance routes
func (h *AttendanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mark := middleware.RequirePermission("attendance:mark")

	attendance := rg.Group("/attendance")
	{
		attendance.POST("", mark, h.Mark)
		attendance.POST("/bulk", mark, h.BulkMark)
		attendance.PUT("/:id", middleware.RequirePermission("attendance:correct"), h.Correct)
		attendance.GET("/muster", h.SiteMuster)
		attendance.GET("/history/:manpowerId", h.WorkerHistory)
	}
}

// Mark records one worker's attendance for a date
func (h *AttendanceHandler) Mark(c *gin.Context) {
	markedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req workforceapp.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.attendanceService.Mark(c.Request.Context(), markedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// BulkMark records a full day's muster for a site in one call
func (h *AttendanceHandler) BulkMark(c *gin.Context) {
	markedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req workforceapp.BulkMarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.attendanceService.BulkMark(c.Request.Context(), markedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Correct amends an existing attendance record
func (h *AttendanceHandler) Correct(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attendance ID")
		return
	}

	correctedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req workforceapp.CorrectAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.attendanceService.Correct(c.Request.Context(), id, correctedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SiteMuster returns all attendance records for a site on a date
func (h *AttendanceHandler) SiteMuster(c *gin.Context) {
	siteID, err := parseOptionalUUIDQuery(c, "site_id")
	if err != nil || siteID == nil {
		h.BadRequest(c, "Invalid or missing site ID")
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		h.BadRequest(c, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}

	result, err := h.attendanceService.GetSiteMuster(c.Request.Context(), *siteID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// WorkerHistory returns one worker's attendance over a date range
func (h *AttendanceHandler) WorkerHistory(c *gin.Context) {
	manpowerID, err := parseUUIDParam(c, "manpowerId")
	if err != nil {
		h.BadRequest(c, "Invalid manpower ID")
		return
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		h.BadRequest(c, "Invalid or missing from date, expected YYYY-MM-DD")
		return
	}

	to, err := parseDateQuery(c, "to")
	if err != nil {
		h.BadRequest(c, "Invalid or missing to date, expected YYYY-MM-DD")
		return
	}

	result, err := h.attendanceService.GetWorkerHistory(c.Request.Context(), manpowerID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
