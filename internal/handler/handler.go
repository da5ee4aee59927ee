package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dtr/internal/auth"
	"dtr/internal/dtr"
	"dtr/internal/logger"
	"dtr/internal/metrics"
	"dtr/internal/queue"
	"dtr/internal/user"
)

// Handler exposes the HTTP surface over the injected services. Audit events
// for clock-in/out are published to the queue; publish failures are logged and
// never fail the request.
type Handler struct {
	users *user.Service
	dtr   *dtr.Service
	queue queue.Queue
}

// New creates a handler.
func New(users *user.Service, dtrSvc *dtr.Service, q queue.Queue) *Handler {
	return &Handler{users: users, dtr: dtrSvc, queue: q}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.users.Register(c.Request.Context(), req.Name, req.Surname, req.Email, req.Role, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	metrics.Registrations.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully", "user_id": id})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		h.fail(c, err)
		return
	}

	metrics.Logins.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, session)
}

// Profile handles GET /user.
func (h *Handler) Profile(c *gin.Context) {
	u, err := h.users.Profile(c.Request.Context(), h.caller(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ClockIn handles POST /dtr/clock_in.
func (h *Handler) ClockIn(c *gin.Context) {
	internID := h.caller(c)
	rec, err := h.dtr.ClockIn(c.Request.Context(), internID)
	if err != nil {
		h.fail(c, err)
		return
	}

	metrics.ClockIns.Inc()
	h.audit(c, "clock_in", rec)
	c.JSON(http.StatusOK, gin.H{"message": "Clocked in successfully", "record_id": rec.ID})
}

// CheckToday handles GET /dtr/check_clock_in&out. Returns today's record as-is
// when one exists, so the client can render the correct next action without
// racing a duplicate clock-in.
func (h *Handler) CheckToday(c *gin.Context) {
	rec, err := h.dtr.PeekToday(c.Request.Context(), h.caller(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"message": "You can clock in."})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ClockOut handles POST /dtr/clock_out.
func (h *Handler) ClockOut(c *gin.Context) {
	rec, err := h.dtr.ClockOut(c.Request.Context(), h.caller(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	metrics.ClockOuts.Inc()
	h.audit(c, "clock_out", rec)
	c.JSON(http.StatusOK, gin.H{"message": "Clocked out successfully", "total_hours": *rec.TotalWorkHours})
}

// History handles GET /dtr/record.
func (h *Handler) History(c *gin.Context) {
	recs, err := h.dtr.History(c.Request.Context(), h.caller(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if recs == nil {
		recs = []dtr.Record{}
	}
	c.JSON(http.StatusOK, recs)
}

// ListInterns handles GET /interns.
func (h *Handler) ListInterns(c *gin.Context) {
	interns, err := h.users.ListInternsWithRecords(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, interns)
}

// ListActiveToday handles GET /interns/active_today.
func (h *Handler) ListActiveToday(c *gin.Context) {
	interns, err := h.users.ListActiveToday(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, interns)
}

type approvalRequest struct {
	InternID string `json:"intern_id" binding:"required"`
	Approval string `json:"approval" binding:"required"`
}

// UpdateApproval handles PATCH /interns/update_approval.
func (h *Handler) UpdateApproval(c *gin.Context) {
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateApproval(c.Request.Context(), req.InternID, req.Approval); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Approval status updated successfully"})
}

// caller returns the token subject set by the auth middleware.
func (h *Handler) caller(c *gin.Context) string {
	claims, _ := auth.CallerClaims(c)
	return claims.Subject
}

type auditEvent struct {
	Type     string    `json:"type"`
	InternID string    `json:"intern_id"`
	Day      string    `json:"date"`
	At       time.Time `json:"at"`
}

func (h *Handler) audit(c *gin.Context, eventType string, rec dtr.Record) {
	if h.queue == nil {
		return
	}
	body, err := json.Marshal(auditEvent{Type: eventType, InternID: rec.InternID, Day: rec.Day, At: time.Now()})
	if err != nil {
		return
	}
	if err := h.queue.Publish(c.Request.Context(), queue.Message{Type: eventType, Body: body}); err != nil {
		logger.Warn("audit publish failed", "type", eventType, "error", err)
	}
}

// fail maps service errors onto the HTTP taxonomy. Anything unrecognized is a
// backend failure and surfaces as 500 with the raw message (internal tool).
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, dtr.ErrAlreadyClockedIn),
		errors.Is(err, dtr.ErrAlreadyClockedOut):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrNotFound), errors.Is(err, dtr.ErrNoRecord):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
