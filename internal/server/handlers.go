package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/storage"
	"github.com/mfigueroa/agendx/internal/utils"
	"github.com/mfigueroa/agendx/internal/validation"
)

// Handler serves event and day-session records over HTTP, the same records
// the REST gateway consumes on the client side.
type Handler struct {
	gateway storage.Gateway
}

func NewHandler(gateway storage.Gateway) *Handler {
	return &Handler{gateway: gateway}
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{"code": code, "message": message},
	})
}

func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.gateway.GetAllEvents()
	if err != nil {
		writeError(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) GetEvent(c *gin.Context) {
	event, err := h.gateway.GetEvent(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, "not_found", "event not found")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := validation.ValidateEvent(event); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_event", err.Error())
		return
	}
	if err := h.gateway.AddEvent(event); err != nil {
		writeError(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	event.ID = c.Param("id")
	if err := validation.ValidateEvent(event); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_event", err.Error())
		return
	}
	if err := h.gateway.UpdateEvent(event); err != nil {
		writeError(c, http.StatusNotFound, "not_found", err.Error())
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.gateway.DeleteEvent(c.Param("id")); err != nil {
		writeError(c, http.StatusNotFound, "not_found", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListSessions(c *gin.Context) {
	records, err := h.gateway.GetSessions()
	if err != nil {
		writeError(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	if records == nil {
		records = []models.SessionRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) CreateSession(c *gin.Context) {
	var rec models.SessionRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if rec.DayKey == "" {
		writeError(c, http.StatusBadRequest, "invalid_session", "day_key is required")
		return
	}
	if rec.KeepUntil.IsZero() {
		if ku, err := utils.KeepUntil(rec.DayKey); err == nil {
			rec.KeepUntil = ku
		}
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	created, err := h.gateway.CreateSession(rec)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateSession(c *gin.Context) {
	var rec models.SessionRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	rec.ID = c.Param("id")
	if err := h.gateway.UpdateSession(rec); err != nil {
		writeError(c, http.StatusNotFound, "not_found", err.Error())
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.gateway.DeleteSession(c.Param("id")); err != nil {
		writeError(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
