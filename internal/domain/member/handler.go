package member

import (
	"log/slog"
	"net/http"
	"strconv"

	"gymdesk/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the member domain.
type Handler struct {
	service *Service
}

// NewHandler creates a new member handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Dashboard handles GET /api/v1/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, http.StatusOK, stats)
}

// List handles GET /api/v1/members
func (h *Handler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context())
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, http.StatusOK, members)
}

// Create handles POST /api/v1/members
// Registers the member and sends the membership confirmation; the response
// reports whether the confirmation was delivered.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	m, result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		slog.Error("create member failed", "name", req.Name, "error", err)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusCreated, gin.H{
		"member":            m,
		"notification_sent": result.Success,
	})
}

// Get handles GET /api/v1/members/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, http.StatusOK, m)
}

// Update handles PUT /api/v1/members/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, http.StatusOK, m)
}

// Delete handles DELETE /api/v1/members/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Broadcast handles POST /api/v1/broadcast
// Fans a message out to all active members.
func (h *Handler) Broadcast(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "message is required")
		return
	}

	bulk, err := h.service.Broadcast(c.Request.Context(), req.Message)
	if err != nil {
		slog.Error("broadcast failed", "error", err)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, gin.H{
		"success":      bulk.Success(),
		"sent":         bulk.Successful,
		"failed":       bulk.Failed,
		"total":        bulk.Total,
		"success_rate": bulk.SuccessRate(),
	})
}

// Expiring handles GET /api/v1/notifications/expiring
// Lists members whose membership expires within seven days.
func (h *Handler) Expiring(c *gin.Context) {
	rows, err := h.service.Expiring(c.Request.Context())
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, gin.H{
		"count":         len(rows),
		"notifications": rows,
	})
}

// SendReminder handles POST /api/v1/notifications/send-reminder
// Sends an expiry reminder to a single member.
func (h *Handler) SendReminder(c *gin.Context) {
	var req struct {
		MemberID int64 `json:"member_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "member_id is required")
		return
	}

	m, result, err := h.service.SendReminder(c.Request.Context(), req.MemberID)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, gin.H{
		"success":     result.Success,
		"member_id":   m.ID,
		"member_name": m.Name,
		"message_id":  result.MessageID,
		"status":      string(result.Status),
	})
}

// RegisterRoutes registers member routes on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/members", h.List)
	rg.POST("/members", h.Create)
	rg.GET("/members/:id", h.Get)
	rg.PUT("/members/:id", h.Update)
	rg.DELETE("/members/:id", h.Delete)
	rg.POST("/broadcast", h.Broadcast)
	rg.GET("/notifications/expiring", h.Expiring)
	rg.POST("/notifications/send-reminder", h.SendReminder)
}

// memberID parses the :id path parameter, writing the error response itself.
func memberID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.Error(c, http.StatusBadRequest, "invalid member id")
		return 0, false
	}
	return id, true
}
