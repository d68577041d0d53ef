// internal/interfaces/http/handlers/user_admin.go
package handlers

import (
	"net/http"

	"github.com/gamevault/game-library-backend/internal/domain/analytics"
	"github.com/gamevault/game-library-backend/internal/domain/order"
	"github.com/gamevault/game-library-backend/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles the admin-only endpoints
type AdminHandler struct {
	adminService     *user.AdminService
	orderService     *order.Service
	analyticsService *analytics.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *user.AdminService, orderService *order.Service, analyticsService *analytics.Service) *AdminHandler {
	return &AdminHandler{
		adminService:     adminService,
		orderService:     orderService,
		analyticsService: analyticsService,
	}
}

// GetUsers handles GET /admin/users?page=&limit=&search=&role=
func (h *AdminHandler) GetUsers(c *gin.Context) {
	var req user.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.adminService.GetUsers(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Users retrieved successfully", resp)
}

// DeleteUser handles DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), userID, adminID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "User deleted successfully", nil)
}

// GetOrders handles GET /admin/orders?page=&limit=
func (h *AdminHandler) GetOrders(c *gin.Context) {
	page, err := h.orderService.GetOrders(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Orders retrieved successfully", page)
}

// GetStats handles GET /admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.analyticsService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Dashboard statistics retrieved successfully", stats)
}
