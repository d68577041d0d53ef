// internal/interfaces/http/handlers/order.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gamevault/game-library-backend/internal/domain/order"
	"github.com/gamevault/game-library-backend/internal/interfaces/http/middleware"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// ReceiptRenderer turns an order into a printable receipt
type ReceiptRenderer interface {
	GenerateReceipt(o *order.Order, customer string) (*bytes.Buffer, error)
}

// OrderHandler handles order history and receipts
type OrderHandler struct {
	orderService *order.Service
	receipts     ReceiptRenderer
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, receipts ReceiptRenderer) *OrderHandler {
	return &OrderHandler{orderService: orderService, receipts: receipts}
}

// GetMyOrders handles GET /orders/my-orders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// GetMyOrder handles GET /orders/:id
func (h *OrderHandler) GetMyOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetUserOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Order retrieved successfully", o)
}

// GetReceipt handles GET /orders/:id/receipt
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetUserOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	customer, _ := middleware.GetUsernameFromContext(c)
	pdfBuffer, err := h.receipts.GenerateReceipt(o, customer)
	if err != nil {
		respondError(c, apperror.Internal("failed to generate receipt", err))
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", o.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}
