package handler

import (
	tuitionapp "github.com/campus/backend/internal/application/tuition"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles installment payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *tuitionapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *tuitionapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/payments")
	{
		group.POST("", h.Record)
	}
}

// Record settles part or all of an installment
// POST /api/v1/payments
func (h *PaymentHandler) Record(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req tuitionapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.ReceivedBy = &userID
	}

	resp, err := h.paymentService.RecordPayment(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}
