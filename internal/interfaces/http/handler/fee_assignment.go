package handler

import (
	tuitionapp "github.com/campus/backend/internal/application/tuition"
	"github.com/campus/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FeeAssignmentHandler handles fee assignment API endpoints
type FeeAssignmentHandler struct {
	BaseHandler
	assignmentService   *tuitionapp.AssignmentService
	bulkService         *tuitionapp.BulkAssignmentService
	cancellationService *tuitionapp.CancellationService
}

// NewFeeAssignmentHandler creates a new FeeAssignmentHandler
func NewFeeAssignmentHandler(
	assignmentService *tuitionapp.AssignmentService,
	bulkService *tuitionapp.BulkAssignmentService,
	cancellationService *tuitionapp.CancellationService,
) *FeeAssignmentHandler {
	return &FeeAssignmentHandler{
		assignmentService:   assignmentService,
		bulkService:         bulkService,
		cancellationService: cancellationService,
	}
}

// RegisterRoutes registers fee assignment routes
func (h *FeeAssignmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/fee-assignments")
	{
		group.POST("", h.Assign)
		group.POST("/bulk", h.BulkAssign)
		group.POST("/check-duplicates", h.CheckDuplicates)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("/:id/cancel", h.Cancel)
	}
}

// Assign creates a fee assignment per service in the basket, each with its
// own installment schedule, and reports a per-service outcome list
// POST /api/v1/fee-assignments
func (h *FeeAssignmentHandler) Assign(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req tuitionapp.AssignFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.assignmentService.AssignFees(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Per-service failures live in the outcome list; only basket-level
	// validation aborts the whole request.
	h.Created(c, resp)
}

// BulkAssign applies one shared service basket to many students
// POST /api/v1/fee-assignments/bulk
func (h *FeeAssignmentHandler) BulkAssign(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req tuitionapp.BulkAssignFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.bulkService.BulkAssign(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Per-student failures live in the outcome list; the request itself
	// succeeded even when every outcome failed.
	h.Success(c, resp)
}

// CheckDuplicates reports which services the student is already assigned
// POST /api/v1/fee-assignments/check-duplicates
func (h *FeeAssignmentHandler) CheckDuplicates(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var req tuitionapp.DuplicateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	conflicts, err := h.assignmentService.CheckDuplicates(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"has_duplicates": len(conflicts) > 0,
		"conflicts":      conflicts,
	})
}

// Get returns an assignment with its installments
// GET /api/v1/fee-assignments/:id
func (h *FeeAssignmentHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid assignment ID")
		return
	}
	assignmentID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID")
		return
	}

	resp, err := h.assignmentService.GetAssignment(c.Request.Context(), tenantID, assignmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns assignments matching the filter
// GET /api/v1/fee-assignments
func (h *FeeAssignmentHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var filter tuitionapp.AssignmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.assignmentService.ListAssignments(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Cancel cancels an assignment, voiding unpaid installments and, when asked,
// refunding the money already collected
// POST /api/v1/fee-assignments/:id/cancel
func (h *FeeAssignmentHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant ID not found")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid assignment ID")
		return
	}
	assignmentID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID")
		return
	}

	var req tuitionapp.CancelAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.cancellationService.CancelAssignment(c.Request.Context(), tenantID, assignmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
