package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/respond"
)

type Handler struct {
	invoices *entity.Store[Invoice, *Invoice]
}

func NewHandler(invoices *entity.Store[Invoice, *Invoice]) *Handler {
	return &Handler{invoices: invoices}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/invoices", h.List)
	api.POST("/invoices", h.Create)
	api.PATCH("/invoices/:id", h.Update)
	api.DELETE("/invoices/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	items, count, err := h.invoices.List(c.Request().Context())
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.List(c, items, count)
}

type createInvoiceRequest struct {
	PatientID       string   `json:"patient_id"`
	TotalAmount     *float64 `json:"total_amount"`
	Tax             float64  `json:"tax"`
	Discount        float64  `json:"discount"`
	Status          Status   `json:"status"`
	CreatedByUserID string   `json:"created_by_user_id"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return respond.Bad(c, err.Error())
	}
	if req.PatientID == "" || req.TotalAmount == nil {
		return respond.Bad(c, "Missing required fields for invoice")
	}
	now := time.Now().UTC()
	createdBy := req.CreatedByUserID
	if createdBy == "" {
		createdBy = "system"
	}
	status := req.Status
	if status == "" {
		status = StatusUnpaid
	}
	inv := Invoice{
		ID:              uuid.NewString(),
		InvoiceNumber:   NewInvoiceNumber(now),
		PatientID:       req.PatientID,
		CreatedByUserID: createdBy,
		TotalAmount:     *req.TotalAmount,
		Tax:             req.Tax,
		Discount:        req.Discount,
		Status:          status,
		CreatedAt:       now.Format(time.RFC3339),
	}
	created, err := h.invoices.Create(c.Request().Context(), inv)
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.OK(c, created)
}

func (h *Handler) Update(c echo.Context) error {
	id := c.Param("id")
	var patch map[string]any
	if err := c.Bind(&patch); err != nil {
		return respond.Bad(c, err.Error())
	}
	ctx := c.Request().Context()
	ok, err := h.invoices.Exists(ctx, id)
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	if !ok {
		return respond.NotFound(c, "Invoice not found")
	}
	var mergeErr error
	updated, err := h.invoices.Mutate(ctx, id, func(current Invoice) Invoice {
		next, err := entity.Merge(current, patch)
		if err != nil {
			mergeErr = err
			return current
		}
		return next
	})
	if mergeErr != nil {
		return respond.Bad(c, mergeErr.Error())
	}
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.OK(c, updated)
}

func (h *Handler) Delete(c echo.Context) error {
	deleted, err := h.invoices.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.OK(c, map[string]bool{"deleted": deleted})
}
