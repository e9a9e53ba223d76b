package catalog

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/respond"
)

type Handler struct {
	services *entity.Store[Service, *Service]
}

func NewHandler(services *entity.Store[Service, *Service]) *Handler {
	return &Handler{services: services}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/services", h.List)
	api.POST("/services", h.Create)
	api.PATCH("/services/:id", h.Update)
	api.DELETE("/services/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	items, count, err := h.services.List(c.Request().Context())
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.List(c, items, count)
}

// Pointer fields distinguish "absent" from a legitimate zero price or
// duration in the request body.
type createServiceRequest struct {
	Name                     string   `json:"name"`
	Description              string   `json:"description"`
	Category                 string   `json:"category"`
	DefaultPrice             *float64 `json:"default_price"`
	EstimatedDurationMinutes *int     `json:"estimated_duration_minutes"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		return respond.Bad(c, err.Error())
	}
	if req.Name == "" || req.DefaultPrice == nil || req.EstimatedDurationMinutes == nil {
		return respond.Bad(c, "Name, price, and duration are required")
	}
	category := req.Category
	if category == "" {
		category = "General"
	}
	svc := Service{
		ID:                       uuid.NewString(),
		Name:                     req.Name,
		Description:              req.Description,
		Category:                 category,
		DefaultPrice:             *req.DefaultPrice,
		EstimatedDurationMinutes: *req.EstimatedDurationMinutes,
		ActiveFlag:               true,
	}
	created, err := h.services.Create(c.Request().Context(), svc)
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
	ok, err := h.services.Exists(ctx, id)
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	if !ok {
		return respond.NotFound(c, "Service not found")
	}
	var mergeErr error
	updated, err := h.services.Mutate(ctx, id, func(current Service) Service {
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
	deleted, err := h.services.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.OK(c, map[string]bool{"deleted": deleted})
}
