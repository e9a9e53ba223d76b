package inventory

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/respond"
)

type Handler struct {
	items *entity.Store[Item, *Item]
}

func NewHandler(items *entity.Store[Item, *Item]) *Handler {
	return &Handler{items: items}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/inventory", h.List)
	api.POST("/inventory", h.Create)
	api.PATCH("/inventory/:id", h.Update)
	api.DELETE("/inventory/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	items, count, err := h.items.List(c.Request().Context())
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.List(c, items, count)
}

// Pointer fields distinguish "absent" from a legitimate zero quantity or
// threshold in the request body.
type createItemRequest struct {
	Name             string  `json:"name"`
	SKU              string  `json:"sku"`
	Unit             string  `json:"unit"`
	QuantityOnHand   *int    `json:"quantity_on_hand"`
	ReorderThreshold *int    `json:"reorder_threshold"`
	UnitPrice        float64 `json:"unit_price"`
	LastReceivedAt   string  `json:"last_received_at"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return respond.Bad(c, err.Error())
	}
	if req.Name == "" || req.Unit == "" || req.QuantityOnHand == nil || req.ReorderThreshold == nil {
		return respond.Bad(c, "Missing required fields for inventory item")
	}
	item := Item{
		ID:               uuid.NewString(),
		Name:             req.Name,
		SKU:              req.SKU,
		Unit:             req.Unit,
		QuantityOnHand:   *req.QuantityOnHand,
		ReorderThreshold: *req.ReorderThreshold,
		UnitPrice:        req.UnitPrice,
		LastReceivedAt:   req.LastReceivedAt,
	}
	created, err := h.items.Create(c.Request().Context(), item)
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
	ok, err := h.items.Exists(ctx, id)
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	if !ok {
		return respond.NotFound(c, "Inventory item not found")
	}
	var mergeErr error
	updated, err := h.items.Mutate(ctx, id, func(current Item) Item {
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
	deleted, err := h.items.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.OK(c, map[string]bool{"deleted": deleted})
}
