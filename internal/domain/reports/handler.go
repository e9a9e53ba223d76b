// Package reports exposes read-only reporting endpoints built on the full
// lists of invoices and inventory items.
package reports

import (
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/domain/billing"
	"github.com/clinicdesk/clinicdesk/internal/domain/inventory"
	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/respond"
)

// RevenueReport breaks invoice totals down by payment status.
type RevenueReport struct {
	TotalInvoiced     float64               `json:"total_invoiced"`
	CollectedAmount   float64               `json:"collected_amount"`
	OutstandingAmount float64               `json:"outstanding_amount"`
	ByStatus          map[string]StatusLine `json:"by_status"`
}

// StatusLine is one status bucket in the revenue report.
type StatusLine struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// StockLine is one item in the inventory report.
type StockLine struct {
	inventory.Item
	LowStock bool `json:"low_stock"`
}

type Handler struct {
	invoices *entity.Store[billing.Invoice, *billing.Invoice]
	items    *entity.Store[inventory.Item, *inventory.Item]
}

func NewHandler(
	invoices *entity.Store[billing.Invoice, *billing.Invoice],
	items *entity.Store[inventory.Item, *inventory.Item],
) *Handler {
	return &Handler{invoices: invoices, items: items}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/reports/revenue", h.Revenue)
	api.GET("/reports/inventory", h.Inventory)
}

func (h *Handler) Revenue(c echo.Context) error {
	invoices, _, err := h.invoices.List(c.Request().Context())
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	report := RevenueReport{ByStatus: map[string]StatusLine{}}
	for _, inv := range invoices {
		report.TotalInvoiced += inv.TotalAmount
		if inv.Status == billing.StatusPaid {
			report.CollectedAmount += inv.TotalAmount
		}
		if inv.Outstanding() {
			report.OutstandingAmount += inv.TotalAmount
		}
		line := report.ByStatus[string(inv.Status)]
		line.Count++
		line.Amount += inv.TotalAmount
		report.ByStatus[string(inv.Status)] = line
	}
	return respond.OK(c, report)
}

func (h *Handler) Inventory(c echo.Context) error {
	items, count, err := h.items.List(c.Request().Context())
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	lines := make([]StockLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, StockLine{Item: item, LowStock: item.LowStock()})
	}
	return respond.List(c, lines, count)
}
