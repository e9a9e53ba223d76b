// Package dashboard aggregates the day's key figures across appointments,
// invoices, and inventory.
package dashboard

import (
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/clinicdesk/clinicdesk/internal/domain/billing"
	"github.com/clinicdesk/clinicdesk/internal/domain/inventory"
	"github.com/clinicdesk/clinicdesk/internal/domain/scheduling"
	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/respond"
)

// Summary is the dashboard payload: today's load, money in and owed, and
// stock that needs attention.
type Summary struct {
	TodayAppointments   int     `json:"today_appointments"`
	TodayRevenue        float64 `json:"today_revenue"`
	OutstandingInvoices int     `json:"outstanding_invoices"`
	LowStockItems       int     `json:"low_stock_items"`
}

type Handler struct {
	appointments *entity.Store[scheduling.Appointment, *scheduling.Appointment]
	invoices     *entity.Store[billing.Invoice, *billing.Invoice]
	items        *entity.Store[inventory.Item, *inventory.Item]
}

func NewHandler(
	appointments *entity.Store[scheduling.Appointment, *scheduling.Appointment],
	invoices *entity.Store[billing.Invoice, *billing.Invoice],
	items *entity.Store[inventory.Item, *inventory.Item],
) *Handler {
	return &Handler{appointments: appointments, invoices: invoices, items: items}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard/summary", h.Summary)
}

// Summary fetches the three underlying lists concurrently, then derives the
// figures in memory. There is no storage-level filtering to lean on.
func (h *Handler) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		appointments []scheduling.Appointment
		invoices     []billing.Invoice
		items        []inventory.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		appointments, _, err = h.appointments.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, _, err = h.invoices.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		items, _, err = h.items.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return respond.Internal(c, err.Error())
	}

	today := time.Now()
	var s Summary
	for _, a := range appointments {
		if a.StartsOn(today) {
			s.TodayAppointments++
		}
	}
	for _, inv := range invoices {
		if inv.Status == billing.StatusPaid && inv.CreatedOn(today) {
			s.TodayRevenue += inv.TotalAmount
		}
		if inv.Outstanding() {
			s.OutstandingInvoices++
		}
	}
	for _, item := range items {
		if item.LowStock() {
			s.LowStockItems++
		}
	}
	return respond.OK(c, s)
}
