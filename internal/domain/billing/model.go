// Package billing manages invoices and the /api/invoices resource.
package billing

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
)

// Status is an invoice's payment state.
type Status string

const (
	StatusPaid          Status = "Paid"
	StatusUnpaid        Status = "Unpaid"
	StatusPartiallyPaid Status = "Partially Paid"
)

type Invoice struct {
	ID              string  `json:"id"`
	InvoiceNumber   string  `json:"invoice_number"`
	PatientID       string  `json:"patient_id"`
	CreatedByUserID string  `json:"created_by_user_id"`
	TotalAmount     float64 `json:"total_amount"`
	Tax             float64 `json:"tax"`
	Discount        float64 `json:"discount"`
	Status          Status  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

func (i *Invoice) RecordID() string      { return i.ID }
func (i *Invoice) SetRecordID(id string) { i.ID = id }

// Outstanding reports whether any amount remains uncollected.
func (i Invoice) Outstanding() bool {
	return i.Status == StatusUnpaid || i.Status == StatusPartiallyPaid
}

// CreatedOn reports whether the invoice was created on the given calendar
// day in day's location.
func (i Invoice) CreatedOn(day time.Time) bool {
	created, err := time.Parse(time.RFC3339, i.CreatedAt)
	if err != nil {
		return false
	}
	y1, m1, d1 := created.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// NewInvoiceNumber generates "INV-<year>-<4 random digits>". Numbers are not
// guaranteed unique; collisions are possible and unhandled.
func NewInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%04d", now.Year(), rand.IntN(10000))
}

// Definition declares the invoice entity kind with its starting dataset.
func Definition() entity.Definition[Invoice] {
	now := time.Now().UTC().Format(time.RFC3339)
	return entity.Definition[Invoice]{
		Name:      "invoice",
		IndexName: "invoices",
		Seed: []Invoice{
			{
				ID:              "inv-01",
				InvoiceNumber:   "INV-2024-001",
				PatientID:       "patient-01",
				CreatedByUserID: "user-reception-01",
				TotalAmount:     5000,
				Tax:             0,
				Discount:        0,
				Status:          StatusPaid,
				CreatedAt:       now,
			},
			{
				ID:              "inv-02",
				InvoiceNumber:   "INV-2024-002",
				PatientID:       "patient-02",
				CreatedByUserID: "user-reception-01",
				TotalAmount:     8000,
				Tax:             0,
				Discount:        500,
				Status:          StatusUnpaid,
				CreatedAt:       now,
			},
		},
	}
}
