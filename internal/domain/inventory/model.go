// Package inventory manages stock items and the /api/inventory resource.
package inventory

import (
	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
)

type Item struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	SKU              string  `json:"sku,omitempty"`
	Unit             string  `json:"unit"`
	QuantityOnHand   int     `json:"quantity_on_hand"`
	ReorderThreshold int     `json:"reorder_threshold"`
	UnitPrice        float64 `json:"unit_price,omitempty"`
	LastReceivedAt   string  `json:"last_received_at,omitempty"`
}

func (i *Item) RecordID() string      { return i.ID }
func (i *Item) SetRecordID(id string) { i.ID = id }

// LowStock reports whether the item needs reordering: quantity on hand at or
// below its reorder threshold.
func (i Item) LowStock() bool {
	return i.QuantityOnHand <= i.ReorderThreshold
}

// Definition declares the inventory item entity kind with its starting
// dataset.
func Definition() entity.Definition[Item] {
	return entity.Definition[Item]{
		Name:      "inventoryItem",
		IndexName: "inventoryItems",
		Seed: []Item{
			{
				ID:               "item-01",
				Name:             "Dental Gloves",
				SKU:              "GLV-M-100",
				Unit:             "box",
				QuantityOnHand:   50,
				ReorderThreshold: 10,
			},
			{
				ID:               "item-02",
				Name:             "Surgical Masks",
				SKU:              "MSK-S-50",
				Unit:             "box",
				QuantityOnHand:   80,
				ReorderThreshold: 20,
			},
			{
				ID:               "item-03",
				Name:             "Composite Resin (A2)",
				SKU:              "CMP-A2-4G",
				Unit:             "syringe",
				QuantityOnHand:   8,
				ReorderThreshold: 5,
			},
		},
	}
}
