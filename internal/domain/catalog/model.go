// Package catalog manages the clinic's service catalog and the /api/services
// resource.
package catalog

import (
	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
)

// Service is a billable clinic procedure. Prices are in clinic-currency
// units; durations in minutes.
type Service struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Description              string  `json:"description,omitempty"`
	Category                 string  `json:"category"`
	DefaultPrice             float64 `json:"default_price"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes"`
	ActiveFlag               bool    `json:"active_flag"`
}

func (s *Service) RecordID() string      { return s.ID }
func (s *Service) SetRecordID(id string) { s.ID = id }

// Definition declares the service entity kind with its starting dataset.
func Definition() entity.Definition[Service] {
	return entity.Definition[Service]{
		Name:      "service",
		IndexName: "services",
		Seed: []Service{
			{
				ID:                       "service-01",
				Name:                     "Teeth Cleaning & Polishing",
				Description:              "Routine cleaning to remove plaque and tartar.",
				Category:                 "General Dentistry",
				DefaultPrice:             5000,
				EstimatedDurationMinutes: 45,
				ActiveFlag:               true,
			},
			{
				ID:                       "service-02",
				Name:                     "Tooth Filling (Composite)",
				Description:              "Repairing a cavity with tooth-colored composite material.",
				Category:                 "Restorative",
				DefaultPrice:             8000,
				EstimatedDurationMinutes: 60,
				ActiveFlag:               true,
			},
			{
				ID:                       "service-03",
				Name:                     "Root Canal Treatment",
				Description:              "Treatment for infected tooth pulp.",
				Category:                 "Endodontics",
				DefaultPrice:             25000,
				EstimatedDurationMinutes: 90,
				ActiveFlag:               true,
			},
		},
	}
}
