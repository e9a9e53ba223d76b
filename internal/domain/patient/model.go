// Package patient manages patient records and the /api/patients resource.
package patient

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
)

type Patient struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id,omitempty"`
	FullName         string `json:"full_name"`
	DOB              string `json:"dob,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Phone            string `json:"phone"`
	Email            string `json:"email,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

func (p *Patient) RecordID() string      { return p.ID }
func (p *Patient) SetRecordID(id string) { p.ID = id }

// Definition declares the patient entity kind with its starting dataset.
func Definition() entity.Definition[Patient] {
	now := time.Now().UTC().Format(time.RFC3339)
	return entity.Definition[Patient]{
		Name:      "patient",
		IndexName: "patients",
		Seed: []Patient{
			{
				ID:             "patient-01",
				FullName:       "Zainab Bibi",
				DOB:            "1992-05-12",
				Gender:         "Female",
				Phone:          "03334567890",
				Email:          "zainab@testmail.com",
				MedicalHistory: "Allergic to penicillin.",
				CreatedAt:      now,
				UpdatedAt:      now,
			},
			{
				ID:             "patient-02",
				FullName:       "Bilal Hassan",
				DOB:            "1985-11-20",
				Gender:         "Male",
				Phone:          "03450987654",
				Email:          "bilal@testmail.com",
				MedicalHistory: "None.",
				CreatedAt:      now,
				UpdatedAt:      now,
			},
		},
	}
}
