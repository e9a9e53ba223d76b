// Package scheduling manages appointments and the /api/appointments resource.
package scheduling

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
)

// Status tracks an appointment through its lifecycle.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCheckedIn Status = "Checked-in"
	StatusCompleted Status = "Completed"
	StatusNoShow    Status = "No-show"
	StatusCancelled Status = "Cancelled"
)

type Appointment struct {
	ID           string `json:"id"`
	PatientID    string `json:"patient_id"`
	DoctorUserID string `json:"doctor_user_id"`
	ServiceID    string `json:"service_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time,omitempty"`
	Status       Status `json:"status"`
	Notes        string `json:"notes,omitempty"`
}

func (a *Appointment) RecordID() string      { return a.ID }
func (a *Appointment) SetRecordID(id string) { a.ID = id }

// StartsOn reports whether the appointment's start time falls on the given
// calendar day in day's location. Unparseable start times report false.
func (a Appointment) StartsOn(day time.Time) bool {
	start, err := time.Parse(time.RFC3339, a.StartTime)
	if err != nil {
		return false
	}
	y1, m1, d1 := start.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func at(day time.Time, hour, minute int) string {
	t := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
	return t.Format(time.RFC3339)
}

// Definition declares the appointment entity kind. Seed appointments land on
// the current day so a fresh install has a populated schedule.
func Definition() entity.Definition[Appointment] {
	today := time.Now()
	return entity.Definition[Appointment]{
		Name:      "appointment",
		IndexName: "appointments",
		Seed: []Appointment{
			{
				ID:           "appt-01",
				PatientID:    "patient-01",
				DoctorUserID: "user-doctor-01",
				ServiceID:    "service-01",
				StartTime:    at(today, 9, 0),
				EndTime:      at(today, 9, 45),
				Status:       StatusScheduled,
				Notes:        "Routine checkup.",
			},
			{
				ID:           "appt-02",
				PatientID:    "patient-02",
				DoctorUserID: "user-doctor-01",
				ServiceID:    "service-02",
				StartTime:    at(today, 11, 0),
				EndTime:      at(today, 12, 0),
				Status:       StatusScheduled,
			},
		},
	}
}
