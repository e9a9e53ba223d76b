package scheduling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

func newTestHandler(t *testing.T) (*Handler, *echo.Echo) {
	t.Helper()
	appointments := entity.NewStore[Appointment, *Appointment](store.NewMemory(), Definition())
	if err := appointments.EnsureSeed(context.Background()); err != nil {
		t.Fatalf("seed appointments: %v", err)
	}
	return NewHandler(appointments), echo.New()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestHandler_ListAppointments(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env := decodeEnvelope(t, rec)
	var data struct {
		Items []Appointment `json:"items"`
		Count int           `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if data.Count != 2 {
		t.Errorf("expected 2 seeded appointments, got %d", data.Count)
	}
}

func TestHandler_CreateAppointment_DefaultStatus(t *testing.T) {
	h, e := newTestHandler(t)
	body := `{"patient_id":"patient-01","doctor_user_id":"user-doctor-01","service_id":"service-03","start_time":"2026-09-01T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env := decodeEnvelope(t, rec)
	var appt Appointment
	if err := json.Unmarshal(env.Data, &appt); err != nil {
		t.Fatalf("decode appointment: %v", err)
	}
	if appt.Status != StatusScheduled {
		t.Errorf("expected status to default to Scheduled, got %q", appt.Status)
	}
	if appt.ID == "" {
		t.Error("expected generated id")
	}
}

func TestHandler_CreateAppointment_ExplicitStatus(t *testing.T) {
	h, e := newTestHandler(t)
	body := `{"patient_id":"patient-01","doctor_user_id":"user-doctor-01","service_id":"service-01","start_time":"2026-09-01T10:00:00Z","status":"Checked-in"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env := decodeEnvelope(t, rec)
	var appt Appointment
	if err := json.Unmarshal(env.Data, &appt); err != nil {
		t.Fatalf("decode appointment: %v", err)
	}
	if appt.Status != StatusCheckedIn {
		t.Errorf("expected submitted status to win, got %q", appt.Status)
	}
}

func TestHandler_CreateAppointment_MissingFields(t *testing.T) {
	h, e := newTestHandler(t)
	body := `{"patient_id":"patient-01","doctor_user_id":"user-doctor-01"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error != "Missing required fields for appointment" {
		t.Errorf("unexpected error message: %q", env.Error)
	}
}

func TestHandler_UpdateAppointment_Status(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"Completed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("appt-01")

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env := decodeEnvelope(t, rec)
	var appt Appointment
	if err := json.Unmarshal(env.Data, &appt); err != nil {
		t.Fatalf("decode appointment: %v", err)
	}
	if appt.Status != StatusCompleted {
		t.Errorf("patch not applied: %+v", appt)
	}
	if appt.PatientID != "patient-01" {
		t.Errorf("unpatched field changed: %q", appt.PatientID)
	}
}

func TestHandler_DeleteAppointment(t *testing.T) {
	h, e := newTestHandler(t)
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("appt-02")

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"deleted":true`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestAppointment_StartsOn(t *testing.T) {
	appt := Appointment{StartTime: "2026-08-30T09:00:00Z"}
	day, err := time.Parse(time.RFC3339, "2026-08-30T15:00:00Z")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	if !appt.StartsOn(day) {
		t.Error("expected same-day start to match")
	}
	if appt.StartsOn(day.AddDate(0, 0, 1)) {
		t.Error("expected different day to not match")
	}
	if (Appointment{StartTime: "not-a-time"}).StartsOn(day) {
		t.Error("unparseable start time should not match")
	}
}
