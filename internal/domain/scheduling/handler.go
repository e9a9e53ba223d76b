package scheduling

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/respond"
)

type Handler struct {
	appointments *entity.Store[Appointment, *Appointment]
}

func NewHandler(appointments *entity.Store[Appointment, *Appointment]) *Handler {
	return &Handler{appointments: appointments}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.List)
	api.POST("/appointments", h.Create)
	api.PATCH("/appointments/:id", h.Update)
	api.DELETE("/appointments/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	items, count, err := h.appointments.List(c.Request().Context())
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.List(c, items, count)
}

type createAppointmentRequest struct {
	PatientID    string `json:"patient_id"`
	DoctorUserID string `json:"doctor_user_id"`
	ServiceID    string `json:"service_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       Status `json:"status"`
	Notes        string `json:"notes"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return respond.Bad(c, err.Error())
	}
	if req.PatientID == "" || req.DoctorUserID == "" || req.ServiceID == "" || req.StartTime == "" {
		return respond.Bad(c, "Missing required fields for appointment")
	}
	status := req.Status
	if status == "" {
		status = StatusScheduled
	}
	appt := Appointment{
		ID:           uuid.NewString(),
		PatientID:    req.PatientID,
		DoctorUserID: req.DoctorUserID,
		ServiceID:    req.ServiceID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       status,
		Notes:        req.Notes,
	}
	created, err := h.appointments.Create(c.Request().Context(), appt)
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
	ok, err := h.appointments.Exists(ctx, id)
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	if !ok {
		return respond.NotFound(c, "Appointment not found")
	}
	var mergeErr error
	updated, err := h.appointments.Mutate(ctx, id, func(current Appointment) Appointment {
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
	deleted, err := h.appointments.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.OK(c, map[string]bool{"deleted": deleted})
}
