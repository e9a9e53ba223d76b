package patient

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/respond"
)

type Handler struct {
	patients *entity.Store[Patient, *Patient]
}

func NewHandler(patients *entity.Store[Patient, *Patient]) *Handler {
	return &Handler{patients: patients}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.List)
	api.GET("/patients/:id", h.Get)
	api.POST("/patients", h.Create)
	api.PATCH("/patients/:id", h.Update)
	api.DELETE("/patients/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	items, count, err := h.patients.List(c.Request().Context())
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.List(c, items, count)
}

func (h *Handler) Get(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()
	ok, err := h.patients.Exists(ctx, id)
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	if !ok {
		return respond.NotFound(c, "Patient not found")
	}
	p, err := h.patients.Get(ctx, id)
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.OK(c, p)
}

type createPatientRequest struct {
	FullName         string `json:"full_name"`
	Phone            string `json:"phone"`
	DOB              string `json:"dob"`
	Gender           string `json:"gender"`
	Email            string `json:"email"`
	EmergencyContact string `json:"emergency_contact"`
	MedicalHistory   string `json:"medical_history"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createPatientRequest
	if err := c.Bind(&req); err != nil {
		return respond.Bad(c, err.Error())
	}
	if req.FullName == "" || req.Phone == "" {
		return respond.Bad(c, "Full name and phone are required")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	p := Patient{
		ID:               uuid.NewString(),
		FullName:         req.FullName,
		Phone:            req.Phone,
		DOB:              req.DOB,
		Gender:           req.Gender,
		Email:            req.Email,
		EmergencyContact: req.EmergencyContact,
		MedicalHistory:   req.MedicalHistory,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	created, err := h.patients.Create(c.Request().Context(), p)
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
	ok, err := h.patients.Exists(ctx, id)
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	if !ok {
		return respond.NotFound(c, "Patient not found")
	}
	patch["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	var mergeErr error
	updated, err := h.patients.Mutate(ctx, id, func(current Patient) Patient {
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
	deleted, err := h.patients.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.OK(c, map[string]bool{"deleted": deleted})
}
