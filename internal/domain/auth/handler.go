// Package auth exposes the login endpoint. There is no session or token
// issuance: the client keeps the returned user object as its credential for
// subsequent requests.
package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/domain/staff"
	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/password"
	"github.com/clinicdesk/clinicdesk/internal/platform/respond"
)

type Handler struct {
	users *entity.Store[staff.User, *staff.User]
}

func NewHandler(users *entity.Store[staff.User, *staff.User]) *Handler {
	return &Handler{users: users}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/login", h.Login)
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login matches the identifier against username or email with a linear scan
// over all users, then verifies the password digest. The failure message is
// the same whichever part was wrong.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respond.Bad(c, err.Error())
	}
	if req.Identifier == "" || req.Password == "" {
		return respond.Bad(c, "Username/email and password are required.")
	}
	users, _, err := h.users.List(c.Request().Context())
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	for _, u := range users {
		if u.Username != req.Identifier && u.Email != req.Identifier {
			continue
		}
		if !password.Verify(req.Password, u.PasswordHash) {
			break
		}
		return respond.OK(c, u.Sanitized())
	}
	return respond.Unauthorized(c, "Invalid credentials")
}
