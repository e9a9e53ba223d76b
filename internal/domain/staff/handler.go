package staff

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/password"
	"github.com/clinicdesk/clinicdesk/internal/platform/respond"
)

type Handler struct {
	users *entity.Store[User, *User]
}

func NewHandler(users *entity.Store[User, *User]) *Handler {
	return &Handler{users: users}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/users", h.List)
	api.POST("/users", h.Create)
	api.PATCH("/users/:id", h.Update)
	api.DELETE("/users/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	users, count, err := h.users.List(c.Request().Context())
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	items := make([]User, 0, len(users))
	for _, u := range users {
		items = append(items, u.Sanitized())
	}
	return respond.List(c, items, count)
}

type createUserRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name"`
	Role        Role     `json:"role"`
	Password    string   `json:"password"`
	Phone       string   `json:"phone"`
	Permissions []string `json:"permissions"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return respond.Bad(c, err.Error())
	}
	if req.Username == "" || req.Email == "" || req.FullName == "" || req.Role == "" || req.Password == "" {
		return respond.Bad(c, "Missing required fields")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	perms := req.Permissions
	if perms == nil {
		perms = []string{}
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         req.Role,
		Phone:        req.Phone,
		PasswordHash: password.Hash(req.Password),
		Permissions:  perms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := h.users.Create(c.Request().Context(), user)
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.OK(c, created.Sanitized())
}

func (h *Handler) Update(c echo.Context) error {
	id := c.Param("id")
	var patch map[string]any
	if err := c.Bind(&patch); err != nil {
		return respond.Bad(c, err.Error())
	}
	ctx := c.Request().Context()
	ok, err := h.users.Exists(ctx, id)
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	if !ok {
		return respond.NotFound(c, "User not found")
	}
	// A plaintext password in the patch is digested before merging; the
	// digest itself is never patchable directly.
	if plain, isStr := patch["password"].(string); isStr && plain != "" {
		patch["password_hash"] = password.Hash(plain)
	}
	delete(patch, "password")
	patch["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	var mergeErr error
	updated, err := h.users.Mutate(ctx, id, func(current User) User {
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
	return respond.OK(c, updated.Sanitized())
}

func (h *Handler) Delete(c echo.Context) error {
	deleted, err := h.users.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond.Internal(c, err.Error())
	}
	return respond.OK(c, map[string]bool{"deleted": deleted})
}
