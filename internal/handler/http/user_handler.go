package httphandler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lllypuk/userhub/internal/application/appcore"
	userapp "github.com/lllypuk/userhub/internal/application/user"
	"github.com/lllypuk/userhub/internal/domain/user"
	"github.com/lllypuk/userhub/internal/infrastructure/httpserver"
)

// Client-facing messages.
const (
	msgBadRequest       = "Bad request."
	msgUserIDNotFound   = "User id not available"
	msgUsernameTakenFmt = "Username %s not available"
	msgUsernameUnknown  = "Username %s not valid"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UserService defines the interface for user operations.
// Declared on the consumer side per project guidelines.
type UserService interface {
	Create(ctx context.Context, payload userapp.Payload) (*user.User, error)
	Update(ctx context.Context, payload userapp.Payload) (*user.User, error)
	GetByID(ctx context.Context, rawID string) (*user.User, error)
	ListAll(ctx context.Context) ([]*user.User, error)
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers user routes with the router.
func (h *UserHandler) RegisterRoutes(r *httpserver.Router) {
	users := r.API().Group("/users")
	users.POST("", h.Create)
	users.PATCH("", h.Update)
	users.GET("", h.List)
	users.GET("/:id", h.Get)
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return httpserver.RespondErrorWithCode(c, http.StatusBadRequest, httpserver.MessageInvalidDetails)
	}

	created, err := h.userService.Create(c.Request().Context(), payload)
	if err != nil {
		return handleUserError(c, err, payload)
	}

	return httpserver.RespondCreated(c, map[string]UserResponse{"newUser": ToUserResponse(created)})
}

// Update handles PATCH /api/v1/users.
// The user is addressed by the username in the body.
func (h *UserHandler) Update(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return httpserver.RespondErrorWithCode(c, http.StatusBadRequest, httpserver.MessageInvalidDetails)
	}

	updated, err := h.userService.Update(c.Request().Context(), payload)
	if err != nil {
		return handleUserError(c, err, payload)
	}

	return httpserver.RespondCreated(c, map[string]UserResponse{"updatedUser": ToUserResponse(updated)})
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	found, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleUserError(c, err, nil)
	}

	return httpserver.RespondOK(c, map[string]UserResponse{"userDetails": ToUserResponse(found)})
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.ListAll(c.Request().Context())
	if err != nil {
		return handleUserError(c, err, nil)
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, ToUserResponse(u))
	}
	return httpserver.RespondOK(c, map[string][]UserResponse{"userDetails": resp})
}

// bindPayload decodes the JSON body into an untyped payload. A missing body
// yields a nil payload, which the validator rejects.
func bindPayload(c echo.Context) (userapp.Payload, error) {
	var payload userapp.Payload
	if err := c.Bind(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func handleUserError(c echo.Context, err error, payload userapp.Payload) error {
	switch {
	case errors.Is(err, appcore.ErrValidationFailed):
		return httpserver.RespondErrorWithCode(c, http.StatusBadRequest, httpserver.MessageInvalidDetails)
	case errors.Is(err, userapp.ErrUsernameTaken):
		return httpserver.RespondErrorWithCode(
			c, http.StatusConflict, fmt.Sprintf(msgUsernameTakenFmt, usernameOf(payload)))
	case errors.Is(err, userapp.ErrUserNotFound):
		if payload != nil {
			return httpserver.RespondErrorWithCode(
				c, http.StatusNotFound, fmt.Sprintf(msgUsernameUnknown, usernameOf(payload)))
		}
		return httpserver.RespondErrorWithCode(c, http.StatusNotFound, msgUserIDNotFound)
	case errors.Is(err, userapp.ErrInsertFailed):
		return httpserver.RespondErrorWithCode(c, http.StatusBadRequest, msgBadRequest)
	case errors.Is(err, userapp.ErrUpdateFailed):
		return httpserver.RespondErrorWithCode(c, http.StatusBadRequest, httpserver.MessageInvalidDetails)
	default:
		return httpserver.RespondError(c, err)
	}
}

func usernameOf(payload userapp.Payload) string {
	s, _ := payload["username"].(string)
	return s
}

// ToUserResponse converts a domain User to UserResponse.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID().String(),
		Username:  u.Username(),
		Name:      u.Name(),
		Surname:   u.Surname(),
		CreatedAt: u.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt().UTC().Format(time.RFC3339),
	}
}
