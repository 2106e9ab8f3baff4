package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campuskit/campus-auth/internal/api/dto"
	"github.com/campuskit/campus-auth/internal/listing"
	"github.com/campuskit/campus-auth/internal/service"
	apperrors "github.com/campuskit/campus-auth/pkg/util"
)

// UsersHandler exposes registration, login and listing endpoints.
type UsersHandler struct {
	auth   *service.AuthService
	users  *service.UserService
	limits listing.Limits
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService, limits listing.Limits) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService, limits: limits}
}

// Register handles POST /user/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Register(c.UserContext(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": dto.NewUserResponse(*user)},
	})
}

// Login handles POST /user/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	token, expiresAt, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt}},
	})
}

// List handles GET /user/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	query := listing.Parse(func(name string) string { return c.Query(name) }, h.limits)

	users, total, err := h.users.List(c.UserContext(), query)
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.NewUserResponse(user))
	}

	return c.JSON(dto.UserListResponse{
		Items:       items,
		CurrentPage: query.Page,
		TotalPages:  listing.TotalPages(total, query.PageSize),
		TotalItems:  total,
	})
}
