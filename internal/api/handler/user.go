package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Zigvert/go-shareit/internal/application"
	"github.com/Zigvert/go-shareit/internal/domain/user"
)

type UserHandler struct {
	service UserServiceInterface
}

func NewUserHandler(s UserServiceInterface) *UserHandler {
	return &UserHandler{service: s}
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required" example:"山田太郎"`
	Email string `json:"email" validate:"required,email" example:"taro@example.com"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Create godoc
// @Summary 利用者を登録
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "利用者情報"
// @Success 201 {object} UserResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "メールアドレスが重複"
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	u, err := h.service.CreateUser(c.Request().Context(), application.CreateUserInput{
		Name: req.Name, Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

// GetByID godoc
// @Summary 利用者を取得
// @Tags users
// @Produce json
// @Param id path string true "利用者ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	u, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// List godoc
// @Summary 利用者一覧を取得
// @Tags users
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} UserResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	limit, err := intQueryParam(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := intQueryParam(c, "offset", 0)
	if err != nil {
		return err
	}
	users, err := h.service.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary 利用者を部分更新
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "利用者ID"
// @Param request body UpdateUserRequest true "更新内容"
// @Success 200 {object} UserResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	u, err := h.service.UpdateUser(c.Request().Context(), application.UpdateUserInput{
		ID: c.Param("id"), Name: req.Name, Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Delete godoc
// @Summary 利用者を削除
// @Tags users
// @Param id path string true "利用者ID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
