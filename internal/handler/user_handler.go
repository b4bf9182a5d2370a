package handler

import (
	"net/http"

	"bookcourier/internal/middleware"
	"bookcourier/internal/usecase"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc, admin echo.MiddlewareFunc) {
	e.GET("/users/:email", h.get, auth)
	e.POST("/users", h.upsert, auth)
	e.PATCH("/users/:id", h.updateProfile, auth)
	e.GET("/user/role", h.role, auth)

	// ★ admin限定
	e.PATCH("/user-role", h.updateRole, auth, admin)
	e.GET("/all-users/:email", h.listAll, auth, admin)
}

func (h *UserHandler) get(c echo.Context) error {
	out, err := h.uc.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type UpsertUserRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ログインのたびに叩かれるupsert。
// メールはトークンの主張を使う（bodyの値は信用しない）。
func (h *UserHandler) upsert(c echo.Context) error {
	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpsertUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpsertOnLogin(c.Request().Context(), usecase.UpsertUserInput{
		Email: email,
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}

func (h *UserHandler) updateProfile(c echo.Context) error {
	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateProfile(c.Request().Context(), email, c.Param("id"), req.Name, req.Image); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

type UpdateRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

func (h *UserHandler) updateRole(c echo.Context) error {
	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateRole(c.Request().Context(), req.Email, req.Role); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

// 自分以外の全ユーザー
func (h *UserHandler) listAll(c echo.Context) error {
	out, err := h.uc.ListAllExcept(c.Request().Context(), c.Param("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) role(c echo.Context) error {
	out, err := h.uc.GetRole(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
