package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/fundbridge/intake-go/internal/api/middleware"
	"github.com/fundbridge/intake-go/internal/application"
	"github.com/fundbridge/intake-go/internal/domain/user"
	"github.com/fundbridge/intake-go/pkg/response"
	"github.com/fundbridge/intake-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

const tokenLifetime = 24 * time.Hour

type UserHandler struct {
	service *application.UserService
}

func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(c *gin.Context) {
	var input user.RegisterDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	u, err := h.service.Register(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) Login(c *gin.Context) {
	var input user.LoginDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	u, err := h.service.Authenticate(input)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	token, err := middleware.GenerateToken(u, tokenLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		Token:     token,
		UID:       u.UID,
		Username:  u.Username,
		Role:      string(u.Role),
		CanReview: u.CanReview,
	})
}

// SetReviewPermission toggles an analyst's review grant. Admin only (routed).
func (h *UserHandler) SetReviewPermission(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input user.UpdateReviewPermissionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	u, err := h.service.SetReviewPermission(id, *input.CanReview)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, u)
}
