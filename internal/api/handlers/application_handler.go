package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fundbridge/intake-go/internal/application"
	"github.com/fundbridge/intake-go/internal/domain/funding"
	"github.com/fundbridge/intake-go/pkg/response"
	"github.com/fundbridge/intake-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	lifecycle *application.LifecycleService
	review    *application.ReviewService
}

func NewApplicationHandler(lifecycle *application.LifecycleService, review *application.ReviewService) *ApplicationHandler {
	return &ApplicationHandler{lifecycle: lifecycle, review: review}
}

// List returns the filtered review queue. Reviewer routes only.
func (h *ApplicationHandler) List(c *gin.Context) {
	var filter funding.ReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	apps, err := h.review.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.review.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Application not found"})
		return
	}
	c.JSON(http.StatusOK, app)
}

// Mine lists the calling entrepreneur's submitted applications.
func (h *ApplicationHandler) Mine(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	apps, err := h.review.ListByApplicant(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, apps)
}

// UpdateStatus performs one lifecycle transition under optimistic locking.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	claims, err := utils.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input funding.UpdateStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	actor := funding.Actor{
		ID:           claims.UserID,
		Role:         claims.Role,
		ReviewerFlag: claims.CanReview,
	}

	app, err := h.lifecycle.UpdateStatus(c.Param("id"), input.Status, actor, input.Version)
	if err != nil {
		h.renderTransitionError(c, app, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) renderTransitionError(c *gin.Context, app funding.Application, err error) {
	var invalid *funding.InvalidTransitionError
	var unauthorized *funding.UnauthorizedError

	switch {
	case errors.Is(err, application.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Application not found"})
	case errors.Is(err, funding.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.As(err, &invalid):
		// re-present the legal options instead of coercing to a nearby state
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          invalid.Error(),
			"current_status": invalid.From,
			"valid_statuses": funding.NextStatuses(invalid.From),
		})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: unauthorized.Error()})
	case errors.Is(err, funding.ErrVersionConflict):
		c.JSON(http.StatusConflict, response.ConflictResponse{
			Error:          err.Error(),
			CurrentStatus:  string(app.Status),
			CurrentVersion: app.Version,
		})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}
}

// AttachAssessment receives the external scoring service callback.
func (h *ApplicationHandler) AttachAssessment(c *gin.Context) {
	var input funding.AssessmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	app, err := h.lifecycle.AttachAssessment(c.Param("id"), input)
	if err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, app)
}

// History returns the status-change audit trail, newest first.
func (h *ApplicationHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	changes, err := h.lifecycle.History(c.Param("id"), limit, offset)
	if err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, changes)
}

// Summary feeds the dashboard layer with per-status and per-country counts.
func (h *ApplicationHandler) Summary(c *gin.Context) {
	summary, err := h.review.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
