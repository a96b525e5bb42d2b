package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fundbridge/intake-go/internal/application"
	"github.com/fundbridge/intake-go/internal/config"
	"github.com/fundbridge/intake-go/internal/domain/intake"
	"github.com/fundbridge/intake-go/pkg/response"
	"github.com/fundbridge/intake-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

type IntakeHandler struct {
	service *application.IntakeService
}

func NewIntakeHandler(service *application.IntakeService) *IntakeHandler {
	return &IntakeHandler{service: service}
}

type draftView struct {
	Draft *intake.Draft `json:"draft"`
	// Progress follows the two-decimal display convention.
	Progress  string `json:"progress"`
	Schema    any    `json:"schema,omitempty"`
	CanSubmit bool   `json:"can_submit"`
}

func newDraftView(d *intake.Draft, includeSchema bool) draftView {
	view := draftView{
		Draft:     d,
		Progress:  fmt.Sprintf("%.2f", intake.Progress(d)),
		CanSubmit: intake.CanSubmit(d),
	}
	if includeSchema {
		view.Schema = gin.H{
			"sections":  intake.Sections,
			"documents": intake.Categories,
			"needs":     intake.NeedCategories,
		}
	}
	return view
}

// GetDraft returns the session draft, its progress and the form schema.
func (h *IntakeHandler) GetDraft(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, newDraftView(h.service.Draft(uid), true))
}

type setFieldDTO struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

func (h *IntakeHandler) SetField(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input setFieldDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	d, err := h.service.SetField(uid, input.Field, input.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, newDraftView(d, false))
}

type setNeedsDTO struct {
	Category string   `json:"category" binding:"required"`
	Options  []string `json:"options"`
}

func (h *IntakeHandler) SetNeeds(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input setNeedsDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	d, err := h.service.SetNeeds(uid, input.Category, input.Options)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, newDraftView(d, false))
}

// UploadDocument accepts one multipart file for a document category.
func (h *IntakeHandler) UploadDocument(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	category := c.Param("category")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "missing file upload"})
		return
	}
	if fileHeader.Size > config.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponse{Error: "file exceeds upload limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	defer file.Close()

	d, err := h.service.UploadDocument(
		c.Request.Context(),
		uid,
		category,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		var docErr *intake.DocumentError
		if errors.As(err, &docErr) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: docErr.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "document storage failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, newDraftView(d, false))
}

func (h *IntakeHandler) RemoveDocument(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid index parameter"})
		return
	}

	d, err := h.service.RemoveDocument(uid, c.Param("category"), index)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, newDraftView(d, false))
}

// Validation reports the itemized missing fields and documents.
func (h *IntakeHandler) Validation(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	verr := h.service.Validate(uid)
	if verr == nil {
		c.JSON(http.StatusOK, response.ValidationResponse{})
		return
	}
	c.JSON(http.StatusOK, response.ValidationResponse{
		Error:            verr.Error(),
		MissingFields:    verr.MissingFields,
		MissingDocuments: verr.MissingDocuments,
	})
}

// Submit converts a complete draft into a pending application. Incomplete
// drafts get the itemized 422, nothing is persisted for them.
func (h *IntakeHandler) Submit(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	app, err := h.service.Submit(uid)
	if err != nil {
		var verr *intake.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, response.ValidationResponse{
				Error:            verr.Error(),
				MissingFields:    verr.MissingFields,
				MissingDocuments: verr.MissingDocuments,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, app)
}
