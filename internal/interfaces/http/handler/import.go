package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appinvoicing "github.com/invoicemgr/backend/internal/application/invoicing"
	"github.com/invoicemgr/backend/internal/interfaces/http/dto"
)

// ImportHandler handles invoice CSV import endpoints
type ImportHandler struct {
	BaseHandler
	importService *appinvoicing.ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *appinvoicing.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Import ingests an invoice CSV file. With ?dry_run=true the file is
// validated and resolved without creating anything. Admin only.
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required in the 'file' form field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	dryRun := c.Query("dry_run") == "true"

	var result *appinvoicing.ImportResult
	if dryRun {
		result, err = h.importService.Validate(c.Request.Context(), file)
	} else {
		userID, uidErr := getUserID(c)
		if uidErr != nil {
			h.Unauthorized(c, "Authentication required")
			return
		}
		result, err = h.importService.Import(c.Request.Context(), file, userID)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if !result.Succeeded() {
		// Row-level problems: nothing was imported, report them
		c.JSON(http.StatusUnprocessableEntity, dto.Response{
			Success: false,
			Data:    result,
			Error: &dto.ErrorInfo{
				Code:      "IMPORT_VALIDATION_FAILED",
				Message:   "The import file contains errors",
				RequestID: getRequestID(c),
			},
		})
		return
	}

	h.Success(c, result)
}
