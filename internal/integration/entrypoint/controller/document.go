// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/application/usecase/document"
	"github.com/agency-ops/backend/internal/domain/entity"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
	"github.com/agency-ops/backend/internal/integration/entrypoint/dto"
)

// DocumentController handles bookkeeping document endpoints.
type DocumentController struct {
	ingestUseCase  *document.IngestDocumentsUseCase
	listUseCase    *document.ListDocumentsUseCase
	reviewUseCase  *document.ReviewDocumentUseCase
	extractUseCase *document.ExtractFieldsUseCase
}

// NewDocumentController creates a new document controller instance.
func NewDocumentController(
	ingestUseCase *document.IngestDocumentsUseCase,
	listUseCase *document.ListDocumentsUseCase,
	reviewUseCase *document.ReviewDocumentUseCase,
	extractUseCase *document.ExtractFieldsUseCase,
) *DocumentController {
	return &DocumentController{
		ingestUseCase:  ingestUseCase,
		listUseCase:    listUseCase,
		reviewUseCase:  reviewUseCase,
		extractUseCase: extractUseCase,
	}
}

// Upload handles POST /documents requests. It accepts a multipart form with
// a "kind" field and one or more "files" entries.
func (c *DocumentController) Upload(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid multipart form",
		})
		return
	}

	kind := ctx.PostForm("kind")
	fileHeaders := form.File["files"]

	input := document.IngestDocumentsInput{
		Kind: entity.DocumentKind(kind),
	}
	for _, header := range fileHeaders {
		file, err := header.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Failed to read uploaded file",
			})
			return
		}
		defer file.Close()

		input.Files = append(input.Files, document.FileUpload{
			Filename:    header.Filename,
			Content:     file,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		})
	}

	output, err := c.ingestUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDocumentError(ctx, err)
		return
	}

	status := http.StatusCreated
	if len(output.Ingested) == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, dto.ToIngestDocumentsResponse(output))
}

// List handles GET /documents requests. An optional "status" query filters
// the list.
func (c *DocumentController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), document.ListDocumentsInput{
		Status: entity.DocumentStatus(ctx.Query("status")),
	})
	if err != nil {
		handleDocumentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListDocumentsResponse{
		Documents:     dto.ToDocumentResponses(output.Documents),
		PendingReview: output.PendingReview,
	})
}

// Review handles POST /documents/:id/review requests.
func (c *DocumentController) Review(ctx *gin.Context) {
	documentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid document ID",
		})
		return
	}

	var req dto.ReviewDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	invoiceDate, err := dto.ParseDate(req.InvoiceDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid invoice_date, expected YYYY-MM-DD"})
		return
	}
	dueDate, err := dto.ParseDate(req.DueDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid due_date, expected YYYY-MM-DD"})
		return
	}
	bookedDate, err := dto.ParseDate(req.BookedDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid booked_date, expected YYYY-MM-DD"})
		return
	}
	periodStart, err := dto.ParseDate(req.PeriodStart)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid period_start, expected YYYY-MM-DD"})
		return
	}
	periodEnd, err := dto.ParseDate(req.PeriodEnd)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid period_end, expected YYYY-MM-DD"})
		return
	}

	input := document.ReviewDocumentInput{
		DocumentID:    documentID,
		Action:        document.ReviewAction(req.Action),
		Kind:          entity.DocumentKind(req.Kind),
		Counterparty:  req.Counterparty,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		BookedDate:    bookedDate,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		VATRate:       req.VATRate,
		TotalInclVAT:  req.TotalInclVAT,
		Tags:          req.Tags,
		Notes:         req.Notes,
	}

	output, err := c.reviewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDocumentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDocumentResponse(output.Document))
}

// Extract handles POST /documents/:id/extract requests. The answer is a
// best-effort guess; a null fields object means nothing could be extracted.
func (c *DocumentController) Extract(ctx *gin.Context) {
	documentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid document ID",
		})
		return
	}

	output, err := c.extractUseCase.Execute(ctx.Request.Context(), document.ExtractFieldsInput{
		DocumentID: documentID,
	})
	if err != nil {
		handleDocumentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExtractFieldsResponse(output.Fields))
}

// handleDocumentError maps document errors to HTTP responses. The VAT
// reporting endpoints share the same error vocabulary.
func handleDocumentError(ctx *gin.Context, err error) {
	var docErr *domainerror.DocumentError
	if errors.As(err, &docErr) {
		ctx.JSON(statusCodeForDocumentError(docErr.Code), dto.ErrorResponse{
			Error: docErr.Message,
			Code:  string(docErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrDocumentNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Document not found",
			Code:  string(domainerror.ErrCodeDocumentNotFound),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForDocumentError maps document error codes to HTTP status codes.
func statusCodeForDocumentError(code domainerror.DocumentErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidDocumentKind,
		domainerror.ErrCodeNoFilesProvided,
		domainerror.ErrCodeInvalidReviewAction,
		domainerror.ErrCodeInvalidPeriod,
		domainerror.ErrCodeInvalidBasis:
		return http.StatusBadRequest
	case domainerror.ErrCodeDocumentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDocumentAlreadyReviewed:
		return http.StatusConflict
	case domainerror.ErrCodeNothingToExport:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
