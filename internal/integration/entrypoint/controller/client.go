// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/application/usecase/client"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
	"github.com/agency-ops/backend/internal/integration/entrypoint/dto"
	"github.com/agency-ops/backend/internal/integration/entrypoint/middleware"
)

// ClientController handles client directory endpoints.
type ClientController struct {
	createUseCase *client.CreateClientUseCase
	listUseCase   *client.ListClientsUseCase
	updateUseCase *client.UpdateClientUseCase
	deleteUseCase *client.DeleteClientUseCase
	inviteUseCase *client.InviteClientUseCase
}

// NewClientController creates a new client controller instance.
func NewClientController(
	createUseCase *client.CreateClientUseCase,
	listUseCase *client.ListClientsUseCase,
	updateUseCase *client.UpdateClientUseCase,
	deleteUseCase *client.DeleteClientUseCase,
	inviteUseCase *client.InviteClientUseCase,
) *ClientController {
	return &ClientController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		inviteUseCase: inviteUseCase,
	}
}

// Create handles POST /clients requests.
func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.CreateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), client.CreateClientInput{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		KvKNumber:    req.KvKNumber,
		VATNumber:    req.VATNumber,
		Notes:        req.Notes,
	})
	if err != nil {
		handleClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToClientResponse(output.Client))
}

// List handles GET /clients requests.
func (c *ClientController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListClientsResponse{
		Clients: dto.ToClientResponses(output.Clients),
	})
}

// Update handles PUT /clients/:id requests.
func (c *ClientController) Update(ctx *gin.Context) {
	clientID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid client ID",
		})
		return
	}

	var req dto.UpdateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), client.UpdateClientInput{
		ClientID:     clientID,
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		KvKNumber:    req.KvKNumber,
		VATNumber:    req.VATNumber,
		Notes:        req.Notes,
	})
	if err != nil {
		handleClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(output.Client))
}

// Delete handles DELETE /clients/:id requests.
func (c *ClientController) Delete(ctx *gin.Context) {
	clientID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid client ID",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), client.DeleteClientInput{
		ClientID: clientID,
	}); err != nil {
		handleClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Client deleted",
	})
}

// Invite handles POST /clients/:id/invite requests. The inviter name on the
// email comes from the authenticated account.
func (c *ClientController) Invite(ctx *gin.Context) {
	clientID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid client ID",
		})
		return
	}

	inviterName, _ := middleware.GetUserEmailFromContext(ctx)

	output, err := c.inviteUseCase.Execute(ctx.Request.Context(), client.InviteClientInput{
		ClientID:    clientID,
		InviterName: inviterName,
	})
	if err != nil {
		handleClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: output.Message,
	})
}

// handleClientError maps client errors to HTTP responses.
func handleClientError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrClientNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeClientNotFound),
		})
	case errors.Is(err, domainerror.ErrClientNameRequired):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeClientNameRequired),
		})
	case errors.Is(err, domainerror.ErrClientNoContactEmail):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeClientNoContactEmail),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}
