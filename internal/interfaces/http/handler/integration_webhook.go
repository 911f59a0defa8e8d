package handler

import (
	"encoding/json"
	"errors"
	"io"

	appintegration "github.com/shopbridge/backend/internal/application/integration"
	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IntegrationWebhookHandler handles inbound webhook deliveries from external
// sales platforms. These endpoints are called by the platforms themselves and
// do not require authentication; every delivery runs the full verification
// sequence before anything is scheduled.
type IntegrationWebhookHandler struct {
	BaseHandler
	integrationService *appintegration.IntegrationService
	orderService       *appintegration.OrderImportService
	logger             *zap.Logger
}

// NewIntegrationWebhookHandler creates a new IntegrationWebhookHandler
func NewIntegrationWebhookHandler(
	integrationService *appintegration.IntegrationService,
	orderService *appintegration.OrderImportService,
	logger *zap.Logger,
) *IntegrationWebhookHandler {
	return &IntegrationWebhookHandler{
		integrationService: integrationService,
		orderService:       orderService,
		logger:             logger,
	}
}

// webhookOrderRef extracts the external order code from a delivery body. The
// code may sit under an order envelope or at the top level.
type webhookOrderRef struct {
	Order struct {
		ID json.Number `json:"id"`
	} `json:"order"`
	ID json.Number `json:"id"`
}

func (r webhookOrderRef) code() string {
	if code := r.Order.ID.String(); code != "" {
		return code
	}
	return r.ID.String()
}

// HandleDelivery godoc
//
//	@ID				handleIntegrationWebhookDelivery
//	@Summary		Receive platform webhook
//	@Description	Verify and process one webhook delivery from an external platform
//	@Tags			integration-webhooks
//	@Accept			json
//	@Produce		json
//	@Param			integration_id	path		string	true	"Integration ID"
//	@Param			controller		path		string	true	"Webhook controller"
//	@Success		200				{object}	map[string]bool	"received=true"
//	@Failure		401				{object}	dto.Response
//	@Failure		404				{object}	dto.Response
//	@Router			/webhooks/{integration_id}/{controller} [post]
func (h *IntegrationWebhookHandler) HandleDelivery(c *gin.Context) {
	integrationID, err := uuid.Parse(c.Param("integration_id"))
	if err != nil {
		h.NotFound(c, "Unknown integration")
		return
	}
	controller := c.Param("controller")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	integ, err := h.integrationService.Get(c.Request.Context(), integrationID)
	if err != nil {
		h.NotFound(c, "Unknown integration")
		return
	}
	line, ok := integ.WebhookLineByController(controller)
	if !ok {
		h.NotFound(c, "Unknown webhook controller")
		return
	}

	req := appintegration.WebhookRequest{
		Topic:   line.Topic,
		Host:    forwardedHost(c),
		Headers: flattenHeaders(c),
		Body:    body,
	}

	integ, err = h.integrationService.VerifyWebhook(c.Request.Context(), integrationID, req)
	if err != nil {
		h.handleVerificationError(c, integrationID, line.Topic, err)
		return
	}

	var ref webhookOrderRef
	if err := json.Unmarshal(body, &ref); err != nil || ref.code() == "" {
		h.BadRequest(c, "Delivery carries no order reference")
		return
	}

	envelope := integration.OrderEnvelope{Code: ref.code(), Data: body}
	if err := h.orderService.ScheduleOrder(c.Request.Context(), integ, envelope); err != nil {
		h.logger.Error("failed to schedule webhook order",
			zap.String("integration_id", integrationID.String()),
			zap.String("order_code", envelope.Code),
			zap.Error(err))
		h.InternalError(c, "Failed to schedule order")
		return
	}

	h.Success(c, gin.H{"received": true})
}

func (h *IntegrationWebhookHandler) handleVerificationError(c *gin.Context, integrationID uuid.UUID, topic string, err error) {
	h.logger.Warn("webhook delivery rejected",
		zap.String("integration_id", integrationID.String()),
		zap.String("topic", topic),
		zap.Error(err))

	switch {
	case errors.Is(err, integration.ErrWebhookNotConfigured),
		errors.Is(err, integration.ErrWebhookInactive),
		errors.Is(err, integration.ErrIntegrationNotFound):
		h.NotFound(c, "Webhook is not configured")
	case errors.Is(err, integration.ErrIntegrationNotActive),
		errors.Is(err, integration.ErrWebhookMissingHeaders),
		errors.Is(err, integration.ErrWebhookHostMismatch),
		errors.Is(err, integration.ErrWebhookBadSignature):
		h.Unauthorized(c, "Webhook verification failed")
	default:
		h.InternalError(c, "Webhook verification failed")
	}
}

// forwardedHost resolves the host the platform addressed. Deliveries usually
// arrive through a reverse proxy.
func forwardedHost(c *gin.Context) string {
	if host := c.GetHeader("X-Forwarded-Host"); host != "" {
		return host
	}
	return c.Request.Host
}

func flattenHeaders(c *gin.Context) map[string]string {
	headers := make(map[string]string, len(c.Request.Header))
	for name := range c.Request.Header {
		headers[name] = c.GetHeader(name)
	}
	return headers
}
