package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	appintegration "github.com/shopbridge/backend/internal/application/integration"
	"github.com/shopbridge/backend/internal/domain/integration"
	"github.com/shopbridge/backend/internal/interfaces/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IntegrationHandler handles external platform connection endpoints
type IntegrationHandler struct {
	BaseHandler
	integrationService *appintegration.IntegrationService
	reconcileService   *appintegration.ReconcileService
	jobs               appintegration.JobEnqueuer
}

// NewIntegrationHandler creates a new IntegrationHandler
func NewIntegrationHandler(
	integrationService *appintegration.IntegrationService,
	reconcileService *appintegration.ReconcileService,
	jobs appintegration.JobEnqueuer,
) *IntegrationHandler {
	return &IntegrationHandler{
		integrationService: integrationService,
		reconcileService:   reconcileService,
		jobs:               jobs,
	}
}

// CreateIntegrationRequest represents a request to create a platform connection
// @Description Request body for creating a platform connection
type CreateIntegrationRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200" example:"Main Shop"`
	TypeAPI string `json:"type_api" binding:"required,min=1,max=50" example:"prestashop"`
}

// SetIntegrationSettingRequest represents a request to store one setting
// @Description Request body for storing a connection setting
type SetIntegrationSettingRequest struct {
	Key    string `json:"key" binding:"required,min=1,max=100" example:"shop_url"`
	Value  string `json:"value" binding:"required" example:"https://shop.example.com"`
	Secure bool   `json:"secure" example:"false"`
	Eval   bool   `json:"eval" example:"false"`
}

// SetIntegrationFeatureRequest represents a request to toggle a feature flag
// @Description Request body for toggling a connection feature
type SetIntegrationFeatureRequest struct {
	Feature string `json:"feature" binding:"required" example:"ORDER_IMPORT"`
	Enabled bool   `json:"enabled" example:"true"`
}

// ConfigureWebhookRequest represents a request to enable a webhook topic
// @Description Request body for configuring an inbound webhook topic
type ConfigureWebhookRequest struct {
	Topic      string `json:"topic" binding:"required,min=1,max=100" example:"orders/paid"`
	Controller string `json:"controller" binding:"required,min=1,max=100" example:"order-paid"`
	Active     bool   `json:"active" example:"true"`
}

// UpdateIntegrationDefaultsRequest represents a request to update order and
// inventory defaults
// @Description Request body for updating connection defaults
type UpdateIntegrationDefaultsRequest struct {
	DefaultCustomerID           *string  `json:"default_customer_id" binding:"omitempty,uuid"`
	DiscountProductID           *string  `json:"discount_product_id" binding:"omitempty,uuid"`
	PositiveDifferenceProductID *string  `json:"positive_difference_product_id" binding:"omitempty,uuid"`
	NegativeDifferenceProductID *string  `json:"negative_difference_product_id" binding:"omitempty,uuid"`
	PricelistID                 *string  `json:"pricelist_id" binding:"omitempty,uuid"`
	ImportPayments              *bool    `json:"import_payments"`
	OrderNameRef                *string  `json:"order_name_ref" binding:"omitempty,max=50"`
	DefaultLanguageCode         *string  `json:"default_language_code" binding:"omitempty,max=20"`
	LocationIDs                 []string `json:"location_ids" binding:"omitempty,dive,uuid"`
}

// ImportProductsRequest represents a request to import products by code
// @Description Request body for scheduling a product import
type ImportProductsRequest struct {
	Codes []string `json:"codes" binding:"required,min=1,dive,required"`
}

// ExportProductRequest represents a request to export one product template
// @Description Request body for scheduling a product export
type ExportProductRequest struct {
	TemplateID string `json:"template_id" binding:"required,uuid"`
}

// ReconcileRequest represents a request to re-run auto-matching
// @Description Request body for reconciling unmapped external records
type ReconcileRequest struct {
	Kind string `json:"kind" binding:"required" example:"PRODUCT_TEMPLATE"`
}

// WebhookLineResponse is one configured webhook topic
type WebhookLineResponse struct {
	Topic      string `json:"topic"`
	Controller string `json:"controller"`
	Active     bool   `json:"active"`
	ExternalID string `json:"external_id,omitempty"`
}

// IntegrationSettingResponse is one stored setting. Secure values stay
// redacted.
type IntegrationSettingResponse struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Secure bool   `json:"secure"`
}

// IntegrationResponse is the API shape of a platform connection
type IntegrationResponse struct {
	ID                  string                       `json:"id"`
	Name                string                       `json:"name"`
	TypeAPI             string                       `json:"type_api"`
	State               string                       `json:"state"`
	Features            map[string]bool              `json:"features"`
	Settings            []IntegrationSettingResponse `json:"settings"`
	Webhooks            []WebhookLineResponse        `json:"webhooks"`
	DefaultLanguageCode string                       `json:"default_language_code,omitempty"`
	ImportPayments      bool                         `json:"import_payments"`
	CreatedAt           time.Time                    `json:"created_at"`
	UpdatedAt           time.Time                    `json:"updated_at"`
}

func toIntegrationResponse(integ *integration.Integration) IntegrationResponse {
	resp := IntegrationResponse{
		ID:                  integ.ID.String(),
		Name:                integ.Name,
		TypeAPI:             integ.TypeAPI,
		State:               string(integ.State),
		Features:            make(map[string]bool, len(integ.Features)),
		Settings:            make([]IntegrationSettingResponse, 0, len(integ.Settings)),
		Webhooks:            make([]WebhookLineResponse, 0, len(integ.WebhookLines)),
		DefaultLanguageCode: integ.DefaultLanguageCode,
		ImportPayments:      integ.ImportPayments,
		CreatedAt:           integ.CreatedAt,
		UpdatedAt:           integ.UpdatedAt,
	}
	for feature, enabled := range integ.Features {
		resp.Features[string(feature)] = enabled
	}
	for _, setting := range integ.Settings {
		value := setting.Value
		if setting.Secure {
			value = "********"
		}
		resp.Settings = append(resp.Settings, IntegrationSettingResponse{
			Key:    setting.Key,
			Value:  value,
			Secure: setting.Secure,
		})
	}
	for _, line := range integ.WebhookLines {
		resp.Webhooks = append(resp.Webhooks, WebhookLineResponse{
			Topic:      line.Topic,
			Controller: line.Controller,
			Active:     line.IsActive,
			ExternalID: line.ExternalID,
		})
	}
	return resp
}

// Create godoc
//
//	@ID				createIntegration
//	@Summary		Create platform connection
//	@Description	Register a draft connection to an external sales platform
//	@Tags			integrations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateIntegrationRequest	true	"Connection data"
//	@Success		201		{object}	dto.Response{data=IntegrationResponse}
//	@Failure		400		{object}	dto.Response
//	@Router			/integrations [post]
func (h *IntegrationHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	integ, err := h.integrationService.Create(c.Request.Context(), tenantID, req.Name, req.TypeAPI)
	if err != nil {
		h.handleIntegrationError(c, err)
		return
	}
	h.Created(c, toIntegrationResponse(integ))
}

// List godoc
//
//	@ID				listIntegrations
//	@Summary		List platform connections
//	@Description	List all platform connections of the tenant
//	@Tags			integrations
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=[]IntegrationResponse}
//	@Router			/integrations [get]
func (h *IntegrationHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	integrations, err := h.integrationService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.handleIntegrationError(c, err)
		return
	}

	responses := make([]IntegrationResponse, 0, len(integrations))
	for i := range integrations {
		responses = append(responses, toIntegrationResponse(&integrations[i]))
	}
	h.Success(c, responses)
}

// GetByID godoc
//
//	@ID				getIntegrationByID
//	@Summary		Get platform connection
//	@Description	Get one platform connection by ID
//	@Tags			integrations
//	@Produce		json
//	@Param			id	path		string	true	"Integration ID"
//	@Success		200	{object}	dto.Response{data=IntegrationResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/integrations/{id} [get]
func (h *IntegrationHandler) GetByID(c *gin.Context) {
	integ, ok := h.loadIntegration(c)
	if !ok {
		return
	}
	h.Success(c, toIntegrationResponse(integ))
}

// SetSetting godoc
//
//	@ID				setIntegrationSetting
//	@Summary		Store connection setting
//	@Description	Store one configuration setting, encrypting secure values
//	@Tags			integrations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Integration ID"
//	@Param			request	body		SetIntegrationSettingRequest	true	"Setting data"
//	@Success		204		"No Content"
//	@Failure		400		{object}	dto.Response
//	@Router			/integrations/{id}/settings [put]
func (h *IntegrationHandler) SetSetting(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req SetIntegrationSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.integrationService.SetSetting(c.Request.Context(), id, req.Key, req.Value, req.Secure, req.Eval); err != nil {
		h.handleIntegrationError(c, err)
		return
	}
	h.NoContent(c)
}

// SetFeature godoc
//
//	@ID				setIntegrationFeature
//	@Summary		Toggle connection feature
//	@Description	Enable or disable one feature flag of a connection
//	@Tags			integrations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Integration ID"
//	@Param			request	body		SetIntegrationFeatureRequest	true	"Feature data"
//	@Success		204		"No Content"
//	@Failure		400		{object}	dto.Response
//	@Router			/integrations/{id}/features [put]
func (h *IntegrationHandler) SetFeature(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req SetIntegrationFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.integrationService.SetFeature(c.Request.Context(), id, integration.Feature(req.Feature), req.Enabled); err != nil {
		h.handleIntegrationError(c, err)
		return
	}
	h.NoContent(c)
}

// ConfigureWebhook godoc
//
//	@ID				configureIntegrationWebhook
//	@Summary		Configure webhook topic
//	@Description	Enable or update one inbound webhook topic of a connection
//	@Tags			integrations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Integration ID"
//	@Param			request	body		ConfigureWebhookRequest	true	"Webhook data"
//	@Success		204		"No Content"
//	@Failure		400		{object}	dto.Response
//	@Router			/integrations/{id}/webhooks [put]
func (h *IntegrationHandler) ConfigureWebhook(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req ConfigureWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.integrationService.ConfigureWebhook(c.Request.Context(), id, req.Topic, req.Controller, req.Active); err != nil {
		h.handleIntegrationError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateDefaults godoc
//
//	@ID				updateIntegrationDefaults
//	@Summary		Update connection defaults
//	@Description	Update order defaults and inventory export scope
//	@Tags			integrations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Integration ID"
//	@Param			request	body		UpdateIntegrationDefaultsRequest	true	"Defaults data"
//	@Success		204		"No Content"
//	@Failure		400		{object}	dto.Response
//	@Router			/integrations/{id}/defaults [put]
func (h *IntegrationHandler) UpdateDefaults(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateIntegrationDefaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	defaults := appintegration.OrderDefaults{
		ImportPayments:      req.ImportPayments,
		OrderNameRef:        req.OrderNameRef,
		DefaultLanguageCode: req.DefaultLanguageCode,
	}
	for _, field := range []struct {
		raw    *string
		target **uuid.UUID
	}{
		{req.DefaultCustomerID, &defaults.DefaultCustomerID},
		{req.DiscountProductID, &defaults.DiscountProductID},
		{req.PositiveDifferenceProductID, &defaults.PositiveDifferenceProductID},
		{req.NegativeDifferenceProductID, &defaults.NegativeDifferenceProductID},
		{req.PricelistID, &defaults.PricelistID},
	} {
		if field.raw == nil {
			continue
		}
		parsed, err := uuid.Parse(*field.raw)
		if err != nil {
			h.BadRequest(c, "Invalid UUID in defaults")
			return
		}
		*field.target = &parsed
	}
	if req.LocationIDs != nil {
		defaults.LocationIDs = make([]uuid.UUID, 0, len(req.LocationIDs))
		for _, raw := range req.LocationIDs {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				h.BadRequest(c, "Invalid location ID")
				return
			}
			defaults.LocationIDs = append(defaults.LocationIDs, parsed)
		}
	}

	if err := h.integrationService.UpdateDefaults(c.Request.Context(), id, defaults); err != nil {
		h.handleIntegrationError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate godoc
//
//	@ID				activateIntegration
//	@Summary		Activate connection
//	@Description	Check connectivity, register webhooks and go live. Schedules an initial master data import.
//	@Tags			integrations
//	@Produce		json
//	@Param			id	path	string	true	"Integration ID"
//	@Success		204	"No Content"
//	@Failure		422	{object}	dto.Response
//	@Router			/integrations/{id}/activate [post]
func (h *IntegrationHandler) Activate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.integrationService.Activate(c.Request.Context(), id); err != nil {
		h.handleIntegrationError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate godoc
//
//	@ID				deactivateIntegration
//	@Summary		Deactivate connection
//	@Description	Unregister webhooks and return the connection to draft
//	@Tags			integrations
//	@Produce		json
//	@Param			id	path	string	true	"Integration ID"
//	@Success		204	"No Content"
//	@Failure		404	{object}	dto.Response
//	@Router			/integrations/{id}/deactivate [post]
func (h *IntegrationHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.integrationService.Deactivate(c.Request.Context(), id); err != nil {
		h.handleIntegrationError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete godoc
//
//	@ID				deleteIntegration
//	@Summary		Delete connection
//	@Description	Delete a connection with all its mappings and external records
//	@Tags			integrations
//	@Produce		json
//	@Param			id	path	string	true	"Integration ID"
//	@Success		204	"No Content"
//	@Failure		404	{object}	dto.Response
//	@Router			/integrations/{id} [delete]
func (h *IntegrationHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.integrationService.Delete(c.Request.Context(), id); err != nil {
		h.handleIntegrationError(c, err)
		return
	}
	h.NoContent(c)
}

// ImportMasterData godoc
//
//	@ID				importIntegrationMasterData
//	@Summary		Schedule master data import
//	@Description	Schedule a full refresh of languages, taxes, carriers and other master data
//	@Tags			integrations
//	@Produce		json
//	@Param			id	path		string	true	"Integration ID"
//	@Success		202	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Router			/integrations/{id}/import/master-data [post]
func (h *IntegrationHandler) ImportMasterData(c *gin.Context) {
	integ, ok := h.loadIntegration(c)
	if !ok {
		return
	}

	job := appintegration.JobRequest{
		Type:          appintegration.JobTypeImportMasterData,
		IdentityKey:   fmt.Sprintf("master_data:%s", integ.ID),
		IntegrationID: integ.ID,
		TenantID:      integ.TenantID,
	}
	h.enqueue(c, job)
}

// ImportProducts godoc
//
//	@ID				importIntegrationProducts
//	@Summary		Schedule product import
//	@Description	Schedule import of external products by their platform codes
//	@Tags			integrations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Integration ID"
//	@Param			request	body		ImportProductsRequest	true	"Product codes"
//	@Success		202		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Router			/integrations/{id}/import/products [post]
func (h *IntegrationHandler) ImportProducts(c *gin.Context) {
	integ, ok := h.loadIntegration(c)
	if !ok {
		return
	}

	var req ImportProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	job := appintegration.JobRequest{
		Type:          appintegration.JobTypeImportProduct,
		IdentityKey:   fmt.Sprintf("import_product:%s:%s", integ.ID, strings.Join(req.Codes, ",")),
		IntegrationID: integ.ID,
		TenantID:      integ.TenantID,
		Payload:       map[string]any{"codes": req.Codes},
	}
	h.enqueue(c, job)
}

// ExportProduct godoc
//
//	@ID				exportIntegrationProduct
//	@Summary		Schedule product export
//	@Description	Schedule export of one product template to the platform
//	@Tags			integrations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Integration ID"
//	@Param			request	body		ExportProductRequest	true	"Template ID"
//	@Success		202		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Router			/integrations/{id}/export/products [post]
func (h *IntegrationHandler) ExportProduct(c *gin.Context) {
	integ, ok := h.loadIntegration(c)
	if !ok {
		return
	}

	var req ExportProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	job := appintegration.JobRequest{
		Type:          appintegration.JobTypeExportProduct,
		IdentityKey:   fmt.Sprintf("export_product:%s:%s", integ.ID, templateID),
		IntegrationID: integ.ID,
		TenantID:      integ.TenantID,
		Payload:       map[string]any{"template_id": templateID},
	}
	h.enqueue(c, job)
}

// PullOrders godoc
//
//	@ID				pullIntegrationOrders
//	@Summary		Schedule order pull
//	@Description	Schedule a poll of receivable orders from the platform
//	@Tags			integrations
//	@Produce		json
//	@Param			id	path		string	true	"Integration ID"
//	@Success		202	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Router			/integrations/{id}/import/orders [post]
func (h *IntegrationHandler) PullOrders(c *gin.Context) {
	integ, ok := h.loadIntegration(c)
	if !ok {
		return
	}

	job := appintegration.JobRequest{
		Type:          appintegration.JobTypeImportOrders,
		IdentityKey:   fmt.Sprintf("import_orders:%s", integ.ID),
		IntegrationID: integ.ID,
		TenantID:      integ.TenantID,
	}
	h.enqueue(c, job)
}

// Reconcile godoc
//
//	@ID				reconcileIntegration
//	@Summary		Reconcile unmapped records
//	@Description	Re-run reference auto-matching over unmapped external records of one kind
//	@Tags			integrations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Integration ID"
//	@Param			request	body		ReconcileRequest	true	"Entity kind"
//	@Success		200		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Router			/integrations/{id}/reconcile [post]
func (h *IntegrationHandler) Reconcile(c *gin.Context) {
	integ, ok := h.loadIntegration(c)
	if !ok {
		return
	}

	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fixed, err := h.reconcileService.FixUnmapped(c.Request.Context(), integ, integration.EntityKind(req.Kind))
	if err != nil {
		h.handleIntegrationError(c, err)
		return
	}
	h.Success(c, gin.H{"mapped": fixed})
}

func (h *IntegrationHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid integration ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *IntegrationHandler) loadIntegration(c *gin.Context) (*integration.Integration, bool) {
	id, ok := h.parseID(c)
	if !ok {
		return nil, false
	}
	integ, err := h.integrationService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleIntegrationError(c, err)
		return nil, false
	}
	return integ, true
}

func (h *IntegrationHandler) enqueue(c *gin.Context, job appintegration.JobRequest) {
	if err := h.jobs.Enqueue(c.Request.Context(), job); err != nil {
		h.handleIntegrationError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{"scheduled": true}))
}

func (h *IntegrationHandler) handleIntegrationError(c *gin.Context, err error) {
	var importErr *integration.ImportError
	switch {
	case errors.Is(err, integration.ErrIntegrationNotFound):
		h.NotFound(c, "Integration not found")
	case errors.Is(err, integration.ErrAdapterNotRegistered):
		h.UnprocessableEntity(c, dto.ErrCodeInvalidState, "No adapter registered for this API type")
	case errors.Is(err, integration.ErrInvalidStateTransition):
		h.UnprocessableEntity(c, dto.ErrCodeInvalidState, err.Error())
	case errors.Is(err, integration.ErrSettingNotFound):
		h.UnprocessableEntity(c, dto.ErrCodeInvalidState, "Required connection setting is missing")
	case errors.As(err, &importErr):
		h.UnprocessableEntity(c, dto.ErrCodeBusinessRule, err.Error())
	default:
		h.HandleError(c, err)
	}
}
