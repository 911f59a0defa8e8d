package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopbridge/backend/internal/domain/integration"
	"github.com/shopbridge/backend/internal/domain/partner"
	"github.com/shopbridge/backend/internal/domain/shared"
	"github.com/shopbridge/backend/internal/domain/trade"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderFactoryConfig bounds the reconciliation of imported order amounts.
type OrderFactoryConfig struct {
	// DiscountIterationBound caps the one-cent nudging loop that converges
	// the discount line onto the platform-declared discount total.
	DiscountIterationBound int
	// Tolerance is the largest acceptable gap between the computed and the
	// platform-declared grand total before a price-difference line is added.
	Tolerance decimal.Decimal
}

// DefaultOrderFactoryConfig returns the factory defaults: ten iterations and
// a one-cent tolerance.
func DefaultOrderFactoryConfig() OrderFactoryConfig {
	return OrderFactoryConfig{
		DiscountIterationBound: 10,
		Tolerance:              decimal.New(1, -trade.CurrencyPrecision),
	}
}

// OrderFactory builds channel orders from parsed platform payloads. Creation
// is idempotent by external order code; every unmapped dependency fails with
// a structured error so the job can be re-queued once the mapping exists.
type OrderFactory struct {
	mappings        *MappingService
	productImporter *ProductImportService
	orderRepo       trade.ChannelOrderRepository
	taxRepo         trade.TaxRepository
	methodRepo      trade.PaymentMethodRepository
	subStatusRepo   trade.SubStatusRepository
	paymentRepo     trade.PaymentRecordRepository
	customerRepo    partner.CustomerRepository
	jobs            JobEnqueuer
	config          OrderFactoryConfig
	logger          *zap.Logger
}

// NewOrderFactory creates a new OrderFactory
func NewOrderFactory(
	mappings *MappingService,
	productImporter *ProductImportService,
	orderRepo trade.ChannelOrderRepository,
	taxRepo trade.TaxRepository,
	methodRepo trade.PaymentMethodRepository,
	subStatusRepo trade.SubStatusRepository,
	paymentRepo trade.PaymentRecordRepository,
	customerRepo partner.CustomerRepository,
	jobs JobEnqueuer,
	config OrderFactoryConfig,
	logger *zap.Logger,
) *OrderFactory {
	if config.DiscountIterationBound <= 0 {
		config = DefaultOrderFactoryConfig()
	}
	return &OrderFactory{
		mappings:        mappings,
		productImporter: productImporter,
		orderRepo:       orderRepo,
		taxRepo:         taxRepo,
		methodRepo:      methodRepo,
		subStatusRepo:   subStatusRepo,
		paymentRepo:     paymentRepo,
		customerRepo:    customerRepo,
		jobs:            jobs,
		config:          config,
		logger:          logger,
	}
}

// CreateFromEnvelope parses a raw platform order and creates it.
func (f *OrderFactory) CreateFromEnvelope(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, envelope integration.OrderEnvelope) (*trade.ChannelOrder, error) {
	payload, err := adapter.ParseOrder(envelope)
	if err != nil {
		return nil, err
	}
	return f.Create(ctx, integ, adapter, payload)
}

// Create builds the channel order from a validated payload. An order that
// already exists for the external code is returned unchanged: redelivered
// webhooks and re-queued jobs must never duplicate an order.
func (f *OrderFactory) Create(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, payload *integration.OrderPayload) (*trade.ChannelOrder, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	existing, err := f.orderRepo.FindByExternalCode(ctx, integ.ID, payload.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		f.logger.Debug("order already imported",
			zap.String("integration_id", integ.ID.String()),
			zap.String("code", payload.Code))
		// A redelivery may follow a run that committed the order but died
		// before payments or pipeline scheduling. Every finishing step is
		// idempotent, so resume them instead of returning early.
		if err := f.finishImport(ctx, integ, payload, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	customerID, err := f.resolveCustomer(ctx, integ, payload.Customer)
	if err != nil {
		return nil, err
	}

	reference := payload.Reference
	if integ.OrderNameRef != "" {
		reference = integ.OrderNameRef + reference
	}

	order, err := trade.NewChannelOrder(integ.TenantID, integ.ID, payload.Code, reference, customerID)
	if err != nil {
		return nil, err
	}
	order.Currency = payload.Currency
	if payload.AmountTotal != nil {
		order.ExternalTotal = *payload.AmountTotal
	}

	if payload.Shipping != nil {
		id, err := f.resolveCustomer(ctx, integ, payload.Shipping)
		if err != nil {
			return nil, err
		}
		order.ShippingPartnerID = &id
	}
	if payload.Billing != nil {
		id, err := f.resolveCustomer(ctx, integ, payload.Billing)
		if err != nil {
			return nil, err
		}
		order.BillingPartnerID = &id
	}

	if err := f.resolveCarrierAndPayment(ctx, integ, payload, order); err != nil {
		return nil, err
	}
	if err := f.buildProductLines(ctx, integ, adapter, payload, order); err != nil {
		return nil, err
	}
	if err := f.buildShippingLine(ctx, integ, payload, order); err != nil {
		return nil, err
	}
	if err := f.buildDiscountLines(integ, payload, order); err != nil {
		return nil, err
	}
	if err := f.buildDifferenceLine(integ, payload, order); err != nil {
		return nil, err
	}
	if err := f.resolveSubStatuses(ctx, integ, payload, order); err != nil {
		return nil, err
	}

	if err := f.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if err := f.finishImport(ctx, integ, payload, order); err != nil {
		return nil, err
	}

	f.logger.Info("imported channel order",
		zap.String("integration_id", integ.ID.String()),
		zap.String("code", payload.Code),
		zap.String("order_id", order.ID.String()))

	return order, nil
}

// finishImport runs the steps that follow the order commit: the order
// mapping, payment records and the workflow pipeline kickoff. Each step is
// idempotent, so a redelivered payload re-runs whatever a previous attempt
// did not complete.
func (f *OrderFactory) finishImport(ctx context.Context, integ *integration.Integration, payload *integration.OrderPayload, order *trade.ChannelOrder) error {
	if _, err := f.mappings.CreateIntegrationMapping(ctx, integ, integration.KindOrder, order.ID, payload.Code); err != nil {
		return err
	}

	if integ.ImportPayments {
		if err := f.importPayments(ctx, integ, payload, order); err != nil {
			return err
		}
	}

	if f.jobs != nil {
		job := JobRequest{
			Type:          JobTypeRunPipelineStep,
			IdentityKey:   fmt.Sprintf("pipeline:%s", order.ID),
			IntegrationID: integ.ID,
			TenantID:      integ.TenantID,
			Payload:       map[string]string{"order_id": order.ID.String()},
		}
		if err := f.jobs.Enqueue(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

// resolveCustomer maps an order address to an internal customer, creating one
// on first sight. A payload without a customer falls back to the
// integration's default customer.
func (f *OrderFactory) resolveCustomer(ctx context.Context, integ *integration.Integration, address *integration.AddressPayload) (uuid.UUID, error) {
	if address == nil {
		if integ.DefaultCustomerID == nil {
			return uuid.Nil, integration.NewImportError("Default Customer is empty")
		}
		return *integ.DefaultCustomerID, nil
	}

	id, err := f.mappings.ToInternal(ctx, integ, integration.KindPartner, address.Code, false)
	if err != nil {
		return uuid.Nil, err
	}
	if id != nil {
		return *id, nil
	}

	customer, err := f.createCustomer(ctx, integ, address)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := f.mappings.CreateIntegrationMapping(ctx, integ, integration.KindPartner, customer.ID, address.Code); err != nil {
		return uuid.Nil, err
	}
	return customer.ID, nil
}

func (f *OrderFactory) createCustomer(ctx context.Context, integ *integration.Integration, address *integration.AddressPayload) (*partner.Customer, error) {
	code := fmt.Sprintf("%s-%s", strings.ToUpper(integ.TypeAPI), address.Code)

	customerType := partner.CustomerTypeIndividual
	name := address.PersonName
	if address.CompanyName != "" {
		customerType = partner.CustomerTypeOrganization
		name = address.CompanyName
	}

	customer, err := partner.NewCustomer(integ.TenantID, code, name, customerType)
	if err != nil {
		return nil, err
	}
	if err := customer.SetContact(address.PersonName, address.Phone, address.Email); err != nil {
		return nil, err
	}
	street := address.Street
	if address.Street2 != "" {
		street += ", " + address.Street2
	}
	if err := customer.SetAddress(street, address.City, address.StateCode, address.ZIP, address.CountryCode); err != nil {
		return nil, err
	}
	if err := f.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// resolveCarrierAndPayment maps the payload's carrier and payment method. Both
// are name-keyed on most platforms, so the mapping layer's auto-creation has
// usually already materialized them during master-data import.
func (f *OrderFactory) resolveCarrierAndPayment(ctx context.Context, integ *integration.Integration, payload *integration.OrderPayload, order *trade.ChannelOrder) error {
	carrierID, err := f.mappings.ToInternal(ctx, integ, integration.KindCarrier, payload.Carrier, true)
	if err != nil {
		return err
	}
	order.CarrierID = carrierID

	methodID, err := f.mappings.ToInternal(ctx, integ, integration.KindPaymentMethod, payload.PaymentMethod, true)
	if err != nil {
		return err
	}
	order.PaymentMethodID = methodID
	return nil
}

// buildProductLines resolves each payload line to an internal variant and
// builds the priced order line. An unmapped product triggers one just-in-time
// import of its template through the adapter before the lookup is retried;
// the retry failing propagates the structured dependency error.
func (f *OrderFactory) buildProductLines(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, payload *integration.OrderPayload, order *trade.ChannelOrder) error {
	for _, lp := range payload.Lines {
		variantID, err := f.resolveVariant(ctx, integ, adapter, lp.ProductCode)
		if err != nil {
			return err
		}

		line, err := trade.NewChannelOrderLine(order.ID, trade.LineTypeProduct, &variantID,
			fmt.Sprintf("Order line %s", lp.Code), lp.Quantity, lp.PriceUnit)
		if err != nil {
			return err
		}
		line.ExternalCode = lp.Code

		taxIDs, rate, err := f.resolveTaxes(ctx, integ, lp.TaxCodes)
		if err != nil {
			return err
		}
		line.SetTaxes(taxIDs, rate)
		if lp.Discount != nil && !lp.Discount.IsZero() {
			line.SetDiscount(*lp.Discount)
		}

		order.AddLine(line)
	}
	return nil
}

// resolveVariant maps an external product code, importing the product just in
// time when it has never been seen. The import runs once; a second miss
// propagates so the job is parked on the missing mapping.
func (f *OrderFactory) resolveVariant(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, productCode string) (uuid.UUID, error) {
	id, err := f.mappings.ToInternal(ctx, integ, integration.KindVariant, productCode, false)
	if err != nil {
		return uuid.Nil, err
	}
	if id != nil {
		return *id, nil
	}

	templateCode := productCode
	if idx := strings.LastIndex(productCode, "-"); idx > 0 {
		templateCode = productCode[:idx]
	}
	f.logger.Info("importing unknown product referenced by order line",
		zap.String("integration_id", integ.ID.String()),
		zap.String("product_code", productCode))
	if f.productImporter != nil {
		if err := f.productImporter.ImportByCodes(ctx, integ, adapter, []string{templateCode}); err != nil {
			return uuid.Nil, err
		}
	}

	id, err = f.mappings.ToInternal(ctx, integ, integration.KindVariant, productCode, true)
	if err != nil {
		return uuid.Nil, err
	}
	return *id, nil
}

func (f *OrderFactory) resolveTaxes(ctx context.Context, integ *integration.Integration, codes []string) ([]uuid.UUID, decimal.Decimal, error) {
	if len(codes) == 0 {
		return nil, decimal.Zero, nil
	}
	ids := make([]uuid.UUID, 0, len(codes))
	for _, code := range codes {
		id, err := f.mappings.ToInternal(ctx, integ, integration.KindTax, code, true)
		if err != nil {
			return nil, decimal.Zero, err
		}
		ids = append(ids, *id)
	}
	taxes, err := f.taxRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return ids, trade.CombinedRate(taxes), nil
}

// buildShippingLine adds the carrier cost line. A platform-declared carrier
// tax rate of exactly zero overrides the mapped carrier taxes: some platforms
// list taxes on the carrier while charging none on this order.
func (f *OrderFactory) buildShippingLine(ctx context.Context, integ *integration.Integration, payload *integration.OrderPayload, order *trade.ChannelOrder) error {
	if payload.ShippingCost.IsZero() && payload.ShippingCostTaxExcl == nil {
		return nil
	}

	priceUnit := payload.ShippingCost
	if payload.ShippingCostTaxExcl != nil {
		priceUnit = *payload.ShippingCostTaxExcl
	}

	line, err := trade.NewChannelOrderLine(order.ID, trade.LineTypeShipping, nil,
		fmt.Sprintf("Shipping: %s", payload.Carrier), decimal.NewFromInt(1), priceUnit)
	if err != nil {
		return err
	}

	if payload.CarrierTaxRate != nil && payload.CarrierTaxRate.IsZero() {
		line.SetTaxes(nil, decimal.Zero)
	} else {
		taxIDs, rate, err := f.resolveTaxes(ctx, integ, payload.CarrierTaxCodes)
		if err != nil {
			return err
		}
		if payload.CarrierTaxRate != nil {
			rate = *payload.CarrierTaxRate
		}
		line.SetTaxes(taxIDs, rate)
	}

	order.AddLine(line)
	return nil
}

// buildDiscountLines converges a single negative discount line onto the
// platform-declared tax-inclusive discount total. The tax-exclusive price is
// nudged one cent at a time for a bounded number of iterations; whatever gap
// remains is booked on a second, tax-free residual line so the order total
// always reconciles exactly.
func (f *OrderFactory) buildDiscountLines(integ *integration.Integration, payload *integration.OrderPayload, order *trade.ChannelOrder) error {
	if payload.DiscountTaxIncl.IsZero() {
		return nil
	}

	target := payload.DiscountTaxIncl.Neg()
	rate := dominantTaxRate(order)

	line, err := trade.NewChannelOrderLine(order.ID, trade.LineTypeDiscount,
		integ.DiscountProductID, "Discount", decimal.NewFromInt(1), payload.DiscountTaxExcl.Neg())
	if err != nil {
		return err
	}
	line.SetTaxes(nil, rate)

	// Nudge until the taxed line total lands exactly on the target. A gap of
	// one cent still gets a nudge; only the iteration bound gives up.
	cent := decimal.New(1, -trade.CurrencyPrecision)
	for i := 0; i < f.config.DiscountIterationBound; i++ {
		diff := line.PriceTotal.Sub(target)
		if diff.IsZero() {
			break
		}
		if diff.IsPositive() {
			line.SetPriceUnit(line.PriceUnit.Sub(cent))
		} else {
			line.SetPriceUnit(line.PriceUnit.Add(cent))
		}
	}
	order.AddLine(line)

	residual := target.Sub(line.PriceTotal)
	if !residual.IsZero() {
		residualLine, err := trade.NewChannelOrderLine(order.ID, trade.LineTypeDiscount,
			integ.DiscountProductID, "Discount rounding", decimal.NewFromInt(1), residual)
		if err != nil {
			return err
		}
		residualLine.SetTaxes(nil, decimal.Zero)
		order.AddLine(residualLine)
	}

	return nil
}

// buildDifferenceLine reconciles any remaining gap between the computed and
// the platform-declared grand total with a tax-free price-difference line.
func (f *OrderFactory) buildDifferenceLine(integ *integration.Integration, payload *integration.OrderPayload, order *trade.ChannelOrder) error {
	if payload.AmountTotal == nil {
		return nil
	}

	diff := payload.AmountTotal.Sub(order.ComputedTotal())
	if diff.Abs().LessThanOrEqual(f.config.Tolerance) {
		return nil
	}

	product := integ.PositiveDifferenceProductID
	if diff.IsNegative() {
		product = integ.NegativeDifferenceProductID
	}

	line, err := trade.NewChannelOrderLine(order.ID, trade.LineTypePriceDifference,
		product, "Price difference", decimal.NewFromInt(1), diff)
	if err != nil {
		return err
	}
	line.SetTaxes(nil, decimal.Zero)
	order.AddLine(line)

	f.logger.Warn("order total differs from platform total",
		zap.String("integration_id", integ.ID.String()),
		zap.String("code", payload.Code),
		zap.String("difference", diff.String()))

	return nil
}

// dominantTaxRate picks the tax rate applied to the largest share of the
// order's product amount, used to tax the discount line.
func dominantTaxRate(order *trade.ChannelOrder) decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	rates := make(map[string]decimal.Decimal)
	for _, line := range order.Lines {
		if line.LineType != trade.LineTypeProduct {
			continue
		}
		key := line.TaxRate.String()
		totals[key] = totals[key].Add(line.PriceSubtotal)
		rates[key] = line.TaxRate
	}

	best := decimal.Zero
	bestAmount := decimal.NewFromInt(-1)
	for key, amount := range totals {
		if amount.GreaterThan(bestAmount) {
			bestAmount = amount
			best = rates[key]
		}
	}
	return best
}

// resolveSubStatuses maps the platform's current order state to internal
// sub-statuses driving the workflow pipeline.
func (f *OrderFactory) resolveSubStatuses(ctx context.Context, integ *integration.Integration, payload *integration.OrderPayload, order *trade.ChannelOrder) error {
	if payload.CurrentOrderState == "" {
		return nil
	}
	id, err := f.mappings.ToInternal(ctx, integ, integration.KindSubStatus, payload.CurrentOrderState, true)
	if err != nil {
		return err
	}
	order.SubStatusIDs = append(order.SubStatusIDs, *id)
	return nil
}

// importPayments records the payload's captured payment transactions.
// Transactions without an id or with a zero amount are skipped with a
// warning; already recorded transaction ids are skipped silently.
func (f *OrderFactory) importPayments(ctx context.Context, integ *integration.Integration, payload *integration.OrderPayload, order *trade.ChannelOrder) error {
	if len(payload.Payments) == 0 {
		return nil
	}

	journal := ""
	if order.PaymentMethodID != nil {
		method, err := f.methodRepo.FindByID(ctx, *order.PaymentMethodID)
		if err != nil {
			return err
		}
		journal = method.JournalName
	}
	if journal == "" {
		journal = payload.PaymentMethod
	}

	for _, txn := range payload.Payments {
		if txn.TransactionID == "" || txn.Amount.IsZero() {
			f.logger.Warn("skipping payment transaction without id or amount",
				zap.String("integration_id", integ.ID.String()),
				zap.String("order_code", payload.Code),
				zap.String("transaction_id", txn.TransactionID))
			continue
		}

		existing, err := f.paymentRepo.FindByTransactionID(ctx, order.ID, txn.TransactionID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			continue
		}

		date := parseTransactionDate(txn.TransactionDate)
		record, err := trade.NewPaymentRecord(order.ID, txn.TransactionID, date, txn.Amount, txn.Currency, journal)
		if err != nil {
			return err
		}
		if err := f.paymentRepo.Save(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func parseTransactionDate(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
