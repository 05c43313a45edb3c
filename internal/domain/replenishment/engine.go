package replenishment

import (
	"math"
	"time"

	"github.com/erp/stockplanner/internal/domain/catalog"
	"github.com/erp/stockplanner/internal/domain/partner"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/erp/stockplanner/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// warningMarginDays widens the warning band beyond the lead time
const warningMarginDays = 2

// Clock returns the current instant
type Clock func() time.Time

// Engine simulates stock depletion against a forecast and derives a recommendation.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	now Clock
}

// NewEngine creates an engine reading time from the given clock (time.Now if nil)
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{now: clock}
}

// GenerateInput holds everything the engine reads
type GenerateInput struct {
	RecommendationID uuid.UUID
	Product          *catalog.Product
	Forecast         *Forecast
	Deliveries       []trade.ProductDelivery
	Supplier         *partner.Supplier
	CoverageDays     int
}

// Generate returns a new recommendation tracked as created, or nil when stock
// never runs out within the forecast horizon.
func (e *Engine) Generate(in GenerateInput) (*InventoryRecommendation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := e.now()

	upcoming := in.Forecast.EntriesFrom(now)
	if len(upcoming) == 0 {
		return nil, ErrForecastOutOfDate
	}

	stockOut, ok := projectStockOut(in.Product.Stock.InexactFloat64(), upcoming, dailyInbound(in.Deliveries, in.Product.ID))
	if !ok {
		return nil, nil
	}

	leadTime := in.Supplier.LeadTimeDays
	restockAt := stockOut.AddDate(0, 0, -leadTime)
	status := ClassifyStatus(now, stockOut, restockAt, leadTime)

	arrival := restockAt.AddDate(0, 0, leadTime)
	cutoff := arrival.AddDate(0, 0, in.CoverageDays)
	window := entriesBetween(upcoming, arrival, cutoff)

	demand := 0.0
	for _, entry := range window {
		demand += entry.Yhat
	}

	safety := EstimateSafetyStock(window, in.Product.EffectiveServiceLevel(), leadTime)
	if floor := in.Product.SafetyStock.Ceil().IntPart(); floor > safety {
		safety = floor
	}

	quantity := math.Max(0, math.Round(demand+float64(safety)))

	rec := &InventoryRecommendation{
		BaseAggregateRoot: shared.RehydrateAggregateRoot(shared.NewBaseEntityWithID(in.RecommendationID, now)),
		ProductID:         in.Product.ID,
		ForecastID:        in.Forecast.ID,
		SupplierID:        in.Supplier.ID,
		LeadTimeDays:      leadTime,
		Status:            status,
		StockOutDate:      stockOut,
		RestockDate:       restockAt,
		RestockQuantity:   decimal.NewFromFloat(quantity),
		SafetyStock:       decimal.NewFromInt(safety),
		CoverageDays:      in.CoverageDays,
	}
	rec.AddTrackedEntity(rec, shared.TrackedActionCreated)
	rec.AddDomainEvent(NewRecommendationIssuedEvent(rec))
	return rec, nil
}

func (in GenerateInput) validate() error {
	switch {
	case in.Forecast == nil:
		return ErrForecastNotFound
	case in.Product == nil:
		return catalog.ErrProductNotFound
	case in.Supplier == nil:
		return partner.ErrSupplierMissingForRecommendations
	case in.RecommendationID == uuid.Nil:
		return shared.NewDomainError("INVALID_RECOMMENDATION_ID", "Recommendation ID cannot be empty")
	case in.CoverageDays < 0:
		return shared.NewDomainError("INVALID_COVERAGE_DAYS", "Coverage days cannot be negative")
	case in.Forecast.ProductID != in.Product.ID:
		return ErrInvalidForecast
	}
	return nil
}

// ClassifyStatus picks the first matching status:
// critical when stock is already out, urgent when the order should have been
// placed already, warning when stock-out is within lead time plus a margin.
func ClassifyStatus(now, stockOut, restockAt time.Time, leadTimeDays int) RecommendationStatus {
	switch {
	case !stockOut.After(now):
		return RecommendationStatusCritical
	case !restockAt.After(now):
		return RecommendationStatusUrgent
	case wholeDaysBetween(now, stockOut) <= leadTimeDays+warningMarginDays:
		return RecommendationStatusWarning
	default:
		return RecommendationStatusGood
	}
}

// dailyInbound sums pending delivery quantities per calendar day
func dailyInbound(deliveries []trade.ProductDelivery, productID uuid.UUID) map[string]float64 {
	inbound := make(map[string]float64, len(deliveries))
	for _, d := range deliveries {
		if d.ProductID != productID {
			continue
		}
		inbound[dayKey(d.ArrivalDate)] += d.Quantity.InexactFloat64()
	}
	return inbound
}

// projectStockOut walks the balance forward day by day and returns the first
// entry date at which it drops to zero or below
func projectStockOut(stock float64, entries []ForecastEntry, inbound map[string]float64) (time.Time, bool) {
	balance := stock
	for _, entry := range entries {
		balance += inbound[dayKey(entry.Date)]
		balance -= entry.Yhat
		if balance <= 0 {
			return entry.Date, true
		}
	}
	return time.Time{}, false
}

// entriesBetween returns entries with from <= date < to
func entriesBetween(entries []ForecastEntry, from, to time.Time) []ForecastEntry {
	var out []ForecastEntry
	for _, entry := range entries {
		if entry.Date.Before(from) || !entry.Date.Before(to) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
