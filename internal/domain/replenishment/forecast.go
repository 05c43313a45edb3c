package replenishment

import (
	"sort"
	"time"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeForecast is the aggregate type for Forecast
const AggregateTypeForecast = "Forecast"

// ForecastEntry is one day of a demand forecast
type ForecastEntry struct {
	Date      time.Time
	Yhat      float64 // point estimate
	YhatLower float64
	YhatUpper float64
}

// Spread returns the width of the confidence interval, never negative
func (e ForecastEntry) Spread() float64 {
	if e.YhatUpper < e.YhatLower {
		return 0
	}
	return e.YhatUpper - e.YhatLower
}

// AccuracySummary is the last back-test result recorded on a forecast
type AccuracySummary struct {
	MAE         float64
	MAPE        float64
	RMSE        float64
	Days        int
	EvaluatedAt time.Time
}

// Forecast is the aggregate root for a generated demand forecast.
// Entries are immutable once generated; only the accuracy summary changes afterwards.
type Forecast struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID
	GeneratedAt time.Time
	Accuracy    *AccuracySummary
	entries     []ForecastEntry
}

// NewForecast creates a forecast for a product and tracks it as created
func NewForecast(productID uuid.UUID, entries []ForecastEntry, generatedAt time.Time) (*Forecast, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Forecast product cannot be empty")
	}
	sorted, err := normalizeEntries(entries)
	if err != nil {
		return nil, err
	}

	f := &Forecast{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		GeneratedAt:       generatedAt,
		entries:           sorted,
	}
	f.CreatedAt = generatedAt
	f.UpdatedAt = generatedAt

	f.AddTrackedEntity(f, shared.TrackedActionCreated)
	f.AddDomainEvent(NewForecastGeneratedEvent(f))
	return f, nil
}

// RehydrateForecast rebuilds a forecast loaded from storage without tracking or events
func RehydrateForecast(base shared.BaseEntity, productID uuid.UUID, generatedAt time.Time, entries []ForecastEntry, accuracy *AccuracySummary) *Forecast {
	sorted := make([]ForecastEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	return &Forecast{
		BaseAggregateRoot: shared.RehydrateAggregateRoot(base),
		ProductID:         productID,
		GeneratedAt:       generatedAt,
		Accuracy:          accuracy,
		entries:           sorted,
	}
}

// Entries returns a copy of the entries, ordered by date
func (f *Forecast) Entries() []ForecastEntry {
	out := make([]ForecastEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// EntriesFrom returns the entries dated at or after the given instant
func (f *Forecast) EntriesFrom(from time.Time) []ForecastEntry {
	var out []ForecastEntry
	for _, entry := range f.entries {
		if !entry.Date.Before(from) {
			out = append(out, entry)
		}
	}
	return out
}

// Horizon returns the first and last entry dates
func (f *Forecast) Horizon() (time.Time, time.Time) {
	if len(f.entries) == 0 {
		return time.Time{}, time.Time{}
	}
	return f.entries[0].Date, f.entries[len(f.entries)-1].Date
}

// RecordAccuracy stores a back-test report on the forecast
func (f *Forecast) RecordAccuracy(report *AccuracyReport, at time.Time) error {
	if report == nil {
		return shared.NewDomainError("INVALID_ACCURACY", "Accuracy report cannot be nil")
	}

	f.Accuracy = &AccuracySummary{
		MAE:         report.MAE,
		MAPE:        report.MAPE,
		RMSE:        report.RMSE,
		Days:        len(report.Days),
		EvaluatedAt: at,
	}
	f.Touch(at)

	f.AddTrackedEntity(f, shared.TrackedActionUpdated)
	f.AddDomainEvent(NewForecastEvaluatedEvent(f))
	return nil
}

// Accept dispatches the forecast to the visitor
func (f *Forecast) Accept(v EntityVisitor) error {
	return v.VisitForecast(f)
}

func normalizeEntries(entries []ForecastEntry) ([]ForecastEntry, error) {
	if len(entries) == 0 {
		return nil, ErrNoForecastEntries
	}

	sorted := make([]ForecastEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	seen := make(map[string]struct{}, len(sorted))
	for _, entry := range sorted {
		if entry.Date.IsZero() {
			return nil, shared.NewDomainError("INVALID_FORECAST", "Forecast entry date cannot be empty")
		}
		if entry.YhatUpper < entry.YhatLower {
			return nil, shared.NewDomainError("INVALID_FORECAST", "Forecast upper bound cannot be below lower bound")
		}
		key := dayKey(entry.Date)
		if _, dup := seen[key]; dup {
			return nil, shared.NewDomainError("INVALID_FORECAST", "Forecast has more than one entry for "+key)
		}
		seen[key] = struct{}{}
	}
	return sorted, nil
}
