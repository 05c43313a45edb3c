package replenishment

import (
	"math"
	"time"

	"github.com/erp/stockplanner/internal/domain/trade"
)

// DailyAccuracy is the error of one forecast day against realized sales
type DailyAccuracy struct {
	Date            time.Time
	Actual          float64
	Forecast        float64
	AbsoluteError   float64
	SquaredError    float64
	PercentageError float64
}

// AccuracyReport aggregates daily errors over every day with a forecast entry
type AccuracyReport struct {
	Days []DailyAccuracy
	MAE  float64
	MAPE float64
	RMSE float64
}

// Evaluate back-tests forecast entries against per-day completed sales.
// Days without any sales count as an actual of zero.
func Evaluate(entries []ForecastEntry, sales []trade.DailySales) (*AccuracyReport, error) {
	if len(entries) == 0 {
		return nil, ErrNoForecastEntries
	}

	actuals := make(map[string]float64, len(sales))
	for _, s := range sales {
		actuals[dayKey(s.Date)] += s.Quantity.InexactFloat64()
	}

	report := &AccuracyReport{Days: make([]DailyAccuracy, 0, len(entries))}
	var absSum, sqSum, pctSum float64
	for _, entry := range entries {
		actual := actuals[dayKey(entry.Date)]
		diff := actual - entry.Yhat
		day := DailyAccuracy{
			Date:            entry.Date,
			Actual:          actual,
			Forecast:        entry.Yhat,
			AbsoluteError:   math.Abs(diff),
			SquaredError:    diff * diff,
			PercentageError: percentageError(actual, entry.Yhat),
		}
		report.Days = append(report.Days, day)
		absSum += day.AbsoluteError
		sqSum += day.SquaredError
		pctSum += day.PercentageError
	}

	n := float64(len(report.Days))
	report.MAE = absSum / n
	report.MAPE = pctSum / n
	report.RMSE = math.Sqrt(sqSum / n)
	return report, nil
}

func percentageError(actual, forecast float64) float64 {
	if actual == 0 {
		if forecast == 0 {
			return 0
		}
		return 100
	}
	return math.Abs(actual-forecast) / math.Abs(actual) * 100
}
