package replenishment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZScore(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{0.90, 1.28},
		{0.95, 1.65},
		{0.975, 1.96},
		{0.99, 2.33},
		{0.80, DefaultZScore},
		{0.999, DefaultZScore},
		{0, DefaultZScore},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ZScore(tt.level), "level %v", tt.level)
	}
}

func TestDemandDeviation(t *testing.T) {
	t.Run("empty entries have no deviation", func(t *testing.T) {
		assert.Zero(t, DemandDeviation(nil))
	})

	t.Run("averages the per-entry deviation", func(t *testing.T) {
		entries := []ForecastEntry{
			{Date: day(0), Yhat: 10, YhatLower: 6, YhatUpper: 14},
			{Date: day(1), Yhat: 10, YhatLower: 2, YhatUpper: 18},
		}
		assert.InDelta(t, 12/3.92, DemandDeviation(entries), 1e-9)
	})

	t.Run("inverted bounds count as zero spread", func(t *testing.T) {
		entries := []ForecastEntry{{Date: day(0), Yhat: 10, YhatLower: 12, YhatUpper: 8}}
		assert.Zero(t, DemandDeviation(entries))
	})
}

func TestSafetyStock(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		assert.Equal(t, int64(8), SafetyStock(8/3.92, 0.95, 5))
	})

	t.Run("zero lead time yields no buffer", func(t *testing.T) {
		assert.Equal(t, int64(0), SafetyStock(5, 0.99, 0))
	})

	t.Run("no deviation yields no buffer", func(t *testing.T) {
		assert.Equal(t, int64(0), EstimateSafetyStock(nil, 0.99, 10))
	})

	t.Run("non-decreasing in lead time", func(t *testing.T) {
		prev := int64(0)
		for lead := 0; lead <= 60; lead++ {
			got := SafetyStock(3.7, 0.95, lead)
			assert.GreaterOrEqual(t, got, prev, "lead time %d", lead)
			prev = got
		}
	})

	t.Run("non-decreasing in service level", func(t *testing.T) {
		prev := int64(0)
		for _, level := range []float64{0.90, 0.95, 0.975, 0.99} {
			got := SafetyStock(3.7, level, 7)
			assert.GreaterOrEqual(t, got, prev, "service level %v", level)
			prev = got
		}
	})
}
