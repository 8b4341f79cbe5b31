package recommendation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitalsync/healthmon-api/internal/model"
)

// healthySnapshot stays inside every normal range: HR 72, 12k steps,
// BMI ~21.5 (150 lb at 70 in).
func healthySnapshot() *model.MetricSnapshot {
	return &model.MetricSnapshot{
		WeightLb:  150,
		HeightIn:  70,
		Steps:     12000,
		HeartRate: 72,
	}
}

func TestGenerateHealthySnapshotProducesNothing(t *testing.T) {
	advisories := Generate(healthySnapshot())
	assert.Empty(t, advisories)
}

func TestGenerateLowHeartRate(t *testing.T) {
	snap := healthySnapshot()
	snap.HeartRate = 55

	advisories := Generate(snap)
	assert.Len(t, advisories, 1)
	assert.Contains(t, advisories[0], "lower than the recommended range")
}

func TestGenerateHighHeartRate(t *testing.T) {
	snap := healthySnapshot()
	snap.HeartRate = 110

	advisories := Generate(snap)
	assert.Len(t, advisories, 1)
	assert.Contains(t, advisories[0], "higher than the recommended range")
}

func TestGenerateHeartRateBoundariesAreHealthy(t *testing.T) {
	for _, hr := range []int{MinHeartRate, MaxHeartRate} {
		snap := healthySnapshot()
		snap.HeartRate = hr
		assert.Empty(t, Generate(snap), "heart rate %d should be in range", hr)
	}
}

func TestGenerateLowSteps(t *testing.T) {
	snap := healthySnapshot()
	snap.Steps = 2000

	advisories := Generate(snap)
	assert.Len(t, advisories, 1)
	assert.Contains(t, advisories[0], "10000 steps")
}

func TestGenerateStepsAtThresholdIsHealthy(t *testing.T) {
	snap := healthySnapshot()
	snap.Steps = MinDailySteps
	assert.Empty(t, Generate(snap))
}

func TestGenerateUnderweight(t *testing.T) {
	// 100 lb at 70 in is BMI ~14.3.
	snap := healthySnapshot()
	snap.WeightLb = 100

	advisories := Generate(snap)
	assert.Len(t, advisories, 1)
	assert.Contains(t, advisories[0], "underweight range")
}

func TestGenerateOverweight(t *testing.T) {
	// 190 lb at 70 in is BMI ~27.3.
	snap := healthySnapshot()
	snap.WeightLb = 190

	advisories := Generate(snap)
	assert.Len(t, advisories, 1)
	assert.Contains(t, advisories[0], "overweight range")
}

func TestGenerateObese(t *testing.T) {
	// 220 lb at 70 in is BMI ~31.6.
	snap := healthySnapshot()
	snap.WeightLb = 220

	advisories := Generate(snap)
	assert.Len(t, advisories, 1)
	assert.Contains(t, advisories[0], "obese range")
}

func TestGenerateOverweightAndObeseAreDisjoint(t *testing.T) {
	// Sweep weights across the whole BMI spectrum; no snapshot may ever
	// trigger both the overweight and the obese advisory.
	for weight := 80.0; weight <= 300.0; weight += 0.5 {
		snap := healthySnapshot()
		snap.WeightLb = weight

		var overweight, obese int
		for _, a := range Generate(snap) {
			if strings.Contains(a, "overweight range") {
				overweight++
			}
			if strings.Contains(a, "obese range") {
				obese++
			}
		}
		assert.LessOrEqual(t, overweight+obese, 1, "weight %.1f triggered both BMI advisories", weight)
	}
}

func TestGenerateRulesAccumulate(t *testing.T) {
	// Low HR, low steps and underweight all at once: three advisories.
	snap := &model.MetricSnapshot{
		WeightLb:  100,
		HeightIn:  70,
		Steps:     2000,
		HeartRate: 55,
	}

	advisories := Generate(snap)
	assert.Len(t, advisories, 3)
	assert.Contains(t, advisories[0], "lower than the recommended range")
	assert.Contains(t, advisories[1], "step count")
	assert.Contains(t, advisories[2], "underweight range")
}

func TestGenerateHighHeartRateWithObesity(t *testing.T) {
	snap := healthySnapshot()
	snap.HeartRate = 110
	snap.WeightLb = 230

	advisories := Generate(snap)
	assert.Len(t, advisories, 2)
	assert.Contains(t, advisories[0], "higher than the recommended range")
	assert.Contains(t, advisories[1], "obese range")
}
