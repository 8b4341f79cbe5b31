package recommendation

import (
	"fmt"

	"github.com/vitalsync/healthmon-api/internal/model"
)

// Thresholds are fixed, not user-configurable at runtime.
const (
	MinHeartRate  = 60
	MaxHeartRate  = 100
	MinDailySteps = 10000

	bmiUnderweight = 18.5
	bmiOverweight  = 25.0
	bmiObeseLower  = 29.9
	bmiObese       = 30.0
)

const (
	lowHeartRateAdvisory = "Your heart rate is lower than the recommended range. " +
		"Consider increasing your physical activity to improve your cardiovascular health."
	highHeartRateAdvisory = "Your heart rate is higher than the recommended range. " +
		"Try taking it easy to improve your cardiovascular health. " +
		"Could be due to heavy exercise, stress, low blood sugar or low blood pressure."
	underweightAdvisory = "Your Body Mass Index (BMI) falls within the underweight range. " +
		"Consider diet and exercise changes."
	overweightAdvisory = "Your Body Mass Index (BMI) falls within the overweight range. " +
		"Consider making diet and exercise changes."
	obeseAdvisory = "Your Body Mass Index (BMI) falls within the obese range. " +
		"Consider making diet and exercise changes."
)

// Generate maps a metric snapshot to an ordered list of advisories. It is
// pure: every applicable rule appends, none short-circuits, and values in
// the normal range produce nothing. An empty result is the healthy signal.
func Generate(snapshot *model.MetricSnapshot) []string {
	var advisories []string

	if snapshot.HeartRate < MinHeartRate {
		advisories = append(advisories, lowHeartRateAdvisory)
	}
	if snapshot.HeartRate > MaxHeartRate {
		advisories = append(advisories, highHeartRateAdvisory)
	}

	if snapshot.Steps < MinDailySteps {
		advisories = append(advisories, fmt.Sprintf(
			"You're not reaching the recommended daily step count (%d steps). "+
				"Try to incorporate more walking or other physical activities into your daily routine.",
			MinDailySteps))
	}

	bmi := snapshot.BMI()
	if bmi < bmiUnderweight {
		advisories = append(advisories, underweightAdvisory)
	}
	if bmi >= bmiOverweight && bmi <= bmiObeseLower {
		advisories = append(advisories, overweightAdvisory)
	}
	if bmi >= bmiObese {
		advisories = append(advisories, obeseAdvisory)
	}

	return advisories
}
