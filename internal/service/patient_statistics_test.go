package service

import (
	"testing"

	"patient-registration/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestComputePatientStatistics_Empty(t *testing.T) {
	stats := ComputePatientStatistics(nil)

	assert.Equal(t, 0, stats.TotalPatients)
	assert.Equal(t, 0, stats.FemalesAged50Plus)
	assert.Equal(t, entity.BMICategoryCounts{}, stats.BMICategoryCounts)
	assert.Equal(t, map[string]string{"male": "N/A", "female": "N/A", "other": "N/A"}, stats.AverageBMIByGender)
}

func TestComputePatientStatistics(t *testing.T) {
	stats := ComputePatientStatistics(samplePatients())

	assert.Equal(t, 4, stats.TotalPatients)
	assert.Equal(t, 1, stats.FemalesAged50Plus)
	assert.Equal(t, entity.BMICategoryCounts{Underweight: 0, Normal: 1, Overweight: 1, Obese: 1}, stats.BMICategoryCounts)

	// (22.5 + 27.3) / 2 = 24.9
	assert.Equal(t, "24.9", stats.AverageBMIByGender["female"])
	// the only male has no numeric BMI
	assert.Equal(t, "N/A", stats.AverageBMIByGender["male"])
	assert.Equal(t, "30.5", stats.AverageBMIByGender["other"])
}

func TestComputePatientStatistics_FemaleAgeBoundary(t *testing.T) {
	stats := ComputePatientStatistics([]entity.Patient{
		{Gender: "female", Age: 49, BMI: "20.0"},
		{Gender: "female", Age: 50, BMI: "20.0"},
		{Gender: "male", Age: 70, BMI: "20.0"},
	})
	assert.Equal(t, 1, stats.FemalesAged50Plus)
}

func TestComputePatientStatistics_CategoryThresholds(t *testing.T) {
	stats := ComputePatientStatistics([]entity.Patient{
		{Gender: "male", BMI: "18.4"},
		{Gender: "male", BMI: "18.5"},
		{Gender: "male", BMI: "24.9"},
		{Gender: "male", BMI: "25.0"},
		{Gender: "male", BMI: "29.9"},
		{Gender: "male", BMI: "30.0"},
		{Gender: "male", BMI: "N/A"},
	})

	assert.Equal(t, entity.BMICategoryCounts{Underweight: 1, Normal: 2, Overweight: 2, Obese: 1}, stats.BMICategoryCounts)
	assert.Equal(t, 7, stats.TotalPatients)
	// (18.4+18.5+24.9+25.0+29.9+30.0) / 6 = 24.45 -> 24.5
	assert.Equal(t, "24.5", stats.AverageBMIByGender["male"])
}
