package service

import (
	"patient-registration/internal/domain/entity"
	"patient-registration/pkg/bmi"

	"github.com/shopspring/decimal"
)

const seniorFemaleAge = 50

// ComputePatientStatistics aggregates over the full patient list.
func ComputePatientStatistics(patients []entity.Patient) entity.PatientStatistics {
	type bmiTotal struct {
		sum   decimal.Decimal
		count int64
	}

	totals := make(map[string]*bmiTotal, len(entity.Genders))
	for _, g := range entity.Genders {
		totals[g] = &bmiTotal{}
	}

	stats := entity.PatientStatistics{
		AverageBMIByGender: make(map[string]string, len(entity.Genders)),
		TotalPatients:      len(patients),
	}

	for _, p := range patients {
		value, ok := bmi.Parse(p.BMI)
		if ok {
			t, known := totals[p.Gender]
			if !known {
				t = &bmiTotal{}
				totals[p.Gender] = t
			}
			t.sum = t.sum.Add(decimal.NewFromFloat(value))
			t.count++

			switch bmi.CategoryFor(value) {
			case bmi.CategoryUnderweight:
				stats.BMICategoryCounts.Underweight++
			case bmi.CategoryNormal:
				stats.BMICategoryCounts.Normal++
			case bmi.CategoryOverweight:
				stats.BMICategoryCounts.Overweight++
			case bmi.CategoryObese:
				stats.BMICategoryCounts.Obese++
			}
		}

		if p.Gender == entity.GenderFemale && p.Age >= seniorFemaleAge {
			stats.FemalesAged50Plus++
		}
	}

	for gender, t := range totals {
		if t.count == 0 {
			stats.AverageBMIByGender[gender] = bmi.NotApplicable
			continue
		}
		stats.AverageBMIByGender[gender] = t.sum.Div(decimal.NewFromInt(t.count)).StringFixed(1)
	}

	return stats
}
