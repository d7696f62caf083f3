package entity

// BMICategoryCounts counts patients per BMI category.
type BMICategoryCounts struct {
	Underweight int `json:"underweight"`
	Normal      int `json:"normal"`
	Overweight  int `json:"overweight"`
	Obese       int `json:"obese"`
}

// PatientStatistics is derived from the full patient list, never a filtered view.
type PatientStatistics struct {
	// AverageBMIByGender maps every gender value to an average with one
	// fraction digit, or "N/A" when the group has no numeric BMI.
	AverageBMIByGender map[string]string
	BMICategoryCounts  BMICategoryCounts
	TotalPatients      int
	FemalesAged50Plus  int
}
