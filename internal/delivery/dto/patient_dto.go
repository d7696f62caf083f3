package dto

// Request DTOs

// PatientRequest carries the registration form fields for both create and update.
type PatientRequest struct {
	FirstName   string  `json:"firstname" validate:"required,max=50,personname"`
	LastName    string  `json:"lastname" validate:"required,max=50,personname,lastname"`
	Age         int     `json:"age" validate:"gte=0,lte=150"`
	DateOfBirth string  `json:"date_of_birth" validate:"required,datetime=2006-01-02,notfuture"`
	Gender      string  `json:"gender" validate:"required,oneof=male female other"`
	Height      float64 `json:"height" validate:"required,gt=0,lte=300"`
	Weight      float64 `json:"weight" validate:"required,gt=0,lte=700"`
	Contact     string  `json:"contact" validate:"required,max=30"`
	Email       string  `json:"email" validate:"required,email,max=254"`
}

// Response DTOs

type PatientResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstname"`
	LastName    string  `json:"lastname"`
	Age         int     `json:"age"`
	DateOfBirth string  `json:"date_of_birth"`
	Gender      string  `json:"gender"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	Contact     string  `json:"contact"`
	Email       string  `json:"email"`
	BMI         string  `json:"bmi"`
	BMICategory string  `json:"bmi_category,omitempty"`
}

type PatientSortResponse struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

type PatientListResponse struct {
	Patients   []PatientResponse         `json:"patients"`
	Total      int                       `json:"total"`
	Sort       PatientSortResponse       `json:"sort"`
	Statistics PatientStatisticsResponse `json:"statistics"`
}

type BMICategoryCountsResponse struct {
	Underweight int `json:"underweight"`
	Normal      int `json:"normal"`
	Overweight  int `json:"overweight"`
	Obese       int `json:"obese"`
}

type PatientStatisticsResponse struct {
	AverageBMIByGender map[string]string         `json:"average_bmi_by_gender"`
	BMICategoryCounts  BMICategoryCountsResponse `json:"bmi_category_counts"`
	TotalPatients      int                       `json:"total_patients"`
	FemalesAged50Plus  int                       `json:"females_aged_50_plus"`
}

type DeletePatientResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type FieldValidationResponse struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
