package converter

import (
	"strings"

	"patient-registration/internal/delivery/dto"
	"patient-registration/internal/domain/entity"
	"patient-registration/pkg/bmi"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(p *entity.Patient) *dto.PatientResponse {
	if p == nil {
		return nil
	}

	resp := &dto.PatientResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Age:         p.Age,
		DateOfBirth: p.DOB,
		Gender:      p.Gender,
		Height:      p.Height,
		Weight:      p.Weight,
		Contact:     p.Contact,
		Email:       p.Email,
		BMI:         p.BMI,
	}
	if category, ok := bmi.CategoryOf(p.BMI); ok {
		resp.BMICategory = string(category)
	}
	return resp
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

// ApplyPatientRequest overwrites the form fields of p and recomputes its BMI.
// The id is left alone.
func ApplyPatientRequest(p *entity.Patient, req *dto.PatientRequest) {
	p.FirstName = strings.TrimSpace(req.FirstName)
	p.LastName = strings.TrimSpace(req.LastName)
	p.Age = req.Age
	p.DOB = strings.TrimSpace(req.DateOfBirth)
	p.Gender = req.Gender
	p.Height = req.Height
	p.Weight = req.Weight
	p.Contact = strings.TrimSpace(req.Contact)
	p.Email = strings.TrimSpace(req.Email)
	p.BMI = bmi.Calculate(req.Weight, req.Height)
}

// ResponseToRequest turns a stored patient back into form values, used to
// pre-fill the edit form.
func ResponseToRequest(p *dto.PatientResponse) *dto.PatientRequest {
	return &dto.PatientRequest{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Age:         p.Age,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Height:      p.Height,
		Weight:      p.Weight,
		Contact:     p.Contact,
		Email:       p.Email,
	}
}

// StatisticsToResponse converts PatientStatistics to its DTO
func StatisticsToResponse(s entity.PatientStatistics) dto.PatientStatisticsResponse {
	return dto.PatientStatisticsResponse{
		AverageBMIByGender: s.AverageBMIByGender,
		BMICategoryCounts: dto.BMICategoryCountsResponse{
			Underweight: s.BMICategoryCounts.Underweight,
			Normal:      s.BMICategoryCounts.Normal,
			Overweight:  s.BMICategoryCounts.Overweight,
			Obese:       s.BMICategoryCounts.Obese,
		},
		TotalPatients:     s.TotalPatients,
		FemalesAged50Plus: s.FemalesAged50Plus,
	}
}
