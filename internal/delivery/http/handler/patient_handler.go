package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"patient-registration/internal/delivery/dto"
	"patient-registration/internal/domain/entity"
	"patient-registration/internal/service"
	"patient-registration/internal/usecase"
	"patient-registration/pkg/response"
	"patient-registration/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/spf13/cast"
)

// filterParamPrefix prefixes per-column filter query parameters, e.g. filter-lastname=lee.
const filterParamPrefix = "filter-"

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to register patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", patient)
}

func (h *PatientHandler) GetPatients(w http.ResponseWriter, r *http.Request) {
	query, err := parsePatientQuery(r.URL.Query())
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	list, err := h.patientUsecase.Query(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", list)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	patient, err := h.patientUsecase.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

// DeletePatient needs ?confirm=true. Without it the prompt is returned with 409.
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	confirmed := cast.ToBool(r.URL.Query().Get("confirm"))

	result, err := h.patientUsecase.Delete(r.Context(), id, confirmed)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDeleteNotConfirmed):
			response.Conflict(w, usecase.ConfirmDeletePrompt(id))
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to delete patient")
		}
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *PatientHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.patientUsecase.GetStatistics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get statistics")
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

// ValidateField checks one form field as the user types. The body carries the
// whole form; only the violation of ?field= is reported.
func (h *PatientHandler) ValidateField(w http.ResponseWriter, r *http.Request) {
	field := strings.TrimSpace(r.URL.Query().Get("field"))
	if field == "" {
		response.BadRequest(w, "Query parameter field is required")
		return
	}

	var req dto.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	message, ok := h.validator.ValidateField(&req, field)
	response.Success(w, http.StatusOK, "Field validated", dto.FieldValidationResponse{
		Field:   field,
		Valid:   ok,
		Message: message,
	})
}

// parsePatientQuery reads sort, dir and filter-<column> parameters.
func parsePatientQuery(values url.Values) (entity.PatientQuery, error) {
	sortBy, err := service.ParsePatientSort(values.Get("sort"), values.Get("dir"))
	if err != nil {
		return entity.PatientQuery{}, err
	}

	query := entity.PatientQuery{
		Filters: make(map[entity.PatientField]string),
		Sort:    sortBy,
	}
	for name, vals := range values {
		if !strings.HasPrefix(name, filterParamPrefix) || len(vals) == 0 {
			continue
		}
		field, ok := entity.ParsePatientField(strings.TrimPrefix(name, filterParamPrefix))
		if !ok {
			continue
		}
		if text := strings.TrimSpace(vals[0]); text != "" {
			query.Filters[field] = text
		}
	}

	return query, nil
}
