package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"patient-registration/internal/converter"
	"patient-registration/internal/delivery/dto"
	"patient-registration/internal/domain/entity"
	"patient-registration/internal/domain/repository"
	"patient-registration/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrDeleteNotConfirmed = errors.New("patient deletion was not confirmed")
)

const patientEntityName = "patient"

// PatientUsecase owns the patient list. The list lives in memory and is
// written back through PatientRepository after every change.
type PatientUsecase interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error)
	Update(ctx context.Context, id string, req *dto.PatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id string, confirmed bool) (*dto.DeletePatientResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PatientResponse, error)
	GetAll(ctx context.Context) ([]dto.PatientResponse, error)
	Query(ctx context.Context, query entity.PatientQuery) (*dto.PatientListResponse, error)
	GetStatistics(ctx context.Context) (*dto.PatientStatisticsResponse, error)
}

type patientUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	idCounter    repository.IDCounterRepository
	auditService service.AuditService
	idPrefix     string

	mu       sync.RWMutex
	patients []entity.Patient
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	idCounter repository.IDCounterRepository,
	auditService service.AuditService,
	idPrefix string,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		patientRepo:  patientRepo,
		idCounter:    idCounter,
		auditService: auditService,
		idPrefix:     idPrefix,
		patients:     []entity.Patient{},
	}
}

// ConfirmDeletePrompt is the question asked before a patient is deleted.
func ConfirmDeletePrompt(id string) string {
	return fmt.Sprintf("Are you sure you want to delete Patient ID %s?", id)
}

// DeletedMessage acknowledges a completed deletion.
func DeletedMessage(id string) string {
	return fmt.Sprintf("Patient ID %s has been successfully deleted.", id)
}

// Load replaces the in-memory list with the persisted one.
func (u *patientUsecase) Load(ctx context.Context) error {
	patients, err := u.patientRepo.Load(ctx)
	if err != nil {
		u.log.Errorf("Failed to load patients: %+v", err)
		return err
	}

	u.mu.Lock()
	u.patients = patients
	u.mu.Unlock()

	u.log.Infof("Loaded %d patient records", len(patients))
	return nil
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id, err := u.generateID(ctx)
	if err != nil {
		u.log.Warnf("Failed to generate patient id: %+v", err)
		return nil, err
	}

	patient := entity.Patient{ID: id}
	converter.ApplyPatientRequest(&patient, req)

	next := make([]entity.Patient, len(u.patients), len(u.patients)+1)
	copy(next, u.patients)
	next = append(next, patient)

	if err := u.persist(ctx, next); err != nil {
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, entity.AuditActionPatientCreate, patientEntityName, id, patient); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.WithField("patient_id", id).Info("Patient registered")
	return converter.PatientToResponse(&patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, id string, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	index := u.indexOf(id)
	if index < 0 {
		return nil, ErrPatientNotFound
	}

	oldValue := u.patients[index]
	updated := oldValue
	converter.ApplyPatientRequest(&updated, req)

	next := make([]entity.Patient, len(u.patients))
	copy(next, u.patients)
	next[index] = updated

	if err := u.persist(ctx, next); err != nil {
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, entity.AuditActionPatientUpdate, patientEntityName, id, oldValue, updated); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.WithField("patient_id", id).Info("Patient updated")
	return converter.PatientToResponse(&updated), nil
}

func (u *patientUsecase) Delete(ctx context.Context, id string, confirmed bool) (*dto.DeletePatientResponse, error) {
	if !confirmed {
		return nil, ErrDeleteNotConfirmed
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	next := make([]entity.Patient, 0, len(u.patients))
	var removed []entity.Patient
	for _, p := range u.patients {
		if p.ID == id {
			removed = append(removed, p)
			continue
		}
		next = append(next, p)
	}

	if len(removed) == 0 {
		return nil, ErrPatientNotFound
	}

	if err := u.persist(ctx, next); err != nil {
		return nil, err
	}

	if err := u.auditService.LogDelete(ctx, entity.AuditActionPatientDelete, patientEntityName, id, removed[0]); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.WithField("patient_id", id).Info("Patient deleted")
	return &dto.DeletePatientResponse{ID: id, Message: DeletedMessage(id)}, nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id string) (*dto.PatientResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	index := u.indexOf(id)
	if index < 0 {
		return nil, ErrPatientNotFound
	}
	patient := u.patients[index]
	return converter.PatientToResponse(&patient), nil
}

func (u *patientUsecase) GetAll(ctx context.Context) ([]dto.PatientResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return converter.PatientsToResponses(u.patients), nil
}

// Query filters and sorts the list for display. Statistics always cover the
// full list, not just the rows that survive the filters.
func (u *patientUsecase) Query(ctx context.Context, query entity.PatientQuery) (*dto.PatientListResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	sortBy := query.Sort
	if sortBy.Key == "" {
		sortBy = entity.DefaultPatientSort
		query.Sort = sortBy
	}

	rows := service.ApplyPatientQuery(u.patients, query)
	stats := service.ComputePatientStatistics(u.patients)

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(rows),
		Total:    len(rows),
		Sort: dto.PatientSortResponse{
			Key:       string(sortBy.Key),
			Direction: string(sortBy.Direction),
		},
		Statistics: converter.StatisticsToResponse(stats),
	}, nil
}

func (u *patientUsecase) GetStatistics(ctx context.Context) (*dto.PatientStatisticsResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	stats := converter.StatisticsToResponse(service.ComputePatientStatistics(u.patients))
	return &stats, nil
}

// generateID must be called with u.mu held.
func (u *patientUsecase) generateID(ctx context.Context) (string, error) {
	n, err := u.idCounter.Next(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", u.idPrefix, n), nil
}

// persist saves next and, only if that succeeds, makes it the current list.
// Must be called with u.mu held.
func (u *patientUsecase) persist(ctx context.Context, next []entity.Patient) error {
	if err := u.patientRepo.Save(ctx, next); err != nil {
		u.log.Errorf("Failed to persist patients: %+v", err)
		return err
	}
	u.patients = next
	return nil
}

func (u *patientUsecase) indexOf(id string) int {
	for i, p := range u.patients {
		if p.ID == id {
			return i
		}
	}
	return -1
}
