package service

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"patient-registration/internal/domain/entity"

	"github.com/spf13/cast"
)

var (
	ErrInvalidSortKey       = errors.New("invalid sort key")
	ErrInvalidSortDirection = errors.New("invalid sort direction, use asc or desc")
)

const dobLayout = "2006-01-02"

// ApplyPatientQuery returns the patients that match every active filter,
// sorted by the query's sort key. The input slice is left untouched.
func ApplyPatientQuery(patients []entity.Patient, query entity.PatientQuery) []entity.Patient {
	filtered := make([]entity.Patient, 0, len(patients))
	for _, p := range patients {
		if matchesFilters(p, query.Filters) {
			filtered = append(filtered, p)
		}
	}

	sortBy := query.Sort
	if sortBy.Key == "" {
		sortBy = entity.DefaultPatientSort
	}
	sortPatients(filtered, sortBy)

	return filtered
}

// NextSort is the sort state after a column header is clicked: the same column
// flips direction, another column starts ascending.
func NextSort(current entity.PatientSort, clicked entity.PatientField) entity.PatientSort {
	if current.Key == clicked {
		if current.Direction == entity.SortAscending {
			return entity.PatientSort{Key: clicked, Direction: entity.SortDescending}
		}
		return entity.PatientSort{Key: clicked, Direction: entity.SortAscending}
	}
	return entity.PatientSort{Key: clicked, Direction: entity.SortAscending}
}

// ParsePatientSort builds a sort from request values. Blank values fall back
// to the default sort.
func ParsePatientSort(key, direction string) (entity.PatientSort, error) {
	result := entity.DefaultPatientSort

	if strings.TrimSpace(key) != "" {
		field, ok := entity.ParsePatientField(key)
		if !ok {
			return entity.PatientSort{}, ErrInvalidSortKey
		}
		result.Key = field
	}

	switch entity.SortDirection(strings.ToLower(strings.TrimSpace(direction))) {
	case "", entity.SortAscending:
		result.Direction = entity.SortAscending
	case entity.SortDescending:
		result.Direction = entity.SortDescending
	default:
		return entity.PatientSort{}, ErrInvalidSortDirection
	}

	return result, nil
}

func matchesFilters(p entity.Patient, filters map[entity.PatientField]string) bool {
	for field, text := range filters {
		needle := strings.ToLower(strings.TrimSpace(text))
		if needle == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(p.FieldValue(field)), needle) {
			return false
		}
	}
	return true
}

func sortPatients(patients []entity.Patient, by entity.PatientSort) {
	less := comparator(by.Key)
	desc := by.Direction == entity.SortDescending

	sort.SliceStable(patients, func(i, j int) bool {
		if desc {
			return less(patients[j], patients[i])
		}
		return less(patients[i], patients[j])
	})
}

func comparator(key entity.PatientField) func(a, b entity.Patient) bool {
	switch {
	case key.IsNumeric():
		return func(a, b entity.Patient) bool {
			return numericValue(a.FieldValue(key)) < numericValue(b.FieldValue(key))
		}
	case key == entity.PatientFieldDOB:
		return func(a, b entity.Patient) bool {
			return dateValue(a.DOB).Before(dateValue(b.DOB))
		}
	default:
		return func(a, b entity.Patient) bool {
			return a.FieldValue(key) < b.FieldValue(key)
		}
	}
}

// numericValue treats anything that is not a number as 0.
func numericValue(s string) float64 {
	f, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}

func dateValue(s string) time.Time {
	t, err := time.Parse(dobLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
