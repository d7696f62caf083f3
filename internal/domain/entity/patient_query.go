package entity

// SortDirection orders the patient table.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// PatientSort is the active sort column and direction.
type PatientSort struct {
	Key       PatientField
	Direction SortDirection
}

// DefaultPatientSort sorts by id, ascending.
var DefaultPatientSort = PatientSort{Key: PatientFieldID, Direction: SortAscending}

// PatientQuery is a domain-level view request over the patient list.
// Filters hold per-column substring filters; blank values are inactive.
type PatientQuery struct {
	Filters map[PatientField]string
	Sort    PatientSort
}
