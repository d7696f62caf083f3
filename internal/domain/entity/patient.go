package entity

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Patient is a registered patient record. The JSON keys match the layout the
// record list is stored under, including the legacy "DOB" key.
type Patient struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstname"`
	LastName  string  `json:"lastname"`
	Age       int     `json:"age"`
	DOB       string  `json:"DOB"` // Format: YYYY-MM-DD
	Gender    string  `json:"gender"`
	Height    float64 `json:"height"` // centimeters
	Weight    float64 `json:"weight"` // kilograms
	Contact   string  `json:"contact"`
	Email     string  `json:"email"`
	BMI       string  `json:"bmi"`
}

// Gender values
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Genders lists the accepted gender values in display order.
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// PatientField names a column of the patient table.
type PatientField string

const (
	PatientFieldID        PatientField = "id"
	PatientFieldFirstName PatientField = "firstname"
	PatientFieldLastName  PatientField = "lastname"
	PatientFieldAge       PatientField = "age"
	PatientFieldDOB       PatientField = "dob"
	PatientFieldGender    PatientField = "gender"
	PatientFieldHeight    PatientField = "height"
	PatientFieldWeight    PatientField = "weight"
	PatientFieldContact   PatientField = "contact"
	PatientFieldEmail     PatientField = "email"
	PatientFieldBMI       PatientField = "bmi"
)

// PatientFields lists the table columns in display order.
var PatientFields = []PatientField{
	PatientFieldID,
	PatientFieldFirstName,
	PatientFieldLastName,
	PatientFieldAge,
	PatientFieldDOB,
	PatientFieldGender,
	PatientFieldHeight,
	PatientFieldWeight,
	PatientFieldContact,
	PatientFieldEmail,
	PatientFieldBMI,
}

// ParsePatientField resolves a column name case-insensitively.
func ParsePatientField(s string) (PatientField, bool) {
	name := PatientField(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range PatientFields {
		if f == name {
			return f, true
		}
	}
	return "", false
}

// IsNumeric reports whether the column holds numbers.
func (f PatientField) IsNumeric() bool {
	switch f {
	case PatientFieldAge, PatientFieldHeight, PatientFieldWeight, PatientFieldBMI:
		return true
	}
	return false
}

// FieldValue returns the display string of a column.
func (p Patient) FieldValue(field PatientField) string {
	switch field {
	case PatientFieldID:
		return p.ID
	case PatientFieldFirstName:
		return p.FirstName
	case PatientFieldLastName:
		return p.LastName
	case PatientFieldAge:
		return strconv.Itoa(p.Age)
	case PatientFieldDOB:
		return p.DOB
	case PatientFieldGender:
		return p.Gender
	case PatientFieldHeight:
		return formatNumber(p.Height)
	case PatientFieldWeight:
		return formatNumber(p.Weight)
	case PatientFieldContact:
		return p.Contact
	case PatientFieldEmail:
		return p.Email
	case PatientFieldBMI:
		return p.BMI
	}
	return ""
}

// UnmarshalJSON accepts numbers encoded as strings, which is how records
// entered in the browser form were stored.
func (p *Patient) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Patient{
		ID:        cast.ToString(raw["id"]),
		FirstName: cast.ToString(raw["firstname"]),
		LastName:  cast.ToString(raw["lastname"]),
		Age:       toInt(raw["age"]),
		DOB:       cast.ToString(raw["DOB"]),
		Gender:    cast.ToString(raw["gender"]),
		Height:    toFloat(raw["height"]),
		Weight:    toFloat(raw["weight"]),
		Contact:   cast.ToString(raw["contact"]),
		Email:     cast.ToString(raw["email"]),
		BMI:       cast.ToString(raw["bmi"]),
	}
	return nil
}

func toInt(v interface{}) int {
	return int(toFloat(v))
}

func toFloat(v interface{}) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
