package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"patient-registration/internal/converter"
	"patient-registration/internal/delivery/dto"
	"patient-registration/internal/domain/entity"
	"patient-registration/internal/service"
	"patient-registration/internal/usecase"
	"patient-registration/pkg/bmi"
	"patient-registration/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// Submit button labels
const (
	SubmitLabelRegister = "Register Patient"
	SubmitLabelUpdate   = "Update Record"
)

const (
	bannerCreated = "created"
	bannerUpdated = "updated"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplates = template.Must(template.New("pages").ParseFS(templateFiles, "templates/*.html"))

var columnLabels = map[entity.PatientField]string{
	entity.PatientFieldID:        "ID",
	entity.PatientFieldFirstName: "First Name",
	entity.PatientFieldLastName:  "Last Name",
	entity.PatientFieldAge:       "Age",
	entity.PatientFieldDOB:       "DOB",
	entity.PatientFieldGender:    "Gender",
	entity.PatientFieldHeight:    "Height",
	entity.PatientFieldWeight:    "Weight",
	entity.PatientFieldContact:   "Contact",
	entity.PatientFieldEmail:     "Email",
	entity.PatientFieldBMI:       "BMI",
}

var legendRanges = map[bmi.Category]string{
	bmi.CategoryUnderweight: "Below 18.5",
	bmi.CategoryNormal:      "18.5 - 24.9",
	bmi.CategoryOverweight:  "25.0 - 29.9",
	bmi.CategoryObese:       "30.0 and above",
}

// PageHandler serves the server-rendered registration page.
type PageHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
	bannerDelay    time.Duration
}

func NewPageHandler(
	patientUsecase usecase.PatientUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
	bannerDelay time.Duration,
) *PageHandler {
	return &PageHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
		log:            log,
		bannerDelay:    bannerDelay,
	}
}

type formView struct {
	FirstName   string
	LastName    string
	Age         string
	DateOfBirth string
	Gender      string
	Height      string
	Weight      string
	Contact     string
	Email       string
}

type columnView struct {
	Key       string
	Label     string
	SortURL   string
	Indicator string
	Filter    string
}

type rowView struct {
	Patient       dto.PatientResponse
	CategoryClass string
}

type legendView struct {
	Category  string
	Range     string
	Highlight bool
}

type indexPage struct {
	Form          formView
	Errors        map[string]string
	EditingID     string
	SubmitLabel   string
	Banner        string
	BannerDelayMS int64
	Notice        string
	Columns       []columnView
	Rows          []rowView
	Total         int
	Stats         dto.PatientStatisticsResponse
	Legend        []legendView
	Genders       []string
	Query         string
}

type deletePage struct {
	ID     string
	Prompt string
}

// Index renders the form, table, statistics and legend.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	page := &indexPage{
		Errors:      map[string]string{},
		SubmitLabel: SubmitLabelRegister,
	}

	switch values.Get("success") {
	case bannerCreated:
		page.Banner = "Patient registered successfully!"
	case bannerUpdated:
		page.Banner = "Patient record updated successfully!"
	}
	if id := values.Get("deleted"); id != "" {
		page.Notice = usecase.DeletedMessage(id)
	}

	if id := values.Get("edit"); id != "" {
		patient, err := h.patientUsecase.GetByID(r.Context(), id)
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			page.Notice = "Patient ID " + id + " was not found."
		case err != nil:
			h.renderError(w, "Failed to load patient", err)
			return
		default:
			page.Form = formFromRequest(converter.ResponseToRequest(patient))
			page.EditingID = patient.ID
			page.SubmitLabel = SubmitLabelUpdate
		}
	}

	h.render(w, r, http.StatusOK, page)
}

// Submit registers a new patient, or updates one when editing_id is set.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	form := formFromValues(r.PostForm)
	editingID := strings.TrimSpace(r.PostForm.Get("editing_id"))

	req, fieldErrors := requestFromForm(form)
	if err := h.validator.Validate(req); err != nil {
		for field, msg := range h.validator.FormatValidationErrors(err) {
			if _, seen := fieldErrors[field]; !seen {
				fieldErrors[field] = msg
			}
		}
	}

	if len(fieldErrors) > 0 {
		page := &indexPage{
			Form:        form,
			Errors:      fieldErrors,
			EditingID:   editingID,
			SubmitLabel: SubmitLabelRegister,
		}
		if editingID != "" {
			page.SubmitLabel = SubmitLabelUpdate
		}
		h.render(w, r, http.StatusUnprocessableEntity, page)
		return
	}

	banner := bannerCreated
	var err error
	if editingID != "" {
		banner = bannerUpdated
		_, err = h.patientUsecase.Update(r.Context(), editingID, req)
	} else {
		_, err = h.patientUsecase.Create(r.Context(), req)
	}
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			http.Redirect(w, r, "/?edit="+url.QueryEscape(editingID), http.StatusSeeOther)
			return
		}
		h.renderError(w, "Failed to save patient", err)
		return
	}

	http.Redirect(w, r, "/?success="+banner, http.StatusSeeOther)
}

// ConfirmDelete asks before a patient is removed.
func (h *PageHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := h.patientUsecase.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderError(w, "Failed to load patient", err)
		return
	}

	h.execute(w, http.StatusOK, "delete.html", deletePage{ID: id, Prompt: usecase.ConfirmDeletePrompt(id)})
}

// Delete removes a patient after the confirmation form was submitted.
func (h *PageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := h.patientUsecase.Delete(r.Context(), id, true); err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderError(w, "Failed to delete patient", err)
		return
	}

	http.Redirect(w, r, "/?deleted="+url.QueryEscape(id), http.StatusSeeOther)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page *indexPage) {
	values := r.URL.Query()
	query, err := parsePatientQuery(values)
	if err != nil {
		page.Notice = err.Error()
		query, _ = parsePatientQuery(stripSort(values))
	}

	list, err := h.patientUsecase.Query(r.Context(), query)
	if err != nil {
		h.renderError(w, "Failed to load patients", err)
		return
	}

	highlighted := make(map[bmi.Category]bool)
	for _, p := range list.Patients {
		row := rowView{Patient: p, CategoryClass: p.BMICategory}
		if p.BMICategory != "" {
			highlighted[bmi.Category(p.BMICategory)] = true
		}
		page.Rows = append(page.Rows, row)
	}

	page.Total = list.Total
	page.Stats = list.Statistics
	page.Columns = buildColumns(query)
	page.Legend = buildLegend(highlighted)
	page.Genders = entity.Genders
	page.BannerDelayMS = h.bannerDelay.Milliseconds()
	page.Query = listQuery(query).Encode()

	h.execute(w, status, "index.html", page)
}

func (h *PageHandler) execute(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		h.log.Errorf("Failed to render %s: %+v", name, err)
	}
}

func (h *PageHandler) renderError(w http.ResponseWriter, message string, err error) {
	h.log.Errorf("%s: %+v", message, err)
	http.Error(w, message, http.StatusInternalServerError)
}

func buildColumns(query entity.PatientQuery) []columnView {
	columns := make([]columnView, 0, len(entity.PatientFields))
	for _, field := range entity.PatientFields {
		next := service.NextSort(query.Sort, field)

		values := listQuery(entity.PatientQuery{Filters: query.Filters, Sort: next})
		col := columnView{
			Key:     string(field),
			Label:   columnLabels[field],
			SortURL: "/?" + values.Encode(),
			Filter:  query.Filters[field],
		}
		if query.Sort.Key == field {
			col.Indicator = "▲"
			if query.Sort.Direction == entity.SortDescending {
				col.Indicator = "▼"
			}
		}
		columns = append(columns, col)
	}
	return columns
}

func buildLegend(highlighted map[bmi.Category]bool) []legendView {
	legend := make([]legendView, 0, len(bmi.Categories))
	for _, c := range bmi.Categories {
		legend = append(legend, legendView{
			Category:  string(c),
			Range:     legendRanges[c],
			Highlight: highlighted[c],
		})
	}
	return legend
}

// listQuery encodes the sort and filters so links keep the current view.
func listQuery(query entity.PatientQuery) url.Values {
	values := url.Values{}
	values.Set("sort", string(query.Sort.Key))
	values.Set("dir", string(query.Sort.Direction))
	for field, text := range query.Filters {
		values.Set(filterParamPrefix+string(field), text)
	}
	return values
}

func stripSort(values url.Values) url.Values {
	out := url.Values{}
	for k, v := range values {
		if k == "sort" || k == "dir" {
			continue
		}
		out[k] = v
	}
	return out
}

func formFromValues(values url.Values) formView {
	get := func(name string) string { return strings.TrimSpace(values.Get(name)) }
	return formView{
		FirstName:   get("firstname"),
		LastName:    get("lastname"),
		Age:         get("age"),
		DateOfBirth: get("date_of_birth"),
		Gender:      get("gender"),
		Height:      get("height"),
		Weight:      get("weight"),
		Contact:     get("contact"),
		Email:       get("email"),
	}
}

func formFromRequest(req *dto.PatientRequest) formView {
	return formView{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Age:         cast.ToString(req.Age),
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Height:      cast.ToString(req.Height),
		Weight:      cast.ToString(req.Weight),
		Contact:     req.Contact,
		Email:       req.Email,
	}
}

// requestFromForm converts the raw form. Numbers that do not parse are
// reported as field errors. Blank height and weight are left to the required
// rules; a blank age is caught here since zero is a valid age.
func requestFromForm(form formView) (*dto.PatientRequest, map[string]string) {
	fieldErrors := make(map[string]string)

	req := &dto.PatientRequest{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		DateOfBirth: form.DateOfBirth,
		Gender:      form.Gender,
		Contact:     form.Contact,
		Email:       form.Email,
	}

	if form.Age == "" {
		fieldErrors["age"] = "age is required"
	} else {
		age, err := strconv.Atoi(form.Age)
		if err != nil {
			fieldErrors["age"] = "age must be a whole number"
		}
		req.Age = age
	}
	if form.Height != "" {
		height, err := cast.ToFloat64E(form.Height)
		if err != nil {
			fieldErrors["height"] = "height must be a number"
		}
		req.Height = height
	}
	if form.Weight != "" {
		weight, err := cast.ToFloat64E(form.Weight)
		if err != nil {
			fieldErrors["weight"] = "weight must be a number"
		}
		req.Weight = weight
	}

	return req, fieldErrors
}
