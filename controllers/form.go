package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"fbar-server/forms"
	"fbar-server/models"
	"fbar-server/places"
)

// FormController serves the public filer-facing endpoints: saving and
// resuming drafts, submitting a completed form, and institution address
// lookup.
type FormController struct {
	drafts *forms.DraftManager
	subs   *forms.SubmissionManager
	places *places.Client
	log    zerolog.Logger
}

func NewFormController(drafts *forms.DraftManager, subs *forms.SubmissionManager, pc *places.Client, log zerolog.Logger) *FormController {
	return &FormController{drafts: drafts, subs: subs, places: pc, log: log}
}

// SaveDraft handles POST /api/drafts. The form is stored exactly as typed
// and a 4-digit resume code is returned.
func (f *FormController) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var form models.FormState
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	code, err := f.drafts.Create(r.Context(), form)
	if errors.Is(err, forms.ErrCodeSpaceExhausted) {
		writeError(w, http.StatusServiceUnavailable,
			"Unable to save your progress right now. Please try again later.")
		return
	}
	if err != nil {
		f.log.Error().Err(err).Msg("could not save draft")
		writeError(w, http.StatusBadGateway, retryMsg)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"resumeCode": code})
}

func validResumeCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ResumeDraft handles GET /api/drafts/{code} and returns the saved form
// state for the given resume code.
func (f *FormController) ResumeDraft(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !validResumeCode(code) {
		writeError(w, http.StatusBadRequest, "Resume codes are 4 digits.")
		return
	}

	draft, err := f.drafts.Resume(r.Context(), code)
	if errors.Is(err, forms.ErrDraftNotFound) {
		writeError(w, http.StatusNotFound, "Invalid code. Please check your code and try again.")
		return
	}
	if err != nil {
		f.log.Error().Err(err).Str("code", code).Msg("could not load draft")
		writeError(w, http.StatusBadGateway, retryMsg)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		ID string `json:"id"`
		models.FormState
	}{draft.ID, draft.Form()})
}

type submitRequest struct {
	models.FormState
	DraftID string `json:"draftId"`
}

// Submit handles POST /api/submissions: validates the form, normalizes the
// text fields, persists the submission, and retires the originating draft
// when one is named.
func (f *FormController) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	id, err := f.subs.Submit(r.Context(), req.FormState, req.DraftID)
	var verr *forms.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, validationMessage(verr.Field))
		return
	}
	if err != nil {
		f.log.Error().Err(err).Msg("could not persist submission")
		writeError(w, http.StatusBadGateway, retryMsg)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func validationMessage(field string) string {
	switch field {
	case "companyName":
		return "Please enter the company name."
	case "accounts":
		return "Please add at least one account."
	case "currency":
		return "Please choose a supported currency for each account."
	default:
		return "Please check the highlighted fields and try again."
	}
}

// LookupPlace handles GET /api/places?query=. When the address provider is
// not configured the caller is told to enter the address manually.
func (f *FormController) LookupPlace(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "A search query is required.")
		return
	}

	place, err := f.places.Lookup(r.Context(), query)
	if errors.Is(err, places.ErrNoMatch) {
		writeError(w, http.StatusNotFound, "No matching institution found.")
		return
	}
	if err != nil {
		// Lookup is best-effort; any failure degrades to manual entry.
		if !errors.Is(err, places.ErrUnavailable) {
			f.log.Warn().Err(err).Str("query", query).Msg("address lookup failed")
		}
		writeError(w, http.StatusServiceUnavailable,
			"Address lookup is unavailable. Please enter the address manually.")
		return
	}

	writeJSON(w, http.StatusOK, place)
}
