package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"fbar-server/adminview"
	"fbar-server/export"
	"fbar-server/models"
	"fbar-server/store"
)

// AdminController serves the review console: listing and streaming
// submissions, status changes, deletion, and spreadsheet export.
type AdminController struct {
	repo store.SubmissionRepository
	log  zerolog.Logger
}

func NewAdminController(repo store.SubmissionRepository, log zerolog.Logger) *AdminController {
	return &AdminController{repo: repo, log: log}
}

// ListSubmissions handles GET /api/admin/submissions, newest first. An
// optional ?query= narrows the list by company name, institution name, or
// account number.
func (a *AdminController) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := a.repo.ListSubmissions(r.Context())
	if err != nil {
		a.log.Error().Err(err).Msg("could not list submissions")
		writeError(w, http.StatusBadGateway, retryMsg)
		return
	}
	writeJSON(w, http.StatusOK, adminview.Filter(subs, r.URL.Query().Get("query")))
}

// StreamSubmissions handles GET /api/admin/submissions/stream. Each event
// carries the complete current submission list, so the console replaces its
// table wholesale instead of patching rows.
func (a *AdminController) StreamSubmissions(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming is not supported.")
		return
	}

	snapshots, err := a.repo.WatchSubmissions(r.Context())
	if err != nil {
		a.log.Error().Err(err).Msg("could not open submission stream")
		writeError(w, http.StatusBadGateway, retryMsg)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case subs, open := <-snapshots:
			if !open {
				return
			}
			if subs == nil {
				subs = []models.Submission{}
			}
			payload, err := json.Marshal(subs)
			if err != nil {
				a.log.Error().Err(err).Msg("could not encode submission snapshot")
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/admin/submissions/{id}/status.
func (a *AdminController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if !models.ValidStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "Unknown submission status.")
		return
	}

	err := a.repo.UpdateSubmissionStatus(r.Context(), id, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Submission not found.")
		return
	}
	if err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("could not update submission status")
		writeError(w, http.StatusBadGateway, retryMsg)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSubmission handles DELETE /api/admin/submissions/{id}.
func (a *AdminController) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := a.repo.DeleteSubmission(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Submission not found.")
		return
	}
	if err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("could not delete submission")
		writeError(w, http.StatusBadGateway, retryMsg)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type exportRequest struct {
	IDs []string `json:"ids"`
}

// ExportSubmissions handles POST /api/admin/export and streams back an xlsx
// workbook with one row per bank account of the selected submissions.
func (a *AdminController) ExportSubmissions(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	selection := adminview.NewSelection()
	for _, id := range req.IDs {
		if !selection.Has(id) {
			selection.Toggle(id)
		}
	}
	if len(selection) == 0 {
		writeError(w, http.StatusBadRequest, "Please select at least one submission to export.")
		return
	}

	subs, err := a.repo.FindSubmissionsByIDs(r.Context(), selection.IDs())
	if err != nil {
		a.log.Error().Err(err).Msg("could not load submissions for export")
		writeError(w, http.StatusBadGateway, retryMsg)
		return
	}

	wb, err := export.Workbook(subs)
	if errors.Is(err, export.ErrNothingSelected) {
		writeError(w, http.StatusBadRequest, "Please select at least one submission to export.")
		return
	}
	if err != nil {
		a.log.Error().Err(err).Msg("could not build export workbook")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	if err := wb.Write(w); err != nil {
		a.log.Error().Err(err).Msg("could not stream export workbook")
	}
}
