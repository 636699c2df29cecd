package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"prison-admin/internal/apiclient"
	"prison-admin/internal/console"
	"prison-admin/internal/entity"
	"prison-admin/internal/form"
	"prison-admin/internal/report"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFailure maps a workflow error to a status. Validation errors carry
// the rejected fields; backend errors keep the backend's message.
func writeFailure(w http.ResponseWriter, err error) {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  verr.Error(),
			"fields": verr.ByField(),
		})
		return
	}
	var reqErr *apiclient.RequestError
	if errors.As(err, &reqErr) {
		writeError(w, http.StatusBadGateway, reqErr.Message)
		return
	}
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrUnknownEntity),
		errors.Is(err, console.ErrUnknownPage),
		errors.Is(err, console.ErrUnknownFilter),
		errors.Is(err, console.ErrRecordNotLoaded),
		errors.Is(err, report.ErrUnknownReport):
		return http.StatusNotFound
	case errors.Is(err, console.ErrNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, console.ErrNotConfirmed):
		return http.StatusBadRequest
	case errors.Is(err, console.ErrNoOpenForm):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleState returns the current session as JSON.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// handleNavigate switches page. Load failures are already shown as toasts,
// so the snapshot is returned either way.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page string `json:"page"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.console.Navigate(r.Context(), req.Page); err != nil && errors.Is(err, console.ErrUnknownPage) {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.console.Dashboard(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	l, err := s.console.List(r.Context(), chi.URLParam(r, "entity"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// handleSearch schedules a debounced search; the result is pushed over
// the websocket.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Term string `json:"term"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.console.Search(chi.URLParam(r, "entity"), req.Term); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	l, err := s.console.Filter(r.Context(), chi.URLParam(r, "entity"), req.Name, req.Value)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page int `json:"page"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	l, err := s.console.GoToPage(r.Context(), chi.URLParam(r, "entity"), req.Page)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleOpenForm(w http.ResponseWriter, r *http.Request) {
	var id *int64
	if raw := r.URL.Query().Get("id"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid id")
			return
		}
		id = &n
	}
	m, err := s.console.OpenForm(r.Context(), chi.URLParam(r, "entity"), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     *int64      `json:"id"`
		Values form.Values `json:"values"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Values == nil {
		req.Values = form.Values{}
	}
	if err := s.console.SubmitForm(r.Context(), chi.URLParam(r, "entity"), req.ID, req.Values); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := s.console.Delete(r.Context(), chi.URLParam(r, "entity"), id, confirmed); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handlePrisonerDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	m, err := s.console.PrisonerDetail(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleModalClose(w http.ResponseWriter, r *http.Request) {
	s.console.CloseModal()
	writeJSON(w, http.StatusOK, s.console.Modal())
}

func (s *Server) handleModalKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.console.ModalKey(req.Key)
	writeJSON(w, http.StatusOK, s.console.Modal())
}

func (s *Server) handleModalClick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.console.ModalClick(req.Target)
	writeJSON(w, http.StatusOK, s.console.Modal())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.console.Report(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDismissToast(w http.ResponseWriter, r *http.Request) {
	s.notifier.Dismiss(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
