package state

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"prison-admin/internal/view"
)

// Page identifies a console page.
type Page string

const (
	PageDashboard Page = "dashboard"
	PagePrisoners Page = "prisoners"
	PageCells     Page = "cells"
	PageStaff     Page = "staff"
	PageVisits    Page = "visits"
	PagePrograms  Page = "programs"
	PageIncidents Page = "incidents"
	PageVisitors  Page = "visitors"
	PageReports   Page = "reports"
)

// PageInfo is a navigation entry.
type PageInfo struct {
	Name  Page   `json:"name"`
	Label string `json:"label"`
}

// Pages lists the navigation entries in menu order.
var Pages = []PageInfo{
	{PageDashboard, "Panel główny"},
	{PagePrisoners, "Więźniowie"},
	{PageCells, "Cele"},
	{PageStaff, "Personel"},
	{PageVisits, "Wizyty"},
	{PagePrograms, "Programy"},
	{PageIncidents, "Incydenty"},
	{PageVisitors, "Odwiedzający"},
	{PageReports, "Raporty"},
}

// ParsePage validates a page name.
func ParsePage(s string) (Page, bool) {
	for _, p := range Pages {
		if string(p.Name) == s {
			return p.Name, true
		}
	}
	return "", false
}

// APIHealth holds the result of the last backend health check.
type APIHealth struct {
	Status    string    `json:"status"`
	LastCheck time.Time `json:"lastCheck"`
	Error     string    `json:"error,omitempty"`
}

// LogEntry holds a single activity log entry.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Label     string    `json:"label"`
	Message   string    `json:"message"`
}

// SnapshotData is a point-in-time copy of AppState for JSON serialization.
type SnapshotData struct {
	APIURL    string               `json:"apiUrl"`
	APIHealth APIHealth            `json:"apiHealth"`
	Pages     []PageInfo           `json:"pages"`
	Page      Page                 `json:"page"`
	Report    string               `json:"report"`
	Dashboard *view.Dashboard      `json:"dashboard,omitempty"`
	Lists     map[string]view.List `json:"lists"`
	Reports   *view.Report         `json:"reportView,omitempty"`
	Logs      []LogEntry           `json:"logs"`
}

// persisted is the part of the session kept across restarts.
type persisted struct {
	Page   Page   `json:"page"`
	Report string `json:"report"`
}

// AppState holds the shared session state rendered by the web UI.
type AppState struct {
	mu        sync.RWMutex
	apiURL    string
	apiHealth APIHealth
	page      Page
	report    string
	dashboard *view.Dashboard
	lists     map[string]view.List
	reportVw  *view.Report
	logs      []LogEntry
	maxLogs   int
	stateFile string        // Path to state file, empty disables persistence
	changeCh  chan struct{} // Signalled on every state mutation
}

// New creates a new AppState with a max log buffer size.
func New(maxLogs int, apiURL, stateFile string) *AppState {
	s := &AppState{
		apiURL:    apiURL,
		apiHealth: APIHealth{Status: "unknown"},
		page:      PageDashboard,
		lists:     map[string]view.List{},
		logs:      []LogEntry{},
		maxLogs:   maxLogs,
		stateFile: stateFile,
		changeCh:  make(chan struct{}, 1),
	}

	if stateFile != "" {
		_ = s.LoadFromFile(stateFile) // A missing or corrupt file leaves the defaults
	}

	return s
}

// notifyChange does a non-blocking send on changeCh to signal a state mutation.
// Must be called while NOT holding mu (the receiver in the web layer will re-read state).
func (s *AppState) notifyChange() {
	select {
	case s.changeCh <- struct{}{}:
	default:
	}
}

// ChangeCh returns a channel that receives a value whenever the state changes.
func (s *AppState) ChangeCh() <-chan struct{} {
	return s.changeCh
}

// SetAPIHealth records the outcome of a backend health check.
func (s *AppState) SetAPIHealth(status, errMsg string) {
	s.mu.Lock()
	s.apiHealth = APIHealth{
		Status:    status,
		LastCheck: time.Now().UTC(),
		Error:     errMsg,
	}
	s.mu.Unlock()
	s.notifyChange()
}

// Page returns the current page.
func (s *AppState) Page() Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// SetPage switches the current page and persists the choice.
func (s *AppState) SetPage(p Page) {
	s.mu.Lock()
	s.page = p
	s.mu.Unlock()
	s.save()
	s.notifyChange()
}

// Report returns the active report tab.
func (s *AppState) Report() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// SetReport stores the rendered report and its active tab.
func (s *AppState) SetReport(name string, r view.Report) {
	s.mu.Lock()
	s.report = name
	s.reportVw = &r
	s.mu.Unlock()
	s.save()
	s.notifyChange()
}

// SetDashboard stores the rendered dashboard.
func (s *AppState) SetDashboard(d view.Dashboard) {
	s.mu.Lock()
	s.dashboard = &d
	s.mu.Unlock()
	s.notifyChange()
}

// SetList stores the rendered list of an entity.
func (s *AppState) SetList(entity string, l view.List) {
	s.mu.Lock()
	s.lists[entity] = l
	s.mu.Unlock()
	s.notifyChange()
}

// List returns the last rendered list of an entity.
func (s *AppState) List(entity string) (view.List, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lists[entity]
	return l, ok
}

// AddLog appends a log entry, trimming old entries if needed.
func (s *AppState) AddLog(level, label, message string) {
	s.mu.Lock()
	entry := LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Label:     label,
		Message:   message,
	}
	s.logs = append(s.logs, entry)
	if len(s.logs) > s.maxLogs {
		s.logs = s.logs[len(s.logs)-s.maxLogs:]
	}
	s.mu.Unlock()
	s.notifyChange()
}

// Snapshot returns a copy of the current state for JSON serialization.
func (s *AppState) Snapshot() SnapshotData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := make([]LogEntry, len(s.logs))
	copy(logs, s.logs)
	return SnapshotData{
		APIURL:    s.apiURL,
		APIHealth: s.apiHealth,
		Pages:     Pages,
		Page:      s.page,
		Report:    s.report,
		Dashboard: s.dashboard,
		Lists:     maps.Clone(s.lists),
		Reports:   s.reportVw,
		Logs:      logs,
	}
}

// save persists state to disk (best-effort, ignores errors).
func (s *AppState) save() {
	if s.stateFile != "" {
		_ = s.SaveToFile(s.stateFile)
	}
}

// SaveToFile persists the navigation state to a JSON file. Rendered views
// and logs are transient and never written.
func (s *AppState) SaveToFile(path string) error {
	s.mu.RLock()
	snapshot := persisted{Page: s.page, Report: s.report}
	s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile restores the navigation state from a JSON file if it exists.
func (s *AppState) LoadFromFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var loaded persisted
	if err := json.Unmarshal(data, &loaded); err != nil {
		return err
	}
	if p, ok := ParsePage(string(loaded.Page)); ok {
		s.page = p
	}
	s.report = loaded.Report
	return nil
}
