package domain

// PrisonerStatus is the custody status of a prisoner.
type PrisonerStatus string

const (
	PrisonerIncarcerated PrisonerStatus = "incarcerated"
	PrisonerReleased     PrisonerStatus = "released"
	PrisonerTransferred  PrisonerStatus = "transferred"
)

// CellType classifies a cell.
type CellType string

const (
	CellStandard   CellType = "standard"
	CellSolitary   CellType = "solitary"
	CellMedical    CellType = "medical"
	CellProtective CellType = "protective"
)

// Cell capacity bounds enforced by the cell form.
const (
	MinCellCapacity = 1
	MaxCellCapacity = 4
)

// VisitType classifies a visit.
type VisitType string

const (
	VisitRegular  VisitType = "regular"
	VisitFamily   VisitType = "family"
	VisitLegal    VisitType = "legal"
	VisitConjugal VisitType = "conjugal"
)

// VisitStatus is the lifecycle status of a visit.
type VisitStatus string

const (
	VisitScheduled VisitStatus = "scheduled"
	VisitCompleted VisitStatus = "completed"
	VisitCancelled VisitStatus = "cancelled"
	VisitNoShow    VisitStatus = "no_show"
)

// IncidentType classifies an incident.
type IncidentType string

const (
	IncidentFight          IncidentType = "fight"
	IncidentContraband     IncidentType = "contraband"
	IncidentEscapeAttempt  IncidentType = "escape_attempt"
	IncidentAssaultStaff   IncidentType = "assault_staff"
	IncidentPropertyDamage IncidentType = "property_damage"
	IncidentDisobedience   IncidentType = "disobedience"
	IncidentOther          IncidentType = "other"
)

// IncidentTypes lists every incident type in display order.
var IncidentTypes = []IncidentType{
	IncidentFight, IncidentContraband, IncidentEscapeAttempt, IncidentAssaultStaff,
	IncidentPropertyDamage, IncidentDisobedience, IncidentOther,
}

// Severity grades an incident.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// EnrollmentStatus is the status of a prisoner in a program.
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentExpelled  EnrollmentStatus = "expelled"
)

// Grades accepted for a program enrollment.
var Grades = []string{"A", "B", "C", "D", "F"}

// BloodTypes accepted on the prisoner form.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Stats is the dashboard aggregate returned by /api/stats.
type Stats struct {
	TotalPrisoners      int          `json:"total_prisoners"`
	TotalCells          int          `json:"total_cells"`
	ActiveStaff         int          `json:"active_staff"`
	ScheduledVisits     int          `json:"scheduled_visits"`
	UnresolvedIncidents int          `json:"unresolved_incidents"`
	PrisonersByBlock    []BlockCount `json:"prisoners_by_block"`
}

// BlockCount is one bar of the prisoners-per-block histogram.
type BlockCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PrisonerHistory is the detail payload of /api/prisoners/{id}/history.
type PrisonerHistory struct {
	Prisoner   Record            `json:"prisoner"`
	Statistics HistoryStatistics `json:"statistics"`
	Sentences  []Record          `json:"sentences"`
	Incidents  []Record          `json:"incidents"`
}

// HistoryStatistics summarises a prisoner's record.
type HistoryStatistics struct {
	TotalSentences    int `json:"total_sentences"`
	TotalIncidents    int `json:"total_incidents"`
	TotalVisits       int `json:"total_visits"`
	ProgramsCompleted int `json:"programs_completed"`
	TotalSolitaryDays int `json:"total_solitary_days"`
}
