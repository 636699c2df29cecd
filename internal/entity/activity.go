package entity

import (
	"prison-admin/internal/domain"
	"prison-admin/internal/form"
	"prison-admin/internal/format"
	"prison-admin/internal/listview"
	"prison-admin/internal/refcache"
	"prison-admin/internal/view"
)

// Visits lists scheduled and past visits, capped and filterable by status.
func Visits() *Descriptor {
	statuses := []string{
		string(domain.VisitScheduled), string(domain.VisitCompleted), string(domain.VisitCancelled), string(domain.VisitNoShow),
	}
	types := []string{
		string(domain.VisitRegular), string(domain.VisitFamily), string(domain.VisitLegal), string(domain.VisitConjugal),
	}
	visitType := form.Def{Name: "visit_type", Label: "Typ wizyty", Kind: form.Select, Default: types[0], Options: options(types, format.VisitType)}
	visitDate := form.Def{Name: "visit_date", Label: "Data wizyty", Kind: form.Date, Required: true}
	start := form.Def{Name: "scheduled_start_time", Label: "Godzina rozpoczęcia", Kind: form.Time, Required: true, Default: "10:00"}
	end := form.Def{Name: "scheduled_end_time", Label: "Godzina zakończenia", Kind: form.Time, Required: true, Default: "11:00"}
	notes := form.Def{Name: "notes", Label: "Notatki", Kind: form.TextArea, Coerce: form.AsOptString}

	return &Descriptor{
		Name:   "visits",
		Path:   "/api/visits",
		Title:  "Wizyty",
		Page:   "visits",
		Capped: true,
		Filters: []Filter{
			{Name: "status", Label: "Status", All: "Wszystkie statusy", Options: options(statuses, format.Status)},
		},
		Columns: []listview.Column{
			{Header: "Data", Cell: dateCell("visit_date")},
			{Header: "Godziny", Cell: func(r domain.Record) view.Cell {
				return text(hourMinute(r.String("scheduled_start_time")) + " - " + hourMinute(r.String("scheduled_end_time")))
			}},
			{Header: "Więzień", Cell: func(r domain.Record) view.Cell {
				return text(withNumber(joinName(r, "prisoner_first_name", "prisoner_last_name"), r.String("prisoner_number")))
			}},
			{Header: "Odwiedzający", Cell: func(r domain.Record) view.Cell {
				return text(joinName(r, "visitor_first_name", "visitor_last_name"))
			}},
			{Header: "Relacja", Cell: listview.Text("relationship_type")},
			{Header: "Typ", Cell: func(r domain.Record) view.Cell { return text(format.VisitType(r.String("visit_type"))) }},
			{Header: "Status", Cell: statusCell("status", format.Status)},
		},
		Actions: []view.ActionKind{view.ActionEdit, view.ActionDelete},
		CreateFields: []form.Def{
			{Name: "prisoner_id", Label: "Więzień", Kind: form.Select, Coerce: form.AsInt, Required: true, Source: refcache.Prisoners},
			{Name: "visitor_id", Label: "Odwiedzający", Kind: form.Select, Coerce: form.AsInt, Required: true, Source: refcache.Visitors},
			visitDate,
			visitType,
			start,
			end,
			{Name: "approved_by_staff_id", Label: "Zatwierdzający", Kind: form.Select, Coerce: form.AsOptInt,
				Options: []view.Option{{Value: "", Label: "Wybierz"}}, Source: refcache.Staff},
			notes,
		},
		// The backend does not move a visit to another prisoner or visitor.
		EditFields: []form.Def{
			visitDate,
			visitType,
			start,
			end,
			{Name: "status", Label: "Status", Kind: form.Select, Default: statuses[0], Options: options(statuses, format.Status)},
			notes,
		},
		Messages: Messages{
			CreateTitle:   "Zaplanuj wizytę",
			EditTitle:     "Edytuj wizytę",
			Created:       "Wizyta zaplanowana",
			Updated:       "Wizyta zaktualizowana",
			Deleted:       "Wizyta usunięta",
			ConfirmDelete: "Czy na pewno chcesz usunąć tę wizytę?",
			Empty:         "Brak wizyt do wyświetlenia",
		},
	}
}

// Programs renders rehabilitation programs as cards. Programs are only
// created from the console.
func Programs() *Descriptor {
	return &Descriptor{
		Name:  "programs",
		Path:  "/api/programs",
		Title: "Programy",
		Page:  "programs",
		Card: func(r domain.Record) view.Card {
			lines := []string{
				"Czas trwania: " + r.String("duration_weeks") + " tygodni",
				"Zapisanych: " + r.String("current_enrolled") + "/" + r.String("max_participants"),
			}
			if r.Has("instructor_first_name") {
				lines = append(lines, "Instruktor: "+joinName(r, "instructor_first_name", "instructor_last_name"))
			}
			return view.Card{Title: r.String("name"), Subtitle: r.String("type_name"), Lines: lines}
		},
		CreateFields: []form.Def{
			{Name: "name", Label: "Nazwa", Kind: form.Text, Required: true},
			{Name: "program_type_id", Label: "Typ", Kind: form.Select, Coerce: form.AsInt, Required: true, Source: refcache.ProgramTypes},
			{Name: "duration_weeks", Label: "Czas trwania (tygodnie)", Kind: form.Number, Coerce: form.AsInt, Required: true, Min: "1"},
			{Name: "max_participants", Label: "Maks. uczestników", Kind: form.Number, Coerce: form.AsInt, Required: true, Min: "1"},
			{Name: "instructor_staff_id", Label: "Instruktor", Kind: form.Select, Coerce: form.AsOptInt,
				Options: []view.Option{{Value: "", Label: "Brak"}}, Source: refcache.Staff},
			{Name: "description", Label: "Opis", Kind: form.TextArea, Coerce: form.AsOptString},
		},
		Messages: Messages{
			CreateTitle: "Dodaj program",
			Created:     "Program dodany",
			Empty:       "Brak programów",
		},
		Invalidates: []string{refcache.Programs},
	}
}

// Enrollments lists prisoners enrolled in programs. Rows are edited from
// the loaded list since the backend has no single-enrollment read.
func Enrollments() *Descriptor {
	statuses := []string{
		string(domain.EnrollmentEnrolled), string(domain.EnrollmentCompleted),
		string(domain.EnrollmentDropped), string(domain.EnrollmentExpelled),
	}
	grades := append([]view.Option{{Value: "", Label: "Brak"}}, options(domain.Grades, identity)...)

	return &Descriptor{
		Name:  "enrollments",
		Path:  "/api/prisoner-programs",
		Title: "Zapisy na programy",
		Page:  "programs",
		Columns: []listview.Column{
			{Header: "Więzień", Cell: func(r domain.Record) view.Cell {
				return text(withNumber(fullName(r), r.String("prisoner_number")))
			}},
			{Header: "Program", Cell: listview.Text("program_name")},
			{Header: "Typ", Cell: listview.Text("program_type")},
			{Header: "Data zapisu", Cell: dateCell("enrollment_date")},
			{Header: "Status", Cell: statusCell("status", format.EnrollmentStatus)},
			{Header: "Ocena", Cell: listview.Text("grade")},
		},
		Actions: []view.ActionKind{view.ActionEdit},
		CreateFields: []form.Def{
			{Name: "prisoner_id", Label: "Więzień", Kind: form.Select, Coerce: form.AsInt, Required: true, Source: refcache.Prisoners},
			{Name: "program_id", Label: "Program", Kind: form.Select, Coerce: form.AsInt, Required: true, Source: refcache.Programs},
			{Name: "notes", Label: "Notatki", Kind: form.TextArea, Coerce: form.AsOptString},
		},
		CreateExtras: func() map[string]any {
			return map[string]any{"enrollment_date": today(), "status": string(domain.EnrollmentEnrolled)}
		},
		EditFields: []form.Def{
			{Name: "status", Label: "Status", Kind: form.Select, Default: statuses[0], Options: options(statuses, format.EnrollmentStatus)},
			{Name: "grade", Label: "Ocena", Kind: form.Select, Coerce: form.AsOptString, Options: grades},
			{Name: "completion_date", Label: "Data ukończenia", Kind: form.Date, Coerce: form.AsOptString},
			{Name: "notes", Label: "Notatki", Kind: form.TextArea, Coerce: form.AsOptString},
		},
		Messages: Messages{
			CreateTitle: "Zapisz na program",
			EditTitle:   "Edytuj zapis",
			Created:     "Więzień zapisany",
			Updated:     "Zapis zaktualizowany",
			Empty:       "Brak zapisów",
		},
		// Enrolling changes the enrolled count shown on program cards.
		Invalidates: []string{refcache.Programs},
	}
}

// Incidents lists disciplinary incidents, capped and filterable by
// severity and resolution.
func Incidents() *Descriptor {
	severities := []string{
		string(domain.SeverityMinor), string(domain.SeverityModerate), string(domain.SeverityMajor), string(domain.SeverityCritical),
	}
	types := make([]string, len(domain.IncidentTypes))
	for i, t := range domain.IncidentTypes {
		types[i] = string(t)
	}
	incidentType := form.Def{Name: "incident_type", Label: "Typ incydentu", Kind: form.Select, Required: true,
		Default: types[0], Options: options(types, format.IncidentType)}
	severity := form.Def{Name: "severity", Label: "Poziom", Kind: form.Select, Required: true,
		Default: severities[0], Options: options(severities, format.Status)}
	location := form.Def{Name: "location", Label: "Lokalizacja", Kind: form.Text, Coerce: form.AsOptString}
	description := form.Def{Name: "description", Label: "Opis", Kind: form.TextArea, Required: true}
	action := form.Def{Name: "action_taken", Label: "Podjęte działania", Kind: form.TextArea, Coerce: form.AsOptString}
	solitary := form.Def{Name: "solitary_days", Label: "Dni w izolatce", Kind: form.Number, Coerce: form.AsIntOrZero, Min: "0", Default: "0"}

	return &Descriptor{
		Name:   "incidents",
		Path:   "/api/incidents",
		Title:  "Incydenty",
		Page:   "incidents",
		Capped: true,
		Filters: []Filter{
			{Name: "severity", Label: "Poziom", All: "Wszystkie poziomy", Options: options(severities, format.Status)},
			{Name: "resolved", Label: "Status", All: "Wszystkie", Options: []view.Option{
				{Value: "false", Label: "Nierozwiązane"}, {Value: "true", Label: "Rozwiązane"},
			}},
		},
		Columns: []listview.Column{
			{Header: "Data", Cell: func(r domain.Record) view.Cell { return text(format.DateTime(r.String("incident_date"))) }},
			{Header: "Więzień", Cell: func(r domain.Record) view.Cell {
				return text(withNumber(fullName(r), r.String("prisoner_number")))
			}},
			{Header: "Typ", Cell: func(r domain.Record) view.Cell { return text(format.IncidentType(r.String("incident_type"))) }},
			{Header: "Poziom", Cell: statusCell("severity", format.Status)},
			{Header: "Lokalizacja", Cell: listview.Text("location")},
			{Header: "Zgłaszający", Cell: func(r domain.Record) view.Cell {
				return text(joinName(r, "reporter_first_name", "reporter_last_name"))
			}},
			{Header: "Status", Cell: boolBadge("is_resolved", "Rozwiązany", "resolved", "Nierozwiązany", "unresolved")},
		},
		Actions: []view.ActionKind{view.ActionEdit, view.ActionDelete},
		CreateFields: []form.Def{
			{Name: "prisoner_id", Label: "Więzień", Kind: form.Select, Coerce: form.AsInt, Required: true, Source: refcache.Prisoners},
			{Name: "reported_by_staff_id", Label: "Zgłaszający", Kind: form.Select, Coerce: form.AsOptInt,
				Options: []view.Option{{Value: "", Label: "Wybierz"}}, Source: refcache.Staff},
			incidentType,
			severity,
			{Name: "incident_date", Label: "Data i godzina", Kind: form.DateTime, Coerce: form.AsOptString, DefaultFunc: nowMinute},
			location,
			description,
			action,
			solitary,
		},
		EditFields: []form.Def{
			incidentType,
			severity,
			location,
			description,
			action,
			solitary,
			{Name: "is_resolved", Label: "Rozwiązany", Kind: form.Select, Coerce: form.AsBool, Default: "false", Options: yesNoOptions()},
		},
		Messages: Messages{
			CreateTitle:   "Zgłoś incydent",
			EditTitle:     "Edytuj incydent",
			Created:       "Incydent zgłoszony",
			Updated:       "Incydent zaktualizowany",
			Deleted:       "Incydent usunięty",
			ConfirmDelete: "Czy na pewno chcesz usunąć ten incydent?",
			Empty:         "Brak incydentów do wyświetlenia",
		},
	}
}

// Visitors lists registered visitors, searchable and filterable by
// blacklist status.
func Visitors() *Descriptor {
	first := form.Def{Name: "first_name", Label: "Imię", Kind: form.Text, Required: true}
	last := form.Def{Name: "last_name", Label: "Nazwisko", Kind: form.Text, Required: true}
	phone := form.Def{Name: "phone", Label: "Telefon", Kind: form.Text, Coerce: form.AsOptString}
	email := form.Def{Name: "email", Label: "Email", Kind: form.Email, Coerce: form.AsOptString}

	return &Descriptor{
		Name:       "visitors",
		Path:       "/api/visitors",
		Title:      "Odwiedzający",
		Page:       "visitors",
		Searchable: true,
		Filters: []Filter{
			{Name: "blacklisted", Label: "Status", All: "Wszyscy", Options: []view.Option{
				{Value: "false", Label: "Dozwoleni"}, {Value: "true", Label: "Zablokowani"},
			}},
		},
		Columns: []listview.Column{
			{Header: "Imię i nazwisko", Cell: func(r domain.Record) view.Cell { return text(fullName(r)) }},
			{Header: "Relacja", Cell: listview.Text("relationship_type")},
			{Header: "Dokument", Cell: func(r domain.Record) view.Cell {
				return text(joinName(r, "id_document_type", "id_document_number"))
			}},
			{Header: "Telefon", Cell: listview.Text("phone")},
			{Header: "Email", Cell: listview.Text("email")},
			{Header: "Status", Cell: boolBadge("is_blacklisted", "Zablokowany", "cancelled", "Dozwolony", "completed")},
		},
		Actions: []view.ActionKind{view.ActionEdit, view.ActionDelete},
		CreateFields: []form.Def{
			first,
			last,
			{Name: "date_of_birth", Label: "Data urodzenia", Kind: form.Date, Coerce: form.AsOptString},
			{Name: "id_document_type", Label: "Rodzaj dokumentu", Kind: form.Text, Coerce: form.AsOptString, Placeholder: "np. Dowód osobisty"},
			{Name: "id_document_number", Label: "Numer dokumentu", Kind: form.Text, Coerce: form.AsOptString},
			{Name: "relationship_type", Label: "Relacja", Kind: form.Text, Coerce: form.AsOptString, Placeholder: "np. Matka"},
			phone,
			email,
		},
		EditFields: []form.Def{
			first,
			last,
			phone,
			email,
			{Name: "is_blacklisted", Label: "Zablokowany", Kind: form.Select, Coerce: form.AsBool, Default: "false", Options: yesNoOptions()},
			{Name: "blacklist_reason", Label: "Powód blokady", Kind: form.TextArea, Coerce: form.AsOptString},
		},
		Messages: Messages{
			CreateTitle:   "Dodaj odwiedzającego",
			EditTitle:     "Edytuj odwiedzającego",
			Created:       "Odwiedzający dodany",
			Updated:       "Odwiedzający zaktualizowany",
			Deleted:       "Odwiedzający usunięty",
			ConfirmDelete: "Czy na pewno chcesz usunąć tego odwiedzającego?",
			Empty:         "Brak odwiedzających do wyświetlenia",
		},
		Invalidates: []string{refcache.Visitors},
	}
}
