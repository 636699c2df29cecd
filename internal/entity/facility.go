package entity

import (
	"prison-admin/internal/domain"
	"prison-admin/internal/form"
	"prison-admin/internal/format"
	"prison-admin/internal/listview"
	"prison-admin/internal/refcache"
	"prison-admin/internal/view"
)

var genderOptions = options([]string{"male", "female", "other"}, format.Gender)

// Prisoners is the paginated prisoner register.
func Prisoners() *Descriptor {
	statuses := []string{
		string(domain.PrisonerIncarcerated), string(domain.PrisonerReleased), string(domain.PrisonerTransferred),
	}
	bloodTypes := append([]view.Option{{Value: "", Label: "Nieznana"}}, options(domain.BloodTypes, identity)...)

	return &Descriptor{
		Name:       "prisoners",
		Path:       "/api/prisoners",
		Title:      "Więźniowie",
		Page:       "prisoners",
		Paginated:  true,
		Searchable: true,
		Filters: []Filter{
			{Name: "status", Label: "Status", All: "Wszystkie statusy", Options: options(statuses, format.Status)},
		},
		Columns: []listview.Column{
			{Header: "Numer", Cell: listview.Text("prisoner_number")},
			{Header: "Imię i nazwisko", Cell: func(r domain.Record) view.Cell { return text(fullName(r)) }},
			{Header: "Data urodzenia", Cell: dateCell("date_of_birth")},
			{Header: "Cela", Cell: listview.Text("cell_code")},
			{Header: "Blok", Cell: listview.Text("block_name")},
			{Header: "Status", Cell: statusCell("status", format.Status)},
		},
		Actions: []view.ActionKind{view.ActionView, view.ActionEdit, view.ActionDelete},
		CreateFields: []form.Def{
			{Name: "prisoner_number", Label: "Numer więźnia", Kind: form.Text, Required: true, Placeholder: "np. P2025-0001"},
			{Name: "status", Label: "Status", Kind: form.Select, Default: statuses[0], Options: options(statuses, format.Status)},
			{Name: "first_name", Label: "Imię", Kind: form.Text, Required: true},
			{Name: "last_name", Label: "Nazwisko", Kind: form.Text, Required: true},
			{Name: "date_of_birth", Label: "Data urodzenia", Kind: form.Date, Required: true},
			{Name: "gender", Label: "Płeć", Kind: form.Select, Required: true, Default: "male", Options: genderOptions},
			{Name: "nationality", Label: "Narodowość", Kind: form.Text, Required: true, Default: "Polish"},
			{Name: "blood_type", Label: "Grupa krwi", Kind: form.Select, Coerce: form.AsOptString, Options: bloodTypes},
			{Name: "cell_id", Label: "Cela", Kind: form.Select, Coerce: form.AsOptInt,
				Options: []view.Option{{Value: "", Label: "Brak przypisania"}}, Source: refcache.Cells},
			{Name: "admission_date", Label: "Data przyjęcia", Kind: form.Date, Coerce: form.AsOptString, DefaultFunc: today},
			{Name: "emergency_contact_name", Label: "Kontakt alarmowy - imię", Kind: form.Text, Coerce: form.AsOptString},
			{Name: "emergency_contact_phone", Label: "Kontakt alarmowy - telefon", Kind: form.Text, Coerce: form.AsOptString},
			{Name: "notes", Label: "Notatki", Kind: form.TextArea, Coerce: form.AsOptString},
		},
		Fetchable: true,
		Messages: Messages{
			CreateTitle:   "Dodaj więźnia",
			EditTitle:     "Edytuj więźnia",
			Created:       "Więzień dodany",
			Updated:       "Więzień zaktualizowany",
			Deleted:       "Więzień usunięty",
			ConfirmDelete: "Czy na pewno chcesz usunąć tego więźnia? Ta operacja jest nieodwracalna.",
			DeleteFailed:  "Błąd usuwania: ",
			Empty:         "Brak więźniów do wyświetlenia",
		},
		// Admitting or moving a prisoner changes cell occupancy.
		Invalidates: []string{refcache.Prisoners, refcache.Cells},
	}
}

// Cells lists cells, filterable by block.
func Cells() *Descriptor {
	cellTypes := []string{
		string(domain.CellStandard), string(domain.CellSolitary), string(domain.CellMedical), string(domain.CellProtective),
	}

	return &Descriptor{
		Name:  "cells",
		Path:  "/api/cells",
		Title: "Cele",
		Page:  "cells",
		Filters: []Filter{
			{Name: "block_id", Label: "Blok", All: "Wszystkie bloki", Source: refcache.Blocks},
		},
		Columns: []listview.Column{
			{Header: "Kod", Cell: listview.Text("cell_code")},
			{Header: "Blok", Cell: listview.Text("block_name")},
			{Header: "Piętro", Cell: listview.Text("floor_number")},
			{Header: "Typ", Cell: func(r domain.Record) view.Cell { return text(format.CellType(r.String("cell_type"))) }},
			{Header: "Pojemność", Cell: listview.Text("capacity")},
			{Header: "Zajętość", Cell: occupancyBadge},
			{Header: "Okno", Cell: func(r domain.Record) view.Cell { return text(format.YesNo(r.Bool("has_window"))) }},
		},
		Actions: []view.ActionKind{view.ActionEdit, view.ActionDelete},
		CreateFields: []form.Def{
			{Name: "cell_code", Label: "Kod celi", Kind: form.Text, Required: true, Placeholder: "np. A-101"},
			{Name: "cell_block_id", Label: "Blok", Kind: form.Select, Coerce: form.AsInt, Required: true, Source: refcache.Blocks},
			{Name: "floor_number", Label: "Piętro", Kind: form.Number, Coerce: form.AsInt, Required: true, Min: "1", Default: "1"},
			{Name: "capacity", Label: "Pojemność", Kind: form.Number, Coerce: form.AsInt, Required: true,
				Min: itoa(domain.MinCellCapacity), Max: itoa(domain.MaxCellCapacity), Default: itoa(domain.MinCellCapacity)},
			{Name: "cell_type", Label: "Typ celi", Kind: form.Select, Default: cellTypes[0], Options: options(cellTypes, format.CellType)},
			{Name: "has_window", Label: "Okno", Kind: form.Select, Coerce: form.AsBool, Default: "true", Options: yesNoOptions()},
		},
		Fetchable: true,
		Messages: Messages{
			CreateTitle:   "Dodaj celę",
			EditTitle:     "Edytuj celę",
			Created:       "Cela dodana",
			Updated:       "Cela zaktualizowana",
			Deleted:       "Cela usunięta",
			ConfirmDelete: "Czy na pewno chcesz usunąć tę celę?",
			Empty:         "Brak cel do wyświetlenia",
		},
		Invalidates: []string{refcache.Cells},
	}
}

// Staff lists employees, filterable by role.
func Staff() *Descriptor {
	return &Descriptor{
		Name:  "staff",
		Path:  "/api/staff",
		Title: "Personel",
		Page:  "staff",
		Filters: []Filter{
			{Name: "role_id", Label: "Rola", All: "Wszystkie role", Source: refcache.Roles},
		},
		Columns: []listview.Column{
			{Header: "ID", Cell: listview.Text("employee_id")},
			{Header: "Imię i nazwisko", Cell: func(r domain.Record) view.Cell { return text(fullName(r)) }},
			{Header: "Rola", Cell: listview.Text("role_name")},
			{Header: "Blok", Cell: listview.Text("block_name")},
			{Header: "Email", Cell: listview.Text("email")},
			{Header: "Telefon", Cell: listview.Text("phone")},
			{Header: "Status", Cell: boolBadge("is_active", "Aktywny", "completed", "Nieaktywny", "cancelled")},
		},
		Actions: []view.ActionKind{view.ActionEdit, view.ActionDelete},
		CreateFields: []form.Def{
			{Name: "employee_id", Label: "ID pracownika", Kind: form.Text, Required: true, Placeholder: "np. EMP016"},
			{Name: "role_id", Label: "Rola", Kind: form.Select, Coerce: form.AsInt, Required: true, Source: refcache.Roles},
			{Name: "first_name", Label: "Imię", Kind: form.Text, Required: true},
			{Name: "last_name", Label: "Nazwisko", Kind: form.Text, Required: true},
			{Name: "date_of_birth", Label: "Data urodzenia", Kind: form.Date, Required: true},
			{Name: "gender", Label: "Płeć", Kind: form.Select, Required: true, Default: "male", Options: genderOptions},
			{Name: "email", Label: "Email", Kind: form.Email, Coerce: form.AsOptString},
			{Name: "phone", Label: "Telefon", Kind: form.Text, Coerce: form.AsOptString},
			{Name: "assigned_block_id", Label: "Przypisany blok", Kind: form.Select, Coerce: form.AsOptInt,
				Options: []view.Option{{Value: "", Label: "Brak"}}, Source: refcache.Blocks},
			{Name: "salary", Label: "Wynagrodzenie", Kind: form.Number, Coerce: form.AsOptFloat, Step: "0.01", Min: "0"},
			{Name: "is_active", Label: "Status", Kind: form.Select, Coerce: form.AsBool, Default: "true", Options: []view.Option{
				{Value: "true", Label: "Aktywny"}, {Value: "false", Label: "Nieaktywny"},
			}},
		},
		CreateExtras: func() map[string]any { return map[string]any{"hire_date": today()} },
		Fetchable:    true,
		Messages: Messages{
			CreateTitle:   "Dodaj pracownika",
			EditTitle:     "Edytuj pracownika",
			Created:       "Pracownik dodany",
			Updated:       "Pracownik zaktualizowany",
			Deleted:       "Pracownik usunięty",
			ConfirmDelete: "Czy na pewno chcesz usunąć tego pracownika?",
			Empty:         "Brak pracowników do wyświetlenia",
		},
		Invalidates: []string{refcache.Staff},
	}
}

func yesNoOptions() []view.Option {
	return []view.Option{{Value: "true", Label: format.YesNo(true)}, {Value: "false", Label: format.YesNo(false)}}
}
