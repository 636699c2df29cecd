package console

import (
	"context"
	"fmt"
	"strconv"

	"prison-admin/internal/domain"
	"prison-admin/internal/format"
	"prison-admin/internal/report"
	"prison-admin/internal/view"
)

const recentIncidents = 5

// Dashboard fetches the statistics and publishes the landing page.
func (c *Console) Dashboard(ctx context.Context) (view.Dashboard, error) {
	var stats domain.Stats
	if err := c.api.Get(ctx, "/api/stats", &stats); err != nil {
		c.notifier.Error("Błąd ładowania statystyk")
		c.logError("Dashboard load failed", "error", err)
		return view.Dashboard{}, fmt.Errorf("load stats: %w", err)
	}
	d := RenderDashboard(stats)
	c.state.SetDashboard(d)
	return d, nil
}

// RenderDashboard builds the counters and the per-block histogram. Bars
// are scaled to the largest block; all-zero blocks render empty bars.
func RenderDashboard(s domain.Stats) view.Dashboard {
	d := view.Dashboard{
		Counters: []view.Counter{
			{Key: "prisoners", Label: "Więźniowie", Value: s.TotalPrisoners},
			{Key: "cells", Label: "Cele", Value: s.TotalCells},
			{Key: "staff", Label: "Aktywny personel", Value: s.ActiveStaff},
			{Key: "visits", Label: "Zaplanowane wizyty", Value: s.ScheduledVisits},
			{Key: "incidents", Label: "Nierozwiązane incydenty", Value: s.UnresolvedIncidents},
		},
		Blocks: make([]view.Bar, len(s.PrisonersByBlock)),
	}
	for i := range d.Counters {
		d.Counters[i].Text = format.Count(d.Counters[i].Value)
	}
	peak := 1
	for _, b := range s.PrisonersByBlock {
		peak = max(peak, b.Count)
	}
	for i, b := range s.PrisonersByBlock {
		d.Blocks[i] = view.Bar{
			Label:   b.Name,
			Value:   b.Count,
			Percent: float64(b.Count) / float64(peak) * 100,
		}
	}
	return d
}

// PrisonerDetail opens the history of a prisoner in the modal.
func (c *Console) PrisonerDetail(ctx context.Context, id int64) (view.Modal, error) {
	var h domain.PrisonerHistory
	if err := c.api.Get(ctx, "/api/prisoners/"+strconv.FormatInt(id, 10)+"/history", &h); err != nil {
		c.notifier.Error("Błąd ładowania szczegółów")
		c.logError("Prisoner history load failed", "id", id, "error", err)
		return view.Modal{}, fmt.Errorf("load history %d: %w", id, err)
	}
	c.modal.OpenDetail(RenderPrisonerDetail(h))
	return c.modal.Current(), nil
}

// RenderPrisonerDetail lays out identity, statistics, sentences and the
// most recent incidents. Empty sentence and incident lists are omitted.
func RenderPrisonerDetail(h domain.PrisonerHistory) view.Detail {
	p := h.Prisoner
	st := h.Statistics
	d := view.Detail{
		Title: "Szczegóły więźnia",
		Sections: []view.Section{
			{
				Heading: p.String("first_name") + " " + p.String("last_name"),
				Lines: []view.Line{
					{Label: "Numer", Value: p.String("prisoner_number")},
					{Label: "Status", Value: format.Status(p.String("status"))},
					{Label: "Data przyjęcia", Value: format.Date(p.String("admission_date"))},
				},
			},
			{
				Heading: "Statystyki",
				Lines: []view.Line{
					{Label: "Wyroki", Value: strconv.Itoa(st.TotalSentences)},
					{Label: "Incydenty", Value: strconv.Itoa(st.TotalIncidents)},
					{Label: "Wizyty", Value: strconv.Itoa(st.TotalVisits)},
					{Label: "Ukończone programy", Value: strconv.Itoa(st.ProgramsCompleted)},
					{Label: "Dni w izolatce", Value: strconv.Itoa(st.TotalSolitaryDays)},
				},
			},
		},
	}

	if len(h.Sentences) > 0 {
		items := make([]string, len(h.Sentences))
		for i, s := range h.Sentences {
			items[i] = sentenceLine(s)
		}
		d.Sections = append(d.Sections, view.Section{Heading: "Wyroki", Items: items})
	}

	if len(h.Incidents) > 0 {
		recent := h.Incidents[:min(len(h.Incidents), recentIncidents)]
		items := make([]string, len(recent))
		for i, inc := range recent {
			items[i] = format.Date(inc.String("incident_date")) + " - " +
				format.IncidentType(inc.String("incident_type")) +
				" (" + format.Status(inc.String("severity")) + ")"
		}
		d.Sections = append(d.Sections, view.Section{Heading: "Ostatnie incydenty", Items: items})
	}
	return d
}

func sentenceLine(s domain.Record) string {
	years, _ := s.Int("sentence_years")
	line := s.String("crime_type") + " - " + strconv.FormatInt(years, 10) + " lat"
	if months, _ := s.Int("sentence_months"); months > 0 {
		line += " " + strconv.FormatInt(months, 10) + " mies."
	}
	return line + " (od " + format.Date(s.String("sentence_start_date")) + ")"
}

// Report switches the report tab and publishes the rendered table. On
// failure the previous report stays on screen.
func (c *Console) Report(ctx context.Context, name string) (view.Report, error) {
	r, err := c.reports.Load(ctx, name)
	if err != nil {
		if _, lerr := report.Lookup(name); lerr != nil {
			return view.Report{}, err
		}
		c.notifier.Error("Błąd ładowania raportu")
		c.logError("Report load failed", "report", name, "error", err)
		return view.Report{}, err
	}
	c.state.SetReport(name, r)
	c.logDebug("Report loaded", "report", name, "rows", len(r.Table.Rows))
	return r, nil
}
