package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prison-admin/internal/domain"
	"prison-admin/internal/form"
	"prison-admin/internal/refcache"
	"prison-admin/internal/view"
)

func TestRegistryLookup(t *testing.T) {
	r := Default()

	d, err := r.Lookup("cells")
	require.NoError(t, err)
	assert.Equal(t, "/api/cells", d.Path)
	assert.Equal(t, "/api/cells/7", d.RecordPath(7))

	_, err = r.Lookup("sentences")
	assert.True(t, errors.Is(err, ErrUnknownEntity))

	assert.Len(t, r.All(), 8)
	onPrograms := r.OnPage("programs")
	require.Len(t, onPrograms, 2)
	assert.Equal(t, "programs", onPrograms[0].Name)
	assert.Equal(t, "enrollments", onPrograms[1].Name)
}

func TestDescriptorsAreConsistent(t *testing.T) {
	sources := map[string]bool{}
	for _, s := range refcache.DefaultSources() {
		sources[s.Name] = true
	}

	for _, d := range Default().All() {
		t.Run(d.Name, func(t *testing.T) {
			assert.NotEmpty(t, d.Title)
			assert.NotEmpty(t, d.Page)
			assert.False(t, d.Paginated && d.Capped, "a list is either paginated or capped")
			assert.True(t, d.Card != nil || len(d.Columns) > 0, "list needs columns or cards")
			if d.CanCreate() {
				assert.NotEmpty(t, d.Messages.CreateTitle)
				assert.NotEmpty(t, d.Messages.Created)
			}
			if d.CanEdit() {
				assert.NotEmpty(t, d.Messages.EditTitle)
				assert.NotEmpty(t, d.Messages.Updated)
			}
			if d.CanDelete() {
				assert.NotEmpty(t, d.Messages.ConfirmDelete)
				assert.NotEmpty(t, d.Messages.Deleted)
			}
			for _, f := range append(d.Fields(false), d.Fields(true)...) {
				if f.Source != "" {
					assert.True(t, sources[f.Source], "field %s uses unknown source %s", f.Name, f.Source)
				}
			}
			for _, f := range d.Filters {
				if f.Source != "" {
					assert.True(t, sources[f.Source])
				}
			}
			for _, s := range d.Invalidates {
				assert.True(t, sources[s])
			}
		})
	}
}

func TestListShapes(t *testing.T) {
	r := Default()
	prisoners, _ := r.Lookup("prisoners")
	visits, _ := r.Lookup("visits")
	incidents, _ := r.Lookup("incidents")
	cells, _ := r.Lookup("cells")

	assert.True(t, prisoners.Paginated)
	assert.True(t, prisoners.Searchable)
	assert.True(t, visits.Capped)
	assert.True(t, incidents.Capped)
	assert.False(t, cells.Paginated || cells.Capped)
	assert.Equal(t, "block_id", cells.Filters[0].Name)
	require.Len(t, incidents.Filters, 2)
	assert.Equal(t, "resolved", incidents.Filters[1].Name)
}

func TestPrisonerRowRendering(t *testing.T) {
	d := Prisoners()
	table := d.Table([]domain.Record{{
		"id":              float64(5),
		"prisoner_number": "P2025-0005",
		"first_name":      "Jan",
		"last_name":       "Kowalski",
		"date_of_birth":   "1985-06-15",
		"cell_code":       nil,
		"status":          "incarcerated",
	}})

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "Jan Kowalski", row.Cells[1].Text)
	assert.Equal(t, "15.06.1985", row.Cells[2].Text)
	assert.Equal(t, "-", row.Cells[3].Text)
	assert.Equal(t, view.Cell{Text: "Osadzony", Badge: "incarcerated"}, row.Cells[5])
	require.Len(t, row.Actions, 3)
	assert.Equal(t, view.ActionView, row.Actions[0].Kind)
	assert.Equal(t, int64(5), row.Actions[2].ID)

	empty := d.Table(nil)
	assert.True(t, empty.Rows[0].Placeholder)
	assert.Equal(t, "Brak więźniów do wyświetlenia", empty.Rows[0].Cells[0].Text)
}

func TestOccupancyBadge(t *testing.T) {
	cases := []struct {
		occ, capacity float64
		badge         string
	}{
		{0, 2, "minor"},
		{1, 2, "moderate"},
		{2, 2, "critical"},
	}
	for _, c := range cases {
		cell := occupancyBadge(domain.Record{"current_occupancy": c.occ, "capacity": c.capacity})
		assert.Equal(t, c.badge, cell.Badge)
	}
}

func TestProgramCards(t *testing.T) {
	d := Programs()
	cards := d.Cards([]domain.Record{
		{"name": "Kurs spawania", "type_name": "Zawodowy", "duration_weeks": float64(12), "current_enrolled": float64(3), "max_participants": float64(10)},
		{"name": "Terapia", "instructor_first_name": "Anna", "instructor_last_name": "Nowak"},
	})
	require.Len(t, cards, 2)
	assert.Equal(t, "Czas trwania: 12 tygodni", cards[0].Lines[0])
	assert.Equal(t, "Zapisanych: 3/10", cards[0].Lines[1])
	assert.Len(t, cards[0].Lines, 2)
	assert.Equal(t, "Instruktor: Anna Nowak", cards[1].Lines[2])
	assert.False(t, d.CanEdit())
	assert.Empty(t, d.RowActions(domain.Record{"id": float64(1)}))
}

func TestEditFieldsDifferFromCreate(t *testing.T) {
	e := Enrollments()
	names := func(defs []form.Def) []string {
		var out []string
		for _, d := range defs {
			out = append(out, d.Name)
		}
		return out
	}
	assert.Equal(t, []string{"prisoner_id", "program_id", "notes"}, names(e.Fields(false)))
	assert.Equal(t, []string{"status", "grade", "completion_date", "notes"}, names(e.Fields(true)))

	extras := e.CreateExtras()
	assert.Equal(t, "enrolled", extras["status"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, extras["enrollment_date"])

	assert.Equal(t, names(Cells().Fields(false)), names(Cells().Fields(true)))
}

func TestStaffCreateStampsHireDate(t *testing.T) {
	extras := Staff().CreateExtras()
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, extras["hire_date"])
}

func TestOptionFor(t *testing.T) {
	cell := OptionFor(refcache.Cells, domain.Record{
		"id": float64(3), "cell_code": "A-101", "block_name": "Blok A", "current_occupancy": float64(1), "capacity": float64(2),
	})
	assert.Equal(t, view.Option{Value: "3", Label: "A-101 (Blok A) - 1/2"}, cell)

	prisoner := OptionFor(refcache.Prisoners, domain.Record{"id": float64(9), "prisoner_number": "P1", "first_name": "Jan", "last_name": "Nowak"})
	assert.Equal(t, "P1 - Jan Nowak", prisoner.Label)

	staff := OptionFor(refcache.Staff, domain.Record{"id": float64(2), "first_name": "Ewa", "last_name": "Lis", "role_name": "Strażnik"})
	assert.Equal(t, "Ewa Lis (Strażnik)", staff.Label)

	block := OptionFor(refcache.Blocks, domain.Record{"id": float64(1), "name": "Blok A"})
	assert.Equal(t, view.Option{Value: "1", Label: "Blok A"}, block)

	assert.Len(t, Options(refcache.Blocks, []domain.Record{{"id": float64(1)}, {"id": float64(2)}}), 2)
}
