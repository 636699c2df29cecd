package form

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prison-admin/internal/domain"
	"prison-admin/internal/view"
)

var cellDefs = []Def{
	{Name: "cell_code", Label: "Kod celi", Kind: Text, Required: true},
	{Name: "cell_block_id", Label: "Blok", Kind: Select, Coerce: AsInt, Required: true, Source: "blocks"},
	{Name: "floor_number", Label: "Piętro", Kind: Number, Coerce: AsInt, Required: true, Min: "1", Default: "1"},
	{Name: "capacity", Label: "Pojemność", Kind: Number, Coerce: AsInt, Required: true, Min: "1", Max: "4", Default: "1"},
	{Name: "cell_type", Label: "Typ celi", Kind: Select, Default: "standard", Options: []view.Option{
		{Value: "standard", Label: "Standardowa"}, {Value: "solitary", Label: "Izolatka"},
	}},
	{Name: "has_window", Label: "Okno", Kind: Select, Coerce: AsBool, Default: "true", Options: []view.Option{
		{Value: "true", Label: "Tak"}, {Value: "false", Label: "Nie"},
	}},
}

func TestPrefillRoundTripIsUnchanged(t *testing.T) {
	rec := domain.Record{
		"id":            float64(12),
		"cell_code":     "A-101",
		"cell_block_id": float64(3),
		"floor_number":  float64(1),
		"capacity":      float64(2),
		"cell_type":     "solitary",
		"has_window":    false,
		"block_name":    "Blok A",
	}

	values := Prefill(cellDefs, rec)
	assert.Equal(t, "3", values["cell_block_id"])
	assert.Equal(t, "false", values["has_window"])
	require.NoError(t, Validate(cellDefs, values))

	payload, err := Coerce(cellDefs, values)
	require.NoError(t, err)

	want := map[string]any{}
	for _, d := range cellDefs {
		want[d.Name] = rec[d.Name]
	}
	got, _ := json.Marshal(payload)
	exp, _ := json.Marshal(want)
	assert.JSONEq(t, string(exp), string(got))
}

func TestPrefillFormatsTemporalFields(t *testing.T) {
	defs := []Def{
		{Name: "visit_date", Kind: Date},
		{Name: "scheduled_start_time", Kind: Time},
		{Name: "incident_date", Kind: DateTime},
		{Name: "nationality", Kind: Text, Default: "Polish"},
	}
	values := Prefill(defs, domain.Record{
		"visit_date":           "2025-03-14T00:00:00",
		"scheduled_start_time": "10:30:00",
		"incident_date":        "2025-03-14 08:15:42",
	})
	assert.Equal(t, "2025-03-14", values["visit_date"])
	assert.Equal(t, "10:30", values["scheduled_start_time"])
	assert.Equal(t, "2025-03-14T08:15", values["incident_date"])
	assert.Equal(t, "Polish", values["nationality"])
}

func TestDefaults(t *testing.T) {
	defs := []Def{
		{Name: "a", Default: "x"},
		{Name: "b", DefaultFunc: func() string { return "today" }},
	}
	assert.Equal(t, Values{"a": "x", "b": "today"}, Defaults(defs))
}

func TestValidateRejectsMissingRequired(t *testing.T) {
	values := Defaults(cellDefs)
	values["cell_code"] = "  "

	err := Validate(cellDefs, values)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	byField := verr.ByField()
	assert.Equal(t, reasonRequired, byField["cell_code"])
	assert.Equal(t, reasonRequired, byField["cell_block_id"])
	assert.NotContains(t, byField, "floor_number")
	assert.Contains(t, err.Error(), "Kod celi")
}

func TestValidateRanges(t *testing.T) {
	values := Values{"cell_code": "A-1", "cell_block_id": "1", "floor_number": "1", "capacity": "5"}
	err := Validate(cellDefs, values)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"capacity": reasonMax}, verr.ByField())

	values["capacity"] = "0"
	require.ErrorAs(t, Validate(cellDefs, values), &verr)
	assert.Equal(t, reasonMin, verr.ByField()["capacity"])

	values["capacity"] = "dwa"
	require.ErrorAs(t, Validate(cellDefs, values), &verr)
	assert.Equal(t, reasonNumber, verr.ByField()["capacity"])

	values["capacity"] = "4"
	assert.NoError(t, Validate(cellDefs, values))
}

func TestValidateRangeAppliesToZeroDefaultInts(t *testing.T) {
	defs := []Def{{Name: "solitary_days", Label: "Dni w izolatce", Kind: Number, Coerce: AsIntOrZero, Min: "0"}}

	var verr *ValidationError
	require.ErrorAs(t, Validate(defs, Values{"solitary_days": "-5"}), &verr)
	assert.Equal(t, map[string]string{"solitary_days": reasonMin}, verr.ByField())

	assert.NoError(t, Validate(defs, Values{"solitary_days": ""}))
	assert.NoError(t, Validate(defs, Values{"solitary_days": "x"}))
	assert.NoError(t, Validate(defs, Values{"solitary_days": "3"}))
}

func TestCoercionRules(t *testing.T) {
	defs := []Def{
		{Name: "cell_id", Coerce: AsOptInt},
		{Name: "blood_type", Coerce: AsOptString},
		{Name: "salary", Coerce: AsOptFloat},
		{Name: "solitary_days", Kind: Number, Coerce: AsIntOrZero},
		{Name: "is_active", Coerce: AsBool},
		{Name: "notes", Coerce: AsString},
	}

	payload, err := Coerce(defs, Values{"cell_id": "", "blood_type": "", "salary": "", "solitary_days": "", "is_active": "true", "notes": ""})
	require.NoError(t, err)
	assert.Nil(t, payload["cell_id"])
	assert.Nil(t, payload["blood_type"])
	assert.Nil(t, payload["salary"])
	assert.Equal(t, 0, payload["solitary_days"])
	assert.Equal(t, true, payload["is_active"])
	assert.Equal(t, "", payload["notes"])

	payload, err = Coerce(defs, Values{"cell_id": "7", "blood_type": "AB-", "salary": "5200.50", "solitary_days": "x", "is_active": "false"})
	require.NoError(t, err)
	assert.Equal(t, 7, payload["cell_id"])
	assert.Equal(t, "AB-", payload["blood_type"])
	assert.Equal(t, 5200.50, payload["salary"])
	assert.Equal(t, 0, payload["solitary_days"])
	assert.Equal(t, false, payload["is_active"])
}

func TestCoerceRejectsBadInteger(t *testing.T) {
	_, err := Coerce([]Def{{Name: "role_id", Label: "Rola", Coerce: AsInt}}, Values{"role_id": "abc"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role_id", verr.Fields[0].Name)
}

func TestRenderMarksSelection(t *testing.T) {
	values := Values{"cell_block_id": "2", "cell_type": "solitary"}
	opts := map[string][]view.Option{
		"cell_block_id": {{Value: "1", Label: "Blok A"}, {Value: "2", Label: "Blok B"}},
	}
	fields := Render(cellDefs, values, opts, map[string]string{"cell_code": reasonRequired})

	require.Len(t, fields, len(cellDefs))
	assert.Equal(t, reasonRequired, fields[0].Error)
	require.Len(t, fields[1].Options, 2)
	assert.True(t, fields[1].Options[1].Selected)
	assert.False(t, fields[1].Options[0].Selected)
	assert.True(t, fields[4].Options[1].Selected)
	assert.Equal(t, "4", fields[3].Max)
}
