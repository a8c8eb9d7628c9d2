package property

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/vthunder/notion-docs-mcp/notion"
)

func decodeProps(t *testing.T, raw string) notion.Properties {
	t.Helper()
	var props notion.Properties
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		t.Fatalf("decode properties: %v", err)
	}
	return props
}

func testSchema() *Schema {
	return NewSchema(
		Field{Name: "Name", Type: TypeTitle},
		Field{Name: "Status", Type: TypeSelect},
		Field{Name: "Stage", Type: TypeStatus},
		Field{Name: "Tags", Type: TypeMultiSelect},
		Field{Name: "Estimate", Type: TypeNumber},
		Field{Name: "Done", Type: TypeCheckbox},
		Field{Name: "Due", Type: TypeDate},
		Field{Name: "Notes", Type: TypeRichText},
		Field{Name: "Link", Type: TypeURL},
		Field{Name: "Owner", Type: TypePeople},
		Field{Name: "Related", Type: TypeRelation},
		Field{Name: "Attachments", Type: TypeFiles},
		Field{Name: "Score", Type: TypeFormula},
		Field{Name: "Created", Type: TypeCreatedTime},
	)
}

func TestToHeader_AllTypes(t *testing.T) {
	props := decodeProps(t, `{
		"Name": {"type": "title", "title": [{"plain_text": "Launch "}, {"plain_text": "plan"}]},
		"Status": {"type": "select", "select": {"name": "Done"}},
		"Tags": {"type": "multi_select", "multi_select": [{"name": "b"}, {"name": "a"}]},
		"Estimate": {"type": "number", "number": 3},
		"Ratio": {"type": "number", "number": 0.5},
		"Zero": {"type": "number", "number": 0},
		"Done": {"type": "checkbox", "checkbox": false},
		"Due": {"type": "date", "date": {"start": "2024-01-01", "end": null}},
		"Span": {"type": "date", "date": {"start": "2024-01-01", "end": "2024-01-05"}},
		"Owner": {"type": "people", "people": [{"id": "u1", "name": "Ada"}, {"id": "u2"}]},
		"Related": {"type": "relation", "relation": [{"id": "r1"}]},
		"Attachments": {"type": "files", "files": [{"name": "a.png", "type": "external", "external": {"url": "https://x/a.png"}}]},
		"Score": {"type": "formula", "formula": {"type": "number", "number": 42}},
		"Rolled": {"type": "rollup", "rollup": {"type": "array", "array": [
			{"type": "select", "select": {"name": "x"}},
			{"type": "rich_text", "rich_text": [{"plain_text": "y"}]}
		]}},
		"Ticket": {"type": "unique_id", "unique_id": {"prefix": "ENG", "number": 12}},
		"Created": {"type": "created_time", "created_time": "2024-01-01T00:00:00.000Z"},
		"Author": {"type": "created_by", "created_by": {"id": "u3"}}
	}`)

	title, entries := ToHeader(props)
	assert.Equal(t, title, "Launch plan")

	end := "2024-01-05"
	want := []Entry{
		{Key: "Status", Value: "Done"},
		{Key: "Tags", Value: []string{"b", "a"}},
		{Key: "Estimate", Value: int64(3)},
		{Key: "Ratio", Value: 0.5},
		{Key: "Zero", Value: int64(0)},
		{Key: "Done", Value: false},
		{Key: "Due", Value: "2024-01-01"},
		{Key: "Span", Value: DateRange{Start: "2024-01-01", End: &end}},
		{Key: "Owner", Value: []string{"Ada", "u2"}},
		{Key: "Related", Value: []string{"r1"}},
		{Key: "Attachments", Value: []string{"https://x/a.png"}},
		{Key: "Score", Value: int64(42)},
		{Key: "Rolled", Value: []any{"x", "y"}},
		{Key: "Ticket", Value: "ENG-12"},
		{Key: "Created", Value: "2024-01-01T00:00:00.000Z"},
		{Key: "Author", Value: "u3"},
	}
	assert.Equal(t, len(entries), len(want))
	for i := range want {
		assert.Equal(t, entries[i].Key, want[i].Key)
		assert.Equal(t, entries[i].Value, want[i].Value)
	}
}

func TestToHeader_OmitsEmpty(t *testing.T) {
	props := decodeProps(t, `{
		"Name": {"type": "title", "title": []},
		"Status": {"type": "select", "select": null},
		"Tags": {"type": "multi_select", "multi_select": []},
		"Estimate": {"type": "number", "number": null},
		"Notes": {"type": "rich_text", "rich_text": []},
		"Link": {"type": "url", "url": null},
		"Due": {"type": "date", "date": null},
		"Score": {"type": "formula", "formula": {"type": "string", "string": null}},
		"Action": {"type": "button", "button": {}}
	}`)
	title, entries := ToHeader(props)
	assert.Equal(t, title, "")
	assert.Equal(t, len(entries), 0)
}

func TestTranslate_TypeTable(t *testing.T) {
	fields := []Entry{
		{Key: "Status", Value: "Done"},
		{Key: "Stage", Value: nil},
		{Key: "Tags", Value: "solo"},
		{Key: "Estimate", Value: "2.5"},
		{Key: "Done", Value: "yes"},
		{Key: "Due", Value: map[string]any{"start": "2024-01-01"}},
		{Key: "Notes", Value: 7},
		{Key: "Link", Value: nil},
		{Key: "Owner", Value: []any{"u1", "u2"}},
		{Key: "Related", Value: "r1"},
		{Key: "Attachments", Value: "https://x/a.png"},
	}
	payload, dropped := Translate(testSchema(), "Launch", fields)
	assert.Equal(t, len(dropped), 0)

	assert.Equal(t, payload["Name"], map[string]any{"title": notion.TextContent("Launch")})
	assert.Equal(t, payload["Status"], map[string]any{"select": map[string]any{"name": "Done"}})
	assert.Equal(t, payload["Stage"], map[string]any{"status": nil})
	assert.Equal(t, payload["Tags"], map[string]any{"multi_select": []map[string]any{{"name": "solo"}}})
	assert.Equal(t, payload["Estimate"], map[string]any{"number": 2.5})
	assert.Equal(t, payload["Done"], map[string]any{"checkbox": true})
	assert.Equal(t, payload["Due"], map[string]any{"date": map[string]any{"start": "2024-01-01", "end": nil}})
	assert.Equal(t, payload["Notes"], map[string]any{"rich_text": notion.TextContent("7")})
	assert.Equal(t, payload["Link"], map[string]any{"url": nil})
	assert.Equal(t, payload["Owner"], map[string]any{"people": []map[string]any{{"id": "u1"}, {"id": "u2"}}})
	assert.Equal(t, payload["Related"], map[string]any{"relation": []map[string]any{{"id": "r1"}}})
	assert.Equal(t, payload["Attachments"], map[string]any{"files": []map[string]any{{
		"name":     "https://x/a.png",
		"type":     "external",
		"external": map[string]any{"url": "https://x/a.png"},
	}}})
}

func TestTranslate_DropRules(t *testing.T) {
	fields := []Entry{
		{Key: "Unknown", Value: "x"},
		{Key: "Score", Value: 10},
		{Key: "Created", Value: "2024-01-01"},
		{Key: "status", Value: "case differs"},
	}
	for i := 0; i < 2; i++ {
		payload, dropped := Translate(testSchema(), "", fields)
		assert.Equal(t, len(payload), 0)
		assert.Equal(t, dropped, []string{"Unknown", "Score", "Created", "status"})
	}
}

func TestTranslate_NoSchemaTitleOnly(t *testing.T) {
	payload, dropped := Translate(nil, "Child", []Entry{{Key: "Status", Value: "Done"}})
	assert.Equal(t, len(payload), 1)
	assert.Equal(t, payload["title"], map[string]any{"title": notion.TextContent("Child")})
	assert.Equal(t, dropped, []string{"Status"})
}

func TestTranslate_NonNumericClears(t *testing.T) {
	payload, _ := Translate(testSchema(), "", []Entry{{Key: "Estimate", Value: "lots"}})
	assert.Equal(t, payload["Estimate"], map[string]any{"number": nil})

	raw, err := json.Marshal(payload)
	assert.Equal(t, err, nil)
	assert.Equal(t, string(raw), `{"Estimate":{"number":null}}`)
}

func TestFromHeader_Coercion(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	v, ok := FromHeader(TypeDate, day)
	assert.Equal(t, ok, true)
	assert.Equal(t, v, Date{Range: &DateRange{Start: "2024-03-01"}})

	stamp := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	v, _ = FromHeader(TypeDate, stamp)
	assert.Equal(t, v.(Date).Range.Start, "2024-03-01T09:30:00Z")

	for raw, want := range map[any]bool{
		true: true, "false": false, "on": true, 0: false, 2: true, "": false,
		"0": false, "1": true, "FALSE": false, "no": false, "Off": false, "yes": true,
		" true ": true, "checked": true, nil: false, 0.5: true,
	} {
		v, _ := FromHeader(TypeCheckbox, raw)
		assert.Equal(t, v, Checkbox{Checked: want})
	}

	_, ok = FromHeader(TypeFormula, "x")
	assert.Equal(t, ok, false)
}

func TestRoundTrip_SelectAsStatus(t *testing.T) {
	schema := NewSchema(Field{Name: "Status", Type: TypeSelect})
	payload, _ := Translate(schema, "", []Entry{{Key: "Status", Value: "Done"}})

	enc := payload["Status"].(map[string]any)
	raw, err := json.Marshal(map[string]any{"Status": map[string]any{"type": "select", "select": enc["select"]}})
	assert.Equal(t, err, nil)

	_, entries := ToHeader(decodeProps(t, string(raw)))
	assert.Equal(t, entries, []Entry{{Key: "Status", Value: "Done"}})
}

func TestSchemaOf(t *testing.T) {
	defs := decodeProps(t, `{
		"Name": {"id": "title", "name": "Name", "type": "title", "title": {}},
		"Status": {"id": "a", "name": "Status", "type": "select", "select": {"options": [{"name": "Todo"}, {"name": "Done"}]}},
		"Total": {"id": "b", "name": "Total", "type": "formula", "formula": {"expression": "1"}}
	}`)
	s := SchemaOf(defs)
	assert.Equal(t, s.Fields(), []Field{
		{Name: "Name", Type: TypeTitle},
		{Name: "Status", Type: TypeSelect, Options: []string{"Todo", "Done"}},
		{Name: "Total", Type: TypeFormula},
	})

	f, ok := s.LookupFold("status")
	assert.Equal(t, ok, true)
	assert.Equal(t, f.Name, "Status")

	tf, _ := s.TitleField()
	assert.Equal(t, tf.Name, "Name")
}
