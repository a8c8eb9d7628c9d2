package query

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/vthunder/notion-docs-mcp/property"
)

func testSchema() *property.Schema {
	return property.NewSchema(
		property.Field{Name: "Name", Type: property.TypeTitle},
		property.Field{Name: "Status", Type: property.TypeSelect},
		property.Field{Name: "Priority", Type: property.TypeSelect},
		property.Field{Name: "Tags", Type: property.TypeMultiSelect},
		property.Field{Name: "Estimate", Type: property.TypeNumber},
		property.Field{Name: "Done", Type: property.TypeCheckbox},
		property.Field{Name: "Due Date", Type: property.TypeDate},
		property.Field{Name: "Created", Type: property.TypeCreatedTime},
		property.Field{Name: "Owner", Type: property.TypePeople},
		property.Field{Name: "Stage", Type: property.TypeStatus},
	)
}

func TestFilter_Conjunction(t *testing.T) {
	got := Filter("Status is Done AND Priority is High", testSchema())
	assert.Equal(t, got, map[string]any{"and": []map[string]any{
		{"property": "Status", "select": map[string]any{"equals": "Done"}},
		{"property": "Priority", "select": map[string]any{"equals": "High"}},
	}})
}

func TestFilter_Leaves(t *testing.T) {
	cases := []struct {
		expr string
		want map[string]any
	}{
		{"Tags contains backend", map[string]any{"property": "Tags", "multi_select": map[string]any{"contains": "backend"}}},
		{"tags = backend", map[string]any{"property": "Tags", "multi_select": map[string]any{"contains": "backend"}}},
		{"Tags != legacy", map[string]any{"property": "Tags", "multi_select": map[string]any{"does_not_contain": "legacy"}}},
		{"Status is not Done", map[string]any{"property": "Status", "select": map[string]any{"does_not_equal": "Done"}}},
		{"Stage equals \"In progress\"", map[string]any{"property": "Stage", "status": map[string]any{"equals": "In progress"}}},
		{"Done is Yes", map[string]any{"property": "Done", "checkbox": map[string]any{"equals": true}}},
		{"Done = no", map[string]any{"property": "Done", "checkbox": map[string]any{"equals": false}}},
		{"Estimate is 3", map[string]any{"property": "Estimate", "number": map[string]any{"equals": 3.0}}},
		{"Estimate >= 2", map[string]any{"property": "Estimate", "number": map[string]any{"greater_than_or_equal_to": 2.0}}},
		{"Estimate < 10", map[string]any{"property": "Estimate", "number": map[string]any{"less_than": 10.0}}},
		{"Estimate greater than 1.5", map[string]any{"property": "Estimate", "number": map[string]any{"greater_than": 1.5}}},
		{"Due Date after 2024-01-01", map[string]any{"property": "Due Date", "date": map[string]any{"after": "2024-01-01"}}},
		{"Created before 2024-02-01", map[string]any{"timestamp": "created_time", "created_time": map[string]any{"before": "2024-02-01"}}},
		{"Name contains plan", map[string]any{"property": "Name", "title": map[string]any{"contains": "plan"}}},
		{"Owner is u1", map[string]any{"property": "Owner", "people": map[string]any{"contains": "u1"}}},
		{"Status contains Do", map[string]any{"property": "Status", "rich_text": map[string]any{"contains": "Do"}}},
	}
	for _, c := range cases {
		got := Filter(c.expr, testSchema())
		if !assert.IsEqual(got, c.want) {
			t.Errorf("Filter(%q) = %v, want %v", c.expr, got, c.want)
		}
	}
}

func TestFilter_DropsUnresolvable(t *testing.T) {
	schema := testSchema()

	assert.Equal(t, Filter("Bogus is x", schema) == nil, true)
	assert.Equal(t, Filter("Estimate > lots", schema) == nil, true)
	assert.Equal(t, Filter("", schema) == nil, true)

	got := Filter("Bogus is x and Estimate > lots and Status is Done", schema)
	assert.Equal(t, got, map[string]any{"property": "Status", "select": map[string]any{"equals": "Done"}})
}

func TestSorts(t *testing.T) {
	schema := testSchema()

	assert.Equal(t, Sorts("Due Date ascending", schema), []map[string]any{
		{"property": "Due Date", "direction": "ascending"},
	})
	assert.Equal(t, Sorts("estimate DESC, Name asc", schema), []map[string]any{
		{"property": "Estimate", "direction": "descending"},
		{"property": "Name", "direction": "ascending"},
	})
	assert.Equal(t, Sorts("Bogus asc", schema) == nil, true)
	assert.Equal(t, Sorts("Name sideways", schema) == nil, true)
}
