package ops

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/vthunder/notion-docs-mcp/property"
)

// Schema actions.
const (
	SchemaView   = "view"
	SchemaAdd    = "add"
	SchemaRemove = "remove"
	SchemaRename = "rename"
)

// addableTypes are the property types a schema add may create.
var addableTypes = []any{
	string(property.TypeRichText), string(property.TypeNumber), string(property.TypeSelect),
	string(property.TypeMultiSelect), string(property.TypeStatus), string(property.TypeDate),
	string(property.TypeCheckbox), string(property.TypeURL), string(property.TypeEmail),
	string(property.TypePhone), string(property.TypePeople), string(property.TypeFiles),
	string(property.TypeCreatedTime), string(property.TypeCreatedBy),
	string(property.TypeLastEditedTime), string(property.TypeLastEditedBy),
}

// SchemaRequest views or changes a database schema.
type SchemaRequest struct {
	Database string   `json:"database"`
	Action   string   `json:"action"`
	Property string   `json:"property"`
	Type     string   `json:"type"`
	NewName  string   `json:"new_name"`
	Options  []string `json:"options"`
}

// Validate checks that the arguments the action needs are present.
func (r SchemaRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Database, validation.Required),
		validation.Field(&r.Action, validation.Required, validation.In(SchemaView, SchemaAdd, SchemaRemove, SchemaRename)),
		validation.Field(&r.Property, validation.When(r.Action != SchemaView, validation.Required)),
		validation.Field(&r.Type, validation.When(r.Action == SchemaAdd, validation.Required, validation.In(addableTypes...))),
		validation.Field(&r.NewName, validation.When(r.Action == SchemaRename, validation.Required)),
	)
}

// Schema runs a schema action on a database's primary data source.
func (s *Service) Schema(ctx context.Context, req SchemaRequest) (string, error) {
	req.Action = strings.ToLower(strings.TrimSpace(req.Action))
	if req.Action == "" {
		req.Action = SchemaView
	}
	if err := req.Validate(); err != nil {
		return "", invalidArgs(err, "view needs database; add needs property and type; remove needs property; rename needs property and new_name.")
	}

	db, ds, err := s.resolveDatabase(ctx, req.Database)
	if err != nil {
		return "", err
	}
	schema := property.SchemaOf(ds.Properties)
	title := titleOrUntitled(db.PlainTitle())

	if req.Action == SchemaView {
		return renderSchema(title, schema), nil
	}

	var change map[string]any
	var done string
	switch req.Action {
	case SchemaAdd:
		if _, exists := schema.LookupFold(req.Property); exists {
			return "", invalid("property_exists", fmt.Sprintf("%q already has a property %q", title, req.Property), "Pick another name or rename the existing property.")
		}
		change = map[string]any{req.Property: map[string]any{req.Type: typeConfig(property.Type(req.Type), req.Options)}}
		done = fmt.Sprintf("Added %s property %q to %q", req.Type, req.Property, title)
	case SchemaRemove:
		f, ok := schema.LookupFold(req.Property)
		if !ok {
			return "", unknownProperty(title, req.Property, schema)
		}
		if f.Type == property.TypeTitle {
			return "", invalid("title_property", "the title property cannot be removed", "Rename it instead.")
		}
		change = map[string]any{f.Name: nil}
		done = fmt.Sprintf("Removed property %q from %q", f.Name, title)
	case SchemaRename:
		f, ok := schema.LookupFold(req.Property)
		if !ok {
			return "", unknownProperty(title, req.Property, schema)
		}
		change = map[string]any{f.Name: map[string]any{"name": req.NewName}}
		done = fmt.Sprintf("Renamed property %q to %q in %q", f.Name, req.NewName, title)
	}

	if _, err := s.api.UpdateDataSource(ctx, ds.ID, change); err != nil {
		return "", fmt.Errorf("update schema of %q: %w", req.Database, err)
	}
	return done, nil
}

func typeConfig(t property.Type, options []string) map[string]any {
	cfg := map[string]any{}
	if t == property.TypeSelect || t == property.TypeMultiSelect {
		opts := make([]map[string]any, 0, len(options))
		for _, o := range options {
			if o = strings.TrimSpace(o); o != "" {
				opts = append(opts, map[string]any{"name": o})
			}
		}
		cfg["options"] = opts
	}
	return cfg
}

func unknownProperty(db, name string, schema *property.Schema) error {
	names := make([]string, 0, len(schema.Fields()))
	for _, f := range schema.Fields() {
		names = append(names, f.Name)
	}
	return invalid("unknown_property", fmt.Sprintf("%q has no property %q", db, name), "Properties: "+strings.Join(names, ", "))
}

func renderSchema(title string, schema *property.Schema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("| Property | Type | Options |\n| --- | --- | --- |\n")
	for _, f := range schema.Fields() {
		t := string(f.Type)
		if f.Type.ReadOnly() {
			t += " (read-only)"
		}
		writeRow(&b, []string{f.Name, t, strings.Join(f.Options, ", ")})
	}
	return b.String()
}
