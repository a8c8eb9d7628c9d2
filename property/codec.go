package property

import "github.com/vthunder/notion-docs-mcp/notion"

// Translate converts header fields into an API properties payload against
// schema. Keys missing from the schema and read-only types are dropped and
// returned in dropped. A nil schema only ever yields the title.
func Translate(schema *Schema, title string, fields []Entry) (payload map[string]any, dropped []string) {
	payload = map[string]any{}

	titleKey := "title"
	if f, ok := schema.TitleField(); ok {
		titleKey = f.Name
	}
	if title != "" {
		v, _ := Encode(Title{Text: title})
		payload[titleKey] = v
	}

	for _, e := range fields {
		if schema == nil {
			dropped = append(dropped, e.Key)
			continue
		}
		f, ok := schema.Lookup(e.Key)
		if !ok || f.Type.ReadOnly() {
			dropped = append(dropped, e.Key)
			continue
		}
		if f.Type == TypeTitle && title != "" {
			// The header title wins over a duplicate in properties.
			continue
		}
		v, ok := FromHeader(f.Type, e.Value)
		if !ok {
			dropped = append(dropped, e.Key)
			continue
		}
		enc, ok := Encode(v)
		if !ok {
			dropped = append(dropped, e.Key)
			continue
		}
		payload[f.Name] = enc
	}
	return payload, dropped
}

// SchemaOf builds a schema from a data source's property definitions.
func SchemaOf(defs notion.Properties) *Schema {
	fields := make([]Field, 0, len(defs))
	for _, def := range defs {
		t := def.Type()
		f := Field{Name: def.Name, Type: Type(t)}
		if cfg, ok := def.Value[t].(map[string]any); ok {
			for _, o := range asList(cfg["options"]) {
				if n := optionName(o); n != nil {
					f.Options = append(f.Options, *n)
				}
			}
		}
		fields = append(fields, f)
	}
	return NewSchema(fields...)
}
