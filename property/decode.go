package property

import (
	"strings"
)

// Decode interprets an API property value. It returns false for unknown types.
func Decode(prop map[string]any) (Value, bool) {
	t, _ := prop["type"].(string)
	return decodeAs(Type(t), prop)
}

func decodeAs(t Type, prop map[string]any) (Value, bool) {
	raw := prop[string(t)]

	switch t {
	case TypeTitle:
		return Title{Text: plainText(raw)}, true
	case TypeRichText:
		return RichText{Text: plainText(raw)}, true
	case TypeNumber:
		return Number{Value: floatPtr(raw)}, true
	case TypeSelect:
		return Select{Name: optionName(raw)}, true
	case TypeStatus:
		return Status{Name: optionName(raw)}, true
	case TypeMultiSelect:
		var names []string
		for _, item := range asList(raw) {
			if n := optionName(item); n != nil {
				names = append(names, *n)
			}
		}
		return MultiSelect{Names: names}, true
	case TypeDate:
		return Date{Range: dateRange(raw)}, true
	case TypeCheckbox:
		b, _ := raw.(bool)
		return Checkbox{Checked: b}, true
	case TypeURL:
		return URL{Value: stringPtr(raw)}, true
	case TypeEmail:
		return Email{Value: stringPtr(raw)}, true
	case TypePhone:
		return Phone{Value: stringPtr(raw)}, true
	case TypePeople:
		var users []Person
		for _, item := range asList(raw) {
			if p, ok := person(item); ok {
				users = append(users, p)
			}
		}
		return People{Users: users}, true
	case TypeRelation:
		var ids []string
		for _, item := range asList(raw) {
			if m, ok := item.(map[string]any); ok {
				if id, ok := m["id"].(string); ok {
					ids = append(ids, id)
				}
			}
		}
		return Relation{IDs: ids}, true
	case TypeFiles:
		var files []FileRef
		for _, item := range asList(raw) {
			if f, ok := fileRef(item); ok {
				files = append(files, f)
			}
		}
		return Files{Files: files}, true
	case TypeFormula:
		return Formula{Result: unwrapTyped(raw)}, true
	case TypeRollup:
		return Rollup{Result: unwrapRollup(raw)}, true
	case TypeCreatedTime:
		s, _ := raw.(string)
		return CreatedTime{Time: s}, true
	case TypeLastEditedTime:
		s, _ := raw.(string)
		return LastEditedTime{Time: s}, true
	case TypeCreatedBy:
		p, _ := person(raw)
		return CreatedBy{User: p}, true
	case TypeLastEditedBy:
		p, _ := person(raw)
		return LastEditedBy{User: p}, true
	case TypeUniqueID:
		m, _ := raw.(map[string]any)
		prefix, _ := m["prefix"].(string)
		return UniqueID{Prefix: prefix, Number: floatPtr(m["number"])}, true
	case TypeVerification:
		m, _ := raw.(map[string]any)
		state, _ := m["state"].(string)
		return Verification{State: state}, true
	case TypeButton:
		return Button{}, true
	}
	return nil, false
}

// unwrapTyped returns the scalar of a {"type": t, t: value} wrapper, as used
// by formula results. Dates collapse to their start.
func unwrapTyped(raw any) any {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	t, _ := m["type"].(string)
	v := m[t]
	if t == "date" {
		if r := dateRange(v); r != nil {
			return r.Start
		}
		return nil
	}
	return v
}

// unwrapRollup flattens a rollup. Array rollups hold property values; each is
// decoded one level and reduced to its header form.
func unwrapRollup(raw any) any {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if t, _ := m["type"].(string); t != "array" {
		return unwrapTyped(raw)
	}
	var out []any
	for _, item := range asList(m["array"]) {
		im, ok := item.(map[string]any)
		if !ok {
			continue
		}
		v, ok := Decode(im)
		if !ok {
			continue
		}
		if hv, ok := HeaderValue(v); ok {
			out = append(out, hv)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func plainText(raw any) string {
	var b strings.Builder
	for _, item := range asList(raw) {
		if m, ok := item.(map[string]any); ok {
			if pt, ok := m["plain_text"].(string); ok {
				b.WriteString(pt)
				continue
			}
			if text, ok := m["text"].(map[string]any); ok {
				if c, ok := text["content"].(string); ok {
					b.WriteString(c)
				}
			}
		}
	}
	return b.String()
}

func asList(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	}
	return nil
}

func optionName(raw any) *string {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	name, ok := m["name"].(string)
	if !ok {
		return nil
	}
	return &name
}

func floatPtr(raw any) *float64 {
	switch n := raw.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	}
	return nil
}

func stringPtr(raw any) *string {
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	return &s
}

func dateRange(raw any) *DateRange {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	start, _ := m["start"].(string)
	if start == "" {
		return nil
	}
	r := &DateRange{Start: start}
	if end, ok := m["end"].(string); ok && end != "" {
		r.End = &end
	}
	return r
}

func person(raw any) (Person, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Person{}, false
	}
	id, _ := m["id"].(string)
	name, _ := m["name"].(string)
	if id == "" && name == "" {
		return Person{}, false
	}
	return Person{ID: id, Name: name}, true
}

func fileRef(raw any) (FileRef, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return FileRef{}, false
	}
	name, _ := m["name"].(string)
	t, _ := m["type"].(string)
	data, _ := m[t].(map[string]any)
	url, _ := data["url"].(string)
	if url == "" {
		return FileRef{}, false
	}
	return FileRef{Name: name, URL: url}, true
}
