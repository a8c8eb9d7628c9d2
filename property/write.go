package property

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/vthunder/notion-docs-mcp/notion"
)

// FromHeader coerces a header value into the variant for type t. Read-only
// and unknown types report false.
func FromHeader(t Type, raw any) (Value, bool) {
	switch t {
	case TypeTitle:
		return Title{Text: text(raw)}, true
	case TypeRichText:
		return RichText{Text: text(raw)}, true
	case TypeNumber:
		return Number{Value: toNumber(raw)}, true
	case TypeSelect:
		return Select{Name: optionalText(raw)}, true
	case TypeStatus:
		return Status{Name: optionalText(raw)}, true
	case TypeMultiSelect:
		return MultiSelect{Names: textList(raw)}, true
	case TypeDate:
		return Date{Range: toDateRange(raw)}, true
	case TypeCheckbox:
		return Checkbox{Checked: truthy(raw)}, true
	case TypeURL:
		return URL{Value: optionalText(raw)}, true
	case TypeEmail:
		return Email{Value: optionalText(raw)}, true
	case TypePhone:
		return Phone{Value: optionalText(raw)}, true
	case TypePeople:
		var users []Person
		for _, id := range textList(raw) {
			users = append(users, Person{ID: id})
		}
		return People{Users: users}, true
	case TypeRelation:
		return Relation{IDs: textList(raw)}, true
	case TypeFiles:
		var files []FileRef
		for _, u := range textList(raw) {
			files = append(files, FileRef{Name: u, URL: u})
		}
		return Files{Files: files}, true
	}
	return nil, false
}

// Encode produces the API write payload for v. Read-only variants report false.
func Encode(v Value) (map[string]any, bool) {
	switch v := v.(type) {
	case Title:
		return map[string]any{"title": notion.TextContent(v.Text)}, true
	case RichText:
		return map[string]any{"rich_text": notion.TextContent(v.Text)}, true
	case Number:
		if v.Value == nil {
			return map[string]any{"number": nil}, true
		}
		return map[string]any{"number": *v.Value}, true
	case Select:
		return map[string]any{"select": option(v.Name)}, true
	case Status:
		return map[string]any{"status": option(v.Name)}, true
	case MultiSelect:
		opts := make([]map[string]any, 0, len(v.Names))
		for _, n := range v.Names {
			opts = append(opts, map[string]any{"name": n})
		}
		return map[string]any{"multi_select": opts}, true
	case Date:
		if v.Range == nil {
			return map[string]any{"date": nil}, true
		}
		var end any
		if v.Range.End != nil {
			end = *v.Range.End
		}
		return map[string]any{"date": map[string]any{"start": v.Range.Start, "end": end}}, true
	case Checkbox:
		return map[string]any{"checkbox": v.Checked}, true
	case URL:
		return map[string]any{"url": nullable(v.Value)}, true
	case Email:
		return map[string]any{"email": nullable(v.Value)}, true
	case Phone:
		return map[string]any{"phone_number": nullable(v.Value)}, true
	case People:
		refs := make([]map[string]any, 0, len(v.Users))
		for _, u := range v.Users {
			refs = append(refs, map[string]any{"id": u.ID})
		}
		return map[string]any{"people": refs}, true
	case Relation:
		refs := make([]map[string]any, 0, len(v.IDs))
		for _, id := range v.IDs {
			refs = append(refs, map[string]any{"id": id})
		}
		return map[string]any{"relation": refs}, true
	case Files:
		refs := make([]map[string]any, 0, len(v.Files))
		for _, f := range v.Files {
			refs = append(refs, map[string]any{
				"name":     f.Name,
				"type":     "external",
				"external": map[string]any{"url": f.URL},
			})
		}
		return map[string]any{"files": refs}, true
	}
	return nil, false
}

func option(name *string) any {
	if name == nil {
		return nil
	}
	return map[string]any{"name": *name}
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// text stringifies a header scalar. YAML may hand us times, numbers or bools.
func text(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case time.Time:
		return formatTime(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return cast.ToString(raw)
}

func optionalText(raw any) *string {
	if raw == nil {
		return nil
	}
	s := text(raw)
	return &s
}

// textList treats a scalar as a one-element list.
func textList(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, text(item))
		}
		return out
	case []string:
		return v
	}
	return []string{text(raw)}
}

func toNumber(raw any) *float64 {
	if raw == nil {
		return nil
	}
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		slog.Debug("non-numeric value written to number property", "value", fmt.Sprint(raw))
		return nil
	}
	return &f
}

func toDateRange(raw any) *DateRange {
	switch v := raw.(type) {
	case nil:
		return nil
	case map[string]any:
		start := v["start"]
		if start == nil {
			return nil
		}
		r := &DateRange{Start: text(start)}
		if end, ok := v["end"]; ok && end != nil {
			e := text(end)
			r.End = &e
		}
		return r
	case DateRange:
		return &v
	}
	return &DateRange{Start: text(raw)}
}

// truthy reads a checkbox value. Boolean words are read as such, other
// non-empty strings and non-zero numbers are checked.
func truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		s := strings.TrimSpace(v)
		switch strings.ToLower(s) {
		case "yes", "on", "y":
			return true
		case "no", "off", "n":
			return false
		}
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		return s != ""
	}
	if f, err := cast.ToFloat64E(raw); err == nil {
		return f != 0
	}
	return true
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
