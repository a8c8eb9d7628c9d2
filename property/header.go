package property

import (
	"fmt"
	"math"

	"github.com/vthunder/notion-docs-mcp/notion"
)

// HeaderValue renders v in its header form. It returns false when the value
// is absent and must be omitted: null, empty text and empty lists. false and
// 0 are values and are kept.
func HeaderValue(v Value) (any, bool) {
	switch v := v.(type) {
	case Title:
		return v.Text, v.Text != ""
	case RichText:
		return v.Text, v.Text != ""
	case Number:
		if v.Value == nil {
			return nil, false
		}
		return number(*v.Value), true
	case Select:
		return derefString(v.Name)
	case Status:
		return derefString(v.Name)
	case MultiSelect:
		return v.Names, len(v.Names) > 0
	case Date:
		if v.Range == nil {
			return nil, false
		}
		if v.Range.End == nil {
			return v.Range.Start, true
		}
		return *v.Range, true
	case Checkbox:
		return v.Checked, true
	case URL:
		return derefString(v.Value)
	case Email:
		return derefString(v.Value)
	case Phone:
		return derefString(v.Value)
	case People:
		names := make([]string, 0, len(v.Users))
		for _, u := range v.Users {
			names = append(names, displayName(u))
		}
		return names, len(names) > 0
	case Relation:
		return v.IDs, len(v.IDs) > 0
	case Files:
		urls := make([]string, 0, len(v.Files))
		for _, f := range v.Files {
			urls = append(urls, f.URL)
		}
		return urls, len(urls) > 0
	case Formula:
		return scalar(v.Result)
	case Rollup:
		return scalar(v.Result)
	case CreatedTime:
		return v.Time, v.Time != ""
	case LastEditedTime:
		return v.Time, v.Time != ""
	case CreatedBy:
		name := displayName(v.User)
		return name, name != ""
	case LastEditedBy:
		name := displayName(v.User)
		return name, name != ""
	case UniqueID:
		if v.Number == nil {
			return nil, false
		}
		if v.Prefix == "" {
			return number(*v.Number), true
		}
		return fmt.Sprintf("%s-%v", v.Prefix, number(*v.Number)), true
	case Verification:
		return v.State, v.State != ""
	case Button:
		return nil, false
	}
	return nil, false
}

// ToHeader renders page property values in source order. The title
// property's text is returned separately and is not part of entries.
func ToHeader(props notion.Properties) (title string, entries []Entry) {
	for _, prop := range props {
		v, ok := Decode(prop.Value)
		if !ok {
			continue
		}
		if t, isTitle := v.(Title); isTitle {
			title = t.Text
			continue
		}
		hv, ok := HeaderValue(v)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: prop.Name, Value: hv})
	}
	return title, entries
}

func derefString(s *string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return *s, true
}

func displayName(p Person) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

func scalar(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case float64:
		return number(x), true
	case string:
		return x, x != ""
	case []any:
		return x, len(x) > 0
	}
	return v, true
}

// number returns integral values as int64 so they render without a decimal point.
func number(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return int64(f)
	}
	return f
}
