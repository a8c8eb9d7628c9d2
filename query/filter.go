// Package query parses filter and sort expressions such as
// "Status is Done AND Priority > 2" into query API payloads.
package query

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/vthunder/notion-docs-mcp/property"
)

type op int

const (
	opEquals op = iota
	opNotEquals
	opContains
	opGreater
	opLess
	opGreaterEq
	opLessEq
	opAfter
	opBefore
)

type pattern struct {
	re *regexp.Regexp
	op func(token string) op
}

func fixed(o op) func(string) op { return func(string) op { return o } }

// patterns are tried in order; not-equals must precede equals.
var patterns = []pattern{
	{regexp.MustCompile(`(?i)^(.+?)(?:\s*!=\s*|\s+is\s+not\s+|\s+does\s+not\s+equal\s+)(.+)$`), fixed(opNotEquals)},
	{regexp.MustCompile(`(?i)^(.+?)(?:\s*==?\s*|\s+is\s+|\s+equals\s+)(.+)$`), fixed(opEquals)},
	{regexp.MustCompile(`(?i)^(.+?)\s+contains\s+(.+)$`), fixed(opContains)},
	{regexp.MustCompile(`(?i)^(.+?)\s*(>=|<=|>|<|\s+greater\s+than\s+|\s+less\s+than\s+)\s*(.+)$`), comparison},
	{regexp.MustCompile(`(?i)^(.+?)\s+(after|before)\s+(.+)$`), func(t string) op {
		if strings.EqualFold(t, "after") {
			return opAfter
		}
		return opBefore
	}},
}

var conjunction = regexp.MustCompile(`(?i)\s+and\s+`)

func comparison(token string) op {
	switch strings.ToLower(strings.Join(strings.Fields(token), " ")) {
	case ">=":
		return opGreaterEq
	case "<=":
		return opLessEq
	case ">", "greater than":
		return opGreater
	default:
		return opLess
	}
}

// Filter parses expr into a filter payload. Leaves naming properties that
// are not in schema, or carrying values the operator cannot use, are
// dropped. It returns nil when no leaf survives.
func Filter(expr string, schema *property.Schema) map[string]any {
	var leaves []map[string]any
	for _, part := range conjunction.Split(strings.TrimSpace(expr), -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if leaf := parseLeaf(part, schema); leaf != nil {
			leaves = append(leaves, leaf)
		}
	}

	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return leaves[0]
	}
	return map[string]any{"and": leaves}
}

// parseLeaf uses the first pattern that matches with a known property name.
func parseLeaf(s string, schema *property.Schema) map[string]any {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		name, token, value := m[1], "", m[len(m)-1]
		if len(m) == 4 {
			token = m[2]
		}
		field, ok := schema.LookupFold(unquote(name))
		if !ok {
			continue
		}
		return build(field, p.op(token), unquote(value))
	}
	return nil
}

func build(f property.Field, o op, value string) map[string]any {
	switch o {
	case opEquals, opNotEquals:
		return equality(f, o == opNotEquals, value)
	case opContains:
		return contains(f, value)
	case opGreater, opLess, opGreaterEq, opLessEq:
		n, err := cast.ToFloat64E(value)
		if err != nil {
			return nil
		}
		key := "number"
		if f.Type == property.TypeUniqueID {
			key = string(property.TypeUniqueID)
		}
		return leaf(f.Name, key, map[string]any{comparisonKeys[o]: n})
	case opAfter, opBefore:
		cond := "after"
		if o == opBefore {
			cond = "before"
		}
		return dateLeaf(f, cond, value)
	}
	return nil
}

var comparisonKeys = map[op]string{
	opGreater:   "greater_than",
	opLess:      "less_than",
	opGreaterEq: "greater_than_or_equal_to",
	opLessEq:    "less_than_or_equal_to",
}

func equality(f property.Field, negate bool, value string) map[string]any {
	eq, listEq := "equals", "contains"
	if negate {
		eq, listEq = "does_not_equal", "does_not_contain"
	}

	switch f.Type {
	case property.TypeSelect, property.TypeStatus,
		property.TypeTitle, property.TypeRichText, property.TypeURL,
		property.TypeEmail, property.TypePhone, property.TypeDate:
		return leaf(f.Name, string(f.Type), map[string]any{eq: value})
	case property.TypeMultiSelect, property.TypePeople, property.TypeRelation:
		return leaf(f.Name, string(f.Type), map[string]any{listEq: value})
	case property.TypeCheckbox:
		v := strings.ToLower(value)
		return leaf(f.Name, "checkbox", map[string]any{eq: v == "true" || v == "yes"})
	case property.TypeNumber, property.TypeUniqueID:
		n, err := cast.ToFloat64E(value)
		if err != nil {
			return nil
		}
		return leaf(f.Name, string(f.Type), map[string]any{eq: n})
	case property.TypeCreatedTime, property.TypeLastEditedTime:
		return dateLeaf(f, eq, value)
	}
	return nil
}

func contains(f property.Field, value string) map[string]any {
	switch f.Type {
	case property.TypeMultiSelect, property.TypeTitle, property.TypeRichText,
		property.TypePeople, property.TypeRelation, property.TypeURL,
		property.TypeEmail, property.TypePhone:
		return leaf(f.Name, string(f.Type), map[string]any{"contains": value})
	}
	return leaf(f.Name, string(property.TypeRichText), map[string]any{"contains": value})
}

// dateLeaf builds a date condition. Creation and edit times are filtered as
// timestamps rather than properties.
func dateLeaf(f property.Field, cond, value string) map[string]any {
	switch f.Type {
	case property.TypeCreatedTime, property.TypeLastEditedTime:
		return map[string]any{
			"timestamp": string(f.Type),
			string(f.Type): map[string]any{cond: value},
		}
	}
	return leaf(f.Name, "date", map[string]any{cond: value})
}

func leaf(name, key string, cond map[string]any) map[string]any {
	return map[string]any{"property": name, key: cond}
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
