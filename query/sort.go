package query

import (
	"regexp"
	"strings"

	"github.com/vthunder/notion-docs-mcp/property"
)

var sortRe = regexp.MustCompile(`(?i)^(.+?)\s+(asc|ascending|desc|descending)$`)

// Sorts parses a comma-separated list of "<name> asc|desc" entries. Entries
// that do not parse or name unknown properties are dropped; nil means no
// sort.
func Sorts(expr string, schema *property.Schema) []map[string]any {
	var out []map[string]any
	for _, part := range strings.Split(expr, ",") {
		m := sortRe.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		f, ok := schema.LookupFold(unquote(m[1]))
		if !ok {
			continue
		}
		dir := "ascending"
		if strings.HasPrefix(strings.ToLower(m[2]), "desc") {
			dir = "descending"
		}
		out = append(out, map[string]any{"property": f.Name, "direction": dir})
	}
	return out
}
