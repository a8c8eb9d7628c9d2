package markdown

import (
	"regexp"
	"strings"
)

const indent = "  "

var (
	headingRe     = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	numberedRe    = regexp.MustCompile(`^\d{1,3}[.)]\s+(.*)$`)
	todoRe        = regexp.MustCompile(`^[-*+]\s+\[([ xX])\]\s?(.*)$`)
	bulletRe      = regexp.MustCompile(`^[-*+]\s+(.*)$`)
	imageRe       = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]+)\)$`)
	equationRe    = regexp.MustCompile(`^\$\$(.+)\$\$$`)
	thematicRe    = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
	childPageRe   = regexp.MustCompile(`^<!--\s*child_page:.*-->$`)
	unsupportedRe = regexp.MustCompile(`^\[Unsupported: [\w-]+\]$`)
)

// Parse converts a document body into blocks. Horizontal rules have no
// block form on write and are skipped, as are child page markers and
// unsupported-block placeholders, whose blocks cannot be written.
func Parse(body string) []Block {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return parseLines(strings.Split(body, "\n"))
}

func parseLines(lines []string) []Block {
	var blocks []Block

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t")
		trimmed := strings.TrimLeft(line, " \t")

		if trimmed == "" || thematicRe.MatchString(trimmed) || childPageRe.MatchString(trimmed) || unsupportedRe.MatchString(trimmed) {
			continue
		}

		// Fenced code keeps its content verbatim.
		if strings.HasPrefix(trimmed, "```") {
			lang := strings.TrimSpace(trimmed[3:])
			var code []string
			for i+1 < len(lines) {
				i++
				if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
					break
				}
				code = append(code, lines[i])
			}
			blocks = append(blocks, Code{Language: NotionLanguage(lang), Text: strings.Join(code, "\n")})
			continue
		}

		if m := headingRe.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, Heading{Level: min(len(m[1]), 3), Text: ParseInline(m[2])})
			continue
		}

		if strings.HasPrefix(trimmed, ">") {
			quote := []string{strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))}
			for i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), ">") {
				i++
				quote = append(quote, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i]), ">")))
			}
			blocks = append(blocks, Quote{Text: ParseInline(strings.Join(quote, "\n"))})
			continue
		}

		if strings.HasPrefix(trimmed, "|") {
			rows := []string{trimmed}
			for i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), "|") {
				i++
				rows = append(rows, strings.TrimSpace(lines[i]))
			}
			if t, ok := parseTable(rows); ok {
				blocks = append(blocks, t)
			}
			continue
		}

		if m := imageRe.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, Media{Kind: "image", URL: m[2], Caption: ParseInline(m[1])})
			continue
		}

		if m := equationRe.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, Equation{Expression: strings.TrimSpace(m[1])})
			continue
		}

		// Nestable blocks own the indented lines that follow them.
		var children []Block
		if nested, n := indentedBlock(lines[i+1:]); n > 0 {
			children = parseLines(nested)
			i += n
		}

		switch {
		case todoRe.MatchString(trimmed):
			m := todoRe.FindStringSubmatch(trimmed)
			blocks = append(blocks, ToDo{Text: ParseInline(m[2]), Checked: m[1] != " ", Children: children})
		case bulletRe.MatchString(trimmed):
			m := bulletRe.FindStringSubmatch(trimmed)
			blocks = append(blocks, BulletedItem{Text: ParseInline(m[1]), Children: children})
		case numberedRe.MatchString(trimmed):
			m := numberedRe.FindStringSubmatch(trimmed)
			blocks = append(blocks, NumberedItem{Text: ParseInline(m[1]), Children: children})
		case strings.HasPrefix(trimmed, toggleMarker):
			blocks = append(blocks, Toggle{Text: ParseInline(strings.TrimPrefix(trimmed, toggleMarker)), Children: children})
		default:
			blocks = append(blocks, Paragraph{Text: ParseInline(trimmed), Children: children})
		}
	}

	return blocks
}

// indentedBlock returns the run of lines indented one level deeper than the
// current line, dedented, and how many input lines it spans. Blank lines
// inside the run are kept; trailing blank lines are not consumed.
func indentedBlock(lines []string) ([]string, int) {
	var out []string
	n := 0
	for j, l := range lines {
		if strings.TrimSpace(l) == "" {
			out = append(out, "")
			continue
		}
		if !strings.HasPrefix(l, indent) && !strings.HasPrefix(l, "\t") {
			break
		}
		if strings.HasPrefix(l, "\t") {
			out = append(out, l[1:])
		} else {
			out = append(out, l[len(indent):])
		}
		n = j + 1
	}
	return out[:min(n, len(out))], n
}

func parseTable(rows []string) (Table, bool) {
	cells := func(row string) []string {
		row = strings.TrimPrefix(strings.TrimSpace(row), "|")
		row = strings.TrimSuffix(row, "|")
		parts := strings.Split(row, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	isSeparator := func(row string) bool {
		for _, c := range row {
			if c != '|' && c != '-' && c != ':' && c != ' ' {
				return false
			}
		}
		return strings.Contains(row, "-")
	}

	var data [][]string
	hasHeader := false
	for i, row := range rows {
		if isSeparator(row) {
			if i == 1 {
				hasHeader = true
			}
			continue
		}
		data = append(data, cells(row))
	}
	if len(data) == 0 {
		return Table{}, false
	}

	width := len(data[0])
	t := Table{HasHeader: hasHeader}
	for _, row := range data {
		for len(row) < width {
			row = append(row, "")
		}
		rt := make([]RichText, width)
		for j := range rt {
			rt[j] = ParseInline(row[j])
		}
		t.Rows = append(t.Rows, rt)
	}
	return t, true
}
