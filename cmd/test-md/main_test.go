package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_RoundTrip(t *testing.T) {
	body := "# Title\n\n" +
		"Some **bold** text\n\n" +
		"- a\n" +
		"  - b\n\n" +
		"| A | B |\n| --- | --- |\n| 1 | 2 |\n"
	input := "---\ntitle: Doc\n---\n\n" + body

	var out bytes.Buffer
	if err := run(strings.NewReader(input), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, `"type": "table_row"`) {
		t.Errorf("encoded blocks missing table rows:\n%s", got)
	}
	if !strings.HasSuffix(got, "--- Round-trip document ---\n"+input) {
		t.Errorf("round trip mismatch:\n%s", got)
	}
}
