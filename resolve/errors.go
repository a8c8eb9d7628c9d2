package resolve

import (
	"fmt"
	"strings"
)

// NotFoundError means no resource matched the input.
type NotFoundError struct {
	Input string
	Kind  Kind
}

func (e *NotFoundError) Error() string {
	what := "resource"
	if e.Kind != KindUnknown {
		what = string(e.Kind)
	}
	return fmt.Sprintf("no %s titled %q was found", what, e.Input)
}

// AmbiguousError means more than one resource has the requested title.
type AmbiguousError struct {
	Input      string
	Candidates []Match
}

func (e *AmbiguousError) Error() string {
	ids := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		ids[i] = fmt.Sprintf("%s (%s)", c.ID, c.Kind)
	}
	return fmt.Sprintf("%d resources are titled %q: %s", len(e.Candidates), e.Input, strings.Join(ids, ", "))
}
