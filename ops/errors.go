package ops

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/vthunder/notion-docs-mcp/notion"
	"github.com/vthunder/notion-docs-mcp/resolve"
)

// ValidationError is a bad request detected before any remote call.
type ValidationError struct {
	Code    string
	Message string
	Hint    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(code, message, hint string) *ValidationError {
	return &ValidationError{Code: code, Message: message, Hint: hint}
}

// invalidArgs converts ozzo validation errors into a ValidationError.
func invalidArgs(err error, hint string) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return invalid("invalid_arguments", verrs.Error(), hint)
	}
	return err
}

// BatchError reports a batch in which at least one document failed. Its
// message is the full per-document report.
type BatchError struct {
	Report string
	Failed int
	Total  int
}

func (e *BatchError) Error() string {
	return e.Report
}

// Describe renders err as a message for the caller, with a remediation hint
// where one is known.
func Describe(err error) string {
	var batch *BatchError
	if errors.As(err, &batch) {
		return batch.Report
	}

	var (
		verr      *ValidationError
		notFound  *resolve.NotFoundError
		ambiguous *resolve.AmbiguousError
		apiErr    *notion.APIError
	)
	switch {
	case errors.As(err, &verr):
		return withHint(fmt.Sprintf("Error [%s]: %s", verr.Code, verr.Message), verr.Hint)
	case errors.As(err, &notFound):
		return withHint("Not found: "+err.Error(), "Check the title, or pass the page or database ID or URL instead.")
	case errors.As(err, &ambiguous):
		return withHint("Ambiguous: "+err.Error(), "Pass one of the listed IDs instead of the title.")
	case errors.As(err, &apiErr):
		label := "Error"
		if apiErr.Status == http.StatusNotFound {
			label = "Not found"
		}
		return withHint(label+": "+err.Error(), apiHint(err))
	}
	return "Error: " + err.Error()
}

func apiHint(err error) string {
	if notion.CodeOf(err) == "validation_error" {
		return "A property value has the wrong shape for its type. Check the schema with notion_schema."
	}
	switch notion.StatusOf(err) {
	case http.StatusUnauthorized:
		return "The API token is invalid or expired. Set NOTION_API_KEY to a valid integration token."
	case http.StatusForbidden:
		return "The integration lacks access. Share the page with it under Connections."
	case http.StatusNotFound:
		return "The ID is wrong, or the page is not shared with the integration."
	case http.StatusConflict:
		return "The resource was modified concurrently. Read it again and retry."
	case http.StatusTooManyRequests:
		return "Rate limited by Notion. Wait a few seconds and retry."
	}
	return ""
}

func withHint(msg, hint string) string {
	if hint == "" {
		return msg
	}
	return msg + "\nHint: " + hint
}

// inaccessible reports whether err means the caller cannot see a resource.
func inaccessible(err error) bool {
	switch notion.StatusOf(err) {
	case http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}
