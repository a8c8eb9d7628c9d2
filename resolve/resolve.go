// Package resolve turns user-supplied identifiers, Notion URLs and free-text
// titles into canonical resource references.
package resolve

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/vthunder/notion-docs-mcp/notion"
)

// Kind is the kind of resource a reference points at.
type Kind string

const (
	KindUnknown    Kind = ""
	KindPage       Kind = "page"
	KindDatabase   Kind = "database"
	KindDataSource Kind = "data_source"
)

// Ref is a resolved resource reference.
type Ref struct {
	ID   string
	Kind Kind
}

var (
	hexIDRe  = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)
	uuidIDRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// notion.so or notion.site (optionally a workspace subdomain), an optional
	// workspace path segment, an optional title slug, then the ID.
	urlRe = regexp.MustCompile(`^https?://(?:[\w-]+\.)?notion\.(?:so|site)/(?:[^/?#]+/)?[^/?#]*?([0-9a-fA-F]{32}|[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})(?:[?#].*)?$`)
)

// ParseID returns the canonical hyphenated lowercase form of s when s is an
// ID (with or without hyphens) or a Notion URL embedding one.
func ParseID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if hexIDRe.MatchString(s) || uuidIDRe.MatchString(s) {
		return canonical(s)
	}
	if m := urlRe.FindStringSubmatch(s); m != nil {
		return canonical(m[1])
	}
	return "", false
}

func canonical(s string) (string, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// ShortID returns the first eight characters of an ID, for compact display.
func ShortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Match is a search hit considered during name resolution.
type Match struct {
	ID    string
	Title string
	Kind  Kind
}

// Searcher finds resources by title. kind restricts the search; KindUnknown
// searches everything.
type Searcher interface {
	SearchTitles(ctx context.Context, query string, kind Kind) ([]Match, error)
}

// PageGetter fetches a page; used to probe whether an ID is a page.
type PageGetter interface {
	GetPage(ctx context.Context, pageID string) (*notion.Page, error)
}

// Resolver resolves identifiers and names.
type Resolver struct {
	search Searcher
	pages  PageGetter
}

// New creates a resolver.
func New(search Searcher, pages PageGetter) *Resolver {
	return &Resolver{search: search, pages: pages}
}

// Resolve resolves input to a reference of the wanted kind. IDs and URLs are
// accepted as-is (the returned Kind is the wanted kind, possibly
// KindUnknown); anything else is looked up by exact title.
func (r *Resolver) Resolve(ctx context.Context, input string, kind Kind) (Ref, error) {
	if id, ok := ParseID(input); ok {
		return Ref{ID: id, Kind: kind}, nil
	}
	name := strings.TrimSpace(input)
	if name == "" {
		return Ref{}, &NotFoundError{Input: input}
	}
	return r.ResolveName(ctx, name, kind)
}

// ResolveName looks name up through search, keeping only results whose title
// equals name exactly (case-sensitive).
func (r *Resolver) ResolveName(ctx context.Context, name string, kind Kind) (Ref, error) {
	hits, err := r.search.SearchTitles(ctx, name, kind)
	if err != nil {
		return Ref{}, fmt.Errorf("search for %q: %w", name, err)
	}

	var exact []Match
	for _, h := range hits {
		if h.Title == name {
			exact = append(exact, h)
		}
	}

	switch len(exact) {
	case 0:
		return Ref{}, &NotFoundError{Input: name, Kind: kind}
	case 1:
		return Ref{ID: exact[0].ID, Kind: exact[0].Kind}, nil
	default:
		return Ref{}, &AmbiguousError{Input: name, Candidates: exact}
	}
}

// Probe determines whether id is a page or a database by fetching it as a
// page. A 404 means it is not a page and is taken to be a database; any other
// failure is returned unchanged.
func (r *Resolver) Probe(ctx context.Context, id string) (Kind, *notion.Page, error) {
	page, err := r.pages.GetPage(ctx, id)
	if err == nil {
		return KindPage, page, nil
	}
	if notion.IsNotFound(err) {
		return KindDatabase, nil, nil
	}
	return KindUnknown, nil, err
}

// ResolveAny resolves input and, when its kind is still unknown, probes it.
// The fetched page is returned when the probe found one.
func (r *Resolver) ResolveAny(ctx context.Context, input string) (Ref, *notion.Page, error) {
	ref, err := r.Resolve(ctx, input, KindUnknown)
	if err != nil {
		return Ref{}, nil, err
	}
	if ref.Kind == KindDataSource {
		ref.Kind = KindDatabase
	}
	if ref.Kind != KindUnknown {
		return ref, nil, nil
	}
	kind, page, err := r.Probe(ctx, ref.ID)
	if err != nil {
		return Ref{}, nil, err
	}
	ref.Kind = kind
	return ref, page, nil
}
