// Package property converts between Notion's typed property values and the
// flat key/value map carried in a document header.
//
// Every property type is a variant of Value. Reading decodes the API payload
// into a Value and renders its header form; writing coerces a header value
// into a Value and encodes the API payload. Read-only variants have no write
// encoding, so they are dropped by construction.
package property

import "strings"

// Type is a schema property type tag as used by the API.
type Type string

const (
	TypeTitle          Type = "title"
	TypeRichText       Type = "rich_text"
	TypeNumber         Type = "number"
	TypeSelect         Type = "select"
	TypeMultiSelect    Type = "multi_select"
	TypeStatus         Type = "status"
	TypeDate           Type = "date"
	TypeCheckbox       Type = "checkbox"
	TypeURL            Type = "url"
	TypeEmail          Type = "email"
	TypePhone          Type = "phone_number"
	TypePeople         Type = "people"
	TypeRelation       Type = "relation"
	TypeFiles          Type = "files"
	TypeFormula        Type = "formula"
	TypeRollup         Type = "rollup"
	TypeCreatedTime    Type = "created_time"
	TypeCreatedBy      Type = "created_by"
	TypeLastEditedTime Type = "last_edited_time"
	TypeLastEditedBy   Type = "last_edited_by"
	TypeUniqueID       Type = "unique_id"
	TypeVerification   Type = "verification"
	TypeButton         Type = "button"
)

// ReadOnly reports whether values of type t are computed by Notion and
// cannot be written.
func (t Type) ReadOnly() bool {
	switch t {
	case TypeFormula, TypeRollup, TypeCreatedTime, TypeCreatedBy,
		TypeLastEditedTime, TypeLastEditedBy, TypeUniqueID, TypeVerification, TypeButton:
		return true
	}
	return false
}

// Known reports whether t is one of the recognized type tags.
func (t Type) Known() bool {
	switch t {
	case TypeTitle, TypeRichText, TypeNumber, TypeSelect, TypeMultiSelect, TypeStatus,
		TypeDate, TypeCheckbox, TypeURL, TypeEmail, TypePhone, TypePeople, TypeRelation, TypeFiles:
		return true
	}
	return t.ReadOnly()
}

// Field is one schema entry.
type Field struct {
	Name    string
	Type    Type
	Options []string
}

// Schema is the ordered name → type description of a data source.
type Schema struct {
	fields []Field
}

// NewSchema builds a schema from fields in display order.
func NewSchema(fields ...Field) *Schema {
	return &Schema{fields: fields}
}

// Fields returns the schema entries in order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	return s.fields
}

// Lookup returns the field named exactly name.
func (s *Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// LookupFold returns the field whose name matches name case-insensitively.
// An exact match wins over a case-folded one.
func (s *Schema) LookupFold(name string) (Field, bool) {
	if f, ok := s.Lookup(name); ok {
		return f, true
	}
	for _, f := range s.Fields() {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

// TitleField returns the schema's title property.
func (s *Schema) TitleField() (Field, bool) {
	for _, f := range s.Fields() {
		if f.Type == TypeTitle {
			return f, true
		}
	}
	return Field{}, false
}
