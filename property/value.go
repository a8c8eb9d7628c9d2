package property

// Value is a typed property value. The set of implementations is closed.
type Value interface {
	Type() Type
	isValue()
}

// Person is a user reference; Name may be empty when Notion omits it.
type Person struct {
	ID   string
	Name string
}

// DateRange is a date value. End is nil for a single date.
type DateRange struct {
	Start string  `yaml:"start" json:"start"`
	End   *string `yaml:"end,omitempty" json:"end,omitempty"`
}

// FileRef is an attached or external file.
type FileRef struct {
	Name string
	URL  string
}

type (
	Title       struct{ Text string }
	RichText    struct{ Text string }
	Number      struct{ Value *float64 }
	Select      struct{ Name *string }
	Status      struct{ Name *string }
	MultiSelect struct{ Names []string }
	Date        struct{ Range *DateRange }
	Checkbox    struct{ Checked bool }
	URL         struct{ Value *string }
	Email       struct{ Value *string }
	Phone       struct{ Value *string }
	People      struct{ Users []Person }
	Relation    struct{ IDs []string }
	Files       struct{ Files []FileRef }

	// Read-only variants.
	Formula        struct{ Result any }
	Rollup         struct{ Result any }
	CreatedTime    struct{ Time string }
	LastEditedTime struct{ Time string }
	CreatedBy      struct{ User Person }
	LastEditedBy   struct{ User Person }
	UniqueID       struct {
		Prefix string
		Number *float64
	}
	Verification struct{ State string }
	Button       struct{}
)

func (Title) Type() Type          { return TypeTitle }
func (RichText) Type() Type       { return TypeRichText }
func (Number) Type() Type         { return TypeNumber }
func (Select) Type() Type         { return TypeSelect }
func (Status) Type() Type         { return TypeStatus }
func (MultiSelect) Type() Type    { return TypeMultiSelect }
func (Date) Type() Type           { return TypeDate }
func (Checkbox) Type() Type       { return TypeCheckbox }
func (URL) Type() Type            { return TypeURL }
func (Email) Type() Type          { return TypeEmail }
func (Phone) Type() Type          { return TypePhone }
func (People) Type() Type         { return TypePeople }
func (Relation) Type() Type       { return TypeRelation }
func (Files) Type() Type          { return TypeFiles }
func (Formula) Type() Type        { return TypeFormula }
func (Rollup) Type() Type         { return TypeRollup }
func (CreatedTime) Type() Type    { return TypeCreatedTime }
func (LastEditedTime) Type() Type { return TypeLastEditedTime }
func (CreatedBy) Type() Type      { return TypeCreatedBy }
func (LastEditedBy) Type() Type   { return TypeLastEditedBy }
func (UniqueID) Type() Type       { return TypeUniqueID }
func (Verification) Type() Type   { return TypeVerification }
func (Button) Type() Type         { return TypeButton }

func (Title) isValue()          {}
func (RichText) isValue()       {}
func (Number) isValue()         {}
func (Select) isValue()         {}
func (Status) isValue()         {}
func (MultiSelect) isValue()    {}
func (Date) isValue()           {}
func (Checkbox) isValue()       {}
func (URL) isValue()            {}
func (Email) isValue()          {}
func (Phone) isValue()          {}
func (People) isValue()         {}
func (Relation) isValue()       {}
func (Files) isValue()          {}
func (Formula) isValue()        {}
func (Rollup) isValue()         {}
func (CreatedTime) isValue()    {}
func (LastEditedTime) isValue() {}
func (CreatedBy) isValue()      {}
func (LastEditedBy) isValue()   {}
func (UniqueID) isValue()       {}
func (Verification) isValue()   {}
func (Button) isValue()         {}

// Entry is one header property in document order.
type Entry struct {
	Key   string
	Value any
}
