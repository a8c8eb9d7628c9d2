// Package markdown converts document bodies to and from Notion block trees.
//
// Blocks are a closed set of variants. Parse and Encode cover the write
// direction, Decode and Render the read direction.
package markdown

// Block is one body block. The set of implementations is closed.
type Block interface {
	isBlock()
}

type (
	// Heading levels are 1 to 3.
	Heading struct {
		Level int
		Text  RichText
	}
	Paragraph struct {
		Text     RichText
		Children []Block
	}
	BulletedItem struct {
		Text     RichText
		Children []Block
	}
	NumberedItem struct {
		Text     RichText
		Children []Block
	}
	ToDo struct {
		Text     RichText
		Checked  bool
		Children []Block
	}
	Quote struct {
		Text     RichText
		Children []Block
	}
	Callout struct {
		Icon     string
		Text     RichText
		Children []Block
	}
	Toggle struct {
		Text     RichText
		Children []Block
	}
	Code struct {
		Language string
		Text     string
	}
	Divider struct{}
	// Table rows are cells of rich text; the first row is the header when
	// HasHeader is set.
	Table struct {
		Rows      [][]RichText
		HasHeader bool
	}
	ChildPage struct {
		ID    string
		Title string
	}
	LinkToPage struct {
		ID string
	}
	// Media covers files and link previews: image, video, audio, file, pdf,
	// bookmark, embed and link_preview.
	Media struct {
		Kind    string
		URL     string
		Caption RichText
	}
	Equation struct {
		Expression string
	}
	// Container is a layout block whose content is its children, such as
	// columns and synced blocks.
	Container struct {
		Kind     string
		Children []Block
	}
	// Omitted blocks have no textual form, such as a table of contents.
	Omitted struct {
		Kind string
	}
	Unsupported struct {
		Kind string
	}
)

func (Heading) isBlock()      {}
func (Paragraph) isBlock()    {}
func (BulletedItem) isBlock() {}
func (NumberedItem) isBlock() {}
func (ToDo) isBlock()         {}
func (Quote) isBlock()        {}
func (Callout) isBlock()      {}
func (Toggle) isBlock()       {}
func (Code) isBlock()         {}
func (Divider) isBlock()      {}
func (Table) isBlock()        {}
func (ChildPage) isBlock()    {}
func (LinkToPage) isBlock()   {}
func (Media) isBlock()        {}
func (Equation) isBlock()     {}
func (Container) isBlock()    {}
func (Omitted) isBlock()      {}
func (Unsupported) isBlock()  {}
