// test-md reads a document on stdin, prints the API blocks its body encodes
// to, then prints the document rebuilt from those blocks. A faithful
// round trip prints the input back.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vthunder/notion-docs-mcp/document"
	"github.com/vthunder/notion-docs-mcp/markdown"
	"github.com/vthunder/notion-docs-mcp/notion"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "test-md: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	input, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	doc, err := document.Parse(string(input))
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(markdown.Encode(markdown.Parse(doc.Body)), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(encoded))

	blocks, err := decodeTree(encoded)
	if err != nil {
		return err
	}
	doc.Body = markdown.Render(markdown.Decode(blocks))
	text, err := doc.Compose()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n--- Round-trip document ---")
	fmt.Fprint(out, text)
	return nil
}

// decodeTree reads encoded blocks back the way the API returns them, with
// nested children moved out of the type payload.
func decodeTree(data []byte) ([]notion.Block, error) {
	var blocks []notion.Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, err
	}
	for i := range blocks {
		kids, ok := blocks[i].Data["children"]
		if !ok {
			continue
		}
		raw, err := json.Marshal(kids)
		if err != nil {
			return nil, err
		}
		if blocks[i].Children, err = decodeTree(raw); err != nil {
			return nil, err
		}
		blocks[i].HasChildren = true
		delete(blocks[i].Data, "children")
	}
	return blocks, nil
}
