package markdown

import "strings"

var languageAliases = map[string]string{
	"plaintext":  "plain text",
	"plain":      "plain text",
	"text":       "plain text",
	"txt":        "plain text",
	"js":         "javascript",
	"ts":         "typescript",
	"py":         "python",
	"rb":         "ruby",
	"sh":         "shell",
	"bash":       "shell",
	"zsh":        "shell",
	"yml":        "yaml",
	"dockerfile": "docker",
	"md":         "markdown",
	"golang":     "go",
	"rs":         "rust",
	"cs":         "c#",
	"cpp":        "c++",
	"kt":         "kotlin",
}

var notionLanguages = map[string]bool{
	"abap": true, "arduino": true, "assembly": true, "bash": true,
	"c": true, "c#": true, "c++": true, "clojure": true, "coffeescript": true,
	"css": true, "dart": true, "diff": true, "docker": true, "elixir": true,
	"elm": true, "erlang": true, "flow": true, "fortran": true, "f#": true,
	"gherkin": true, "glsl": true, "go": true, "graphql": true, "groovy": true,
	"haskell": true, "html": true, "java": true, "javascript": true, "json": true,
	"julia": true, "kotlin": true, "latex": true, "less": true, "lisp": true,
	"livescript": true, "lua": true, "makefile": true, "markdown": true,
	"markup": true, "matlab": true, "mermaid": true, "nix": true,
	"objective-c": true, "ocaml": true, "pascal": true, "perl": true,
	"php": true, "plain text": true, "powershell": true, "prolog": true,
	"protobuf": true, "python": true, "r": true, "reason": true, "ruby": true,
	"rust": true, "sass": true, "scala": true, "scheme": true, "scss": true,
	"shell": true, "sql": true, "swift": true, "typescript": true,
	"vb.net": true, "verilog": true, "vhdl": true, "visual basic": true,
	"webassembly": true, "xml": true, "yaml": true, "java/c/c++/c#": true,
}

// NotionLanguage maps a fence language hint to one of the code block
// languages the API accepts. Unknown hints become "plain text".
func NotionLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "plain text"
	}
	if mapped, ok := languageAliases[lang]; ok {
		return mapped
	}
	if notionLanguages[lang] {
		return lang
	}
	return "plain text"
}
