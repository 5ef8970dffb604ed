package highlight

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter provides syntax highlighting for diff previews
type Highlighter struct {
	enabled   bool
	formatter chroma.Formatter
	style     *chroma.Style
}

// New creates a new Highlighter. Unknown style names fall back to the
// chroma default.
func New(enabled bool, styleName string) *Highlighter {
	return &Highlighter{
		enabled:   enabled,
		formatter: formatters.Get("terminal256"),
		style:     styles.Get(styleName),
	}
}

// Highlight applies syntax highlighting to a code string
func (h *Highlighter) Highlight(code, language string) string {
	if !h.enabled {
		return code
	}

	// Get lexer for the language
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	// Tokenize the code
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	// Format with colors
	var buf bytes.Buffer
	err = h.formatter.Format(&buf, h.style, iterator)
	if err != nil {
		return code
	}

	return buf.String()
}

// HighlightDiff highlights a unified diff
func (h *Highlighter) HighlightDiff(diff string) string {
	return h.Highlight(diff, "diff")
}
