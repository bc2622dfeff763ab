// Package preview renders elm source for the terminal, used by dry runs to show the rewritten file.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter writes elm code with optional terminal colors.
type Highlighter struct {
	color bool
	style string
}

// NewHighlighter makes a Highlighter. With color false the code is written as is.
func NewHighlighter(color bool) *Highlighter {
	return &Highlighter{color: color, style: "monokai"}
}

// Write renders code to w, prefixing every line with its number.
// Falls back to plain text if the elm lexer or the terminal formatter are not available.
func (h *Highlighter) Write(w io.Writer, code string) error {
	numbered := numberLines(code)
	if !h.color {
		_, err := io.WriteString(w, numbered)
		return err
	}

	lexer := lexers.Get("elm")
	formatter := formatters.Get("terminal256")
	if lexer == nil || formatter == nil {
		_, err := io.WriteString(w, numbered)
		return err
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(h.style)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, numbered)
	if err != nil {
		return fmt.Errorf("failed to tokenise: %w", err)
	}
	if err := formatter.Format(w, style, iterator); err != nil {
		return fmt.Errorf("failed to format: %w", err)
	}
	return nil
}

// numberLines prefixes lines with elm comments holding the line number, so the result still lexes as elm.
func numberLines(code string) string {
	lines := strings.Split(strings.TrimSuffix(code, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))
	var sb strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&sb, "{- %*d -} %s\n", width, i+1, l)
	}
	return sb.String()
}
