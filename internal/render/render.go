/* Package render converts classified gemtext lines into Markdown, and from
there into HTML using blackfriday.

Gemtext has no inline markup, so line text is escaped before being handed to
the Markdown parser; preformatted blocks become fenced code blocks, and runs
of link lines become lists of links.
*/
package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/russross/blackfriday"

	"github.com/jcorbin/gmi/gemtext"
)

// Markdown accumulates gemtext lines as Markdown.
//
// The zero value is ready to use.
type Markdown struct {
	buf  bytes.Buffer
	prev gemtext.LineType

	// open preformatted block, held until its closing toggle
	pre   bool
	alt   string
	block [][]byte
}

// Add appends the Markdown rendering of line.
func (md *Markdown) Add(line gemtext.Line) {
	switch md.prev {
	case gemtext.Link, gemtext.UnorderedListItem, gemtext.Quote:
		// close any list or quote run
		if line.Type != md.prev {
			md.buf.WriteByte('\n')
		} else if line.Type == gemtext.Quote {
			// one paragraph per quote line
			md.buf.WriteString(">\n")
		}
	}
	md.prev = line.Type

	switch line.Type {
	case gemtext.PreformattingToggle:
		if !md.pre {
			md.pre = true
			md.alt = ""
			if alt := strings.Fields(line.Text()); len(alt) > 0 {
				md.alt = strings.ReplaceAll(alt[0], "`", "")
			}
		} else {
			md.flushBlock()
		}

	case gemtext.PreformattedText:
		md.block = append(md.block, line.TextBytes())

	case gemtext.Heading:
		level := line.Level
		if level > 6 {
			level = 6
		}
		md.buf.WriteString(strings.Repeat("#", level) + " ")
		md.writeEscaped(line.Text())
		md.buf.WriteString("\n\n")

	case gemtext.Link:
		name := line.Text()
		if name == "" {
			name = line.Target()
		}
		md.buf.WriteString("- [")
		md.writeEscaped(name)
		md.buf.WriteString("](<")
		targetEscaper.WriteString(&md.buf, line.Target())
		md.buf.WriteString(">)\n")

	case gemtext.UnorderedListItem:
		md.buf.WriteString("- ")
		md.writeEscaped(line.Text())
		md.buf.WriteByte('\n')

	case gemtext.Quote:
		md.buf.WriteString("> ")
		md.writeEscaped(line.Text())
		md.buf.WriteByte('\n')

	default:
		if text := line.Text(); strings.TrimSpace(text) != "" {
			md.writeEscaped(text)
			md.buf.WriteString("\n\n")
		}
	}
}

// Bytes returns the Markdown rendered so far, closing any open
// preformatted block.
func (md *Markdown) Bytes() []byte {
	if md.pre {
		md.flushBlock()
		md.prev = gemtext.PreformattingToggle
	}
	return md.buf.Bytes()
}

// flushBlock writes the held preformatted block as fenced code. The fence is
// longer than any backtick run inside the block, so no block line can close
// it early.
func (md *Markdown) flushBlock() {
	n := 3
	for _, b := range md.block {
		if m := longestRun(b, '`') + 1; m > n {
			n = m
		}
	}
	fence := strings.Repeat("`", n)
	md.buf.WriteString(fence)
	md.buf.WriteString(md.alt)
	md.buf.WriteByte('\n')
	for _, b := range md.block {
		md.buf.Write(b)
		md.buf.WriteByte('\n')
	}
	md.buf.WriteString(fence)
	md.buf.WriteString("\n\n")
	md.pre, md.alt, md.block = false, "", nil
}

func longestRun(b []byte, c byte) (longest int) {
	run := 0
	for _, x := range b {
		if x != c {
			run = 0
			continue
		}
		if run++; run > longest {
			longest = run
		}
	}
	return longest
}

var targetEscaper = strings.NewReplacer(
	"<", "%3C",
	">", "%3E",
	"(", "%28",
	")", "%29",
	" ", "%20",
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	`&`, `\&`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`#`, `\#`,
	`>`, `\>`,
	`|`, `\|`,
	`~`, `\~`,
)

func (md *Markdown) writeEscaped(s string) {
	s = strings.TrimLeft(s, " \t")
	if i := leadingOrdinal(s); i > 0 {
		// keep "1. foo" from opening an ordered list
		md.buf.WriteString(s[:i])
		md.buf.WriteByte('\\')
		s = s[i:]
	} else if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		md.buf.WriteByte('\\')
	}
	markdownEscaper.WriteString(&md.buf, s)
}

func leadingOrdinal(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return i
	}
	return 0
}

const markdownExtensions = 0 |
	blackfriday.NoIntraEmphasis |
	blackfriday.FencedCode |
	blackfriday.SpaceHeadings |
	blackfriday.HeadingIDs

// HTML renders all lines into w as an HTML fragment, or as a complete page
// when title is not empty.
func HTML(w io.Writer, title string, lines []gemtext.Line) error {
	var md Markdown
	for _, line := range lines {
		md.Add(line)
	}

	// no Smartypants: gemtext text is rendered verbatim
	flags := blackfriday.UseXHTML
	if title != "" {
		flags |= blackfriday.CompletePage
	}
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: flags,
		Title: title,
	})
	out := blackfriday.Run(md.Bytes(),
		blackfriday.WithExtensions(markdownExtensions),
		blackfriday.WithRenderer(renderer))
	_, err := w.Write(out)
	return err
}
