package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gmi/gemtext"
	"github.com/jcorbin/gmi/internal/render"
)

const samplePage = "# Title\n" +
	"\"quoted\" -- text\n" +
	"\n" +
	"Hello *world*\n" +
	"=> gemini://a.b/c  A link\n" +
	"=> /rel\n" +
	"* item\n" +
	"> quote\n" +
	"```go\n" +
	"x := 1\n" +
	"```\n"

func scanAll(t *testing.T, src string) (lines []gemtext.Line) {
	for line, err := range gemtext.NewLines(strings.NewReader(src)).All() {
		require.NoError(t, err)
		lines = append(lines, line)
	}
	return lines
}

func TestMarkdown(t *testing.T) {
	var md render.Markdown
	for _, line := range scanAll(t, samplePage) {
		md.Add(line)
	}
	assert.Equal(t, ""+
		"# Title\n\n"+
		"\"quoted\" -- text\n\n"+
		"Hello \\*world\\*\n\n"+
		"- [A link](<gemini://a.b/c>)\n"+
		"- [/rel](</rel>)\n"+
		"\n"+
		"- item\n"+
		"\n"+
		"> quote\n"+
		"\n"+
		"```go\n"+
		"x := 1\n"+
		"```\n\n",
		string(md.Bytes()))
}

func TestMarkdown_escapes(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  string
	}{
		{"ordinal", "1. not a list\n", "1\\. not a list\n\n"},
		{"dash", "- not a list\n", "\\- not a list\n\n"},
		{"deep heading", "######## deep\n", "###### deep\n\n"},
		{"target parens", "=> /a(b) x\n", "- [x](</a%28b%29>)\n"},
		{"unclosed fence", "```\ncode\n", "```\ncode\n```\n\n"},
		{"backticks in block", "```\n  ```\n````x\n```\n", "`````\n  ```\n````x\n`````\n\n"},
		{"quote lines", "> one\n> two\n", "> one\n>\n> two\n"},
		{"ampersand", "AT&amp;T\n", "AT\\&amp;T\n\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var md render.Markdown
			for _, line := range scanAll(t, tc.in) {
				md.Add(line)
			}
			assert.Equal(t, tc.out, string(md.Bytes()))
		})
	}
}

func TestHTML(t *testing.T) {
	lines := scanAll(t, samplePage)

	var frag bytes.Buffer
	require.NoError(t, render.HTML(&frag, "", lines))
	out := frag.String()
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<p>Hello *world*</p>")
	assert.Contains(t, out, `<a href="gemini://a.b/c">A link</a>`)
	assert.Contains(t, out, `<a href="/rel">/rel</a>`)
	assert.Contains(t, out, "<blockquote>")
	assert.Contains(t, out, "x := 1")
	assert.NotContains(t, out, "<html")
	assert.NotContains(t, out, "&rdquo;", "text should not be rewritten by Smartypants")

	var page bytes.Buffer
	require.NoError(t, render.HTML(&page, "Sample", lines))
	assert.Contains(t, page.String(), "<title>Sample</title>")
	assert.Contains(t, page.String(), "<h1>Title</h1>")
}

func TestHTML_inertBlocks(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, render.HTML(&out, "", scanAll(t, ""+
		"```\n"+
		"  ```\n"+
		"# inside\n"+
		"```\n"+
		"> one\n"+
		"> two\n"+
		"AT&amp;T\n")))
	html := out.String()
	assert.Contains(t, html, "<pre><code>  ```\n# inside\n</code></pre>")
	assert.NotContains(t, html, "<h1>")
	assert.Contains(t, html, "<p>one</p>")
	assert.Contains(t, html, "<p>two</p>")
	assert.Contains(t, html, "<p>AT&amp;amp;T</p>")
}
