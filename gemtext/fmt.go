package gemtext

import (
	"fmt"
	"io"
)

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display. Produces a verbose "<Type attr=value>" form when
// formatted with `%+v", a terse "Type text" form otherwise.
func (line Line) Format(f fmt.State, _ rune) {
	if f.Flag('+') {
		fmt.Fprintf(f, "<%v", line.Type)
		if line.Type == Heading {
			fmt.Fprintf(f, " level=%v", line.Level)
		}
		if line.hasTarget {
			fmt.Fprintf(f, " target=%q", line.Target())
		}
		if line.hasText {
			fmt.Fprintf(f, " text=%q", line.Text())
		}
		io.WriteString(f, ">")
		return
	}

	switch line.Type {
	case Heading:
		fmt.Fprintf(f, "%v%v", line.Type, line.Level)
	default:
		fmt.Fprint(f, line.Type)
	}
	if line.hasTarget {
		fmt.Fprintf(f, " %q", line.Target())
	}
	if line.hasText {
		fmt.Fprintf(f, " %q", line.Text())
	}
}

// Format writes a type string representing the receiver code.
func (t LineType) Format(f fmt.State, _ rune) {
	io.WriteString(f, t.String())
}

func (t LineType) String() string {
	switch t {
	case noLine:
		return "None"
	case Text:
		return "Text"
	case Link:
		return "Link"
	case Heading:
		return "Heading"
	case UnorderedListItem:
		return "Item"
	case Quote:
		return "Quote"
	case PreformattingToggle:
		return "Fence"
	case PreformattedText:
		return "Pre"
	default:
		return fmt.Sprintf("InvalidLine%v", int(t))
	}
}

// Format writes the receiver as a "[start:end]" range.
func (s Slice) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "[%v:%v]", s.Start, s.End)
}
