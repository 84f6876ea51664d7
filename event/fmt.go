package event

import (
	"fmt"
	"io"
)

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display. Produces a "Kind(Tag)" form for Start/End and a
// "Kind(literal)" form for leaves; under "%+v" the Tag part is verbose (see
// Tag.Format), a terse form otherwise, in the style of scandown's Block
// formatter.
func (ev Event) Format(f fmt.State, verb rune) {
	switch ev.Kind {
	case Start:
		io.WriteString(f, "Start(")
		ev.Tag.Format(f, verb)
		io.WriteString(f, ")")
	case End:
		io.WriteString(f, "End(")
		ev.Tag.Format(f, verb)
		io.WriteString(f, ")")
	case Text:
		fmt.Fprintf(f, "Text(%q)", ev.Literal)
	case Code:
		fmt.Fprintf(f, "Code(%q)", ev.Literal)
	case HTML:
		fmt.Fprintf(f, "Html(%q)", ev.Literal)
	case SoftBreak:
		io.WriteString(f, "SoftBreak")
	case HardBreak:
		io.WriteString(f, "HardBreak")
	case Rule:
		io.WriteString(f, "Rule")
	default:
		fmt.Fprintf(f, "InvalidKind(%d)", int(ev.Kind))
	}
}

// Format writes a textual representation of the receiver Tag. Under "%+v"
// it includes any mutable/attribute fields relevant to Type.
func (t Tag) Format(f fmt.State, verb rune) {
	verbose := f.Flag('+')
	switch t.Type {
	case Paragraph:
		io.WriteString(f, "Paragraph")
	case Heading:
		if verbose {
			fmt.Fprintf(f, "Heading level=%d", t.Level)
		} else {
			fmt.Fprintf(f, "Heading%d", t.Level)
		}
	case CodeBlock:
		if t.Fenced {
			if verbose {
				fmt.Fprintf(f, "CodeBlock fenced info=%q", t.Info)
			} else {
				io.WriteString(f, "CodeBlock(Fenced)")
			}
		} else {
			io.WriteString(f, "CodeBlock(Indented)")
		}
	case FootnoteDefinition:
		fmt.Fprintf(f, "FootnoteDefinition(%q)", t.Label)
	case BlockQuote:
		io.WriteString(f, "BlockQuote")
	case List:
		if t.Ordered {
			if verbose {
				fmt.Fprintf(f, "List ordered start=%d", t.Start)
			} else {
				io.WriteString(f, "OrderedList")
			}
		} else {
			io.WriteString(f, "List")
		}
	case Item:
		io.WriteString(f, "Item")
	case Table:
		io.WriteString(f, "Table")
	case TableHead:
		io.WriteString(f, "TableHead")
	case TableRow:
		io.WriteString(f, "TableRow")
	case TableCell:
		if verbose {
			fmt.Fprintf(f, "TableCell align=%v", t.Align)
		} else {
			io.WriteString(f, "TableCell")
		}
	case Emphasis:
		io.WriteString(f, "Emphasis")
	case Strong:
		io.WriteString(f, "Strong")
	case Link:
		if verbose {
			fmt.Fprintf(f, "Link kind=%v dest=%q title=%q", t.LinkType, t.Dest, t.Title)
		} else {
			io.WriteString(f, "Link")
		}
	case Image:
		if verbose {
			fmt.Fprintf(f, "Image kind=%v dest=%q title=%q", t.LinkType, t.Dest, t.Title)
		} else {
			io.WriteString(f, "Image")
		}
	default:
		fmt.Fprintf(f, "InvalidTag(%d)", int(t.Type))
	}
}

func (lt LinkType) String() string {
	switch lt {
	case LinkInline:
		return "Inline"
	case LinkAutolink:
		return "Autolink"
	case LinkEmail:
		return "Email"
	default:
		return fmt.Sprintf("InvalidLinkType(%d)", int(lt))
	}
}

func (a Alignment) String() string {
	switch a {
	case AlignNone:
		return "None"
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	case AlignCenter:
		return "Center"
	default:
		return fmt.Sprintf("InvalidAlignment(%d)", int(a))
	}
}
