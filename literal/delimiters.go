package literal

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/mdrange"
	"github.com/npillmayer/mdrange/scanner"
)

// ErrConfiguration is returned for delimiter tables with conflicting roles
// and for incomplete tables.
var ErrConfiguration = errors.New("illegal delimiter configuration")

// --- Symbol classes --------------------------------------------------------

// Class is a set of roles a token type plays for the literal parsers.
type Class uint8

// Roles of token types. Internal delimiters denote nesting of axes, external
// delimiters wrap the symbols of a single leaf.
const (
	Blank Class = 1 << iota
	InternalOpen
	InternalClose
	ExternalOpen
	ExternalClose
	Separator
)

// Other is the class of token types without any role: leaf symbols.
const Other Class = 0

// Is is true if c has any of the roles of flags.
func (c Class) Is(flags Class) bool {
	return c&flags != 0
}

func (c Class) String() string {
	if c == Other {
		return "other"
	}
	var names []string
	for i, name := range []string{"blank", "internal-open", "internal-close",
		"external-open", "external-close", "separator"} {
		if c&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// --- Delimiter table -------------------------------------------------------

// DelimiterTable configures the token types of a literal: two mappings from
// opening to closing delimiters, a separator, and a set of blanks.
//
// Blanks, the separator and delimiters are disjoint. Internal and external
// delimiters may overlap in kind: a type may open (or close) both an axis and
// a leaf. This makes a literal locally ambiguous, which only the shape-inferring
// parser resolves. An external delimiter may close itself (like quotes); an
// internal one may not.
//
// A table must not be changed while parsers use it.
type DelimiterTable struct {
	internal  map[mdrange.TokType]*treeset.Set // open → set of closes
	external  map[mdrange.TokType]*treeset.Set
	separator mdrange.TokType
	hasSep    bool
	blanks    *treeset.Set
	classes   map[mdrange.TokType]Class
}

func tokTypeComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(mdrange.TokType)), int(b.(mdrange.TokType)))
}

// NewDelimiterTable creates an empty table.
func NewDelimiterTable() *DelimiterTable {
	return &DelimiterTable{
		internal: make(map[mdrange.TokType]*treeset.Set),
		external: make(map[mdrange.TokType]*treeset.Set),
		blanks:   treeset.NewWith(tokTypeComparator),
		classes:  make(map[mdrange.TokType]Class),
	}
}

// BraceTable returns a table for literals like "{ {1,2,3}, {4,5,6} }", as
// tokenized by scanner.GoTokenizer with option KeepBlanks. Comments are
// blanks.
func BraceTable() *DelimiterTable {
	dt := NewDelimiterTable()
	dt.MapInternalDelimiters('{', '}')
	dt.SetSeparator(',')
	for _, b := range []mdrange.TokType{' ', '\t', '\n', '\r', scanner.Comment} {
		dt.AddBlank(b)
	}
	return dt
}

// Classify returns the roles of a token type.
func (dt *DelimiterTable) Classify(t mdrange.TokType) Class {
	return dt.classes[t]
}

// Closes is true if close is an internal closing delimiter for open.
func (dt *DelimiterTable) Closes(open, close mdrange.TokType) bool {
	return closes(dt.internal, open, close)
}

// ClosesLeaf is true if close is an external closing delimiter for open.
func (dt *DelimiterTable) ClosesLeaf(open, close mdrange.TokType) bool {
	return closes(dt.external, open, close)
}

func closes(m map[mdrange.TokType]*treeset.Set, open, close mdrange.TokType) bool {
	if set, ok := m[open]; ok {
		return set.Contains(close)
	}
	return false
}

// MapInternalDelimiters adds a pair of delimiters for axis nesting.
func (dt *DelimiterTable) MapInternalDelimiters(open, close mdrange.TokType) error {
	if open == close {
		return fmt.Errorf("internal delimiter %s cannot close itself: %w", typeName(open), ErrConfiguration)
	}
	c := dt.Classify(open)
	if c.Is(Blank | Separator | InternalClose | ExternalClose) {
		return roleConflict(open, "internal open", c)
	}
	c = dt.Classify(close)
	if c.Is(Blank | Separator | InternalOpen | ExternalOpen) {
		return roleConflict(close, "internal close", c)
	}
	mapDelimiters(dt.internal, open, close)
	dt.classify()
	return nil
}

// MapExternalDelimiters adds a pair of delimiters wrapping leaves.
func (dt *DelimiterTable) MapExternalDelimiters(open, close mdrange.TokType) error {
	c := dt.Classify(open)
	if c.Is(Blank | Separator | InternalClose) || (open != close && c.Is(ExternalClose)) {
		return roleConflict(open, "external open", c)
	}
	c = dt.Classify(close)
	if c.Is(Blank | Separator | InternalOpen) || (open != close && c.Is(ExternalOpen)) {
		return roleConflict(close, "external close", c)
	}
	mapDelimiters(dt.external, open, close)
	dt.classify()
	return nil
}

func mapDelimiters(m map[mdrange.TokType]*treeset.Set, open, close mdrange.TokType) {
	set, ok := m[open]
	if !ok {
		set = treeset.NewWith(tokTypeComparator)
		m[open] = set
	}
	set.Add(close)
}

// SetSeparator sets the separator type between siblings.
func (dt *DelimiterTable) SetSeparator(t mdrange.TokType) error {
	if c := dt.Classify(t); c != Other && c != Separator {
		return roleConflict(t, "separator", c)
	}
	dt.separator, dt.hasSep = t, true
	dt.classify()
	return nil
}

// AddBlank adds a type to the set of ignorable types.
func (dt *DelimiterTable) AddBlank(t mdrange.TokType) error {
	if c := dt.Classify(t); c != Other && c != Blank {
		return roleConflict(t, "blank", c)
	}
	dt.blanks.Add(t)
	dt.classify()
	return nil
}

// RemoveBlank removes a type from the set of blanks.
func (dt *DelimiterTable) RemoveBlank(t mdrange.TokType) {
	dt.blanks.Remove(t)
	dt.classify()
}

// ClearBlanks removes all blanks.
func (dt *DelimiterTable) ClearBlanks() {
	dt.blanks.Clear()
	dt.classify()
}

// Validate checks that the table is usable for parsing: at least one pair
// of internal delimiters and a separator are needed.
func (dt *DelimiterTable) Validate() error {
	if len(dt.internal) == 0 {
		return fmt.Errorf("no internal delimiters: %w", ErrConfiguration)
	}
	if !dt.hasSep {
		return fmt.Errorf("no separator: %w", ErrConfiguration)
	}
	return nil
}

// classify re-computes the classes of all configured types.
func (dt *DelimiterTable) classify() {
	classes := make(map[mdrange.TokType]Class)
	for _, b := range dt.blanks.Values() {
		classes[b.(mdrange.TokType)] |= Blank
	}
	if dt.hasSep {
		classes[dt.separator] |= Separator
	}
	for open, set := range dt.internal {
		classes[open] |= InternalOpen
		for _, close := range set.Values() {
			classes[close.(mdrange.TokType)] |= InternalClose
		}
	}
	for open, set := range dt.external {
		classes[open] |= ExternalOpen
		for _, close := range set.Values() {
			classes[close.(mdrange.TokType)] |= ExternalClose
		}
	}
	dt.classes = classes
}

func roleConflict(t mdrange.TokType, role string, c Class) error {
	tracer().Errorf("token type %s cannot be %s, is %s", typeName(t), role, c)
	return fmt.Errorf("token type %s cannot be %s, is already %s: %w", typeName(t), role, c, ErrConfiguration)
}

func (dt *DelimiterTable) String() string {
	var b strings.Builder
	b.WriteString("DelimiterTable{")
	writePairs := func(name string, m map[mdrange.TokType]*treeset.Set) {
		opens := treeset.NewWith(tokTypeComparator)
		for open := range m {
			opens.Add(open)
		}
		for _, open := range opens.Values() {
			for _, close := range m[open.(mdrange.TokType)].Values() {
				fmt.Fprintf(&b, " %s%s…%s", name, typeName(open.(mdrange.TokType)),
					typeName(close.(mdrange.TokType)))
			}
		}
	}
	writePairs("int", dt.internal)
	writePairs("ext", dt.external)
	if dt.hasSep {
		fmt.Fprintf(&b, " sep%s", typeName(dt.separator))
	}
	for _, blank := range dt.blanks.Values() {
		fmt.Fprintf(&b, " blank%s", typeName(blank.(mdrange.TokType)))
	}
	b.WriteString(" }")
	return b.String()
}

// typeName prints printable rune types as quoted characters.
func typeName(t mdrange.TokType) string {
	if t > 0 && t <= unicode.MaxRune && unicode.IsPrint(rune(t)) {
		return fmt.Sprintf("%q", rune(t))
	}
	return fmt.Sprintf("(%d)", t)
}
