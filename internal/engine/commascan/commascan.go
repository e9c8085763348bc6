// Package commascan finds the start of every item in a comma separated
// span of text.
//
// Items are separated by a comma followed by any number of ASCII spaces.
// Only ' ' is skipped: a tab after a comma starts the next item.
package commascan

// State is the scanner's position in the comma grammar.
type State uint8

const (
	// SeekingComma means the scanner is inside an item.
	SeekingComma State = iota
	// SkippingSpace means the scanner is between items.
	SkippingSpace
)

func (s State) String() string {
	switch s {
	case SeekingComma:
		return "seeking_comma"
	case SkippingSpace:
		return "skipping_space"
	default:
		return "unknown"
	}
}

// Scanner is an incremental two-state comma scanner.
// The zero value is not ready for use; call New.
type Scanner struct {
	state   State
	matches []int
}

// New returns a scanner positioned between items, so the first item of
// the span is reported even without a leading comma.
func New() *Scanner {
	return &Scanner{state: SkippingSpace}
}

// State returns the current state.
func (s *Scanner) State() State {
	return s.state
}

// Step feeds the byte at index i. It reports whether i starts an item.
func (s *Scanner) Step(i int, ch byte) bool {
	switch s.state {
	case SeekingComma:
		if ch == ',' {
			s.state = SkippingSpace
		}
	case SkippingSpace:
		switch ch {
		case ' ', ',':
			// still between items
		default:
			s.matches = append(s.matches, i)
			s.state = SeekingComma
			return true
		}
	}
	return false
}

// Matches returns the item offsets seen so far.
func (s *Scanner) Matches() []int {
	out := make([]int, len(s.matches))
	copy(out, s.matches)
	return out
}

// Scan returns the offset of every item start in text, relative to the
// start of text.
func Scan(text string) []int {
	s := New()
	for i := 0; i < len(text); i++ {
		s.Step(i, text[i])
	}
	return s.Matches()
}

// ScanFrom is Scan with every offset shifted by base, for spans taken
// out of a larger buffer.
func ScanFrom(text string, base int64) []int64 {
	rel := Scan(text)
	abs := make([]int64, len(rel))
	for i, off := range rel {
		abs[i] = base + int64(off)
	}
	return abs
}
