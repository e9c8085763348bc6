package commascan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{"empty", "", []int{}},
		{"lone comma", ",", []int{}},
		{"three items", "a, b,  c", []int{0, 3, 7}},
		{"leading spaces", "  x,y", []int{2, 4}},
		{"trailing comma", "a, ", []int{0}},
		{"empty item", "a,,b", []int{0, 3}},
		{"tab is not skipped", "a,\tb", []int{0, 2}},
		{"no commas", "hello world", []int{0}},
		{"multibyte item", "é, ü", []int{0, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Scan(tt.text))
		})
	}
}

func TestScanFrom(t *testing.T) {
	assert.Equal(t, []int64{100, 103, 107}, ScanFrom("a, b,  c", 100))
	assert.Empty(t, ScanFrom("", 5))
}

func TestScannerStates(t *testing.T) {
	s := New()
	assert.Equal(t, SkippingSpace, s.State())

	assert.True(t, s.Step(0, 'a'))
	assert.Equal(t, SeekingComma, s.State())

	assert.False(t, s.Step(1, ','))
	assert.Equal(t, SkippingSpace, s.State())

	assert.False(t, s.Step(2, ' '))
	assert.Equal(t, SkippingSpace, s.State())

	assert.Equal(t, []int{0}, s.Matches())
	assert.Equal(t, "skipping_space", s.State().String())
}

func TestScanProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-c, \t]{0,20}`).Draw(t, "text")
		got := Scan(text)

		for i, off := range got {
			if i > 0 && off <= got[i-1] {
				t.Fatalf("offsets not ascending: %v", got)
			}
			if c := text[off]; c == ' ' || c == ',' {
				t.Fatalf("offset %d lands on separator %q in %q", off, c, text)
			}
			if before := strings.TrimRight(text[:off], " "); before != "" && !strings.HasSuffix(before, ",") {
				t.Fatalf("offset %d in %q does not follow a comma", off, text)
			}
		}
	})
}
