// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"slices"
)

// Frequencies counts occurrences of each rune.
type Frequencies map[rune]int

// Count tallies every rune of text. Empty text gives an empty table.
func Count(text string) Frequencies {
	freq := make(Frequencies)
	for _, r := range text {
		freq[r]++
	}
	return freq
}

// symbols returns the keys in code point order.
func (f Frequencies) symbols() []rune {
	syms := make([]rune, 0, len(f))
	for r := range f {
		syms = append(syms, r)
	}
	slices.Sort(syms)
	return syms
}
