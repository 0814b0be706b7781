// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Pack writes the code of every rune of text to w, MSB first, and zero-fills
// the last partial byte. It returns the number of code bits, excluding pad.
func Pack(w io.Writer, text string, codes CodeMap) (bits int, err error) {
	bw := bitio.NewWriter(w)
	for _, r := range text {
		c, ok := codes[r]
		if !ok {
			return bits, fmt.Errorf("%w: %q", ErrMissingCode, r)
		}
		if err := bw.WriteBits(c.Bits, uint8(c.Len)); err != nil {
			return bits, err
		}
		bits += c.Len
	}
	return bits, bw.Close()
}
