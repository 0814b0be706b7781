// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/icza/bitio"
)

// Table is the decoder's view of a length table.
// It is immutable and safe to share between goroutines.
type Table struct {
	lengths LengthTable
	symbols map[Code]rune
	maxLen  int
}

// NewTable rebuilds the canonical codes for lt and indexes them by code.
func NewTable(lt LengthTable) (*Table, error) {
	codes, err := Assign(lt)
	if err != nil {
		return nil, err
	}
	t := &Table{lengths: lt, symbols: make(map[Code]rune, len(codes))}
	for r, c := range codes {
		t.symbols[c] = r
		t.maxLen = max(t.maxLen, c.Len)
	}
	return t, nil
}

// Lengths returns the table the codes were built from.
func (t *Table) Lengths() LengthTable { return t.lengths }

// Unpack decodes payload one bit at a time.
//
// Unmatched bits left in the final byte are pad and are dropped. Running
// past the longest code anywhere earlier means the stream is not ours.
func (t *Table) Unpack(payload []byte) (string, error) {
	var out strings.Builder
	out.Grow(2 * len(payload))

	br := bitio.NewReader(bytes.NewReader(payload))
	lastByte := 8 * (len(payload) - 1)
	var acc Code
	for pos := 0; ; pos++ {
		bit, err := br.ReadBool()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return "", err
		}

		if acc.Len == t.maxLen {
			if pos < lastByte {
				return "", corrupt("no code matches bits ending at payload bit %d", pos)
			}
			continue // pad that fell off the code tree
		}
		acc.Bits <<= 1
		if bit {
			acc.Bits |= 1
		}
		acc.Len++

		if r, ok := t.symbols[acc]; ok {
			out.WriteRune(r)
			acc = Code{}
		}
	}
	return out.String(), nil
}
