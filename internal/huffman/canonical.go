// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"fmt"
	"strings"
)

// maxCodeLen is the longest code the bit packer can write in one call.
const maxCodeLen = 64

// Code is a bit string of Len bits held in the low bits of Bits, MSB first.
type Code struct {
	Bits uint64
	Len  int
}

func (c Code) String() string {
	var b strings.Builder
	for i := c.Len - 1; i >= 0; i-- {
		b.WriteByte('0' + byte(c.Bits>>i&1))
	}
	return b.String()
}

// prefixOf reports whether c is a prefix of d.
func (c Code) prefixOf(d Code) bool {
	return c.Len <= d.Len && d.Bits>>(d.Len-c.Len) == c.Bits
}

// CodeMap maps each symbol to its canonical code.
type CodeMap map[rune]Code

// Group is the set of symbols sharing one code length.
type Group struct {
	Length  int
	Symbols []rune // ascending
}

// LengthTable lists groups in ascending length order.
// It is all a decoder needs to rebuild the codes.
type LengthTable []Group

func (lt LengthTable) symbolCount() int {
	n := 0
	for _, g := range lt {
		n += len(g.Symbols)
	}
	return n
}

func (lt LengthTable) String() string {
	var b strings.Builder
	for i, g := range lt {
		if i != 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%q", g.Length, string(g.Symbols))
	}
	return b.String()
}

// Assign derives canonical codes from lt.
//
// Codes of one length are consecutive integers. Moving to a longer group
// shifts the running code left by the difference in length. A table with a
// single symbol gets the code "1", which zero padding can never complete.
func Assign(lt LengthTable) (CodeMap, error) {
	if len(lt) == 0 {
		return nil, corrupt("empty length table")
	}
	codes := make(CodeMap, lt.symbolCount())
	if len(lt) == 1 && len(lt[0].Symbols) == 1 {
		g := lt[0]
		if g.Length != 1 {
			return nil, corrupt("lone symbol has length %d", g.Length)
		}
		codes[g.Symbols[0]] = Code{Bits: 1, Len: 1}
		return codes, nil
	}

	var code uint64
	var wrapped bool // code passed 1<<64 in a 64-bit group
	prev := lt[0].Length
	for i, g := range lt {
		switch {
		case g.Length < 1:
			return nil, corrupt("group %d has length %d", i, g.Length)
		case g.Length > maxCodeLen:
			return nil, fmt.Errorf("%w: code length %d exceeds %d", ErrFormatLimit, g.Length, maxCodeLen)
		case i > 0 && g.Length <= prev:
			return nil, corrupt("group %d length %d does not follow %d", i, g.Length, prev)
		case len(g.Symbols) == 0:
			return nil, corrupt("group %d is empty", i)
		case i > 0 && code >= 1<<prev:
			return nil, corrupt("no code space left for length %d", g.Length)
		}
		code <<= g.Length - prev
		prev = g.Length

		for _, r := range g.Symbols {
			if wrapped || g.Length < maxCodeLen && code >= 1<<g.Length {
				return nil, corrupt("length %d is oversubscribed", g.Length)
			}
			if _, dup := codes[r]; dup {
				return nil, corrupt("symbol %q appears twice", r)
			}
			codes[r] = Code{Bits: code, Len: g.Length}
			code++
			wrapped = code == 0
		}
	}
	return codes, nil
}
