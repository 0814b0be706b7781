// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package huffman implements a canonical Huffman coder for text.
//
// An encoded blob is a table of code lengths followed by a packed bit stream:
//
//	metadata := (length:1 count:1 symbol:1{count})* 0x00
//	payload  := code bits, MSB first, zero-padded to a byte boundary
//
// Only the lengths travel; both sides derive identical codes from them.
// The zero padding is not self-describing. A decoder that meets pad bits
// matching the all-zero code will emit extra trailing symbols, and
// [Stats.PadAmbiguous] reports when an encoding has this problem.
//
// Moving to a longer length group shifts the running code by the difference
// in length, not by one. For tables whose lengths skip a value, such as
// 1,3,3,3,3, blobs from encoders that always shift by one decode
// differently here; those encoders produce codes that are not prefix-free.
package huffman

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrEmptyInput      = errors.New("huffman: empty input")
	ErrUnrepresentable = errors.New("huffman: symbol does not fit in one metadata byte")
	ErrFormatLimit     = errors.New("huffman: table exceeds metadata format limits")
	ErrCorrupt         = errors.New("huffman: corrupt encoding")
	ErrMissingCode     = errors.New("huffman: symbol has no code")
)

// Stats describes a finished encoding.
type Stats struct {
	Symbols      int // runes in the input
	Distinct     int
	MetadataLen  int // bytes, including the delimiter
	PayloadBits  int
	PadBits      int
	PadAmbiguous bool // pad bits will decode as extra symbols
}

// Encode compresses text into a self-describing blob.
func Encode(text string) ([]byte, error) {
	blob, _, err := EncodeStats(text)
	return blob, err
}

// EncodeStats is like [Encode] but also reports how the text was packed.
func EncodeStats(text string) ([]byte, Stats, error) {
	freq := Count(text)
	lt, err := Lengths(freq)
	if err != nil {
		return nil, Stats{}, err
	}
	codes, err := Assign(lt)
	if err != nil {
		return nil, Stats{}, err
	}
	blob, err := lt.AppendMetadata(nil)
	if err != nil {
		return nil, Stats{}, err
	}
	st := Stats{Distinct: len(freq), MetadataLen: len(blob)}
	for _, n := range freq {
		st.Symbols += n
	}

	buf := bytes.NewBuffer(blob)
	bits, err := Pack(buf, text, codes)
	if err != nil {
		return nil, Stats{}, err
	}
	st.PayloadBits = bits
	st.PadBits = (8 - bits%8) % 8
	st.PadAmbiguous = padDecodes(codes, lt, st.PadBits)
	return buf.Bytes(), st, nil
}

// padDecodes reports whether n zero bits begin with a complete code.
// The first canonical code is all zeros, so only its length matters.
func padDecodes(codes CodeMap, lt LengthTable, n int) bool {
	if len(lt) == 0 || n == 0 {
		return false
	}
	first := codes[lt[0].Symbols[0]]
	return first.Bits == 0 && first.Len <= n
}

// Decode reverses [Encode].
func Decode(blob []byte) (string, error) {
	meta, payload, err := SplitMetadata(blob)
	if err != nil {
		return "", err
	}
	lt, err := ParseMetadata(meta)
	if err != nil {
		return "", err
	}
	t, err := NewTable(lt)
	if err != nil {
		return "", err
	}
	return t.Unpack(payload)
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
