// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"bytes"
	"fmt"
)

const delimiter = 0x00

// AppendMetadata appends the serialized table and its 0x00 delimiter to dst.
//
// Only symbols U+0001 to U+00FF fit: each is stored as its single Latin-1 byte,
// and U+0000 would be read back as the delimiter.
func (lt LengthTable) AppendMetadata(dst []byte) ([]byte, error) {
	for _, g := range lt {
		switch {
		case g.Length < 1 || len(g.Symbols) == 0:
			return nil, fmt.Errorf("huffman: malformed group %d:%q", g.Length, string(g.Symbols))
		case g.Length > 0xff:
			return nil, fmt.Errorf("%w: code length %d", ErrFormatLimit, g.Length)
		case len(g.Symbols) > 0xff:
			return nil, fmt.Errorf("%w: %d symbols of length %d", ErrFormatLimit, len(g.Symbols), g.Length)
		}
		dst = append(dst, byte(g.Length), byte(len(g.Symbols)))
		for _, r := range g.Symbols {
			if r <= delimiter || r > 0xff {
				return nil, fmt.Errorf("%w: %q (U+%04X)", ErrUnrepresentable, r, r)
			}
			dst = append(dst, byte(r))
		}
	}
	return append(dst, delimiter), nil
}

// SplitMetadata separates a blob at its first 0x00 byte.
// The returned metadata excludes the delimiter.
func SplitMetadata(blob []byte) (meta, payload []byte, err error) {
	i := bytes.IndexByte(blob, delimiter)
	if i < 0 {
		return nil, nil, corrupt("no metadata delimiter in %d bytes", len(blob))
	}
	return blob[:i], blob[i+1:], nil
}

// ParseMetadata reads a table written by [LengthTable.AppendMetadata],
// without its trailing delimiter.
func ParseMetadata(meta []byte) (LengthTable, error) {
	if len(meta) == 0 {
		return nil, corrupt("empty metadata")
	}
	var lt LengthTable
	for i := 0; i < len(meta); {
		if i+2 > len(meta) {
			return nil, corrupt("group header at offset %d is truncated", i)
		}
		length, count := int(meta[i]), int(meta[i+1])
		i += 2
		switch {
		case length == 0 || count == 0:
			return nil, corrupt("zero length or count at offset %d", i-2)
		case length > maxCodeLen:
			return nil, corrupt("code length %d exceeds %d", length, maxCodeLen)
		case len(lt) > 0 && length <= lt[len(lt)-1].Length:
			return nil, corrupt("code length %d out of order", length)
		case i+count > len(meta):
			return nil, corrupt("group of %d symbols at offset %d runs past the metadata", count, i-2)
		}
		syms := make([]rune, count)
		for j, b := range meta[i : i+count] {
			syms[j] = rune(b)
		}
		i += count
		lt = append(lt, Group{Length: length, Symbols: syms})
	}
	return lt, nil
}
