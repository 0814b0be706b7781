// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/therootcompany/xz"
)

const encodedSuffix = "_encoded.txt"

// readText reads a whole file, first unwrapping gzip, bzip2 or xz
// if the contents start with one of their magic numbers.
func readText(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}

	var r io.Reader
	switch {
	case bytes.HasPrefix(data, []byte("\x1f\x8b")): // gzip
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		r = zr
	case bytes.HasPrefix(data, []byte("BZh")): // bzip2
		r = bzip2.NewReader(bytes.NewReader(data))
	case bytes.HasPrefix(data, []byte("\xfd7zXZ\x00")): // xz
		xr, err := xz.NewReader(bytes.NewReader(data), xz.DefaultDictMax)
		if err != nil {
			return "", err
		}
		r = xr
	default:
		return string(data), nil
	}

	data, err = io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// outputName puts "_encoded.txt" in place of everything after the first dot
// of the base name, once any compression suffix is gone.
func outputName(name string) string {
	dir, base := filepath.Split(name)
	base = changeSuffix(base, ".gz .gzip .bz2 .bz .xz .tgz=.tar .tbz=.tar .txz=.tar")
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return dir + base + encodedSuffix
}

func changeSuffix(s string, suffixes string) string {
	for _, rule := range strings.Split(suffixes, " ") {
		from, to, _ := strings.Cut(rule, "=")
		if strings.HasSuffix(s, from) && len(s) > len(from) {
			return s[:len(s)-len(from)] + to
		}
	}
	return s
}
