// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Command canonhuff compresses a text file with a canonical Huffman code,
// or prints the text back out of such a file.
//
//	canonhuff notes.txt --e    # writes notes_encoded.txt
//	canonhuff notes_encoded.txt --d
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/elliotnunn/canonhuff/internal/huffman"
	"github.com/elliotnunn/canonhuff/internal/tablecache"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit status. An unknown mode is reported but is not a failure.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Error: Missing file path argument.")
		return 1
	}
	if len(args) < 2 {
		fmt.Fprintln(stderr, "Error: Missing mode argument.")
		return 1
	}

	var job func(name string) error
	switch args[1] {
	case "--e":
		job = encodeFile
	case "--d":
		cache := tablecache.New(cacheTables)
		job = func(name string) error { return decodeFile(cache, name, stdout) }
	default:
		fmt.Fprintln(stderr, "Error: Invalid mode.")
		return 0
	}

	names, err := expand(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, name := range names {
		if args[1] == "--e" && len(names) > 1 && strings.HasSuffix(name, encodedSuffix) {
			continue // output of an earlier run
		}
		if err := job(name); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

func encodeFile(name string) error {
	text, err := readText(name)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", name, err)
	}
	blob, st, err := huffman.EncodeStats(text)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if st.PadAmbiguous {
		slog.Warn("trailingPadAmbiguous", "path", name, "padBits", st.PadBits)
	}

	out := outputName(name)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if _, err := f.Write(blob); err != nil {
		f.Close()
		return fmt.Errorf("writing to file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}
	slog.Info("encoded", "path", name, "out", out,
		"symbols", st.Symbols, "distinct", st.Distinct,
		"bytesIn", len(text), "bytesOut", len(blob))
	return nil
}

func decodeFile(cache *tablecache.Cache, name string, stdout io.Writer) error {
	blob, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", name, err)
	}
	text, hit, err := cache.Decode(blob)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	slog.Debug("decoded", "path", name, "tableCacheHit", hit, "bytesIn", len(blob))
	_, err = fmt.Fprintln(stdout, text)
	return err
}
