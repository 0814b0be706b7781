// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elliotnunn/canonhuff/internal/huffman"
)

func TestOutputName(t *testing.T) {
	cases := []struct{ in, out string }{
		{"notes.txt", "notes_encoded.txt"},
		{"notes", "notes_encoded.txt"},
		{"dir/notes.txt", "dir/notes_encoded.txt"},
		{"dir.d/notes.tar.txt", "dir.d/notes_encoded.txt"},
		{"notes.txt.gz", "notes_encoded.txt"},
		{"notes.txt.xz", "notes_encoded.txt"},
		{".profile", ".profile_encoded.txt"},
	}
	for _, c := range cases {
		if got := outputName(c.in); got != filepath.FromSlash(c.out) && got != c.out {
			t.Errorf("outputName(%q) = %q, expected %q", c.in, got, c.out)
		}
	}
}

func TestChangeSuffix(t *testing.T) {
	cases := []struct{ s, suffixes, out string }{
		{"a.gz", ".gz", "a"},
		{".gz", ".gz", ".gz"},
		{"a.tgz", ".gz .tgz=.tar", "a.tar"},
		{"a.txt", ".gz", "a.txt"},
	}
	for _, c := range cases {
		if got := changeSuffix(c.s, c.suffixes); got != c.out {
			t.Errorf("changeSuffix(%q, %q) = %q, expected %q", c.s, c.suffixes, got, c.out)
		}
	}
}

func TestRunArguments(t *testing.T) {
	cases := []struct {
		args   []string
		status int
		stderr string
	}{
		{nil, 1, "Error: Missing file path argument.\n"},
		{[]string{"x.txt"}, 1, "Error: Missing mode argument.\n"},
		{[]string{"x.txt", "--x"}, 0, "Error: Invalid mode.\n"},
		{[]string{filepath.Join(t.TempDir(), "absent.txt"), "--e"}, 1, "Error: reading file "},
		{[]string{filepath.Join(t.TempDir(), "absent.txt"), "--d"}, 1, "Error: reading file "},
		{[]string{filepath.Join(t.TempDir(), "*.nothing"), "--e"}, 1, "Error: no files match "},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.args), func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			status := run(c.args, &stdout, &stderr)
			if status != c.status || !strings.HasPrefix(stderr.String(), c.stderr) {
				t.Errorf("got status %d and %q, expected %d and %q", status, stderr.String(), c.status, c.stderr)
			}
		})
	}
}

func TestRunRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.txt")
	const text = "hello world"
	writeFile(t, in, []byte(text))

	var stdout, stderr bytes.Buffer
	if status := run([]string{in, "--e"}, &stdout, &stderr); status != 0 {
		t.Fatalf("encode status %d: %s", status, stderr.String())
	}
	enc := filepath.Join(dir, "notes_encoded.txt")
	got, err := os.ReadFile(enc)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := huffman.Encode(text)
	if !bytes.Equal(got, want) {
		t.Errorf("expected %x in %s, got %x", want, enc, got)
	}

	if status := run([]string{enc, "--d"}, &stdout, &stderr); status != 0 {
		t.Fatalf("decode status %d: %s", status, stderr.String())
	}
	if stdout.String() != text+"\n" {
		t.Errorf("expected %q on stdout, got %q", text+"\n", stdout.String())
	}
}

func TestRunEmptyFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.txt")
	writeFile(t, in, nil)

	var stdout, stderr bytes.Buffer
	if status := run([]string{in, "--e"}, &stdout, &stderr); status != 1 {
		t.Errorf("expected status 1, got %d", status)
	}
	if _, err := os.Stat(filepath.Join(dir, "empty_encoded.txt")); !os.IsNotExist(err) {
		t.Errorf("a failed encode should not leave an output file: %v", err)
	}
}

func TestRunCorruptBlob(t *testing.T) {
	in := filepath.Join(t.TempDir(), "junk_encoded.txt")
	writeFile(t, in, []byte{1, 2, 3})

	var stdout, stderr bytes.Buffer
	if status := run([]string{in, "--d"}, &stdout, &stderr); status != 1 {
		t.Errorf("expected status 1, got %d", status)
	}
	if !strings.Contains(stderr.String(), huffman.ErrCorrupt.Error()) {
		t.Errorf("expected a corruption message, got %q", stderr.String())
	}
}

func TestRunGlob(t *testing.T) {
	dir := t.TempDir()
	texts := map[string]string{"a.txt": "abcd", "sub/b.txt": "aaaa", "sub/deeper/c.txt": "hello world"}
	for name, text := range texts {
		writeFile(t, filepath.Join(dir, name), []byte(text))
	}

	var stdout, stderr bytes.Buffer
	if status := run([]string{filepath.Join(dir, "**", "*.txt"), "--e"}, &stdout, &stderr); status != 0 {
		t.Fatalf("encode status %d: %s", status, stderr.String())
	}
	// Encoding again must skip the outputs of the first run.
	if status := run([]string{filepath.Join(dir, "**", "*.txt"), "--e"}, &stdout, &stderr); status != 0 {
		t.Fatalf("second encode status %d: %s", status, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "a_encoded_encoded.txt")); !os.IsNotExist(err) {
		t.Errorf("an earlier output was encoded again: %v", err)
	}

	if status := run([]string{filepath.Join(dir, "**", "*"+encodedSuffix), "--d"}, &stdout, &stderr); status != 0 {
		t.Fatalf("decode status %d: %s", status, stderr.String())
	}
	// Sorted match order: a, sub/b, sub/deeper/c.
	if expect := "abcd\naaaa\nhello world\n"; stdout.String() != expect {
		t.Errorf("expected %q, got %q", expect, stdout.String())
	}
}

func TestReadTextGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte("abracadabra"))
	zw.Close()

	in := filepath.Join(t.TempDir(), "spell.txt.gz")
	writeFile(t, in, buf.Bytes())
	text, err := readText(in)
	if err != nil || text != "abracadabra" {
		t.Errorf("readText = (%q, %v)", text, err)
	}
}

func TestReadTextBadXZ(t *testing.T) {
	in := filepath.Join(t.TempDir(), "bad.xz")
	writeFile(t, in, []byte("\xfd7zXZ\x00garbage"))
	if _, err := readText(in); err == nil {
		t.Error("expected an error for a damaged xz stream")
	}
}

func TestConfig(t *testing.T) {
	t.Setenv("HUFFCACHE", "")
	t.Setenv("HUFFLOG", "")
	if n := calcCacheTables(); n != 64 {
		t.Errorf("default cache size %d, expected 64", n)
	}
	if l := calcLogLevel(); l.String() != "WARN" {
		t.Errorf("default log level %v, expected WARN", l)
	}

	t.Setenv("HUFFCACHE", "5")
	t.Setenv("HUFFLOG", "debug")
	if n := calcCacheTables(); n != 5 {
		t.Errorf("cache size %d, expected 5", n)
	}
	if l := calcLogLevel(); l.String() != "DEBUG" {
		t.Errorf("log level %v, expected DEBUG", l)
	}

	for _, c := range []struct{ key, val string }{
		{"HUFFCACHE", "0"},
		{"HUFFCACHE", "lots"},
		{"HUFFLOG", "chatty"},
	} {
		t.Run(c.key+"="+c.val, func(t *testing.T) {
			t.Setenv(c.key, c.val)
			defer func() {
				if recover() == nil {
					t.Errorf("Should have panicked but did not")
				}
			}()
			calcCacheTables()
			calcLogLevel()
		})
	}
}

func writeFile(t *testing.T, name string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		t.Fatal(err)
	}
}
