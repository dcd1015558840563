// Package kat reads known-answer test vectors stored as blocks of
// "key = value" lines separated by blank lines. Binary values are hex.
package kat

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BackendStack21/ml-dsa-go/utils"
)

// ErrMissingKey is returned when a vector lacks a requested field.
var ErrMissingKey = errors.New("kat: missing key")

// maxLine bounds a single line; ML-DSA-87 messages and keys run to tens of
// kilobytes of hex.
const maxLine = 1 << 22

// Vector is one test case.
type Vector struct {
	// Line is the 1-based line number where the block starts.
	Line   int
	fields map[string]string
}

// Has reports whether key is present.
func (v Vector) Has(key string) bool {
	_, ok := v.fields[key]
	return ok
}

// String returns the raw value of key.
func (v Vector) String(key string) (string, error) {
	s, ok := v.fields[key]
	if !ok {
		return "", fmt.Errorf("%w %q (vector at line %d)", ErrMissingKey, key, v.Line)
	}
	return s, nil
}

// Bytes hex-decodes the value of key. An empty value decodes to an empty slice.
func (v Vector) Bytes(key string) ([]byte, error) {
	s, err := v.String(key)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("kat: key %q at line %d: %w", key, v.Line, err)
	}
	return b, nil
}

// Bool parses True/False in any case.
func (v Vector) Bool(key string) (bool, error) {
	s, err := v.String(key)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("kat: key %q at line %d: not a boolean: %q", key, v.Line, s)
}

// Parse reads every vector from r.
func Parse(r io.Reader) ([]Vector, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var (
		out  []Vector
		cur  Vector
		line int
	)
	flush := func() {
		if len(cur.fields) > 0 {
			out = append(out, cur)
		}
		cur = Vector{}
	}

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			flush()
			continue
		}
		if strings.HasPrefix(text, "#") {
			continue
		}
		key, val, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("kat: line %d: expected \"key = value\"", line)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("kat: line %d: empty key", line)
		}
		if cur.fields == nil {
			cur.fields = make(map[string]string)
			cur.Line = line
		}
		cur.fields[key] = strings.TrimSpace(val)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("kat: line %d: %w", line+1, err)
	}
	flush()
	return out, nil
}

// Load parses the file at path.
func Load(path string) ([]Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if err := utils.CheckLength(int(info.Size()), utils.MaxInputFileSize); err != nil {
		return nil, fmt.Errorf("kat: %s: %w", path, err)
	}
	return Parse(f)
}
