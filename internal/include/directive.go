// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package include

import (
	"fmt"
	"iter"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gogpu/shaderfx/internal/defines"
)

// Kind classifies a source line.
type Kind int

const (
	// Text is copied verbatim.
	Text Kind = iota
	// Include inlines another file.
	Include
	// Hoisted lines (#version, #extension) move to the preamble.
	Hoisted
)

// Directives must start the line; leading whitespace is not recognized.
const (
	includePrefix   = "#include"
	versionPrefix   = "#version"
	extensionPrefix = "#extension"
)

// Classify returns the kind of a line.
func Classify(line string) Kind {
	switch {
	case strings.HasPrefix(line, includePrefix):
		return Include
	case strings.HasPrefix(line, versionPrefix), strings.HasPrefix(line, extensionPrefix):
		return Hoisted
	default:
		return Text
	}
}

// KeyLookup resolves symbolic include keys.
type KeyLookup interface {
	Lookup(key string) (string, error)
}

// HeaderName extracts the bare file name from an #include line.
// A quoted name is taken between the first and the last quote; otherwise
// the second token is looked up in keys and its value is unquoted the
// same way.
func HeaderName(line string, keys KeyLookup) (string, error) {
	if name, ok := unquote(line); ok {
		return name, nil
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", fmt.Errorf("%w: no name or key in %q", defines.ErrUndefinedKey, line)
	}

	value, err := keys.Lookup(fields[1])
	if err != nil {
		return "", err
	}
	if name, ok := unquote(value); ok {
		return name, nil
	}
	return strings.TrimSpace(value), nil
}

func unquote(s string) (string, bool) {
	start := strings.IndexByte(s, '"')
	end := strings.LastIndexByte(s, '"')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start+1 : end], true
}

// Lines yields the lines of text without their line terminators.
// A trailing carriage return is stripped so CRLF files behave like LF files.
func Lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for l := range strings.Lines(text) {
			l = strings.TrimSuffix(l, "\n")
			l = strings.TrimSuffix(l, "\r")
			if !yield(l) {
				return
			}
		}
	}
}

// Decode converts raw file bytes to text. A UTF-8 or UTF-16 byte order
// mark selects the encoding and is removed; without one the bytes are
// passed through unchanged.
func Decode(raw []byte) (string, error) {
	dec := unicode.BOMOverride(encoding.Nop.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
