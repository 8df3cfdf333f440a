// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the conversion gateway: the boundary between
// the mdconvert front-ends and the external markitdown tool. The gateway
// turns a file path into either Markdown text or an error string; it never
// lets a single file's failure escape and abort a batch.
package convert

import (
	"fmt"
	"strings"
)

// ErrorPrefix marks a result entry that records a conversion failure instead
// of Markdown text. Successful converter output never starts with it.
const ErrorPrefix = "ERROR: "

// Converter transforms a document file into Markdown text. Different
// backends (host markitdown CLI, markitdown container image) implement this
// interface.
type Converter interface {
	// Convert reads the document at path and returns the Markdown content.
	Convert(path string) (string, error)
}

// ConversionError is the declared failure kind raised when the external
// converter rejects a file. It carries the tool's stderr so diagnostics can
// be surfaced without a stack trace.
type ConversionError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("converting %s: %v", e.Path, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Gateway wraps a Converter and folds every failure into an error-marked
// string. The two outcomes are mutually exclusive: a result either carries
// Markdown text or starts with ErrorPrefix, never both.
type Gateway struct {
	converter Converter
}

// NewGateway creates a gateway around the given converter backend.
func NewGateway(c Converter) *Gateway {
	return &Gateway{converter: c}
}

// Convert runs the document at path through the converter and returns the
// Markdown text, or an ErrorPrefix-marked string describing the failure.
// Errors are never propagated; a bad file must not abort the batch around it.
func (g *Gateway) Convert(path string) string {
	text, err := g.converter.Convert(path)
	if err != nil {
		return ErrorPrefix + err.Error()
	}
	return text
}

// IsError reports whether a gateway result records a failure.
func IsError(result string) bool {
	return strings.HasPrefix(result, ErrorPrefix)
}

// Result is one converted file: the source path and the gateway output.
type Result struct {
	Path string
	Text string
}

// Failed reports whether this entry records a conversion failure.
func (r Result) Failed() bool { return IsError(r.Text) }

// ResultSet collects gateway results in processing order. It is the source
// mapping for the archive bundle and the app's result tabs.
type ResultSet struct {
	entries []Result
}

// Add appends a result, preserving insertion order.
func (rs *ResultSet) Add(path, text string) {
	rs.entries = append(rs.entries, Result{Path: path, Text: text})
}

// Entries returns the results in processing order.
func (rs *ResultSet) Entries() []Result {
	return rs.entries
}

// Len returns the number of results.
func (rs *ResultSet) Len() int {
	return len(rs.entries)
}

// Succeeded returns the number of results that are not error entries.
func (rs *ResultSet) Succeeded() int {
	n := 0
	for _, e := range rs.entries {
		if !e.Failed() {
			n++
		}
	}
	return n
}
