// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/mdconvert/internal/convert"
)

// ResultEntry is one converted file as rendered in the UI tabs.
type ResultEntry struct {
	Name     string `json:"name"` // base name of the source file
	Stem     string `json:"stem"` // archive entry is Stem + ".md"
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`
	Failed   bool   `json:"failed"`
	Error    string `json:"error,omitempty"`
}

// ResultsResponse is the snapshot served to the UI on every refresh.
type ResultsResponse struct {
	Converted bool          `json:"converted"`
	Succeeded int           `json:"succeeded"`
	Total     int           `json:"total"`
	UpdatedAt string        `json:"updated_at,omitempty"`
	Entries   []ResultEntry `json:"entries,omitempty"`
}

// ConvertResponse summarizes a finished conversion run.
type ConvertResponse struct {
	Succeeded int    `json:"succeeded"`
	Total     int    `json:"total"`
	RunID     string `json:"run_id,omitempty"`
}

// ExtrasRequest names the extras groups to install.
type ExtrasRequest struct {
	Extras []string `json:"extras"`
}

// ExtrasResponse carries the installer outcome and its captured output.
type ExtrasResponse struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
}

// MessageResponse is a plain warning or error message.
type MessageResponse struct {
	Message string `json:"message"`
}

func resultsResponse(snap Snapshot) ResultsResponse {
	if snap.Results == nil {
		return ResultsResponse{Converted: false}
	}

	resp := ResultsResponse{
		Converted: true,
		Succeeded: snap.Results.Succeeded(),
		Total:     snap.Results.Len(),
		UpdatedAt: snap.UpdatedAt.Format(time.RFC3339),
	}
	for _, entry := range snap.Results.Entries() {
		e := ResultEntry{
			Name:   filepath.Base(entry.Path),
			Stem:   convert.Stem(entry.Path),
			Failed: entry.Failed(),
		}
		if entry.Failed() {
			e.Error = strings.TrimPrefix(entry.Text, convert.ErrorPrefix)
		} else {
			e.Markdown = entry.Text
			e.HTML = renderHTML(entry.Text)
		}
		resp.Entries = append(resp.Entries, e)
	}
	return resp
}
