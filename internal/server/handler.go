// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/mdconvert/internal/archive"
	"github.com/pdiddy/mdconvert/internal/convert"
	"github.com/pdiddy/mdconvert/internal/extras"
	"github.com/pdiddy/mdconvert/internal/history"
	"github.com/pdiddy/mdconvert/pkg/storage"
)

const archiveName = "markitdown_converted.zip"

// Handlers holds the dependencies of the interactive app's endpoints.
// history and mirror may be nil; both are conveniences off the conversion
// data path.
type Handlers struct {
	gateway    *convert.Gateway
	state      *State
	installer  *extras.Installer
	history    *history.Store
	mirror     storage.Storage
	scratchDir string
	logger     *logrus.Logger
}

// NewHandlers wires the endpoint dependencies together.
func NewHandlers(gw *convert.Gateway, installer *extras.Installer, hist *history.Store, mirror storage.Storage, scratchDir string, logger *logrus.Logger) *Handlers {
	if scratchDir == "" {
		scratchDir = "mdconvert_uploads"
	}
	return &Handlers{
		gateway:    gw,
		state:      &State{},
		installer:  installer,
		history:    hist,
		mirror:     mirror,
		scratchDir: scratchDir,
		logger:     logger,
	}
}

// Convert gathers candidates from uploads and an optional server-side folder
// and runs each through the gateway, one call per file. With nothing to
// convert it warns and leaves the stored state untouched, so previous
// results stay visible.
func (h *Handlers) Convert(c *gin.Context) {
	folder := strings.TrimSpace(c.PostForm("folder"))
	recursive := parseCheckbox(c.DefaultPostForm("recursive", "true"))

	var paths []string
	source := ""

	form, err := c.MultipartForm()
	if err == nil && form != nil && len(form.File["files"]) > 0 {
		if err := os.MkdirAll(h.scratchDir, 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Could not create scratch directory: " + err.Error()})
			return
		}
		for _, fh := range form.File["files"] {
			dst := filepath.Join(h.scratchDir, filepath.Base(fh.Filename))
			if err := c.SaveUploadedFile(fh, dst); err != nil {
				c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Could not save upload " + fh.Filename + ": " + err.Error()})
				return
			}
			paths = append(paths, dst)
		}
		source = "upload"
	}

	folderWarning := ""
	if folder != "" {
		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			folderWarning = "Folder path does not exist or is not a directory"
		} else {
			for p := range convert.Candidates(folder, nil, recursive) {
				paths = append(paths, p)
			}
			if source == "" {
				source = "folder"
			} else {
				source = "upload+folder"
			}
		}
	}

	if len(paths) == 0 {
		msg := "No files to convert"
		if folderWarning != "" {
			msg = folderWarning
		}
		c.JSON(http.StatusBadRequest, MessageResponse{Message: msg})
		return
	}

	startedAt := time.Now()
	rs := &convert.ResultSet{}
	for i, p := range paths {
		h.logger.WithFields(logrus.Fields{
			"file": p, "index": i + 1, "total": len(paths),
		}).Info("converting")
		rs.Add(p, h.gateway.Convert(p))
	}

	zipBytes, err := archive.Build(rs)
	if err != nil {
		// Keep the results; the download handler retries the build.
		h.logger.WithError(err).Warn("could not build archive")
		zipBytes = nil
	}
	h.state.SetResults(rs, zipBytes)

	resp := ConvertResponse{Succeeded: rs.Succeeded(), Total: rs.Len()}
	if h.history != nil {
		runID, err := h.history.Record(c.Request.Context(), source, startedAt, rs)
		if err != nil {
			h.logger.WithError(err).Warn("could not record run history")
		} else {
			resp.RunID = runID
		}
	}
	if h.mirror != nil {
		h.mirrorResults(c.Request.Context(), resp.RunID, rs)
	}

	h.logger.WithFields(logrus.Fields{
		"succeeded": rs.Succeeded(), "total": rs.Len(),
	}).Info("conversion finished")
	c.JSON(http.StatusOK, resp)
}

// mirrorResults copies successful outputs to the mirror backend. Best
// effort only.
func (h *Handlers) mirrorResults(ctx context.Context, runID string, rs *convert.ResultSet) {
	prefix := runID
	if prefix == "" {
		prefix = time.Now().UTC().Format("20060102-150405")
	}
	for _, entry := range rs.Entries() {
		if entry.Failed() {
			continue
		}
		name := prefix + "/" + convert.Stem(entry.Path) + ".md"
		if _, err := h.mirror.Save(ctx, name, strings.NewReader(entry.Text)); err != nil {
			h.logger.WithError(err).WithField("object", name).Warn("could not mirror output")
		}
	}
}

// Results serves the current snapshot: per-file tab content, the
// success/total summary, and the check/cross marker data.
func (h *Handlers) Results(c *gin.Context) {
	c.JSON(http.StatusOK, resultsResponse(h.state.Snapshot()))
}

// Archive serves the ZIP bundle, rebuilding it first when the state holds
// results but no archive bytes.
func (h *Handlers) Archive(c *gin.Context) {
	snap := h.state.Snapshot()
	if snap.Results == nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "No converted files yet"})
		return
	}

	data := snap.Archive
	if data == nil {
		var err error
		data, err = archive.Build(snap.Results)
		if err != nil {
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Could not create ZIP: " + err.Error()})
			return
		}
		h.state.SetArchive(snap.Results, data)
	}

	c.Header("Content-Disposition", `attachment; filename="`+archiveName+`"`)
	c.Data(http.StatusOK, "application/zip", data)
}

// InstallExtras installs optional markitdown feature sets and returns the
// captured installer output. The subprocess blocks until pip exits.
func (h *Handlers) InstallExtras(c *gin.Context) {
	var req ExtrasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	ok, output := h.installer.Install(req.Extras)
	if !ok {
		h.logger.WithField("extras", req.Extras).Warn("extras install failed")
	} else {
		h.logger.WithField("extras", req.Extras).Info("extras installed")
	}
	c.JSON(http.StatusOK, ExtrasResponse{Success: ok, Output: output})
}

// ExtrasCatalog serves the known extras groups.
func (h *Handlers) ExtrasCatalog(c *gin.Context) {
	catalog, err := extras.Catalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"extras": catalog})
}

// History serves recent conversion runs.
func (h *Handlers) History(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []history.Run{}})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: err.Error()})
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// Health is a liveness probe.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseCheckbox(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
