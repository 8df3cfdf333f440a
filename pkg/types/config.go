// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration structures shared by the mdconvert
// front-ends.
package types

// ConverterBackend identifies how the external markitdown tool is invoked.
type ConverterBackend string

const (
	// BackendExec runs the markitdown CLI (or `python -m markitdown`)
	// directly on the host.
	BackendExec ConverterBackend = "exec"

	// BackendContainer pipes files through the markitdown container image
	// using docker or podman.
	BackendContainer ConverterBackend = "container"
)

// ConverterConfig holds settings for the conversion gateway.
type ConverterConfig struct {
	// Backend selects the invocation strategy: exec or container.
	Backend ConverterBackend `json:"backend" yaml:"backend"`

	// Binary is the markitdown executable name or path (default "markitdown").
	// Ignored by the container backend.
	Binary string `json:"binary" yaml:"binary"`

	// Python is the interpreter used when Binary is not on PATH and for
	// installing extras (default "python3").
	Python string `json:"python" yaml:"python"`

	// Image is the container image for the container backend
	// (default "markitdown:latest").
	Image string `json:"image" yaml:"image"`
}

// ServerConfig holds settings for the interactive app.
type ServerConfig struct {
	// Host is the listen address (default "0.0.0.0").
	Host string `json:"host" yaml:"host"`

	// Port is the listen port (default 8080).
	Port int `json:"port" yaml:"port"`

	// Mode is the gin run mode: debug or release.
	Mode string `json:"mode" yaml:"mode"`

	// ScratchDir is where uploaded files are written before conversion.
	// Relative paths resolve against the working directory
	// (default "mdconvert_uploads").
	ScratchDir string `json:"scratch_dir" yaml:"scratch_dir"`
}

// LogConfig holds server logging settings. The batch front-end writes plain
// lines to stdout/stderr and does not use it.
type LogConfig struct {
	// Level is the logrus level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level"`

	// File, when set, sends server logs to a rotating file instead of stdout.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// MaxSizeMB is the rotation threshold for File (default 50).
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep (default 3).
	MaxBackups int `json:"max_backups" yaml:"max_backups"`
}

// MirrorBackend identifies where converted outputs are mirrored.
type MirrorBackend string

const (
	MirrorNone  MirrorBackend = "none"
	MirrorLocal MirrorBackend = "local"
	MirrorMinio MirrorBackend = "minio"
)

// MirrorConfig holds settings for mirroring converted Markdown to a storage
// backend. Mirroring is off the conversion data path; failures are logged
// and ignored.
type MirrorConfig struct {
	// Backend selects the mirror target: none, local, or minio.
	Backend MirrorBackend `json:"backend" yaml:"backend"`

	// Path is the base directory for the local backend.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Endpoint, Bucket, AccessKey, SecretKey and UseSSL configure the MinIO
	// backend. Credentials may also come from .secrets/minio-access-key and
	// .secrets/minio-secret-key.
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl"`
}

// HistoryConfig holds settings for the optional run-history store.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// AppConfig groups the interactive app configuration.
type AppConfig struct {
	Converter ConverterConfig `json:"converter" yaml:"converter"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Mirror    MirrorConfig    `json:"mirror" yaml:"mirror"`
	History   HistoryConfig   `json:"history" yaml:"history"`
}
