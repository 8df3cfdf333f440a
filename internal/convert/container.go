// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/mdconvert/internal/container"
)

// DefaultImage is the markitdown container image used when none is configured.
const DefaultImage = "markitdown:latest"

// ContainerConverter converts documents by piping them through the
// markitdown container image. It depends on a container.Runtime (docker or
// podman) injected at construction time.
type ContainerConverter struct {
	runtime *container.Runtime
	image   string
}

// NewContainerConverter creates a converter that runs the given image with
// the given runtime. It verifies that the image exists locally before
// returning.
func NewContainerConverter(rt *container.Runtime, image string) (*ContainerConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

// Convert streams the file at path through the container and returns the
// resulting Markdown text.
func (c *ContainerConverter) Convert(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(c.image, f, &out); err != nil {
		return "", &ConversionError{Path: path, Err: err}
	}
	return out.String(), nil
}
