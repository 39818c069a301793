/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package snapshot saves framebuffers as image files.
package snapshot

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"ray-casting/internal/raycast"
)

const (
	PNG = "png"
	BMP = "bmp"
)

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if format == BMP {
		return "image/bmp"
	}
	return "image/png"
}

// FormatFromPath picks the format from the file extension, defaulting to PNG.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return BMP
	}
	return PNG
}

func Encode(w io.Writer, fb *raycast.Framebuffer, format string) error {
	switch format {
	case PNG:
		return png.Encode(w, fb)
	case BMP:
		return bmp.Encode(w, fb)
	}
	return fmt.Errorf("unsupported snapshot format %q", format)
}

// Write saves fb to path in the format its extension names.
func Write(path string, fb *raycast.Framebuffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Encode(f, fb, FormatFromPath(path)); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	return nil
}
