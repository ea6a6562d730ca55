package main

import (
	"path/filepath"
	"strings"
)

// compressedPath derives the default output path for a compressed file:
// "report.txt" becomes "report_compressed.txt".
func compressedPath(in string) string {
	ext := filepath.Ext(in)
	stem := strings.TrimSuffix(in, ext)
	return stem + "_compressed" + ext
}

// decompressedPath derives the default output path for a decompressed
// file. The extension recorded in the container wins over the input's
// own extension, so "report_compressed.txt" restored from a container
// holding ".txt" becomes "report_decompressed.txt".
func decompressedPath(in, containerExt string) string {
	ext := filepath.Ext(in)
	stem := strings.TrimSuffix(in, ext)
	stem = strings.TrimSuffix(stem, "_compressed")
	if containerExt == "" {
		containerExt = ext
	}
	return stem + "_decompressed" + containerExt
}
