// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfcheck opens produced PDFs to confirm they are readable.
package pdfcheck

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageCount opens the PDF at path and returns its number of pages. A file
// that cannot be parsed, or that has no pages, is an error.
func PageCount(path string) (n int, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n = r.NumPage()
	if n == 0 {
		return 0, fmt.Errorf("%s has no pages", path)
	}
	return n, nil
}
