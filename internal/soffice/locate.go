// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package soffice locates and runs the LibreOffice command-line converter.
package soffice

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Binary is the converter program name looked up on PATH.
const Binary = "soffice"

const (
	darwinPath  = "/Applications/LibreOffice.app/Contents/MacOS/soffice"
	windowsPath = `C:\Program Files\LibreOffice\program\soffice.exe`
	linuxPath   = "/usr/bin/soffice"
)

// linuxCandidates are probed in order on Linux; the first that exists wins.
var linuxCandidates = []string{
	"/usr/bin/soffice",
	"/usr/lib/libreoffice/program/soffice",
	"/snap/bin/soffice",
}

// ErrUnsupportedPlatform is returned when soffice is not on PATH and the host
// OS has no known install location.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// probe abstracts the filesystem queries made while locating the binary.
type probe interface {
	LookPath(file string) (string, error)
	Exists(path string) bool
}

type osProbe struct{}

func (osProbe) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osProbe) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// strategy is one way of finding the binary. It reports false when it has
// nothing to offer and the next strategy should be tried.
type strategy func() (string, bool)

// Locator finds the converter binary. The returned path is not checked for
// being executable; a bad path surfaces when the converter is run.
type Locator struct {
	// Configured is an explicit binary path that short-circuits every probe.
	Configured string

	goos  string
	probe probe
}

// NewLocator returns a Locator for the host OS.
func NewLocator(configured string) *Locator {
	return &Locator{Configured: configured, goos: runtime.GOOS, probe: osProbe{}}
}

func newLocator(configured, goos string, p probe) *Locator {
	return &Locator{Configured: configured, goos: goos, probe: p}
}

// Locate returns the first path offered by the configured path, the search
// path, and the platform install locations, in that order.
func (l *Locator) Locate() (string, error) {
	for _, s := range l.strategies() {
		if path, ok := s(); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w %q: install LibreOffice and add %s to PATH",
		ErrUnsupportedPlatform, l.goos, Binary)
}

func (l *Locator) strategies() []strategy {
	return []strategy{l.configured, l.searchPath, l.platform}
}

func (l *Locator) configured() (string, bool) {
	return l.Configured, l.Configured != ""
}

func (l *Locator) searchPath() (string, bool) {
	path, err := l.probe.LookPath(Binary)
	if err != nil {
		return "", false
	}
	return path, true
}

func (l *Locator) platform() (string, bool) {
	switch l.goos {
	case "darwin":
		return darwinPath, true
	case "windows":
		return windowsPath, true
	case "linux":
		for _, p := range linuxCandidates {
			if l.probe.Exists(p) {
				return p, true
			}
		}
		return linuxPath, true
	default:
		return "", false
	}
}
