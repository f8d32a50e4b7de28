// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docpdf/internal/console"
	"github.com/pdiddy/docpdf/internal/i18n"
	"github.com/pdiddy/docpdf/internal/soffice"
	"github.com/pdiddy/docpdf/pkg/types"
)

const fakeBin = "/opt/libreoffice/soffice"

// fakeLocator returns a fixed binary path or error and counts lookups.
type fakeLocator struct {
	path  string
	err   error
	calls int
}

func (f *fakeLocator) Locate() (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.path == "" {
		return fakeBin, nil
	}
	return f.path, nil
}

// fakeRunner stands in for soffice. Exit codes and spawn errors are keyed by
// input file base name; a zero exit writes the PDF into --outdir the way the
// real converter does.
type fakeRunner struct {
	codes map[string]int
	errs  map[string]error
	calls [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string) (int, error) {
	f.calls = append(f.calls, append([]string{name}, args...))

	input := args[len(args)-1]
	base := filepath.Base(input)
	if err := f.errs[base]; err != nil {
		return -1, err
	}
	if code := f.codes[base]; code != 0 {
		return code, nil
	}

	outDir := args[len(args)-2]
	pdf := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644); err != nil {
		return -1, err
	}
	return 0, nil
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("doc"), 0o644))
}

// setupTree creates docs/a.docx, docs/sub/b.xlsx and docs/c.txt under a temp
// dir and returns the input and output roots.
func setupTree(t *testing.T) (in, out string) {
	t.Helper()
	tmp := t.TempDir()
	in = filepath.Join(tmp, "docs")
	out = filepath.Join(tmp, "out")
	writeFile(t, filepath.Join(in, "a.docx"))
	writeFile(t, filepath.Join(in, "sub", "b.xlsx"))
	writeFile(t, filepath.Join(in, "c.txt"))
	return in, out
}

func newConverter(loc Locator, run Runner, w *bytes.Buffer, lang i18n.Language) *Converter {
	return &Converter{
		Locator: loc,
		Runner:  run,
		Console: console.New(w, false),
		Msg:     i18n.For(lang),
	}
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.docx", true},
		{"dir/b.xlsx", true},
		{"REPORT.DOCX", true},
		{"Sheet.XlSx", true},
		{"c.txt", false},
		{"d.doc", false},
		{"e.docx.bak", false},
		{".docx", false},
		{"noext", false},
		{"trailing.", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.path))
		})
	}
}

func TestOutputPath(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "docs")
	out := filepath.Join(tmp, "out")

	tests := []struct {
		name string
		file string
		want string
	}{
		{"top level", filepath.Join(in, "a.docx"), filepath.Join(out, "a.pdf")},
		{"nested", filepath.Join(in, "x", "y", "b.xlsx"), filepath.Join(out, "x", "y", "b.pdf")},
		{"upper-case extension", filepath.Join(in, "C.DOCX"), filepath.Join(out, "C.pdf")},
		{"dots in stem", filepath.Join(in, "v1.2.report.docx"), filepath.Join(out, "v1.2.report.pdf")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputPath(tt.file, in, out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.DirExists(t, filepath.Dir(got))
			assert.NoFileExists(t, got, "only the parent directory is created")

			again, err := OutputPath(tt.file, in, out)
			require.NoError(t, err, "existing directories are not an error")
			assert.Equal(t, got, again)
		})
	}
}

func TestOutputPathOutsideRoot(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "docs")

	for _, file := range []string{
		filepath.Join(tmp, "other", "a.docx"),
		filepath.Join(tmp, "docs-old", "a.docx"),
		in,
	} {
		_, err := OutputPath(file, in, filepath.Join(tmp, "out"))
		require.Error(t, err, file)
		assert.ErrorIs(t, err, ErrPathRelation)
	}
	assert.NoDirExists(t, filepath.Join(tmp, "out"))
}

func TestOutputPathMkdirFailure(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "docs")
	out := filepath.Join(tmp, "out")
	require.NoError(t, os.WriteFile(out, []byte("a file, not a dir"), 0o644))

	_, err := OutputPath(filepath.Join(in, "sub", "a.docx"), in, out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPathRelation)
}

func TestDiscover(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "docs")
	for _, rel := range []string{
		"z.xlsx",
		"a.docx",
		"a-c.docx",
		"a/b.docx",
		"sub/b.xlsx",
		"sub/deeper/c.docx",
		"notes.txt",
		"UPPER.XLSX",
		"old.doc",
	} {
		writeFile(t, filepath.Join(in, filepath.FromSlash(rel)))
	}
	// A directory whose name matches is not a file to convert.
	require.NoError(t, os.MkdirAll(filepath.Join(in, "folder.docx"), 0o755))

	lower := []string{
		"a/b.docx",
		"a-c.docx",
		"a.docx",
		"sub/b.xlsx",
		"sub/deeper/c.docx",
		"z.xlsx",
	}
	tests := []struct {
		goos string
		want []string
	}{
		{goos: "linux", want: lower},
		{goos: "darwin", want: lower},
		{goos: "windows", want: append([]string{"UPPER.XLSX"}, lower...)},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := discover(in, tt.goos)
			require.NoError(t, err)

			var rels []string
			for _, p := range got {
				rel, err := filepath.Rel(in, p)
				require.NoError(t, err)
				rels = append(rels, filepath.ToSlash(rel))
			}
			assert.Equal(t, tt.want, rels)

			again, err := discover(in, tt.goos)
			require.NoError(t, err)
			assert.Equal(t, got, again, "discovery order is stable across runs")
		})
	}
}

func TestDiscoverFileRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.docx")
	writeFile(t, file)

	got, err := Discover(file)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		runner     *fakeRunner
		wantStatus types.ConversionStatus
		wantErr    bool
		wantLine   string
		wantCalls  int
	}{
		{
			name:       "successful conversion",
			file:       "sub/b.xlsx",
			runner:     &fakeRunner{},
			wantStatus: types.ConversionDone,
			wantLine:   "[OK] Converted: ",
			wantCalls:  1,
		},
		{
			name:       "converter exits non-zero",
			file:       "a.docx",
			runner:     &fakeRunner{codes: map[string]int{"a.docx": 77}},
			wantStatus: types.ConversionFailed,
			wantLine:   "[ERROR] LibreOffice conversion failed: ",
			wantCalls:  1,
		},
		{
			name:       "converter cannot be started",
			file:       "a.docx",
			runner:     &fakeRunner{errs: map[string]error{"a.docx": errors.New("exec: no such file")}},
			wantStatus: types.ConversionError,
			wantErr:    true,
			wantCalls:  1,
		},
		{
			name:       "unsupported extension is skipped",
			file:       "c.txt",
			runner:     &fakeRunner{},
			wantStatus: types.ConversionSkipped,
			wantLine:   "[SKIP] Unsupported file: ",
			wantCalls:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := setupTree(t)
			var buf bytes.Buffer
			loc := &fakeLocator{}
			c := newConverter(loc, tt.runner, &buf, i18n.English)

			file := filepath.Join(in, filepath.FromSlash(tt.file))
			res, err := c.Convert(context.Background(), file, in, out)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, file, res.InputPath)
			assert.Len(t, tt.runner.calls, tt.wantCalls)
			if tt.wantLine != "" {
				assert.True(t, strings.HasPrefix(buf.String(), tt.wantLine), "got %q", buf.String())
				assert.Len(t, lines(buf.String()), 1)
			} else {
				assert.Empty(t, buf.String(), "escaped faults are reported by the batch driver")
			}
		})
	}
}

func TestConvertArguments(t *testing.T) {
	in, out := setupTree(t)
	run := &fakeRunner{}
	var buf bytes.Buffer
	c := newConverter(&fakeLocator{}, run, &buf, i18n.English)

	file := filepath.Join(in, "sub", "b.xlsx")
	res, err := c.Convert(context.Background(), file, in, out)
	require.NoError(t, err)

	abs, err := filepath.Abs(file)
	require.NoError(t, err)
	want := append([]string{fakeBin}, soffice.Args(filepath.Join(out, "sub"), abs)...)
	require.Len(t, run.calls, 1)
	assert.Equal(t, want, run.calls[0])

	assert.Equal(t, filepath.Join(out, "sub", "b.pdf"), res.OutputPath)
	assert.FileExists(t, res.OutputPath)
	assert.Equal(t, fmt.Sprintf("[OK] Converted: %s\n", res.OutputPath), buf.String())
}

func TestConvertFailureDetail(t *testing.T) {
	in, out := setupTree(t)
	var buf bytes.Buffer
	c := newConverter(&fakeLocator{}, &fakeRunner{codes: map[string]int{"a.docx": 1}}, &buf, i18n.English)

	file := filepath.Join(in, "a.docx")
	res, err := c.Convert(context.Background(), file, in, out)
	require.NoError(t, err)

	assert.Equal(t, fakeBin+" returned non-zero exit status 1", res.Detail)
	assert.Equal(t, "[ERROR] LibreOffice conversion failed: "+file+" - "+res.Detail+"\n", buf.String())
}

func TestConvertLocatesOnce(t *testing.T) {
	in, out := setupTree(t)
	loc := &fakeLocator{}
	var buf bytes.Buffer
	c := newConverter(loc, &fakeRunner{}, &buf, i18n.English)

	_, err := c.Convert(context.Background(), filepath.Join(in, "c.txt"), in, out)
	require.NoError(t, err)
	assert.Equal(t, 0, loc.calls, "skipped files do not trigger a lookup")

	for _, f := range []string{"a.docx", filepath.Join("sub", "b.xlsx")} {
		_, err := c.Convert(context.Background(), filepath.Join(in, f), in, out)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, loc.calls)
}

func TestConvertUnsupportedPlatform(t *testing.T) {
	in, out := setupTree(t)
	loc := &fakeLocator{err: fmt.Errorf("%w \"plan9\"", soffice.ErrUnsupportedPlatform)}
	run := &fakeRunner{}
	var buf bytes.Buffer
	c := newConverter(loc, run, &buf, i18n.English)

	_, err := c.Convert(context.Background(), filepath.Join(in, "a.docx"), in, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, soffice.ErrUnsupportedPlatform)
	assert.Empty(t, run.calls)
}

func TestConvertVerify(t *testing.T) {
	tests := []struct {
		name      string
		verify    func(string) (int, error)
		wantPages int
		wantWarn  bool
	}{
		{
			name:      "page count recorded",
			verify:    func(string) (int, error) { return 3, nil },
			wantPages: 3,
		},
		{
			name:     "unreadable output warns",
			verify:   func(string) (int, error) { return 0, errors.New("no pages") },
			wantWarn: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := setupTree(t)
			var buf bytes.Buffer
			c := newConverter(&fakeLocator{}, &fakeRunner{}, &buf, i18n.English)
			c.Verify = tt.verify

			res, err := c.Convert(context.Background(), filepath.Join(in, "a.docx"), in, out)
			require.NoError(t, err)
			assert.Equal(t, types.ConversionDone, res.Status, "verification never changes the outcome")
			assert.Equal(t, tt.wantPages, res.Pages)
			assert.Equal(t, tt.wantWarn, strings.Contains(buf.String(), "[WARN] Could not verify PDF:"))
		})
	}
}

func TestConvertLocalized(t *testing.T) {
	in, out := setupTree(t)
	var buf bytes.Buffer
	c := newConverter(&fakeLocator{}, &fakeRunner{}, &buf, i18n.Korean)

	_, err := c.Convert(context.Background(), filepath.Join(in, "c.txt"), in, out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "[SKIP] 지원하지 않는 파일: "), buf.String())
}
