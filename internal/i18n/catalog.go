// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package i18n

import (
	"embed"
	"fmt"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var locales embed.FS

// Message ids. The English text is the msgid; the PO catalogs carry the
// other languages.
const (
	msgSkip             = "[SKIP] Unsupported file: %s"
	msgConverted        = "[OK] Converted: %s"
	msgConverterFailed  = "[ERROR] LibreOffice conversion failed: %s - %s"
	msgInputMissing     = "[ERROR] Input folder does not exist: %s"
	msgNoFiles          = "[INFO] No files to convert."
	msgProgressLabel    = "📄 Converting"
	msgProgressUnit     = "file"
	msgConversionFailed = "[ERROR] Conversion failed: %s - %v"
	msgSummary          = "✅ Converted: %d"
	msgFailureSummary   = "❌ Failed: %d file(s). See above logs."
	msgVerifyFailed     = "[WARN] Could not verify PDF: %s - %v"
)

// Messages is the set of user-facing format strings for one language.
// Fields holding verbs are fmt format strings.
type Messages struct {
	Language Language

	Skip             string // file path
	Converted        string // output path
	ConverterFailed  string // input path, exit detail
	InputMissing     string // input root
	NoFiles          string
	ProgressLabel    string
	ProgressUnit     string
	ConversionFailed string // input path, error
	Summary          string // success count
	FailureSummary   string // failure count
	VerifyFailed     string // output path, error
}

var (
	bundlesMu sync.Mutex
	bundles   = map[Language]Messages{}
)

// For returns the message bundle for lang. Unknown languages get English.
func For(lang Language) Messages {
	bundlesMu.Lock()
	defer bundlesMu.Unlock()

	if m, ok := bundles[lang]; ok {
		return m
	}

	get := func(id string) string { return id }
	if lang != English {
		po, err := loadCatalog(lang)
		if err == nil {
			trs := po.GetDomain().GetTranslations()
			get = func(id string) string {
				if tr, ok := trs[id]; ok {
					return tr.Get()
				}
				return id
			}
		} else {
			lang = English
		}
	}

	m := Messages{
		Language:         lang,
		Skip:             get(msgSkip),
		Converted:        get(msgConverted),
		ConverterFailed:  get(msgConverterFailed),
		InputMissing:     get(msgInputMissing),
		NoFiles:          get(msgNoFiles),
		ProgressLabel:    get(msgProgressLabel),
		ProgressUnit:     get(msgProgressUnit),
		ConversionFailed: get(msgConversionFailed),
		Summary:          get(msgSummary),
		FailureSummary:   get(msgFailureSummary),
		VerifyFailed:     get(msgVerifyFailed),
	}
	bundles[lang] = m
	return m
}

func loadCatalog(lang Language) (*gotext.Po, error) {
	data, err := locales.ReadFile("locales/" + string(lang) + ".po")
	if err != nil {
		return nil, fmt.Errorf("reading %s catalog: %w", lang, err)
	}
	po := gotext.NewPo()
	po.Parse(data)
	return po, nil
}
