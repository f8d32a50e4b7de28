// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package i18n selects the message language for a run and provides the
// localized message bundle for it.
//
// The language is resolved once at startup, either from an explicit code or
// from the process locale, and then passed explicitly to every component that
// prints. Translations live in gettext PO catalogs embedded in the binary; the
// English text doubles as the message id.
package i18n

import (
	"fmt"
	"os"
	"strings"
)

// Language is one of the supported message languages.
type Language string

const (
	English  Language = "en"
	Korean   Language = "ko"
	Japanese Language = "ja"
	Chinese  Language = "zh"
)

// Languages lists the supported languages, fallback first.
var Languages = []Language{English, Korean, Japanese, Chinese}

// localeEnv is the order in which locale variables are consulted. It matches
// the lookup used for the default locale on POSIX systems.
var localeEnv = []string{"LC_ALL", "LC_CTYPE", "LANG", "LANGUAGE"}

// ParseLanguage validates an explicit language code such as "ko".
func ParseLanguage(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range Languages {
		if string(l) == code {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q (supported: en, ko, ja, zh)", code)
}

// Resolve reads the process locale and maps it to a supported language.
// A missing or unrecognised locale selects English; Resolve never fails.
func Resolve() Language {
	return resolve(os.Getenv)
}

func resolve(getenv func(string) string) Language {
	return FromLocale(systemLocale(getenv))
}

// FromLocale maps a locale string like "ko_KR.UTF-8" to a language by its
// prefix.
func FromLocale(locale string) Language {
	locale = strings.ToLower(locale)
	switch {
	case strings.HasPrefix(locale, "ko"):
		return Korean
	case strings.HasPrefix(locale, "ja"):
		return Japanese
	case strings.HasPrefix(locale, "zh"):
		return Chinese
	default:
		return English
	}
}

// systemLocale returns the first non-empty locale variable, or "" when the
// locale is unset or is the portable "C"/"POSIX" locale.
func systemLocale(getenv func(string) string) string {
	for _, key := range localeEnv {
		val := getenv(key)
		if val == "" {
			continue
		}
		// LANGUAGE is a colon-separated preference list.
		if key == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		if val == "C" || val == "POSIX" || strings.HasPrefix(val, "C.") {
			return ""
		}
		return val
	}
	return ""
}
