// Package langdetect classifies candidate source files before linting.
// It uses go-enry to tell TypeScript apart from files that share its
// extensions (Qt Linguist ".ts" translations are XML) and to recognize
// generated and vendored sources.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names reported by go-enry for TypeScript sources.
const (
	LangTypeScript = "TypeScript"
	LangTSX        = "TSX"
)

// Verdict describes a candidate file.
type Verdict struct {
	// Language is the go-enry language name; empty when unknown.
	Language string

	// Generated is true for machine-generated sources.
	Generated bool

	// Vendored is true for third-party paths such as node_modules.
	Vendored bool
}

// Lintable reports whether the file should be linted.
func (v Verdict) Lintable() bool {
	if v.Generated || v.Vendored {
		return false
	}
	return v.Language == "" || IsTypeScript(v.Language)
}

// Reason returns a short explanation for a non-lintable verdict.
func (v Verdict) Reason() string {
	switch {
	case v.Vendored:
		return "vendored"
	case v.Generated:
		return "generated"
	case !v.Lintable():
		return "detected as " + v.Language
	default:
		return ""
	}
}

// Detect classifies a file by path and content.
func Detect(path string, content []byte) Verdict {
	v := Verdict{
		Vendored:  IsVendored(path),
		Generated: len(content) > 0 && enry.IsGenerated(path, content),
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mts", ".cts":
		// Not registered with go-enry.
		v.Language = LangTypeScript
	default:
		v.Language = enry.GetLanguage(filepath.Base(path), content)
	}

	return v
}

// IsTypeScript reports whether a go-enry language name is a TypeScript dialect.
func IsTypeScript(lang string) bool {
	return lang == LangTypeScript || lang == LangTSX
}

// IsVendored reports whether path lies in a third-party directory.
func IsVendored(path string) bool {
	slashed := filepath.ToSlash(path)
	if strings.Contains("/"+slashed+"/", "/node_modules/") {
		return true
	}
	return enry.IsVendor(slashed)
}
