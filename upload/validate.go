// Package upload validates incoming audio files and manages the scratch
// directory they are written to while a detection runs.
package upload

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"voiceguard/config"

	"golang.org/x/text/unicode/norm"
)

// Extension returns the lower-cased extension of name without the dot,
// or "" when name has none.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// AllowedFile reports whether name has an allowed audio extension.
func AllowedFile(name string) bool {
	return AllowedExtension(Extension(name))
}

// AllowedExtension reports whether ext (without dot) is an allowed audio extension.
func AllowedExtension(ext string) bool {
	return config.AllowedExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// AllowedExtensionsList returns the allowed extensions, sorted and comma separated.
func AllowedExtensionsList() string {
	exts := make([]string, 0, len(config.AllowedExtensions))
	for ext := range config.AllowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces name to a safe ASCII file name with no path
// components. It may return "" for names made only of unsafe characters.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	s := b.String()
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.ReplaceAll(s, string(filepath.Separator), "/")
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "/", " ")), "_")
	s = unsafeChars.ReplaceAllString(s, "")
	return strings.Trim(s, "._")
}
