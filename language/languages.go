package language

import "strings"

// Names maps supported ISO 639-1 codes to display names
var Names = map[string]string{
	"hi": "Hindi",
	"en": "English",
	"ta": "Tamil",
	"te": "Telugu",
	"ml": "Malayalam",
}

// Name returns the display name for code, or "Unknown".
func Name(code string) string {
	if name, ok := Names[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return "Unknown"
}
