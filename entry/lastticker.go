package entry

import (
	"os"
	"strings"
)

// LastTicker persists the most recently saved ticker in a plain text file.
type LastTicker struct {
	Path string
}

// Load returns the stored ticker, or "" when the file is missing or unreadable.
func (l LastTicker) Load() string {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save overwrites the stored ticker.
func (l LastTicker) Save(ticker string) error {
	return os.WriteFile(l.Path, []byte(ticker), 0644)
}
