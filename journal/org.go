package journal

import (
	"fmt"
	"strings"
)

// FormatEntryOrg renders an entry as an Org-mode block with the capture
// linked inline, ready to paste into a review file.
func FormatEntryOrg(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s %s\n", e.Ticker, e.Date(), e.Clock())
	b.WriteString(":PROPERTIES:\n")
	if e.ID != "" {
		fmt.Fprintf(&b, ":ID: %s\n", e.ID)
	}
	fmt.Fprintf(&b, ":TICKER: %s\n", e.Ticker)
	fmt.Fprintf(&b, ":DATE: %s\n", e.Date())
	fmt.Fprintf(&b, ":TIME: %s\n", e.Clock())
	if e.Price != "" {
		fmt.Fprintf(&b, ":PRICE: %s\n", e.Price)
	}
	fmt.Fprintf(&b, ":IMAGE: %s\n", e.ImagePath)
	b.WriteString(":END:\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "[[file:%s]]\n", e.ImagePath)
	if e.Note != "" {
		b.WriteString("\n")
		b.WriteString(e.Note)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatEntriesOrg renders multiple entries separated by blank lines.
func FormatEntriesOrg(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatEntryOrg(e))
	}
	return b.String()
}
