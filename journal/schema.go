package journal

import (
	"fmt"
	"strings"
	"time"
)

// Field identifies the entry attribute stored in a column.
type Field int

const (
	FieldDate Field = iota
	FieldTime
	FieldTicker
	FieldPrice
	FieldNote
	FieldImage
)

// Column is one header cell and the entry attribute below it.
type Column struct {
	Name  string
	Field Field
}

// Schema is the fixed column layout of a table file.
type Schema struct {
	Name    string
	Columns []Column
}

// SnipSchema is the layout written by region captures.
var SnipSchema = Schema{
	Name: "snip",
	Columns: []Column{
		{"Date", FieldDate},
		{"Time", FieldTime},
		{"Ticker/Instrument", FieldTicker},
		{"Note", FieldNote},
		{"ImagePath", FieldImage},
	},
}

// QuickSchema is the layout written by full-screen captures.
var QuickSchema = Schema{
	Name: "quick",
	Columns: []Column{
		{"Date", FieldDate},
		{"Time", FieldTime},
		{"Ticker", FieldTicker},
		{"Price", FieldPrice},
		{"Note", FieldNote},
		{"Screenshot", FieldImage},
	},
}

// SchemaByName returns SnipSchema or QuickSchema.
func SchemaByName(name string) (Schema, error) {
	switch name {
	case SnipSchema.Name:
		return SnipSchema, nil
	case QuickSchema.Name:
		return QuickSchema, nil
	default:
		return Schema{}, fmt.Errorf("unknown schema %q", name)
	}
}

// Header returns the header row.
func (s Schema) Header() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// Row renders an entry in column order.
func (s Schema) Row(e Entry) []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		switch c.Field {
		case FieldDate:
			out[i] = e.Date()
		case FieldTime:
			out[i] = e.Clock()
		case FieldTicker:
			out[i] = e.Ticker
		case FieldPrice:
			out[i] = e.Price
		case FieldNote:
			out[i] = e.Note
		case FieldImage:
			out[i] = e.ImagePath
		}
	}
	return out
}

// Parse reads an entry back from a data row. Missing trailing cells are
// treated as empty; the time is interpreted in the local zone.
func (s Schema) Parse(row []string) (Entry, error) {
	var e Entry
	var date, clock string
	for i, c := range s.Columns {
		var v string
		if i < len(row) {
			v = row[i]
		}
		// Only the stamp is normalized; text cells come back as written.
		switch c.Field {
		case FieldDate:
			date = strings.TrimSpace(v)
		case FieldTime:
			clock = strings.TrimSpace(v)
		case FieldTicker:
			e.Ticker = v
		case FieldPrice:
			e.Price = v
		case FieldNote:
			e.Note = v
		case FieldImage:
			e.ImagePath = v
		}
	}

	t, err := parseStamp(date, clock)
	if err != nil {
		return Entry{}, err
	}
	e.Time = t
	return e, nil
}

func parseStamp(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q %q: %w", date, clock, err)
	}
	return t, nil
}

// MatchesHeader reports whether row is this schema's header.
func (s Schema) MatchesHeader(row []string) bool {
	if len(row) != len(s.Columns) {
		return false
	}
	for i, c := range s.Columns {
		if strings.TrimSpace(row[i]) != c.Name {
			return false
		}
	}
	return true
}

// sqliteSchema is the DDL of the SQLite journal.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	ticker TEXT NOT NULL,
	price TEXT NOT NULL DEFAULT '',
	note TEXT NOT NULL DEFAULT '',
	image_path TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
`
