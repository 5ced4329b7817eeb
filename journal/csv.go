package journal

import (
	"encoding/csv"
	"io"
	"os"
)

// NewCSV returns a table stored as a comma separated file.
func NewCSV(path string, schema Schema) Table {
	return &fileTable{path: path, schema: schema, codec: csvCodec{}}
}

type csvCodec struct{}

func (csvCodec) read(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func (csvCodec) write(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
