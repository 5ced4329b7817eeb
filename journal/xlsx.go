package journal

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// NewXLSX returns a table stored as the first sheet of an Excel workbook.
func NewXLSX(path string, schema Schema) Table {
	return &fileTable{path: path, schema: schema, codec: xlsxCodec{}}
}

type xlsxCodec struct{}

func (xlsxCodec) read(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetRows(f.GetSheetName(0))
}

func (xlsxCodec) write(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
	}
	return f.Write(w)
}
