package task

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

var csvHeader = []string{"title", "priority", "modified_on"}

type csvCodec struct{}

func (csvCodec) decode(data []byte) ([]Task, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	for i, name := range csvHeader {
		if rows[0][i] != name {
			return nil, fmt.Errorf("unexpected header %v, want %v", rows[0], csvHeader)
		}
	}

	records := make([]record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		priority, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("line %d: priority", i+2), Err: err}
		}
		records = append(records, record{Title: row[0], Priority: priority, ModifiedOn: row[2]})
	}
	return fromRecords(records)
}

func (csvCodec) encode(tasks []Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range toRecords(tasks) {
		if err := w.Write([]string{r.Title, strconv.Itoa(r.Priority), r.ModifiedOn}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
