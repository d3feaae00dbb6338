// Package csvexport renders operation records as comma separated values.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

const (
	ErrorCodeWriteFailed      = "CSV_WRITE_FAILED"
	ErrorCodeRecordMismatched = "CSV_RECORD_MISMATCH"
)

// Record is a row that knows its own column names and values
type Record interface {
	CSVHeader() []string
	CSVRecord() []string
}

// WriteToCsvError is returned for any failure while rendering records
type WriteToCsvError struct {
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
	DeveloperMessage string `json:"developerMessage"`
}

func (e *WriteToCsvError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.ErrorCode, e.ErrorDescription, e.DeveloperMessage)
}

// Write renders a header line followed by one line per row. The header
// comes from the zero value of T, so an empty rows slice still produces it.
func Write[T Record](w io.Writer, rows []T) error {
	var zero T
	header := zero.CSVHeader()

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return writeFailed(err)
	}

	for i, row := range rows {
		record := row.CSVRecord()
		if len(record) != len(header) {
			return &WriteToCsvError{
				ErrorCode:        ErrorCodeRecordMismatched,
				ErrorDescription: "Record does not match header",
				DeveloperMessage: fmt.Sprintf("row %d has %d fields, header has %d", i, len(record), len(header)),
			}
		}
		if err := cw.Write(record); err != nil {
			return writeFailed(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return writeFailed(err)
	}

	return nil
}

// Marshal renders rows into memory
func Marshal[T Record](rows []T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFailed(err error) *WriteToCsvError {
	return &WriteToCsvError{
		ErrorCode:        ErrorCodeWriteFailed,
		ErrorDescription: "Failed to write CSV",
		DeveloperMessage: err.Error(),
	}
}
