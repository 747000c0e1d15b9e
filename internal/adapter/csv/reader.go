// Package csv adapts the engine's typed transactions to CSV input and
// output. Malformed input records never reach the engine; they surface as
// *ParseError values the caller logs and skips.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/payengine/internal/domain"
)

// ParseError describes a single record that could not be turned into a
// transaction. The stream stays readable after one.
type ParseError struct {
	Record int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Record, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reader streams transactions from CSV input.
//
// Columns are matched by header name (type, client, tx, amount), surrounding
// whitespace is trimmed and records may have a variable number of fields.
type Reader struct {
	csv    *stdcsv.Reader
	fields map[string]int
	record int
}

// NewReader creates a Reader over r. The header row is consumed on the
// first call to Next.
func NewReader(r io.Reader) *Reader {
	csvReader := stdcsv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	return &Reader{csv: csvReader}
}

// Next returns the next transaction. io.EOF signals a cleanly exhausted
// stream; a *ParseError marks one malformed record the caller should skip.
func (r *Reader) Next() (domain.Transaction, error) {
	if r.fields == nil {
		if err := r.readHeader(); err != nil {
			return domain.Transaction{}, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Transaction{}, io.EOF
		}

		r.record++

		return domain.Transaction{}, &ParseError{Record: r.record, Err: err}
	}

	r.record++

	tx, err := r.parse(record)
	if err != nil {
		return domain.Transaction{}, &ParseError{Record: r.record, Err: err}
	}

	return tx, nil
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// empty input: no header means no records
			return io.EOF
		}

		return fmt.Errorf("read header: %w", err)
	}

	fields := make(map[string]int, len(header))
	for i, name := range header {
		fields[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"type", "client", "tx"} {
		if _, ok := fields[required]; !ok {
			return fmt.Errorf("input header is missing column %q", required)
		}
	}

	r.fields = fields

	return nil
}

func (r *Reader) parse(record []string) (domain.Transaction, error) {
	typ, err := domain.ParseTransactionType(r.field(record, "type"))
	if err != nil {
		return domain.Transaction{}, err
	}

	client, err := strconv.ParseUint(r.field(record, "client"), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse client ID: %w", err)
	}

	id, err := strconv.ParseUint(r.field(record, "tx"), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse transaction ID: %w", err)
	}

	tx := domain.Transaction{
		Type:     typ,
		ID:       domain.TransactionID(id),
		ClientID: domain.ClientID(client),
	}

	// amount stays nil when the column is absent or empty; the engine
	// rejects settlements without one
	if raw := r.field(record, "amount"); raw != "" && !tx.DisputeRelated() {
		amount, err := domain.MoneyFromString(raw)
		if err != nil {
			return domain.Transaction{}, err
		}

		tx.Amount = &amount
	}

	return tx, nil
}

func (r *Reader) field(record []string, name string) string {
	idx, ok := r.fields[name]
	if !ok || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}
