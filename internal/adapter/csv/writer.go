package csv

import (
	stdcsv "encoding/csv"
	"io"
	"strconv"

	"github.com/iho/payengine/internal/domain"
)

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// Writer renders the final account snapshot as CSV.
type Writer struct {
	csv *stdcsv.Writer
}

// NewWriter creates a Writer targeting w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: stdcsv.NewWriter(w)}
}

// WriteAccounts emits the header row followed by one record per account, in
// the order given. The header is written even for an empty snapshot.
func (w *Writer) WriteAccounts(accounts []*domain.Account) error {
	if err := w.csv.Write(outputHeader); err != nil {
		return err
	}

	for _, account := range accounts {
		record := []string{
			strconv.FormatUint(uint64(account.ClientID), 10),
			account.Available.String(),
			account.Held.String(),
			account.Total.String(),
			strconv.FormatBool(account.Locked),
		}

		if err := w.csv.Write(record); err != nil {
			return err
		}
	}

	w.csv.Flush()

	return w.csv.Error()
}
