package csv

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/iho/payengine/internal/domain"
)

func readAll(t *testing.T, input string) ([]domain.Transaction, []error) {
	t.Helper()

	r := NewReader(strings.NewReader(input))

	var txs []domain.Transaction
	var parseErrs []error
	for {
		tx, err := r.Next()
		if errors.Is(err, io.EOF) {
			return txs, parseErrs
		}

		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErrs = append(parseErrs, err)
			continue
		}

		if err != nil {
			t.Fatalf("unexpected fatal error: %v", err)
		}

		txs = append(txs, tx)
	}
}

func TestReaderParsesTransactions(t *testing.T) {
	input := "type, client, tx, amount\n" +
		"deposit, 1, 1, 10.5\n" +
		"WITHDRAWAL, 1, 2, 4\n" +
		"dispute, 1, 1,\n" +
		"resolve, 1, 1,\n" +
		"chargeback, 1, 1,\n"

	txs, parseErrs := readAll(t, input)

	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	if len(txs) != 5 {
		t.Fatalf("expected 5 transactions, got %d", len(txs))
	}

	first := txs[0]
	if first.Type != domain.TypeDeposit || first.ID != 1 || first.ClientID != 1 {
		t.Errorf("unexpected first transaction: %+v", first)
	}

	if first.Amount == nil || *first.Amount != domain.MoneyFromUnits(105000) {
		t.Errorf("expected amount 10.5, got %v", first.Amount)
	}

	if txs[1].Type != domain.TypeWithdrawal {
		t.Errorf("expected case-insensitive type parsing, got %+v", txs[1])
	}

	for _, tx := range txs[2:] {
		if tx.Amount != nil {
			t.Errorf("dispute-related transaction carries amount: %+v", tx)
		}
	}
}

func TestReaderShortDisputeRecords(t *testing.T) {
	// dispute rows commonly omit the trailing amount field entirely
	input := "type,client,tx,amount\n" +
		"deposit,1,1,2\n" +
		"dispute,1,1\n"

	txs, parseErrs := readAll(t, input)

	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	if len(txs) != 2 || txs[1].Type != domain.TypeDispute {
		t.Fatalf("expected deposit then dispute, got %+v", txs)
	}
}

func TestReaderMissingAmountStaysNil(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,\n"

	txs, parseErrs := readAll(t, input)

	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	if len(txs) != 1 || txs[0].Amount != nil {
		t.Fatalf("expected deposit with nil amount, got %+v", txs)
	}
}

func TestReaderSkipsMalformedRecords(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"transfer,1,1,5\n" + // unknown type
		"deposit,not-a-number,2,5\n" + // bad client
		"deposit,1,99999999999,5\n" + // tx ID over 32 bits
		"deposit,70000,3,5\n" + // client ID over 16 bits
		"deposit,1,4,abc\n" + // bad amount
		"deposit,1,5,5\n" // valid

	txs, parseErrs := readAll(t, input)

	if len(parseErrs) != 5 {
		t.Fatalf("expected 5 parse errors, got %d: %v", len(parseErrs), parseErrs)
	}

	if len(txs) != 1 || txs[0].ID != 5 {
		t.Fatalf("expected only the valid record, got %+v", txs)
	}

	var parseErr *ParseError
	if !errors.As(parseErrs[0], &parseErr) || parseErr.Record != 1 {
		t.Fatalf("expected ParseError for record 1, got %v", parseErrs[0])
	}
}

func TestReaderEmptyInput(t *testing.T) {
	txs, parseErrs := readAll(t, "")

	if len(txs) != 0 || len(parseErrs) != 0 {
		t.Fatalf("expected clean EOF on empty input, got %v / %v", txs, parseErrs)
	}
}

func TestReaderHeaderMissingColumn(t *testing.T) {
	r := NewReader(strings.NewReader("type,client\ndeposit,1\n"))

	if _, err := r.Next(); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected fatal header error, got %v", err)
	}
}
