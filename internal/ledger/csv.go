package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

// CSVHeader is the header row of a transaction CSV export.
const CSVHeader = "transaction_id,date,comment,origin,target,quantity,quote_price"

const (
	csvNumFields  = 7
	csvDateFormat = time.RFC3339
	csvColTxID    = 0
	csvColDate    = 1
	csvColComment = 2
	csvColOrigin  = 3
	csvColTarget  = 4
	csvColQty     = 5
	csvColPrice   = 6
)

// CSVLeg is one subtransaction row of a CSV export. Origin and Target
// are group-prefixed account paths, so an import into another book can
// resolve them by name rather than by id.
type CSVLeg struct {
	TransactionID int64
	Date          time.Time
	Comment       string
	Origin        string
	Target        string
	Quantity      decimal.Decimal
	QuotePrice    decimal.Decimal
}

// WriteCSV writes legs to w, including the header row.
func WriteCSV(w io.Writer, legs []CSVLeg) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, leg := range legs {
		if err := cw.Write(MarshalCSVLeg(leg)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadCSV reads all legs from an exported CSV, skipping the header row.
func ReadCSV(r io.Reader) ([]CSVLeg, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = csvNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transaction CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var legs []CSVLeg
	for i, rec := range records[1:] {
		leg, err := UnmarshalCSVLeg(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// MarshalCSVLeg converts a leg to a CSV row.
func MarshalCSVLeg(leg CSVLeg) []string {
	row := make([]string, csvNumFields)
	row[csvColTxID] = strconv.FormatInt(leg.TransactionID, 10)
	row[csvColDate] = leg.Date.Format(csvDateFormat)
	row[csvColComment] = leg.Comment
	row[csvColOrigin] = leg.Origin
	row[csvColTarget] = leg.Target
	row[csvColQty] = leg.Quantity.String()
	row[csvColPrice] = leg.QuotePrice.String()
	return row
}

// UnmarshalCSVLeg converts a CSV row to a leg.
func UnmarshalCSVLeg(record []string) (CSVLeg, error) {
	if len(record) != csvNumFields {
		return CSVLeg{}, fmt.Errorf("expected %d fields, got %d", csvNumFields, len(record))
	}

	txID, err := strconv.ParseInt(record[csvColTxID], 10, 64)
	if err != nil {
		return CSVLeg{}, fmt.Errorf("parsing transaction_id %q: %w", record[csvColTxID], err)
	}

	date, err := time.Parse(csvDateFormat, record[csvColDate])
	if err != nil {
		return CSVLeg{}, fmt.Errorf("parsing date %q: %w", record[csvColDate], err)
	}

	quantity, err := decimal.NewFromString(record[csvColQty])
	if err != nil {
		return CSVLeg{}, fmt.Errorf("parsing quantity %q: %w", record[csvColQty], err)
	}

	price, err := decimal.NewFromString(record[csvColPrice])
	if err != nil {
		return CSVLeg{}, fmt.Errorf("parsing quote_price %q: %w", record[csvColPrice], err)
	}

	return CSVLeg{
		TransactionID: txID,
		Date:          date,
		Comment:       record[csvColComment],
		Origin:        record[csvColOrigin],
		Target:        record[csvColTarget],
		Quantity:      quantity,
		QuotePrice:    price,
	}, nil
}

// ExportLegs flattens transactions into CSV legs, naming endpoints with
// the name function.
func ExportLegs(txs []model.Transaction, name func(accountID int64) string) []CSVLeg {
	var legs []CSVLeg
	for _, t := range txs {
		for _, sub := range t.Subs {
			legs = append(legs, CSVLeg{
				TransactionID: t.ID,
				Date:          t.Date,
				Comment:       sub.Comment,
				Origin:        name(sub.OriginID),
				Target:        name(sub.TargetID),
				Quantity:      sub.Quantity,
				QuotePrice:    sub.QuotePrice,
			})
		}
	}
	return legs
}

// GroupLegs rebuilds transactions from CSV legs, resolving account
// paths with the resolve function. Consecutive legs sharing a
// transaction_id form one transaction. The returned transactions carry
// no ids, so recording them assigns fresh ones.
func GroupLegs(legs []CSVLeg, resolve func(path string) (int64, error)) ([]model.Transaction, error) {
	var txs []model.Transaction
	var lastID int64

	for i, leg := range legs {
		originID, err := resolve(leg.Origin)
		if err != nil {
			return nil, fmt.Errorf("row %d: origin %q: %w", i+2, leg.Origin, err)
		}
		targetID, err := resolve(leg.Target)
		if err != nil {
			return nil, fmt.Errorf("row %d: target %q: %w", i+2, leg.Target, err)
		}

		if len(txs) == 0 || leg.TransactionID != lastID {
			txs = append(txs, model.Transaction{Date: leg.Date})
			lastID = leg.TransactionID
		}
		last := &txs[len(txs)-1]
		last.Subs = append(last.Subs, model.Subtransaction{
			Comment:    leg.Comment,
			OriginID:   originID,
			TargetID:   targetID,
			Quantity:   leg.Quantity,
			QuotePrice: leg.QuotePrice,
		})
	}
	return txs, nil
}
