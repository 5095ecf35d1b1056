package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

// ChartHeader is the header row of a chart-of-accounts CSV export.
const ChartHeader = "name,parent,type,asset,precision,description"

const (
	chartNumFields = 6
	chartColName   = 0
	chartColParent = 1
	chartColType   = 2
	chartColAsset  = 3
	chartColPrec   = 4
	chartColDesc   = 5
)

// ChartRow is one account of a chart-of-accounts CSV. Parent is the
// group-prefixed path of the parent account, empty for top-level
// accounts, and Asset the scoped code of the held asset.
type ChartRow struct {
	Name        string
	Parent      string
	Type        model.AccountType
	Asset       string
	Precision   int32
	Description string
}

// ReadChart reads all rows from a chart CSV, skipping the header.
func ReadChart(r io.Reader) ([]ChartRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chartNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chart CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []ChartRow
	for i, rec := range records[1:] {
		row, err := UnmarshalChartRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteChart writes rows to w, including the header.
func WriteChart(w io.Writer, rows []ChartRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ChartHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalChartRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalChartRow converts a chart row to a CSV record.
func MarshalChartRow(row ChartRow) []string {
	rec := make([]string, chartNumFields)
	rec[chartColName] = row.Name
	rec[chartColParent] = row.Parent
	rec[chartColType] = string(row.Type)
	rec[chartColAsset] = row.Asset
	if row.Precision > 0 {
		rec[chartColPrec] = strconv.FormatInt(int64(row.Precision), 10)
	}
	rec[chartColDesc] = row.Description
	return rec
}

// UnmarshalChartRow converts a CSV record to a chart row.
func UnmarshalChartRow(record []string) (ChartRow, error) {
	if len(record) != chartNumFields {
		return ChartRow{}, fmt.Errorf("expected %d fields, got %d", chartNumFields, len(record))
	}

	var precision int64
	if record[chartColPrec] != "" {
		var err error
		precision, err = strconv.ParseInt(record[chartColPrec], 10, 32)
		if err != nil {
			return ChartRow{}, fmt.Errorf("parsing precision %q: %w", record[chartColPrec], err)
		}
	}

	return ChartRow{
		Name:        record[chartColName],
		Parent:      record[chartColParent],
		Type:        model.AccountType(record[chartColType]),
		Asset:       record[chartColAsset],
		Precision:   int32(precision),
		Description: record[chartColDesc],
	}, nil
}

// ExportChart flattens a hierarchy into chart rows, parents always
// preceding their children so the rows can be replayed in order. Asset
// ids are rendered with the assetCode function.
func ExportChart(tree *Tree, assetCode func(assetID int64) string) []ChartRow {
	var rows []ChartRow
	for _, group := range model.AccountGroups() {
		for _, a := range tree.TopLevel(group) {
			rows = exportAccount(tree, a, assetCode, rows)
		}
	}
	return rows
}

func exportAccount(tree *Tree, a model.Account, assetCode func(int64) string, rows []ChartRow) []ChartRow {
	var parent string
	if a.ParentID != 0 {
		parent = tree.ExtendedName(a.ParentID, ":", true)
	}
	rows = append(rows, ChartRow{
		Name:        a.Name,
		Parent:      parent,
		Type:        a.Type,
		Asset:       assetCode(a.AssetID),
		Precision:   a.Precision,
		Description: a.Description,
	})
	for _, child := range tree.Children(a.ID) {
		rows = exportAccount(tree, child, assetCode, rows)
	}
	return rows
}
