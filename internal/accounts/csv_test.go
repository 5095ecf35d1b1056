package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

func chartAssetCode(id int64) string {
	if id == 2 {
		return "NASDAQ:AAPL"
	}
	return "USD"
}

func TestChartRoundTrip(t *testing.T) {
	tree := NewTree([]model.Account{
		{ID: 1, Type: model.AccountTypeBank, Name: "Banks", AssetID: 1},
		{ID: 2, Type: model.AccountTypeBank, Name: "Checking", AssetID: 1, ParentID: 1, Description: "daily expenses"},
		{ID: 3, Type: model.AccountTypeSecurity, Name: "Apple", AssetID: 2, ParentID: 1, Precision: 2},
		{ID: 4, Type: model.AccountTypeExpense, Name: "Market", AssetID: 1},
	})

	rows := ExportChart(tree, chartAssetCode)
	require.Len(t, rows, 4)

	// Parents precede children so the rows replay in order.
	assert.Equal(t, "Banks", rows[0].Name)
	assert.Equal(t, "", rows[0].Parent)
	assert.Equal(t, "Assets:Banks", rows[1].Parent)
	assert.Equal(t, "NASDAQ:AAPL", rows[2].Asset)
	assert.Equal(t, int32(2), rows[2].Precision)
	assert.Equal(t, "Market", rows[3].Name)

	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, rows))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, ChartHeader+"\n"))
	assert.Contains(t, out, "daily expenses")

	read, err := ReadChart(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, rows, read)
}

func TestReadChart_HeaderOnly(t *testing.T) {
	rows, err := ReadChart(strings.NewReader(ChartHeader + "\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestReadChart_BadPrecision(t *testing.T) {
	_, err := ReadChart(strings.NewReader(ChartHeader + "\nChecking,,bank,USD,x,\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing precision")
}

func TestReadChart_WrongFieldCount(t *testing.T) {
	_, err := ReadChart(strings.NewReader(ChartHeader + "\nChecking,bank\n"))
	assert.Error(t, err)
}
