package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genericSample = `date,description,amount
2024-01-05,ACME CONSULTING INVOICE 1042,3500.00
2024-01-10,GITHUB PRO SUBSCRIPTION,-4.00
2024-01-22,CITY MARKET,-45.90
`

func TestGenericParser_Parse(t *testing.T) {
	p := &GenericParser{}
	movements, err := p.Parse(strings.NewReader(genericSample))
	require.NoError(t, err)
	require.Len(t, movements, 3)

	assert.Equal(t, "ACME CONSULTING INVOICE 1042", movements[0].Description)
	assert.Equal(t, "3500.00", movements[0].Amount.StringFixed(2))
	assert.True(t, movements[0].Amount.IsPositive())
	assert.Equal(t, 2024, movements[0].Date.Year())
	assert.Equal(t, 1, int(movements[0].Date.Month()))
	assert.Equal(t, 5, movements[0].Date.Day())

	assert.Equal(t, "-45.90", movements[2].Amount.StringFixed(2))
	assert.Equal(t, 22, movements[2].Date.Day())
}

func TestGenericParser_HeaderOnly(t *testing.T) {
	p := &GenericParser{}
	movements, err := p.Parse(strings.NewReader("date,description,amount\n"))
	require.NoError(t, err)
	assert.Nil(t, movements)
}

func TestGenericParser_BadDate(t *testing.T) {
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader("date,description,amount\nNOTADATE,desc,-4.00\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestGenericParser_BadAmount(t *testing.T) {
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader("date,description,amount\n2024-01-05,desc,NOTANUMBER\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestGenericParser_WrongFieldCount(t *testing.T) {
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader("date,description,amount\n2024-01-05,desc\n"))
	assert.Error(t, err)
}

const chaseSample = `Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
DEBIT,01/03/2025,GITHUB *PRO SUBSCRIPTION,-4.00,ACH_DEBIT,996.00,
CREDIT,01/15/2025,ACME CONSULTING INVOICE 1042,3500.00,ACH_CREDIT,4496.00,
DEBIT,01/22/2025,CITY MARKET,-45.90,DEBIT_CARD,4450.10,
`

func TestChaseParser_Parse(t *testing.T) {
	p := &ChaseParser{}
	movements, err := p.Parse(strings.NewReader(chaseSample))
	require.NoError(t, err)
	require.Len(t, movements, 3)

	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", movements[0].Description)
	assert.Equal(t, "-4.00", movements[0].Amount.StringFixed(2))
	assert.Equal(t, 2025, movements[0].Date.Year())
	assert.Equal(t, 3, movements[0].Date.Day())

	assert.True(t, movements[1].Amount.IsPositive())
	assert.Equal(t, "3500.00", movements[1].Amount.StringFixed(2))
}

func TestChaseParser_EmptyFile(t *testing.T) {
	p := &ChaseParser{}
	movements, err := p.Parse(strings.NewReader("Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, movements)
}

func TestChaseParser_BadDate(t *testing.T) {
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.NotNil(t, r.Get("Chase"))
	assert.NotNil(t, r.Get("CHASE"))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("chase"))
	assert.Equal(t, []string{"chase", "generic"}, r.Formats())
}
