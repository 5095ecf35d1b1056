package assets

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glourencoffee/mymoneyman/internal/model"
	"github.com/glourencoffee/mymoneyman/internal/store"
)

type mockStorage struct {
	assets map[int64]model.Asset
	nextID int64
}

func newMockStorage() *mockStorage {
	return &mockStorage{assets: make(map[int64]model.Asset), nextID: 1}
}

func (m *mockStorage) ListAssets() ([]model.Asset, error) {
	out := make([]model.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (m *mockStorage) GetAsset(id int64) (model.Asset, bool, error) {
	a, ok := m.assets[id]
	return a, ok, nil
}

func (m *mockStorage) InsertCurrency(a model.Asset) (int64, error) {
	a.Kind = model.KindCurrency
	a.Scope = ""
	return m.insert(a)
}

func (m *mockStorage) InsertSecurity(a model.Asset) (int64, error) {
	a.Kind = model.KindSecurity
	cur, ok := m.assets[a.CurrencyID]
	if !ok || !cur.IsCurrency() {
		return 0, fmt.Errorf("currency %d: %w", a.CurrencyID, store.ErrUnknownCurrency)
	}
	return m.insert(a)
}

func (m *mockStorage) insert(a model.Asset) (int64, error) {
	for _, ex := range m.assets {
		if ex.Scope == a.Scope && ex.Code == a.Code {
			return 0, fmt.Errorf("%q/%q: %w", a.Scope, a.Code, store.ErrAssetExists)
		}
	}
	a.ID = m.nextID
	m.nextID++
	m.assets[a.ID] = a
	return a.ID, nil
}

func (m *mockStorage) DeleteAsset(id int64) error {
	for _, ex := range m.assets {
		if ex.CurrencyID == id {
			return fmt.Errorf("asset %d: %w", id, store.ErrAssetInUse)
		}
	}
	delete(m.assets, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *mockStorage) {
	t.Helper()
	storage := newMockStorage()
	return NewService(storage), storage
}

func TestAddCurrency_ISODefaults(t *testing.T) {
	svc, storage := newTestService(t)

	usd, err := svc.AddCurrency(CurrencyParams{Code: "usd", IsFiat: true})
	require.NoError(t, err)

	assert.Equal(t, "USD", usd.Code)
	assert.Equal(t, "$", usd.Symbol)
	assert.Equal(t, int32(2), usd.Precision)
	assert.Equal(t, "USD", usd.Name)
	assert.True(t, usd.IsFiat)
	assert.NotZero(t, usd.ID)
	assert.Contains(t, storage.assets, usd.ID)

	// Zero-fraction ISO currencies keep their zero.
	jpy, err := svc.AddCurrency(CurrencyParams{Code: "JPY", IsFiat: true})
	require.NoError(t, err)
	assert.Equal(t, int32(0), jpy.Precision)
}

func TestAddCurrency_ExplicitValuesWin(t *testing.T) {
	svc, _ := newTestService(t)

	brl, err := svc.AddCurrency(CurrencyParams{
		Code:      "brl",
		Name:      "Brazilian Real",
		Symbol:    "R$",
		Precision: 4,
		IsFiat:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "BRL", brl.Code)
	assert.Equal(t, "Brazilian Real", brl.Name)
	assert.Equal(t, "R$", brl.Symbol)
	assert.Equal(t, int32(4), brl.Precision)
}

func TestAddCurrency_NonISOFallbacks(t *testing.T) {
	svc, _ := newTestService(t)

	a, err := svc.AddCurrency(CurrencyParams{Code: "XXQ"})
	require.NoError(t, err)

	assert.Equal(t, "XXQ", a.Name)
	assert.Equal(t, "", a.Symbol)
	assert.Equal(t, int32(2), a.Precision)
	assert.False(t, a.IsFiat)
}

func TestAddCurrency_EmptyCode(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddCurrency(CurrencyParams{Code: "  "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invariant 1")
}

func TestAddCurrency_Duplicate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddCurrency(CurrencyParams{Code: "USD"})
	require.NoError(t, err)
	_, err = svc.AddCurrency(CurrencyParams{Code: "usd"})
	assert.ErrorIs(t, err, store.ErrAssetExists)
}

func TestAddSecurity(t *testing.T) {
	svc, storage := newTestService(t)

	usd, err := svc.AddCurrency(CurrencyParams{Code: "USD", IsFiat: true})
	require.NoError(t, err)

	aapl, err := svc.AddSecurity(SecurityParams{
		Scope:      "NASDAQ",
		Code:       "AAPL",
		Name:       "Apple Inc.",
		ISIN:       "US0378331005",
		Precision:  4,
		CurrencyID: usd.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.KindSecurity, aapl.Kind)
	assert.Equal(t, "NASDAQ:AAPL", aapl.ScopedCode(":"))
	assert.Equal(t, model.SecurityStock, aapl.SecurityType)
	assert.Equal(t, int32(4), aapl.Precision)
	assert.Equal(t, usd.ID, aapl.CurrencyID)
	assert.Contains(t, storage.assets, aapl.ID)
}

func TestAddSecurity_Invariants(t *testing.T) {
	svc, _ := newTestService(t)

	usd, err := svc.AddCurrency(CurrencyParams{Code: "USD"})
	require.NoError(t, err)

	_, err = svc.AddSecurity(SecurityParams{Scope: "NASDAQ", CurrencyID: usd.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invariant 1")

	_, err = svc.AddSecurity(SecurityParams{Code: "AAPL", CurrencyID: usd.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invariant 2")

	_, err = svc.AddSecurity(SecurityParams{
		Scope: "NASDAQ", Code: "AAPL", Type: "option", CurrencyID: usd.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invariant 3")

	_, err = svc.AddSecurity(SecurityParams{Scope: "NASDAQ", Code: "AAPL"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invariant 4")
}

func TestAddSecurity_UnknownCurrency(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddSecurity(SecurityParams{Scope: "NASDAQ", Code: "AAPL", CurrencyID: 99})
	assert.ErrorIs(t, err, store.ErrUnknownCurrency)
}

func TestFind(t *testing.T) {
	svc, _ := newTestService(t)

	usd, err := svc.AddCurrency(CurrencyParams{Code: "USD"})
	require.NoError(t, err)
	aapl, err := svc.AddSecurity(SecurityParams{Scope: "NASDAQ", Code: "AAPL", CurrencyID: usd.ID})
	require.NoError(t, err)

	got, err := svc.Find("usd")
	require.NoError(t, err)
	assert.Equal(t, usd.ID, got.ID)

	got, err = svc.Find("nasdaq:aapl")
	require.NoError(t, err)
	assert.Equal(t, aapl.ID, got.ID)

	_, err = svc.Find("AAPL")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCurrenciesAndSecurities(t *testing.T) {
	svc, _ := newTestService(t)

	usd, err := svc.AddCurrency(CurrencyParams{Code: "USD"})
	require.NoError(t, err)
	_, err = svc.AddCurrency(CurrencyParams{Code: "EUR"})
	require.NoError(t, err)
	_, err = svc.AddSecurity(SecurityParams{Scope: "NASDAQ", Code: "AAPL", CurrencyID: usd.ID})
	require.NoError(t, err)

	currencies, err := svc.Currencies()
	require.NoError(t, err)
	require.Len(t, currencies, 2)
	assert.Equal(t, "EUR", currencies[0].Code)
	assert.Equal(t, "USD", currencies[1].Code)

	securities, err := svc.Securities()
	require.NoError(t, err)
	require.Len(t, securities, 1)
	assert.Equal(t, "AAPL", securities[0].Code)
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService(t)

	usd, err := svc.AddCurrency(CurrencyParams{Code: "USD"})
	require.NoError(t, err)
	aapl, err := svc.AddSecurity(SecurityParams{Scope: "NASDAQ", Code: "AAPL", CurrencyID: usd.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(usd.ID), store.ErrAssetInUse)
	require.NoError(t, svc.Remove(aapl.ID))
	require.NoError(t, svc.Remove(usd.ID))
	assert.ErrorIs(t, svc.Remove(usd.ID), ErrNotFound)
}
