package store

import (
	"database/sql"
	"fmt"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

const assetColumns = "id, kind, scope, code, name, precision, symbol, is_fiat, security_type, isin, currency_id"

func scanAsset(row interface{ Scan(...any) error }) (model.Asset, error) {
	var a model.Asset
	var currencyID sql.NullInt64

	err := row.Scan(&a.ID, &a.Kind, &a.Scope, &a.Code, &a.Name, &a.Precision,
		&a.Symbol, &a.IsFiat, &a.SecurityType, &a.ISIN, &currencyID)
	if err != nil {
		return model.Asset{}, err
	}
	a.CurrencyID = currencyID.Int64
	return a, nil
}

// ListAssets returns every asset ordered by scope then code.
func (s *Store) ListAssets() ([]model.Asset, error) {
	rows, err := s.db.Query("SELECT " + assetColumns + " FROM asset ORDER BY scope, code")
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// GetAsset returns the asset with the given id.
func (s *Store) GetAsset(id int64) (model.Asset, bool, error) {
	row := s.db.QueryRow("SELECT "+assetColumns+" FROM asset WHERE id = ?", id)
	a, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return model.Asset{}, false, nil
	}
	if err != nil {
		return model.Asset{}, false, fmt.Errorf("getting asset %d: %w", id, err)
	}
	return a, true, nil
}

// AssetExists reports whether an asset with the (scope, code) pair is stored.
func (s *Store) AssetExists(scope, code string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM asset WHERE scope = ? AND code = ?)",
		scope, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking asset %q/%q: %w", scope, code, err)
	}
	return exists, nil
}

// InsertCurrency stores a currency asset and returns its id. The scope
// is forced empty and duplicate codes are rejected with ErrAssetExists.
func (s *Store) InsertCurrency(a model.Asset) (int64, error) {
	a.Kind = model.KindCurrency
	a.Scope = ""
	a.SecurityType = ""
	a.ISIN = ""
	a.CurrencyID = 0
	return s.insertAsset(a)
}

// InsertSecurity stores a security asset and returns its id. The
// denominating currency must already be stored; duplicate (scope, code)
// pairs are rejected with ErrAssetExists.
func (s *Store) InsertSecurity(a model.Asset) (int64, error) {
	a.Kind = model.KindSecurity
	a.Symbol = ""
	a.IsFiat = false
	return s.insertAsset(a)
}

func (s *Store) insertAsset(a model.Asset) (int64, error) {
	var id int64
	err := s.withTx(func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM asset WHERE scope = ? AND code = ?)",
			a.Scope, a.Code,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking asset %q/%q: %w", a.Scope, a.Code, err)
		}
		if exists {
			return fmt.Errorf("%q/%q: %w", a.Scope, a.Code, ErrAssetExists)
		}

		if a.Kind == model.KindSecurity {
			var kind model.AssetKind
			err := tx.QueryRow("SELECT kind FROM asset WHERE id = ?", a.CurrencyID).Scan(&kind)
			if err == sql.ErrNoRows || (err == nil && kind != model.KindCurrency) {
				return fmt.Errorf("currency %d: %w", a.CurrencyID, ErrUnknownCurrency)
			}
			if err != nil {
				return fmt.Errorf("checking currency %d: %w", a.CurrencyID, err)
			}
		}

		res, err := tx.Exec(`
			INSERT INTO asset (kind, scope, code, name, precision, symbol, is_fiat, security_type, isin, currency_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.Kind, a.Scope, a.Code, a.Name, a.Precision,
			a.Symbol, a.IsFiat, a.SecurityType, a.ISIN, nullID(a.CurrencyID),
		)
		if err != nil {
			return fmt.Errorf("inserting asset %q: %w", a.ScopedCode(":"), err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// DeleteAsset removes an asset no account references. Referenced assets
// are rejected with ErrAssetInUse.
func (s *Store) DeleteAsset(id int64) error {
	return s.withTx(func(tx *sql.Tx) error {
		var referenced bool
		err := tx.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM account WHERE asset_id = ?)
			    OR EXISTS(SELECT 1 FROM asset WHERE currency_id = ?)`,
			id, id,
		).Scan(&referenced)
		if err != nil {
			return fmt.Errorf("checking asset %d references: %w", id, err)
		}
		if referenced {
			return fmt.Errorf("asset %d: %w", id, ErrAssetInUse)
		}

		if _, err := tx.Exec("DELETE FROM asset WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting asset %d: %w", id, err)
		}
		return nil
	})
}
