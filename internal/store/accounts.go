package store

import (
	"database/sql"
	"fmt"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

// ListAccounts returns every account ordered by id.
func (s *Store) ListAccounts() ([]model.Account, error) {
	rows, err := s.db.Query(`
		SELECT id, type, name, description, asset_id, parent_id, precision
		  FROM account
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var parentID sql.NullInt64
		err := rows.Scan(&a.ID, &a.Type, &a.Name, &a.Description, &a.AssetID, &parentID, &a.Precision)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.ParentID = parentID.Int64
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// AccountExists reports whether an account with the same name, type and
// parent is stored.
func (s *Store) AccountExists(name string, accountType model.AccountType, parentID int64) (bool, error) {
	var exists bool
	var err error
	if parentID == 0 {
		err = s.db.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM account
				 WHERE name = ? AND type = ? AND parent_id IS NULL
			)`, name, accountType,
		).Scan(&exists)
	} else {
		err = s.db.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM account
				 WHERE name = ? AND type = ? AND parent_id = ?
			)`, name, accountType, parentID,
		).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("checking account %q: %w", name, err)
	}
	return exists, nil
}

// InsertAccount stores an account and returns its id.
func (s *Store) InsertAccount(a model.Account) (int64, error) {
	var id int64
	err := s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO account (type, name, description, asset_id, parent_id, precision)
			VALUES (?, ?, ?, ?, ?, ?)`,
			a.Type, a.Name, a.Description, a.AssetID, nullID(a.ParentID), a.Precision,
		)
		if err != nil {
			return fmt.Errorf("inserting account %q: %w", a.Name, err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// UpdateAccount rewrites an account's mutable fields. The type and asset
// are fixed at creation and left untouched.
func (s *Store) UpdateAccount(a model.Account) error {
	return s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			UPDATE account
			   SET name = ?, description = ?, parent_id = ?, precision = ?
			 WHERE id = ?`,
			a.Name, a.Description, nullID(a.ParentID), a.Precision, a.ID,
		)
		if err != nil {
			return fmt.Errorf("updating account %d: %w", a.ID, err)
		}
		return nil
	})
}

// DeleteAccount removes an account that no subtransaction references and
// that has no children. Referenced accounts are rejected with
// ErrAccountInUse.
func (s *Store) DeleteAccount(id int64) error {
	return s.withTx(func(tx *sql.Tx) error {
		var referenced bool
		err := tx.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM subtransaction WHERE origin_id = ? OR target_id = ?)
			    OR EXISTS(SELECT 1 FROM account WHERE parent_id = ?)`,
			id, id, id,
		).Scan(&referenced)
		if err != nil {
			return fmt.Errorf("checking account %d references: %w", id, err)
		}
		if referenced {
			return fmt.Errorf("account %d: %w", id, ErrAccountInUse)
		}

		if _, err := tx.Exec("DELETE FROM account WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting account %d: %w", id, err)
		}
		return nil
	})
}