package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/glourencoffee/mymoneyman/internal/model"
)

// GetTransaction returns a transaction with its subtransactions ordered
// by id. The second result is false when no such transaction is stored.
func (s *Store) GetTransaction(id int64) (model.Transaction, bool, error) {
	var t model.Transaction
	var rawDate string
	err := s.db.QueryRow(`SELECT id, date FROM "transaction" WHERE id = ?`, id).Scan(&t.ID, &rawDate)
	if err == sql.ErrNoRows {
		return model.Transaction{}, false, nil
	}
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("reading transaction %d: %w", id, err)
	}
	t.Date, err = parseDate(rawDate)
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("reading transaction %d: %w", id, err)
	}

	rows, err := s.db.Query(`
		SELECT id, transaction_id, comment, origin_id, target_id, quantity, quote_price
		  FROM subtransaction
		 WHERE transaction_id = ?
		 ORDER BY id`, id)
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("reading transaction %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sub model.Subtransaction
		var quantity, quotePrice string
		err := rows.Scan(&sub.ID, &sub.TransactionID, &sub.Comment, &sub.OriginID, &sub.TargetID, &quantity, &quotePrice)
		if err != nil {
			return model.Transaction{}, false, fmt.Errorf("scanning subtransaction: %w", err)
		}
		if sub.Quantity, err = parseDecimal(quantity); err != nil {
			return model.Transaction{}, false, err
		}
		if sub.QuotePrice, err = parseDecimal(quotePrice); err != nil {
			return model.Transaction{}, false, err
		}
		t.Subs = append(t.Subs, sub)
	}
	return t, true, rows.Err()
}

// SaveTransaction writes a transaction and its subtransactions in one
// database transaction. New rows get their generated ids set back on the
// model. Stored subtransactions absent from t.Subs are deleted.
func (s *Store) SaveTransaction(t *model.Transaction) error {
	return s.withTx(func(tx *sql.Tx) error {
		if t.ID == 0 {
			res, err := tx.Exec(`INSERT INTO "transaction" (date) VALUES (?)`, formatDate(t.Date))
			if err != nil {
				return fmt.Errorf("inserting transaction: %w", err)
			}
			if t.ID, err = res.LastInsertId(); err != nil {
				return err
			}
		} else {
			_, err := tx.Exec(`UPDATE "transaction" SET date = ? WHERE id = ?`, formatDate(t.Date), t.ID)
			if err != nil {
				return fmt.Errorf("updating transaction %d: %w", t.ID, err)
			}
		}

		kept := make(map[int64]bool, len(t.Subs))
		for i := range t.Subs {
			sub := &t.Subs[i]
			sub.TransactionID = t.ID
			if sub.ID == 0 {
				res, err := tx.Exec(`
					INSERT INTO subtransaction (transaction_id, comment, origin_id, target_id, quantity, quote_price)
					VALUES (?, ?, ?, ?, ?, ?)`,
					sub.TransactionID, sub.Comment, sub.OriginID, sub.TargetID,
					sub.Quantity.String(), sub.QuotePrice.String(),
				)
				if err != nil {
					return fmt.Errorf("inserting subtransaction: %w", err)
				}
				if sub.ID, err = res.LastInsertId(); err != nil {
					return err
				}
			} else {
				_, err := tx.Exec(`
					UPDATE subtransaction
					   SET comment = ?, origin_id = ?, target_id = ?, quantity = ?, quote_price = ?
					 WHERE id = ?`,
					sub.Comment, sub.OriginID, sub.TargetID,
					sub.Quantity.String(), sub.QuotePrice.String(), sub.ID,
				)
				if err != nil {
					return fmt.Errorf("updating subtransaction %d: %w", sub.ID, err)
				}
			}
			kept[sub.ID] = true
		}

		rows, err := tx.Query("SELECT id FROM subtransaction WHERE transaction_id = ?", t.ID)
		if err != nil {
			return fmt.Errorf("listing subtransactions of %d: %w", t.ID, err)
		}
		var stale []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			if !kept[id] {
				stale = append(stale, id)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		for _, id := range stale {
			if _, err := tx.Exec("DELETE FROM subtransaction WHERE id = ?", id); err != nil {
				return fmt.Errorf("deleting subtransaction %d: %w", id, err)
			}
		}
		return nil
	})
}

// ListTransactions returns every stored transaction with its
// subtransactions, ordered by date then id.
func (s *Store) ListTransactions() ([]model.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.date, s.id, s.comment, s.origin_id, s.target_id, s.quantity, s.quote_price
		  FROM "transaction" t
		  JOIN subtransaction s ON s.transaction_id = t.id
		 ORDER BY t.date ASC, t.id ASC, s.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var list []model.Transaction
	for rows.Next() {
		var txID int64
		var rawDate string
		var sub model.Subtransaction
		var quantity, quotePrice string
		err := rows.Scan(&txID, &rawDate, &sub.ID, &sub.Comment, &sub.OriginID, &sub.TargetID, &quantity, &quotePrice)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		sub.TransactionID = txID
		if sub.Quantity, err = parseDecimal(quantity); err != nil {
			return nil, err
		}
		if sub.QuotePrice, err = parseDecimal(quotePrice); err != nil {
			return nil, err
		}

		if len(list) == 0 || list[len(list)-1].ID != txID {
			date, err := parseDate(rawDate)
			if err != nil {
				return nil, err
			}
			list = append(list, model.Transaction{ID: txID, Date: date})
		}
		last := &list[len(list)-1]
		last.Subs = append(last.Subs, sub)
	}
	return list, rows.Err()
}

// DeleteTransaction removes a transaction and, through the foreign key
// cascade, its subtransactions.
func (s *Store) DeleteTransaction(id int64) error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM "transaction" WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting transaction %d: %w", id, err)
		}
		return nil
	})
}

// DeleteSubtransaction removes one subtransaction. A transaction left
// with no subtransactions is removed as well.
func (s *Store) DeleteSubtransaction(id int64) error {
	return s.withTx(func(tx *sql.Tx) error {
		var transactionID int64
		err := tx.QueryRow("SELECT transaction_id FROM subtransaction WHERE id = ?", id).Scan(&transactionID)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading subtransaction %d: %w", id, err)
		}

		if _, err := tx.Exec("DELETE FROM subtransaction WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting subtransaction %d: %w", id, err)
		}

		var remaining int
		err = tx.QueryRow("SELECT COUNT(*) FROM subtransaction WHERE transaction_id = ?", transactionID).Scan(&remaining)
		if err != nil {
			return fmt.Errorf("counting subtransactions of %d: %w", transactionID, err)
		}
		if remaining == 0 {
			if _, err := tx.Exec(`DELETE FROM "transaction" WHERE id = ?`, transactionID); err != nil {
				return fmt.Errorf("deleting transaction %d: %w", transactionID, err)
			}
		}
		return nil
	})
}

// ListEntriesForAccount returns every subtransaction that touches the
// account as origin or target, joined with its transaction date and both
// endpoint accounts, ordered by date then transaction then row.
func (s *Store) ListEntriesForAccount(accountID int64) ([]model.Entry, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.transaction_id, t.date, s.comment, s.quantity, s.quote_price,
		       (SELECT COUNT(*) FROM subtransaction c WHERE c.transaction_id = s.transaction_id),
		       o.id, o.type, o.name, o.asset_id,
		       g.id, g.type, g.name, g.asset_id
		  FROM subtransaction s
		  JOIN "transaction" t ON s.transaction_id = t.id
		  JOIN account o ON s.origin_id = o.id
		  JOIN account g ON s.target_id = g.id
		 WHERE o.id = ? OR g.id = ?
		 ORDER BY t.date ASC, t.id ASC, s.id ASC`,
		accountID, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing entries of account %d: %w", accountID, err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var e model.Entry
		var rawDate, quantity, quotePrice string
		err := rows.Scan(
			&e.SubtransactionID, &e.TransactionID, &rawDate, &e.Comment, &quantity, &quotePrice, &e.SubCount,
			&e.Origin.ID, &e.Origin.Type, &e.Origin.Name, &e.Origin.AssetID,
			&e.Target.ID, &e.Target.Type, &e.Target.Name, &e.Target.AssetID,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if e.Date, err = parseDate(rawDate); err != nil {
			return nil, err
		}
		if e.Quantity, err = parseDecimal(quantity); err != nil {
			return nil, err
		}
		if e.QuotePrice, err = parseDecimal(quotePrice); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MostRecentQuote returns the quote price of the latest subtransaction
// whose target account holds the target asset and whose origin account
// holds the origin asset. The boolean result is false when no such
// subtransaction exists.
func (s *Store) MostRecentQuote(targetAssetID, originAssetID int64) (decimal.Decimal, time.Time, bool, error) {
	var quotePrice, rawDate string
	err := s.db.QueryRow(`
		SELECT s.quote_price, t.date
		  FROM subtransaction s
		  JOIN "transaction" t ON s.transaction_id = t.id
		  JOIN account o ON s.origin_id = o.id
		  JOIN account g ON s.target_id = g.id
		 WHERE g.asset_id = ? AND o.asset_id = ?
		 ORDER BY t.date DESC, t.id DESC
		 LIMIT 1`,
		targetAssetID, originAssetID,
	).Scan(&quotePrice, &rawDate)
	if err == sql.ErrNoRows {
		return decimal.Decimal{}, time.Time{}, false, nil
	}
	if err != nil {
		return decimal.Decimal{}, time.Time{}, false, fmt.Errorf("reading quote: %w", err)
	}

	price, err := parseDecimal(quotePrice)
	if err != nil {
		return decimal.Decimal{}, time.Time{}, false, err
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return decimal.Decimal{}, time.Time{}, false, err
	}
	return price, date, true, nil
}
