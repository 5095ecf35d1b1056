// Package quotes resolves exchange rates between assets from the quote
// prices recorded on past transactions.
package quotes

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/glourencoffee/mymoneyman/internal/logger"
	"github.com/glourencoffee/mymoneyman/internal/model"
)

var one = decimal.NewFromInt(1)

const quoteKeyFormat = "%d/%d/%t"

// Source supplies recorded quotes and asset lookups. *store.Store
// satisfies it.
type Source interface {
	// MostRecentQuote returns the latest recorded price of the target
	// asset in units of the origin asset.
	MostRecentQuote(targetAssetID, originAssetID int64) (decimal.Decimal, time.Time, bool, error)
	GetAsset(id int64) (model.Asset, bool, error)
}

type cachedQuote struct {
	price decimal.Decimal
	ok    bool
}

// Resolver answers "how much of other is one unit of self worth",
// caching results, including failed lookups, until the next write.
type Resolver struct {
	source Source
	cache  *cache.Cache
}

// NewResolver returns a resolver reading quotes from source.
func NewResolver(source Source) *Resolver {
	return &Resolver{
		source: source,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Price resolves the price of one unit of self in units of other.
//
// It looks for the most recent transaction that exchanged other for
// self. With twoWay set, any price resolvable in the opposite direction
// also resolves, as the unrounded inverse 1/p. A security with no
// recorded exchange against other additionally tries going through its
// denominating currency, multiplying the two legs and rounding to
// other's precision; the currency bridge applies from either side of a
// two-way resolution.
//
// The boolean result is false when no recorded exchange connects the
// two assets. Only storage failures return an error.
func (r *Resolver) Price(self, other model.Asset, twoWay bool) (decimal.Decimal, bool, error) {
	if self.ID == other.ID {
		return one, true, nil
	}

	key := fmt.Sprintf(quoteKeyFormat, self.ID, other.ID, twoWay)
	if hit, found := r.cache.Get(key); found {
		cached := hit.(cachedQuote)
		return cached.price, cached.ok, nil
	}

	price, ok, err := r.resolve(self, other, twoWay)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	r.cache.Set(key, cachedQuote{price: price, ok: ok}, cache.DefaultExpiration)
	return price, ok, nil
}

// Flush empties the cache. The ledger service calls it after every
// write, since any transaction may carry a fresher quote.
func (r *Resolver) Flush() {
	r.cache.Flush()
}

func (r *Resolver) resolve(self, other model.Asset, twoWay bool) (decimal.Decimal, bool, error) {
	price, _, ok, err := r.source.MostRecentQuote(self.ID, other.ID)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	if ok {
		return price, true, nil
	}

	if twoWay {
		// The reverse direction goes through the full one-way algorithm,
		// so a security's currency bridge resolves from either side.
		reverse, ok, err := r.resolve(other, self, false)
		if err != nil {
			return decimal.Decimal{}, false, err
		}
		if ok && !reverse.IsZero() {
			return one.Div(reverse), true, nil
		}
	}

	if self.IsSecurity() && other.IsCurrency() && self.CurrencyID != other.ID {
		return r.throughCurrency(self, other)
	}

	logger.L.Debug("no quote found",
		"self", self.ScopedCode(":"), "other", other.ScopedCode(":"), "two_way", twoWay)
	return decimal.Decimal{}, false, nil
}

// throughCurrency prices a security in a foreign currency by combining
// its price in its own denominating currency with that currency's
// exchange rate. At most this one intermediate hop is taken.
func (r *Resolver) throughCurrency(security, other model.Asset) (decimal.Decimal, bool, error) {
	currency, found, err := r.source.GetAsset(security.CurrencyID)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	if !found || !currency.IsCurrency() {
		return decimal.Decimal{}, false, nil
	}

	base, ok, err := r.Price(security, currency, true)
	if err != nil || !ok {
		return decimal.Decimal{}, false, err
	}
	rate, ok, err := r.Price(currency, other, true)
	if err != nil || !ok {
		return decimal.Decimal{}, false, err
	}
	return base.Mul(rate).Round(other.Precision), true, nil
}
