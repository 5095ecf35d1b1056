package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityAdd(t *testing.T) {
	dir := newBook(t)

	out := mustRun(t, dir, "security", "add", "NASDAQ:AAPL", "--name", "Apple Inc.")
	assert.Contains(t, out, "Added security NASDAQ:AAPL (Apple Inc.), priced in USD")

	list := mustRun(t, dir, "security", "list")
	assert.Contains(t, list, "NASDAQ:AAPL")
	assert.Contains(t, list, "Apple Inc.")
	assert.Contains(t, list, "stock")
	assert.Contains(t, list, "in USD")
}

func TestSecurityAdd_Currency(t *testing.T) {
	dir := newBook(t)

	mustRun(t, dir, "security", "add", "B3:PETR4", "--currency", "BRL", "--type", "stock")

	list := mustRun(t, dir, "security", "list")
	assert.Contains(t, list, "B3:PETR4")
	assert.Contains(t, list, "in BRL")
}

func TestSecurityAdd_BadArgument(t *testing.T) {
	dir := newBook(t)

	out, err := runIn(t, dir, "security", "add", "AAPL")
	require.Error(t, err)
	assert.Contains(t, out, "MARKET:CODE")

	out, err = runIn(t, dir, "security", "add", "NASDAQ:MSFT", "--type", "option")
	require.Error(t, err)
	assert.Contains(t, out, "invariant 3")

	out, err = runIn(t, dir, "security", "add", "NASDAQ:MSFT", "--currency", "XXQ")
	require.Error(t, err)
	assert.Contains(t, out, "not found")
}
