package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Chart(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "init", "--chart")
	assert.Contains(t, out, "Seeded default chart with 15 accounts")

	list := mustRun(t, dir, "account", "list")
	assert.Contains(t, list, "Checking")
	assert.Contains(t, list, "Salary")
	assert.Contains(t, list, "    Groceries  [expense, USD]")
	assert.Contains(t, list, "Opening Balances")
}

func TestAccountExport(t *testing.T) {
	dir := newBook(t)
	mustRun(t, dir, "account", "add", "Banks", "--type", "bank")
	mustRun(t, dir, "account", "add", "Checking", "--type", "bank", "--parent", "Banks",
		"--description", "daily expenses")

	out := mustRun(t, dir, "account", "export")
	assert.Contains(t, out, "name,parent,type,asset,precision,description")
	assert.Contains(t, out, "Banks,,bank,USD,,")
	assert.Contains(t, out, "Checking,Assets:Banks,bank,USD,,daily expenses")
}

func TestAccountImportRoundTrip(t *testing.T) {
	dir := newBook(t)

	// Build a chart in one book, export it, replay it into a second one.
	mustRun(t, dir, "account", "add", "Banks", "--type", "bank")
	mustRun(t, dir, "account", "add", "Checking", "--type", "bank", "--parent", "Banks")
	mustRun(t, dir, "account", "add", "Rent", "--type", "expense")

	chartFile := filepath.Join(dir, "chart.csv")
	mustRun(t, dir, "account", "export", "chart.csv")

	other := newBook(t)
	require.NoError(t, os.Rename(chartFile, filepath.Join(other, "chart.csv")))

	out := mustRun(t, other, "account", "import", "chart.csv")
	assert.Contains(t, out, "Imported 3 accounts")

	want := mustRun(t, dir, "account", "list")
	got := mustRun(t, other, "account", "list")
	assert.Equal(t, want, got)
}

func TestAccountImport_UnknownParent(t *testing.T) {
	dir := newBook(t)

	csv := "name,parent,type,asset,precision,description\nChecking,Assets:Banks,bank,USD,,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chart.csv"), []byte(csv), 0o644))

	out, err := runIn(t, dir, "account", "import", "chart.csv")
	require.Error(t, err)
	assert.Contains(t, out, "parent")
	assert.True(t, strings.Contains(out, "not found") || strings.Contains(out, "Banks"))
}
