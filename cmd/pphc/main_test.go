package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pphc version 0.1a\nIndonesian Tax Calculator Library\n", out)
}

func TestPPh21_Demo(t *testing.T) {
	out, _, err := execute(t, "pph21")
	require.NoError(t, err)
	banner := "\n" + strings.Repeat("=", 40) + "\n  Tax Calculation Result\n" + strings.Repeat("=", 40) + "\n"
	assert.True(t, strings.HasPrefix(out, banner), out)
	assert.NotContains(t, out, "PPh 21/26")
	assert.Contains(t, out, "Total Tax: 2,940,000.0000 IDR")
}

func TestPPh21_JSONWithBonus(t *testing.T) {
	out, _, err := execute(t, "pph21", "-f", "json",
		"--bruto", "250.000.000", "--ptkp", "k/2", "--pension", "0",
		"--bonus", "3:250000000:THR")
	require.NoError(t, err)

	var res result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.TaxPPh21, res.Kind)
	assert.Equal(t, money.Rupiah(896_950_000), res.TotalTax)
	require.NotNil(t, res.Withholding)
	assert.Equal(t, money.Rupiah(150_000_000), res.Withholding.Monthly[2])
	assert.Equal(t, money.Rupiah(46_950_000), res.Withholding.Adjustment)
}

func TestRateCommands(t *testing.T) {
	tests := []struct {
		args  []string
		total string
	}{
		{[]string{"pph22", "--dpp", "50000000", "--rate", "1.5%"}, "750,000.0000"},
		{[]string{"pph23"}, "200,000.0000"},
		{[]string{"pph4-2", "--rate", "0.1"}, "12,000,000.0000"},
		{[]string{"ppn", "--dpp", "111000000", "--mode", "inclusive"}, "11,000,000.0000"},
		{[]string{"ppnbm"}, "31,000,000.0000"},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, "Total Tax: "+tt.total+" IDR")
		})
	}
}

func TestInvalidInputs(t *testing.T) {
	_, _, err := execute(t, "pph23", "--bruto=-5")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = execute(t, "pph21", "--subject", "astronaut")
	assert.ErrorIs(t, err, domain.ErrUnknownSubjectType)

	_, _, err = execute(t, "ppn", "-f", "docx")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, _, err = execute(t, "pph21", "--bonus", "13:1")
	assert.ErrorContains(t, err, "month must be 1-12")

	_, _, err = execute(t, "pph22", "--rate", "abc")
	assert.Error(t, err)
}

func TestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ppn.csv")
	out, errOut, err := execute(t, "ppn", "-f", "csv", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Tax,11000000.0000")
}

func TestTables(t *testing.T) {
	out, _, err := execute(t, "tables", "ptkp")
	require.NoError(t, err)
	assert.Contains(t, out, "54,000,000.0000")
	assert.Equal(t, 9, strings.Count(out, "\n"))

	out, _, err = execute(t, "tables", "pasal17")
	require.NoError(t, err)
	assert.Contains(t, out, "35.00%")
	assert.Contains(t, out, "above")

	out, _, err = execute(t, "tables", "ter", "c", "--daily")
	require.NoError(t, err)
	assert.Contains(t, out, "Up to")

	_, _, err = execute(t, "tables", "ter", "Q")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTablesDumpRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	_, _, err := execute(t, "tables", "dump", "-o", path)
	require.NoError(t, err)

	out, _, err := execute(t, "--tables", path, "pph21")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Tax: 2,940,000.0000 IDR")
}

func TestToken(t *testing.T) {
	out, _, err := execute(t, "token", "--secret", "s3cret", "--subject", "ci")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."))

	t.Setenv("PPHC_AUTH_JWT_SECRET", "")
	_, _, err = execute(t, "token")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
