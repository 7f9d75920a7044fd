package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/calc"
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
	"github.com/kadcom/pphc/internal/report"
	"github.com/kadcom/pphc/internal/service"
	"github.com/kadcom/pphc/internal/taxtable"
)

// app holds the settings shared by every subcommand.
type app struct {
	out, errOut io.Writer

	format     string
	output     string
	tablesFile string
	textPolicy string

	calc    service.CalculatorService
	exports service.ExportService
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "pphc",
		Short:         "Indonesian tax calculator",
		Long:          "pphc computes PPh 21/26, PPh 22, PPh 23, PPh Final Pasal 4(2), PPN and PPnBM\nand prints the itemized breakdown.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.format, "format", "f", string(domain.FormatText), "output format: text, json, csv, xlsx or pdf")
	pf.StringVarP(&a.output, "output", "o", "", "write to this file instead of standard output")
	pf.StringVar(&a.tablesFile, "tables", "", "YAML tax table set replacing the statutory tables")
	pf.StringVar(&a.textPolicy, "text-policy", string(breakdown.Truncate), "overlong label handling: truncate, reject or unbounded")

	root.AddCommand(
		newPPh21Cmd(a),
		newPPh22Cmd(a),
		newPPh23Cmd(a),
		newPPh4_2Cmd(a),
		newPPNCmd(a),
		newPPnBMCmd(a),
		newTablesCmd(a),
		newTokenCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) init() error {
	policy, err := breakdown.ParseTextPolicy(a.textPolicy)
	if err != nil {
		return err
	}
	opts := []calc.Option{calc.WithTextPolicy(policy)}
	if a.tablesFile != "" {
		set, err := taxtable.LoadFile(a.tablesFile)
		if err != nil {
			return err
		}
		opts = append(opts, calc.WithTables(set))
	}
	a.calc = service.NewCalculatorService(calc.New(opts...), nil)
	a.exports = service.NewExportService(nil)
	return nil
}

// result is the JSON shape written by --format json.
type result struct {
	Kind        domain.TaxKind         `json:"kind"`
	TotalTax    money.Money            `json:"total_tax"`
	Rows        []breakdown.Row        `json:"rows"`
	Withholding *breakdown.Withholding `json:"withholding,omitempty"`
}

// emit renders the ledger in the selected format and releases it.
func (a *app) emit(ctx context.Context, kind domain.TaxKind, l *breakdown.Ledger, err error) error {
	if err != nil {
		return err
	}
	defer l.Release()

	format := domain.ExportFormat(strings.ToLower(a.format))
	if !format.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, a.format)
	}

	var data []byte
	switch format {
	case domain.FormatJSON:
		data, err = json.MarshalIndent(result{Kind: kind, TotalTax: l.TotalTax, Rows: l.Rows, Withholding: l.Withholding}, "", "  ")
		data = append(data, '\n')
	case domain.FormatText:
		// The terminal table keeps the generic banner; downloads carry the tax title.
		data, err = report.Text(report.Document{Generated: time.Now(), Ledger: l})
	default:
		var exp *service.Export
		exp, err = a.exports.Render(ctx, kind, format, l)
		if exp != nil {
			data = exp.Data
		}
	}
	if err != nil {
		return err
	}
	return a.write(data)
}

func (a *app) write(data []byte) error {
	if a.output == "" {
		_, err := a.out.Write(data)
		return err
	}
	if err := os.WriteFile(a.output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", a.output, err)
	}
	fmt.Fprintf(a.errOut, "wrote %s (%d bytes)\n", a.output, len(data))
	return nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(a.out, "pphc version %s\nIndonesian Tax Calculator Library\n", calc.Version())
			return nil
		},
	}
}

func newTokenCmd(a *app) *cobra.Command {
	var secret, issuer, subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("PPHC_AUTH_JWT_SECRET")
			}
			token, err := service.NewTokenService(secret, issuer).Issue(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "HS256 signing secret (default $PPHC_AUTH_JWT_SECRET)")
	cmd.Flags().StringVar(&issuer, "issuer", "pphc", "token issuer; must match the server's auth.issuer")
	cmd.Flags().StringVar(&subject, "subject", "cli", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
