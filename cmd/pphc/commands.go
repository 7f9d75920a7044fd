package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
	"github.com/kadcom/pphc/internal/taxtable"
)

// The pph21 defaults reproduce the demo calculation: Rp 10,000,000 a month
// for twelve months, Rp 100,000 pension, TK/0 under TER category A.
func newPPh21Cmd(a *app) *cobra.Command {
	var in domain.PPh21Input
	var subject, ptkp, scheme, category string

	cmd := &cobra.Command{
		Use:   "pph21",
		Short: "Calculate PPh 21/26",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.SubjectType = domain.SubjectType(subject)
			in.PTKPStatus = domain.PTKPStatus(strings.ToUpper(ptkp))
			in.Scheme = domain.Scheme(strings.ToLower(scheme))
			in.TERCategory = domain.TERCategory(strings.ToUpper(category))
			l, err := a.calc.PPh21(cmd.Context(), &in)
			return a.emit(cmd.Context(), domain.TaxPPh21, l, err)
		},
	}

	f := cmd.Flags()
	f.Var(newMoneyValue(&in.BrutoMonthly, money.Rupiah(10_000_000)), "bruto", "gross monthly income; 1.500.000 and 1.500.000,50 are read as grouped, a single dot as a decimal point")
	f.IntVar(&in.MonthsPaid, "months", 12, "months paid in the year (1-12)")
	f.Var(newMoneyValue(&in.PensionContribution, money.Rupiah(100_000)), "pension", "monthly pension contribution")
	f.Var(newMoneyValue(&in.ZakatOrDonation, money.Zero), "zakat", "annual zakat or mandatory donation")
	f.Var(&bonusValue{list: &in.Bonuses}, "bonus", "one-off payment as MONTH:AMOUNT[:NAME], repeatable")
	f.StringVar(&subject, "subject", string(domain.SubjectPegawaiTetap), "subject type")
	f.StringVar(&ptkp, "ptkp", string(domain.PTKPTK0), "PTKP status, TK/0 through K/3")
	f.StringVar(&scheme, "scheme", string(domain.SchemeTER), "withholding scheme: lama or ter")
	f.StringVar(&category, "category", "", "TER category A, B or C (derived from --ptkp when empty)")
	return cmd
}

func newPPh22Cmd(a *app) *cobra.Command {
	var in domain.PPh22Input
	cmd := &cobra.Command{
		Use:   "pph22",
		Short: "Calculate PPh 22",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.calc.PPh22(cmd.Context(), &in)
			return a.emit(cmd.Context(), domain.TaxPPh22, l, err)
		},
	}
	cmd.Flags().Var(newMoneyValue(&in.DPP, money.Rupiah(100_000_000)), "dpp", "tax base (DPP)")
	cmd.Flags().Var(newRateValue(&in.Rate, money.FromUnits(150)), "rate", "rate, e.g. 0.015 or 1.5%")
	return cmd
}

func newPPh23Cmd(a *app) *cobra.Command {
	var in domain.PPh23Input
	cmd := &cobra.Command{
		Use:   "pph23",
		Short: "Calculate PPh 23",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.calc.PPh23(cmd.Context(), &in)
			return a.emit(cmd.Context(), domain.TaxPPh23, l, err)
		},
	}
	cmd.Flags().Var(newMoneyValue(&in.Bruto, money.Rupiah(10_000_000)), "bruto", "gross amount")
	cmd.Flags().Var(newRateValue(&in.Rate, money.FromUnits(200)), "rate", "rate, e.g. 0.02 or 2%")
	return cmd
}

func newPPh4_2Cmd(a *app) *cobra.Command {
	var in domain.PPh4_2Input
	cmd := &cobra.Command{
		Use:   "pph4-2",
		Short: "Calculate PPh Final Pasal 4(2)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.calc.PPh4_2(cmd.Context(), &in)
			return a.emit(cmd.Context(), domain.TaxPPh4_2, l, err)
		},
	}
	cmd.Flags().Var(newMoneyValue(&in.Bruto, money.Rupiah(120_000_000)), "bruto", "gross amount")
	cmd.Flags().Var(newRateValue(&in.Rate, money.FromUnits(1000)), "rate", "final rate, e.g. 0.1 or 10%")
	return cmd
}

func newPPNCmd(a *app) *cobra.Command {
	var in domain.PPNInput
	var mode string
	cmd := &cobra.Command{
		Use:   "ppn",
		Short: "Calculate PPN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Mode = domain.PPNMode(strings.ToLower(mode))
			l, err := a.calc.PPN(cmd.Context(), &in)
			return a.emit(cmd.Context(), domain.TaxPPN, l, err)
		},
	}
	cmd.Flags().Var(newMoneyValue(&in.DPP, money.Rupiah(100_000_000)), "dpp", "tax base, or the stated price with --mode inclusive")
	cmd.Flags().Var(newRateValue(&in.Rate, money.FromUnits(1100)), "rate", "PPN rate, e.g. 0.11 or 11%")
	cmd.Flags().StringVar(&mode, "mode", string(domain.PPNExclusive), "exclusive or inclusive")
	return cmd
}

func newPPnBMCmd(a *app) *cobra.Command {
	var in domain.PPnBMInput
	cmd := &cobra.Command{
		Use:   "ppnbm",
		Short: "Calculate PPnBM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.calc.PPnBM(cmd.Context(), &in)
			return a.emit(cmd.Context(), domain.TaxPPnBM, l, err)
		},
	}
	cmd.Flags().Var(newMoneyValue(&in.DPP, money.Rupiah(100_000_000)), "dpp", "tax base (DPP)")
	cmd.Flags().Var(newRateValue(&in.PPNRate, money.FromUnits(1100)), "ppn-rate", "PPN rate")
	cmd.Flags().Var(newRateValue(&in.PPnBMRate, money.FromUnits(2000)), "ppnbm-rate", "PPnBM rate")
	return cmd
}

func newTablesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Show the tax tables in use",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ptkp",
		Short: "PTKP allowances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set := a.calc.Tables()
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "Status\tPTKP\t\n")
			for _, st := range domain.PTKPStatuses {
				fmt.Fprintf(tw, "%s\t%s\t\n", st, set.PTKP(st).Formatted())
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pasal17",
		Short: "Pasal 17 progressive layers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "Layer\tWidth\tRate\t\n")
			layers := a.calc.Tables().Layers
			for i, l := range layers {
				width := l.Width.Formatted()
				if i == len(layers)-1 {
					width = "above"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t\n", i+1, width, l.Rate.PercentString())
			}
			return tw.Flush()
		},
	})

	var daily bool
	ter := &cobra.Command{
		Use:   "ter <A|B|C>",
		Short: "TER effective-rate brackets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := domain.TERCategory(strings.ToUpper(args[0]))
			if !cat.Valid() {
				return fmt.Errorf("%w: TER category %q", domain.ErrInvalidInput, args[0])
			}
			set := a.calc.Tables()
			brackets := set.MonthlyTable(cat)
			if daily {
				brackets = set.DailyTable(cat)
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(tw, "Up to\tRate\t\n")
			for _, b := range brackets {
				ceiling := b.Ceiling.Formatted()
				if b.Ceiling == taxtable.Sentinel {
					ceiling = "above"
				}
				fmt.Fprintf(tw, "%s\t%s\t\n", ceiling, b.Rate.PercentString())
			}
			return tw.Flush()
		},
	}
	ter.Flags().BoolVar(&daily, "daily", false, "show the daily (harian) table")
	cmd.AddCommand(ter)

	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Write the table set as YAML, the format --tables reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.output == "" {
				return taxtable.WriteYAML(a.out, a.calc.Tables())
			}
			var sb strings.Builder
			if err := taxtable.WriteYAML(&sb, a.calc.Tables()); err != nil {
				return err
			}
			return a.write([]byte(sb.String()))
		},
	})
	return cmd
}
