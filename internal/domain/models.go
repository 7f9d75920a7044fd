package domain

import (
	"fmt"

	"github.com/kadcom/pphc/internal/money"
)

// Bonus is a one-off payment (THR, annual bonus) received in a given month.
type Bonus struct {
	Month  int         `json:"month" yaml:"month"`
	Amount money.Money `json:"amount" yaml:"amount"`
	Name   string      `json:"name" yaml:"name"`
}

// PPh21Input describes one taxpayer for a PPh 21/26 calculation.
type PPh21Input struct {
	SubjectType         SubjectType `json:"subject_type"`
	BrutoMonthly        money.Money `json:"bruto_monthly"`
	MonthsPaid          int         `json:"months_paid"`
	PensionContribution money.Money `json:"pension_contribution"`
	ZakatOrDonation     money.Money `json:"zakat_or_donation"`
	PTKPStatus          PTKPStatus  `json:"ptkp_status"`
	Scheme              Scheme      `json:"scheme"`
	TERCategory         TERCategory `json:"ter_category"`
	Bonuses             []Bonus     `json:"bonuses,omitempty"`

	// Carried for PPh 26 and daily workers; the permanent-employee path
	// does not read them.
	ForeignTaxRate money.Money `json:"foreign_tax_rate"`
	IsDailyWorker  bool        `json:"is_daily_worker"`
}

// ApplyDefaults fills unset fields the way an empty form is interpreted:
// permanent employee, TK/0, the old scheme, twelve months, and the TER
// category that matches the PTKP status.
func (in *PPh21Input) ApplyDefaults() {
	if in.SubjectType == "" {
		in.SubjectType = SubjectPegawaiTetap
	}
	if in.PTKPStatus == "" {
		in.PTKPStatus = PTKPTK0
	}
	if in.Scheme == "" {
		in.Scheme = SchemeLama
	}
	if in.TERCategory == "" {
		in.TERCategory = TERCategoryFor(in.PTKPStatus)
	}
	if in.MonthsPaid == 0 {
		in.MonthsPaid = 12
	}
}

// Validate rejects enum values outside their variants.
func (in *PPh21Input) Validate() error {
	if !in.SubjectType.Valid() {
		return fmt.Errorf("%w: %w %q", ErrInvalidInput, ErrUnknownSubjectType, in.SubjectType)
	}
	if !in.PTKPStatus.Valid() {
		return fmt.Errorf("%w: ptkp_status %q", ErrInvalidInput, in.PTKPStatus)
	}
	if !in.Scheme.Valid() {
		return fmt.Errorf("%w: scheme %q", ErrInvalidInput, in.Scheme)
	}
	if !in.TERCategory.Valid() {
		return fmt.Errorf("%w: ter_category %q", ErrInvalidInput, in.TERCategory)
	}
	return nil
}

// RateInput is the base-times-rate shape shared by PPh 22, PPh 23 and
// PPh Final 4(2).
type RateInput struct {
	Base money.Money `json:"base"`
	Rate money.Money `json:"rate"`
}

// Validate rejects negative bases and rates.
func (in RateInput) Validate() error {
	if in.Base.IsNegative() {
		return fmt.Errorf("%w: negative base %s", ErrInvalidInput, in.Base)
	}
	if in.Rate.IsNegative() {
		return fmt.Errorf("%w: negative rate %s", ErrInvalidInput, in.Rate)
	}
	return nil
}

// PPh22Input is withholding on the import or purchase of goods.
type PPh22Input struct {
	DPP  money.Money `json:"dpp"`
	Rate money.Money `json:"rate"`
}

func (in *PPh22Input) rate() RateInput { return RateInput{Base: in.DPP, Rate: in.Rate} }

// PPh23Input is withholding on services, royalties and similar income.
type PPh23Input struct {
	Bruto money.Money `json:"bruto"`
	Rate  money.Money `json:"rate"`
}

func (in *PPh23Input) rate() RateInput { return RateInput{Base: in.Bruto, Rate: in.Rate} }

// PPh4_2Input is final income tax on e.g. rent or construction services.
type PPh4_2Input struct {
	Bruto money.Money `json:"bruto"`
	Rate  money.Money `json:"rate"`
}

func (in *PPh4_2Input) rate() RateInput { return RateInput{Base: in.Bruto, Rate: in.Rate} }

// Validate reports whether the base and rate are usable.
func (in *PPh22Input) Validate() error  { return in.rate().Validate() }
func (in *PPh23Input) Validate() error  { return in.rate().Validate() }
func (in *PPh4_2Input) Validate() error { return in.rate().Validate() }

// PPNInput is a value-added tax calculation. In inclusive mode DPP holds the
// stated price including PPN.
type PPNInput struct {
	DPP  money.Money `json:"dpp"`
	Rate money.Money `json:"rate"`
	Mode PPNMode     `json:"mode"`
}

func (in *PPNInput) ApplyDefaults() {
	if in.Mode == "" {
		in.Mode = PPNExclusive
	}
}

func (in *PPNInput) Validate() error {
	if !in.Mode.Valid() {
		return fmt.Errorf("%w: mode %q", ErrInvalidInput, in.Mode)
	}
	if in.Rate.Cmp(money.Rupiah(1)) >= 0 {
		return fmt.Errorf("%w: ppn rate %s must be below 1", ErrInvalidInput, in.Rate)
	}
	return RateInput{Base: in.DPP, Rate: in.Rate}.Validate()
}

// PPnBMInput is PPN plus the luxury-goods sales tax on the same base.
type PPnBMInput struct {
	DPP       money.Money `json:"dpp"`
	PPNRate   money.Money `json:"ppn_rate"`
	PPnBMRate money.Money `json:"ppnbm_rate"`
}

func (in *PPnBMInput) Validate() error {
	if err := (RateInput{Base: in.DPP, Rate: in.PPNRate}).Validate(); err != nil {
		return err
	}
	if in.PPnBMRate.IsNegative() {
		return fmt.Errorf("%w: negative rate %s", ErrInvalidInput, in.PPnBMRate)
	}
	return nil
}
