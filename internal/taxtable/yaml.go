package taxtable

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
)

// Amounts in the file are plain decimal strings ("54000000", "0.0500").
// A top bracket ceiling of "max" stands for Sentinel.
type fileSet struct {
	Name    string                   `yaml:"name"`
	PTKP    map[string]string        `yaml:"ptkp"`
	Pasal17 []fileLayer              `yaml:"pasal17"`
	Monthly map[string][]fileBracket `yaml:"ter_monthly"`
	Daily   map[string][]fileBracket `yaml:"ter_daily"`
}

type fileLayer struct {
	Width string `yaml:"width"`
	Rate  string `yaml:"rate"`
}

type fileBracket struct {
	Ceiling string `yaml:"ceiling"`
	Rate    string `yaml:"rate"`
}

const maxCeiling = "max"

// LoadFile reads a table set from a YAML file.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tax tables %s: %w", path, err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// LoadYAML decodes and validates a table set.
func LoadYAML(r io.Reader) (*Set, error) {
	var fs fileSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fs); err != nil {
		return nil, fmt.Errorf("%w: decoding yaml: %v", domain.ErrInvalidTable, err)
	}

	s := &Set{
		Name:       fs.Name,
		Allowances: make(map[domain.PTKPStatus]money.Money, len(fs.PTKP)),
		Monthly:    make(map[domain.TERCategory][]Bracket, len(fs.Monthly)),
		Daily:      make(map[domain.TERCategory][]Bracket, len(fs.Daily)),
	}

	for k, v := range fs.PTKP {
		status := domain.PTKPStatus(k)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown PTKP status %q", domain.ErrInvalidTable, k)
		}
		amount, err := parseAmount("ptkp "+k, v)
		if err != nil {
			return nil, err
		}
		s.Allowances[status] = amount
	}

	for i, l := range fs.Pasal17 {
		where := fmt.Sprintf("pasal17[%d]", i)
		width, err := parseCeiling(where+".width", l.Width)
		if err != nil {
			return nil, err
		}
		r, err := parseAmount(where+".rate", l.Rate)
		if err != nil {
			return nil, err
		}
		s.Layers = append(s.Layers, Layer{Width: width, Rate: r})
	}

	if err := decodeTER("ter_monthly", fs.Monthly, s.Monthly); err != nil {
		return nil, err
	}
	if err := decodeTER("ter_daily", fs.Daily, s.Daily); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeTER(section string, in map[string][]fileBracket, out map[domain.TERCategory][]Bracket) error {
	for k, rows := range in {
		cat := domain.TERCategory(strings.ToUpper(k))
		if !cat.Valid() {
			return fmt.Errorf("%w: %s: unknown category %q", domain.ErrInvalidTable, section, k)
		}
		table := make([]Bracket, 0, len(rows))
		for i, row := range rows {
			where := fmt.Sprintf("%s.%s[%d]", section, cat, i)
			c, err := parseCeiling(where+".ceiling", row.Ceiling)
			if err != nil {
				return err
			}
			r, err := parseAmount(where+".rate", row.Rate)
			if err != nil {
				return err
			}
			table = append(table, Bracket{Ceiling: c, Rate: r})
		}
		out[cat] = table
	}
	return nil
}

func parseCeiling(where, v string) (money.Money, error) {
	if strings.EqualFold(strings.TrimSpace(v), maxCeiling) {
		return Sentinel, nil
	}
	return parseAmount(where, v)
}

func parseAmount(where, v string) (money.Money, error) {
	m, err := money.Parse(v)
	if err != nil {
		return money.Zero, fmt.Errorf("%w: %s: %v", domain.ErrInvalidTable, where, err)
	}
	return m, nil
}

// WriteYAML encodes s in the format LoadYAML reads.
func WriteYAML(w io.Writer, s *Set) error {
	fs := fileSet{
		Name:    s.Name,
		PTKP:    make(map[string]string, len(s.Allowances)),
		Monthly: make(map[string][]fileBracket, len(s.Monthly)),
		Daily:   make(map[string][]fileBracket, len(s.Daily)),
	}
	for k, v := range s.Allowances {
		fs.PTKP[string(k)] = v.String()
	}
	for _, l := range s.Layers {
		fs.Pasal17 = append(fs.Pasal17, fileLayer{Width: formatCeiling(l.Width), Rate: l.Rate.String()})
	}
	encodeTER(s.Monthly, fs.Monthly)
	encodeTER(s.Daily, fs.Daily)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fs); err != nil {
		return fmt.Errorf("encoding tax tables: %w", err)
	}
	return enc.Close()
}

func encodeTER(in map[domain.TERCategory][]Bracket, out map[string][]fileBracket) {
	for cat, table := range in {
		rows := make([]fileBracket, len(table))
		for i, b := range table {
			rows[i] = fileBracket{Ceiling: formatCeiling(b.Ceiling), Rate: b.Rate.String()}
		}
		out[string(cat)] = rows
	}
}

func formatCeiling(m money.Money) string {
	if m == Sentinel {
		return maxCeiling
	}
	return m.String()
}
