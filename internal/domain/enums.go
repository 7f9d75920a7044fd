package domain

// SubjectType identifies the category of PPh 21/26 taxpayer.
type SubjectType string

const (
	SubjectPegawaiTetap      SubjectType = "pegawai_tetap"
	SubjectPensiunan         SubjectType = "pensiunan"
	SubjectPegawaiTidakTetap SubjectType = "pegawai_tidak_tetap"
	SubjectBukanPegawai      SubjectType = "bukan_pegawai"
	SubjectPesertaKegiatan   SubjectType = "peserta_kegiatan"
	SubjectProgramPensiun    SubjectType = "program_pensiun"
	SubjectMantanPegawai     SubjectType = "mantan_pegawai"
	SubjectWPLN              SubjectType = "wpln"
)

// SubjectTitles maps each subject type to the heading used in breakdowns.
var SubjectTitles = map[SubjectType]string{
	SubjectPegawaiTetap:      "Pegawai Tetap",
	SubjectPensiunan:         "Pensiunan",
	SubjectPegawaiTidakTetap: "Pegawai Tidak Tetap",
	SubjectBukanPegawai:      "Bukan Pegawai",
	SubjectPesertaKegiatan:   "Peserta Kegiatan",
	SubjectProgramPensiun:    "Program Pensiun",
	SubjectMantanPegawai:     "Mantan Pegawai",
	SubjectWPLN:              "WPLN (PPh 26)",
}

func (s SubjectType) Valid() bool {
	_, ok := SubjectTitles[s]
	return ok
}

// PTKPStatus is the marital/dependent status that selects the non-taxable
// income allowance.
type PTKPStatus string

const (
	PTKPTK0 PTKPStatus = "TK/0"
	PTKPTK1 PTKPStatus = "TK/1"
	PTKPTK2 PTKPStatus = "TK/2"
	PTKPTK3 PTKPStatus = "TK/3"
	PTKPK0  PTKPStatus = "K/0"
	PTKPK1  PTKPStatus = "K/1"
	PTKPK2  PTKPStatus = "K/2"
	PTKPK3  PTKPStatus = "K/3"
)

// PTKPStatuses lists every status in table order.
var PTKPStatuses = []PTKPStatus{
	PTKPTK0, PTKPTK1, PTKPTK2, PTKPTK3,
	PTKPK0, PTKPK1, PTKPK2, PTKPK3,
}

func (s PTKPStatus) Valid() bool {
	for _, v := range PTKPStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Scheme selects how PPh 21 for permanent employees is withheld.
type Scheme string

const (
	SchemeLama Scheme = "lama"
	SchemeTER  Scheme = "ter"
)

func (s Scheme) Valid() bool {
	return s == SchemeLama || s == SchemeTER
}

// TERCategory selects the effective-rate table (PP 58/2023).
type TERCategory string

const (
	TERCategoryA TERCategory = "A"
	TERCategoryB TERCategory = "B"
	TERCategoryC TERCategory = "C"
)

// TERCategories lists the categories in table order.
var TERCategories = []TERCategory{TERCategoryA, TERCategoryB, TERCategoryC}

func (c TERCategory) Valid() bool {
	return c == TERCategoryA || c == TERCategoryB || c == TERCategoryC
}

// TERCategoryFor returns the category the regulation assigns to a PTKP
// status: A for TK/0, TK/1 and K/0; C for K/3; B for the rest.
func TERCategoryFor(s PTKPStatus) TERCategory {
	switch s {
	case PTKPTK0, PTKPTK1, PTKPK0:
		return TERCategoryA
	case PTKPK3:
		return TERCategoryC
	default:
		return TERCategoryB
	}
}

// PPNMode tells whether the stated PPN base already includes the tax.
type PPNMode string

const (
	PPNExclusive PPNMode = "exclusive"
	PPNInclusive PPNMode = "inclusive"
)

func (m PPNMode) Valid() bool {
	return m == PPNExclusive || m == PPNInclusive
}

// TaxKind names the calculations exposed by the service.
type TaxKind string

const (
	TaxPPh21  TaxKind = "pph21"
	TaxPPh22  TaxKind = "pph22"
	TaxPPh23  TaxKind = "pph23"
	TaxPPh4_2 TaxKind = "pph4-2"
	TaxPPN    TaxKind = "ppn"
	TaxPPnBM  TaxKind = "ppnbm"
)

// TaxKinds lists every calculation in route order.
var TaxKinds = []TaxKind{TaxPPh21, TaxPPh22, TaxPPh23, TaxPPh4_2, TaxPPN, TaxPPnBM}

// TaxTitles are the headings used on exported documents.
var TaxTitles = map[TaxKind]string{
	TaxPPh21:  "PPh 21/26",
	TaxPPh22:  "PPh 22",
	TaxPPh23:  "PPh 23",
	TaxPPh4_2: "PPh Final Pasal 4(2)",
	TaxPPN:    "PPN",
	TaxPPnBM:  "PPnBM",
}

func (k TaxKind) Valid() bool {
	_, ok := TaxTitles[k]
	return ok
}

// ExportFormat is a rendering of a computed breakdown.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
	FormatText ExportFormat = "text"
)

func (f ExportFormat) Valid() bool {
	return f == FormatJSON || ExportContentTypes[f] != ""
}

// Extension is the file suffix used for downloads.
func (f ExportFormat) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// ExportContentTypes maps each downloadable format to its MIME type.
var ExportContentTypes = map[ExportFormat]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
	FormatText: "text/plain; charset=utf-8",
}
