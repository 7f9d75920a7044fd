package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/csvexport"
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/observability/metrics"
	"github.com/kadcom/pphc/internal/report"
)

// Export is a rendered breakdown ready to be served as a download.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService renders ledgers in the downloadable formats.
type ExportService interface {
	Render(ctx context.Context, kind domain.TaxKind, format domain.ExportFormat, l *breakdown.Ledger) (*Export, error)
}

type exportService struct {
	log *zap.Logger
	now func() time.Time
}

// NewExportService creates a new ExportService implementation.
func NewExportService(log *zap.Logger) ExportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &exportService{log: log.Named("export"), now: time.Now}
}

func (s *exportService) Render(ctx context.Context, kind domain.TaxKind, format domain.ExportFormat, l *breakdown.Ledger) (*Export, error) {
	contentType, ok := domain.ExportContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: nothing to export", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	doc := report.Document{Title: domain.TaxTitles[kind], Generated: now, Ledger: l}

	start := time.Now()
	data, err := render(format, doc)
	metrics.ObserveExport(string(format), metrics.Result(err), time.Since(start))
	if err != nil {
		s.log.Error("export failed", zap.String("kind", string(kind)), zap.String("format", string(format)), zap.Error(err))
		return nil, fmt.Errorf("rendering %s: %w", format, err)
	}

	return &Export{
		Data:        data,
		ContentType: contentType,
		Filename:    csvexport.BuildFilename(string(kind), format.Extension(), now),
	}, nil
}

func render(format domain.ExportFormat, doc report.Document) ([]byte, error) {
	switch format {
	case domain.FormatCSV:
		var buf bytes.Buffer
		if err := csvexport.Write(&buf, doc.Ledger); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case domain.FormatXLSX:
		return report.XLSX(doc)
	case domain.FormatPDF:
		return report.PDF(doc)
	default:
		return report.Text(doc)
	}
}
