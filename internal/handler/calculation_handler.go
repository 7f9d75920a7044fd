package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
	"github.com/kadcom/pphc/internal/service"
)

// CalculationHandler handles the tax calculation endpoints.
type CalculationHandler struct {
	calc    service.CalculatorService
	exports service.ExportService
}

// NewCalculationHandler creates a new CalculationHandler.
func NewCalculationHandler(calc service.CalculatorService, exports service.ExportService) *CalculationHandler {
	return &CalculationHandler{calc: calc, exports: exports}
}

// CalculationResult is the JSON body of a successful calculation.
type CalculationResult struct {
	Kind        domain.TaxKind         `json:"kind"`
	TotalTax    money.Money            `json:"total_tax"`
	Rows        []breakdown.Row        `json:"rows"`
	Withholding *breakdown.Withholding `json:"withholding,omitempty"`
	Version     string                 `json:"version"`
}

// PPh21 handles POST /api/v1/calculations/pph21
func (h *CalculationHandler) PPh21(c *gin.Context) {
	var in domain.PPh21Input
	if !bindInput(c, &in) {
		return
	}
	l, err := h.calc.PPh21(c.Request.Context(), &in)
	h.respond(c, domain.TaxPPh21, l, err)
}

// PPh22 handles POST /api/v1/calculations/pph22
func (h *CalculationHandler) PPh22(c *gin.Context) {
	var in domain.PPh22Input
	if !bindInput(c, &in) {
		return
	}
	l, err := h.calc.PPh22(c.Request.Context(), &in)
	h.respond(c, domain.TaxPPh22, l, err)
}

// PPh23 handles POST /api/v1/calculations/pph23
func (h *CalculationHandler) PPh23(c *gin.Context) {
	var in domain.PPh23Input
	if !bindInput(c, &in) {
		return
	}
	l, err := h.calc.PPh23(c.Request.Context(), &in)
	h.respond(c, domain.TaxPPh23, l, err)
}

// PPh4_2 handles POST /api/v1/calculations/pph4-2
func (h *CalculationHandler) PPh4_2(c *gin.Context) {
	var in domain.PPh4_2Input
	if !bindInput(c, &in) {
		return
	}
	l, err := h.calc.PPh4_2(c.Request.Context(), &in)
	h.respond(c, domain.TaxPPh4_2, l, err)
}

// PPN handles POST /api/v1/calculations/ppn
func (h *CalculationHandler) PPN(c *gin.Context) {
	var in domain.PPNInput
	if !bindInput(c, &in) {
		return
	}
	l, err := h.calc.PPN(c.Request.Context(), &in)
	h.respond(c, domain.TaxPPN, l, err)
}

// PPnBM handles POST /api/v1/calculations/ppnbm
func (h *CalculationHandler) PPnBM(c *gin.Context) {
	var in domain.PPnBMInput
	if !bindInput(c, &in) {
		return
	}
	l, err := h.calc.PPnBM(c.Request.Context(), &in)
	h.respond(c, domain.TaxPPnBM, l, err)
}

// bindInput decodes the JSON body. The format query is checked first so a
// bad format is reported before any work is done.
func bindInput(c *gin.Context, in interface{}) bool {
	if _, err := exportFormat(c); err != nil {
		HandleError(c, err)
		return false
	}
	if err := c.ShouldBindJSON(in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func (h *CalculationHandler) respond(c *gin.Context, kind domain.TaxKind, l *breakdown.Ledger, err error) {
	if err != nil {
		HandleError(c, err)
		return
	}
	defer l.Release()

	format, _ := exportFormat(c)
	if format == domain.FormatJSON {
		RespondOK(c, CalculationResult{
			Kind:        kind,
			TotalTax:    l.TotalTax,
			Rows:        l.Rows,
			Withholding: l.Withholding,
			Version:     h.calc.Version(),
		})
		return
	}

	out, err := h.exports.Render(c.Request.Context(), kind, format, l)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

// exportFormat reads ?format=, defaulting to JSON.
func exportFormat(c *gin.Context) (domain.ExportFormat, error) {
	raw := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if raw == "" {
		return domain.FormatJSON, nil
	}
	f := domain.ExportFormat(raw)
	if f == "txt" {
		f = domain.FormatText
	}
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, raw)
	}
	return f, nil
}
