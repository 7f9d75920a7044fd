package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/money"
	"github.com/kadcom/pphc/internal/service"
	"github.com/kadcom/pphc/internal/taxtable"
)

// TablesHandler serves read-only views of the tax tables in use.
type TablesHandler struct {
	calc service.CalculatorService
}

// NewTablesHandler creates a new TablesHandler.
func NewTablesHandler(calc service.CalculatorService) *TablesHandler {
	return &TablesHandler{calc: calc}
}

// PTKPEntry is one allowance row.
type PTKPEntry struct {
	Status domain.PTKPStatus `json:"status"`
	Amount money.Money       `json:"amount"`
}

// TERTable is one TER category for a period.
type TERTable struct {
	Set      string             `json:"set"`
	Category domain.TERCategory `json:"category"`
	Period   string             `json:"period"`
	Brackets []taxtable.Bracket `json:"brackets"`
}

// TERRate is a single TER lookup.
type TERRate struct {
	Category domain.TERCategory `json:"category"`
	Period   string             `json:"period"`
	Income   money.Money        `json:"income"`
	Rate     money.Money        `json:"rate"`
}

const (
	periodMonthly = "monthly"
	periodDaily   = "daily"
)

// PTKP handles GET /api/v1/tables/ptkp
func (h *TablesHandler) PTKP(c *gin.Context) {
	set := h.calc.Tables()
	entries := make([]PTKPEntry, 0, len(domain.PTKPStatuses))
	for _, st := range domain.PTKPStatuses {
		entries = append(entries, PTKPEntry{Status: st, Amount: set.PTKP(st)})
	}
	RespondOK(c, gin.H{"set": set.Name, "allowances": entries})
}

// Pasal17 handles GET /api/v1/tables/pasal17
func (h *TablesHandler) Pasal17(c *gin.Context) {
	set := h.calc.Tables()
	RespondOK(c, gin.H{"set": set.Name, "layers": set.Layers})
}

// TER handles GET /api/v1/tables/ter/:category?period=monthly|daily
func (h *TablesHandler) TER(c *gin.Context) {
	cat, period, ok := terParams(c)
	if !ok {
		return
	}
	set := h.calc.Tables()
	brackets := set.MonthlyTable(cat)
	if period == periodDaily {
		brackets = set.DailyTable(cat)
	}
	RespondOK(c, TERTable{Set: set.Name, Category: cat, Period: period, Brackets: brackets})
}

// TERRate handles GET /api/v1/tables/ter/:category/rate?income=...
func (h *TablesHandler) TERRate(c *gin.Context) {
	cat, period, ok := terParams(c)
	if !ok {
		return
	}
	income, err := money.Parse(c.Query("income"))
	if err != nil {
		HandleError(c, fmt.Errorf("%w: income: %w", domain.ErrInvalidInput, err))
		return
	}
	set := h.calc.Tables()
	rate := set.MonthlyRate(cat, income)
	if period == periodDaily {
		rate = set.DailyRate(cat, income)
	}
	RespondOK(c, TERRate{Category: cat, Period: period, Income: income, Rate: rate})
}

// Version handles GET /api/v1/version
func (h *TablesHandler) Version(c *gin.Context) {
	RespondOK(c, gin.H{"version": h.calc.Version(), "tables": h.calc.Tables().Name})
}

func terParams(c *gin.Context) (domain.TERCategory, string, bool) {
	cat := domain.TERCategory(strings.ToUpper(c.Param("category")))
	if !cat.Valid() {
		HandleError(c, fmt.Errorf("TER category %q: %w", c.Param("category"), domain.ErrNotFound))
		return "", "", false
	}
	period := c.DefaultQuery("period", periodMonthly)
	if period != periodMonthly && period != periodDaily {
		RespondError(c, http.StatusBadRequest, "INVALID_PERIOD", "period must be monthly or daily")
		return "", "", false
	}
	return cat, period, true
}
