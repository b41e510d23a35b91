package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/output"
)

// ReportBuilder produces a comparison report from raw inputs
type ReportBuilder interface {
	Build(ctx context.Context, raw domain.RawTaxInputs, p *domain.Profile) (*compare.Report, error)
}

// ProfileLoader reads the stored profile
type ProfileLoader interface {
	Load(ctx context.Context) (*domain.Profile, error)
}

var contentTypes = map[string]string{
	"txt":  "text/plain; charset=utf-8",
	"csv":  "text/csv; charset=utf-8",
	"html": "text/html; charset=utf-8",
	"pdf":  "application/pdf",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// TaxHandler handles regime comparison endpoints.
type TaxHandler struct {
	builder  ReportBuilder
	profiles ProfileLoader
	log      *zap.Logger
}

// NewTaxHandler creates a new TaxHandler. profiles may be nil.
func NewTaxHandler(builder ReportBuilder, profiles ProfileLoader, log *zap.Logger) *TaxHandler {
	return &TaxHandler{builder: builder, profiles: profiles, log: log}
}

// Calculate handles POST /api/v1/tax/calculate
//
// The body carries the four amounts as strings. Unparseable or negative
// values are treated as zero and reported under warnings. An optional
// ?format= query renders the report with a named output formatter instead
// of the JSON envelope.
func (h *TaxHandler) Calculate(c *gin.Context) {
	var raw domain.RawTaxInputs
	if !bindJSON(c, &raw, maxTaxBody) {
		return
	}

	ctx := c.Request.Context()
	var p *domain.Profile
	if h.profiles != nil {
		loaded, err := h.profiles.Load(ctx)
		if err != nil {
			h.log.Warn("profile unavailable, comparing without it", zap.Error(err))
		} else {
			p = loaded
		}
	}

	report, err := h.builder.Build(ctx, raw, p)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	format := strings.TrimSpace(c.Query("format"))
	if format == "" || strings.EqualFold(format, "json") {
		RespondOK(c, report)
		return
	}

	f := output.GetFormatterByName(format)
	if f == nil {
		RespondError(c, http.StatusBadRequest, "UNKNOWN_FORMAT",
			"unknown format; available: "+strings.Join(append(output.FormatterNames(), output.AvailableFormatAliases()...), ", "))
		return
	}
	body, err := f.Format(report)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	contentType, ok := contentTypes[output.ExtensionFor(f)]
	if !ok {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, body)
}
