package api

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyzer/internal/analysis"
	"github.com/insightdelivered/statement-analyzer/internal/extractor"
	"github.com/insightdelivered/statement-analyzer/internal/layout"
	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/writer"
)

const version = "1.0.0"

// AnalyzeResponse is the JSON response from POST /api/analyze.
type AnalyzeResponse struct {
	Summary           models.Summary         `json:"summary"`
	LoanAnalysis      models.LoanMetrics     `json:"loanAnalysis"`
	MonthlySummary    []models.MonthlyBucket `json:"monthlySummary"`
	Transactions      []models.Transaction   `json:"transactions"`
	TotalTransactions int                    `json:"totalTransactions"`
	RowTraces         []layout.RowTrace      `json:"rowTraces,omitempty"`
}

// ErrorResponse is the JSON body of any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	log      zerolog.Logger
	template layout.Template
}

// NewHandler creates a Handler using the given statement template.
func NewHandler(log zerolog.Logger, template layout.Template) *Handler {
	return &Handler{log: log, template: template}
}

// Register sets up the API routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	app.Post("/api/analyze", h.Analyze)
	app.Post("/api/export", h.Export)
}

// Health reports service liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

// Analyze accepts a statement PDF upload and returns the full analysis as
// JSON. Pass ?debug=true to include per-row extraction traces.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	started := time.Now()

	report, traces, err := h.processUpload(c)
	if err != nil {
		observeAnalysis("error", 0, started)
		return h.fail(c, err)
	}

	observeAnalysis("ok", len(report.Transactions), started)
	for _, tr := range traces {
		if tr.Result != layout.RowParsed {
			rowsSkipped.WithLabelValues(string(tr.Result)).Inc()
		}
	}

	resp := AnalyzeResponse{
		Summary:           report.Summary,
		LoanAnalysis:      report.Loan,
		MonthlySummary:    report.Monthly,
		Transactions:      report.Transactions,
		TotalTransactions: len(report.Transactions),
	}
	if c.QueryBool("debug") {
		resp.RowTraces = traces
	}

	return c.JSON(resp)
}

// Export accepts a statement PDF upload and returns the analysis as an
// XLSX attachment.
func (h *Handler) Export(c *fiber.Ctx) error {
	started := time.Now()

	report, _, err := h.processUpload(c)
	if err != nil {
		observeAnalysis("error", 0, started)
		return h.fail(c, err)
	}
	observeAnalysis("ok", len(report.Transactions), started)

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="analysis.xlsx"`)

	w := &writer.ExcelWriter{}
	if err := w.Write(c.Response().BodyWriter(), report); err != nil {
		h.log.Error().Err(err).Msg("workbook generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to generate workbook"})
	}
	return nil
}

// processUpload runs the whole pipeline for one uploaded statement:
// save to a temp file, extract tokens, extract transactions, derive.
func (h *Handler) processUpload(c *fiber.Ctx) (*analysis.Report, []layout.RowTrace, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil, badRequest("no file uploaded; use form field 'file'")
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return nil, nil, badRequest("only PDF files are supported")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return nil, nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, nil, fmt.Errorf("saving upload: %w", err)
	}
	tmp.Close()

	pages, err := extractor.ExtractTokens(tmp.Name())
	if err != nil {
		return nil, nil, unprocessable(fmt.Errorf("PDF extraction failed: %w", err))
	}

	txns, traces := layout.NewExtractor(h.template).Extract(pages)

	report, err := analysis.BuildReport(txns)
	if err != nil {
		return nil, traces, err
	}

	h.log.Info().
		Str("file", fh.Filename).
		Int("pages", len(pages)).
		Int("transactions", len(report.Transactions)).
		Msg("statement analyzed")

	return report, traces, nil
}

// fail maps pipeline errors to HTTP responses. Unreadable or empty
// statements are the client's problem (422); everything else is ours.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var br *badRequestError
	var up *unprocessableError
	switch {
	case errors.As(err, &br):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: br.msg})
	case errors.As(err, &up),
		errors.Is(err, models.ErrNoTransactions),
		errors.Is(err, models.ErrNoTextLayer):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: err.Error()})
	default:
		h.log.Error().Err(err).Msg("statement analysis failed")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal error"})
	}
}

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func badRequest(msg string) error { return &badRequestError{msg: msg} }

// unprocessableError marks uploads that were well-formed requests but
// could not be read as statements.
type unprocessableError struct{ err error }

func (e *unprocessableError) Error() string { return e.err.Error() }
func (e *unprocessableError) Unwrap() error { return e.err }

func unprocessable(err error) error { return &unprocessableError{err: err} }
