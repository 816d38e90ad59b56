package search

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-gas-station-finder/internal/api"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/finder"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

// Request is the body of POST /api/v1/search.
type Request struct {
	Query string `json:"query" validate:"required,max=256"`
}

type HandlerImpl struct {
	service  finder.Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandlerImpl(service finder.Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// Search godoc
// @Summary      Find gas stations
// @Description  Runs a free-text location query (ZIP code, ZIP list, state code or "City ST") and returns status updates, the reply text and the optional CSV export.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        request body search.Request true "Location query"
// @Success      200 {object} types.HandleResult "Search result"
// @Failure      400 {object} api.Response "Invalid request"
// @Failure      500 {object} api.Response "Internal Server Error"
// @Router       /search [post]
func (h *HandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SearchHandler").Start(r.Context(), "Search", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/search"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Search"))

	var req Request
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if err := h.validate.Struct(req); err != nil {
		l.WarnContext(ctx, "Invalid search request", slog.Any("error", err))
		span.SetStatus(codes.Error, "validation failed")
		api.ErrorResponse(w, r, http.StatusBadRequest, "query is required and must be at most 256 characters")
		return
	}

	result, err := h.service.Handle(ctx, req.Query)
	if err != nil {
		l.ErrorContext(ctx, "Search failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Search failed")
		return
	}

	span.SetStatus(codes.Ok, "search handled")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// Export godoc
// @Summary      Download the CSV export
// @Description  Runs the query in q and returns the horizontal CSV as an attachment.
// @Tags         Search
// @Produce      text/csv
// @Param        q query string true "Location query"
// @Success      200 {file} file "CSV export"
// @Failure      400 {object} api.Response "Missing query"
// @Failure      404 {object} api.Response "No stations found"
// @Router       /search/export [get]
func (h *HandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SearchHandler").Start(r.Context(), "Export", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/search/export"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Export"))

	req := Request{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if err := h.validate.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		api.ErrorResponse(w, r, http.StatusBadRequest, "query parameter q is required")
		return
	}

	result, err := h.service.Handle(ctx, req.Query)
	if err != nil {
		l.ErrorContext(ctx, "Export failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "export failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Export failed")
		return
	}
	if result.Export == nil {
		span.SetStatus(codes.Ok, "nothing to export")
		api.ErrorResponse(w, r, http.StatusNotFound, firstLine(result))
		return
	}

	w.Header().Set("Content-Type", result.Export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Export.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Export.Content); err != nil {
		l.ErrorContext(ctx, "Failed to write export", slog.Any("error", err))
		span.RecordError(err)
		return
	}
	span.SetStatus(codes.Ok, "export written")
}

func firstLine(result *types.HandleResult) string {
	text := strings.ReplaceAll(result.FinalText, "*", "")
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}
