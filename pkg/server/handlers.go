package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/sheetinvoicer/pkg/csvdata"
	"github.com/sheetinvoicer/pkg/dispatch"
	"github.com/sheetinvoicer/pkg/store"
)

// generateInvoice godoc
//
//	@Summary		Generate and send invoices
//	@Description	Groups CSV rows by client email, renders a PDF per client and emails it.
//	@Tags			invoices
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dispatch.Request	true	"CSV rows, field mapping and business info"
//	@Success		200		{object}	dispatch.Summary
//	@Failure		400		{object}	errorResponse
//	@Failure		413		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/api/generate-invoice [post]
func (h *Handler) generateInvoice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req dispatch.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sum, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		var verr *dispatch.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		h.logger.ErrorContext(r.Context(), "error generating invoices", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Failed to generate invoices: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sum)
}

// parseCSV godoc
//
//	@Summary		Parse a CSV export
//	@Description	Parses a CSV export sent as the request body or as a multipart file field named file.
//	@Tags			invoices
//	@Accept			text/csv,mpfd
//	@Produce		json
//	@Param			file	formData	file	false	"CSV export"
//	@Success		200		{object}	csvdata.Table
//	@Failure		400		{object}	errorResponse
//	@Router			/api/parse-csv [post]
func (h *Handler) parseCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()
		src = file
	}

	table, err := csvdata.Parse(src)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// getBatch godoc
//
//	@Summary	List the recorded outcomes of a dispatch batch
//	@Tags		batches
//	@Produce	json
//	@Param		id	path		string	true	"Batch ID"
//	@Success	200	{array}		store.Dispatch
//	@Failure	404	{object}	errorResponse
//	@Failure	500	{object}	errorResponse
//	@Failure	501	{object}	errorResponse
//	@Router		/api/batches/{id} [get]
func (h *Handler) getBatch(w http.ResponseWriter, r *http.Request) {
	if h.batches == nil {
		writeError(w, http.StatusNotImplemented, "dispatch history is not configured")
		return
	}

	id := mux.Vars(r)["id"]
	dispatches, err := h.batches.ListBatch(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "batch not found")
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "error listing batch", slog.String("batch_id", id), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load batch")
		return
	}
	writeJSON(w, http.StatusOK, dispatches)
}
