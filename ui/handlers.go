package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"datalens/adapters/tabular"
	domain "datalens/domain/analysis"
	"datalens/domain/core"
	"datalens/domain/table"
	"datalens/internal/analysis"
	"datalens/internal/errors"
	"datalens/internal/report"
)

// AnalyzeRequest is the JSON body of POST /api/analyze. Rows must be flat
// string maps keyed by the exact header strings, missing cells as "".
type AnalyzeRequest struct {
	FileName          string      `json:"file_name"`
	Headers           []string    `json:"headers"`
	Rows              []table.Row `json:"rows"`
	IdentifierColumns []string    `json:"identifier_columns,omitempty"`
}

func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, errors.InvalidInput("malformed request body"))
		return
	}

	tbl := table.Table{Headers: req.Headers, Rows: req.Rows}
	if tbl.IsEmpty() {
		a.respondError(w, errors.ValidationError("headers and rows must be non-empty"))
		return
	}
	if len(tbl.Rows) > a.cfg.Upload.MaxRows {
		a.respondError(w, errors.ValidationError("row count exceeds the upload limit"))
		return
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "untitled"
	}

	result := a.engine.Analyze(tbl, fileName, analysis.Options{IdentifierColumns: req.IdentifierColumns})
	a.persistAndRespond(w, r, result)
}

func (a *App) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(a.cfg.Upload.MaxFileSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		a.respondError(w, errors.InvalidInput("missing file upload"))
		return
	}
	defer file.Close()

	tbl, err := tabular.ReadFrom(file, header.Filename)
	if err != nil {
		a.respondError(w, err)
		return
	}
	if len(tbl.Rows) > a.cfg.Upload.MaxRows {
		a.respondError(w, errors.ValidationError("row count exceeds the upload limit"))
		return
	}

	identifiers := r.URL.Query()["identifier"]
	result := a.engine.Analyze(tbl, header.Filename, analysis.Options{IdentifierColumns: identifiers})
	a.persistAndRespond(w, r, result)
}

func (a *App) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := a.repo.List(r.Context(), 50, 0)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, analyses)
}

func (a *App) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	stored, ok := a.loadAnalysis(w, r)
	if !ok {
		return
	}
	a.respondJSON(w, http.StatusOK, stored)
}

func (a *App) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseAnalysisID(chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, errors.InvalidInput(err.Error()))
		return
	}
	if err := a.repo.Delete(r.Context(), id); err != nil {
		a.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReanalyze replays a stored analysis's raw rows through the engine.
// Used after transforms; with no transforms applied the result is identical.
func (a *App) handleReanalyze(w http.ResponseWriter, r *http.Request) {
	stored, ok := a.loadAnalysis(w, r)
	if !ok {
		return
	}
	if stored.Result == nil {
		a.respondError(w, errors.ValidationError("stored analysis has no raw data"))
		return
	}

	var identifiers []string
	if raw := r.URL.Query()["identifier"]; len(raw) > 0 {
		identifiers = raw
	}

	tbl := table.Table{Rows: stored.Result.RawData}
	for _, col := range stored.Result.Columns {
		tbl.Headers = append(tbl.Headers, col.Name)
	}

	result := a.engine.Analyze(tbl, stored.FileName, analysis.Options{IdentifierColumns: identifiers})
	a.persistAndRespond(w, r, result)
}

func (a *App) handleAnalysisReport(w http.ResponseWriter, r *http.Request) {
	stored, ok := a.loadAnalysis(w, r)
	if !ok {
		return
	}
	if stored.Result == nil {
		a.respondError(w, errors.ValidationError("stored analysis has no result payload"))
		return
	}

	entitlements := report.FreeEntitlements()
	if r.URL.Query().Get("tier") == string(report.TierPro) {
		entitlements = report.ProEntitlements()
	}

	builder := report.NewBuilder(entitlements)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(builder.HTML(stored.Result))
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) loadAnalysis(w http.ResponseWriter, r *http.Request) (*domain.StoredAnalysis, bool) {
	id, err := core.ParseAnalysisID(chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, errors.InvalidInput(err.Error()))
		return nil, false
	}
	stored, err := a.repo.GetByID(r.Context(), id)
	if err != nil {
		a.respondError(w, err)
		return nil, false
	}
	return stored, true
}

func (a *App) persistAndRespond(w http.ResponseWriter, r *http.Request, result *domain.Result) {
	stored := domain.NewStoredAnalysis(result)
	if err := a.repo.Save(r.Context(), stored); err != nil {
		a.log.Error("failed to persist analysis for %s: %v", result.FileName, err)
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, stored)
}

func (a *App) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.Error("failed to encode response: %v", err)
	}
}

func (a *App) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeValidationError, errors.CodeUnsupportedFile:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}

	a.respondJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
