package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmarchuk/claimsight/internal/config"
	"github.com/dmarchuk/claimsight/internal/core/domain"
	"github.com/dmarchuk/claimsight/internal/core/ports"
	"github.com/dmarchuk/claimsight/internal/observability/metrics"
	"github.com/dmarchuk/claimsight/internal/provider"
)

type Router struct {
	cfg            config.Config
	intake         ports.DocumentIntake
	trail          ports.AuditReader
	stats          ports.StatsReader
	data           *provider.Provider
	serviceMetrics *metrics.ServiceMetrics
}

func NewRouter(
	cfg config.Config,
	intake ports.DocumentIntake,
	trail ports.AuditReader,
	stats ports.StatsReader,
	data *provider.Provider,
	serviceMetrics *metrics.ServiceMetrics,
) *Router {
	return &Router{
		cfg:            cfg,
		intake:         intake,
		trail:          trail,
		stats:          stats,
		data:           data,
		serviceMetrics: serviceMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.HandleFunc("GET /v1/documents", rt.listDocuments)
	mux.HandleFunc("POST /v1/documents", rt.uploadDocument)
	mux.HandleFunc("POST /v1/documents/delete", rt.deleteDocuments)
	mux.HandleFunc("GET /v1/documents/{id}/clauses", rt.listClauses)
	mux.HandleFunc("POST /v1/documents/{id}/extract", rt.extractDocument)
	mux.HandleFunc("POST /v1/documents/{id}/reindex", rt.reindexDocument)
	mux.HandleFunc("POST /v1/uploads", rt.uploadBatch)
	mux.HandleFunc("POST /v1/queries", rt.runQuery)
	mux.HandleFunc("GET /v1/audits", rt.listAudits)
	mux.HandleFunc("GET /v1/audits/{id}", rt.getAudit)
	mux.HandleFunc("GET /v1/stats", rt.indexStats)

	var handler http.Handler = mux
	if rt.serviceMetrics != nil {
		mux.Handle("GET /metrics", rt.serviceMetrics.Handler())
		handler = rt.serviceMetrics.Middleware("api", handler)
	}
	handler = accessLogMiddleware(handler)
	handler = rateLimitMiddleware(rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.intake.ListDocuments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename  string                `json:"filename"`
		SizeBytes int64                 `json:"size_bytes"`
		Source    domain.DocumentSource `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	doc, err := rt.intake.UploadDocument(r.Context(), req.Filename, req.SizeBytes, req.Source)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (rt *Router) uploadBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Files []struct {
			Filename  string                `json:"filename"`
			SizeBytes int64                 `json:"size_bytes"`
			Source    domain.DocumentSource `json:"source"`
		} `json:"files"`
		Options domain.UploadOptions `json:"options"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if len(req.Files) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one file is required"})
		return
	}

	files := make([]provider.FileUpload, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, provider.FileUpload{
			Filename:  f.Filename,
			SizeBytes: f.SizeBytes,
			Source:    f.Source,
		})
	}

	docs, err := rt.data.UploadFiles(r.Context(), files, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) listClauses(w http.ResponseWriter, r *http.Request) {
	clauses, err := rt.data.Clauses(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if clauses == nil {
		clauses = []domain.ClauseItem{}
	}
	writeJSON(w, http.StatusOK, clauses)
}

func (rt *Router) extractDocument(w http.ResponseWriter, r *http.Request) {
	var opts domain.UploadOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	report, err := rt.intake.Extract(r.Context(), r.PathValue("id"), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) reindexDocument(w http.ResponseWriter, r *http.Request) {
	if err := rt.intake.Reindex(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (rt *Router) deleteDocuments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	deleted, err := rt.data.DeleteDocuments(r.Context(), req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func (rt *Router) runQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QueryText string `json:"query_text"`
		UserID    string `json:"user_id"`
		TopK      int    `json:"top_k"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.QueryText) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query_text is required"})
		return
	}
	topK := req.TopK
	if topK <= 0 {
		topK = rt.cfg.RetrievalTopK
	}

	requestID := requestIDFromContext(r.Context())
	resp, err := rt.data.RunQuery(r.Context(), req.QueryText, req.UserID, topK, func(stage domain.Stage) {
		slog.Debug("pipeline_stage", "request_id", requestID, "stage", string(stage))
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) listAudits(w http.ResponseWriter, r *http.Request) {
	audits, err := rt.trail.ListAudits(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, audits)
}

func (rt *Router) getAudit(w http.ResponseWriter, r *http.Request) {
	entry, err := rt.trail.GetAudit(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (rt *Router) indexStats(w http.ResponseWriter, r *http.Request) {
	stats, err := rt.stats.IndexStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
