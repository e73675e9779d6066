package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/dmarchuk/claimsight/internal/config"
	"github.com/dmarchuk/claimsight/internal/core/domain"
	"github.com/dmarchuk/claimsight/internal/core/usecase"
	"github.com/dmarchuk/claimsight/internal/infrastructure/memstore"
	"github.com/dmarchuk/claimsight/internal/infrastructure/simulate"
	"github.com/dmarchuk/claimsight/internal/provider"
)

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	store := memstore.NewSeeded()
	latency := simulate.None()

	intake := usecase.NewIntakeUseCase(store, store, latency)
	runner := usecase.NewDecideUseCase(store, latency)
	trail := usecase.NewAuditTrailUseCase(store, latency)
	stats := usecase.NewStatsUseCase(store, store, store, latency, cfg.ReportedAvgLatencyMS)

	data := provider.New(provider.Config{Service: "api"}, intake, runner, trail, stats, nil, nil)
	if err := data.Warm(t.Context()); err != nil {
		t.Fatalf("Warm() error = %v", err)
	}

	srv := httptest.NewServer(NewRouter(cfg, intake, trail, stats, data, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func defaultTestConfig() config.Config {
	return config.Config{
		ReportedAvgLatencyMS: 1800,
		RetrievalTopK:        20,
		APIRateLimitRPS:      1000,
		APIRateLimitBurst:    1000,
	}
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-Id"); got == "" {
		t.Fatalf("expected request id header")
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestListDocumentsSeeded(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp, err := http.Get(srv.URL + "/v1/documents")
	if err != nil {
		t.Fatalf("GET /v1/documents: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var docs []domain.DocumentItem
	decodeBody(t, resp, &docs)
	if len(docs) != 2 {
		t.Fatalf("expected 2 seeded documents, got %d", len(docs))
	}
	if docs[0].DocID != "DOC123" {
		t.Fatalf("expected DOC123 first, got %s", docs[0].DocID)
	}
}

func TestUploadExtractClausesFlow(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/documents", map[string]any{
		"filename":   "ClaimForm.pdf",
		"size_bytes": 120000,
		"source":     "manual",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on upload, got %d", resp.StatusCode)
	}
	var doc domain.DocumentItem
	decodeBody(t, resp, &doc)
	if doc.DocID == "" || doc.Status != domain.StatusProcessing {
		t.Fatalf("unexpected upload result %+v", doc)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/documents/"+doc.DocID+"/extract", map[string]any{
		"ocr":          true,
		"clause_split": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on extract, got %d", resp.StatusCode)
	}
	var report domain.ExtractionReport
	decodeBody(t, resp, &report)
	if report.DocID != doc.DocID || report.ClausesCount != 3 {
		t.Fatalf("unexpected extraction report %+v", report)
	}

	resp, err := http.Get(srv.URL + "/v1/documents/" + doc.DocID + "/clauses")
	if err != nil {
		t.Fatalf("GET clauses: %v", err)
	}
	var clauses []domain.ClauseItem
	decodeBody(t, resp, &clauses)
	if len(clauses) != 3 {
		t.Fatalf("expected 3 clauses, got %d", len(clauses))
	}
}

func TestExtractUnknownDocumentIs404(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/documents/MISSING-1/extract", map[string]any{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestClausesForUnextractedDocumentIsEmptyArray(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/documents", map[string]any{
		"filename":   "fresh.pdf",
		"size_bytes": 1000,
	})
	var doc domain.DocumentItem
	decodeBody(t, resp, &doc)

	clausesResp, err := http.Get(srv.URL + "/v1/documents/" + doc.DocID + "/clauses")
	if err != nil {
		t.Fatalf("GET clauses: %v", err)
	}
	var clauses []domain.ClauseItem
	decodeBody(t, clausesResp, &clauses)
	if clauses == nil || len(clauses) != 0 {
		t.Fatalf("expected empty array, got %v", clauses)
	}
}

func TestRunQueryEndpoint(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/queries", map[string]any{
		"query_text": "46M, knee surgery, Pune, 3-month policy",
		"user_id":    "agent.alex",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out domain.QueryResponse
	decodeBody(t, resp, &out)

	if matched := regexp.MustCompile(`^AUDIT-\d{8}-\d{4}$`).MatchString(out.AuditID); !matched {
		t.Fatalf("audit id %q does not match expected format", out.AuditID)
	}
	if out.Status != "completed" {
		t.Fatalf("expected completed, got %s", out.Status)
	}
	if out.Result.Query != "46M, knee surgery, Pune, 3-month policy" {
		t.Fatalf("query text not substituted: %q", out.Result.Query)
	}

	// The run must be retrievable through the audit endpoint.
	auditResp, err := http.Get(srv.URL + "/v1/audits/" + out.AuditID)
	if err != nil {
		t.Fatalf("GET audit: %v", err)
	}
	if auditResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for fresh audit, got %d", auditResp.StatusCode)
	}
	var entry domain.AuditEntry
	decodeBody(t, auditResp, &entry)
	if entry.User != "agent.alex" {
		t.Fatalf("expected audit user agent.alex, got %q", entry.User)
	}
	if entry.Prompts.Parser == "" || entry.Prompts.Retriever == "" || entry.Prompts.Evaluator == "" {
		t.Fatalf("expected prompt texts on audit entry")
	}
}

func TestRunQueryRejectsBlankText(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/queries", map[string]any{
		"query_text": "   ",
		"user_id":    "u",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetAuditUnknownIs404(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp, err := http.Get(srv.URL + "/v1/audits/AUDIT-19700101-9999")
	if err != nil {
		t.Fatalf("GET audit: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteDocumentsEndpoint(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/documents/delete", map[string]any{
		"ids": []string{"DOC123", "GHOST"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out map[string]int
	decodeBody(t, resp, &out)
	if out["deleted"] != 1 {
		t.Fatalf("expected deleted=1, got %d", out["deleted"])
	}

	listResp, err := http.Get(srv.URL + "/v1/documents")
	if err != nil {
		t.Fatalf("GET /v1/documents: %v", err)
	}
	var docs []domain.DocumentItem
	decodeBody(t, listResp, &docs)
	if len(docs) != 1 || docs[0].DocID != "EML42" {
		t.Fatalf("expected only EML42 to remain, got %+v", docs)
	}
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp, err := http.Get(srv.URL + "/v1/stats")
	if err != nil {
		t.Fatalf("GET /v1/stats: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var stats domain.IndexStats
	decodeBody(t, resp, &stats)
	if stats.Docs != 2 || stats.IndexSize != 4 || stats.QueriesToday != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.AvgLatencyMS != 1800 {
		t.Fatalf("expected reported avg latency 1800, got %d", stats.AvgLatencyMS)
	}
}

func TestRateLimitReturns429(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.APIRateLimitRPS = 1
	cfg.APIRateLimitBurst = 2
	srv := newTestServer(t, cfg)

	limited := false
	for i := 0; i < 10; i++ {
		resp, err := http.Get(srv.URL + "/healthz")
		if err != nil {
			t.Fatalf("GET /healthz: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatalf("expected at least one 429 once the burst was spent")
	}
}

func TestUploadBatchEndpoint(t *testing.T) {
	srv := newTestServer(t, defaultTestConfig())

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/uploads", map[string]any{
		"files": []map[string]any{
			{"filename": "Policy.pdf", "size_bytes": 120000},
			{"filename": "Policy.pdf", "size_bytes": 120000},
		},
		"options": map[string]any{"clause_split": true},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Documents []domain.DocumentItem `json:"documents"`
	}
	decodeBody(t, resp, &out)
	if len(out.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(out.Documents))
	}
	if out.Documents[0].DocID == out.Documents[1].DocID {
		t.Fatalf("same-named uploads share id %s", out.Documents[0].DocID)
	}

	// Both documents must end up indexed with their own clause sets.
	for _, doc := range out.Documents {
		clausesResp, err := http.Get(fmt.Sprintf("%s/v1/documents/%s/clauses", srv.URL, doc.DocID))
		if err != nil {
			t.Fatalf("GET clauses: %v", err)
		}
		var clauses []domain.ClauseItem
		decodeBody(t, clausesResp, &clauses)
		if len(clauses) != 3 {
			t.Fatalf("document %s has %d clauses, want 3", doc.DocID, len(clauses))
		}
		for _, c := range clauses {
			if c.DocID != doc.DocID {
				t.Fatalf("clause %s belongs to %s, listed under %s", c.ClauseID, c.DocID, doc.DocID)
			}
		}
	}
}
