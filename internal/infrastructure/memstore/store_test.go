package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/dmarchuk/claimsight/internal/core/domain"
)

func TestListDocumentsReturnsDetachedCopy(t *testing.T) {
	store := NewSeeded()

	docs, err := store.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	docs[0].Status = domain.StatusError

	again, _ := store.ListDocuments(context.Background())
	if again[0].Status == domain.StatusError {
		t.Fatalf("mutating a listing leaked into the store")
	}
}

func TestInsertDocumentPrepends(t *testing.T) {
	store := New()
	ctx := context.Background()

	for _, id := range []string{"A", "B", "C"} {
		if err := store.InsertDocument(ctx, domain.DocumentItem{DocID: id}); err != nil {
			t.Fatalf("InsertDocument(%s) error = %v", id, err)
		}
	}

	docs, _ := store.ListDocuments(ctx)
	if docs[0].DocID != "C" || docs[2].DocID != "A" {
		t.Fatalf("expected newest-first order, got %+v", docs)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	store := New()
	_, err := store.GetDocument(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected document not found, got %v", err)
	}
}

func TestDeleteDocumentsCountsMatchesOnly(t *testing.T) {
	store := NewSeeded()

	deleted, err := store.DeleteDocuments(context.Background(), []string{"DOC123", "GHOST", "DOC123"})
	if err != nil {
		t.Fatalf("DeleteDocuments() error = %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 match, got %d", deleted)
	}
}

func TestAuditSnapshotIsImmutable(t *testing.T) {
	store := New()
	ctx := context.Background()

	entry := domain.AuditEntry{
		AuditID:   "AUDIT-20260831-0002",
		User:      "alice",
		Timestamp: time.Now().UTC(),
		Result: domain.DecisionResult{
			AuditID:       "AUDIT-20260831-0002",
			Decision:      domain.DecisionApproved,
			Justification: []domain.JustificationEntry{{Quote: "covered"}},
		},
	}
	if err := store.AppendAudit(ctx, entry); err != nil {
		t.Fatalf("AppendAudit() error = %v", err)
	}

	// Overriding the result the caller still holds must not reach the log.
	entry.Result.Justification[0].Quote = "tampered"
	entry.Result.ManualOverride = &domain.ManualOverride{By: "mallory", Reason: "rewrite history", At: time.Now()}

	stored, err := store.GetAudit(ctx, "AUDIT-20260831-0002")
	if err != nil {
		t.Fatalf("GetAudit() error = %v", err)
	}
	if stored.Result.Justification[0].Quote != "covered" {
		t.Fatalf("caller mutation reached stored audit")
	}
	if stored.Result.ManualOverride != nil {
		t.Fatalf("override leaked into stored audit")
	}

	// Mutating a fetched copy must not stick either.
	stored.Result.Justification[0].Quote = "also tampered"
	refetched, _ := store.GetAudit(ctx, "AUDIT-20260831-0002")
	if refetched.Result.Justification[0].Quote != "covered" {
		t.Fatalf("fetched-copy mutation reached stored audit")
	}
}

func TestGetAuditNotFound(t *testing.T) {
	store := New()
	_, err := store.GetAudit(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrAuditNotFound) {
		t.Fatalf("expected audit not found, got %v", err)
	}
}

func TestNextAuditSequenceNeverRepeats(t *testing.T) {
	store := NewSeeded()
	ctx := context.Background()

	first, err := store.NextAuditSequence(ctx)
	if err != nil {
		t.Fatalf("NextAuditSequence() error = %v", err)
	}
	// Seeded store already spent sequence 1 on the template audit.
	if first != 2 {
		t.Fatalf("expected first minted sequence 2, got %d", first)
	}
	second, _ := store.NextAuditSequence(ctx)
	if second != first+1 {
		t.Fatalf("expected monotonic sequence, got %d then %d", first, second)
	}
}

func TestClauseCascadeHelpers(t *testing.T) {
	store := NewSeeded()
	ctx := context.Background()

	count, err := store.CountClauses(ctx)
	if err != nil {
		t.Fatalf("CountClauses() error = %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 seeded clauses, got %d", count)
	}

	deleted, err := store.DeleteClausesByDocuments(ctx, []string{"DOC123"})
	if err != nil {
		t.Fatalf("DeleteClausesByDocuments() error = %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 clauses deleted, got %d", deleted)
	}

	remaining, _ := store.ListClausesByDocument(ctx, "EML42")
	if len(remaining) != 1 {
		t.Fatalf("expected surviving clause for EML42, got %d", len(remaining))
	}
}
