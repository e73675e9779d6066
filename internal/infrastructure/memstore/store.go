// Package memstore is the process-lifetime store behind the decision
// service. All three collections live behind one mutex so concurrent
// callers never observe a partial mutation; reads hand out copies, the
// live slices are never exposed.
package memstore

import (
	"context"
	"sync"

	"github.com/dmarchuk/claimsight/internal/core/domain"
	"github.com/dmarchuk/claimsight/internal/infrastructure/canned"
)

type Store struct {
	mu        sync.Mutex
	documents []domain.DocumentItem
	clauses   []domain.ClauseItem
	audits    []domain.AuditEntry
	auditSeq  int
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// NewSeeded returns a store primed with the sample policy document,
// customer email, their clauses, and the template audit entry. The
// audit sequence starts past the seeded entry so minted ids never
// collide with it.
func NewSeeded() *Store {
	return &Store{
		documents: canned.SeedDocuments(),
		clauses:   canned.SeedClauses(),
		audits:    []domain.AuditEntry{canned.SeedAudit()},
		auditSeq:  1,
	}
}

func (s *Store) InsertDocument(_ context.Context, doc domain.DocumentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the listing order the review screens expect.
	s.documents = append([]domain.DocumentItem{doc}, s.documents...)
	return nil
}

func (s *Store) GetDocument(_ context.Context, docID string) (*domain.DocumentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.documents {
		if d.DocID == docID {
			copyDoc := d
			return &copyDoc, nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

func (s *Store) ListDocuments(_ context.Context) ([]domain.DocumentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.DocumentItem, len(s.documents))
	copy(out, s.documents)
	return out, nil
}

func (s *Store) SetDocumentStatus(_ context.Context, docID string, status domain.DocumentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.documents {
		if s.documents[i].DocID == docID {
			s.documents[i].Status = status
			return nil
		}
	}
	return domain.ErrDocumentNotFound
}

func (s *Store) DeleteDocuments(_ context.Context, docIDs []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(docIDs))
	for _, id := range docIDs {
		drop[id] = true
	}

	kept := s.documents[:0]
	deleted := 0
	for _, d := range s.documents {
		if drop[d.DocID] {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	s.documents = kept
	return deleted, nil
}

func (s *Store) InsertClauses(_ context.Context, clauses []domain.ClauseItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clauses = append(append([]domain.ClauseItem{}, clauses...), s.clauses...)
	return nil
}

func (s *Store) ListClausesByDocument(_ context.Context, docID string) ([]domain.ClauseItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ClauseItem
	for _, c := range s.clauses {
		if c.DocID == docID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) DeleteClausesByDocuments(_ context.Context, docIDs []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(docIDs))
	for _, id := range docIDs {
		drop[id] = true
	}

	kept := s.clauses[:0]
	deleted := 0
	for _, c := range s.clauses {
		if drop[c.DocID] {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	s.clauses = kept
	return deleted, nil
}

func (s *Store) CountClauses(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clauses), nil
}

func (s *Store) AppendAudit(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Deep copy on the way in: the log must stay untouched if the
	// caller later overrides the decision it holds.
	s.audits = append([]domain.AuditEntry{entry.Clone()}, s.audits...)
	return nil
}

func (s *Store) GetAudit(_ context.Context, auditID string) (*domain.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.audits {
		if a.AuditID == auditID {
			copyEntry := a.Clone()
			return &copyEntry, nil
		}
	}
	return nil, domain.ErrAuditNotFound
}

func (s *Store) ListAudits(_ context.Context) ([]domain.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEntry, 0, len(s.audits))
	for _, a := range s.audits {
		out = append(out, a.Clone())
	}
	return out, nil
}

func (s *Store) CountAudits(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.audits), nil
}

func (s *Store) NextAuditSequence(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditSeq++
	return s.auditSeq, nil
}
