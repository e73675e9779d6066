package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dmarchuk/claimsight/internal/core/domain"
	"github.com/dmarchuk/claimsight/internal/core/ports"
)

// Pages are derived from byte size; the simulated extractor assumes
// 50 KB per page and always yields a fixed clause batch.
const (
	bytesPerPage         = 50000
	clausesPerExtraction = 3
)

type IntakeUseCase struct {
	docs    ports.DocumentStore
	clauses ports.ClauseStore
	latency ports.LatencySimulator
	now     nowFunc
}

func NewIntakeUseCase(
	docs ports.DocumentStore,
	clauses ports.ClauseStore,
	latency ports.LatencySimulator,
) *IntakeUseCase {
	return &IntakeUseCase{
		docs:    docs,
		clauses: clauses,
		latency: latency,
		now:     utcNow,
	}
}

func (uc *IntakeUseCase) UploadDocument(
	ctx context.Context,
	filename string,
	sizeBytes int64,
	source domain.DocumentSource,
) (*domain.DocumentItem, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document", errors.New("filename is required"))
	}
	if sizeBytes < 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document", fmt.Errorf("negative size %d", sizeBytes))
	}
	if source == "" {
		source = domain.SourceManual
	}

	if err := uc.latency.Delay(ctx, ports.OpUpload); err != nil {
		return nil, err
	}

	doc := domain.DocumentItem{
		DocID:      mintDocID(filename),
		Filename:   filename,
		Type:       docTypeFor(filename),
		UploadDate: uc.now(),
		Source:     source,
		Pages:      pagesFor(sizeBytes),
		SizeKB:     int64(math.Round(float64(sizeBytes) / 1024)),
		Status:     domain.StatusProcessing,
	}

	if err := uc.docs.InsertDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return &doc, nil
}

func (uc *IntakeUseCase) Extract(
	ctx context.Context,
	docID string,
	opts domain.UploadOptions,
) (*domain.ExtractionReport, error) {
	if err := uc.latency.Delay(ctx, ports.OpExtract); err != nil {
		return nil, err
	}

	doc, err := uc.docs.GetDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", docID, err)
	}

	batch := synthesizeClauses(doc, opts)
	if err := uc.clauses.InsertClauses(ctx, batch); err != nil {
		return nil, fmt.Errorf("insert clauses: %w", err)
	}
	if err := uc.docs.SetDocumentStatus(ctx, docID, domain.StatusIndexed); err != nil {
		return nil, fmt.Errorf("mark indexed: %w", err)
	}

	return &domain.ExtractionReport{
		DocID:         docID,
		ClausesCount:  len(batch),
		ExtractionLog: extractionLog(doc.Filename, opts),
	}, nil
}

func (uc *IntakeUseCase) ListDocuments(ctx context.Context) ([]domain.DocumentItem, error) {
	if err := uc.latency.Delay(ctx, ports.OpList); err != nil {
		return nil, err
	}
	return uc.docs.ListDocuments(ctx)
}

func (uc *IntakeUseCase) ListClauses(ctx context.Context, docID string) ([]domain.ClauseItem, error) {
	if err := uc.latency.Delay(ctx, ports.OpList); err != nil {
		return nil, err
	}
	return uc.clauses.ListClausesByDocument(ctx, docID)
}

// Reindex acknowledges the request without altering stored state; a
// real backend would re-run extraction and embedding here. The target
// must exist, matching the NotFound policy of the other mutations.
func (uc *IntakeUseCase) Reindex(ctx context.Context, docID string) error {
	if err := uc.latency.Delay(ctx, ports.OpReindex); err != nil {
		return err
	}
	if _, err := uc.docs.GetDocument(ctx, docID); err != nil {
		return fmt.Errorf("reindex %q: %w", docID, err)
	}
	return nil
}

// DeleteDocuments removes the matched documents and cascades to their
// clauses. Audit entries are never touched. Idempotent: absent ids
// simply do not count.
func (uc *IntakeUseCase) DeleteDocuments(ctx context.Context, docIDs []string) (int, error) {
	if err := uc.latency.Delay(ctx, ports.OpDelete); err != nil {
		return 0, err
	}
	if _, err := uc.clauses.DeleteClausesByDocuments(ctx, docIDs); err != nil {
		return 0, fmt.Errorf("cascade clause delete: %w", err)
	}
	deleted, err := uc.docs.DeleteDocuments(ctx, docIDs)
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}
	return deleted, nil
}

func mintDocID(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	prefix := b.String()
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	if prefix == "" {
		prefix = "DOC"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "-" + strings.ToUpper(suffix)
}

func docTypeFor(filename string) domain.DocType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return domain.TypePDF
	case ".docx":
		return domain.TypeDOCX
	default:
		return domain.TypeEML
	}
}

func pagesFor(sizeBytes int64) int {
	pages := int(math.Ceil(float64(sizeBytes) / bytesPerPage))
	if pages < 1 {
		return 1
	}
	return pages
}

func synthesizeClauses(doc *domain.DocumentItem, opts domain.UploadOptions) []domain.ClauseItem {
	splitTag := "unsplit"
	if opts.ClauseSplit {
		splitTag = "split"
	}
	ocrSuffix := ""
	if opts.OCR {
		ocrSuffix = " with OCR"
	}

	batch := make([]domain.ClauseItem, 0, clausesPerExtraction)
	for i := 0; i < clausesPerExtraction; i++ {
		batch = append(batch, domain.ClauseItem{
			ClauseID:   fmt.Sprintf("%s::clause_%d", doc.DocID, i+1),
			DocID:      doc.DocID,
			Page:       i + 1,
			Text:       fmt.Sprintf("Sample clause %d for %s. This is auto-extracted%s.", i+1, doc.Filename, ocrSuffix),
			Confidence: 0.7 + rand.Float64()*0.2,
			Tags:       []string{"auto", splitTag},
			Bbox: &domain.BoundingBox{
				X: 0.1,
				Y: 0.2 + float64(i)*0.2,
				W: 0.75,
				H: 0.1,
			},
		})
	}
	return batch
}

func extractionLog(filename string, opts domain.UploadOptions) []string {
	log := []string{"File received: " + filename}
	if opts.OCR {
		log = append(log, "OCR applied: yes")
	} else {
		log = append(log, "OCR applied: no")
	}
	if opts.ClauseSplit {
		log = append(log, "Clause split: auto")
	} else {
		log = append(log, "Clause split: off")
	}
	if opts.ManualReview {
		log = append(log, "Queued for manual review.")
	}
	return append(log, "Indexing completed.")
}
