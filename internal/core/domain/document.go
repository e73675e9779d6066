package domain

import "time"

type DocType string

const (
	TypePDF  DocType = "pdf"
	TypeDOCX DocType = "docx"
	TypeEML  DocType = "eml"
)

type DocumentSource string

const (
	SourceManual DocumentSource = "manual"
	SourceEmail  DocumentSource = "email"
)

type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "processing"
	StatusIndexed    DocumentStatus = "indexed"
	StatusError      DocumentStatus = "error"
)

type DocumentItem struct {
	DocID      string         `json:"doc_id"`
	Filename   string         `json:"filename"`
	Type       DocType        `json:"type"`
	UploadDate time.Time      `json:"upload_date"`
	Source     DocumentSource `json:"source"`
	Pages      int            `json:"pages"`
	SizeKB     int64          `json:"size_kb"`
	Status     DocumentStatus `json:"status"`
}

// BoundingBox is a rectangle normalized to [0,1] on the owning page,
// used for clause overlays in document previews.
type BoundingBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type TextSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ClauseItem is a citable excerpt of a document. ClauseID is the
// composite key "{doc_id}::clause_{n}"; the prefix before "::" always
// equals DocID.
type ClauseItem struct {
	ClauseID   string       `json:"clause_id"`
	DocID      string       `json:"doc_id"`
	Page       int          `json:"page"`
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	Tags       []string     `json:"tags"`
	Offsets    *TextSpan    `json:"offsets,omitempty"`
	Bbox       *BoundingBox `json:"bbox,omitempty"`
}

// UploadOptions tune the simulated extraction run. They only affect the
// synthesized clause text and the extraction log.
type UploadOptions struct {
	OCR          bool `json:"ocr"`
	ClauseSplit  bool `json:"clause_split"`
	ManualReview bool `json:"manual_review"`
}

type ExtractionReport struct {
	DocID         string   `json:"doc_id"`
	ClausesCount  int      `json:"clauses_count"`
	ExtractionLog []string `json:"extraction_log"`
}

type IndexStats struct {
	Docs         int `json:"docs"`
	QueriesToday int `json:"queries_today"`
	IndexSize    int `json:"index_size"`
	AvgLatencyMS int `json:"avg_latency_ms"`
}
