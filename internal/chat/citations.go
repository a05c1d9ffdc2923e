package chat

import (
	"unicode/utf8"

	"github.com/horo-ai/horo/internal/models"
	"github.com/horo-ai/horo/internal/rag/schema"
)

// charsPerCitationPage is the assumed fragment length corresponding to one
// page when locating a citation inside its source document.
const charsPerCitationPage = 500

// defaultFragmentConfidence is assigned to fragments whose store did not
// report a relevance score. An unscored hit is treated as moderately
// confident rather than worthless.
const defaultFragmentConfidence = 0.8

// ExtractCitations converts retrieved fragments into citations, one per
// fragment and in fragment order. Missing metadata is filled with defaults:
// filename "Unknown", document type "Document", page 1.
func ExtractCitations(fragments []*schema.Result) []models.Citation {
	citations := make([]models.Citation, 0, len(fragments))
	for _, fragment := range fragments {
		doc := fragment.Document

		filename := doc.FileName()
		if filename == "" {
			filename = "Unknown"
		}
		docType := doc.DocType()
		if docType == "" {
			docType = models.DocTypeDocument
		}

		confidence := defaultFragmentConfidence
		if fragment.Scored {
			confidence = fragment.Score
		}

		citations = append(citations, models.Citation{
			Document:     filename,
			Page:         citationPage(doc),
			DocumentType: docType,
			Confidence:   confidence,
		})
	}
	return citations
}

// citationPage estimates which page of the source document a fragment came
// from: the fragment length in characters divided by the per-page size,
// bounded below by 1 and above by the document's total estimated pages.
func citationPage(doc *schema.Document) int {
	page := utf8.RuneCountInString(doc.Text) / charsPerCitationPage
	if page < 1 {
		page = 1
	}
	if total := doc.Pages(); page > total {
		page = total
	}
	return page
}
