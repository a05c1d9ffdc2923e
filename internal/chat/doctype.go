package chat

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/horo-ai/horo/internal/models"
)

// charsPerPage is the assumed number of characters on one page of text.
const charsPerPage = 2000

// DetectDocumentType infers a document's category from its filename and
// content. Filename keywords take priority over content keywords; the first
// matching rule wins and unmatched documents fall back to the generic
// Document category.
func DetectDocumentType(filename, content string) string {
	name := strings.ToLower(filename)
	contentLower := strings.ToLower(content)

	switch {
	case containsAny(name, "policy", "procedure", "rule"):
		return models.DocTypePolicy
	case containsAny(name, "handbook", "manual", "guide"):
		return models.DocTypeHandbook
	case containsAny(name, "finance", "financial", "budget", "revenue"):
		return models.DocTypeFinance
	case containsAny(contentLower, "loan", "credit", "lending"):
		return models.DocTypePolicy
	case containsAny(contentLower, "onboard", "training", "employee"):
		return models.DocTypeHandbook
	default:
		return models.DocTypeDocument
	}
}

// EstimatePages estimates the page count of a document from its character
// length. The result is always at least 1.
func EstimatePages(content string) int {
	pages := utf8.RuneCountInString(content) / charsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

// DocumentID derives the stable identifier for a document from its tenant and
// filename: the first 8 hex characters of the MD5 digest of
// "{tenantID}_{filename}". Content is deliberately not part of the input, so
// re-uploading a same-named file reuses the id.
func DocumentID(tenantID, filename string) string {
	sum := md5.Sum([]byte(tenantID + "_" + filename))
	return hex.EncodeToString(sum[:])[:8]
}

// containsAny reports whether s contains at least one of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
