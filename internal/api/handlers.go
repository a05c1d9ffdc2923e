package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/horo-ai/horo/internal/chat"
	"github.com/horo-ai/horo/internal/models"
	"github.com/horo-ai/horo/pkg/logger"
)

// TenantHeader carries the caller's tenant identity on every request.
const TenantHeader = "X-Tenant-ID"

// minDocumentChars is the minimum upload length, counted after trimming.
const minDocumentChars = 50

// Handler bundles the HTTP endpoint handlers around the chat service.
type Handler struct {
	service *chat.Service
	log     *logger.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(service *chat.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// UploadDocument handles POST /upload: a multipart file upload ingested into
// the calling tenant's corpus.
func (h *Handler) UploadDocument(c *gin.Context) {
	tenantID := c.GetHeader(TenantHeader)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s header is required", TenantHeader)})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": chat.ErrUnreadableDocument.Error() + ". Please upload text-based documents."})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": chat.ErrUnreadableDocument.Error() + ". Please upload text-based documents."})
		return
	}

	if !isTextContent(data) {
		c.JSON(http.StatusBadRequest, gin.H{"error": chat.ErrUnreadableDocument.Error() + ". Please upload text-based documents."})
		return
	}

	// Invalid byte sequences are dropped rather than rejected, so mostly-text
	// files still ingest.
	text := strings.ToValidUTF8(string(data), "")
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minDocumentChars {
		c.JSON(http.StatusBadRequest, gin.H{"error": chat.ErrDocumentTooShort.Error()})
		return
	}

	info, err := h.service.UploadDocument(c.Request.Context(), tenantID, fileHeader.Filename, text)
	if err != nil {
		h.log.WithTenant(tenantID).Error(fmt.Sprintf("Upload failed: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

// QueryDocuments handles POST /query: answers a question against the calling
// tenant's corpus. Provider failures are recovered inside the service, so
// this endpoint only fails on malformed requests or tenant mismatch.
func (h *Handler) QueryDocuments(c *gin.Context) {
	tenantID := c.GetHeader(TenantHeader)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s header is required", TenantHeader)})
		return
	}

	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TenantID != tenantID {
		c.JSON(http.StatusForbidden, gin.H{"error": chat.ErrTenantMismatch.Error()})
		return
	}

	c.JSON(http.StatusOK, h.service.Query(c.Request.Context(), req.TenantID, req.Question))
}

// ListDocuments handles GET /documents: the calling tenant's catalog in
// upload order, possibly empty.
func (h *Handler) ListDocuments(c *gin.Context) {
	tenantID := c.GetHeader(TenantHeader)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s header is required", TenantHeader)})
		return
	}

	c.JSON(http.StatusOK, h.service.ListDocuments(tenantID))
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// isTextContent reports whether the uploaded bytes look like a text format.
// All text formats recognised by the mimetype library descend from text/plain.
func isTextContent(data []byte) bool {
	for mtype := mimetype.Detect(data); mtype != nil; mtype = mtype.Parent() {
		if mtype.Is("text/plain") {
			return true
		}
	}
	return false
}
