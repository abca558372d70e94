package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studydeck-backend/internal/content"
	"github.com/yungbote/studydeck-backend/internal/logger"
	"github.com/yungbote/studydeck-backend/internal/requestdata"
	"github.com/yungbote/studydeck-backend/internal/services"
)

type DocumentHandler struct {
	log             *logger.Logger
	documentService services.DocumentService
}

func NewDocumentHandler(log *logger.Logger, documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		log:             log.With("handler", "DocumentHandler"),
		documentService: documentService,
	}
}

// SaveCourse accepts the raw request body rather than binding into the typed
// document directly. Client payloads come from generated JSON that may carry
// wrong shapes in individual fields, and decoding tolerates those by dropping
// the malformed field instead of rejecting the whole save.
func (h *DocumentHandler) SaveCourse(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("unauthorized"))
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "read_body_failed", err)
		return
	}
	incoming, err := content.DecodeDocument(body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_document", err)
		return
	}
	merged, err := h.documentService.Save(c.Request.Context(), nil, c.Param("slug"), incoming)
	if err != nil {
		h.log.Error("Failed to save course", "slug", c.Param("slug"), "error", err.Error())
		RespondError(c, http.StatusInternalServerError, "save_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"course": merged})
}

func (h *DocumentHandler) GetCourse(c *gin.Context) {
	doc, err := h.documentService.Get(c.Request.Context(), nil, c.Param("slug"))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "load_course_failed", err)
		return
	}
	if doc == nil {
		RespondError(c, http.StatusNotFound, "course_not_found", fmt.Errorf("course not found"))
		return
	}
	RespondOK(c, gin.H{"course": doc})
}

func (h *DocumentHandler) ListCourses(c *gin.Context) {
	listings, err := h.documentService.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_courses_failed", err)
		return
	}
	RespondOK(c, gin.H{"courses": listings})
}

func (h *DocumentHandler) DeleteCourse(c *gin.Context) {
	if err := h.documentService.Delete(c.Request.Context(), nil, c.Param("slug")); err != nil {
		RespondError(c, http.StatusInternalServerError, "delete_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"ok": true})
}
