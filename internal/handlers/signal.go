package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studydeck-backend/internal/logger"
	"github.com/yungbote/studydeck-backend/internal/services"
)

type SignalHandler struct {
	log           *logger.Logger
	signalService services.SignalService
}

func NewSignalHandler(log *logger.Logger, signalService services.SignalService) *SignalHandler {
	return &SignalHandler{
		log:           log.With("handler", "SignalHandler"),
		signalService: signalService,
	}
}

func (h *SignalHandler) CreateSession(c *gin.Context) {
	sessionID, err := h.signalService.CreateSession(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "create_session_failed", err)
		return
	}
	RespondOK(c, gin.H{"session_id": sessionID})
}

type sdpRequest struct {
	SDP string `json:"sdp"`
}

func (h *SignalHandler) PostOffer(c *gin.Context) {
	var req sdpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.signalService.SetOffer(c.Request.Context(), c.Param("session_id"), req.SDP); err != nil {
		RespondError(c, http.StatusBadRequest, "post_offer_failed", err)
		return
	}
	RespondOK(c, gin.H{"ok": true})
}

func (h *SignalHandler) GetOffer(c *gin.Context) {
	sdp, err := h.signalService.GetOffer(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "get_offer_failed", err)
		return
	}
	RespondOK(c, gin.H{"sdp": sdp})
}

func (h *SignalHandler) PostAnswer(c *gin.Context) {
	var req sdpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.signalService.SetAnswer(c.Request.Context(), c.Param("session_id"), req.SDP); err != nil {
		RespondError(c, http.StatusBadRequest, "post_answer_failed", err)
		return
	}
	RespondOK(c, gin.H{"ok": true})
}

func (h *SignalHandler) GetAnswer(c *gin.Context) {
	sdp, err := h.signalService.GetAnswer(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "get_answer_failed", err)
		return
	}
	RespondOK(c, gin.H{"sdp": sdp})
}

type candidateRequest struct {
	Candidate string `json:"candidate"`
}

func (h *SignalHandler) PostCandidate(c *gin.Context) {
	var req candidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.signalService.AddCandidate(c.Request.Context(), c.Param("session_id"), c.Param("role"), req.Candidate); err != nil {
		RespondError(c, http.StatusBadRequest, "post_candidate_failed", err)
		return
	}
	RespondOK(c, gin.H{"ok": true})
}

func (h *SignalHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.signalService.Candidates(c.Request.Context(), c.Param("session_id"), c.Param("role"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "list_candidates_failed", err)
		return
	}
	RespondOK(c, gin.H{"candidates": candidates})
}
