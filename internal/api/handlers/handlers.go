// Package handlers implements the HTTP handlers for the deploychat
// dispatcher: the chat endpoint and the panel renderers.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/agentoven/deploychat/internal/panel"
	"github.com/agentoven/deploychat/pkg/contracts"
	"github.com/agentoven/deploychat/pkg/models"
)

// maxBodyBytes caps request bodies. Predictions with generated manifests
// can be large, prompts are not.
const maxBodyBytes = 4 << 20

// Handlers holds all handler dependencies.
type Handlers struct {
	ChatService contracts.ChatService
	Panel       *panel.Renderer
}

// New creates a new Handlers instance.
func New(chat contracts.ChatService, renderer *panel.Renderer) *Handlers {
	return &Handlers{ChatService: chat, Panel: renderer}
}

// ══════════════════════════════════════════════════════════════
// ── Chat ─────────────────────────────────────────────────────
// ══════════════════════════════════════════════════════════════

// Chat runs one request cycle. Any well-formed request gets a 200 with a
// ChatReply, including replies that report a failed deployment call.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		respondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	respondJSON(w, http.StatusOK, h.ChatService.Handle(r.Context(), req))
}

// ══════════════════════════════════════════════════════════════
// ── Panels ───────────────────────────────────────────────────
// ══════════════════════════════════════════════════════════════

// PanelDetails renders the details page for a prediction, the payload of
// the showDeploymentDetails action.
func (h *Handlers) PanelDetails(w http.ResponseWriter, r *http.Request) {
	var pred models.Prediction
	if err := decodeBody(w, r, &pred); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.Panel.RenderDetails(&pred)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render details panel")
		respondError(w, http.StatusInternalServerError, "failed to render details")
		return
	}
	respondText(w, "text/html; charset=utf-8", page)
}

// PanelConfig renders manifests as multi-document YAML, the payload of the
// generateConfig action.
func (h *Handlers) PanelConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.DeploymentConfig
	if err := decodeBody(w, r, &cfg); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := panel.ConfigYAML(&cfg)
	if err != nil {
		log.Error().Err(err).Str("app", cfg.AppName).Msg("Failed to render manifests")
		respondError(w, http.StatusInternalServerError, "failed to render manifests")
		return
	}
	if out == "" {
		respondError(w, http.StatusUnprocessableEntity, "deployment config has no manifests")
		return
	}
	respondText(w, "application/yaml", out)
}

// PanelReply renders a chat reply as a sanitized HTML fragment.
func (h *Handlers) PanelReply(w http.ResponseWriter, r *http.Request) {
	var reply models.ChatReply
	if err := decodeBody(w, r, &reply); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	frag, err := h.Panel.RenderReply(reply)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render reply panel")
		respondError(w, http.StatusInternalServerError, "failed to render reply")
		return
	}
	respondText(w, "text/html; charset=utf-8", frag)
}

// ── Helpers ─────────────────────────────────────────────────

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, body)
}
