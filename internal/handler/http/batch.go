// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-snip-sink/internal/batch"
	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/internal/utils"
)

// batchRequest is the body of POST /api/batch. Mode is optional; when empty
// the daemon's configured default applies.
type batchRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode,omitempty"`
}

type batchAccepted struct {
	BatchID string `json:"batch_id"`
	Status  string `json:"status"`
	TraceID string `json:"trace_id,omitempty"`
}

// startBatch triggers a batch send of the posted text and returns 202 as
// soon as the session is launched. The session outlives the request, so it
// runs on a detached context; its outcome is reported through the progress
// sink and the log, keyed by the returned batch_id.
//
// The 409 precheck is advisory: a concurrent trigger that loses the race
// inside the sender is reported through the log, not this response.
func (h *Handler) startBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, map[string]string{"error": "malformed request body"}, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		utils.WriteJSON(w, map[string]string{"error": "empty text"}, http.StatusBadRequest)
		return
	}

	settings := h.batchDefaults
	switch req.Mode {
	case "":
	case string(batch.ModeAssisted):
		settings.Mode = batch.ModeAssisted
	case string(batch.ModeAutoSend):
		settings.Mode = batch.ModeAutoSend
	default:
		utils.WriteJSON(w, map[string]string{"error": "unknown mode"}, http.StatusBadRequest)
		return
	}

	if h.sender.IsSending() {
		utils.WriteJSON(w, map[string]string{"error": "batch send already in progress"}, http.StatusConflict)
		return
	}

	batchID := h.ids.Generate()
	log := logger.FromRequest(r)

	go func() {
		if err := h.sender.Send(context.Background(), req.Text, settings); err != nil {
			log.Warn().Err(err).Str("batch_id", batchID).Msg("batch send failed")
			return
		}
		log.Info().Str("batch_id", batchID).Msg("batch send finished")
	}()

	traceID, _ := utils.GetTraceIDFromContext(r.Context())
	utils.WriteJSON(w, batchAccepted{BatchID: batchID, Status: "accepted", TraceID: traceID}, http.StatusAccepted)
}

func (h *Handler) cancelBatch(w http.ResponseWriter, r *http.Request) {
	active := h.sender.IsSending()
	h.sender.Cancel()

	logger.FromRequest(r).Info().Bool("was_active", active).Msg("batch cancel requested")
	w.WriteHeader(http.StatusNoContent)
}
