package http

import (
	"net/http"

	"github.com/MKhiriev/go-snip-sink/internal/sink"
	"github.com/MKhiriev/go-snip-sink/internal/utils"
)

// statusResponse is the body of GET /api/status: a point-in-time snapshot of
// the daemon's relay connection, job accounting and batch activity.
type statusResponse struct {
	State      string        `json:"state"`
	Registered bool          `json:"registered"`
	Policies   sink.Policies `json:"policies"`
	Jobs       jobCounts     `json:"jobs"`
	Batch      batchState    `json:"batch"`
}

type jobCounts struct {
	Outstanding int `json:"outstanding"`
	Completed   int `json:"completed"`
}

type batchState struct {
	Sending bool `json:"sending"`
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	outstanding, completed := h.client.JobCounts()

	status := statusResponse{
		State:      h.client.State().String(),
		Registered: h.client.IsRegistered(),
		Policies:   h.client.PolicySnapshot(),
		Jobs:       jobCounts{Outstanding: outstanding, Completed: completed},
		Batch:      batchState{Sending: h.sender.IsSending()},
	}

	if _, err := utils.WriteJSON(w, status, http.StatusOK); err != nil {
		h.logger.Error().Err(err).Msg("write status response")
	}
}
