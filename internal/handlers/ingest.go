package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/hoopsight/projection-api/internal/logic"
	"github.com/hoopsight/projection-api/internal/models"
)

// IngestGameLogs handles POST /api/v1/ingest/gamelogs
// @Summary Ingest Game Logs
// @Description Accepts a JSON array or newline-separated JSON game log rows
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param body body []models.GameLogEvent true "Game log rows"
// @Success 202 {object} models.IngestResponse "Accepted"
// @Failure 413 {object} map[string]string "Request body too large"
// @Failure 503 {object} map[string]string "Ingestion disabled"
// @Router /ingest/gamelogs [post]
func (h *Handler) IngestGameLogs(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		h.errorResponse(w, http.StatusServiceUnavailable, "Ingestion is not enabled")
		return
	}

	// Limit request body to 1MB to prevent DoS
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	rows, rejected := h.decodeGameLogs(body)

	processed := 0
	for i := range rows {
		row := &rows[i]
		if err := h.validator.Struct(row); err != nil || !logic.ValidPlayerID(row.Player) {
			h.logger.Debugw("Rejected game log row", "error", err, "player", row.Player)
			rejected++
			continue
		}
		if !h.pool.Enqueue(row) {
			h.logger.Warn("Worker pool queue full, dropping remaining rows in batch")
			rejected += len(rows) - i
			break
		}
		processed++
	}

	h.jsonResponse(w, http.StatusAccepted, models.IngestResponse{
		Status:    "accepted",
		Processed: processed,
		Rejected:  rejected,
	})
}

// decodeGameLogs accepts either a JSON array or one JSON object per line.
// Lines that fail to decode are counted as rejected.
func (h *Handler) decodeGameLogs(body []byte) ([]models.GameLogEvent, int) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []models.GameLogEvent
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			h.logger.Warnw("Failed to unmarshal game log array", "error", err)
			return nil, 1
		}
		return rows, 0
	}

	var (
		rows     []models.GameLogEvent
		rejected int
	)
	for i, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row models.GameLogEvent
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			h.logger.Warnw("Failed to unmarshal game log row", "error", err, "lineNum", i)
			rejected++
			continue
		}
		rows = append(rows, row)
	}
	return rows, rejected
}
