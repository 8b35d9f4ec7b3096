// internal/handlers/import.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
	"github.com/ammerola/parts-be/internal/workers"
)

// multipartOverhead is the room left for boundaries and headers around the file.
const multipartOverhead = 64 << 10

// ImportHandler accepts CSV uploads and schedules background work
type ImportHandler struct {
	queue          ports.TaskQueue
	inspector      ports.TaskInspector
	archive        ports.FileArchive
	maxUploadBytes int64
	queueName      string
	replenishQueue string
	logger         *slog.Logger
}

// NewImportHandler creates a new import handler. archive may be nil.
func NewImportHandler(
	queue ports.TaskQueue,
	inspector ports.TaskInspector,
	archive ports.FileArchive,
	maxUploadBytes int64,
	queueName string,
	logger *slog.Logger,
) *ImportHandler {
	return &ImportHandler{
		queue:          queue,
		inspector:      inspector,
		archive:        archive,
		maxUploadBytes: maxUploadBytes,
		queueName:      queueName,
		replenishQueue: queueName,
		logger:         logger.With(slog.String("handler", "import")),
	}
}

// WithReplenishQueue sends manual replenishment tasks to name instead of
// the import queue.
func (h *ImportHandler) WithReplenishQueue(name string) *ImportHandler {
	if name != "" {
		h.replenishQueue = name
	}
	return h
}

// ImportCSV handles POST /api/v1/parts/import-csv
func (h *ImportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondDetail(w, h.logger, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		respondDetail(w, h.logger, http.StatusBadRequest, "file required")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondDetail(w, h.logger, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		respondDetail(w, h.logger, http.StatusBadRequest, "file must have a .csv extension")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read upload", slog.String("error", err.Error()))
		respondDetail(w, h.logger, http.StatusBadRequest, "failed to read file")
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		respondDetail(w, h.logger, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	if !utf8.Valid(data) {
		respondDetail(w, h.logger, http.StatusBadRequest, "file must be UTF-8 encoded text")
		return
	}

	payload := workers.ImportCSVPayload{
		CSVText:  string(data),
		Filename: header.Filename,
	}

	if h.archive != nil {
		key, err := h.archive.Archive(ctx, header.Filename, data)
		if err != nil {
			h.logger.WarnContext(ctx, "failed to archive upload",
				slog.String("filename", header.Filename),
				slog.String("error", err.Error()))
		} else {
			payload.ArchiveKey = key
		}
	}

	task, err := workers.NewImportCSVTask(payload, h.queueName)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build import task", slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to queue import")
		return
	}

	handle, err := h.queue.Submit(ctx, task)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue import", slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to queue import")
		return
	}

	h.logger.InfoContext(ctx, "csv import queued",
		slog.String("task_id", handle.ID),
		slog.String("filename", header.Filename),
		slog.Int("size", len(data)))

	respondJSON(w, h.logger, http.StatusAccepted, map[string]interface{}{
		"detail":  "import scheduled",
		"message": "the file was received and is being processed in the background",
		"task_id": handle.ID,
		"queue":   handle.Queue,
	})
}

// ImportStatus handles GET /api/v1/parts/import-csv/{task_id}
func (h *ImportHandler) ImportStatus(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task_id")
	queue := r.URL.Query().Get("queue")
	if queue == "" {
		queue = h.queueName
	}

	status, err := h.inspector.TaskStatus(r.Context(), queue, taskID)
	if errors.Is(err, ports.ErrTaskNotFound) || (err == nil && status.Type != workers.TypeImportCSV) {
		respondError(w, h.logger, http.StatusNotFound, "Import not found")
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to read import status",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to read import status")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, status)
}

// Replenish handles POST /api/v1/parts/replenish
func (h *ImportHandler) Replenish(w http.ResponseWriter, r *http.Request) {
	minimum := domain.DefaultReplenishMinimum
	if raw := r.URL.Query().Get("minimum"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondError(w, h.logger, http.StatusBadRequest,
				fmt.Sprintf("minimum must be a non-negative integer, got %q", raw))
			return
		}
		minimum = v
	}

	task, err := workers.NewReplenishTask(minimum, h.replenishQueue)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build replenish task", slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to queue replenishment")
		return
	}

	handle, err := h.queue.Submit(r.Context(), task)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to enqueue replenishment", slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to queue replenishment")
		return
	}

	h.logger.InfoContext(r.Context(), "replenishment queued",
		slog.String("task_id", handle.ID),
		slog.Int("minimum", minimum))

	respondJSON(w, h.logger, http.StatusAccepted, map[string]interface{}{
		"detail":  "replenishment scheduled",
		"task_id": handle.ID,
		"queue":   handle.Queue,
		"minimum": minimum,
	})
}
