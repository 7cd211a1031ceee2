// Package jobs contains the background job handlers executed by the
// worker.
package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/DukeRupert/motorcheck/internal/service"
	"github.com/DukeRupert/motorcheck/internal/storage"
	"github.com/DukeRupert/motorcheck/internal/worker"
)

// ProcessPhotoHandler generates the thumbnail for an uploaded report photo.
// The original is already public when this runs; the thumbnail lands at a
// key derived from the photo key so readers can locate it without a
// database lookup.
type ProcessPhotoHandler struct {
	storage   storage.Storage
	processor service.ThumbnailProcessor
	logger    *slog.Logger
}

// NewProcessPhotoHandler creates a new handler for photo processing jobs.
func NewProcessPhotoHandler(
	store storage.Storage,
	processor service.ThumbnailProcessor,
	logger *slog.Logger,
) *ProcessPhotoHandler {
	return &ProcessPhotoHandler{
		storage:   store,
		processor: processor,
		logger:    logger,
	}
}

// Type returns the job type identifier.
func (h *ProcessPhotoHandler) Type() string {
	return worker.JobTypeProcessPhoto
}

// Handle executes the photo processing job.
func (h *ProcessPhotoHandler) Handle(ctx context.Context, payload []byte) error {
	var p worker.ProcessPhotoPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return worker.NewPermanentError(fmt.Errorf("invalid payload: %w", err))
	}
	if p.PhotoKey == "" {
		return worker.NewPermanentError(fmt.Errorf("payload missing photo key"))
	}

	h.logger.Info("Processing photo",
		"booking_id", p.BookingID,
		"photo_key", p.PhotoKey,
	)

	// The photo may have been removed from its slot before the job ran.
	// That is not a failure worth retrying.
	reader, _, err := h.storage.Get(ctx, p.PhotoKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.logger.Warn("Photo gone before thumbnail generation", "photo_key", p.PhotoKey)
			return nil
		}
		return fmt.Errorf("fetch photo: %w", err)
	}
	defer reader.Close()

	thumb, width, height, err := h.processor.GenerateThumbnail(
		reader,
		domain.ThumbnailMaxWidth,
		domain.ThumbnailMaxHeight,
	)
	if err != nil {
		// Undecodable data will not decode on retry either.
		return worker.NewPermanentError(fmt.Errorf("generate thumbnail: %w", err))
	}

	thumbKey := storage.ThumbnailKeyFor(p.PhotoKey)
	if err := h.storage.Put(ctx, thumbKey, bytes.NewReader(thumb), storage.PutOptions{
		ContentType: "image/jpeg",
		Overwrite:   true,
		Public:      true,
	}); err != nil {
		return fmt.Errorf("upload thumbnail: %w", err)
	}

	h.logger.Info("Thumbnail generated",
		"photo_key", p.PhotoKey,
		"thumbnail_key", thumbKey,
		"original_width", width,
		"original_height", height,
	)

	return nil
}
