// Package domain contains core business types and interfaces.
//
// This file defines constraints for report photo uploads. Photos live in
// fixed slots on the inspection record; each slot stores the public URL of
// the stored original.
package domain

// SupportedPhotoTypes maps accepted MIME types to their human-readable
// names. Only JPEG and PNG are supported (HEIC requires CGO).
var SupportedPhotoTypes = map[string]string{
	"image/jpeg": "JPEG",
	"image/png":  "PNG",
}

const (
	// MaxPhotoSize is the maximum allowed size for an uploaded photo (10MB).
	MaxPhotoSize = 10 * 1024 * 1024

	// ThumbnailMaxWidth is the maximum width for generated thumbnails.
	ThumbnailMaxWidth = 320

	// ThumbnailMaxHeight is the maximum height for generated thumbnails.
	ThumbnailMaxHeight = 320

	// ThumbnailJPEGQuality is the JPEG quality for thumbnail generation (0-100).
	ThumbnailJPEGQuality = 85
)

// IsValidPhotoContentType checks if the content type is supported.
func IsValidPhotoContentType(contentType string) bool {
	_, ok := SupportedPhotoTypes[contentType]
	return ok
}

// ValidatePhotoSize checks if the file size is within limits.
func ValidatePhotoSize(size int64) error {
	if size > MaxPhotoSize {
		return Errorf(ETOOLARGE, "photo.validate", "Photo size %d bytes exceeds maximum of %d bytes (%.1fMB)", size, MaxPhotoSize, float64(MaxPhotoSize)/(1024*1024))
	}
	if size == 0 {
		return Invalid("photo.validate", "Photo file is empty")
	}
	return nil
}

// ValidatePhotoSlot checks that a slot index addresses one of the fixed
// photo positions.
func ValidatePhotoSlot(slot int) error {
	if slot < 0 || slot >= MaxPhotoSlots {
		return Errorf(EPHOTO, "photo.validate", "Photo slot %d is out of range (0-%d)", slot, MaxPhotoSlots-1)
	}
	return nil
}
