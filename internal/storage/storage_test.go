package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// =============================================================================
// Key Helper Tests
// =============================================================================

func TestPhotoKey_Format(t *testing.T) {
	bookingID := uuid.New()

	key := PhotoKey(bookingID, "engine-bay.JPG")

	if !strings.HasPrefix(key, "bookings/"+bookingID.String()+"/photos/") {
		t.Errorf("unexpected key prefix: %s", key)
	}
	if !strings.HasSuffix(key, ".JPG") {
		t.Errorf("original extension should be preserved, got: %s", key)
	}
}

func TestPhotoKey_UniquePerCall(t *testing.T) {
	bookingID := uuid.New()

	a := PhotoKey(bookingID, "photo.jpg")
	b := PhotoKey(bookingID, "photo.jpg")

	if a == b {
		t.Error("keys for the same filename must not collide")
	}
}

func TestThumbnailKeyFor(t *testing.T) {
	tests := []struct {
		name     string
		photoKey string
		want     string
	}{
		{
			"jpeg photo",
			"bookings/abc/photos/xyz.jpg",
			"bookings/abc/thumbs/xyz.jpg",
		},
		{
			"png converts to jpg thumbnail",
			"bookings/abc/photos/xyz.png",
			"bookings/abc/thumbs/xyz.jpg",
		},
		{
			"no extension",
			"bookings/abc/photos/xyz",
			"bookings/abc/thumbs/xyz.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThumbnailKeyFor(tt.photoKey); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"local url",
			"http://localhost:8080/files/bookings/abc/photos/xyz.jpg",
			"bookings/abc/photos/xyz.jpg",
		},
		{
			"custom domain url",
			"https://files.motorcheck.app/bookings/abc/photos/xyz.jpg",
			"bookings/abc/photos/xyz.jpg",
		},
		{
			"not a photo url",
			"https://example.com/logo.png",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFromURL(tt.url); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// =============================================================================
// LocalStorage Tests
// =============================================================================

func testLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store, err := NewLocalStorage(LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/files",
	}, logger)
	if err != nil {
		t.Fatalf("create local storage: %v", err)
	}
	return store
}

func TestLocalStorage_PutGetRoundTrip(t *testing.T) {
	store := testLocalStorage(t)
	ctx := context.Background()

	key := "bookings/abc/photos/test.jpg"
	if err := store.Put(ctx, key, strings.NewReader("photo bytes"), PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}

	reader, info, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "photo bytes" {
		t.Errorf("unexpected content: %q", data)
	}
	if info.Size != int64(len("photo bytes")) {
		t.Errorf("unexpected size: %d", info.Size)
	}
	if info.ContentType != "image/jpeg" {
		t.Errorf("expected image/jpeg from extension, got %q", info.ContentType)
	}
}

func TestLocalStorage_PutRejectsExistingKey(t *testing.T) {
	store := testLocalStorage(t)
	ctx := context.Background()

	key := "bookings/abc/photos/test.jpg"
	if err := store.Put(ctx, key, strings.NewReader("first"), PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}

	err := store.Put(ctx, key, strings.NewReader("second"), PutOptions{})
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected key-exists error, got: %v", err)
	}

	if err := store.Put(ctx, key, strings.NewReader("second"), PutOptions{Overwrite: true}); err != nil {
		t.Errorf("overwrite should succeed: %v", err)
	}
}

func TestLocalStorage_PutEnforcesMaxSize(t *testing.T) {
	store := testLocalStorage(t)
	ctx := context.Background()

	key := "bookings/abc/photos/big.jpg"
	err := store.Put(ctx, key, strings.NewReader("0123456789"), PutOptions{MaxSize: 5})
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got: %v", err)
	}

	// The oversized write must not leave a partial object behind.
	exists, err := store.Exists(ctx, key)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("oversized upload should not leave a file behind")
	}
}

func TestLocalStorage_GetMissingKey(t *testing.T) {
	store := testLocalStorage(t)

	_, _, err := store.Get(context.Background(), "bookings/abc/photos/missing.jpg")
	if !IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestLocalStorage_DeleteIsIdempotent(t *testing.T) {
	store := testLocalStorage(t)
	ctx := context.Background()

	if err := store.Delete(ctx, "bookings/abc/photos/missing.jpg"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}
}

func TestLocalStorage_RejectsPathTraversal(t *testing.T) {
	store := testLocalStorage(t)
	ctx := context.Background()

	for _, key := range []string{"", "../etc/passwd", "bookings/../../secret", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			err := store.Put(ctx, key, strings.NewReader("x"), PutOptions{})
			if err == nil {
				t.Errorf("key %q should be rejected", key)
			}
		})
	}
}

func TestLocalStorage_URL(t *testing.T) {
	store := testLocalStorage(t)

	url, err := store.URL(context.Background(), "bookings/abc/photos/test.jpg", 0)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if url != "http://localhost:8080/files/bookings/abc/photos/test.jpg" {
		t.Errorf("unexpected url: %s", url)
	}
}
