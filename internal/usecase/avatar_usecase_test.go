package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"freelance-match/internal/infrastructure/authapi"
	"freelance-match/internal/infrastructure/filestore"
)

type fakeUploader struct {
	url string
	err error
}

func (f fakeUploader) UploadAvatar(_ context.Context, _, _ string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	return f.url, f.err
}

func TestAvatars_ResolvesRelativeURL(t *testing.T) {
	uc := NewAvatarUsecase(fakeUploader{url: "/uploads/a.png"}, "http://localhost:8080/", nil)

	url, err := uc.Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if url != "http://localhost:8080/uploads/a.png" {
		t.Fatalf("unexpected url %q", url)
	}

	if got := uc.Resolve("https://cdn.example.com/a.png"); got != "https://cdn.example.com/a.png" {
		t.Fatalf("expected absolute url untouched, got %q", got)
	}
	if got := uc.Resolve("uploads/b.png"); got != "http://localhost:8080/uploads/b.png" {
		t.Fatalf("unexpected joined url %q", got)
	}
}

func TestAvatars_Failures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{"empty", filestore.ErrEmptyFile, "File is empty"},
		{"not image", filestore.ErrNotImage, "Only image files allowed"},
		{"remote", &authapi.APIError{StatusCode: 400, Message: "Only image files allowed"}, "Only image files allowed"},
		{"unreachable", authapi.ErrUnreachable, authapi.MessageUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewAvatarUsecase(fakeUploader{err: tt.err}, "http://localhost:8080", nil)
			_, err := uc.Upload(context.Background(), "a", "image/png", strings.NewReader("x"))

			var rej *RejectedError
			if !errors.As(err, &rej) || rej.Message != tt.wantMessage {
				t.Fatalf("expected rejection %q, got %v", tt.wantMessage, err)
			}
		})
	}

	uc := NewAvatarUsecase(fakeUploader{err: errors.New("disk full")}, "", nil)
	if _, err := uc.Upload(context.Background(), "a", "image/png", strings.NewReader("x")); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
