package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"freelance-match/internal/infrastructure/authapi"
	"freelance-match/internal/infrastructure/filestore"
	applog "freelance-match/internal/logger"
)

// AvatarUploader stores an image and returns its URL, usually relative.
type AvatarUploader interface {
	UploadAvatar(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

type AvatarUsecase interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

type Avatars struct {
	uploader      AvatarUploader
	publicBaseURL string
	logger        *zap.Logger
}

func NewAvatarUsecase(uploader AvatarUploader, publicBaseURL string, logger *zap.Logger) *Avatars {
	logger = applog.OrNop(logger)
	return &Avatars{uploader: uploader, publicBaseURL: strings.TrimRight(publicBaseURL, "/"), logger: logger}
}

// Upload returns an absolute URL. Relative results are joined to the public
// base URL.
func (u *Avatars) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	url, err := u.uploader.UploadAvatar(ctx, filename, contentType, r)
	if err != nil {
		return "", uploadFailure(err, u.logger)
	}
	return u.Resolve(url), nil
}

func (u *Avatars) Resolve(url string) string {
	if url == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return u.publicBaseURL + url
}

func uploadFailure(err error, logger *zap.Logger) error {
	var apiErr *authapi.APIError
	switch {
	case errors.Is(err, filestore.ErrEmptyFile):
		return &RejectedError{Message: "File is empty", Cause: err}
	case errors.Is(err, filestore.ErrNotImage):
		return &RejectedError{Message: "Only image files allowed", Cause: err}
	case errors.As(err, &apiErr):
		return &RejectedError{Message: apiErr.Message, Cause: err}
	case errors.Is(err, authapi.ErrUnreachable):
		return &RejectedError{Message: authapi.MessageUnreachable, Unreachable: true, Cause: err}
	default:
		logger.Error("avatar upload", zap.Error(err))
		return ErrInternal
	}
}
