// Package upload stores user-submitted avatar images on local disk and
// hands back their public URLs.
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/config"
	"github.com/foyerapp/foyer-backend/internal/domain"
)

// allowedExtensions are the accepted avatar image types.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Service implements avatar upload.
type Service struct {
	log *slog.Logger
	cfg config.UploadConfig
}

// NewService creates a new upload service instance.
func NewService(logger *slog.Logger, cfg config.UploadConfig) *Service {
	return &Service{
		log: logger.With("service", "upload"),
		cfg: cfg,
	}
}

// SaveAvatar writes the uploaded image to the upload directory under a
// random name and returns its public URL path. The caller provides the
// original filename only for its extension; the stored name never
// contains user input.
func (s *Service) SaveAvatar(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", domain.NewValidationError("avatar", "unsupported image type")
	}

	name := fmt.Sprintf("%s%s", uuid.New(), ext)
	path := filepath.Join(s.cfg.Dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("upload.SaveAvatar create file: %w", err)
	}
	defer f.Close()

	// One byte over the cap means the client exceeded the limit.
	written, err := io.Copy(f, io.LimitReader(r, s.cfg.MaxSizeBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("upload.SaveAvatar write file: %w", err)
	}
	if written > s.cfg.MaxSizeBytes {
		os.Remove(path)
		return "", domain.NewValidationError("avatar", "file too large")
	}

	s.log.InfoContext(ctx, "avatar stored",
		slog.String("user_id", userID.String()),
		slog.Int64("bytes", written),
	)

	return s.cfg.PublicBase + "/uploads/" + name, nil
}
