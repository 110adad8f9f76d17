package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
	"github.com/foyerapp/foyer-backend/internal/service/auth"
	"github.com/foyerapp/foyer-backend/pkg/ctxutil"
)

// uploadService stores an avatar and returns its public URL.
type uploadService interface {
	SaveAvatar(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) (string, error)
}

// profileUpdater persists the stored avatar URL on the user.
type profileUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, input auth.UpdateProfileInput) (*domain.User, error)
}

// UploadHandler serves the avatar upload endpoint.
type UploadHandler struct {
	svc      uploadService
	profiles profileUpdater
	maxBytes int64
	log      *slog.Logger
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(svc uploadService, profiles profileUpdater, maxBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		svc:      svc,
		profiles: profiles,
		maxBytes: maxBytes,
		log:      logger.With("handler", "upload"),
	}
}

// Avatar handles POST /api/upload/avatar. The image comes in the
// multipart form field "avatar"; the stored file's URL is written back
// to the user's profile.
func (h *UploadHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1024)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing avatar file")
		return
	}
	defer file.Close()

	url, err := h.svc.SaveAvatar(r.Context(), userID, header.Filename, file)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	user, err := h.profiles.UpdateProfile(r.Context(), userID, auth.UpdateProfileInput{AvatarURL: &url})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Avatar uploaded",
		"url":     url,
		"user":    toUserResponse(user),
	})
}
