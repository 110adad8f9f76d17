package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/pkg/ctxutil"
)

// pushTokenSaver persists a user's Expo push token.
type pushTokenSaver interface {
	SavePushToken(ctx context.Context, userID uuid.UUID, token string) error
}

// pushTokenLister resolves the push tokens of a foyer's other members.
type pushTokenLister interface {
	MemberPushTokens(ctx context.Context, foyerID, excludeUserID uuid.UUID) ([]string, error)
}

// pushSender delivers push notifications.
type pushSender interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]any) error
}

// NotificationHandler serves push notification REST endpoints.
type NotificationHandler struct {
	tokens pushTokenSaver
	foyers pushTokenLister
	sender pushSender
	log    *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(tokens pushTokenSaver, foyers pushTokenLister, sender pushSender, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		tokens: tokens,
		foyers: foyers,
		sender: sender,
		log:    logger.With("handler", "notification"),
	}
}

type saveTokenRequest struct {
	Token string `json:"token"`
}

type sendNotificationRequest struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data"`
}

// SaveToken handles POST /api/notifications/token. An empty token
// clears the stored one.
func (h *NotificationHandler) SaveToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req saveTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.tokens.SavePushToken(r.Context(), userID, req.Token); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Push token saved"})
}

// Send handles POST /api/notifications/send. The notification goes to
// every other member of the caller's foyer.
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	foyerID, userID, ok := scopeFromCtx(w, r)
	if !ok {
		return
	}

	var req sendNotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	tokens, err := h.foyers.MemberPushTokens(r.Context(), foyerID, userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.sender.Send(r.Context(), tokens, req.Title, req.Body, req.Data); err != nil {
		h.log.WarnContext(r.Context(), "push delivery failed", slog.Any("error", err))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Notification sent",
		"recipients": len(tokens),
	})
}
