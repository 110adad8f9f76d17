package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// Profile returns the authenticated user's profile.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth.Profile: %w", err)
	}
	return user, nil
}

// UpdateProfile changes the provided profile fields and returns the
// updated user. Email changes go through the same normalization as Register.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	if input.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*input.Email))
		input.Email = &normalized
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, userID, input.Name, input.Email, input.AvatarURL)
	if err != nil {
		return nil, fmt.Errorf("auth.UpdateProfile: %w", err)
	}
	return user, nil
}

// SavePushToken stores the user's Expo push token. An empty token clears it.
func (s *Service) SavePushToken(ctx context.Context, userID uuid.UUID, token string) error {
	token = strings.TrimSpace(token)

	var value *string
	if token != "" {
		if !strings.HasPrefix(token, "ExponentPushToken[") {
			return domain.NewValidationError("pushToken", "not an Expo push token")
		}
		value = &token
	}

	if err := s.users.UpdatePushToken(ctx, userID, value); err != nil {
		return fmt.Errorf("auth.SavePushToken: %w", err)
	}
	return nil
}
