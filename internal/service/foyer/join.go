package foyer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

// JoinInput holds parameters for joining a foyer by invite code.
type JoinInput struct {
	Code       string
	AcceptRule bool
}

// Validate validates the join input.
func (i JoinInput) Validate() error {
	var errs []domain.FieldError

	if i.Code == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	} else if len(i.Code) != domain.InviteCodeLength {
		errs = append(errs, domain.FieldError{Field: "code", Message: "invalid code"})
	}
	if !i.AcceptRule {
		errs = append(errs, domain.FieldError{Field: "acceptRule", Message: "the foyer rule must be accepted"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Join enrolls the user into the foyer matching the invite code. Joining
// twice returns ErrAlreadyExists; the database constraint makes this hold
// under concurrent requests too.
func (s *Service) Join(ctx context.Context, userID uuid.UUID, input JoinInput) (*domain.Foyer, error) {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	f, err := s.foyers.GetByCode(ctx, input.Code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("foyer.Join: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("foyer.Join get by code: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.foyers.AddMember(txCtx, userID, f.ID); err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		if err := s.users.SetRuleAccepted(txCtx, userID, time.Now()); err != nil {
			return fmt.Errorf("accept rule: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("foyer.Join: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("foyer.Join: %w", err)
	}

	s.log.InfoContext(ctx, "user joined foyer",
		slog.String("foyer_id", f.ID.String()),
		slog.String("user_id", userID.String()),
	)

	return f, nil
}
