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

// codeRetries bounds invite-code collision retries. With 36^8 codes a
// collision is already vanishingly rare.
const codeRetries = 3

// CreateInput holds parameters for creating a foyer.
type CreateInput struct {
	Name string
	Rule string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if len(i.Rule) > 2000 {
		errs = append(errs, domain.FieldError{Field: "rule", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Create makes a new foyer with a fresh invite code and enrolls the creator
// as its first member. Creating a foyer implies accepting its rule.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.Foyer, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Rule = strings.TrimSpace(input.Rule)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Foyer

	for attempt := 0; ; attempt++ {
		code, err := newInviteCode()
		if err != nil {
			return nil, fmt.Errorf("foyer.Create: %w", err)
		}

		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			f, err := s.foyers.Create(txCtx, &domain.Foyer{
				ID:   uuid.New(),
				Name: input.Name,
				Code: code,
				Rule: input.Rule,
			})
			if err != nil {
				return fmt.Errorf("create foyer: %w", err)
			}
			if err := s.foyers.AddMember(txCtx, userID, f.ID); err != nil {
				return fmt.Errorf("add creator: %w", err)
			}
			if err := s.users.SetRuleAccepted(txCtx, userID, time.Now()); err != nil {
				return fmt.Errorf("accept rule: %w", err)
			}
			created = f
			return nil
		})
		if err == nil {
			break
		}
		// Retry only on invite-code collision.
		if errors.Is(err, domain.ErrAlreadyExists) && attempt < codeRetries {
			s.log.WarnContext(ctx, "invite code collision, retrying")
			continue
		}
		return nil, fmt.Errorf("foyer.Create: %w", err)
	}

	s.log.InfoContext(ctx, "foyer created",
		slog.String("foyer_id", created.ID.String()),
		slog.String("user_id", userID.String()),
	)

	return created, nil
}
