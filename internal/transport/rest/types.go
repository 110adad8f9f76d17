package rest

import (
	"time"

	"github.com/foyerapp/foyer-backend/internal/domain"
)

type userResponse struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	AvatarURL           *string    `json:"avatarUrl,omitempty"`
	Points              int        `json:"points"`
	AcceptedFoyerRuleAt *time.Time `json:"acceptedFoyerRuleAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                  u.ID.String(),
		Name:                u.Name,
		Email:               u.Email,
		AvatarURL:           u.AvatarURL,
		Points:              u.Points,
		AcceptedFoyerRuleAt: u.AcceptedFoyerRuleAt,
		CreatedAt:           u.CreatedAt,
	}
}

type foyerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Rule      string    `json:"rule"`
	CreatedAt time.Time `json:"createdAt"`
}

func toFoyerResponse(f *domain.Foyer) foyerResponse {
	return foyerResponse{
		ID:        f.ID.String(),
		Name:      f.Name,
		Code:      f.Code,
		Rule:      f.Rule,
		CreatedAt: f.CreatedAt,
	}
}

type eventResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Recurrence    string    `json:"recurrence"`
	CreatorID     *string   `json:"creatorId,omitempty"`
	CompletedByID *string   `json:"completedById,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toEventResponse(e *domain.CalendarEvent) eventResponse {
	resp := eventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartAt,
		EndDate:     e.EndAt,
		Recurrence:  e.Recurrence.String(),
		CreatedAt:   e.CreatedAt,
	}
	if e.CreatorID != nil {
		id := e.CreatorID.String()
		resp.CreatorID = &id
	}
	if e.CompletedByID != nil {
		id := e.CompletedByID.String()
		resp.CompletedByID = &id
	}
	return resp
}

func toEventResponses(events []domain.CalendarEvent) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	return out
}

type taskResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	AssignedToID *string   `json:"assignedToId,omitempty"`
	Points       int       `json:"points"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Points:      t.Points,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
	if t.AssignedToID != nil {
		id := t.AssignedToID.String()
		resp.AssignedToID = &id
	}
	return resp
}

type itemResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Quantity     *string   `json:"quantity,omitempty"`
	Purchased    bool      `json:"purchased"`
	AssignedToID *string   `json:"assignedToId,omitempty"`
	AddedByID    *string   `json:"addedById,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toItemResponse(it *domain.ShoppingItem) itemResponse {
	resp := itemResponse{
		ID:        it.ID.String(),
		Name:      it.Name,
		Quantity:  it.Quantity,
		Purchased: it.Purchased,
		CreatedAt: it.CreatedAt,
	}
	if it.AssignedToID != nil {
		id := it.AssignedToID.String()
		resp.AssignedToID = &id
	}
	if it.AddedByID != nil {
		id := it.AddedByID.String()
		resp.AddedByID = &id
	}
	return resp
}

type recipeResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Ingredients  *string   `json:"ingredients,omitempty"`
	Instructions *string   `json:"instructions,omitempty"`
	Votes        int       `json:"votes"`
	CreatorID    *string   `json:"creatorId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toRecipeResponse(rec *domain.Recipe) recipeResponse {
	resp := recipeResponse{
		ID:           rec.ID.String(),
		Title:        rec.Title,
		Description:  rec.Description,
		Ingredients:  rec.Ingredients,
		Instructions: rec.Instructions,
		Votes:        rec.Votes,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.CreatorID != nil {
		id := rec.CreatorID.String()
		resp.CreatorID = &id
	}
	return resp
}

type ideaResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Votes       int       `json:"votes"`
	CreatorID   *string   `json:"creatorId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toIdeaResponse(t *domain.TravelIdea) ideaResponse {
	resp := ideaResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Location:    t.Location,
		Votes:       t.Votes,
		CreatedAt:   t.CreatedAt,
	}
	if t.CreatorID != nil {
		id := t.CreatorID.String()
		resp.CreatorID = &id
	}
	return resp
}

type leaderboardEntryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

func toLeaderboardResponse(entries []domain.LeaderboardEntry) []leaderboardEntryResponse {
	out := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryResponse{
			ID:     e.UserID.String(),
			Name:   e.Name,
			Points: e.Points,
		})
	}
	return out
}
