// File: internal/usecase/group_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
)

// Compile-time check
var _ GroupUseCase = (*groupUC)(nil)

// GroupView is a group row with its derived fullness, the shape handed to
// the web layer.
type GroupView struct {
	Group          *model.SubscriptionGroup
	IsFull         bool
	RemainingSlots int
}

type GroupUseCase interface {
	Get(ctx context.Context, id string) (*GroupView, error)
	List(ctx context.Context) ([]*GroupView, error)
	ListByProduct(ctx context.Context, productID string) ([]*GroupView, error)
	Delete(ctx context.Context, id string) error

	AddMessage(ctx context.Context, groupID, text string) (*model.GroupMessage, error)
	Messages(ctx context.Context, groupID string) ([]*model.GroupMessage, error)
	Participants(ctx context.Context, groupID string) ([]*model.GroupParticipant, error)
}

type groupUC struct {
	groups repository.GroupRepository

	log *zerolog.Logger
}

func NewGroupUseCase(groups repository.GroupRepository, logger *zerolog.Logger) *groupUC {
	return &groupUC{groups: groups, log: logger}
}

func viewOf(g *model.SubscriptionGroup) *GroupView {
	return &GroupView{Group: g, IsFull: g.IsFull(), RemainingSlots: g.RemainingSlots()}
}

func (u *groupUC) Get(ctx context.Context, id string) (*GroupView, error) {
	g, err := u.groups.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	return viewOf(g), nil
}

func (u *groupUC) List(ctx context.Context) ([]*GroupView, error) {
	gs, err := u.groups.ListAll(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	views := make([]*GroupView, 0, len(gs))
	for _, g := range gs {
		views = append(views, viewOf(g))
	}
	return views, nil
}

func (u *groupUC) ListByProduct(ctx context.Context, productID string) ([]*GroupView, error) {
	if productID == "" {
		return nil, domain.ErrInvalidArgument
	}
	gs, err := u.groups.ListByProduct(ctx, repository.NoTX, productID)
	if err != nil {
		return nil, err
	}
	views := make([]*GroupView, 0, len(gs))
	for _, g := range gs {
		views = append(views, viewOf(g))
	}
	return views, nil
}

func (u *groupUC) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	if err := u.groups.SoftDelete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	u.log.Info().Str("group_id", id).Msg("groups: group soft-deleted")
	return nil
}

func (u *groupUC) AddMessage(ctx context.Context, groupID, text string) (*model.GroupMessage, error) {
	// group must exist and be live
	if _, err := u.groups.FindByID(ctx, repository.NoTX, groupID); err != nil {
		return nil, err
	}
	m, err := model.NewGroupMessage(groupID, text)
	if err != nil {
		return nil, err
	}
	if err := u.groups.AddMessage(ctx, repository.NoTX, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (u *groupUC) Messages(ctx context.Context, groupID string) ([]*model.GroupMessage, error) {
	if groupID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.groups.ListMessages(ctx, repository.NoTX, groupID)
}

func (u *groupUC) Participants(ctx context.Context, groupID string) ([]*model.GroupParticipant, error) {
	if groupID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.groups.ListParticipants(ctx, repository.NoTX, groupID)
}
