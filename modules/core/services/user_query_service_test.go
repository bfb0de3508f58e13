package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/meterdesk/meterdesk/modules/core/domain/entities/accesslevel"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/group"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/project"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/user"
	"github.com/meterdesk/meterdesk/modules/core/presentation/viewmodels"
	"github.com/meterdesk/meterdesk/pkg/tabular"
)

type fakeUserRepo struct{ users []*user.User }

func (f *fakeUserRepo) GetAll(_ context.Context) ([]*user.User, error) { return f.users, nil }
func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}
func (f *fakeUserRepo) Create(_ context.Context, _ *user.CreateDTO) (*user.User, error) {
	panic("not used")
}
func (f *fakeUserRepo) Update(_ context.Context, _ int, _ *user.UpdateDTO) (*user.User, error) {
	panic("not used")
}
func (f *fakeUserRepo) Delete(_ context.Context, _ int) error { panic("not used") }

type fakeGroupRepo struct{ items []*group.Group }

func (f *fakeGroupRepo) List(_ context.Context) ([]*group.Group, error) { return f.items, nil }
func (f *fakeGroupRepo) Create(_ context.Context, _ *group.GroupDTO) (*group.Group, error) {
	panic("not used")
}
func (f *fakeGroupRepo) Update(_ context.Context, _ int, _ *group.GroupDTO) (*group.Group, error) {
	panic("not used")
}
func (f *fakeGroupRepo) Delete(_ context.Context, _ int) error { panic("not used") }

type fakeProjectRepo struct{ items []*project.Project }

func (f *fakeProjectRepo) List(_ context.Context) ([]*project.Project, error) { return f.items, nil }
func (f *fakeProjectRepo) Create(_ context.Context, _ *project.ProjectDTO) (*project.Project, error) {
	panic("not used")
}
func (f *fakeProjectRepo) Update(_ context.Context, _ int, _ *project.ProjectDTO) (*project.Project, error) {
	panic("not used")
}
func (f *fakeProjectRepo) Delete(_ context.Context, _ int) error { panic("not used") }

type fakeAccessLevelRepo struct{ items []*accesslevel.AccessLevel }

func (f *fakeAccessLevelRepo) List(_ context.Context) ([]*accesslevel.AccessLevel, error) {
	return f.items, nil
}
func (f *fakeAccessLevelRepo) Create(_ context.Context, _ *accesslevel.AccessLevelDTO) (*accesslevel.AccessLevel, error) {
	panic("not used")
}
func (f *fakeAccessLevelRepo) Update(_ context.Context, _ int, _ *accesslevel.AccessLevelDTO) (*accesslevel.AccessLevel, error) {
	panic("not used")
}
func (f *fakeAccessLevelRepo) Delete(_ context.Context, _ int) error { panic("not used") }

func newTestUserQueryService(t *testing.T) *UserQueryService {
	t.Helper()

	created := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	users := NewUserService(&fakeUserRepo{users: []*user.User{
		{ID: 1, FirstName: "Ann", LastName: "Baker", Email: "ann@example.com", CreatedAt: &created},
		{ID: 2, FirstName: "Bo", LastName: "Adams", Email: "bo@example.com", CreatedAt: &created},
	}}, nil)
	org := NewOrgService(
		&fakeGroupRepo{items: []*group.Group{{ID: 10, Name: "Field Crew"}}},
		&fakeProjectRepo{},
		&fakeAccessLevelRepo{},
	)
	return NewUserQueryService(users, org, tabular.NewInMemoryPreferenceStore(), time.UTC, language.English)
}

func TestUserQueryService_PrintDocument(t *testing.T) {
	svc := newTestUserQueryService(t)
	ctx := context.Background()

	t.Run("renders every admitted user with the row count", func(t *testing.T) {
		html, err := svc.PrintDocument(ctx, &UserListQuery{UserID: 1})
		require.NoError(t, err)
		require.Contains(t, html, "Users")
		require.Contains(t, html, "2 records")
		require.Contains(t, html, "Ann Baker")
	})

	t.Run("empty result refuses to print", func(t *testing.T) {
		_, err := svc.PrintDocument(ctx, &UserListQuery{
			UserID:  1,
			Filters: viewmodels.UserFilters{Search: "no such person"},
		})
		require.ErrorIs(t, err, tabular.ErrNoRows)
	})
}
