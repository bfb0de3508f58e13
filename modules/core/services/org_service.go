package services

import (
	"context"
	"fmt"

	"github.com/meterdesk/meterdesk/modules/core/domain/entities/accesslevel"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/group"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/project"
	"github.com/meterdesk/meterdesk/pkg/composables"
)

// OrgService manages the organizational reference data users hang off:
// groups, projects, and access levels.
type OrgService struct {
	groups       group.Repository
	projects     project.Repository
	accessLevels accesslevel.Repository
}

func NewOrgService(groups group.Repository, projects project.Repository, accessLevels accesslevel.Repository) *OrgService {
	return &OrgService{
		groups:       groups,
		projects:     projects,
		accessLevels: accessLevels,
	}
}

func (s *OrgService) Groups(ctx context.Context) ([]*group.Group, error) {
	return s.groups.List(ctx)
}

func (s *OrgService) CreateGroup(ctx context.Context, dto *group.GroupDTO) (*group.Group, error) {
	var created *group.Group
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.groups.Create(txCtx, dto)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return created, nil
}

func (s *OrgService) UpdateGroup(ctx context.Context, id int, dto *group.GroupDTO) (*group.Group, error) {
	var updated *group.Group
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.groups.Update(txCtx, id, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *OrgService) DeleteGroup(ctx context.Context, id int) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.groups.Delete(txCtx, id)
	})
}

func (s *OrgService) Projects(ctx context.Context) ([]*project.Project, error) {
	return s.projects.List(ctx)
}

func (s *OrgService) CreateProject(ctx context.Context, dto *project.ProjectDTO) (*project.Project, error) {
	var created *project.Project
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.projects.Create(txCtx, dto)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

func (s *OrgService) UpdateProject(ctx context.Context, id int, dto *project.ProjectDTO) (*project.Project, error) {
	var updated *project.Project
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.projects.Update(txCtx, id, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *OrgService) DeleteProject(ctx context.Context, id int) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.projects.Delete(txCtx, id)
	})
}

func (s *OrgService) AccessLevels(ctx context.Context) ([]*accesslevel.AccessLevel, error) {
	return s.accessLevels.List(ctx)
}

func (s *OrgService) CreateAccessLevel(ctx context.Context, dto *accesslevel.AccessLevelDTO) (*accesslevel.AccessLevel, error) {
	var created *accesslevel.AccessLevel
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.accessLevels.Create(txCtx, dto)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create access level: %w", err)
	}
	return created, nil
}

func (s *OrgService) UpdateAccessLevel(ctx context.Context, id int, dto *accesslevel.AccessLevelDTO) (*accesslevel.AccessLevel, error) {
	var updated *accesslevel.AccessLevel
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.accessLevels.Update(txCtx, id, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *OrgService) DeleteAccessLevel(ctx context.Context, id int) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.accessLevels.Delete(txCtx, id)
	})
}
