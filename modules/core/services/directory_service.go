package services

import (
	"context"
	"fmt"
	"strconv"
)

// DirectoryService exposes the id-to-name maps other modules resolve labels
// through. It satisfies the work-order module's Directory interface.
type DirectoryService struct {
	users *UserService
	org   *OrgService
}

func NewDirectoryService(users *UserService, org *OrgService) *DirectoryService {
	return &DirectoryService{users: users, org: org}
}

func (s *DirectoryService) UserNames(ctx context.Context) (map[string]string, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	out := make(map[string]string, len(users))
	for _, u := range users {
		out[strconv.Itoa(u.ID)] = u.FullName()
	}
	return out, nil
}

func (s *DirectoryService) GroupNames(ctx context.Context) (map[string]string, error) {
	groups, err := s.org.Groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	out := make(map[string]string, len(groups))
	for _, g := range groups {
		out[strconv.Itoa(g.ID)] = g.Name
	}
	return out, nil
}

func (s *DirectoryService) ProjectNames(ctx context.Context) (map[string]string, error) {
	projects, err := s.org.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	out := make(map[string]string, len(projects))
	for _, p := range projects {
		out[strconv.Itoa(p.ID)] = p.Name
	}
	return out, nil
}
