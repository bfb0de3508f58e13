package persistence

import (
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/accesslevel"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/group"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/project"
	"github.com/meterdesk/meterdesk/modules/core/domain/entities/user"
	"github.com/meterdesk/meterdesk/modules/core/infrastructure/persistence/models"
)

func toDomainUser(row *models.User, groupIDs, projectIDs []int) *user.User {
	return &user.User{
		ID:            row.ID,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
		Email:         row.Email,
		Phone:         row.Phone,
		AccessLevelID: row.AccessLevelID,
		GroupIDs:      groupIDs,
		ProjectIDs:    projectIDs,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func toDomainGroup(row *models.Group) *group.Group {
	return &group.Group{ID: row.ID, Name: row.Name}
}

func toDomainProject(row *models.Project) *project.Project {
	return &project.Project{ID: row.ID, Name: row.Name}
}

func toDomainAccessLevel(row *models.AccessLevel) *accesslevel.AccessLevel {
	return &accesslevel.AccessLevel{ID: row.ID, Name: row.Name, Level: row.Level}
}
