package mappers

import (
	"strconv"
	"strings"
	"time"

	"github.com/meterdesk/meterdesk/modules/core/domain/entities/user"
	"github.com/meterdesk/meterdesk/modules/core/presentation/viewmodels"
)

const timestampFormat = "2006-01-02 15:04:05"

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(loc).Format(timestampFormat)
}

func UserToViewModel(u *user.User, loc *time.Location) *viewmodels.User {
	accessLevel := ""
	if u.AccessLevelID != nil {
		accessLevel = strconv.Itoa(*u.AccessLevelID)
	}
	return &viewmodels.User{
		ID:            strconv.Itoa(u.ID),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		Email:         u.Email,
		Phone:         u.Phone,
		AccessLevelID: accessLevel,
		GroupIDs:      joinIDs(u.GroupIDs),
		ProjectIDs:    joinIDs(u.ProjectIDs),
		CreatedAt:     formatTime(u.CreatedAt, loc),
		UpdatedAt:     formatTime(u.UpdatedAt, loc),
	}
}
