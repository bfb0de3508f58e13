package viewmodels

// User is the flat projection behind the users list screen. GroupIDs and
// ProjectIDs are comma-joined id lists so the membership filters can reuse
// the code-list matcher.
type User struct {
	ID            string
	FirstName     string
	LastName      string
	FullName      string
	Email         string
	Phone         string
	AccessLevelID string
	GroupIDs      string
	ProjectIDs    string
	CreatedAt     string
	UpdatedAt     string
}

type UserFilters struct {
	Search      string
	AccessLevel string
	Group       string
	Project     string
	DateFrom    string
	DateTo      string
}

type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

type UserListView struct {
	Columns        []Column    `json:"columns"`
	Rows           [][]string  `json:"rows"`
	Total          int         `json:"total"`
	Matched        int         `json:"matched"`
	Filters        UserFilters `json:"filters"`
	VisibleFilters []string    `json:"visibleFilters"`
	Sort           string      `json:"sort"`
	Records        []*User     `json:"records"`
}
