package viewmodels

// WorkOrder is the flat, display-ready projection of a work order. All
// fields are strings; empty means absent. MeterType and TroubleCodes keep
// their raw stored encodings, the grid layer interprets them.
type WorkOrder struct {
	ID     string
	Number string

	ProjectID   string
	ProjectName string

	StatusID      string
	ServiceTypeID string
	MeterType     string
	TroubleCodes  string

	Address string
	City    string
	State   string
	Zip     string
	Route   string
	Zone    string

	OldMeterID      string
	NewMeterID      string
	OldMeterReading string
	Latitude        string
	Longitude       string

	AssignedUserID  string
	AssignedGroupID string

	CreatedByID   string
	CreatedByName string
	UpdatedByID   string
	UpdatedByName string

	CreatedAt   string
	UpdatedAt   string
	CompletedAt string

	Notes string
}

// WorkOrderFilters is the filter state of the list screen. Selects hold
// "all" (or "") when inactive; dates are yyyy-mm-dd.
type WorkOrderFilters struct {
	Search          string
	Status          string
	ServiceType     string
	MeterType       string
	TroubleCode     string
	AssignedUserID  string
	AssignedGroupID string
	CreatedBy       string
	UpdatedBy       string
	DateFrom        string
	DateTo          string
}

// Column describes one visible column to the client.
type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// WorkOrderListView is everything the list screen renders: the visible
// columns in authoritative order, one display row per admitted record, and
// the active filter/sort state echoed back. RowColors aligns with Rows and
// carries the status chip color of each record.
type WorkOrderListView struct {
	Columns        []Column         `json:"columns"`
	Rows           [][]string       `json:"rows"`
	RowColors      []string         `json:"rowColors"`
	Total          int              `json:"total"`
	Matched        int              `json:"matched"`
	Filters        WorkOrderFilters `json:"filters"`
	VisibleFilters []string         `json:"visibleFilters"`
	Sort           string           `json:"sort"`
	Records        []*WorkOrder     `json:"records"`
}
