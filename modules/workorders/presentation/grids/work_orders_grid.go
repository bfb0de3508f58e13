package grids

import (
	"strings"
	"time"

	"github.com/meterdesk/meterdesk/modules/workorders/presentation/viewmodels"
	"github.com/meterdesk/meterdesk/pkg/tabular"
)

// WorkOrdersTableID identifies the work-order grid in preference storage.
const WorkOrdersTableID = "work_orders"

// Lookups resolve stored ids to display labels. Keys are the stringified ids
// as they appear on the viewmodel.
type Lookups struct {
	StatusLabels      map[string]string
	StatusColors      map[string]string
	ServiceTypeLabels map[string]string
	// MeterTypeLabels maps meter type id to label. Legacy rows store the
	// label itself in the MeterType field, so a miss is not an error.
	MeterTypeLabels  map[string]string
	TroubleCodeNames map[string]string
	UserNames        map[string]string
	GroupNames       map[string]string
	ProjectNames     map[string]string
}

func lookup(m map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if label, ok := m[key]; ok {
		return label
	}
	return key
}

// meterTypeLabel resolves either encoding of the meter type field.
func meterTypeLabel(lk *Lookups, raw string) string {
	return lookup(lk.MeterTypeLabels, raw)
}

// troubleCodeText renders the stored trouble code list for display and
// export, resolving known codes to labels.
func troubleCodeText(lk *Lookups, raw string) string {
	codes := tabular.ParseCodeList(raw)
	if len(codes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, lookup(lk.TroubleCodeNames, c))
	}
	return strings.Join(parts, ", ")
}

// WorkOrderFields declares the authoritative column set of the work-order
// grid. Declaration order is the display order; id, number and status can
// never be hidden.
func WorkOrderFields(lk *Lookups) *tabular.Table[*viewmodels.WorkOrder] {
	return tabular.NewTable([]tabular.Descriptor[*viewmodels.WorkOrder]{
		{Key: "id", Label: "ID", Required: true, Value: func(r *viewmodels.WorkOrder) any { return r.ID }},
		{Key: "number", Label: "Work Order #", Required: true, Value: func(r *viewmodels.WorkOrder) any { return r.Number }},
		{
			Key: "status", Label: "Status", Required: true,
			Value:   func(r *viewmodels.WorkOrder) any { return lookup(lk.StatusLabels, r.StatusID) },
			SortKey: func(r *viewmodels.WorkOrder) string { return lookup(lk.StatusLabels, r.StatusID) },
		},
		{
			Key: "serviceType", Label: "Service Type",
			Value: func(r *viewmodels.WorkOrder) any { return lookup(lk.ServiceTypeLabels, r.ServiceTypeID) },
		},
		{
			Key: "meterType", Label: "Meter Type",
			Value: func(r *viewmodels.WorkOrder) any { return meterTypeLabel(lk, r.MeterType) },
		},
		{
			Key: "troubleCodes", Label: "Trouble Codes",
			Value: func(r *viewmodels.WorkOrder) any { return troubleCodeText(lk, r.TroubleCodes) },
		},
		{Key: "address", Label: "Address", Value: func(r *viewmodels.WorkOrder) any { return r.Address }},
		{Key: "city", Label: "City", Value: func(r *viewmodels.WorkOrder) any { return r.City }},
		{Key: "state", Label: "State", Value: func(r *viewmodels.WorkOrder) any { return r.State }},
		{Key: "zip", Label: "Zip", Value: func(r *viewmodels.WorkOrder) any { return r.Zip }},
		{Key: "route", Label: "Route", Value: func(r *viewmodels.WorkOrder) any { return r.Route }},
		{Key: "zone", Label: "Zone", Value: func(r *viewmodels.WorkOrder) any { return r.Zone }},
		{Key: "oldMeterId", Label: "Old Meter ID", Value: func(r *viewmodels.WorkOrder) any { return r.OldMeterID }},
		{Key: "newMeterId", Label: "New Meter ID", Value: func(r *viewmodels.WorkOrder) any { return r.NewMeterID }},
		{Key: "oldMeterReading", Label: "Old Meter Reading", Value: func(r *viewmodels.WorkOrder) any { return r.OldMeterReading }},
		{Key: "latitude", Label: "Latitude", Value: func(r *viewmodels.WorkOrder) any { return r.Latitude }},
		{Key: "longitude", Label: "Longitude", Value: func(r *viewmodels.WorkOrder) any { return r.Longitude }},
		{
			Key: "project", Label: "Project",
			Value: func(r *viewmodels.WorkOrder) any {
				if r.ProjectName != "" {
					return r.ProjectName
				}
				return lookup(lk.ProjectNames, r.ProjectID)
			},
		},
		{
			Key: "assignedUser", Label: "Assigned To",
			Value: func(r *viewmodels.WorkOrder) any { return lookup(lk.UserNames, r.AssignedUserID) },
		},
		{
			Key: "assignedGroup", Label: "Assigned Group",
			Value: func(r *viewmodels.WorkOrder) any { return lookup(lk.GroupNames, r.AssignedGroupID) },
		},
		{
			Key: "createdBy", Label: "Created By",
			Value: func(r *viewmodels.WorkOrder) any {
				if r.CreatedByName != "" {
					return r.CreatedByName
				}
				return lookup(lk.UserNames, r.CreatedByID)
			},
		},
		{
			Key: "updatedBy", Label: "Updated By",
			Value: func(r *viewmodels.WorkOrder) any {
				if r.UpdatedByName != "" {
					return r.UpdatedByName
				}
				return lookup(lk.UserNames, r.UpdatedByID)
			},
		},
		{Key: "createdAt", Label: "Created", Value: func(r *viewmodels.WorkOrder) any { return r.CreatedAt }},
		{Key: "updatedAt", Label: "Updated", Value: func(r *viewmodels.WorkOrder) any { return r.UpdatedAt }},
		{Key: "completedAt", Label: "Completed", Value: func(r *viewmodels.WorkOrder) any { return r.CompletedAt }},
		{Key: "notes", Label: "Notes", Value: func(r *viewmodels.WorkOrder) any { return r.Notes }},
	}...)
}

// WorkOrderPredicates translates the filter state into predicates. Inactive
// filters yield nil entries, which the pipeline skips.
func WorkOrderPredicates(f *viewmodels.WorkOrderFilters, lk *Lookups, loc *time.Location) []tabular.Predicate[*viewmodels.WorkOrder] {
	return []tabular.Predicate[*viewmodels.WorkOrder]{
		tabular.SearchText(f.Search,
			func(r *viewmodels.WorkOrder) string { return r.Number },
			func(r *viewmodels.WorkOrder) string { return r.Address },
			func(r *viewmodels.WorkOrder) string { return r.City },
			func(r *viewmodels.WorkOrder) string { return r.Zip },
			func(r *viewmodels.WorkOrder) string { return r.Route },
			func(r *viewmodels.WorkOrder) string { return r.Zone },
			func(r *viewmodels.WorkOrder) string { return r.OldMeterID },
			func(r *viewmodels.WorkOrder) string { return r.NewMeterID },
			func(r *viewmodels.WorkOrder) string { return r.Notes },
			func(r *viewmodels.WorkOrder) string { return lookup(lk.StatusLabels, r.StatusID) },
			func(r *viewmodels.WorkOrder) string { return lookup(lk.ServiceTypeLabels, r.ServiceTypeID) },
			func(r *viewmodels.WorkOrder) string { return meterTypeLabel(lk, r.MeterType) },
		),
		tabular.Equals(f.Status, func(r *viewmodels.WorkOrder) string { return r.StatusID }),
		tabular.Equals(f.ServiceType, func(r *viewmodels.WorkOrder) string { return r.ServiceTypeID }),
		tabular.EqualsOneOf(
			[]string{f.MeterType, lk.MeterTypeLabels[f.MeterType]},
			func(r *viewmodels.WorkOrder) string { return r.MeterType },
		),
		tabular.HasCode(f.TroubleCode, func(r *viewmodels.WorkOrder) string { return r.TroubleCodes }),
		tabular.Equals(f.AssignedUserID, func(r *viewmodels.WorkOrder) string { return r.AssignedUserID }),
		tabular.Equals(f.AssignedGroupID, func(r *viewmodels.WorkOrder) string { return r.AssignedGroupID }),
		tabular.EqualsWithFallback(f.CreatedBy, lk.UserNames[f.CreatedBy],
			func(r *viewmodels.WorkOrder) string { return r.CreatedByID },
			func(r *viewmodels.WorkOrder) string { return r.CreatedByName },
		),
		tabular.EqualsWithFallback(f.UpdatedBy, lk.UserNames[f.UpdatedBy],
			func(r *viewmodels.WorkOrder) string { return r.UpdatedByID },
			func(r *viewmodels.WorkOrder) string { return r.UpdatedByName },
		),
		tabular.DateWithin(f.DateFrom, f.DateTo, loc,
			func(r *viewmodels.WorkOrder) string { return r.CreatedAt },
		),
	}
}

// WorkOrderFilterKeys lists the filter controls of the list screen, in
// display order. Search and the date range are always shown.
func WorkOrderFilterKeys() (declared, required []string) {
	declared = []string{
		"search", "status", "serviceType", "meterType", "troubleCode",
		"assignedUser", "assignedGroup", "createdBy", "updatedBy", "dateRange",
	}
	required = []string{"search", "dateRange"}
	return declared, required
}
