package mappers

import (
	"strconv"
	"time"

	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/workorder"
	"github.com/meterdesk/meterdesk/modules/workorders/presentation/viewmodels"
)

const timestampFormat = "2006-01-02 15:04:05"

func formatID(id *int) string {
	if id == nil {
		return ""
	}
	return strconv.Itoa(*id)
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(loc).Format(timestampFormat)
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// WorkOrderToViewModel flattens a work order for display. Timestamps are
// rendered in loc so filtering and display agree on the day boundary.
func WorkOrderToViewModel(wo *workorder.WorkOrder, projectName string, loc *time.Location) *viewmodels.WorkOrder {
	reading := ""
	if wo.OldMeterReading != nil {
		reading = wo.OldMeterReading.String()
	}
	return &viewmodels.WorkOrder{
		ID:              strconv.Itoa(wo.ID),
		Number:          wo.Number,
		ProjectID:       formatID(wo.ProjectID),
		ProjectName:     projectName,
		StatusID:        formatID(wo.StatusID),
		ServiceTypeID:   formatID(wo.ServiceTypeID),
		MeterType:       wo.MeterType,
		TroubleCodes:    wo.TroubleCodes,
		Address:         wo.Address,
		City:            wo.City,
		State:           wo.State,
		Zip:             wo.Zip,
		Route:           wo.Route,
		Zone:            wo.Zone,
		OldMeterID:      wo.OldMeterID,
		NewMeterID:      wo.NewMeterID,
		OldMeterReading: reading,
		Latitude:        formatFloat(wo.Latitude),
		Longitude:       formatFloat(wo.Longitude),
		AssignedUserID:  formatID(wo.AssignedUserID),
		AssignedGroupID: formatID(wo.AssignedGroupID),
		CreatedByID:     formatID(wo.CreatedByID),
		CreatedByName:   wo.CreatedByName,
		UpdatedByID:     formatID(wo.UpdatedByID),
		UpdatedByName:   wo.UpdatedByName,
		CreatedAt:       formatTime(wo.CreatedAt, loc),
		UpdatedAt:       formatTime(wo.UpdatedAt, loc),
		CompletedAt:     formatTime(wo.CompletedAt, loc),
		Notes:           wo.Notes,
	}
}
