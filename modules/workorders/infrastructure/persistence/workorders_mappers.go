package persistence

import (
	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/reference"
	"github.com/meterdesk/meterdesk/modules/workorders/domain/entities/workorder"
	"github.com/meterdesk/meterdesk/modules/workorders/infrastructure/persistence/models"
)

func toDomainWorkOrder(row *models.WorkOrder) *workorder.WorkOrder {
	return &workorder.WorkOrder{
		ID:              row.ID,
		Number:          row.Number,
		ProjectID:       row.ProjectID,
		StatusID:        row.StatusID,
		ServiceTypeID:   row.ServiceTypeID,
		MeterType:       row.MeterType,
		TroubleCodes:    row.TroubleCodes,
		Address:         row.Address,
		City:            row.City,
		State:           row.State,
		Zip:             row.Zip,
		Route:           row.Route,
		Zone:            row.Zone,
		OldMeterID:      row.OldMeterID,
		NewMeterID:      row.NewMeterID,
		OldMeterReading: row.OldMeterReading,
		Latitude:        row.Latitude,
		Longitude:       row.Longitude,
		AssignedUserID:  row.AssignedUserID,
		AssignedGroupID: row.AssignedGroupID,
		CreatedByID:     row.CreatedByID,
		CreatedByName:   row.CreatedByName,
		UpdatedByID:     row.UpdatedByID,
		UpdatedByName:   row.UpdatedByName,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		CompletedAt:     row.CompletedAt,
		Notes:           row.Notes,
	}
}

func toDomainStatus(row *models.Status) *reference.Status {
	return &reference.Status{ID: row.ID, Label: row.Label, Color: row.Color}
}

func toDomainServiceType(row *models.ServiceType) *reference.ServiceType {
	return &reference.ServiceType{ID: row.ID, Label: row.Label}
}

func toDomainMeterType(row *models.MeterType) *reference.MeterType {
	return &reference.MeterType{ID: row.ID, ProductID: row.ProductID, Label: row.Label}
}

func toDomainTroubleCode(row *models.TroubleCode) *reference.TroubleCode {
	return &reference.TroubleCode{ID: row.ID, Code: row.Code, Label: row.Label}
}
