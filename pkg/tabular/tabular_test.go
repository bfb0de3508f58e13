package tabular_test

import (
	"strings"

	"github.com/meterdesk/meterdesk/pkg/tabular"
)

type row struct {
	ID        string
	Status    string
	Address   string
	Route     string
	Codes     string
	MeterType string
	CreatedAt string
	Assignee  *string
}

func testTable() *tabular.Table[row] {
	return tabular.NewTable(
		tabular.Descriptor[row]{Key: "id", Label: "ID", Required: true, Value: func(r row) any { return r.ID }},
		tabular.Descriptor[row]{Key: "status", Label: "Status", Value: func(r row) any { return r.Status }},
		tabular.Descriptor[row]{Key: "address", Label: "Address", Value: func(r row) any { return r.Address }},
		tabular.Descriptor[row]{Key: "route", Label: "Route", Value: func(r row) any { return r.Route }},
		tabular.Descriptor[row]{
			Key:   "codes",
			Label: "Trouble Codes",
			Value: func(r row) any { return r.Codes },
			Export: func(r row) string {
				return strings.Join(tabular.ParseCodeList(r.Codes), ", ")
			},
		},
		tabular.Descriptor[row]{Key: "meterType", Label: "Meter Type", Value: func(r row) any { return r.MeterType }},
		tabular.Descriptor[row]{Key: "createdAt", Label: "Created At", Value: func(r row) any { return r.CreatedAt }},
		tabular.Descriptor[row]{Key: "assignee", Label: "Assignee", Value: func(r row) any { return r.Assignee }},
	)
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
