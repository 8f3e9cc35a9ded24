package adapters

import (
	"github.com/de-tools/claims-report/pkg/models/api"
	"github.com/de-tools/claims-report/pkg/models/domain"
)

// MapReportDomainToApi renders rows, which may be a filtered view of report.Rows.
// Delivered always counts the unfiltered report.
func MapReportDomainToApi(report *domain.Report, rows []domain.Row) api.Report {
	resp := api.Report{
		Mode: string(report.Mode),
		Window: api.Window{
			From:    report.Window.From,
			To:      report.Window.To,
			Today:   report.Window.Today,
			SameDay: report.Window.SameDay,
		},
		Columns:     report.Columns,
		Rows:        make([]api.Row, 0, len(rows)),
		Total:       len(rows),
		Delivered:   domain.DeliveredCount(report.Rows),
		Skipped:     report.Skipped,
		Failures:    make([]api.CredentialFailure, 0, len(report.Failures)),
		GeneratedAt: report.GeneratedAt,
	}

	for _, r := range rows {
		resp.Rows = append(resp.Rows, MapRowDomainToApi(r))
	}
	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, api.CredentialFailure{Client: f.Client, Error: f.Error})
	}

	return resp
}

func MapRowDomainToApi(r domain.Row) api.Row {
	return api.Row{
		Cutoff:          r.Cutoff,
		CreatedTime:     r.CreatedTime,
		Client:          r.Client,
		ClientID:        r.ClientID,
		Barcode:         r.Barcode,
		ClaimID:         r.ClaimID,
		LOCode:          r.LOCode,
		Status:          string(r.Status),
		StatusTime:      r.StatusTime,
		PODPointID:      r.PODPointID,
		PickupAddress:   r.PickupAddress,
		ReceiverAddress: r.ReceiverAddress,
		ReceiverPhone:   r.ReceiverPhone,
		ReceiverName:    r.ReceiverName,
		ClientComment:   r.ClientComment,
		CourierName:     r.CourierName,
		CourierPark:     r.CourierPark,
		ReturnReason:    r.ReturnReason,
		RouteID:         r.RouteID,
		Lon:             r.Lon,
		Lat:             r.Lat,
		StoreLon:        r.StoreLon,
		StoreLat:        r.StoreLat,
		CorpClientID:    r.CorpClientID,
		PointBTime:      r.PointBTime,
		CourierPickTime: r.CourierPickTime,
	}
}
