package domain

import (
	"strconv"
	"time"
)

const (
	CutoffLayout    = "2006-01-02 15:04"
	StatusLayout    = "2006-01-02 15:04:05-07:00"
	PointTimeLayout = "2006-01-02T15:04:05.000000-0700"
	DateLayout      = "2006-01-02"
)

// Display values for fields a claim did not carry.
const (
	NoExternalID     = "External ID not set"
	NoBarcode        = "Barcode not set"
	NoLOCode         = "No LO code"
	NoComment        = "Missing comment in claim"
	NoCourier        = "No courier yet"
	NoReturnReasons  = "No return reasons"
	NoRoute          = "No route"
	PointBNotVisited = "Point B was never visited"
	PointANotVisited = "Point A missing pick datetime"
	NoDeliveryWindow = "No delivery interval"
)

// Columns is the report header. Its order matches Row.Values.
var Columns = []string{
	"cutoff",
	"created_time",
	"client",
	"client_id",
	"barcode",
	"claim_id",
	"lo_code",
	"status",
	"status_time",
	"pod_point_id",
	"pickup_address",
	"receiver_address",
	"receiver_phone",
	"receiver_name",
	"client_comment",
	"courier_name",
	"courier_park",
	"return_reason",
	"route_id",
	"lon",
	"lat",
	"store_lon",
	"store_lat",
	"corp_client_id",
	"point_B_time",
	"courier_pick_time",
}

// Row is one flattened claim as it appears in the report.
type Row struct {
	Cutoff          string
	CreatedTime     string
	Client          string
	ClientID        string
	Barcode         string
	ClaimID         string
	LOCode          string
	Status          ClaimStatus
	StatusTime      string
	PODPointID      string
	PickupAddress   string
	ReceiverAddress string
	ReceiverPhone   string
	ReceiverName    string
	ClientComment   string
	CourierName     string
	CourierPark     string
	ReturnReason    string
	RouteID         string
	Lon             float64
	Lat             float64
	StoreLon        float64
	StoreLat        float64
	CorpClientID    string
	PointBTime      string
	CourierPickTime string
}

// NewRow renders c for the given client in the report location. This is the
// only place absent fields are replaced by their display values.
func NewRow(c Claim, client string, loc *time.Location) Row {
	return Row{
		Cutoff:          formatTime(c.DeliveryFrom, loc, CutoffLayout, NoDeliveryWindow),
		CreatedTime:     c.CreatedAt.In(loc).Format(StatusLayout),
		Client:          client,
		ClientID:        orDefault(c.Pickup.ExternalOrderID, NoExternalID),
		Barcode:         orDefault(c.Delivery.ExternalOrderID, NoBarcode),
		ClaimID:         c.ID,
		LOCode:          orDefault(c.LOCode, NoLOCode),
		Status:          c.Status,
		StatusTime:      c.UpdatedAt.In(loc).Format(StatusLayout),
		PODPointID:      strconv.FormatInt(c.Delivery.ID, 10),
		PickupAddress:   c.Pickup.Address,
		ReceiverAddress: c.Delivery.Address,
		ReceiverPhone:   c.Delivery.ContactPhone,
		ReceiverName:    c.Delivery.ContactName,
		ClientComment:   orDefault(c.Comment, NoComment),
		CourierName:     orDefault(c.CourierName, NoCourier),
		CourierPark:     orDefault(c.CourierPark, NoCourier),
		ReturnReason:    orDefault(c.Delivery.ReturnReasons, NoReturnReasons),
		RouteID:         orDefault(c.RouteID, NoRoute),
		Lon:             c.Delivery.Coordinates.Lon,
		Lat:             c.Delivery.Coordinates.Lat,
		StoreLon:        c.Pickup.Coordinates.Lon,
		StoreLat:        c.Pickup.Coordinates.Lat,
		CorpClientID:    c.CorpClientID,
		PointBTime:      formatTime(c.Delivery.VisitedAt, loc, PointTimeLayout, PointBNotVisited),
		CourierPickTime: formatTime(c.Pickup.VisitedAt, loc, PointTimeLayout, PointANotVisited),
	}
}

// Values returns the row as strings in Columns order.
func (r Row) Values() []string {
	return []string{
		r.Cutoff,
		r.CreatedTime,
		r.Client,
		r.ClientID,
		r.Barcode,
		r.ClaimID,
		r.LOCode,
		string(r.Status),
		r.StatusTime,
		r.PODPointID,
		r.PickupAddress,
		r.ReceiverAddress,
		r.ReceiverPhone,
		r.ReceiverName,
		r.ClientComment,
		r.CourierName,
		r.CourierPark,
		r.ReturnReason,
		r.RouteID,
		formatFloat(r.Lon),
		formatFloat(r.Lat),
		formatFloat(r.StoreLon),
		formatFloat(r.StoreLat),
		r.CorpClientID,
		r.PointBTime,
		r.CourierPickTime,
	}
}

func orDefault(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func formatTime(t *time.Time, loc *time.Location, layout, def string) string {
	if t == nil {
		return def
	}
	return t.In(loc).Format(layout)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
