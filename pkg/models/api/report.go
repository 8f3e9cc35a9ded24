package api

import "time"

type Window struct {
	From    string `json:"date_from"`
	To      string `json:"date_to"`
	Today   string `json:"today"`
	SameDay bool   `json:"same_day"`
}

type CredentialFailure struct {
	Client string `json:"client"`
	Error  string `json:"error"`
}

type Report struct {
	Mode        string              `json:"mode"`
	Window      Window              `json:"window"`
	Columns     []string            `json:"columns"`
	Rows        []Row               `json:"rows"`
	Total       int                 `json:"total"`
	Delivered   int                 `json:"delivered"`
	Skipped     int                 `json:"skipped"`
	Failures    []CredentialFailure `json:"failures"`
	GeneratedAt time.Time           `json:"generated_at"`
}

type Row struct {
	Cutoff          string  `json:"cutoff"`
	CreatedTime     string  `json:"created_time"`
	Client          string  `json:"client"`
	ClientID        string  `json:"client_id"`
	Barcode         string  `json:"barcode"`
	ClaimID         string  `json:"claim_id"`
	LOCode          string  `json:"lo_code"`
	Status          string  `json:"status"`
	StatusTime      string  `json:"status_time"`
	PODPointID      string  `json:"pod_point_id"`
	PickupAddress   string  `json:"pickup_address"`
	ReceiverAddress string  `json:"receiver_address"`
	ReceiverPhone   string  `json:"receiver_phone"`
	ReceiverName    string  `json:"receiver_name"`
	ClientComment   string  `json:"client_comment"`
	CourierName     string  `json:"courier_name"`
	CourierPark     string  `json:"courier_park"`
	ReturnReason    string  `json:"return_reason"`
	RouteID         string  `json:"route_id"`
	Lon             float64 `json:"lon"`
	Lat             float64 `json:"lat"`
	StoreLon        float64 `json:"store_lon"`
	StoreLat        float64 `json:"store_lat"`
	CorpClientID    string  `json:"corp_client_id"`
	PointBTime      string  `json:"point_B_time"`
	CourierPickTime string  `json:"courier_pick_time"`
}

type Mode struct {
	Name string `json:"name"`
}

type Status struct {
	Name      string `json:"name"`
	Cancelled bool   `json:"cancelled"`
	Delivered bool   `json:"delivered"`
}
