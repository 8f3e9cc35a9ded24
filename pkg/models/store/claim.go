package store

import "encoding/json"

// SearchRequest is the body of a claims search call. The first page carries
// the created_ts range; follow-up pages only carry the cursor.
type SearchRequest struct {
	CreatedFrom string `json:"created_from,omitempty"`
	CreatedTo   string `json:"created_to,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Cursor      int64  `json:"cursor"`
}

// ClaimsPage is one page of the claims search response. Claims are kept raw so
// a single malformed record does not fail the whole page.
type ClaimsPage struct {
	Cursor *int64            `json:"cursor"`
	Claims []json.RawMessage `json:"claims"`
}

// Claim keeps mandatory fields strictly typed. Optional fields use Text and
// Optional so a value of an unexpected type only unsets that field.
type Claim struct {
	ID            *string                 `json:"id"`
	Status        *string                 `json:"status"`
	CorpClientID  *string                 `json:"corp_client_id"`
	CreatedTs     *string                 `json:"created_ts"`
	UpdatedTs     *string                 `json:"updated_ts"`
	RoutePoints   []RoutePoint            `json:"route_points"`
	Comment       Text                    `json:"comment"`
	PerformerInfo Optional[PerformerInfo] `json:"performer_info"`
	RouteID       Text                    `json:"route_id"`
	Items         Optional[[]Item]        `json:"items"`
	SameDayData   Optional[SameDayData]   `json:"same_day_data"`
}

type RoutePoint struct {
	ID              Optional[int64]     `json:"id"`
	Address         *Address            `json:"address"`
	Contact         Optional[Contact]   `json:"contact"`
	ExternalOrderID Text                `json:"external_order_id"`
	VisitedAt       Optional[VisitedAt] `json:"visited_at"`
	ReturnReasons   json.RawMessage     `json:"return_reasons"`
}

type Address struct {
	Fullname    *string   `json:"fullname"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat]
}

type Contact struct {
	Name  Text `json:"name"`
	Phone Text `json:"phone"`
}

type VisitedAt struct {
	Actual Text `json:"actual"`
}

type PerformerInfo struct {
	CourierName Text `json:"courier_name"`
	LegalName   Text `json:"legal_name"`
}

type Item struct {
	ExtraID Text `json:"extra_id"`
}

type SameDayData struct {
	DeliveryInterval Optional[DeliveryInterval] `json:"delivery_interval"`
}

type DeliveryInterval struct {
	From Text `json:"from"`
	To   Text `json:"to"`
}
