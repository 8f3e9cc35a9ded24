package domain

import "time"

type ClaimStatus string

const (
	StatusNew               ClaimStatus = "new"
	StatusAccepted          ClaimStatus = "accepted"
	StatusPerformerDraft    ClaimStatus = "performer_draft"
	StatusPerformerLookup   ClaimStatus = "performer_lookup"
	StatusPerformerFound    ClaimStatus = "performer_found"
	StatusPerformerNotFound ClaimStatus = "performer_not_found"
	StatusPickupArrived     ClaimStatus = "pickup_arrived"
	StatusPickuped          ClaimStatus = "pickuped"
	StatusDeliveryArrived   ClaimStatus = "delivery_arrived"
	StatusDelivered         ClaimStatus = "delivered"
	StatusDeliveredFinish   ClaimStatus = "delivered_finish"
	StatusReturning         ClaimStatus = "returning"
	StatusReturnArrived     ClaimStatus = "return_arrived"
	StatusReturnedFinish    ClaimStatus = "returned_finish"
	StatusCancelled         ClaimStatus = "cancelled"
	StatusCancelledByTaxi   ClaimStatus = "cancelled_by_taxi"
	StatusFailed            ClaimStatus = "failed"
)

var Statuses = []ClaimStatus{
	StatusDelivered,
	StatusPickuped,
	StatusReturning,
	StatusCancelledByTaxi,
	StatusDeliveryArrived,
	StatusCancelled,
	StatusPerformerLookup,
	StatusPerformerFound,
	StatusPerformerDraft,
	StatusReturnedFinish,
	StatusPerformerNotFound,
	StatusReturnArrived,
	StatusDeliveredFinish,
	StatusFailed,
	StatusAccepted,
	StatusNew,
	StatusPickupArrived,
}

// IsCancelled reports whether the claim ended without a delivery attempt.
func (s ClaimStatus) IsCancelled() bool {
	switch s {
	case StatusCancelled, StatusPerformerNotFound, StatusFailed, StatusCancelledByTaxi:
		return true
	}
	return false
}

func (s ClaimStatus) IsDelivered() bool {
	return s == StatusDelivered || s == StatusDeliveredFinish
}

type Coordinates struct {
	Lon float64
	Lat float64
}

// RoutePoint is a normalized pickup or delivery point. Nil pointers mark
// fields the claim did not carry.
type RoutePoint struct {
	ID              int64
	Address         string
	Coordinates     Coordinates
	ContactName     string
	ContactPhone    string
	ExternalOrderID *string
	VisitedAt       *time.Time
	ReturnReasons   *string
}

// Claim is the normalized projection of one claim API record. Mandatory fields
// are plain values; optional ones are pointers.
type Claim struct {
	ID           string
	Status       ClaimStatus
	CorpClientID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Pickup       RoutePoint
	Delivery     RoutePoint
	DeliveryFrom *time.Time
	Comment      *string
	CourierName  *string
	CourierPark  *string
	RouteID      *string
	LOCode       *string
}
