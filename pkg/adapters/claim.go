package adapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/de-tools/claims-report/pkg/models/store"
)

var ErrMalformedClaim = errors.New("malformed claim")

// DecodeClaim unmarshals one raw claim from a claims page.
func DecodeClaim(raw json.RawMessage) (store.Claim, error) {
	var claim store.Claim
	if err := json.Unmarshal(raw, &claim); err != nil {
		return store.Claim{}, fmt.Errorf("%w: %v", ErrMalformedClaim, err)
	}
	return claim, nil
}

// MapStoreClaimToDomain validates the mandatory fields of c and resolves every
// optional field independently. A missing mandatory field yields an error
// wrapping ErrMalformedClaim; a missing or mistyped optional field yields a nil
// pointer. Timestamps without an offset are read in loc.
func MapStoreClaimToDomain(c store.Claim, loc *time.Location) (domain.Claim, error) {
	id := deref(c.ID)
	malformed := func(field string) error {
		return fmt.Errorf("%w: claim %q: missing %s", ErrMalformedClaim, id, field)
	}

	if id == "" {
		return domain.Claim{}, malformed("id")
	}
	if c.Status == nil {
		return domain.Claim{}, malformed("status")
	}
	if c.CorpClientID == nil {
		return domain.Claim{}, malformed("corp_client_id")
	}
	if len(c.RoutePoints) < 2 {
		return domain.Claim{}, malformed("route_points")
	}

	created, err := requiredTime(c.CreatedTs, loc)
	if err != nil {
		return domain.Claim{}, fmt.Errorf("%w: claim %q: created_ts: %v", ErrMalformedClaim, id, err)
	}
	updated, err := requiredTime(c.UpdatedTs, loc)
	if err != nil {
		return domain.Claim{}, fmt.Errorf("%w: claim %q: updated_ts: %v", ErrMalformedClaim, id, err)
	}

	pickup, err := mapRoutePoint(c.RoutePoints[0], false, loc)
	if err != nil {
		return domain.Claim{}, malformed("route_points[0]." + err.Error())
	}
	delivery, err := mapRoutePoint(c.RoutePoints[1], true, loc)
	if err != nil {
		return domain.Claim{}, malformed("route_points[1]." + err.Error())
	}

	claim := domain.Claim{
		ID:           id,
		Status:       domain.ClaimStatus(*c.Status),
		CorpClientID: *c.CorpClientID,
		CreatedAt:    created,
		UpdatedAt:    updated,
		Pickup:       pickup,
		Delivery:     delivery,
		DeliveryFrom: deliveryFrom(c.SameDayData.Value, loc),
		Comment:      c.Comment.Value,
		RouteID:      c.RouteID.Value,
	}

	if performer := c.PerformerInfo.Value; performer != nil {
		claim.CourierName = performer.CourierName.Value
		claim.CourierPark = performer.LegalName.Value
	}
	if items := c.Items.Value; items != nil && len(*items) > 0 {
		claim.LOCode = (*items)[0].ExtraID.Value
	}

	return claim, nil
}

// mapRoutePoint returns the name of the first missing mandatory field as the
// error text. Contact details are only mandatory on the delivery point.
func mapRoutePoint(p store.RoutePoint, isDelivery bool, loc *time.Location) (domain.RoutePoint, error) {
	if p.Address == nil || p.Address.Fullname == nil {
		return domain.RoutePoint{}, errors.New("address.fullname")
	}
	if len(p.Address.Coordinates) < 2 {
		return domain.RoutePoint{}, errors.New("address.coordinates")
	}

	point := domain.RoutePoint{
		Address: *p.Address.Fullname,
		Coordinates: domain.Coordinates{
			Lon: p.Address.Coordinates[0],
			Lat: p.Address.Coordinates[1],
		},
		ExternalOrderID: p.ExternalOrderID.Value,
		ReturnReasons:   returnReasons(p.ReturnReasons),
	}

	contact := p.Contact.Value
	if isDelivery {
		if p.ID.Value == nil {
			return domain.RoutePoint{}, errors.New("id")
		}
		if contact == nil || contact.Name.Value == nil {
			return domain.RoutePoint{}, errors.New("contact.name")
		}
		if contact.Phone.Value == nil {
			return domain.RoutePoint{}, errors.New("contact.phone")
		}
	}
	if p.ID.Value != nil {
		point.ID = *p.ID.Value
	}
	if contact != nil {
		point.ContactName = deref(contact.Name.Value)
		point.ContactPhone = deref(contact.Phone.Value)
	}
	if visited := p.VisitedAt.Value; visited != nil {
		point.VisitedAt = optionalTime(visited.Actual.Value, loc)
	}

	return point, nil
}

func deliveryFrom(d *store.SameDayData, loc *time.Location) *time.Time {
	if d == nil || d.DeliveryInterval.Value == nil {
		return nil
	}
	return optionalTime(d.DeliveryInterval.Value.From.Value, loc)
}

func returnReasons(raw json.RawMessage) *string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil
	}
	s := buf.String()
	return &s
}

func requiredTime(s *string, loc *time.Location) (time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return time.Time{}, errors.New("missing")
	}
	return ParseTimestamp(*s, loc)
}

// optionalTime treats an unparseable timestamp the same as an absent one.
func optionalTime(s *string, loc *time.Location) *time.Time {
	if s == nil {
		return nil
	}
	t, err := ParseTimestamp(*s, loc)
	if err != nil {
		return nil
	}
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
