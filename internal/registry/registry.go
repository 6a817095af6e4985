// Package registry maps every request type tag to its physical table and to the
// projection that normalizes the table's columns into domain.Request fields.
// Adding a new service type means adding one entry here and one migration.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GlebRadaev/movebroker/internal/domain"
)

const (
	PrivateMove     domain.RequestType = "private_move"
	CompanyMove     domain.RequestType = "company_move"
	MovingCleaning  domain.RequestType = "moving_cleaning"
	HeavyLifting    domain.RequestType = "heavy_lifting"
	EstateClearance domain.RequestType = "estate_clearance"
	EvacuationMove  domain.RequestType = "evacuation_move"
	SecrecyMove     domain.RequestType = "secrecy_move"
	StorageService  domain.RequestType = "storage_service"
)

var ErrUnknownRequestType = fmt.Errorf("%w: unknown request type", domain.ErrValidation)

// Projection holds one SQL expression per normalized field. Fields a table does
// not carry are typed NULL or FALSE literals.
type Projection struct {
	ID                   string
	RequesterEmail       string
	RequesterName        string
	RequesterSSN         string
	PickupAddress        string
	DeliveryAddress      string
	RequestedDate        string
	LatestAcceptableDate string
	RUTEligible          string
	ExtraInsurance       string
	Status               string
	CreatedAt            string
}

type Entry struct {
	Type       domain.RequestType
	Table      string
	Projection Projection
}

// Columns is the normalized column order every Select produces.
var Columns = []string{
	"request_type", "id", "requester_email", "requester_name", "requester_ssn",
	"pickup_address", "delivery_address", "requested_date", "latest_acceptable_date",
	"rut_eligible", "extra_insurance", "status", "created_at",
}

func moveProjection(email, name, ssn, rut, insurance string) Projection {
	return Projection{
		ID:                   "id",
		RequesterEmail:       email,
		RequesterName:        name,
		RequesterSSN:         ssn,
		PickupAddress:        "from_address",
		DeliveryAddress:      "to_address",
		RequestedDate:        "move_date",
		LatestAcceptableDate: "latest_move_date",
		RUTEligible:          rut,
		ExtraInsurance:       insurance,
		Status:               "status",
		CreatedAt:            "created_at",
	}
}

var entries = map[domain.RequestType]Entry{
	PrivateMove: {
		Type:       PrivateMove,
		Table:      "private_moves",
		Projection: moveProjection("email", "name", "ssn", "rut", "extra_insurance"),
	},
	CompanyMove: {
		Type:       CompanyMove,
		Table:      "company_moves",
		Projection: moveProjection("contact_email", "contact_name", "NULL::text", "FALSE", "extra_insurance"),
	},
	EvacuationMove: {
		Type:       EvacuationMove,
		Table:      "evacuation_moves",
		Projection: moveProjection("email", "name", "ssn", "rut", "extra_insurance"),
	},
	SecrecyMove: {
		Type:       SecrecyMove,
		Table:      "secrecy_moves",
		Projection: moveProjection("email", "name", "ssn", "rut", "extra_insurance"),
	},
	MovingCleaning: {
		Type:  MovingCleaning,
		Table: "moving_cleanings",
		Projection: Projection{
			ID:                   "id",
			RequesterEmail:       "email",
			RequesterName:        "name",
			RequesterSSN:         "ssn",
			PickupAddress:        "address",
			DeliveryAddress:      "NULL::text",
			RequestedDate:        "cleaning_date",
			LatestAcceptableDate: "latest_cleaning_date",
			RUTEligible:          "rut",
			ExtraInsurance:       "FALSE",
			Status:               "status",
			CreatedAt:            "created_at",
		},
	},
	HeavyLifting: {
		Type:  HeavyLifting,
		Table: "heavy_liftings",
		Projection: Projection{
			ID:                   "id",
			RequesterEmail:       "email",
			RequesterName:        "name",
			RequesterSSN:         "ssn",
			PickupAddress:        "from_address",
			DeliveryAddress:      "to_address",
			RequestedDate:        "lift_date",
			LatestAcceptableDate: "latest_lift_date",
			RUTEligible:          "rut",
			ExtraInsurance:       "FALSE",
			Status:               "status",
			CreatedAt:            "created_at",
		},
	},
	EstateClearance: {
		Type:  EstateClearance,
		Table: "estate_clearances",
		Projection: Projection{
			ID:                   "id",
			RequesterEmail:       "email",
			RequesterName:        "name",
			RequesterSSN:         "NULL::text",
			PickupAddress:        "address",
			DeliveryAddress:      "NULL::text",
			RequestedDate:        "clearance_date",
			LatestAcceptableDate: "latest_clearance_date",
			RUTEligible:          "FALSE",
			ExtraInsurance:       "FALSE",
			Status:               "status",
			CreatedAt:            "created_at",
		},
	},
	StorageService: {
		Type:  StorageService,
		Table: "storage_services",
		Projection: Projection{
			ID:                   "id",
			RequesterEmail:       "email",
			RequesterName:        "name",
			RequesterSSN:         "NULL::text",
			PickupAddress:        "pickup_address",
			DeliveryAddress:      "NULL::text",
			RequestedDate:        "storage_start",
			LatestAcceptableDate: "NULL::date",
			RUTEligible:          "FALSE",
			ExtraInsurance:       "FALSE",
			Status:               "status",
			CreatedAt:            "created_at",
		},
	},
}

func Resolve(t domain.RequestType) (Entry, error) {
	e, ok := entries[t]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownRequestType, t)
	}
	return e, nil
}

func IsRegistered(t domain.RequestType) bool {
	_, ok := entries[t]
	return ok
}

// Types returns every registered tag in a stable order.
func Types() []domain.RequestType {
	types := make([]domain.RequestType, 0, len(entries))
	for t := range entries {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Select renders the normalized projection of the entry's table. The type tag
// is emitted as the first column so rows from a UNION stay distinguishable.
func (e Entry) Select() string {
	p := e.Projection
	exprs := []string{
		fmt.Sprintf("'%s'", e.Type),
		p.ID, p.RequesterEmail, p.RequesterName, p.RequesterSSN,
		p.PickupAddress, p.DeliveryAddress, p.RequestedDate, p.LatestAcceptableDate,
		p.RUTEligible, p.ExtraInsurance, p.Status, p.CreatedAt,
	}
	cols := make([]string, len(exprs))
	for i, expr := range exprs {
		cols[i] = expr + " AS " + Columns[i]
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + e.Table
}
