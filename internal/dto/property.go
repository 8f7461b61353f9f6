package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"property-management/internal/models"
)

// PropertyInput is the body of POST and PUT /properties.
type PropertyInput struct {
	Address    Optional[string]          `json:"address" binding:"required,notblank"`
	Bedrooms   Optional[int]             `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms  Optional[float64]         `json:"bathrooms" binding:"omitempty,gte=0"`
	Area       Optional[float64]         `json:"area" binding:"omitempty,gte=0"`
	RentAmount Optional[decimal.Decimal] `json:"rent_amount" binding:"omitempty,gte=0"`
	Status     Optional[string]          `json:"status" binding:"omitempty,max=50"`
}

// PropertyPatch is the body of PATCH /properties/:id; address may be omitted.
type PropertyPatch struct {
	Address    Optional[string]          `json:"address" binding:"omitempty,notblank"`
	Bedrooms   Optional[int]             `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms  Optional[float64]         `json:"bathrooms" binding:"omitempty,gte=0"`
	Area       Optional[float64]         `json:"area" binding:"omitempty,gte=0"`
	RentAmount Optional[decimal.Decimal] `json:"rent_amount" binding:"omitempty,gte=0"`
	Status     Optional[string]          `json:"status" binding:"omitempty,max=50"`
}

// Fields returns the PATCH column updates; nulls are skipped.
func (in *PropertyPatch) Fields() map[string]interface{} {
	full := PropertyInput(*in)
	return full.Fields(true)
}

func (in *PropertyInput) ToModel() *models.Property {
	p := &models.Property{
		Address:   trimmed(in.Address.Value),
		Bedrooms:  in.Bedrooms.Ptr(),
		Bathrooms: in.Bathrooms.Ptr(),
		Area:      in.Area.Ptr(),
		Status:    in.Status.Ptr(),
	}
	if in.RentAmount.Present() {
		p.RentAmount = decimal.NewNullDecimal(in.RentAmount.Value.Round(2))
	}
	return p
}

// Fields returns the column updates for PUT (partial=false) or PATCH.
func (in *PropertyInput) Fields(partial bool) map[string]interface{} {
	fields := map[string]interface{}{}
	collect(fields, "address", in.Address, partial, func(s string) interface{} { return trimmed(s) })
	collect(fields, "bedrooms", in.Bedrooms, partial, nil)
	collect(fields, "bathrooms", in.Bathrooms, partial, nil)
	collect(fields, "area", in.Area, partial, nil)
	collect(fields, "rent_amount", in.RentAmount, partial, func(d decimal.Decimal) interface{} { return d.Round(2) })
	collect(fields, "status", in.Status, partial, nil)
	return fields
}

type PropertyResponse struct {
	ID         uint       `json:"id"`
	Address    string     `json:"address"`
	Bedrooms   *int       `json:"bedrooms"`
	Bathrooms  *float64   `json:"bathrooms"`
	Area       *float64   `json:"area"`
	RentAmount *string    `json:"rent_amount"`
	Status     *string    `json:"status"`
	CreatedAt  *time.Time `json:"created_at"`
}

// PropertyList is the envelope the property list endpoint has always used.
type PropertyList struct {
	Value []PropertyResponse `json:"value"`
	Count int                `json:"Count"`
}

func NewPropertyResponse(p *models.Property) PropertyResponse {
	return PropertyResponse{
		ID:         p.ID,
		Address:    p.Address,
		Bedrooms:   p.Bedrooms,
		Bathrooms:  p.Bathrooms,
		Area:       p.Area,
		RentAmount: formatMoney(p.RentAmount),
		Status:     p.Status,
		CreatedAt:  timePtr(p.CreatedAt),
	}
}

func NewPropertyList(props []models.Property) PropertyList {
	out := PropertyList{Value: make([]PropertyResponse, 0, len(props))}
	for i := range props {
		out.Value = append(out.Value, NewPropertyResponse(&props[i]))
	}
	out.Count = len(out.Value)
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
