package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/chillz-id/gigpig-settlement/src/models"
)

// HumanitixOrder mirrors one order payload from the Humanitix API. Every
// financial field is optional in the payload, so totals use pointers and each
// access goes through an explicit presence check.
type HumanitixOrder struct {
	ID        string           `json:"_id"`
	EventID   string           `json:"eventId"`
	EventName string           `json:"eventName"`
	CreatedAt string           `json:"createdAt"`
	Email     string           `json:"email"`
	Venue     string           `json:"venue"`
	Totals    *HumanitixTotals `json:"totals"`
}

// HumanitixTotals is the financial block of a Humanitix order payload
type HumanitixTotals struct {
	Total      *float64 `json:"total"`
	NetSales   *float64 `json:"netSales"`
	TotalFees  *float64 `json:"totalFees"`
	BookingFee *float64 `json:"bookingFee"`
	Taxes      *float64 `json:"taxes"`
}

// ReadHumanitixOrders decodes a JSON array of Humanitix order payloads from a
// file, as returned by the Humanitix orders API.
func ReadHumanitixOrders(path string) ([]models.OrderRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeHumanitixOrders(f)
}

// DecodeHumanitixOrders decodes Humanitix order payloads from a reader and
// converts them into order records. Row numbers are assigned from payload
// position so validation findings can point back at the source.
func DecodeHumanitixOrders(r io.Reader) ([]models.OrderRecord, error) {
	var payload []HumanitixOrder
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode humanitix orders: %w", err)
	}

	out := make([]models.OrderRecord, 0, len(payload))
	for i, o := range payload {
		out = append(out, o.ToOrderRecord(i+1))
	}
	return out, nil
}

// ToOrderRecord converts an API payload into the engine's record shape. Absent
// totals become empty strings, matching how an absent CSV cell reads, so the
// validator and aggregator treat both sources identically.
func (o *HumanitixOrder) ToOrderRecord(row int) models.OrderRecord {
	rec := models.OrderRecord{
		Row:        row,
		OrderID:    o.ID,
		EventID:    o.EventID,
		EventName:  o.EventName,
		Platform:   models.PlatformHumanitix,
		OrderDate:  o.CreatedAt,
		BuyerEmail: o.Email,
		Venue:      o.Venue,
	}
	if o.Totals != nil {
		rec.GrossSales = amountString(o.Totals.Total)
		rec.NetSales = amountString(o.Totals.NetSales)
		rec.ServiceFee = amountString(o.Totals.TotalFees)
		rec.ProcessingFee = amountString(o.Totals.BookingFee)
		rec.Tax = amountString(o.Totals.Taxes)
	}
	return rec
}

func amountString(v *float64) string {
	if v == nil {
		return ""
	}
	return decimal.NewFromFloat(*v).String()
}
