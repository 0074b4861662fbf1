package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillz-id/gigpig-settlement/src/models"
)

func TestAggregate_ComedyNightTotals(t *testing.T) {
	svc := NewAggregationService(testLogger())
	records := []models.OrderRecord{
		{Row: 2, OrderID: "1", EventName: "Comedy Night", Platform: models.PlatformEventbrite, GrossSales: "$100.00", NetSales: "$90.00", ServiceFee: "$6.00", ProcessingFee: "$4.00"},
		{Row: 3, OrderID: "2", EventName: "Comedy Night", Platform: models.PlatformEventbrite, GrossSales: "$50.00", NetSales: "$45.00", ServiceFee: "$3.00", ProcessingFee: "$2.00"},
	}

	summaries := svc.Aggregate(records)
	require.Len(t, summaries, 1)

	sum := summaries["Comedy Night"]
	require.NotNil(t, sum)
	assert.Equal(t, 2, sum.OrderCount)
	assert.True(t, sum.TotalGross.Equal(decimal.NewFromFloat(150.00)), "gross got %s", sum.TotalGross)
	assert.True(t, sum.TotalNet.Equal(decimal.NewFromFloat(135.00)), "net got %s", sum.TotalNet)
	assert.True(t, sum.TotalFees.Equal(decimal.NewFromFloat(15.00)), "fees got %s", sum.TotalFees)
}

func TestAggregate_PreferEventIDOverName(t *testing.T) {
	svc := NewAggregationService(testLogger())
	records := []models.OrderRecord{
		{Row: 2, OrderID: "1", EventID: "EV-1", EventName: "Comedy Night", GrossSales: "$10.00"},
		{Row: 3, OrderID: "2", EventID: "EV-2", EventName: "Comedy Night", GrossSales: "$20.00"},
		{Row: 4, OrderID: "3", EventName: "Comedy Night", GrossSales: "$30.00"}, // no stable ID
	}

	summaries := svc.Aggregate(records)

	// Same name under two IDs stays two events; the ID-less record groups by name
	require.Len(t, summaries, 3)
	assert.Equal(t, 1, summaries["EV-1"].OrderCount)
	assert.Equal(t, 1, summaries["EV-2"].OrderCount)
	assert.Equal(t, 1, summaries["Comedy Night"].OrderCount)
}

func TestAggregate_PlatformBreakdownConservation(t *testing.T) {
	svc := NewAggregationService(testLogger())
	records := []models.OrderRecord{
		{Row: 2, OrderID: "h1", EventID: "EV-1", Platform: models.PlatformHumanitix, GrossSales: "$40.00", NetSales: "$36.00"},
		{Row: 3, OrderID: "e1", EventID: "EV-1", Platform: models.PlatformEventbrite, GrossSales: "$60.00", NetSales: "$54.00"},
		{Row: 4, OrderID: "u1", EventID: "EV-1", GrossSales: "$10.00", NetSales: "$9.00"}, // no platform marker
	}

	summaries := svc.Aggregate(records)
	sum := summaries["EV-1"]
	require.NotNil(t, sum)

	require.Len(t, sum.PlatformBreakdown, 3)
	assert.Contains(t, sum.PlatformBreakdown, "unknown")

	// Breakdown totals must sum to the event totals
	breakdownGross := decimal.Zero
	breakdownNet := decimal.Zero
	breakdownOrders := 0
	for _, pt := range sum.PlatformBreakdown {
		breakdownGross = breakdownGross.Add(pt.Gross)
		breakdownNet = breakdownNet.Add(pt.Net)
		breakdownOrders += pt.OrderCount
	}
	assert.True(t, breakdownGross.Equal(sum.TotalGross), "breakdown gross %s vs total %s", breakdownGross, sum.TotalGross)
	assert.True(t, breakdownNet.Equal(sum.TotalNet), "breakdown net %s vs total %s", breakdownNet, sum.TotalNet)
	assert.Equal(t, sum.OrderCount, breakdownOrders)
}

func TestAggregate_SkipsUngroupableRecords(t *testing.T) {
	svc := NewAggregationService(testLogger())
	records := []models.OrderRecord{
		{Row: 2, OrderID: "1", GrossSales: "$10.00"}, // no event ID, no event name
	}

	summaries := svc.Aggregate(records)
	assert.Empty(t, summaries)
}

func TestAggregateSales_SumsRepeatedNames(t *testing.T) {
	svc := NewAggregationService(testLogger())
	records := []models.SalesRecord{
		{Row: 2, EventName: "Comedy Night", GrossSales: "$100.00", NetSales: "$90.00", TicketsSold: "2"},
		{Row: 3, EventName: "Comedy Night", GrossSales: "$50.00", NetSales: "$45.00", TicketsSold: "1"},
		{Row: 4, EventName: "Open Mic", GrossSales: "$20.00", NetSales: "$18.00", TicketsSold: "1"},
	}

	summaries := svc.AggregateSales(records)
	require.Len(t, summaries, 2)

	cn := summaries["Comedy Night"]
	assert.True(t, cn.TotalGross.Equal(decimal.NewFromFloat(150.00)))
	assert.Equal(t, 3, cn.OrderCount)
}
