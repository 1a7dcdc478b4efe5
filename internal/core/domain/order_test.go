package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeTotal(t *testing.T) {
	order := Order{
		Lines: []OrderLine{
			{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("9.50")},
			{ProductID: 2, Quantity: 3, UnitPrice: decimal.RequireFromString("1.25")},
		},
	}

	got := order.ComputeTotal()
	want := decimal.RequireFromString("22.75")
	if !got.Equal(want) {
		t.Errorf("expected total %s, got %s", want, got)
	}
}

func TestComputeTotal_NoLines(t *testing.T) {
	var order Order
	if !order.ComputeTotal().Equal(decimal.Zero) {
		t.Errorf("expected zero total, got %s", order.ComputeTotal())
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, ok := ParseOrderStatus("PREPARING"); !ok {
		t.Error("expected PREPARING to parse")
	}
	if _, ok := ParseOrderStatus("preparing"); ok {
		t.Error("expected lowercase value to be rejected")
	}
	if _, ok := ParseOrderStatus("SHIPPED"); ok {
		t.Error("expected unknown value to be rejected")
	}
}
