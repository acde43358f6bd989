package printing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfirmationHTML(t *testing.T) {
	data := &ConfirmationData{
		OrderID:       "4fa0a540-0000-0000-0000-000000000001",
		CreatedAt:     time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		FullName:      "Ivan Petrov",
		Email:         "ivan@example.com",
		Phone:         "+7 900 000 00 00",
		Address:       "Moscow, Tverskaya 1",
		PaymentMethod: "card",
		Lines: []ConfirmationLine{
			{Title: "iPhone 15", Quantity: 1, UnitPrice: decimal.NewFromInt(79990), LineTotal: decimal.NewFromInt(79990)},
			{Title: "AirPods Pro", Quantity: 2, UnitPrice: decimal.NewFromInt(24990), LineTotal: decimal.NewFromInt(49980)},
		},
		Total: decimal.NewFromInt(129970),
	}

	html, err := BuildConfirmationHTML(data)
	require.NoError(t, err)

	assert.Contains(t, html, "Ivan Petrov")
	assert.Contains(t, html, "iPhone 15")
	assert.Contains(t, html, "AirPods Pro")
	assert.Contains(t, html, "129970.00")
	assert.Contains(t, html, "14.03.2025 10:30")
	assert.Contains(t, html, "<!DOCTYPE html>")
}

func TestBuildConfirmationHTML_EscapesUserInput(t *testing.T) {
	data := &ConfirmationData{
		OrderID:  "x",
		FullName: "<script>alert(1)</script>",
		Address:  "somewhere",
		Total:    decimal.Zero,
	}

	html, err := BuildConfirmationHTML(data)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestBuildConfirmationHTML_OmitsEmptyOptionalFields(t *testing.T) {
	data := &ConfirmationData{
		OrderID:  "x",
		FullName: "Ivan",
		Address:  "somewhere",
		Total:    decimal.Zero,
	}

	html, err := BuildConfirmationHTML(data)
	require.NoError(t, err)

	assert.NotContains(t, html, "Phone:")
	assert.NotContains(t, html, "Comment:")
}
