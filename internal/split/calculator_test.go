package split

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receiptbot/bill-splitter/internal/common"
	"github.com/receiptbot/bill-splitter/internal/entity"
)

func item(name string, price float64) entity.ReceiptItem {
	return entity.ReceiptItem{Name: name, Quantity: 1, UnitPrice: price, TotalPrice: price}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		assignments   []entity.Assignment
		sharedItems   []entity.ReceiptItem
		participants  []string
		totalAmount   float64
		serviceCharge float64
		taxAmount     float64
		wantErr       bool
		validate      func(t *testing.T, results []entity.BillSplitResult)
	}{
		{
			name: "proportional service and tax with shared item",
			assignments: []entity.Assignment{
				{Person: "Alice", Items: []entity.ReceiptItem{item("Burger", 10)}},
				{Person: "Bob", Items: []entity.ReceiptItem{item("Salad", 8)}},
			},
			sharedItems:   []entity.ReceiptItem{item("Drinks", 4)},
			participants:  []string{"Alice", "Bob"},
			totalAmount:   25.00,
			serviceCharge: 1.00,
			taxAmount:     2.00,
			validate: func(t *testing.T, results []entity.BillSplitResult) {
				require.Len(t, results, 2)
				assert.Equal(t, "Alice", results[0].Person)
				assert.InDelta(t, 13.64, results[0].Owes, 0.001)
				assert.Equal(t, "Bob", results[1].Person)
				assert.InDelta(t, 11.36, results[1].Owes, 0.001)
				assert.InDelta(t, 25.00, results[0].Owes+results[1].Owes, 0.02)
			},
		},
		{
			name:         "shared items without participants fails",
			sharedItems:  []entity.ReceiptItem{item("Drinks", 4)},
			participants: nil,
			totalAmount:  4.00,
			wantErr:      true,
		},
		{
			name:         "no participants at all fails",
			participants: nil,
			totalAmount:  10.00,
			wantErr:      true,
		},
		{
			name: "participants inferred from assignments",
			assignments: []entity.Assignment{
				{Person: "Carol", Items: []entity.ReceiptItem{item("Pasta", 12)}},
			},
			participants: nil,
			totalAmount:  12.00,
			validate: func(t *testing.T, results []entity.BillSplitResult) {
				require.Len(t, results, 1)
				assert.Equal(t, "Carol", results[0].Person)
				assert.InDelta(t, 12.00, results[0].Owes, 0.001)
			},
		},
		{
			name:         "shared items split equally",
			sharedItems:  []entity.ReceiptItem{item("Platter", 30)},
			participants: []string{"Alice", "Bob", "Carol"},
			totalAmount:  30.00,
			validate: func(t *testing.T, results []entity.BillSplitResult) {
				require.Len(t, results, 3)
				for _, res := range results {
					assert.InDelta(t, 10.00, res.Owes, 0.001)
				}
			},
		},
		{
			name:          "zero distribution base falls back to equal service split",
			participants:  []string{"Alice", "Bob"},
			totalAmount:   10.00,
			serviceCharge: 10.00,
			validate: func(t *testing.T, results []entity.BillSplitResult) {
				require.Len(t, results, 2)
				for _, res := range results {
					assert.InDelta(t, 5.00, res.Owes, 0.001)
				}
			},
		},
		{
			name: "tax base includes service charge",
			assignments: []entity.Assignment{
				{Person: "Alice", Items: []entity.ReceiptItem{item("Steak", 90)}},
			},
			participants:  []string{"Alice"},
			totalAmount:   110.00,
			serviceCharge: 10.00,
			taxAmount:     10.00,
			validate: func(t *testing.T, results []entity.BillSplitResult) {
				require.Len(t, results, 1)
				// 90 + 10 service + (100/100)*10 tax
				assert.InDelta(t, 110.00, results[0].Owes, 0.001)
			},
		},
		{
			name: "inconsistent receipt total still returns a result",
			assignments: []entity.Assignment{
				{Person: "Alice", Items: []entity.ReceiptItem{item("Burger", 10)}},
			},
			participants: []string{"Alice"},
			totalAmount:  100.00,
			validate: func(t *testing.T, results []entity.BillSplitResult) {
				require.Len(t, results, 1)
				assert.InDelta(t, 10.00, results[0].Owes, 0.001)
			},
		},
		{
			name: "results sorted alphabetically",
			assignments: []entity.Assignment{
				{Person: "Zed", Items: []entity.ReceiptItem{item("Tea", 3)}},
				{Person: "Amy", Items: []entity.ReceiptItem{item("Coffee", 4)}},
			},
			participants: []string{"Zed", "Amy"},
			totalAmount:  7.00,
			validate: func(t *testing.T, results []entity.BillSplitResult) {
				require.Len(t, results, 2)
				assert.Equal(t, "Amy", results[0].Person)
				assert.Equal(t, "Zed", results[1].Person)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Calculate(tt.assignments, tt.sharedItems, tt.participants,
				tt.totalAmount, tt.serviceCharge, tt.taxAmount, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, common.IsStage(err, common.StageCalculation))
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, results)
			}
		})
	}
}

func TestCalculateConservation(t *testing.T) {
	// For consistent receipts the rounded per-person totals must sum to the
	// stated total within 0.01 per participant.
	assignments := []entity.Assignment{
		{Person: "Alice", Items: []entity.ReceiptItem{item("Burger", 10.50), item("Fries", 3.25)}},
		{Person: "Bob", Items: []entity.ReceiptItem{item("Salad", 8.75)}},
		{Person: "Carol", Items: []entity.ReceiptItem{item("Soup", 6.00)}},
	}
	shared := []entity.ReceiptItem{item("Nachos", 9.99), item("Drinks", 7.77)}
	participants := []string{"Alice", "Bob", "Carol"}
	serviceCharge := 4.63
	taxAmount := 5.08
	total := 10.50 + 3.25 + 8.75 + 6.00 + 9.99 + 7.77 + serviceCharge + taxAmount

	results, err := Calculate(assignments, shared, participants, total, serviceCharge, taxAmount, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	sum := 0.0
	for _, res := range results {
		sum += res.Owes
	}
	assert.LessOrEqual(t, math.Abs(sum-total), 0.01*float64(len(participants)))
}

func TestCalculateItemSummaries(t *testing.T) {
	assignments := []entity.Assignment{
		{Person: "Alice", Items: []entity.ReceiptItem{item("Burger", 10)}},
	}
	shared := []entity.ReceiptItem{item("Drinks", 4)}

	results, err := Calculate(assignments, shared, []string{"Alice", "Bob"}, 16.00, 1.00, 1.00, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	alice := results[0]
	require.Equal(t, "Alice", alice.Person)
	assert.Contains(t, alice.Items, "Burger ($10.00)")
	assert.Contains(t, alice.Items, "Shared Items ($2.00 each)")

	bob := results[1]
	require.Equal(t, "Bob", bob.Person)
	assert.NotContains(t, bob.Items, "Burger ($10.00)")
	assert.Contains(t, bob.Items, "Shared Items ($2.00 each)")
}
