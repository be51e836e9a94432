package catalog

import (
	"testing"

	"session-cart/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	products := []model.Product{
		{ID: 1, Title: "Fjallraven Backpack"},
		{ID: 2, Title: "Mens Casual T-Shirt"},
		{ID: 3, Title: "Mens Cotton Jacket"},
		{ID: 4, Title: "Gold Bracelet"},
	}

	tests := []struct {
		name     string
		term     string
		expected []int64
	}{
		{name: "Empty term returns everything in order", term: "", expected: []int64{1, 2, 3, 4}},
		{name: "Whitespace term returns everything", term: "   ", expected: []int64{1, 2, 3, 4}},
		{name: "Case-insensitive match", term: "MENS", expected: []int64{2, 3}},
		{name: "Substring match", term: "ack", expected: []int64{1, 3}},
		{name: "No match", term: "laptop", expected: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []int64{}
			for _, p := range Filter(products, tt.term) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	products := []model.Product{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}

	_ = Filter(products, "b")

	assert.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
}
