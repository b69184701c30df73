package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal_SumsPrices(t *testing.T) {
	items := []Product{
		{ID: 1, Name: "Moisturizing Shampoo", Price: 10},
		{ID: 2, Name: "Curl Enhancer", Price: 15},
		{ID: 2, Name: "Curl Enhancer", Price: 15},
	}
	assert.Equal(t, "40", Total(items).String())
}

func TestTotal_EmptyCartIsZero(t *testing.T) {
	assert.True(t, Total(nil).IsZero())
}

func TestTotal_NoFloatDrift(t *testing.T) {
	items := []Product{{Price: 0.1}, {Price: 0.2}}
	assert.Equal(t, "0.3", Total(items).String())
}
