package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewViewProjectsColumns(t *testing.T) {
	resp, err := Parse([]byte(`{
		"columns": ["b", "a"],
		"data": [{"a": 1, "b": 2, "extra": 3}, {"a": 4}]
	}`))
	require.NoError(t, err)

	v := NewView(resp)

	assert.False(t, v.HasStats)
	assert.Empty(t, v.Cards)
	assert.Equal(t, []string{"b", "a"}, v.Table.Headers)
	assert.Equal(t, [][]string{{"2", "1"}, {"", "4"}}, v.Table.Rows)
}

func TestNewViewCardsFixedOrder(t *testing.T) {
	resp, err := Parse([]byte(exampleBody))
	require.NoError(t, err)

	v := NewView(resp)

	require.Len(t, v.Cards, 1)
	card := v.Cards[0]
	assert.Equal(t, "A", card.Column)
	require.Len(t, card.Fields, 6)
	var order []Field
	for _, f := range card.Fields {
		order = append(order, f.Field)
	}
	assert.Equal(t, Fields(), order)
	assert.Equal(t, "0", card.Fields[2].Value)
}

func TestFieldKeys(t *testing.T) {
	keys := []string{}
	for _, f := range Fields() {
		keys = append(keys, f.Key())
	}
	assert.Equal(t, []string{"moyenne", "médiane", "écart-type", "min", "max", "valeurs_manquantes"}, keys)
}
