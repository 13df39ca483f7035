package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleIdempotentPair(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("Servo")
	sel.SetQuantity("Servo", "3")

	before := sel.Entries()

	sel.Toggle("Battery")
	sel.Toggle("Battery")

	assert.Equal(t, before, sel.Entries(), "a toggle pair restores the prior state exactly")
}

func TestToggleInsertsUnset(t *testing.T) {
	sel := NewSelection()

	assert.True(t, sel.Toggle("Servo"))

	entries := sel.Entries()
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Quantity, "checked without a typed quantity is unset, not 0")

	assert.False(t, sel.Toggle("Servo"))
	assert.Empty(t, sel.Entries())
}

func TestSetQuantityClampsAboveMax(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("Servo")

	sel.SetQuantity("Servo", "500")

	entries := sel.Entries()
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Quantity)
	assert.Equal(t, MaxSelectableQuantity, *entries[0].Quantity)
}

func TestSetQuantityRemovesOnInvalidOrSubOne(t *testing.T) {
	for _, raw := range []string{"0", "-2", "abc", "1.5"} {
		t.Run(raw, func(t *testing.T) {
			sel := NewSelection()
			sel.Toggle("Servo")

			sel.SetQuantity("Servo", raw)

			assert.Empty(t, sel.Entries(), "invalid quantity unchecks the item")
		})
	}
}

func TestSetQuantityEmptyKeepsEntryUnset(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("Servo")
	sel.SetQuantity("Servo", "4")

	sel.SetQuantity("Servo", "  ")

	entries := sel.Entries()
	require.Len(t, entries, 1, "clearing the field mid-edit must not uncheck the item")
	assert.Nil(t, entries[0].Quantity)
}

func TestEntriesPreserveInsertionOrder(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("A")
	sel.Toggle("B")
	sel.Toggle("C")
	sel.SetQuantity("B", "9")

	entries := sel.Entries()

	require.Len(t, entries, 3)
	assert.Equal(t, "A", entries[0].Item)
	assert.Equal(t, "B", entries[1].Item)
	assert.Equal(t, "C", entries[2].Item)
}

func TestClearEmptiesSelection(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("A")
	sel.SetQuantity("A", "2")

	sel.Clear()

	assert.Empty(t, sel.Entries())
	assert.True(t, sel.Toggle("A"), "cleared items can be selected again")
}
