package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarginPercent(t *testing.T) {
	assert.Equal(t, 60.0, MarginPercent(100, 250))
	assert.Equal(t, 0.0, MarginPercent(100, 0), "zero price never divides")
	assert.Equal(t, -50.0, MarginPercent(150, 100))
}

func TestMarginFormatting(t *testing.T) {
	item := &Item{UnitCost: 100, Price: 250}
	assert.Equal(t, "60.0%", item.Margin())

	free := &Item{UnitCost: 100, Price: 0}
	assert.Equal(t, "0.0%", free.Margin())
}

func TestReserve(t *testing.T) {
	item := &Item{TotalStock: 10}

	require.NoError(t, item.Reserve(3))
	assert.Equal(t, 3, item.ReservedStock)
	assert.Equal(t, 7, item.AvailableStock())

	assert.ErrorIs(t, item.Reserve(8), ErrInsufficientStock)
	assert.Equal(t, 3, item.ReservedStock, "failed reserve changes nothing")

	require.NoError(t, item.Reserve(7))
	assert.Equal(t, 0, item.AvailableStock())
}

func TestRelease(t *testing.T) {
	item := &Item{TotalStock: 10, ReservedStock: 3}

	require.NoError(t, item.Release(2))
	assert.Equal(t, 1, item.ReservedStock)
	assert.Equal(t, 9, item.AvailableStock())

	assert.ErrorIs(t, item.Release(2), ErrReservationUnderflow)
	assert.Equal(t, 1, item.ReservedStock)
}

func TestConsumeLeavesAvailableUnchanged(t *testing.T) {
	item := &Item{TotalStock: 10, ReservedStock: 3}
	before := item.AvailableStock()

	require.NoError(t, item.Consume(3))
	assert.Equal(t, 7, item.TotalStock)
	assert.Equal(t, 0, item.ReservedStock)
	assert.Equal(t, before, item.AvailableStock())
}

func TestConsumeUnderflow(t *testing.T) {
	item := &Item{TotalStock: 10, ReservedStock: 2}
	assert.ErrorIs(t, item.Consume(3), ErrReservationUnderflow)
	assert.Equal(t, 10, item.TotalStock)
	assert.Equal(t, 2, item.ReservedStock)
}
