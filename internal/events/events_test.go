package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	rec := NewRecorder()

	assert.Empty(t, rec.Events())
	assert.Empty(t, rec.Last().Topics)

	rec.Publish(context.Background(), New([]string{TopicCarAdded, "owner-1"}, map[string]any{"price_per_day": "1500"}))
	rec.Publish(context.Background(), New([]string{TopicRented, "renter-1", "owner-1"}, map[string]any{"amount": "1000"}))

	all := rec.Events()
	require.Len(t, all, 2)
	assert.Equal(t, TopicCarAdded, all[0].Topics[0])
	assert.Equal(t, TopicRented, rec.Last().Topics[0])
	assert.NotEmpty(t, rec.Last().ID)
	assert.False(t, rec.Last().At.IsZero())
}

func TestMulti(t *testing.T) {
	first := NewRecorder()
	second := NewRecorder()
	pub := Multi(first, second)

	pub.Publish(context.Background(), New([]string{TopicPayoutAdmin, "admin"}, map[string]any{"amount": "100"}))

	require.Len(t, first.Events(), 1)
	require.Len(t, second.Events(), 1)
	assert.Equal(t, first.Last().ID, second.Last().ID)
}
