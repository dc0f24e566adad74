package event_test

import (
	"testing"

	"github.com/cuemby/syzygo/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctx struct{}

type tick struct{ N int }
type tock struct{ N int }

func TestSubscribeAndHandle(t *testing.T) {
	b := event.New[ctx]()
	var got int
	require.NoError(t, event.Subscribe[tick](b, "tick", func(cx ctx, e tick) {
		got = e.N
	}))

	b.Emit(tick{N: 5})
	typ, e, ok := b.Pop()
	require.True(t, ok)
	require.NoError(t, b.Handle(ctx{}, typ, e))
	assert.Equal(t, 5, got)
}

func TestDuplicateNameAcrossTypesRejected(t *testing.T) {
	b := event.New[ctx]()
	require.NoError(t, event.Subscribe[tick](b, "shared", func(cx ctx, e tick) {}))

	err := event.Subscribe[tock](b, "shared", func(cx ctx, e tock) {})
	require.Error(t, err)
	assert.ErrorIs(t, err, event.ErrAlreadyExists)
}

func TestUnsubscribe(t *testing.T) {
	b := event.New[ctx]()
	require.NoError(t, event.Subscribe[tick](b, "tick", func(cx ctx, e tick) {}))
	require.NoError(t, b.Unsubscribe("tick"))

	err := b.Unsubscribe("tick")
	assert.ErrorIs(t, err, event.ErrHandlerNotFound)
}

func TestHandleUnregisteredType(t *testing.T) {
	b := event.New[ctx]()
	b.Emit(tick{N: 1})
	typ, e, ok := b.Pop()
	require.True(t, ok)

	err := b.Handle(ctx{}, typ, e)
	assert.ErrorIs(t, err, event.ErrUnregistered)
}

func TestSubscriberCount(t *testing.T) {
	b := event.New[ctx]()
	assert.Equal(t, 0, b.SubscriberCount())
	require.NoError(t, event.Subscribe[tick](b, "a", func(cx ctx, e tick) {}))
	require.NoError(t, event.Subscribe[tock](b, "b", func(cx ctx, e tock) {}))
	assert.Equal(t, 2, b.SubscriberCount())
}
