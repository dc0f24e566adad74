package resource_test

import (
	"testing"

	"github.com/cuemby/syzygo/pkg/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResource struct {
	Name string
}

func TestSetAndGet(t *testing.T) {
	r := resource.New()
	require.NoError(t, resource.Set(r, testResource{Name: "test_str"}))

	got := resource.Get[testResource](r)
	assert.Equal(t, "test_str", got.Name)
}

func TestSetDuplicateFails(t *testing.T) {
	r := resource.New()
	require.NoError(t, resource.Set(r, testResource{Name: "a"}))

	err := resource.Set(r, testResource{Name: "b"})
	require.Error(t, err)
}

func TestTryGetMissing(t *testing.T) {
	r := resource.New()
	_, ok := resource.TryGet[testResource](r)
	assert.False(t, ok)
}

func TestGetMissingPanics(t *testing.T) {
	r := resource.New()
	assert.Panics(t, func() {
		resource.Get[testResource](r)
	})
}

func TestCloneSharesStore(t *testing.T) {
	r := resource.New()
	require.NoError(t, resource.Set(r, testResource{Name: "shared"}))

	clone := r.Clone()
	got := resource.Get[testResource](clone)
	assert.Equal(t, "shared", got.Name)
	assert.Equal(t, 1, clone.Len())
}
