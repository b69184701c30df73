package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shampoo = domain.Product{ID: 1, Name: "Moisturizing Shampoo", Category: "Dry Hair", Price: 10}
	curl    = domain.Product{ID: 2, Name: "Curl Enhancer", Category: "Curly Hair", Price: 15}
)

func TestMemoryStore_AppendPreservesOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "c", curl))
	require.NoError(t, s.Append(ctx, "c", shampoo))
	require.NoError(t, s.Append(ctx, "c", curl))

	items, err := s.Items(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{curl, shampoo, curl}, items)
}

func TestMemoryStore_UnknownCartIsEmpty(t *testing.T) {
	items, err := NewMemoryStore().Items(context.Background(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMemoryStore_ItemsReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, "c", curl))

	items, _ := s.Items(ctx, "c")
	items[0].Price = 999

	again, _ := s.Items(ctx, "c")
	assert.Equal(t, 15.0, again[0].Price)
}

func TestMemoryStore_ClearIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, "c", curl))

	require.NoError(t, s.Clear(ctx, "c"))
	require.NoError(t, s.Clear(ctx, "c"))

	items, _ := s.Items(ctx, "c")
	assert.Empty(t, items)
}

func TestMemoryStore_CartsAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, "a", curl))

	items, _ := s.Items(ctx, "b")
	assert.Empty(t, items)
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(ctx, "c", curl)
		}()
	}
	wg.Wait()

	items, _ := s.Items(ctx, "c")
	assert.Len(t, items, 50)
}
