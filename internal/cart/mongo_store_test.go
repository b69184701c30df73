package cart

import (
	"context"
	"testing"
	"time"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestMongo(t *testing.T) *MongoStore {
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Client().Disconnect(ctx) })

	store := NewMongoStore(db)
	require.NoError(t, store.CreateIndexes(ctx))
	return store
}

func TestMongoStore_Lifecycle(t *testing.T) {
	store := setupTestMongo(t)
	ctx := context.Background()

	items, err := store.Items(ctx, "shared")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, store.Append(ctx, "shared", curl))
	require.NoError(t, store.Append(ctx, "shared", shampoo))
	require.NoError(t, store.Append(ctx, "shared", curl))

	items, err = store.Items(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{curl, shampoo, curl}, items)

	require.NoError(t, store.Clear(ctx, "shared"))
	items, err = store.Items(ctx, "shared")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMongoStore_ClearUnknownCart(t *testing.T) {
	store := setupTestMongo(t)
	assert.NoError(t, store.Clear(context.Background(), "never-created"))
}

func TestConnectMongoDB_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	db, err := ConnectMongoDB(ctx, "mongodb://127.0.0.1:1/?connect=direct", "testdb")
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "failed to ping MongoDB")
}
