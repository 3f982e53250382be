package adapters

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"estate_backend/internal/shared/apperr"
)

func newMongoRepo(t *testing.T) *propertyMongo {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	db := client.Database("estate_test_" + bson.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx := context.Background()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	repo := NewPropertyMongo(db)
	require.NoError(t, repo.EnsureIndexes(context.Background()))
	return repo
}

func TestPropertyMongo_Lifecycle(t *testing.T) {
	repo := newMongoRepo(t)
	ctx := context.Background()

	p := newProperty("Loft")
	p.OwnerID = bson.NewObjectID().Hex()
	require.NoError(t, repo.Create(ctx, p))
	assert.Len(t, p.ID, 24)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.OwnerID, found.OwnerID)

	some, err := repo.FindByIDs(ctx, []string{"bogus", p.ID, bson.NewObjectID().Hex()})
	require.NoError(t, err)
	require.Len(t, some, 1)

	repl := newProperty("Renamed")
	repl.Bedrooms = nil
	updated, err := repo.Update(ctx, p.ID, repl)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, p.OwnerID, updated.OwnerID)
	assert.Nil(t, updated.Bedrooms)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), apperr.ErrPropertyNotFound)
	_, err = repo.FindByID(ctx, "not-hex")
	assert.ErrorIs(t, err, apperr.ErrPropertyNotFound)
}
