package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Ftotnem/GO-AUCTIONS/shared/mongodb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
)

var (
	mongoOnce sync.Once
	mongoURI  string
	mongoErr  error
)

// sharedMongoURI starts one MongoDB container for the whole package run.
// Ryuk reaps it when the test binary exits.
func sharedMongoURI(t *testing.T) string {
	t.Helper()
	mongoOnce.Do(func() {
		ctx := context.Background()
		var ctr *tcmongodb.MongoDBContainer
		ctr, mongoErr = tcmongodb.Run(ctx, "mongo:7")
		if mongoErr != nil {
			return
		}
		mongoURI, mongoErr = ctr.ConnectionString(ctx)
	})
	require.NoError(t, mongoErr, "starting mongodb container")
	return mongoURI
}

// newTestClient connects to a fresh, uniquely named database that is dropped when the test ends.
func newTestClient(t *testing.T) *mongodb.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	client, err := mongodb.NewClient(ctx, sharedMongoURI(t), "test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return client
}
