package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Ftotnem/GO-AUCTIONS/auction/store"
	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
	"github.com/Ftotnem/GO-AUCTIONS/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func newPlayerStore(t *testing.T) (*store.PlayerStore, *bsonPeek) {
	t.Helper()
	client := newTestClient(t)
	coll := client.Collection("players")
	ps := store.NewPlayerStore(coll)
	require.NoError(t, ps.EnsureIndexes(context.Background()))
	return ps, &bsonPeek{find: func(name string) (bson.M, error) {
		var raw bson.M
		err := coll.FindOne(context.Background(), bson.M{"name": name}).Decode(&raw)
		return raw, err
	}}
}

// bsonPeek reads raw documents to check storage-only fields.
type bsonPeek struct {
	find func(name string) (bson.M, error)
}

func TestPlayerStore_CreateAndGet(t *testing.T) {
	ps, _ := newPlayerStore(t)
	ctx := context.Background()

	in := &models.Player{Name: "alice", Notes: "left wing"}
	created, err := ps.CreatePlayer(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, in, created)

	got, err := ps.GetPlayer(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestPlayerStore_StorageFieldsStayInternal(t *testing.T) {
	ps, peek := newPlayerStore(t)
	ctx := context.Background()

	_, err := ps.CreatePlayer(ctx, &models.Player{Name: "alice"})
	require.NoError(t, err)

	raw, err := peek.find("alice")
	require.NoError(t, err)
	assert.Contains(t, raw, "_id")
	assert.EqualValues(t, 0, raw["rev"])

	notes := "x"
	updated, err := ps.UpdatePlayer(ctx, "alice", &models.PlayerPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, &models.Player{Name: "alice", Notes: "x"}, updated)

	raw, err = peek.find("alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, raw["rev"])
}

func TestPlayerStore_CreateDuplicate(t *testing.T) {
	ps, _ := newPlayerStore(t)
	ctx := context.Background()

	_, err := ps.CreatePlayer(ctx, &models.Player{Name: "alice"})
	require.NoError(t, err)

	_, err = ps.CreatePlayer(ctx, &models.Player{Name: "alice", Notes: "again"})
	require.ErrorIs(t, err, api.ErrConflict)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Player Already Exists", apiErr.Title)
	assert.Equal(t, "There is already a Player with name 'alice'.", apiErr.Detail)
}

func TestPlayerStore_ConcurrentCreatesOneWins(t *testing.T) {
	ps, _ := newPlayerStore(t)
	ctx := context.Background()

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ps.CreatePlayer(ctx, &models.Player{Name: "bob", Notes: fmt.Sprint(i)})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, api.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, racers-1, conflicts)
}

func TestPlayerStore_NotFound(t *testing.T) {
	ps, _ := newPlayerStore(t)
	ctx := context.Background()

	_, err := ps.GetPlayer(ctx, "ghost")
	require.ErrorIs(t, err, api.ErrNotFound)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Player Not Found", apiErr.Title)
	assert.Equal(t, "No Player 'ghost' found.", apiErr.Detail)

	notes := "x"
	_, err = ps.UpdatePlayer(ctx, "ghost", &models.PlayerPatch{Notes: &notes})
	assert.ErrorIs(t, err, api.ErrNotFound)

	_, err = ps.DeletePlayer(ctx, "ghost")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestPlayerStore_EmptyPatchBumpsRevisionOnly(t *testing.T) {
	ps, _ := newPlayerStore(t)
	ctx := context.Background()

	_, err := ps.CreatePlayer(ctx, &models.Player{Name: "alice", Notes: "keep"})
	require.NoError(t, err)

	got, err := ps.UpdatePlayer(ctx, "alice", &models.PlayerPatch{})
	require.NoError(t, err)
	assert.Equal(t, &models.Player{Name: "alice", Notes: "keep"}, got)
}

func TestPlayerStore_Delete(t *testing.T) {
	ps, _ := newPlayerStore(t)
	ctx := context.Background()

	_, err := ps.CreatePlayer(ctx, &models.Player{Name: "alice", Notes: "n"})
	require.NoError(t, err)

	deleted, err := ps.DeletePlayer(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.Player{Name: "alice", Notes: "n"}, deleted)

	_, err = ps.GetPlayer(ctx, "alice")
	assert.ErrorIs(t, err, api.ErrNotFound)
	_, err = ps.DeletePlayer(ctx, "alice")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestPlayerStore_List(t *testing.T) {
	ps, _ := newPlayerStore(t)
	ctx := context.Background()

	empty, err := ps.ListPlayers(ctx, store.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"dave", "alice", "erin", "carol", "bob"} {
		_, err := ps.CreatePlayer(ctx, &models.Player{Name: name})
		require.NoError(t, err)
	}

	all, err := ps.ListPlayers(ctx, store.ListOptions{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol", "dave", "erin"}, playerNames(all))

	page, err := ps.ListPlayers(ctx, store.ListOptions{Skip: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, playerNames(page))

	tail, err := ps.ListPlayers(ctx, store.ListOptions{Skip: 4, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"erin"}, playerNames(tail))

	past, err := ps.ListPlayers(ctx, store.ListOptions{Skip: 10, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestPlayerStore_ListFilterAndProjection(t *testing.T) {
	ps, _ := newPlayerStore(t)
	ctx := context.Background()

	_, err := ps.CreatePlayer(ctx, &models.Player{Name: "alice", Notes: "goalie"})
	require.NoError(t, err)
	_, err = ps.CreatePlayer(ctx, &models.Player{Name: "bob", Notes: "defense"})
	require.NoError(t, err)

	got, err := ps.ListPlayers(ctx, store.ListOptions{
		Filter: bson.M{"notes": "goalie"},
		Fields: []string{"name"},
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, []models.Player{{Name: "alice"}}, got)
}

func playerNames(players []models.Player) []string {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	return names
}
