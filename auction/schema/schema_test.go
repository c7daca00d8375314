package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBadRequest(t *testing.T, err error) *api.Error {
	t.Helper()
	require.Error(t, err)
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr), "expected *api.Error, got %T", err)
	assert.Equal(t, api.KindBadRequest, apiErr.Kind)
	assert.Equal(t, "Bad Request", apiErr.Title)
	return apiErr
}

func TestDecodeNewPlayer(t *testing.T) {
	v := NewValidator()

	p, err := v.DecodeNewPlayer(strings.NewReader(`{"name":"alice","notes":"likes goalies"}`))
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Name)
	assert.Equal(t, "likes goalies", p.Notes)
}

func TestDecodeNewPlayer_Violations(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{name: "missing name", body: `{"notes":"x"}`, wantDetail: "name is required"},
		{name: "empty name", body: `{"name":""}`, wantDetail: "name is required"},
		{name: "wrong type", body: `{"name":5}`, wantDetail: "name must be of type string"},
		{name: "unknown field", body: `{"name":"a","rank":1}`, wantDetail: `"rank" is not an allowed field`},
		{name: "empty body", body: ``, wantDetail: "Request body must be a JSON object"},
		{name: "array body", body: `[]`, wantDetail: "Request body must be a JSON object"},
		{name: "two objects", body: `{"name":"a"}{"name":"b"}`, wantDetail: "Request body must contain a single JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.DecodeNewPlayer(strings.NewReader(tt.body))
			apiErr := requireBadRequest(t, err)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestDecodeNewPlayer_MalformedJSON(t *testing.T) {
	v := NewValidator()

	_, err := v.DecodeNewPlayer(strings.NewReader(`{"name":`))
	apiErr := requireBadRequest(t, err)
	assert.Contains(t, apiErr.Detail, "not valid JSON")
}

func TestDecodePlayerUpdate(t *testing.T) {
	v := NewValidator()

	patch, err := v.DecodePlayerUpdate(strings.NewReader(`{"notes":"x"}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Notes)
	assert.Equal(t, "x", *patch.Notes)

	patch, err = v.DecodePlayerUpdate(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Nil(t, patch.Notes)
}

func TestDecodePlayerUpdate_NameIsNotPatchable(t *testing.T) {
	v := NewValidator()

	_, err := v.DecodePlayerUpdate(strings.NewReader(`{"name":"bob"}`))
	apiErr := requireBadRequest(t, err)
	assert.Equal(t, `"name" is not an allowed field`, apiErr.Detail)
}

func TestDecodeNewAuction(t *testing.T) {
	v := NewValidator()

	a, err := v.DecodeNewAuction(strings.NewReader(`{
		"name": "spring-draft",
		"players": [{"player": "alice", "bid": 12.5, "buyer": "team-a"}],
		"minimumBid": 1,
		"numberOfBlindBids": 2
	}`))
	require.NoError(t, err)
	assert.Equal(t, "spring-draft", a.Name)
	require.Len(t, a.Players, 1)
	assert.Equal(t, "alice", a.Players[0].Player)
	assert.Equal(t, 12.5, *a.Players[0].Bid)
	assert.Equal(t, 1.0, *a.MinimumBid)
	assert.Equal(t, 2, *a.NumberOfBlindBids)
}

func TestDecodeNewAuction_ZeroValuesAreAccepted(t *testing.T) {
	v := NewValidator()

	a, err := v.DecodeNewAuction(strings.NewReader(`{"name":"a","minimumBid":0,"numberOfBlindBids":0}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, *a.MinimumBid)
	assert.Equal(t, 0, *a.NumberOfBlindBids)
}

func TestDecodeNewAuction_CollectsAllViolations(t *testing.T) {
	v := NewValidator()

	_, err := v.DecodeNewAuction(strings.NewReader(`{"players":[{"buyer":"x"}]}`))
	apiErr := requireBadRequest(t, err)
	assert.Equal(t,
		"name is required. players[0].player is required. players[0].bid is required. minimumBid is required. numberOfBlindBids is required",
		apiErr.Detail)
}

func TestDecodeAuctionUpdate(t *testing.T) {
	v := NewValidator()

	patch, err := v.DecodeAuctionUpdate(strings.NewReader(`{"minimumBid":3}`))
	require.NoError(t, err)
	require.NotNil(t, patch.MinimumBid)
	assert.Equal(t, 3.0, *patch.MinimumBid)
	assert.Nil(t, patch.Players)
	assert.Nil(t, patch.NumberOfBlindBids)

	_, err = v.DecodeAuctionUpdate(strings.NewReader(`{"players":[{"bid":1}]}`))
	apiErr := requireBadRequest(t, err)
	assert.Equal(t, "players[0].player is required", apiErr.Detail)

	_, err = v.DecodeAuctionUpdate(strings.NewReader(`{"numberOfBlindBids":"two"}`))
	apiErr = requireBadRequest(t, err)
	assert.Equal(t, "numberOfBlindBids must be of type integer", apiErr.Detail)
}
