package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverTeamExactMatch(t *testing.T) {
	r := testResolver()

	id, ok := r.Team("BOS")
	require.True(t, ok)
	assert.Equal(t, 1, id)

	// Case matters for abbreviations
	_, ok = r.Team("bos")
	assert.False(t, ok)
}

func TestResolverVenueTrims(t *testing.T) {
	r := testResolver()

	id, ok := r.Venue("  TD Garden ")
	require.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = r.Venue("td garden")
	assert.False(t, ok)
}

func TestResolverPlayerCaseInsensitive(t *testing.T) {
	r := testResolver()

	id, ok := r.Player(" Jayson TATUM ")
	require.True(t, ok)
	assert.Equal(t, 100, id)
}

type failingResolverSource struct {
	fakeResolverSource
}

func (failingResolverSource) VenueNameMap(ctx context.Context) (map[string]int, error) {
	return nil, errors.New("connection refused")
}

func TestBuildResolverFailureIsFatal(t *testing.T) {
	_, err := BuildResolver(context.Background(), failingResolverSource{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "venue index")
}
