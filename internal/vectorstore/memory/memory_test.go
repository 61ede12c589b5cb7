package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xlingviz/internal/domain"
	"xlingviz/internal/vectorstore"
)

var _ vectorstore.Storage = (*Storage)(nil)

func seeded(t *testing.T) *Storage {
	t.Helper()
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.LabelRecord{
			{Primary: "king", Secondary: "English"},
			{Primary: "国王", Secondary: "Chinese"},
			{Primary: "apple", Secondary: "English"},
			{Primary: "king", Secondary: "Chinese"},
		},
		[][]float64{{1, 0}, {0.9, 0.1}, {0, 3}, {-1, 0}},
	))
	return s
}

func TestStorage_SearchRow(t *testing.T) {
	s := seeded(t)
	res, err := s.SearchRow(0, 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "国王", res[0].Label.Primary)
	assert.Equal(t, 1, res[0].Row)
	assert.Equal(t, "apple", res[1].Label.Primary)
	assert.InDelta(t, 0.0, res[1].Score, 1e-12)
}

func TestStorage_Search(t *testing.T) {
	s := seeded(t)
	res, err := s.Search([]float64{0, 5}, 1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "apple", res[0].Label.Primary)
	assert.InDelta(t, 1.0, res[0].Score, 1e-12)

	_, err = s.Search([]float64{1}, 1)
	assert.Error(t, err)
}

func TestStorage_LookupAndClear(t *testing.T) {
	s := seeded(t)
	assert.Equal(t, []int{0, 3}, s.Lookup("king"))
	assert.Empty(t, s.Lookup("queen"))
	assert.Equal(t, 4, s.Len())

	l, ok := s.Label(3)
	assert.True(t, ok)
	assert.Equal(t, "Chinese", l.Secondary)
	_, ok = s.Label(9)
	assert.False(t, ok)

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Lookup("king"))
}

func TestStorage_Errors(t *testing.T) {
	s := NewStorage()
	assert.Error(t, s.Init(0))
	require.NoError(t, s.Init(2))
	assert.Error(t, s.Upsert([]domain.LabelRecord{{Primary: "a"}}, nil))
	assert.Error(t, s.Upsert([]domain.LabelRecord{{Primary: "a"}}, [][]float64{{1, 2, 3}}))
	_, err := s.SearchRow(0, 1)
	assert.Error(t, err)
}

// Run with -race: Search reads the dimension while Init replaces it.
func TestStorage_SearchDuringInit(t *testing.T) {
	s := seeded(t)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = s.Init(2)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, err := s.Search([]float64{1, 0}, 2)
			assert.NoError(t, err)
		}
	}()
	wg.Wait()
	_, err := s.Search([]float64{1, 0, 0}, 2)
	assert.Error(t, err)
}
