package history_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testKey = "@test_history"

type MockKV struct {
	mock.Mock
}

func (m *MockKV) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockKV) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func newStore(t *testing.T, kv *MockKV) *history.Store {
	t.Helper()
	kv.On("Get", mock.Anything, testKey).Return("", domain.ErrKeyNotFound).Once()
	s := history.NewStore(kv, testKey)
	_, err := s.Load(t.Context())
	require.NoError(t, err)
	return s
}

func TestStoreRecord(t *testing.T) {
	t.Run("MoveToFront", func(t *testing.T) {
		kv := new(MockKV)
		s := newStore(t, kv)
		kv.On("Set", mock.Anything, testKey, mock.Anything).Return(nil)

		for _, q := range []string{"abc", "xyz", "abc"} {
			_, err := s.Record(t.Context(), q)
			require.NoError(t, err)
		}

		assert.Equal(t, []string{"abc", "xyz"}, s.Entries())
		kv.AssertCalled(t, "Set", mock.Anything, testKey, `["abc","xyz"]`)
	})

	t.Run("Limit", func(t *testing.T) {
		kv := new(MockKV)
		s := newStore(t, kv)
		kv.On("Set", mock.Anything, testKey, mock.Anything).Return(nil)

		for i := range 11 {
			_, err := s.Record(t.Context(), fmt.Sprintf("q%d", i))
			require.NoError(t, err)
		}

		want := []string{"q10", "q9", "q8", "q7", "q6", "q5", "q4", "q3", "q2", "q1"}
		assert.Equal(t, want, s.Entries())
		assert.Len(t, s.Entries(), domain.MaxSearchHistory)
		kv.AssertNumberOfCalls(t, "Set", 11)
		kv.AssertCalled(t, "Set", mock.Anything, testKey,
			`["q10","q9","q8","q7","q6","q5","q4","q3","q2","q1"]`)
	})

	t.Run("ReselectOldestKeepsAll", func(t *testing.T) {
		kv := new(MockKV)
		s := newStore(t, kv)
		kv.On("Set", mock.Anything, testKey, mock.Anything).Return(nil)

		for i := range 10 {
			_, err := s.Record(t.Context(), fmt.Sprintf("q%d", i))
			require.NoError(t, err)
		}
		entries, err := s.Record(t.Context(), "q0")
		require.NoError(t, err)

		assert.Equal(t,
			[]string{"q0", "q9", "q8", "q7", "q6", "q5", "q4", "q3", "q2", "q1"},
			entries,
		)
	})

	t.Run("Empty", func(t *testing.T) {
		kv := new(MockKV)
		s := newStore(t, kv)

		_, err := s.Record(t.Context(), "")
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
		kv.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("WriteFailureKeepsMemoryState", func(t *testing.T) {
		kv := new(MockKV)
		s := newStore(t, kv)
		kv.On("Set", mock.Anything, testKey, `["abc"]`).
			Return(errors.New("unavailable")).Once()

		entries, err := s.Record(t.Context(), "abc")
		assert.ErrorIs(t, err, domain.ErrPersistenceWrite)
		assert.Equal(t, []string{"abc"}, entries)
		assert.Equal(t, []string{"abc"}, s.Entries())
	})
}

func TestStoreLoad(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		getErr  error
		want    []string
		wantErr error
	}{
		{name: "Missing", getErr: domain.ErrKeyNotFound, want: []string{}},
		{name: "Existing", raw: `["b","a"]`, want: []string{"b", "a"}},
		{
			name: "NormalizesStoredData",
			raw:  `["a","","a","b","c","d","e","f","g","h","i","j","k"]`,
			want: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
		},
		{
			name:    "Malformed",
			raw:     `not json`,
			want:    []string{},
			wantErr: domain.ErrPersistenceRead,
		},
		{
			name:    "ReadFailure",
			getErr:  errors.New("io"),
			want:    []string{},
			wantErr: domain.ErrPersistenceRead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := new(MockKV)
			kv.On("Get", mock.Anything, testKey).Return(tt.raw, tt.getErr)

			s := history.NewStore(kv, testKey)
			entries, err := s.Load(t.Context())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, entries)
			assert.Equal(t, tt.want, s.Entries())
		})
	}
}

func TestStoreClear(t *testing.T) {
	kv := new(MockKV)
	s := newStore(t, kv)
	kv.On("Set", mock.Anything, testKey, `["abc"]`).Return(nil).Once()
	kv.On("Set", mock.Anything, testKey, `[]`).Return(nil).Once()

	_, err := s.Record(t.Context(), "abc")
	require.NoError(t, err)

	require.NoError(t, s.Clear(t.Context()))
	assert.Empty(t, s.Entries())
	kv.AssertExpectations(t)
}

func TestStoreWaitsForLoad(t *testing.T) {
	t.Run("RecordBeforeLoad", func(t *testing.T) {
		kv := new(MockKV)
		s := history.NewStore(kv, testKey)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := s.Record(ctx, "z")
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, s.Clear(ctx), context.Canceled)
		kv.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RecordKeepsPersistedEntries", func(t *testing.T) {
		kv := new(MockKV)
		kv.On("Get", mock.Anything, testKey).Return(`["a","b","c"]`, nil).Once()
		kv.On("Set", mock.Anything, testKey, `["z","a","b","c"]`).Return(nil).Once()
		s := history.NewStore(kv, testKey)

		done := make(chan []string)
		go func() {
			entries, err := s.Record(t.Context(), "z")
			assert.NoError(t, err)
			done <- entries
		}()

		_, err := s.Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "a", "b", "c"}, <-done)
		kv.AssertExpectations(t)
	})

	t.Run("CancelledLoadIsRetried", func(t *testing.T) {
		kv := new(MockKV)
		kv.On("Get", mock.Anything, testKey).Return("", context.Canceled).Once()
		kv.On("Get", mock.Anything, testKey).Return(`["a"]`, nil).Once()
		s := history.NewStore(kv, testKey)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := s.Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, s.Loaded())

		entries, err := s.Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, entries)
		assert.True(t, s.Loaded())
	})

	t.Run("Once", func(t *testing.T) {
		kv := new(MockKV)
		s := newStore(t, kv)

		_, err := s.Load(t.Context())
		require.NoError(t, err)
		kv.AssertNumberOfCalls(t, "Get", 1)
	})
}
