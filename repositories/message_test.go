package repositories

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"chatboard/domain"
)

func newTestRepository(t *testing.T) MessageRepository {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewMessageRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func Test_Store_And_List_Multiple_Messages(t *testing.T) {
	req := require.New(t)
	repository := newTestRepository(t)

	at := time.Now().UnixMilli()
	stored := []domain.Message{
		{ID: "id-1", Username: "Alice", Text: "first", Timestamp: at},
		{ID: "id-2", Username: "Bob", Text: "second", Timestamp: at + 1000},
		{ID: "id-3", Username: "Clara", Text: "third", Timestamp: at + 2000},
	}
	for _, message := range stored {
		req.NoError(repository.Store(message))
	}

	fetched, err := repository.List()
	req.NoError(err)
	req.Len(fetched, len(stored))
	// Newest first.
	req.Equal([]domain.Message{stored[2], stored[1], stored[0]}, fetched)
}

func Test_List_Empty_Store(t *testing.T) {
	req := require.New(t)
	repository := newTestRepository(t)

	fetched, err := repository.List()
	req.NoError(err)
	req.Empty(fetched)
}

func Test_List_Breaks_Timestamp_Ties_By_Id(t *testing.T) {
	req := require.New(t)
	repository := newTestRepository(t)

	at := time.Now().UnixMilli()
	req.NoError(repository.Store(domain.Message{ID: "aaa", Username: "Alice", Text: "x", Timestamp: at}))
	req.NoError(repository.Store(domain.Message{ID: "zzz", Username: "Bob", Text: "y", Timestamp: at}))

	fetched, err := repository.List()
	req.NoError(err)
	req.Len(fetched, 2)
	req.Equal("zzz", fetched[0].ID)
	req.Equal("aaa", fetched[1].ID)
}

func Test_List_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	repository := newTestRepository(t)

	at := time.Now().UnixMilli()
	for i := 0; i < 5; i++ {
		message := domain.Message{
			ID:        fmt.Sprintf("id-%d", i),
			Username:  "Alice",
			Text:      "again",
			Timestamp: at + int64(i),
		}
		req.NoError(repository.Store(message))
	}

	first, err := repository.List()
	req.NoError(err)
	second, err := repository.List()
	req.NoError(err)
	req.Equal(first, second)
}

func Test_Concurrent_Stores_All_Survive(t *testing.T) {
	req := require.New(t)
	repository := newTestRepository(t)

	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repository.Store(domain.NewMessage(fmt.Sprintf("user-%d", i), "race me"))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	fetched, err := repository.List()
	req.NoError(err)
	req.Len(fetched, writers)

	seen := make(map[string]bool, writers)
	for _, message := range fetched {
		req.False(seen[message.ID], "duplicate id %s", message.ID)
		seen[message.ID] = true
	}
}

func Test_List_Fails_On_Corrupt_Record(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()
	repository := NewMessageRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))

	req.NoError(db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("message:broken"), []byte("not json"))
	}))

	_, err = repository.List()
	req.Error(err)
}
