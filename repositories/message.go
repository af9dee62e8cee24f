package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"chatboard/domain"
)

// messagePrefix namespaces chat records inside the shared store.
// Keys are "message:{uuid}", a flat namespace with no secondary index:
// "all messages" is a plain prefix scan.
const messagePrefix = "message:"

type IMessageRepository interface {
	Store(message domain.Message) error
	List() ([]domain.Message, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// Store persists a message as an opaque JSON record keyed by its id.
// Every create writes a distinct key, so concurrent creates never
// contend on the same record.
func (m MessageRepository) Store(message domain.Message) error {
	bytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	key := []byte(messagePrefix + message.ID)
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, bytes)
	})
}

// List scans every record under the message prefix and returns them
// sorted by timestamp descending, newest first. Equal timestamps are
// ordered by id descending so the result order is deterministic.
// A record that fails to parse aborts the whole read: no partial results.
func (m MessageRepository) List() ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(messagePrefix)
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek([]byte(messagePrefix)); it.Valid(); it.Next() {
			item := it.Item()
			err := item.Value(func(value []byte) error {
				var message domain.Message
				if err := json.Unmarshal(value, &message); err != nil {
					return fmt.Errorf("corrupt record %q: %w", string(item.Key()), err)
				}
				if err := message.Validate(); err != nil {
					return fmt.Errorf("incomplete record %q: %w", string(item.Key()), err)
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(messages, func(i, j int) bool {
		if messages[i].Timestamp != messages[j].Timestamp {
			return messages[i].Timestamp > messages[j].Timestamp
		}
		return messages[i].ID > messages[j].ID
	})
	m.log.Debug("Listed messages", "count", len(messages))
	return messages, nil
}
