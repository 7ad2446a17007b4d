package transport

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

const historyPrefix = "buf:"

// History retains buffered broadcast frames so late joiners can be replayed
// the full transcript. It runs Badger in memory: nothing survives a restart.
type History struct {
	mu  sync.Mutex
	db  *badger.DB
	log *slog.Logger
	seq uint64
}

func OpenHistory(log *slog.Logger) (*History, error) {
	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("open history buffer: %w", err)
	}
	return &History{db: db, log: log}, nil
}

// Append stores frame after every previously appended one.
// Keys are "buf:{seq}" with 19-digit padding so iteration order is append order.
func (h *History) Append(frame []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	key := fmt.Sprintf("%s%019d", historyPrefix, h.seq)
	return h.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), frame)
	})
}

// Replay calls fn for every stored frame in append order.
func (h *History) Replay(fn func(frame []byte) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(historyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var frame []byte
			err := it.Item().Value(func(value []byte) error {
				frame = append([]byte(nil), value...)
				return nil
			})
			if err != nil {
				return err
			}
			if err := fn(frame); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return int(h.seq)
}

func (h *History) Close() error {
	h.log.Debug("Closing history buffer", "frames", h.Len())
	return h.db.Close()
}
