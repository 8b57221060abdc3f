// Package memory — reply-индекс в памяти процесса.
//
// Полный аналог redis-адаптера по контракту (включая порядок при равных
// score); используется в тестах сервисного слоя и для локального запуска
// без Redis.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/replyindex"
)

type entry struct {
	id    string
	score int64
}

// Memory реализует replyindex.Index поверх отсортированных срезов.
type Memory struct {
	mu    sync.RWMutex
	roots map[string][]entry
}

// New создаёт пустой индекс.
func New() *Memory {
	return &Memory{roots: make(map[string][]entry)}
}

var _ replyindex.Index = (*Memory)(nil)

// less — порядок ZSET: по score, при равенстве — лексикографически по id.
func less(a, b entry) bool {
	if a.score != b.score {
		return a.score < b.score
	}

	return a.id < b.id
}

// Add идемпотентен: существующий replyID сохраняет исходный score.
func (m *Memory) Add(_ context.Context, rootID, replyID string, score int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.roots[rootID]
	for _, e := range entries {
		if e.id == replyID {
			return nil
		}
	}

	e := entry{id: replyID, score: score}
	pos := sort.Search(len(entries), func(i int) bool { return !less(entries[i], e) })

	entries = append(entries, entry{})
	copy(entries[pos+1:], entries[pos:])
	entries[pos] = e
	m.roots[rootID] = entries

	return nil
}

func (m *Memory) Remove(_ context.Context, rootID, replyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.roots[rootID]
	for i, e := range entries {
		if e.id == replyID {
			m.roots[rootID] = append(entries[:i], entries[i+1:]...)
			break
		}
	}

	if len(m.roots[rootID]) == 0 {
		delete(m.roots, rootID)
	}

	return nil
}

func (m *Memory) DeleteAll(_ context.Context, rootID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.roots, rootID)
	return nil
}

func (m *Memory) Count(_ context.Context, rootID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.roots[rootID])), nil
}

func (m *Memory) WindowOldestFirst(_ context.Context, rootID string, start, count int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.roots[rootID]
	if count <= 0 || start < 0 || start >= int64(len(entries)) {
		return nil, nil
	}

	end := start + count
	if end > int64(len(entries)) {
		end = int64(len(entries))
	}

	out := make([]string, 0, end-start)
	for _, e := range entries[start:end] {
		out = append(out, e.id)
	}

	return out, nil
}

func (m *Memory) Close() error { return nil }
