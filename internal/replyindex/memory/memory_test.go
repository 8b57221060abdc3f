package memory

// Тесты in-memory reply-индекса (internal/replyindex/memory).
//
// Контракт общий с redis-адаптером: порядок по score, при равенстве —
// лексикографически по id; Add идемпотентен; окна за краем — пустые.

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMemory_Add_OrdersByScore — ответы выдаются от старых к новым независимо
// от порядка вставки.
func TestMemory_Add_OrdersByScore(t *testing.T) {
	t.Parallel()

	m := New()
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "root", "c", 300))
	require.NoError(t, m.Add(ctx, "root", "a", 100))
	require.NoError(t, m.Add(ctx, "root", "b", 200))

	ids, err := m.WindowOldestFirst(ctx, "root", 0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, ids)
}

// TestMemory_Add_TieBreaksByID — при равных score порядок лексикографический.
func TestMemory_Add_TieBreaksByID(t *testing.T) {
	t.Parallel()

	m := New()
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "root", "zzz", 100))
	require.NoError(t, m.Add(ctx, "root", "aaa", 100))
	require.NoError(t, m.Add(ctx, "root", "mmm", 100))

	ids, err := m.WindowOldestFirst(ctx, "root", 0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"aaa", "mmm", "zzz"}, ids)
}

// TestMemory_Add_Idempotent — повторный Add не плодит дублей и не двигает score.
func TestMemory_Add_Idempotent(t *testing.T) {
	t.Parallel()

	m := New()
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "root", "a", 100))
	require.NoError(t, m.Add(ctx, "root", "b", 200))
	// Повтор с другим score — исходный порядок обязан сохраниться.
	require.NoError(t, m.Add(ctx, "root", "a", 999))

	n, err := m.Count(ctx, "root")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	ids, err := m.WindowOldestFirst(ctx, "root", 0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ids)
}

// TestMemory_Window_Bounds — срез окна: середина, край, за краем, нулевой размер.
func TestMemory_Window_Bounds(t *testing.T) {
	t.Parallel()

	m := New()
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, m.Add(ctx, "root", id, int64(i)*100))
	}

	ids, err := m.WindowOldestFirst(ctx, "root", 1, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, ids)

	// Окно шире остатка — прижимается к концу.
	ids, err = m.WindowOldestFirst(ctx, "root", 3, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"d", "e"}, ids)

	// Старт за последним рангом — пусто.
	ids, err = m.WindowOldestFirst(ctx, "root", 5, 1)
	require.NoError(t, err)
	require.Empty(t, ids)

	// Нулевой размер окна — пусто.
	ids, err = m.WindowOldestFirst(ctx, "root", 0, 0)
	require.NoError(t, err)
	require.Empty(t, ids)

	// Отрицательный старт — пусто, не паника.
	ids, err = m.WindowOldestFirst(ctx, "root", -1, 1)
	require.NoError(t, err)
	require.Empty(t, ids)
}

// TestMemory_Remove — удаление одной записи; отсутствующая запись — no-op.
func TestMemory_Remove(t *testing.T) {
	t.Parallel()

	m := New()
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "root", "a", 100))
	require.NoError(t, m.Add(ctx, "root", "b", 200))

	require.NoError(t, m.Remove(ctx, "root", "a"))
	require.NoError(t, m.Remove(ctx, "root", "nope"))

	n, err := m.Count(ctx, "root")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	ids, err := m.WindowOldestFirst(ctx, "root", 0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, ids)
}

// TestMemory_DeleteAll — индекс корня сносится целиком; соседние корни не трогаем.
func TestMemory_DeleteAll(t *testing.T) {
	t.Parallel()

	m := New()
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "r1", "a", 100))
	require.NoError(t, m.Add(ctx, "r2", "b", 100))

	require.NoError(t, m.DeleteAll(ctx, "r1"))

	n, err := m.Count(ctx, "r1")
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = m.Count(ctx, "r2")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

// TestMemory_Count_UnknownRoot — неизвестный корень: ноль без ошибки.
func TestMemory_Count_UnknownRoot(t *testing.T) {
	t.Parallel()

	m := New()

	n, err := m.Count(context.Background(), "ghost")
	require.NoError(t, err)
	require.Zero(t, n)
}
