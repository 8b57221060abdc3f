// Package replyindex описывает reply-индекс — упорядоченную проекцию
// «корень -> ответы» поверх Message Store.
//
// Индекс не является источником истины: он даёт O(1) счётчик и оконную
// выборку ответов без обращения к хранилищу и целиком перестраивается
// ресинком из Message Store.
package replyindex

import "context"

// Index — контракт упорядоченной коллекции ответов на один корень.
// Score — момент создания ответа в миллисекундах Unix; при равных score
// порядок детерминирован лексикографически по id ответа.
type Index interface {
	// Add добавляет ответ в индекс корня. Повторный Add того же replyID
	// идемпотентен и не меняет исходный score.
	Add(ctx context.Context, rootID, replyID string, score int64) error

	// Remove удаляет один ответ из индекса корня.
	Remove(ctx context.Context, rootID, replyID string) error

	// DeleteAll удаляет индекс корня целиком (удаление корневого сообщения,
	// первая фаза ресинка).
	DeleteAll(ctx context.Context, rootID string) error

	// Count — текущее число ответов в индексе корня.
	Count(ctx context.Context, rootID string) (int64, error)

	// WindowOldestFirst возвращает id ответов с рангами
	// [start, start+count), ранг 0 — самый старый ответ.
	WindowOldestFirst(ctx context.Context, rootID string, start, count int64) ([]string, error)

	// Close закрывает ресурсы индекса.
	Close() error
}
