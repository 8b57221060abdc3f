// Package models содержит доменные сущности discussions-сервиса.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Message — внутренняя доменная модель сообщения дискуссии (MongoDB).
// Важно:
//   - ID — ObjectID MongoDB. Наружу/вовнутрь конвертируется в string.
//   - DAOID/AuthorID — UUID из смежных сервисов (daos-service/users-service).
//   - RootID — ObjectID корня ветки; пустая строка означает, что сообщение
//     само является корнем. Ответ всегда индексируется на корень, даже если
//     ReplyToID указывает на другой ответ (выравнивание в два уровня).
//   - ReplyToID/ReplyToAuthor — указатель «ответ на …» только для отображения;
//     в индексации не участвует.
//   - IsDeleted/DeletedAt — мягкое удаление; строка остаётся адресуемой по id
//     (обход предков), но исключается из выдач и счётчиков.
//   - CreatedAt — единственный ключ сортировки; MongoDB DateTime хранит
//     миллисекунды, ничья разрешается по id.
type Message struct {
	ID            string
	DAOID         uuid.UUID
	AuthorID      uuid.UUID
	Body          string
	RootID        string
	ReplyToID     string
	ReplyToAuthor uuid.UUID
	IsDeleted     bool
	CreatedAt     time.Time
	DeletedAt     time.Time
}

// IsRoot сообщает, является ли сообщение корнем ветки.
func (m Message) IsRoot() bool {
	return m.RootID == ""
}

// Thread — корневое сообщение с общим числом ответов и превью первых из них.
// Replies упорядочены от старых к новым; порядок задаёт reply-индекс,
// а не физический порядок хранилища.
type Thread struct {
	Root       Message
	ReplyCount int64
	Replies    []Message
}

// ThreadPage — страница корневых веток DAO (новые дискуссии первыми).
type ThreadPage struct {
	Threads []Thread
	Total   int64
	Pages   int64
}

// ReplyPage — окно ответов одной ветки (старые первыми).
// NextCursor/PrevCursor — ранги для подзагрузки; nil означает край списка.
type ReplyPage struct {
	Items      []Message
	Total      int64
	NextCursor *int64
	PrevCursor *int64
}
