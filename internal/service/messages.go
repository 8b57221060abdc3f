package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/clients/daos"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/models"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/storage"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/pkg/log"
)

// CreateMessageInput — создание корневого сообщения или ответа.
// Правила:
//   - если ReplyToID пуст, создаётся корень новой ветки;
//   - если ReplyToID не пуст, создаётся ответ; корень ветки вычисляется
//     выравниванием (см. CreateMessage), сколь угодно глубокая цепочка
//     reply-to индексируется на один корень;
//   - всегда обязательны: DAOID, AuthorID, Body.
type CreateMessageInput struct {
	DAOID     uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	ReplyToID string
}

// CreateMessage — бизнес-операция создания сообщения.
//
// Валидация:
//   - DAOID и AuthorID обязательны (uuid.Nil -> ErrInvalidArgument);
//   - DAO должен существовать (неизвестный -> ErrInvalidArgument);
//   - Body нормализуется (TrimSpace), длина 1..Limits.MaxBody рун.
//
// Выравнивание: root = replyTo.RootID, а если replyTo сам корень — replyTo.ID.
// Пустой результат вычисления — нарушенный инвариант, ErrInternal.
//
// Порядок записи: сначала Message Store, затем reply-индекс. Сбой между
// записями оставляет сообщение невидимым для счётчиков (занижение), а не
// висячую ссылку в индексе; дрейф чинится ресинком.
//
// Поведение/ошибки:
//   - ErrNotFound — указан ReplyToID, но сообщение отсутствует или удалено;
//   - ErrInternal — ошибки стораджа/индекса, нарушенные инварианты.
func (s *Service) CreateMessage(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	const op = "service/messages/CreateMessage"

	lg := log.From(ctx).With(
		"op", op,
		"dao_id", in.DAOID.String(),
		"author_id", in.AuthorID.String(),
		"reply_to_id", in.ReplyToID,
	)

	// Валидация базовых атрибутов.
	if in.DAOID == uuid.Nil {
		lg.Warn("invalid argument: empty dao_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.AuthorID == uuid.Nil {
		lg.Warn("invalid argument: empty author_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Body = strings.TrimSpace(in.Body)
	if in.Body == "" {
		lg.Warn("invalid argument: empty body")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if utf8.RuneCountInString(in.Body) > int(s.cfg.Limits.MaxBody) {
		lg.Warn("invalid argument: body too long")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	// Существование DAO (внешний коллаборатор).
	if _, err := s.daos.DAOByID(ctx, in.DAOID); err != nil {
		if errors.Is(err, daos.ErrNotFound) {
			lg.Warn("unknown dao")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		lg.Error("daos client error", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	msg := models.Message{
		DAOID:    in.DAOID,
		AuthorID: in.AuthorID,
		Body:     in.Body,
	}

	// Для ответа: разрешаем reply-to и вычисляем корень ветки.
	if in.ReplyToID = strings.TrimSpace(in.ReplyToID); in.ReplyToID != "" {
		replyTo, err := s.storage.MessageByID(ctx, in.ReplyToID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				lg.Warn("reply-to message not found")
				return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
			}

			lg.Error("storage error on MessageByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		if replyTo.IsDeleted {
			lg.Warn("reply-to message is deleted")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		rootID := replyTo.RootID
		if rootID == "" {
			rootID = replyTo.ID
		}

		if rootID == "" {
			// Недостижимо для валидного reply-to; тихое создание ответа-сироты хуже отказа.
			lg.Error("flattening produced empty root id", "reply_to_id", replyTo.ID)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		msg.RootID = rootID
		msg.ReplyToID = replyTo.ID
		msg.ReplyToAuthor = replyTo.AuthorID
	}

	result, err := s.storage.InsertMessage(ctx, msg)
	if err != nil {
		lg.Error("storage error on InsertMessage", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	// Вторая запись координируемой пары: индексация ответа на корень.
	if result.RootID != "" {
		if err := s.index.Add(ctx, result.RootID, result.ID, result.CreatedAt.UnixMilli()); err != nil {
			// Сообщение уже в хранилище: занижение счётчика до ресинка.
			lg.Error("index add failed, reply invisible until resync",
				"message_id", result.ID,
				"root_id", result.RootID,
				"err", err,
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// DeleteMessage — мягкое удаление сообщения его автором.
//
// Для ответа из индекса корня убирается одна запись. Для корня индекс ветки
// удаляется целиком: неудалённые ответы остаются в хранилище, но становятся
// недостижимы через листинги. Поведение исходного продукта сохранено
// намеренно и ждёт продуктового решения — см. DESIGN.md.
//
// Поведение/ошибки:
//   - ErrNotFound — сообщение не найдено или уже удалено;
//   - ErrUnauthorized — запрошено не автором;
//   - ErrInternal — иные ошибки стораджа/индекса.
func (s *Service) DeleteMessage(ctx context.Context, id string, authorID uuid.UUID) error {
	const op = "service/messages/DeleteMessage"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id, "author_id", authorID.String())

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if authorID == uuid.Nil {
		lg.Warn("invalid argument: empty author_id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	deleted, err := s.storage.SoftDeleteMessage(ctx, id, authorID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("message not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrUnauthorized):
			lg.Warn("delete by non-author rejected")
			return fmt.Errorf("%s: %w", op, ErrUnauthorized)
		default:
			lg.Error("storage error on SoftDeleteMessage", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if deleted.IsRoot() {
		if err := s.index.DeleteAll(ctx, deleted.ID); err != nil {
			lg.Error("index delete-all failed, stale entries until resync", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}

		return nil
	}

	if err := s.index.Remove(ctx, deleted.RootID, deleted.ID); err != nil {
		lg.Error("index remove failed, stale entry until resync",
			"root_id", deleted.RootID,
			"err", err,
		)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}
