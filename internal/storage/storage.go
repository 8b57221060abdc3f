package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище (или уже удалена).
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized — операция запрошена не автором сообщения.
	ErrUnauthorized = errors.New("unauthorized")
)

// Storage описывает операции Message Store — источника истины по сообщениям.
// Reply-индекс является перестраиваемой проекцией поверх этих данных.
type Storage interface {
	// InsertMessage сохраняет сообщение и возвращает его с присвоенным ID
	// и нормализованным CreatedAt. RootID/ReplyToID/ReplyToAuthor должны
	// быть вычислены вызывающим слоем (выравнивание — зона сервиса).
	InsertMessage(ctx context.Context, msg models.Message) (*models.Message, error)

	// SoftDeleteMessage помечает сообщение удалённым и очищает тело.
	// Возвращает состояние сообщения до удаления (нужен RootID для правки
	// индекса). Ошибки: ErrNotFound — нет записи или уже удалена;
	// ErrUnauthorized — authorID не совпадает с автором.
	SoftDeleteMessage(ctx context.Context, id string, authorID uuid.UUID) (*models.Message, error)

	// MessageByID возвращает сообщение по идентификатору, включая мягко
	// удалённые (обход предков должен видеть надгробия). Если записи нет
	// совсем — ErrNotFound.
	MessageByID(ctx context.Context, id string) (*models.Message, error)

	// MessagesByIDs возвращает неудалённые сообщения по набору id.
	// Отсутствующие и удалённые id молча пропускаются — индекс может
	// ненадолго отставать от хранилища.
	MessagesByIDs(ctx context.Context, ids []string) (map[string]models.Message, error)

	// CountRoots — число неудалённых корневых сообщений DAO.
	CountRoots(ctx context.Context, daoID uuid.UUID) (int64, error)

	// ListRoots — страница неудалённых корней DAO, created_at DESC
	// (ничья — по id DESC).
	ListRoots(ctx context.Context, daoID uuid.UUID, offset, limit int64) ([]models.Message, error)

	// RepliesByRoot — все неудалённые ответы ветки, created_at ASC.
	// Используется ресинком индекса; объём ограничен размером одной ветки.
	RepliesByRoot(ctx context.Context, rootID string) ([]models.Message, error)

	// RecentByAuthorExclusion — недавние неудалённые сообщения DAO от всех
	// авторов, кроме excludeAuthorID, не старше since, created_at DESC.
	// Контракт для смежных потребителей (эвристики злоупотреблений).
	RecentByAuthorExclusion(ctx context.Context, daoID uuid.UUID, excludeAuthorID uuid.UUID, since time.Time, limit int64) ([]models.Message, error)

	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
