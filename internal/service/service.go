// service содержит бизнес-логику discussions-сервиса: координацию записи
// (Message Store + reply-индекс) и сборку читаемых представлений веток.
package service

import (
	"errors"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/clients/daos"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/config"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/replyindex"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры запроса к сервису
	// (пустое/слишком длинное тело, несуществующий DAO, битые id).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сообщение отсутствует или удалено.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized — удаление запрошено не автором сообщения.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInternal — внутренняя ошибка (сторедж/индекс/нарушенный инвариант).
	ErrInternal = errors.New("internal")
)

// Service — бизнес-логика discussions-service.
// Хранилище и reply-индекс внедряются контрактами: в тестах сервис работает
// с моками и in-memory индексом без Mongo/Redis.
type Service struct {
	storage storage.Storage
	index   replyindex.Index
	daos    daos.Client
	cfg     config.Config
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, index replyindex.Index, daos daos.Client, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		index:   index,
		daos:    daos,
		cfg:     cfg,
	}
}

// limitOrDefault приводит запрошенный размер страницы к [Default, Max].
func (s *Service) limitOrDefault(pageSize int32) int64 {
	lim := pageSize
	if lim <= 0 {
		lim = s.cfg.Limits.Default
	}

	if lim > s.cfg.Limits.Max {
		lim = s.cfg.Limits.Max
	}

	return int64(lim)
}
