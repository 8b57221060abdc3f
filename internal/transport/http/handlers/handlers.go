// Реализация REST-эндпоинтов discussions-service.
//
// Маппинг ошибок сервиса в HTTP-статусы — в пакете apierr:
//
//	ErrInvalidArgument -> 400
//	ErrUnauthorized    -> 403
//	ErrNotFound        -> 404
//	прочее             -> 500
//
// Запрос без X-User-Id на мутирующих операциях -> 401.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/models"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	service *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{service: svc}
}

// messageView — наружное представление сообщения.
// Временные поля отдаются как unix-миллисекунды.
type messageView struct {
	ID            string `json:"id"`
	DAOID         string `json:"dao_id"`
	AuthorID      string `json:"author_id"`
	Body          string `json:"body"`
	RootID        string `json:"root_id,omitempty"`
	ReplyToID     string `json:"reply_to_id,omitempty"`
	ReplyToAuthor string `json:"reply_to_author_id,omitempty"`
	IsDeleted     bool   `json:"is_deleted,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

func toMessageView(m models.Message) messageView {
	out := messageView{
		ID:        m.ID,
		DAOID:     m.DAOID.String(),
		AuthorID:  m.AuthorID.String(),
		Body:      m.Body,
		RootID:    m.RootID,
		ReplyToID: m.ReplyToID,
		IsDeleted: m.IsDeleted,
		CreatedAt: m.CreatedAt.UnixMilli(),
	}

	if m.ReplyToID != "" {
		out.ReplyToAuthor = m.ReplyToAuthor.String()
	}

	return out
}

func toMessageViews(msgs []models.Message) []messageView {
	out := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageView(m))
	}

	return out
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — локальная ошибка разбора запроса -> 400.
func errInvalidArgument() error {
	return fmt.Errorf("handlers: %w", service.ErrInvalidArgument)
}
