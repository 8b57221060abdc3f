// apierr стандартизирует ответы об ошибках HTTP-слоя discussions-service.
// На вход принимает ошибку сервисного слоя (сентинелы service.Err*),
// на выход даёт корректный HTTP-статус и краткое безопасное message
// без утечки внутренних деталей.
package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/service"
)

// ErrUnauthenticated — запрос без идентификатора вызывающего (X-User-Id).
var ErrUnauthenticated = errors.New("unauthenticated")

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ:
//   - ErrUnauthenticated (нет X-User-Id) -> 401;
//   - ErrInvalidArgument (битые входные, неизвестный DAO) -> 400;
//   - ErrUnauthorized (удаление не автором) -> 403;
//   - ErrNotFound -> 404;
//   - context.DeadlineExceeded -> 504;
//   - прочее (включая ErrInternal и nil) -> 500/internal.
//
// err == nil — программная ошибка вызова: возвращаем 500, чтобы не послать
// "200 OK" с телом ошибки и не замаскировать баг.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := base(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func base(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden, "unauthorized", "unauthorized"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
