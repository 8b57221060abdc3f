// Package daos — клиент внешнего daos-сервиса.
//
// Движку дискуссий от DAO нужны только проверка существования и владелец;
// остальное (формы запуска токена, биндинг репозитория) — чужая зона.
package daos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound — DAO с таким id не существует.
var ErrNotFound = errors.New("dao not found")

// DAO — минимальная проекция сущности DAO для движка дискуссий.
type DAO struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`
}

// Client — контракт проверки существования DAO.
type Client interface {
	// DAOByID возвращает DAO по идентификатору.
	// Если DAO не существует — ErrNotFound.
	DAOByID(ctx context.Context, id uuid.UUID) (*DAO, error)
}

type httpClient struct {
	base string
	hc   *http.Client
}

// NewHTTP создаёт HTTP-клиент daos-сервиса (GET {base}/v1/daos/{id}).
func NewHTTP(baseURL string, timeout time.Duration) (Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("daos: empty base url")
	}

	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &httpClient{
		base: baseURL,
		hc:   &http.Client{Timeout: timeout},
	}, nil
}

func (c *httpClient) DAOByID(ctx context.Context, id uuid.UUID) (*DAO, error) {
	const op = "clients/daos/DAOByID"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/v1/daos/"+id.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// разбор ниже.
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var out DAO
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return &out, nil
}
