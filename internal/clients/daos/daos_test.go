package daos

// Тесты HTTP-клиента daos-сервиса: маппинг статусов и разбор тела.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestNewHTTP_EmptyBaseURL — пустой адрес невалиден.
func TestNewHTTP_EmptyBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewHTTP("   ", time.Second)
	require.Error(t, err)
}

// TestDAOByID_OK — 200 с корректным телом.
func TestDAOByID_OK(t *testing.T) {
	t.Parallel()

	daoID := uuid.New()
	ownerID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/daos/"+daoID.String(), r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(DAO{ID: daoID, OwnerID: ownerID})
	}))
	defer srv.Close()

	// Хвостовой слеш в базовом адресе должен обрезаться.
	c, err := NewHTTP(srv.URL+"/", time.Second)
	require.NoError(t, err)

	got, err := c.DAOByID(context.Background(), daoID)
	require.NoError(t, err)
	require.Equal(t, daoID, got.ID)
	require.Equal(t, ownerID, got.OwnerID)
}

// TestDAOByID_NotFound — 404 транслируется в ErrNotFound.
func TestDAOByID_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such dao", http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := NewHTTP(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.DAOByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

// TestDAOByID_UnexpectedStatus — 5xx не маскируется под NotFound.
func TestDAOByID_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewHTTP(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.DAOByID(context.Background(), uuid.New())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

// TestDAOByID_BrokenBody — 200 с битым JSON — ошибка декодирования.
func TestDAOByID_BrokenBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": 42`))
	}))
	defer srv.Close()

	c, err := NewHTTP(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.DAOByID(context.Background(), uuid.New())
	require.Error(t, err)
}

// TestDAOByID_ContextCancelled — отменённый контекст прерывает запрос.
func TestDAOByID_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewHTTP(srv.URL, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.DAOByID(ctx, uuid.New())
	require.Error(t, err)
}
