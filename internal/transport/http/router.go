package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/service"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/transport/http/handlers"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // счётчик/гистограмма запросов
		middleware.UserID(),             // вынимаем X-User-Id в контекст
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	root.Route("/v1", func(r chi.Router) {
		r.Post("/daos/{dao_id}/messages", h.CreateMessage)
		r.Get("/daos/{dao_id}/threads", h.ListThreads)
		r.Post("/daos/{dao_id}/replies/resync", h.ResyncIndex)

		r.Delete("/messages/{id}", h.DeleteMessage)
		r.Get("/messages/{id}/replies", h.ListReplies)
		r.Get("/messages/{id}/ancestors", h.MessageAncestors)
	})

	return root
}
