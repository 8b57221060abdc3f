package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/service"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/transport/http/apierr"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/transport/http/middleware"
)

// createMessageRequest — тело POST /v1/daos/{dao_id}/messages.
type createMessageRequest struct {
	Body      string `json:"body"`
	ReplyToID string `json:"reply_to_id,omitempty"`
}

// CreateMessage — создание корневого сообщения или ответа.
// Автор берётся из X-User-Id (контекст), DAO — из пути.
func (h *Handlers) CreateMessage(w http.ResponseWriter, r *http.Request) {
	authorID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierr.WriteError(w, r, apierr.ErrUnauthenticated)
		return
	}

	daoID, err := uuid.Parse(chi.URLParam(r, "dao_id"))
	if err != nil {
		apierr.WriteError(w, r, errInvalidArgument())
		return
	}

	var in createMessageRequest
	if err := decodeStrict(r, &in); err != nil {
		apierr.WriteError(w, r, errInvalidArgument())
		return
	}

	msg, err := h.service.CreateMessage(r.Context(), service.CreateMessageInput{
		DAOID:     daoID,
		AuthorID:  authorID,
		Body:      in.Body,
		ReplyToID: in.ReplyToID,
	})
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMessageView(*msg))
}

// DeleteMessage — мягкое удаление сообщения его автором.
// Успех — 204 без тела.
func (h *Handlers) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	authorID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierr.WriteError(w, r, apierr.ErrUnauthenticated)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		apierr.WriteError(w, r, errInvalidArgument())
		return
	}

	if err := h.service.DeleteMessage(r.Context(), id, authorID); err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
