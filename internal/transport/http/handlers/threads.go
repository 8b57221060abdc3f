package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/service"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/transport/http/apierr"
)

// threadView — корень ветки с числом ответов и превью.
type threadView struct {
	Root       messageView   `json:"root"`
	ReplyCount int64         `json:"reply_count"`
	Replies    []messageView `json:"replies"`
}

type listThreadsResponse struct {
	Threads []threadView `json:"threads"`
	Total   int64        `json:"total"`
	Pages   int64        `json:"pages"`
}

type listRepliesResponse struct {
	Items      []messageView `json:"items"`
	Total      int64         `json:"total"`
	NextCursor *int64        `json:"next_cursor,omitempty"`
	PrevCursor *int64        `json:"prev_cursor,omitempty"`
}

type ancestorsResponse struct {
	Chain []messageView `json:"chain"`
}

type resyncResponse struct {
	Roots   int64 `json:"roots"`
	Replies int64 `json:"replies"`
}

// queryInt — разбор необязательного числового query-параметра (>= 0).
func queryInt(r *http.Request, name string) (int64, bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false, nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false, errInvalidArgument()
	}

	return n, true, nil
}

// ListThreads — страница дискуссий DAO.
// GET /v1/daos/{dao_id}/threads?page=&page_size=&preview=
func (h *Handlers) ListThreads(w http.ResponseWriter, r *http.Request) {
	daoID, err := uuid.Parse(chi.URLParam(r, "dao_id"))
	if err != nil {
		apierr.WriteError(w, r, errInvalidArgument())
		return
	}

	in := service.ListThreadsInput{DAOID: daoID}

	if n, ok, err := queryInt(r, "page"); err != nil {
		apierr.WriteError(w, r, err)
		return
	} else if ok {
		in.Page = n
	}

	if n, ok, err := queryInt(r, "page_size"); err != nil {
		apierr.WriteError(w, r, err)
		return
	} else if ok {
		in.PageSize = int32(n)
	}

	if n, ok, err := queryInt(r, "preview"); err != nil {
		apierr.WriteError(w, r, err)
		return
	} else if ok {
		in.PreviewLimit = int32(n)
	}

	page, err := h.service.ListThreads(r.Context(), in)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	out := listThreadsResponse{
		Threads: make([]threadView, 0, len(page.Threads)),
		Total:   page.Total,
		Pages:   page.Pages,
	}
	for _, t := range page.Threads {
		out.Threads = append(out.Threads, threadView{
			Root:       toMessageView(t.Root),
			ReplyCount: t.ReplyCount,
			Replies:    toMessageViews(t.Replies),
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// ListReplies — окно ответов ветки.
// GET /v1/messages/{id}/replies?cursor=&limit=
func (h *Handlers) ListReplies(w http.ResponseWriter, r *http.Request) {
	in := service.ListRepliesInput{RootID: chi.URLParam(r, "id")}
	if in.RootID == "" {
		apierr.WriteError(w, r, errInvalidArgument())
		return
	}

	if n, ok, err := queryInt(r, "cursor"); err != nil {
		apierr.WriteError(w, r, err)
		return
	} else if ok {
		in.Cursor = n
	}

	if n, ok, err := queryInt(r, "limit"); err != nil {
		apierr.WriteError(w, r, err)
		return
	} else if ok {
		in.Limit = int32(n)
	}

	page, err := h.service.ListReplies(r.Context(), in)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listRepliesResponse{
		Items:      toMessageViews(page.Items),
		Total:      page.Total,
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
	})
}

// MessageAncestors — цепочка «ответ на …» от корня к сообщению.
// GET /v1/messages/{id}/ancestors
func (h *Handlers) MessageAncestors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierr.WriteError(w, r, errInvalidArgument())
		return
	}

	chain, err := h.service.MessageWithAncestors(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ancestorsResponse{Chain: toMessageViews(chain)})
}

// ResyncIndex — перестроение reply-индекса DAO из Message Store.
// POST /v1/daos/{dao_id}/replies/resync
func (h *Handlers) ResyncIndex(w http.ResponseWriter, r *http.Request) {
	daoID, err := uuid.Parse(chi.URLParam(r, "dao_id"))
	if err != nil {
		apierr.WriteError(w, r, errInvalidArgument())
		return
	}

	report, err := h.service.ResyncIndex(r.Context(), daoID)
	if err != nil {
		apierr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resyncResponse{
		Roots:   report.Roots,
		Replies: report.Replies,
	})
}
