package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/models"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/storage"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/pkg/log"
)

// ListThreadsInput — параметры страницы дискуссий DAO.
// Page считается с нуля; значение за последней страницей прижимается к ней.
// PreviewLimit <= 0 означает лимит превью из конфигурации.
type ListThreadsInput struct {
	DAOID        uuid.UUID
	Page         int64
	PageSize     int32
	PreviewLimit int32
}

// ListRepliesInput — оконная выдача ответов одной ветки.
// Cursor — ранг первого ответа окна (0 = самый старый).
type ListRepliesInput struct {
	RootID string
	Cursor int64
	Limit  int32
}

// ListThreads — страница корневых сообщений DAO с числом ответов и превью
// первых PreviewLimit ответов для каждой ветки.
//
// Сборка: одна выборка корней из стораджа, затем параллельные count+window
// по индексу для каждого корня (вызовы независимы) и один bulk-запрос тел
// превью. Порядок превью диктует индекс; id, которых уже нет в сторадже
// (гонка с удалением), молча выпадают из превью.
//
// Пустая выдача — валидный результат, не ошибка.
func (s *Service) ListThreads(ctx context.Context, in ListThreadsInput) (*models.ThreadPage, error) {
	const op = "service/threads/ListThreads"

	lg := log.From(ctx).With("op", op, "dao_id", in.DAOID.String())

	if in.DAOID == uuid.Nil {
		lg.Warn("invalid argument: empty dao_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.Page < 0 {
		lg.Warn("invalid argument: negative page")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	pageSize := s.limitOrDefault(in.PageSize)

	preview := int64(in.PreviewLimit)
	if preview <= 0 {
		preview = int64(s.cfg.Limits.Preview)
	}

	total, err := s.storage.CountRoots(ctx, in.DAOID)
	if err != nil {
		lg.Error("storage error on CountRoots", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if total == 0 {
		return &models.ThreadPage{Threads: []models.Thread{}, Total: 0, Pages: 0}, nil
	}

	pages := (total + pageSize - 1) / pageSize

	// Прижимаем запрошенную страницу к последней существующей: запрос за
	// краем возвращает содержимое последней страницы, а не пустоту.
	page := in.Page
	if page >= pages {
		page = pages - 1
	}

	roots, err := s.storage.ListRoots(ctx, in.DAOID, page*pageSize, pageSize)
	if err != nil {
		lg.Error("storage error on ListRoots", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	// Fan-out: count и окно превью каждого корня независимы.
	counts := make([]int64, len(roots))
	previews := make([][]string, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			n, err := s.index.Count(gctx, root.ID)
			if err != nil {
				return fmt.Errorf("count %s: %w", root.ID, err)
			}
			counts[i] = n

			if preview <= 0 || n == 0 {
				return nil
			}

			ids, err := s.index.WindowOldestFirst(gctx, root.ID, 0, preview)
			if err != nil {
				return fmt.Errorf("window %s: %w", root.ID, err)
			}
			previews[i] = ids

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		lg.Error("index error on thread page fan-out", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	// Один bulk-запрос тел всех превью.
	var previewIDs []string
	for _, ids := range previews {
		previewIDs = append(previewIDs, ids...)
	}

	bodies, err := s.storage.MessagesByIDs(ctx, previewIDs)
	if err != nil {
		lg.Error("storage error on MessagesByIDs", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	stale := 0
	threads := make([]models.Thread, 0, len(roots))
	for i, root := range roots {
		replies := make([]models.Message, 0, len(previews[i]))
		for _, id := range previews[i] {
			msg, ok := bodies[id]
			if !ok {
				// Индекс чуть отстал от стораджа (удаление в полёте).
				stale++
				continue
			}
			replies = append(replies, msg)
		}

		threads = append(threads, models.Thread{
			Root:       root,
			ReplyCount: counts[i],
			Replies:    replies,
		})
	}

	if stale > 0 {
		lg.Warn("stale reply index entries skipped", "count", stale)
	}

	return &models.ThreadPage{
		Threads: threads,
		Total:   total,
		Pages:   pages,
	}, nil
}

// ListReplies — окно ответов ветки, старые первыми. Курсор — ранг в
// reply-индексе, а не номер страницы: список может расти во время чтения.
//
// Порядок выдачи авторитетно задаёт индекс. Ответы, удалённые между чтением
// индекса и bulk-запросом тел, выпадают из окна: вызывающий обязан
// переносить окна короче запрошенных.
func (s *Service) ListReplies(ctx context.Context, in ListRepliesInput) (*models.ReplyPage, error) {
	const op = "service/threads/ListReplies"

	in.RootID = strings.TrimSpace(in.RootID)
	lg := log.From(ctx).With("op", op, "root_id", in.RootID)

	if in.RootID == "" {
		lg.Warn("invalid argument: empty root_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.Cursor < 0 {
		lg.Warn("invalid argument: negative cursor")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	limit := s.limitOrDefault(in.Limit)

	total, err := s.index.Count(ctx, in.RootID)
	if err != nil {
		lg.Error("index error on Count", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	ids, err := s.index.WindowOldestFirst(ctx, in.RootID, in.Cursor, limit)
	if err != nil {
		lg.Error("index error on WindowOldestFirst", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	bodies, err := s.storage.MessagesByIDs(ctx, ids)
	if err != nil {
		lg.Error("storage error on MessagesByIDs", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	stale := 0
	items := make([]models.Message, 0, len(ids))
	for _, id := range ids {
		msg, ok := bodies[id]
		if !ok {
			stale++
			continue
		}
		items = append(items, msg)
	}

	if stale > 0 {
		lg.Warn("stale reply index entries skipped", "count", stale)
	}

	page := &models.ReplyPage{Items: items, Total: total}

	if next := in.Cursor + limit; next < total {
		page.NextCursor = &next
	}

	if prev := in.Cursor - limit; prev >= 0 {
		page.PrevCursor = &prev
	}

	return page, nil
}

// MessageWithAncestors восстанавливает цепочку «ответ на …» от сообщения к
// корню ветки для отображения. Возвращает цепочку от старшего к младшему;
// последним элементом идёт само запрошенное сообщение.
//
// Обход ограничен Limits.MaxAncestors и защищён от циклов: испорченные
// reply-to указатели деградируют до «показать, что есть» с warn-диагностикой,
// но не валят чтение. Мягко удалённый предок включается в цепочку надгробием
// (IsDeleted=true, пустое тело), обход продолжается к корню.
//
// Поведение/ошибки:
//   - ErrNotFound — запрошенное сообщение отсутствует или удалено;
//   - ErrInternal — ошибки стораджа, кроме «записи нет».
func (s *Service) MessageWithAncestors(ctx context.Context, id string) ([]models.Message, error) {
	const op = "service/threads/MessageWithAncestors"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	msg, err := s.storage.MessageByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("message not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on MessageByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if msg.IsDeleted {
		lg.Warn("message is deleted")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	maxDepth := int(s.cfg.Limits.MaxAncestors)

	chain := []models.Message{*msg}
	seen := map[string]struct{}{msg.ID: {}}

	for depth := 0; ; depth++ {
		if depth >= maxDepth {
			// Потолок глубины ограничивает работу на испорченных данных.
			lg.Warn("ancestor walk depth cap reached", "max", maxDepth)
			break
		}

		replyToID := chain[len(chain)-1].ReplyToID
		if replyToID == "" {
			break
		}

		ancestor, err := s.storage.MessageByID(ctx, replyToID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Висячий указатель: показываем собранную часть цепочки.
				lg.Warn("ancestor missing, chain truncated", "reply_to_id", replyToID)
				break
			}

			lg.Error("storage error on MessageByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		if _, ok := seen[ancestor.ID]; ok {
			lg.Warn("reply chain cycle detected", "message_id", ancestor.ID)
			break
		}

		chain = append(chain, *ancestor)
		seen[ancestor.ID] = struct{}{}
	}

	// Разворачиваем: от корня к запрошенному сообщению.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain, nil
}
