package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/pkg/log"
)

// ResyncReport — итог перестроения reply-индекса DAO.
type ResyncReport struct {
	Roots   int64
	Replies int64
}

// ResyncIndex перестраивает reply-индекс всех веток DAO из Message Store —
// источника истины. Восстановление после дрейфа (сбой между парой записей
// создания/удаления) и холодный старт индекса.
//
// Операция идемпотентна и безопасна при живом трафике: каждая ветка после
// перестроения согласована с хранилищем на момент своего прохода. Ответ,
// созданный параллельно с проходом по его ветке, доиндексируется обычным
// путём записи — Add идемпотентен.
//
// Корни сканируются батчами через обычный листинг; у каждого корня индекс
// сносится целиком и наполняется заново из неудалённых ответов.
func (s *Service) ResyncIndex(ctx context.Context, daoID uuid.UUID) (*ResyncReport, error) {
	const op = "service/resync/ResyncIndex"

	lg := log.From(ctx).With("op", op, "dao_id", daoID.String())

	if daoID == uuid.Nil {
		lg.Warn("invalid argument: empty dao_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	batch := int64(s.cfg.Limits.Max)
	if batch <= 0 {
		batch = 300
	}

	var report ResyncReport

	for offset := int64(0); ; offset += batch {
		roots, err := s.storage.ListRoots(ctx, daoID, offset, batch)
		if err != nil {
			lg.Error("storage error on ListRoots", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		if len(roots) == 0 {
			break
		}

		for _, root := range roots {
			replies, err := s.storage.RepliesByRoot(ctx, root.ID)
			if err != nil {
				lg.Error("storage error on RepliesByRoot", "root_id", root.ID, "err", err)
				return nil, fmt.Errorf("%s: %w", op, ErrInternal)
			}

			if err := s.index.DeleteAll(ctx, root.ID); err != nil {
				lg.Error("index delete-all failed", "root_id", root.ID, "err", err)
				return nil, fmt.Errorf("%s: %w", op, ErrInternal)
			}

			for _, reply := range replies {
				if err := s.index.Add(ctx, root.ID, reply.ID, reply.CreatedAt.UnixMilli()); err != nil {
					lg.Error("index add failed",
						"root_id", root.ID,
						"reply_id", reply.ID,
						"err", err,
					)
					return nil, fmt.Errorf("%s: %w", op, ErrInternal)
				}
			}

			report.Roots++
			report.Replies += int64(len(replies))
		}

		if int64(len(roots)) < batch {
			break
		}
	}

	lg.Info("reply index resynced", "roots", report.Roots, "replies", report.Replies)

	return &report, nil
}
