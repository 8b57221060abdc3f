package service

// Тесты сервисного слоя discussions-service (internal/service/messages.go).
//
//  Проверяем:
//  - валидацию входов (CreateMessage/DeleteMessage);
//  - маппинг ошибок storage/daos -> service (InvalidArgument / NotFound / Unauthorized / Internal);
//  - выравнивание ответа на корень ветки и порядок записи «сторедж -> индекс»;
//  - симметрию удаления: ответ убирает одну запись индекса, корень — весь индекс.
//
// Подготовка окружения:
//   # 1) Сгенерировать моки контрактов:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//   mockgen -source=./internal/replyindex/replyindex.go -destination=./mocks/replyindex.go -package=mocks
//   mockgen -source=./internal/clients/daos/daos.go -destination=./mocks/daos.go -package=mocks
//
//   # 2) Запустить тесты:
//   go test ./internal/service -v -race -count=1

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/clients/daos"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/config"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/models"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/storage"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/mocks"
)

// testConfig — конфигурация с дефолтными лимитами для юнит-тестов.
func testConfig() config.Config {
	return config.Config{
		Limits: config.LimitsConfig{
			Default:      20,
			Max:          300,
			Preview:      3,
			MaxBody:      256,
			MaxAncestors: 50,
		},
	}
}

// newServiceWithMocks — поднимает сервис с моками стораджа, индекса и daos-клиента.
func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockStorage, *mocks.MockIndex, *mocks.MockClient, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	mi := mocks.NewMockIndex(ctrl)
	md := mocks.NewMockClient(ctrl)
	s := &Service{storage: ms, index: mi, daos: md, cfg: testConfig()}
	return s, ms, mi, md, ctrl
}

// mustMessage — быстрый хелпер для сборки сообщения.
func mustMessage(id string, daoID uuid.UUID, rootID, replyToID string) *models.Message {
	return &models.Message{
		ID:        id,
		DAOID:     daoID,
		AuthorID:  uuid.New(),
		Body:      "hello",
		RootID:    rootID,
		ReplyToID: replyToID,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Валидация: пустые dao_id/author_id/body, слишком длинное body.
func TestService_CreateMessage_Validation(t *testing.T) {
	s, _, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	// empty dao_id
	_, err := s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: uuid.Nil, AuthorID: uuid.New(), Body: "x",
	})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// empty author_id
	_, err = s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: uuid.New(), AuthorID: uuid.Nil, Body: "x",
	})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// body -> TrimSpace -> пусто
	_, err = s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: uuid.New(), AuthorID: uuid.New(), Body: "   ",
	})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// body длиннее Limits.MaxBody (в рунах)
	_, err = s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: uuid.New(), AuthorID: uuid.New(), Body: strings.Repeat("ё", 257),
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Лимит тела считается в рунах, не в байтах: 256 кириллических символов валидны.
func TestService_CreateMessage_BodyLimitInRunes(t *testing.T) {
	s, ms, _, md, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	daoID := uuid.New()
	body := strings.Repeat("ё", 256)

	md.EXPECT().DAOByID(gomock.Any(), daoID).Return(&daos.DAO{ID: daoID}, nil)
	ms.EXPECT().
		InsertMessage(gomock.Any(), gomock.AssignableToTypeOf(models.Message{})).
		DoAndReturn(func(_ context.Context, m models.Message) (*models.Message, error) {
			require.Equal(t, body, m.Body)
			out := m
			out.ID = "64f000000000000000000001"
			out.CreatedAt = time.Now().UTC()
			return &out, nil
		})

	_, err := s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: daoID, AuthorID: uuid.New(), Body: body,
	})
	require.NoError(t, err)
}

// Неизвестный DAO — ошибка клиента, а не «ветка не найдена».
func TestService_CreateMessage_UnknownDAO(t *testing.T) {
	s, _, _, md, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	daoID := uuid.New()
	md.EXPECT().DAOByID(gomock.Any(), daoID).Return(nil, daos.ErrNotFound)

	_, err := s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: daoID, AuthorID: uuid.New(), Body: "hi",
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Недоступный daos-сервис — Internal, не InvalidArgument.
func TestService_CreateMessage_DAOSDown(t *testing.T) {
	s, _, _, md, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	daoID := uuid.New()
	md.EXPECT().DAOByID(gomock.Any(), daoID).Return(nil, errors.New("daos down"))

	_, err := s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: daoID, AuthorID: uuid.New(), Body: "hi",
	})
	require.ErrorIs(t, err, ErrInternal)
}

// Happy-path: корень новой ветки. Индекс не трогаем — у корня нет записи в ZSET.
func TestService_CreateMessage_OK_Root(t *testing.T) {
	s, ms, _, md, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	daoID := uuid.New()
	uid := uuid.New()

	md.EXPECT().DAOByID(gomock.Any(), daoID).Return(&daos.DAO{ID: daoID}, nil)
	ms.EXPECT().
		InsertMessage(gomock.Any(), gomock.AssignableToTypeOf(models.Message{})).
		DoAndReturn(func(_ context.Context, m models.Message) (*models.Message, error) {
			require.Equal(t, daoID, m.DAOID)
			require.Equal(t, uid, m.AuthorID)
			require.Equal(t, "hello", m.Body) // TrimSpace
			require.Empty(t, m.RootID)
			require.Empty(t, m.ReplyToID)
			out := m
			out.ID = "64f000000000000000000001"
			out.CreatedAt = time.Now().UTC()
			return &out, nil
		})

	got, err := s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: daoID, AuthorID: uid, Body: "  hello  ",
	})
	require.NoError(t, err)
	require.True(t, got.IsRoot())
}

// Happy-path: ответ на корень. Корень ветки — сам reply-to; после вставки
// сообщение индексируется на корень со score = CreatedAt в миллисекундах.
func TestService_CreateMessage_OK_ReplyToRoot(t *testing.T) {
	s, ms, mi, md, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	daoID := uuid.New()
	root := mustMessage("64f000000000000000000001", daoID, "", "")

	md.EXPECT().DAOByID(gomock.Any(), daoID).Return(&daos.DAO{ID: daoID}, nil)
	ms.EXPECT().MessageByID(gomock.Any(), root.ID).Return(root, nil)

	created := time.Now().UTC().Truncate(time.Millisecond)
	ms.EXPECT().
		InsertMessage(gomock.Any(), gomock.AssignableToTypeOf(models.Message{})).
		DoAndReturn(func(_ context.Context, m models.Message) (*models.Message, error) {
			require.Equal(t, root.ID, m.RootID)
			require.Equal(t, root.ID, m.ReplyToID)
			require.Equal(t, root.AuthorID, m.ReplyToAuthor)
			out := m
			out.ID = "64f000000000000000000002"
			out.CreatedAt = created
			return &out, nil
		})
	mi.EXPECT().
		Add(gomock.Any(), root.ID, "64f000000000000000000002", created.UnixMilli()).
		Return(nil)

	got, err := s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: daoID, AuthorID: uuid.New(), Body: "reply", ReplyToID: root.ID,
	})
	require.NoError(t, err)
	require.Equal(t, root.ID, got.RootID)
}

// Выравнивание: ответ на ответ индексируется на корень исходной ветки,
// а ReplyToID сохраняет непосредственного адресата.
func TestService_CreateMessage_OK_ReplyToReply_Flattens(t *testing.T) {
	s, ms, mi, md, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	daoID := uuid.New()
	rootID := "64f000000000000000000001"
	reply := mustMessage("64f000000000000000000002", daoID, rootID, rootID)

	md.EXPECT().DAOByID(gomock.Any(), daoID).Return(&daos.DAO{ID: daoID}, nil)
	ms.EXPECT().MessageByID(gomock.Any(), reply.ID).Return(reply, nil)
	ms.EXPECT().
		InsertMessage(gomock.Any(), gomock.AssignableToTypeOf(models.Message{})).
		DoAndReturn(func(_ context.Context, m models.Message) (*models.Message, error) {
			require.Equal(t, rootID, m.RootID) // не reply.ID!
			require.Equal(t, reply.ID, m.ReplyToID)
			out := m
			out.ID = "64f000000000000000000003"
			out.CreatedAt = time.Now().UTC()
			return &out, nil
		})
	mi.EXPECT().Add(gomock.Any(), rootID, "64f000000000000000000003", gomock.Any()).Return(nil)

	got, err := s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: daoID, AuthorID: uuid.New(), Body: "deep reply", ReplyToID: reply.ID,
	})
	require.NoError(t, err)
	require.Equal(t, rootID, got.RootID)
}

// Маппинг: reply-to отсутствует или удалён -> ErrNotFound.
func TestService_CreateMessage_ReplyToMissingOrDeleted(t *testing.T) {
	s, ms, _, md, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	daoID := uuid.New()

	// Отсутствует.
	md.EXPECT().DAOByID(gomock.Any(), daoID).Return(&daos.DAO{ID: daoID}, nil)
	ms.EXPECT().MessageByID(gomock.Any(), "64f000000000000000000009").Return(nil, storage.ErrNotFound)
	_, err := s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: daoID, AuthorID: uuid.New(), Body: "x", ReplyToID: "64f000000000000000000009",
	})
	require.ErrorIs(t, err, ErrNotFound)

	// Мягко удалён.
	tomb := mustMessage("64f000000000000000000010", daoID, "", "")
	tomb.IsDeleted = true
	md.EXPECT().DAOByID(gomock.Any(), daoID).Return(&daos.DAO{ID: daoID}, nil)
	ms.EXPECT().MessageByID(gomock.Any(), tomb.ID).Return(tomb, nil)
	_, err = s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: daoID, AuthorID: uuid.New(), Body: "x", ReplyToID: tomb.ID,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

// Сбой индексации после успешной вставки — Internal: сообщение останется
// невидимым для счётчиков до ресинка, но вызывающий должен узнать о сбое.
func TestService_CreateMessage_IndexAddFails(t *testing.T) {
	s, ms, mi, md, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	daoID := uuid.New()
	root := mustMessage("64f000000000000000000001", daoID, "", "")

	md.EXPECT().DAOByID(gomock.Any(), daoID).Return(&daos.DAO{ID: daoID}, nil)
	ms.EXPECT().MessageByID(gomock.Any(), root.ID).Return(root, nil)
	ms.EXPECT().
		InsertMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m models.Message) (*models.Message, error) {
			out := m
			out.ID = "64f000000000000000000002"
			out.CreatedAt = time.Now().UTC()
			return &out, nil
		})
	mi.EXPECT().Add(gomock.Any(), root.ID, gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, err := s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: daoID, AuthorID: uuid.New(), Body: "x", ReplyToID: root.ID,
	})
	require.ErrorIs(t, err, ErrInternal)
}

// Маппинг: ошибки стораджа при вставке -> Internal.
func TestService_CreateMessage_StorageInsertFails(t *testing.T) {
	s, ms, _, md, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	daoID := uuid.New()
	md.EXPECT().DAOByID(gomock.Any(), daoID).Return(&daos.DAO{ID: daoID}, nil)
	ms.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := s.CreateMessage(context.Background(), CreateMessageInput{
		DAOID: daoID, AuthorID: uuid.New(), Body: "x",
	})
	require.ErrorIs(t, err, ErrInternal)
}

// Валидация: пустой id и нулевой author_id.
func TestService_DeleteMessage_Validation(t *testing.T) {
	s, _, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	err := s.DeleteMessage(context.Background(), "   ", uuid.New())
	require.ErrorIs(t, err, ErrInvalidArgument)

	err = s.DeleteMessage(context.Background(), "64f000000000000000000001", uuid.Nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Маппинг: NotFound / Unauthorized / прочее -> Internal.
func TestService_DeleteMessage_Mapping(t *testing.T) {
	s, ms, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	id := "64f000000000000000000001"

	ms.EXPECT().SoftDeleteMessage(gomock.Any(), id, uid).Return(nil, storage.ErrNotFound)
	require.ErrorIs(t, s.DeleteMessage(context.Background(), id, uid), ErrNotFound)

	ms.EXPECT().SoftDeleteMessage(gomock.Any(), id, uid).Return(nil, storage.ErrUnauthorized)
	require.ErrorIs(t, s.DeleteMessage(context.Background(), id, uid), ErrUnauthorized)

	ms.EXPECT().SoftDeleteMessage(gomock.Any(), id, uid).Return(nil, errors.New("db down"))
	require.ErrorIs(t, s.DeleteMessage(context.Background(), id, uid), ErrInternal)
}

// Удаление корня сносит индекс ветки целиком.
func TestService_DeleteMessage_Root_DropsWholeIndex(t *testing.T) {
	s, ms, mi, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	root := mustMessage("64f000000000000000000001", uuid.New(), "", "")
	root.AuthorID = uid

	ms.EXPECT().SoftDeleteMessage(gomock.Any(), root.ID, uid).Return(root, nil)
	mi.EXPECT().DeleteAll(gomock.Any(), root.ID).Return(nil)

	require.NoError(t, s.DeleteMessage(context.Background(), root.ID, uid))
}

// Удаление ответа убирает ровно одну запись индекса его корня.
func TestService_DeleteMessage_Reply_RemovesOneEntry(t *testing.T) {
	s, ms, mi, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	rootID := "64f000000000000000000001"
	reply := mustMessage("64f000000000000000000002", uuid.New(), rootID, rootID)
	reply.AuthorID = uid

	ms.EXPECT().SoftDeleteMessage(gomock.Any(), reply.ID, uid).Return(reply, nil)
	mi.EXPECT().Remove(gomock.Any(), rootID, reply.ID).Return(nil)

	require.NoError(t, s.DeleteMessage(context.Background(), reply.ID, uid))
}

// Сбой индекса при удалении — Internal (дрейф до ресинка).
func TestService_DeleteMessage_IndexFails(t *testing.T) {
	s, ms, mi, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	root := mustMessage("64f000000000000000000001", uuid.New(), "", "")
	root.AuthorID = uid

	ms.EXPECT().SoftDeleteMessage(gomock.Any(), root.ID, uid).Return(root, nil)
	mi.EXPECT().DeleteAll(gomock.Any(), root.ID).Return(errors.New("redis down"))

	require.ErrorIs(t, s.DeleteMessage(context.Background(), root.ID, uid), ErrInternal)
}
