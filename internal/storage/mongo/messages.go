package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/models"
	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/storage"
)

// messageDoc — физическая схема документа коллекции messages.
// root_id хранится пустой строкой для корней: так один индекс покрывает и
// фильтр «только корни», и выборку ответов конкретной ветки.
type messageDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	DAOID         string             `bson:"dao_id"`
	AuthorID      string             `bson:"author_id"`
	Body          string             `bson:"body"`
	RootID        string             `bson:"root_id"`
	ReplyToID     string             `bson:"reply_to_id,omitempty"`
	ReplyToAuthor string             `bson:"reply_to_author_id,omitempty"`
	IsDeleted     bool               `bson:"is_deleted"`
	CreatedAt     time.Time          `bson:"created_at"`
	DeletedAt     *time.Time         `bson:"deleted_at,omitempty"`
}

// toMS — MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func docFromModel(msg models.Message) messageDoc {
	return messageDoc{
		DAOID:         msg.DAOID.String(),
		AuthorID:      msg.AuthorID.String(),
		Body:          msg.Body,
		RootID:        msg.RootID,
		ReplyToID:     msg.ReplyToID,
		ReplyToAuthor: uuidOrEmpty(msg.ReplyToAuthor),
		IsDeleted:     msg.IsDeleted,
		CreatedAt:     msg.CreatedAt,
	}
}

func (d messageDoc) toModel() models.Message {
	daoID, _ := uuid.Parse(d.DAOID)
	authorID, _ := uuid.Parse(d.AuthorID)

	var replyToAuthor uuid.UUID
	if d.ReplyToAuthor != "" {
		replyToAuthor, _ = uuid.Parse(d.ReplyToAuthor)
	}

	out := models.Message{
		ID:            d.ID.Hex(),
		DAOID:         daoID,
		AuthorID:      authorID,
		Body:          d.Body,
		RootID:        d.RootID,
		ReplyToID:     d.ReplyToID,
		ReplyToAuthor: replyToAuthor,
		IsDeleted:     d.IsDeleted,
		CreatedAt:     d.CreatedAt.UTC(),
	}

	if d.DeletedAt != nil {
		out.DeletedAt = d.DeletedAt.UTC()
	}

	return out
}

func uuidOrEmpty(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}

	return id.String()
}

// InsertMessage сохраняет сообщение с серверным CreatedAt (UTC, мс).
// Выравнивание root/reply-to выполняет сервисный слой; здесь документ
// записывается как есть.
func (m *Mongo) InsertMessage(ctx context.Context, msg models.Message) (*models.Message, error) {
	const op = "storage/mongo/InsertMessage"

	msg.CreatedAt = toMS(time.Now())
	msg.IsDeleted = false

	res, err := m.messages.InsertOne(ctx, docFromModel(msg))
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		// Mongo всегда возвращает ObjectID.
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	msg.ID = oid.Hex()
	return &msg, nil
}

// SoftDeleteMessage помечает сообщение удалённым, очищает тело и проставляет
// deleted_at. Возвращает состояние до удаления.
// Ошибки: storage.ErrNotFound — нет записи или уже удалена;
// storage.ErrUnauthorized — запрошено не автором.
func (m *Mongo) SoftDeleteMessage(ctx context.Context, id string, authorID uuid.UUID) (*models.Message, error) {
	const op = "storage/mongo/SoftDeleteMessage"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc messageDoc
	if err := m.messages.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: find: %w", op, err)
	}

	if doc.IsDeleted {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if doc.AuthorID != authorID.String() {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUnauthorized)
	}

	res, err := m.messages.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "is_deleted", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_deleted", Value: true},
			{Key: "body", Value: ""},
			{Key: "deleted_at", Value: toMS(time.Now())},
		}}},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Гонка с параллельным удалением: документ успели пометить между
	// чтением и обновлением.
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	out := doc.toModel()
	return &out, nil
}

// MessageByID возвращает сообщение по идентификатору, включая мягко удалённые.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) MessageByID(ctx context.Context, id string) (*models.Message, error) {
	const op = "storage/mongo/MessageByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc messageDoc
	if err := m.messages.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// MessagesByIDs возвращает неудалённые сообщения по набору id.
// Битые и отсутствующие идентификаторы пропускаются без ошибки — индекс
// может ссылаться на уже удалённые записи.
func (m *Mongo) MessagesByIDs(ctx context.Context, ids []string) (map[string]models.Message, error) {
	const op = "storage/mongo/MessagesByIDs"

	out := make(map[string]models.Message, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	if len(oids) == 0 {
		return out, nil
	}

	cur, err := m.messages.Find(ctx, bson.D{
		{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}},
		{Key: "is_deleted", Value: false},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc messageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		msg := doc.toModel()
		out[msg.ID] = msg
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return out, nil
}

// CountRoots — число неудалённых корневых сообщений DAO.
func (m *Mongo) CountRoots(ctx context.Context, daoID uuid.UUID) (int64, error) {
	const op = "storage/mongo/CountRoots"

	n, err := m.messages.CountDocuments(ctx, bson.D{
		{Key: "dao_id", Value: daoID.String()},
		{Key: "root_id", Value: ""},
		{Key: "is_deleted", Value: false},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: count: %w", op, err)
	}

	return n, nil
}

// ListRoots возвращает страницу неудалённых корней DAO.
// Сортировка: created_at DESC, _id DESC — свежие дискуссии первыми.
func (m *Mongo) ListRoots(ctx context.Context, daoID uuid.UUID, offset, limit int64) ([]models.Message, error) {
	const op = "storage/mongo/ListRoots"

	if limit <= 0 {
		return nil, nil
	}

	filter := bson.D{
		{Key: "dao_id", Value: daoID.String()},
		{Key: "root_id", Value: ""},
		{Key: "is_deleted", Value: false},
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	return m.findMessages(ctx, op, filter, findOpts)
}

// RepliesByRoot возвращает все неудалённые ответы ветки, старые первыми.
// Сортировка: created_at ASC, _id ASC — тот же порядок, что у reply-индекса.
func (m *Mongo) RepliesByRoot(ctx context.Context, rootID string) ([]models.Message, error) {
	const op = "storage/mongo/RepliesByRoot"

	rootID = strings.TrimSpace(rootID)
	if rootID == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	filter := bson.D{
		{Key: "root_id", Value: rootID},
		{Key: "is_deleted", Value: false},
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	return m.findMessages(ctx, op, filter, findOpts)
}

// RecentByAuthorExclusion — недавние неудалённые сообщения DAO от всех
// авторов, кроме excludeAuthorID, не старше since.
func (m *Mongo) RecentByAuthorExclusion(ctx context.Context, daoID uuid.UUID, excludeAuthorID uuid.UUID, since time.Time, limit int64) ([]models.Message, error) {
	const op = "storage/mongo/RecentByAuthorExclusion"

	if limit <= 0 {
		return nil, nil
	}

	filter := bson.D{
		{Key: "dao_id", Value: daoID.String()},
		{Key: "author_id", Value: bson.D{{Key: "$ne", Value: excludeAuthorID.String()}}},
		{Key: "created_at", Value: bson.D{{Key: "$gte", Value: toMS(since)}}},
		{Key: "is_deleted", Value: false},
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	return m.findMessages(ctx, op, filter, findOpts)
}

// findMessages — общий прогон курсора Find с декодированием в модели.
func (m *Mongo) findMessages(ctx context.Context, op string, filter bson.D, findOpts *options.FindOptions) ([]models.Message, error) {
	cur, err := m.messages.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Message
	for cur.Next(ctx) {
		var doc messageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}
