package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/avdeevaa/go-dao-launchpad/discussions-service/internal/config"
)

const (
	messagesCollection = "messages"
	defaultDBName      = "discussions"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg      *config.Config
	client   *mongodriver.Client
	db       *mongodriver.Database
	messages *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение, подготавливает коллекции
// и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := databaseFromURI(cfg.DB.URL)
	db := cli.Database(dbName)

	m := &Mongo{
		cfg:      cfg,
		client:   cli,
		db:       db,
		messages: db.Collection(messagesCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создаёт индексы, необходимые discussions-сервису:
//   - список корней DAO: dao_id + root_id + created_at(desc);
//   - чтение ветки для ресинка: root_id + is_deleted + created_at(asc);
//   - выборка «недавние чужие сообщения»: dao_id + author_id + created_at(desc).
func (m *Mongo) ensureIndexes(ctx context.Context) error {

	models := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "dao_id", Value: 1}, {Key: "root_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("dao_root_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "root_id", Value: 1}, {Key: "is_deleted", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("root_deleted_created_asc"),
		},
		{
			Keys:    bson.D{{Key: "dao_id", Value: 1}, {Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("dao_author_created_desc"),
		},
	}

	_, err := m.messages.Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}
	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддаётся разбору, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
