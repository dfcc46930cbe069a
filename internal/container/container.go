package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/data-labeling-backend/config"
	"github.com/oksasatya/data-labeling-backend/internal/infrastructure/memory"
	"github.com/oksasatya/data-labeling-backend/pkg/helpers"
)

// Process-wide singletons set up by cmd/main.go. The router reads them when
// it builds the feature modules. Optional clients stay nil when disabled.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	memStore    *memory.Store
	redisClient *redis.Client
	rabbitPub   *helpers.RabbitPublisher
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		return helpers.NewDiscardLogger()
	}
	return logger
}
func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }

// GetMemoryStore lazily creates the in-process store used by STORE_DRIVER=memory.
func GetMemoryStore() *memory.Store {
	if memStore == nil {
		memStore = memory.NewStore()
	}
	return memStore
}
func SetMemoryStore(s *memory.Store) { memStore = s }

func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
