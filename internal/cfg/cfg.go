package cfg

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
	"github.com/jimlawless/whereami"
)

// PublishMode определяет, как результат симуляции уходит в Kafka.
type PublishMode string

const (
	PublishDirect PublishMode = "direct" // сразу в Kafka
	PublishOutbox PublishMode = "outbox" // через таблицу outbox_events и воркер
)

type Config struct {
	Minio           *MinIOCfg
	Http            *HTTPConfig
	Db              *PGDBCfg
	Redis           *RedisCfg
	Kafka           *KafkaCfg
	Publish         *PublishCfg
	ShutdownTimeout time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type MinIOCfg struct {
	Enabled           bool   // Включена ли архивация результатов в MinIO
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Название бакета для архива симуляций
	MinioRootUser     string // Имя пользователя для доступа к Minio
	MinioRootPassword string // Пароль для доступа к Minio
	MinioUseSSL       bool
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PGDBCfg struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
	MaxConns       int32 // 0 - размер пула по умолчанию pgxpool
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	CatalogTTL  time.Duration
}

type PublishCfg struct {
	Mode             PublishMode
	Timeout          time.Duration
	OutboxBatchSize  int
	OutboxMaxRetries int

	// через сколько строка в processing считается брошенной и снова выдаётся воркерам
	OutboxProcessingTimeout time.Duration
}

// Load читает конфигурацию из окружения. Все некорректные переменные попадают в одну ошибку,
// чтобы неверный деплой исправлялся за один заход.
func Load(log logger.Logger) (*Config, error) {
	const defaultShutdownTimeout = 10 * time.Second

	env := &envReader{}
	config := &Config{
		Db:              loadPGDBCfg(env),
		Http:            loadHTTPConfig(env),
		Redis:           loadRedisCfg(env),
		Minio:           loadMinIOCfg(env),
		Kafka:           loadKafkaCfg(env),
		Publish:         loadPublishCfg(env),
		ShutdownTimeout: env.positiveDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if err := env.err(); err != nil {
		log.Errorf(err, "invalid configuration")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return config, nil
}

func loadKafkaCfg(env *envReader) *KafkaCfg {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	return &KafkaCfg{
		Brokers:           env.list("KAFKA_BROKERS"),
		Topic:             env.required("KAFKA_TOPIC"),
		Partitions:        env.intInRange("KAFKA_PARTITIONS", defaultPartitions, 1, math.MaxInt32),
		ReplicationFactor: env.intInRange("REPLICATION_FACTOR", defaultReplicationFactor, 1, math.MaxInt16),
		NetworkMode:       env.str("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadMinIOCfg(env *envReader) *MinIOCfg {
	const (
		defaultEndpoint = "minio:9000"
		defaultBucket   = "simulacoes"
	)

	return &MinIOCfg{
		Enabled:           env.boolean("ARCHIVE_ENABLED", false),
		MinioEndpoint:     env.str("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        env.str("BUCKET_NAME", defaultBucket),
		MinioRootUser:     env.str("MINIO_ROOT_USER", ""),
		MinioRootPassword: env.str("MINIO_ROOT_PASSWORD", ""),
		MinioUseSSL:       env.boolean("MINIO_USE_SSL", false),
	}
}

func loadHTTPConfig(env *envReader) *HTTPConfig {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	return &HTTPConfig{
		Port:         env.str("HTTP_PORT", defaultPort),
		ReadTimeout:  env.positiveDuration("HTTP_READ_TIMEOUT", defaultReadTimeout),
		WriteTimeout: env.positiveDuration("HTTP_WRITE_TIMEOUT", defaultWriteTimeout),
		IdleTimeout:  env.positiveDuration("KEEP_ALIVE", defaultIdleTimeout),
	}
}

func loadPGDBCfg(env *envReader) *PGDBCfg {
	const (
		defaultHost           = "localhost"
		defaultPort           = "5432"
		defaultSSLMode        = "disable"
		defaultMigrationsPath = "db/migrations"
		defaultMaxConns       = 10
	)

	return &PGDBCfg{
		Host:           env.str("POSTGRES_HOST", defaultHost),
		Port:           env.str("POSTGRES_PORT", defaultPort),
		User:           env.required("POSTGRES_USER"),
		Password:       env.required("POSTGRES_PASSWORD"),
		DBName:         env.required("POSTGRES_DB"),
		SSLMode:        env.str("SSL_MODE", defaultSSLMode),
		MigrationsPath: env.str("MIGRATIONS_PATH", defaultMigrationsPath),
		MaxConns:       int32(env.intInRange("POSTGRES_MAX_CONNS", defaultMaxConns, 0, math.MaxInt32)),
	}
}

func loadRedisCfg(env *envReader) *RedisCfg {
	const (
		defaultAddr         = "localhost:6379"
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultCatalogTTL   = 5 * time.Minute
	)

	// go-redis не различает таймауты чтения и записи для кэша каталога: берётся больший.
	timeout := max(
		env.positiveDuration("READ_TIMEOUT", defaultReadTimeout),
		env.positiveDuration("WRITE_TIMEOUT", defaultWriteTimeout),
	)

	return &RedisCfg{
		Addr:        env.str("REDIS_ADDR", defaultAddr),
		Password:    env.str("REDIS_PASSWORD", ""),
		User:        env.str("REDIS_USER", ""),
		DB:          env.intInRange("REDIS_DB_ID", 0, 0, math.MaxInt32),
		MaxRetries:  env.intInRange("MAX_RETRIES", defaultMaxRetries, -1, math.MaxInt32),
		DialTimeout: env.positiveDuration("DIAL_TIMEOUT", defaultDialTimeout),
		Timeout:     timeout,
		CatalogTTL:  env.positiveDuration("CATALOG_TTL", defaultCatalogTTL),
	}
}

func loadPublishCfg(env *envReader) *PublishCfg {
	const (
		defaultTimeout           = 5 * time.Second
		defaultOutboxBatchSize   = 10
		defaultOutboxMaxRetries  = 3
		defaultProcessingTimeout = 5 * time.Minute
	)

	mode := PublishMode(strings.ToLower(env.str("PUBLISH_MODE", string(PublishOutbox))))
	if mode != PublishDirect && mode != PublishOutbox {
		env.fail("PUBLISH_MODE", e.Wrap(string(mode), e.ErrUnknownPublishMode))
	}

	return &PublishCfg{
		Mode:                    mode,
		Timeout:                 env.positiveDuration("PUBLISH_TIMEOUT", defaultTimeout),
		OutboxBatchSize:         env.intInRange("OUTBOX_BATCH_SIZE", defaultOutboxBatchSize, 1, math.MaxInt32),
		OutboxMaxRetries:        env.intInRange("OUTBOX_MAX_RETRIES", defaultOutboxMaxRetries, 0, math.MaxInt32),
		OutboxProcessingTimeout: env.positiveDuration("OUTBOX_PROCESSING_TIMEOUT", defaultProcessingTimeout),
	}
}

// envReader читает переменные окружения и копит ошибки вместо выхода на первой.
// При ошибке возвращается значение по умолчанию, чтобы чтение остальных продолжилось.
type envReader struct {
	errs []error
}

func (r *envReader) fail(key string, err error) {
	r.errs = append(r.errs, e.Wrap(key, err))
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}

func (r *envReader) str(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func (r *envReader) required(key string) string {
	v := os.Getenv(key)
	if v == "" {
		r.fail(key, e.ErrMissingEnvVariable)
	}
	return v
}

// list разбирает обязательный список через запятую, пустые элементы отбрасываются.
func (r *envReader) list(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		r.fail(key, e.ErrMissingEnvVariable)
	}
	return items
}

func (r *envReader) intInRange(key string, defaultValue, lo, hi int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		r.fail(key, fmt.Errorf("%w: %q, want integer in [%d, %d]", e.ErrIncorrectEnvVariable, v, lo, hi))
		return defaultValue
	}
	return n
}

func (r *envReader) positiveDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		r.fail(key, fmt.Errorf("%w: %q, want positive duration", e.ErrIncorrectEnvVariable, v))
		return defaultValue
	}
	return d
}

func (r *envReader) boolean(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, fmt.Errorf("%w: %q", e.ErrIncorrectEnvVariable, v))
		return defaultValue
	}
	return b
}
