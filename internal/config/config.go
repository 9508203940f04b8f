package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Minio    MinioConfig
	Upload   UploadConfig
	NATS     NATSConfig
	Database DatabaseConfig
	Server   ServerConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY" required:"true"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type UploadConfig struct {
	// MinPartSize is the backend's minimum multipart part size. Appends
	// below it are buffered until a full part can be flushed.
	MinPartSize int64 `envconfig:"UPLOAD_MIN_PART_SIZE" default:"5242880"` // 5MiB
	MaxSize     int64 `envconfig:"UPLOAD_MAX_SIZE" default:"5368709120"`   // 5GiB
	// KeyPrefix namespaces derived storage keys under the bucket.
	KeyPrefix            string        `envconfig:"UPLOAD_KEY_PREFIX" default:"uploads"`
	RequiredMetadata     []string      `envconfig:"UPLOAD_REQUIRED_METADATA" default:"filename,content-type"`
	AllowUnknownMetadata bool          `envconfig:"UPLOAD_ALLOW_UNKNOWN_METADATA" default:"true"`
	SessionTTL           time.Duration `envconfig:"UPLOAD_SESSION_TTL" default:"24h"`
	CleanupEvery         time.Duration `envconfig:"UPLOAD_CLEANUP_EVERY" default:"15m"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" required:"true"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"UPLOADS"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"uploads.completed"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"upload-verifier"`
	DeliverGroup string `envconfig:"NATS_DELIVER_GROUP" default:"verifiers"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
