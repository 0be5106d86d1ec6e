package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// sqlIdentRe matches ids usable as an unescaped Postgres schema or table name.
var sqlIdentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("sqlident", func(fl validator.FieldLevel) bool {
		return sqlIdentRe.MatchString(fl.Field().String())
	})
	return v
}

type (
	APP struct {
		Name string `validate:"required"`
		Host string
		Port string `validate:"required,numeric"`
		Env  string
	}
	// Backend describes the storage backend the file actions run against.
	Backend struct {
		Endpoint          string `validate:"required,url"`
		ProjectID         string `validate:"required"`
		SecretKey         string `validate:"required"`
		DatabaseID        string `validate:"required,sqlident"`
		FilesCollectionID string `validate:"required,sqlident,nefield=UsersCollectionID"`
		UsersCollectionID string `validate:"required,sqlident"`
		BucketID          string `validate:"required"`
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	S3 struct {
		Region          string `validate:"required"`
		AccessKeyID     string
		SecretAccessKey string
		Endpoint        string `validate:"omitempty,url"`
		UsePathStyle    bool
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string `validate:"required"`
		ExchangeType string `validate:"required,oneof=direct fanout topic"`
		QueueName    string `validate:"required"`
	}

	Config struct {
		App     APP
		Backend Backend
		DB      DB
		S3      S3
		MQ      MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func Load() Config {
	app := APP{
		Name: getEnv("SERVICE_NAME", "storeit"),
		Host: getEnv("SERVICE_HOST", ""),
		Port: getEnv("SERVICE_PORT", "8080"),
		Env:  getEnv("SERVICE_ENV", ""),
	}
	backend := Backend{
		Endpoint:          getEnv("BACKEND_ENDPOINT", ""),
		ProjectID:         getEnv("BACKEND_PROJECT_ID", ""),
		SecretKey:         getEnv("BACKEND_SECRET_KEY", ""),
		DatabaseID:        getEnv("BACKEND_DATABASE_ID", "public"),
		FilesCollectionID: getEnv("BACKEND_FILES_COLLECTION_ID", "files"),
		UsersCollectionID: getEnv("BACKEND_USERS_COLLECTION_ID", "users"),
		BucketID:          getEnv("BACKEND_BUCKET_ID", ""),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	s3 := S3{
		Region:          getEnv("S3_REGION", "us-east-1"),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		UsePathStyle:    getEnvBool("S3_USE_PATH_STYLE", false),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "storeit.revalidate"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "storeit.revalidate.paths"),
	}

	return Config{
		App:     app,
		Backend: backend,
		DB:      db,
		S3:      s3,
		MQ:      mq,
	}
}

// Validate reports the first missing or malformed setting.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("config %s: failed on '%s' (value: %v)", e.Namespace(), e.Tag(), e.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
