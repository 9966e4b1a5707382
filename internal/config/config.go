package config

import "strconv"

type HTTPConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8080"`
}

type PostgresConfig struct {
	// Either DSN directly, or components to build it if DSN is empty.
	DSN      string `env:"DSN"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	DBName   string `env:"DBNAME" envDefault:"wastetrack"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

func (c PostgresConfig) EffectiveDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "postgres://" + c.User + ":" + c.Password +
		"@" + c.Host + ":" + strconv.Itoa(c.Port) +
		"/" + c.DBName + "?sslmode=" + c.SSLMode
}

type RedisConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"true"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type KafkaConfig struct {
	Enabled     bool     `env:"ENABLED" envDefault:"false"`
	Brokers     []string `env:"BROKERS" envSeparator:","`
	ClientID    string   `env:"CLIENT_ID" envDefault:"wastetrack-api"`
	GroupID     string   `env:"GROUP_ID" envDefault:"wastetrack"`
	TopicPrefix string   `env:"TOPIC_PREFIX" envDefault:"wastetrack."`
}

// UploadConfig controls where pickup photos are written.
type UploadConfig struct {
	Dir string `env:"DIR" envDefault:"public/uploads"`
}

// AdminSeedConfig is the admin account created at startup when none exists.
type AdminSeedConfig struct {
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD" envDefault:"admin1234"`
	Name     string `env:"NAME" envDefault:"System Admin"`
}

type ObservabilityConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"wastetrack-api"`
	ServiceEnv  string `env:"SERVICE_ENV" envDefault:"Development"`
	// e.g. "otel-collector:4317"
	OtelEndpoint string `env:"ENDPOINT"`
}

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"Development"`

	HTTP          HTTPConfig          `envPrefix:"HTTP_"`
	Postgres      PostgresConfig      `envPrefix:"PG_"`
	Redis         RedisConfig         `envPrefix:"REDIS_"`
	Kafka         KafkaConfig         `envPrefix:"KAFKA_"`
	Upload        UploadConfig        `envPrefix:"UPLOAD_"`
	Admin         AdminSeedConfig     `envPrefix:"ADMIN_"`
	Observability ObservabilityConfig `envPrefix:"OTEL_"`
}

// IsProduction reports whether cookies should carry the Secure flag.
func (c *Config) IsProduction() bool {
	return c.Environment == "Production"
}
