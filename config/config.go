package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "VISIONFRAME_CONFIG_FILE"
	envPrefix         = "VISIONFRAME"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type storage struct {
	Backend      string `mapstructure:"backend"`
	PostgresDSN  string `mapstructure:"postgres_dsn"`
	RedisURL     string `mapstructure:"redis_url"`
	FavoritesKey string `mapstructure:"favorites_key"`
	HistoryKey   string `mapstructure:"history_key"`
}

type topics struct {
	FavoriteEvents string `mapstructure:"favorite_events"`
	SearchEvents   string `mapstructure:"search_events"`
}

type consumers struct {
	PopularityGroup string `mapstructure:"popularity_group"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

// Enabled reports whether any TLS file is configured.
func (t tlsFiles) Enabled() bool {
	return t.CA != "" || t.Cert != "" || t.Key != ""
}

type sasl struct {
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
}

type broker struct {
	Enabled            bool      `mapstructure:"enabled"`
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
	TLS                tlsFiles  `mapstructure:"tls"`
	SASL               sasl      `mapstructure:"sasl"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Storage        storage       `mapstructure:"storage"`
	Broker         broker        `mapstructure:"broker"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("request_timeout", "5s")

	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.redis_url", "")
	v.SetDefault("storage.favorites_key", "@visionframe_favorites")
	v.SetDefault("storage.history_key", "@search_history")

	v.SetDefault("broker.enabled", false)
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.topics.favorite_events", "favorite_events")
	v.SetDefault("broker.topics.search_events", "search_events")
	v.SetDefault("broker.consumers.popularity_group", "popularity")
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
	v.SetDefault("broker.sasl.user", "")
	v.SetDefault("broker.sasl.pass", "")
}

// Load reads the config file chosen by the --config flag or
// the VISIONFRAME_CONFIG_FILE environment variable.
// Exits with code 2 on failure.
func Load() Config {
	cfg, err := load(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, errors.New("storage.postgres_dsn: required"))
		}
	case BackendRedis:
		if c.Storage.RedisURL == "" {
			errs = append(errs, errors.New("storage.redis_url: required"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"storage.backend: unknown value %q", c.Storage.Backend,
		))
	}

	if c.Storage.FavoritesKey == "" || c.Storage.HistoryKey == "" {
		errs = append(errs, errors.New("storage keys: required"))
	}

	if c.Broker.Enabled {
		b := c.Broker
		if len(b.SeedBrokers) == 0 {
			errs = append(errs, errors.New("broker.seed_brokers: required"))
		}
		if len(b.SchemaRegistryURLs) == 0 {
			errs = append(errs, errors.New("broker.schema_registry_urls: required"))
		}
		if slices.Contains(
			[]string{b.Topics.FavoriteEvents, b.Topics.SearchEvents, b.Consumers.PopularityGroup}, "",
		) {
			errs = append(errs, errors.New("broker topics and groups: required"))
		}
		if b.TLS.Enabled() && (b.TLS.CA == "" || b.TLS.Cert == "" || b.TLS.Key == "") {
			errs = append(errs, errors.New("broker.tls: ca, cert and key are required together"))
		}
	}

	return errors.Join(errs...)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	RequestTimeout=%q

	Storage:
	Backend=%q
	PostgresDSN=%q
	RedisURL=%q
	FavoritesKey=%q
	HistoryKey=%q

	BrokerConfig:
	Enabled=%t
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	SASLUser=%q
	Topics:
		FavoriteEvents=%q
		SearchEvents=%q
	Consumers:
		PopularityGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.RequestTimeout,
		c.Storage.Backend,
		redact(c.Storage.PostgresDSN),
		redact(c.Storage.RedisURL),
		c.Storage.FavoritesKey,
		c.Storage.HistoryKey,
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.SASL.User,
		c.Broker.Topics.FavoriteEvents,
		c.Broker.Topics.SearchEvents,
		c.Broker.Consumers.PopularityGroup,
	)
}

// redact hides connection string credentials.
func redact(conn string) string {
	scheme, rest, ok := strings.Cut(conn, "://")
	if !ok {
		return conn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return conn
	}
	user, _, _ := strings.Cut(creds, ":")
	return scheme + "://" + user + ":***@" + host
}
