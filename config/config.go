package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type topics struct {
	ClientEvents string `mapstructure:"client_events"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	CatalogAPIURL  string        `mapstructure:"catalog_api_url"`
	StoragePath    string        `mapstructure:"storage_path"`
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	NoticeTTL      time.Duration `mapstructure:"notice_ttl"`
	Broker         broker        `mapstructure:"broker"`
}

func Load() Config {
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("http_server_addr", ":8080")
	viper.SetDefault("catalog_api_url", "https://fakestoreapi.com")
	viper.SetDefault("storage_path", "storefront.db")
	viper.SetDefault("search_debounce", "300ms")
	viper.SetDefault("notice_ttl", "2800ms")

	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
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
	CatalogAPIURL=%q
	StoragePath=%q
	SearchDebounce=%q
	NoticeTTL=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		ClientEvents=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.CatalogAPIURL,
		c.StoragePath,
		c.SearchDebounce,
		c.NoticeTTL,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.ClientEvents,
	)
}
