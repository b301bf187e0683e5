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

const configFileEnvName = "MARKET_CONFIG_FILE"

type consumers struct {
	NotifierGroup   string `mapstructure:"notifier_group"`
	BidSummaryGroup string `mapstructure:"bid_summary_group"`
}

type topics struct {
	OrderShipped string `mapstructure:"order_shipped"`
	BidsPlaced   string `mapstructure:"bids_placed"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

// Enabled reports whether all certificate files are set.
func (t tlsFiles) Enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

type sasl struct {
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	TLS                tlsFiles  `mapstructure:"tls"`
	SASL               sasl      `mapstructure:"sasl"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type redis struct {
	URL        string        `mapstructure:"url"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type storefront struct {
	ImageCDNURL      string        `mapstructure:"image_cdn_url"`
	ImageProject     string        `mapstructure:"image_project"`
	ImageDataset     string        `mapstructure:"image_dataset"`
	PlaceholderImage string        `mapstructure:"placeholder_image"`
	TrackingPrefix   string        `mapstructure:"tracking_prefix"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	Redis          redis      `mapstructure:"redis"`
	Broker         broker     `mapstructure:"broker"`
	Storefront     storefront `mapstructure:"storefront"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	viper.SetDefault("redis.session_ttl", 7*24*time.Hour)
	viper.SetDefault("storefront.tracking_prefix", "TRK")
	viper.SetDefault("storefront.placeholder_image", "/images/placeholder.png")
	viper.SetDefault("storefront.request_timeout", 5*time.Second)

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

// Print writes the loaded config to stdout, SASL password is masked.
func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q

	Redis:
	URL=%q
	SessionTTL=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	SASLUser=%q
	SASLPass=%q
	Topics:
		OrderShipped=%q
		BidsPlaced=%q
	Consumers:
		NotifierGroup=%q
		BidSummaryGroup=%q

	Storefront:
	ImageCDNURL=%q
	ImageProject=%q
	ImageDataset=%q
	PlaceholderImage=%q
	TrackingPrefix=%q
	RequestTimeout=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		mask(c.SQLDB),
		mask(c.Redis.URL),
		c.Redis.SessionTTL,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.SASL.User,
		mask(c.Broker.SASL.Pass),
		c.Broker.Topics.OrderShipped,
		c.Broker.Topics.BidsPlaced,
		c.Broker.Consumers.NotifierGroup,
		c.Broker.Consumers.BidSummaryGroup,
		c.Storefront.ImageCDNURL,
		c.Storefront.ImageProject,
		c.Storefront.ImageDataset,
		c.Storefront.PlaceholderImage,
		c.Storefront.TrackingPrefix,
		c.Storefront.RequestTimeout,
	)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
