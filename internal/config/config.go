package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "KIEZ"

// Config holds the configuration settings for the amenity finder.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the HTTP API and monitoring server.
// - RefreshInterval: The duration between scheduled dataset refreshes.
// - FetchTimeout: The upper bound for downloading and parsing one dataset.
// - Workers: The number of datasets fetched concurrently.
// - ResultLimit: The number of candidates ranked for a bot lookup.
// - ButtonLimit: The number of ranked candidates shown as bot buttons.
// - Location: The time zone deciding which demonstrations happen "today".
// - Tracing: Whether spans are exported to stdout.
// - TelegramToken: The bot token; the bot is disabled when empty.
// - TelegramAPIEndpoint: The Bot API URL pattern, filled with the token and method.
// - Geocoder: Settings of the fallback geocoding provider.
// - Sources: Locations of the upstream datasets.
type Config struct {
	Env                 string
	Port                int
	RefreshInterval     time.Duration
	FetchTimeout        time.Duration
	Workers             int
	ResultLimit         int
	ButtonLimit         int
	Timezone            string
	Location            *time.Location
	Tracing             bool
	TelegramToken       string
	TelegramAPIEndpoint string
	Geocoder            GeocoderConfig
	Sources             SourcesConfig
}

// GeocoderConfig selects the provider used for demonstration postcodes missing from the centroid table.
type GeocoderConfig struct {
	Type      string // google, nominatim, visicom or none.
	APIKey    string // Required for google and visicom.
	RateLimit int    // Requests per second.
}

// SourcesConfig holds dataset locations. Empty values select the published defaults;
// values that are not http(s) URLs are read from the local file system.
type SourcesConfig struct {
	ToiletsURL        string
	ToiletsSheet      string
	FountainsPageURL  string
	FountainsKMZURL   string // Skips scraping the fountains page when set.
	DemonstrationsURL string
}

// MustLoad loads the configuration from the environment (and a .env file, if present)
// and returns a Config struct. It panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	interval, err := time.ParseDuration(v.GetString("refresh_interval"))
	if err != nil || interval <= 0 {
		panic("failed to parse refresh interval from configuration")
	}

	fetchTimeout, err := time.ParseDuration(v.GetString("fetch_timeout"))
	if err != nil {
		panic("failed to parse fetch timeout from configuration")
	}

	port, err := strconv.Atoi(v.GetString("http.port"))
	if err != nil {
		panic("failed to parse port for HTTP server from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("workers"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer types")
	}

	resultLimit, err := strconv.Atoi(v.GetString("result_limit"))
	if err != nil || resultLimit <= 0 {
		panic("failed to parse result limit from configuration, must be a positive integer")
	}

	buttonLimit, err := strconv.Atoi(v.GetString("button_limit"))
	if err != nil || buttonLimit <= 0 {
		panic("failed to parse button limit from configuration, must be a positive integer")
	}

	tracing, err := strconv.ParseBool(v.GetString("tracing"))
	if err != nil {
		panic("failed to parse tracing flag from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("geocoder.rate_limit"))
	if err != nil {
		panic("failed to parse geocoder rate limit from configuration")
	}

	timezone := v.GetString("timezone")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		panic("failed to load timezone from configuration")
	}

	return &Config{
		Env:                 v.GetString("env"),
		Port:                port,
		RefreshInterval:     interval,
		FetchTimeout:        fetchTimeout,
		Workers:             workers,
		ResultLimit:         resultLimit,
		ButtonLimit:         buttonLimit,
		Timezone:            timezone,
		Location:            location,
		Tracing:             tracing,
		TelegramToken:       v.GetString("telegram.token"),
		TelegramAPIEndpoint: v.GetString("telegram.api_endpoint"),
		Geocoder: GeocoderConfig{
			Type:      v.GetString("geocoder.type"),
			APIKey:    v.GetString("geocoder.api_key"),
			RateLimit: rateLimit,
		},
		Sources: SourcesConfig{
			ToiletsURL:        v.GetString("sources.toilets.url"),
			ToiletsSheet:      v.GetString("sources.toilets.sheet"),
			FountainsPageURL:  v.GetString("sources.fountains.page_url"),
			FountainsKMZURL:   v.GetString("sources.fountains.kmz_url"),
			DemonstrationsURL: v.GetString("sources.demonstrations.url"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("http.port", "8080")
	v.SetDefault("refresh_interval", "6h")
	v.SetDefault("fetch_timeout", "30s")
	v.SetDefault("workers", "3")
	v.SetDefault("result_limit", "5")
	v.SetDefault("button_limit", "3")
	v.SetDefault("timezone", "Europe/Berlin")
	v.SetDefault("tracing", "false")
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.api_endpoint", "https://api.telegram.org/bot%s/%s")
	v.SetDefault("geocoder.type", "nominatim")
	v.SetDefault("geocoder.api_key", "")
	v.SetDefault("geocoder.rate_limit", "1")
	v.SetDefault("sources.toilets.url", "")
	v.SetDefault("sources.toilets.sheet", "Berlinweit")
	v.SetDefault("sources.fountains.page_url", "")
	v.SetDefault("sources.fountains.kmz_url", "")
	v.SetDefault("sources.demonstrations.url", "")
}
