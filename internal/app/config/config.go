package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"prod"`

	// UpstreamTimeout bounds every outbound GitHub/KASM call.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"10s"`

	GitHub GitHub
	Kasm   Kasm
}

type GitHub struct {
	APIURL     string `env:"GITHUB_API_URL" env-default:"https://api.github.com"`
	GraphQLURL string `env:"GITHUB_GRAPHQL_URL" env-default:"https://api.github.com/graphql"`
	// Token may be empty: profile lookups then serve an offline
	// placeholder, everything else reports CONFIG_MISSING.
	Token string `env:"GITHUB_TOKEN"`
}

type Kasm struct {
	Server       string `env:"KASM_SERVER"`
	APIKey       string `env:"KASM_API_KEY"`
	APIKeySecret string `env:"KASM_API_KEY_SECRET"`
}

func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
