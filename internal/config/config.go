// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Config struct {
	Port string `yaml:"port" env:"PORT"`

	//Crawl settings
	SeedURLs   []string `yaml:"seed_urls"`
	UserAgent  string   `yaml:"user_agent" env:"SCRAPE_USER_AGENT"`
	TimeoutMs  int      `yaml:"timeout_ms" env:"SCRAPE_TIMEOUT_MS"`
	UseBrowser bool     `yaml:"use_browser" env:"SCRAPE_USE_BROWSER"`
	MaxPages   int      `yaml:"max_pages"`

	//Headless render settling time after network idle
	SettleMs int `yaml:"settle_ms"`

	//Polite crawling budget per host
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if ua := os.Getenv("SCRAPE_USER_AGENT"); ua != "" {
		cfg.UserAgent = ua
	}

	if timeout := os.Getenv("SCRAPE_TIMEOUT_MS"); timeout != "" {
		ms, err := strconv.Atoi(timeout)
		if err != nil {
			log.Fatalf("Invalid SCRAPE_TIMEOUT_MS: %v", err)
		}
		cfg.TimeoutMs = ms
	}

	if headless := os.Getenv("SCRAPE_USE_BROWSER"); headless != "" {
		use, err := strconv.ParseBool(headless)
		if err != nil {
			log.Fatalf("Invalid SCRAPE_USE_BROWSER: %v", err)
		}
		cfg.UseBrowser = use
	}

	if seeds := os.Getenv("SEED_URLS"); seeds != "" {
		cfg.SeedURLs = nil
		for _, u := range strings.Split(seeds, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.SeedURLs = append(cfg.SeedURLs, u)
			}
		}
	}

	//Set default values if not set
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if len(cfg.SeedURLs) == 0 {
		cfg.SeedURLs = []string{
			"https://jobsearchmalawi.com/",
			"https://jobsearchmalawi.com/jobs/",
		}
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	if cfg.TimeoutMs == 0 {
		cfg.TimeoutMs = 10000
	}

	if cfg.MaxPages == 0 {
		cfg.MaxPages = 20
	}

	if cfg.SettleMs == 0 {
		cfg.SettleMs = 2500
	}

	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 2
	}

	//Validate required fields
	if cfg.TimeoutMs < 0 {
		log.Fatal("SCRAPE_TIMEOUT_MS must not be negative")
	}

	if cfg.MaxPages < 1 {
		log.Fatal("max_pages must be at least 1")
	}

	return cfg
}
