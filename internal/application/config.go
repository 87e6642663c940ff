package application

import "time"

type HttpConfig struct {
	Port        int      `json:"port"`
	CorsOrigins []string `json:"cors_origins"`
}

type ScraperConfig struct {
	TimeoutSeconds int    `json:"timeout_seconds"`
	UserAgent      string `json:"user_agent"`
	// requests per second, negative disables rate limiting
	RateLimit      float64 `json:"rate_limit"`
	MaxStylesheets int     `json:"max_stylesheets"`
	SkipLogoProbe  bool    `json:"skip_logo_probe"`
}

type LLMConfig struct {
	ApiKey         string `json:"api_key"`
	BaseUrl        string `json:"base_url"`
	FastModel      string `json:"fast_model"`
	ReasoningModel string `json:"reasoning_model"`
	// nil uses DEFAULT_TEMPERATURE, 0 is a valid temperature
	Temperature *float32 `json:"temperature"`
	// list the available models on startup instead of using the defaults
	Discover bool `json:"discover"`
}

type BrandfetchConfig struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
}

type CacheConfig struct {
	// empty disables the cache
	Path string `json:"path"`
	// nil uses DEFAULT_TTL_HOURS, <= 0 disables expiry
	TTLHours  *int   `json:"ttl_hours"`
	PruneCron string `json:"prune_cron"`
}

func (c CacheConfig) TTL() time.Duration {
	hours := DEFAULT_TTL_HOURS
	if c.TTLHours != nil {
		hours = *c.TTLHours
	}
	return time.Duration(hours) * time.Hour
}

func (c LLMConfig) temperature() float32 {
	if c.Temperature == nil {
		return DEFAULT_TEMPERATURE
	}
	return *c.Temperature
}

type Config struct {
	// IANA name, empty means UTC
	Timezone   string           `json:"timezone"`
	Http       HttpConfig       `json:"http"`
	Scraper    ScraperConfig    `json:"scraper"`
	LLM        LLMConfig        `json:"llm"`
	Brandfetch BrandfetchConfig `json:"brandfetch"`
	Cache      CacheConfig      `json:"cache"`
	// directory HTTP exchanges are dumped to, empty disables dumping
	DumpDir string `json:"dump_dir"`
}

const (
	DEFAULT_TTL_HOURS   = 24
	DEFAULT_TEMPERATURE = 0.7
)

func DefaultConfig() Config {
	ttlHours := DEFAULT_TTL_HOURS
	temperature := float32(DEFAULT_TEMPERATURE)

	return Config{
		Http: HttpConfig{
			Port:        5000,
			CorsOrigins: []string{"*"},
		},
		Scraper: ScraperConfig{
			TimeoutSeconds: 15,
			RateLimit:      8,
			MaxStylesheets: 3,
		},
		LLM: LLMConfig{
			Temperature: &temperature,
		},
		Cache: CacheConfig{
			TTLHours: &ttlHours,
		},
	}
}
