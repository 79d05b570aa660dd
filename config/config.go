// config/config.go
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Database      DatabaseConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
	Log           LogConfiguration
	Auth          AuthConfiguration
	RateLimit     RateLimitConfiguration
	Cache         CacheConfiguration
	Media         MediaConfiguration
	AI            AIConfiguration
	Comments      CommentConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfiguration stores data for the relational store
type DatabaseConfiguration struct {
	Path string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
}

// ElasticsearchConfiguration stores data for the audit sink
type ElasticsearchConfiguration struct {
	Enabled bool
	URL     string
	Index   string
}

type LogConfiguration struct {
	Level string
	Dir   string
}

// AuthConfiguration holds the signing secret and the master admin key.
type AuthConfiguration struct {
	JWTSecret   string
	AdminAPIKey string
	TokenTTL    time.Duration
	AdminRoles  []string
	DefaultRole string
}

// Bucket is one rate-limit class.
type Bucket struct {
	Limit  int
	Window time.Duration
}

type RateLimitConfiguration struct {
	ClientIPHeader string
	FailOpen       bool
	Buckets        map[string]Bucket
}

type CacheTTLConfiguration struct {
	PostsList  time.Duration
	PostDetail time.Duration
	Categories time.Duration
	Authors    time.Duration
	Search     time.Duration
}

// InvalidationConfiguration lists the pagination shapes whose list keys are
// purged on writes. Other shapes expire on their TTL.
type InvalidationConfiguration struct {
	Pages  []int
	Limits []int
}

type CacheConfiguration struct {
	TTL          CacheTTLConfiguration
	Invalidation InvalidationConfiguration
}

type MediaConfiguration struct {
	Dir          string
	MaxSize      int64
	AllowedTypes []string
}

type AIConfiguration struct {
	Endpoint string
	APIToken string
	Model    string
	Timeout  time.Duration
}

type CommentConfiguration struct {
	SpamPatterns []string
}

var config *Configuration

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "30s")

	v.SetDefault("database.path", "data/blog.db")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.dialTimeout", "5s")
	v.SetDefault("redis.readTimeout", "3s")
	v.SetDefault("redis.writeTimeout", "3s")
	v.SetDefault("redis.poolSize", 10)

	v.SetDefault("elasticsearch.enabled", false)
	v.SetDefault("elasticsearch.url", "http://localhost:9200")
	v.SetDefault("elasticsearch.index", "blog-audit-logs")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")

	v.SetDefault("auth.tokenTTL", "24h")
	v.SetDefault("auth.adminRoles", []string{"admin", "author"})
	v.SetDefault("auth.defaultRole", "author")

	v.SetDefault("ratelimit.clientIPHeader", "CF-Connecting-IP")
	v.SetDefault("ratelimit.failOpen", true)
	v.SetDefault("ratelimit.buckets", map[string]interface{}{
		"general":    map[string]interface{}{"limit": 100, "window": "1h"},
		"auth":       map[string]interface{}{"limit": 5, "window": "15m"},
		"ai":         map[string]interface{}{"limit": 10, "window": "1h"},
		"media":      map[string]interface{}{"limit": 20, "window": "1h"},
		"search":     map[string]interface{}{"limit": 50, "window": "1h"},
		"categories": map[string]interface{}{"limit": 50, "window": "1h"},
		"authors":    map[string]interface{}{"limit": 50, "window": "1h"},
		"comments":   map[string]interface{}{"limit": 30, "window": "1h"},
	})

	v.SetDefault("cache.ttl.postsList", "5m")
	v.SetDefault("cache.ttl.postDetail", "10m")
	v.SetDefault("cache.ttl.categories", "30m")
	v.SetDefault("cache.ttl.authors", "30m")
	v.SetDefault("cache.ttl.search", "5m")
	v.SetDefault("cache.invalidation.pages", []int{1, 2, 3})
	v.SetDefault("cache.invalidation.limits", []int{10, 20, 50})

	v.SetDefault("media.dir", "data/media")
	v.SetDefault("media.maxSize", 5*1024*1024)
	v.SetDefault("media.allowedTypes", []string{"image/jpeg", "image/png", "image/gif", "image/webp"})

	v.SetDefault("ai.endpoint", "")
	v.SetDefault("ai.model", "@cf/meta/llama-3-8b-instruct")
	v.SetDefault("ai.timeout", "30s")

	v.SetDefault("comments.spamPatterns", []string{"http://", "https://", "www."})
}

// InitConfig loads config.yaml from configPath (if present) and the BLOG_*
// environment into a Configuration.
func InitConfig(configPath string) (*Configuration, error) {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("blog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return nil, err
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	// AutomaticEnv only reaches keys viper already knows about.
	cfg.Auth.JWTSecret = v.GetString("auth.jwtSecret")
	cfg.Auth.AdminAPIKey = v.GetString("auth.adminApiKey")
	cfg.AI.APIToken = v.GetString("ai.apiToken")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	config = &cfg
	return config, nil
}

// Validate checks the settings the server cannot start without.
func (c *Configuration) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret is required")
	}
	if c.Auth.AdminAPIKey == "" {
		return fmt.Errorf("auth.adminApiKey is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.tokenTTL must be positive")
	}
	for name, b := range c.RateLimit.Buckets {
		if b.Limit <= 0 || b.Window <= 0 {
			return fmt.Errorf("ratelimit bucket %q needs a positive limit and window", name)
		}
	}
	if _, ok := c.RateLimit.Buckets["general"]; !ok {
		return fmt.Errorf("ratelimit bucket %q is required", "general")
	}
	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}
