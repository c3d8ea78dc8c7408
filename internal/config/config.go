package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Extractor ExtractorConfig `yaml:"extractor"`
	Enrich    EnrichConfig    `yaml:"enrich"`
	Redis     RedisConfig     `yaml:"redis"`
	Cache     CacheConfig     `yaml:"cache"`
}

// ExtractorConfig 外部提取进程配置
type ExtractorConfig struct {
	BinaryPath    string `yaml:"binary_path"`    // 解释器或可执行文件路径
	ScriptPath    string `yaml:"script_path"`    // 提取脚本路径(可为空,此时直接执行binary)
	Timeout       int    `yaml:"timeout"`        // 单次提取超时(秒)
	MaxConcurrent int    `yaml:"max_concurrent"` // 最大并发提取进程数
}

// EnrichConfig 元数据补充配置
type EnrichConfig struct {
	Timeout int `yaml:"timeout"` // 元数据请求超时(秒)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// CacheConfig 结果缓存配置
type CacheConfig struct {
	Enabled bool `yaml:"enabled"` // 是否启用记忆化缓存
	TTL     int  `yaml:"ttl"`     // 缓存TTL(秒)
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// 从环境变量覆盖配置
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cfg.Redis.Addr = redisAddr
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	// 与原部署保持一致,允许用环境变量指定解释器和脚本
	if binary := os.Getenv("EXTRACTOR_BINARY"); binary != "" {
		cfg.Extractor.BinaryPath = binary
	}
	if script := os.Getenv("EXTRACTOR_SCRIPT"); script != "" {
		cfg.Extractor.ScriptPath = script
	}

	// 设置默认值
	if cfg.Extractor.BinaryPath == "" {
		cfg.Extractor.BinaryPath = "python3"
	}
	if cfg.Extractor.Timeout == 0 {
		cfg.Extractor.Timeout = 45
	}
	if cfg.Extractor.MaxConcurrent == 0 {
		cfg.Extractor.MaxConcurrent = 4
	}
	if cfg.Enrich.Timeout == 0 {
		cfg.Enrich.Timeout = 5
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 3600
	}

	return &cfg, nil
}

// GetTimeout 获取提取超时时间
func (c *ExtractorConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// GetTimeout 获取元数据请求超时时间
func (c *EnrichConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// GetCacheTTL 获取缓存TTL时间
func (c *CacheConfig) GetCacheTTL() time.Duration {
	return time.Duration(c.TTL) * time.Second
}
