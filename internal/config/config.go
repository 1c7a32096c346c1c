package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	CORS     CORSConfig     `mapstructure:"cors"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

// GetAddress 获取服务器地址
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig Redis配置（可选，仅用于生成接口的并发限制）
type RedisConfig struct {
	Host                     string `mapstructure:"host"`
	Port                     int    `mapstructure:"port"`
	DB                       int    `mapstructure:"db"`
	Password                 string `mapstructure:"password"`
	MaxConcurrentGenerations int    `mapstructure:"max_concurrent_generations"`
}

// GetAddress 获取Redis地址
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Enabled Redis是否启用
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

// CORSConfig CORS配置
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// OpenAIConfig 补全服务配置
type OpenAIConfig struct {
	APIBase        string `mapstructure:"api_base"`
	APIKey         string `mapstructure:"api_key"`
	DefaultModel   string `mapstructure:"default_model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries"`
}

// GetTimeout 获取单次调用超时时间
func (o *OpenAIConfig) GetTimeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}
