// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек сервиса токенизации
type Config struct {
	Env             string `yaml:"env"`
	ReturnURL       string `yaml:"return_url"`
	RabbitMQAddress string `yaml:"rabbitmq_address"`
	Gateway         `yaml:"gateway"`
	WalletAPI       `yaml:"wallet_api"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	SessionToken    `yaml:"session_token"`
}

// Gateway настройки платёжного шлюза мерчанта
type Gateway struct {
	APIURL    string `yaml:"api_url" env-default:"https://api.yookassa.ru/v3"`
	ShopID    string `yaml:"shop_id" env:"GATEWAY_SHOP_ID"`
	SecretKey string `yaml:"secret_key" env:"GATEWAY_SECRET_KEY"`
	GatewayID string `yaml:"gateway_id"`
}

// WalletAPI настройки API кошелькового логина
type WalletAPI struct {
	WalletAPIURL string        `yaml:"wallet_api_url" env-default:"https://yoomoney.ru/api/wallet-auth/v1"`
	InstanceName string        `yaml:"instance_name" env-default:"checkout-tokenizer"`
	TimeoutHTTP  time.Duration `yaml:"timeout" env-default:"10s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// SessionToken структура для работы с JWT сессии оформления
type SessionToken struct {
	SecretKey string        `yaml:"secret_key" env:"SESSION_SECRET_KEY"`
	TokenTTL  time.Duration `yaml:"token_ttl" env-default:"1h"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH, при ошибке завершает процесс
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"ReturnURL: %s\n"+
			"Gateway:\n"+
			"  APIURL: %s\n"+
			"  ShopID: %s\n"+
			"  GatewayID: %s\n"+
			"WalletAPI:\n"+
			"  URL: %s\n"+
			"  InstanceName: %s\n"+
			"  Timeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"  MaxRetries: %d\n"+
			"  DialTimeout: %s\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"SessionToken:\n"+
			"  TokenTTL: %s\n",
		c.Env,
		c.ReturnURL,
		c.APIURL,
		c.ShopID,
		c.GatewayID,
		c.WalletAPIURL,
		c.InstanceName,
		c.WalletAPI.TimeoutHTTP,
		c.AddressRedis,
		c.User,
		c.DB,
		c.MaxRetries,
		c.DialTimeout,
		c.TimeoutRedis,
		c.HTTPServer.AddressHTTP,
		c.HTTPServer.TimeoutHTTP,
		c.IdleTimeout,
		c.TokenTTL,
	)
}
