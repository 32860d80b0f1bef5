package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type SecurityCfg struct {
	InternalHMACSecret string `mapstructure:"internalHmacSecret"`
	SessionTTLMinutes  int    `mapstructure:"sessionTtlMinutes"`
}
type GoogleOAuthCfg struct {
	ClientID     string `mapstructure:"clientId"`
	ClientSecret string `mapstructure:"clientSecret"`
	RedirectURL  string `mapstructure:"redirectUrl"`
}

// RevenueCfg carries the revenue-engine choices that are deployment policy
// rather than rule data: what a duplicate parcel append does, and whether a
// rule set must split exactly 100% between partner and platform.
type RevenueCfg struct {
	IdempotencyMode  string `mapstructure:"idempotencyMode"` // strict | skip
	StrictShareSplit bool   `mapstructure:"strictShareSplit"`
	DefaultCurrency  string `mapstructure:"defaultCurrency"`
	EventShards      int    `mapstructure:"eventShards"`
}

type Root struct {
	Server   ServerCfg      `mapstructure:"server"`
	Mysql    MysqlCfg       `mapstructure:"mysql"`
	RabbitMQ RabbitCfg      `mapstructure:"rabbitmq"`
	Redis    RedisCfg       `mapstructure:"redis"`
	Security SecurityCfg    `mapstructure:"security"`
	Google   GoogleOAuthCfg `mapstructure:"google"`
	Revenue  RevenueCfg     `mapstructure:"revenue"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Security.SessionTTLMinutes <= 0 {
		C.Security.SessionTTLMinutes = 1440
	}
	if C.Revenue.IdempotencyMode != "skip" {
		C.Revenue.IdempotencyMode = "strict"
	}
	if strings.TrimSpace(C.Revenue.DefaultCurrency) == "" {
		C.Revenue.DefaultCurrency = "INR"
	}
	if C.Revenue.EventShards <= 0 {
		C.Revenue.EventShards = 4
	}
}
