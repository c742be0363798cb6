package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConf struct {
	Secret           string `mapstructure:"secret"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
}

type ImageKitConf struct {
	PublicKey         string `mapstructure:"public_key"`
	PrivateKey        string `mapstructure:"private_key"`
	URLEndpoint       string `mapstructure:"url_endpoint"`
	UploadEndpoint    string `mapstructure:"upload_endpoint"`
	AuthExpirySeconds int    `mapstructure:"auth_expiry_seconds"`
}

type UploadConf struct {
	MaxVideoSizeMB int `mapstructure:"max_video_size_mb"`
	MaxImageSizeMB int `mapstructure:"max_image_size_mb"`
}

type RateLimitConf struct {
	AuthPerMinute int `mapstructure:"auth_per_minute"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongodb"`
	Redis     RedisConf     `mapstructure:"redis"`
	JWT       JWTConf       `mapstructure:"jwt"`
	ImageKit  ImageKitConf  `mapstructure:"imagekit"`
	Upload    UploadConf    `mapstructure:"upload"`
	RateLimit RateLimitConf `mapstructure:"rate_limit"`
	Log       struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	AccessTokenTTL  time.Duration
	AuthParamsTTL   time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	if cfg.JWT.AccessTTLMinutes == 0 {
		cfg.JWT.AccessTTLMinutes = 60
	}
	if cfg.ImageKit.AuthExpirySeconds == 0 {
		cfg.ImageKit.AuthExpirySeconds = 1800
	}
	if cfg.ImageKit.UploadEndpoint == "" {
		cfg.ImageKit.UploadEndpoint = "https://upload.imagekit.io/api/v1/files/upload"
	}
	if cfg.Upload.MaxVideoSizeMB == 0 {
		cfg.Upload.MaxVideoSizeMB = 100
	}
	if cfg.Upload.MaxImageSizeMB == 0 {
		cfg.Upload.MaxImageSizeMB = 10
	}
	if cfg.RateLimit.AuthPerMinute == 0 {
		cfg.RateLimit.AuthPerMinute = 20
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.AccessTokenTTL = time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute
	cfg.AuthParamsTTL = time.Duration(cfg.ImageKit.AuthExpirySeconds) * time.Second
	return &cfg, nil
}
