package config

import "github.com/spf13/viper"

// Config holds everything the service reads from the environment. All keys
// are prefixed KIOSCO_, e.g. KIOSCO_DATABASE_URL.
type Config struct {
	HTTPAddr      string
	DatabaseURL   string
	RedisAddr     string
	JWTSecret     string
	AdminPassword string
}

func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("kiosco")
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("admin_password", "admin")

	return Config{
		HTTPAddr:      v.GetString("http_addr"),
		DatabaseURL:   v.GetString("database_url"),
		RedisAddr:     v.GetString("redis_addr"),
		JWTSecret:     v.GetString("jwt_secret"),
		AdminPassword: v.GetString("admin_password"),
	}
}
