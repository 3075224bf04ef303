package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host                      string
		Port                      int
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          int
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	// CacheConfig holds the TTL of each cache family.
	CacheConfig struct {
		ListTTL        time.Duration
		TestTTL        time.Duration
		LeaderboardTTL time.Duration
		ProfileTTL     time.Duration
	}

	Config struct {
		AppName   string
		Env       string // DEV (default), TEST, QA, PROD
		Debug     bool
		TestMode  bool
		SecretKey string

		FrontendBaseURL     string
		DefaultFromEmail    string
		AdvisingNotifyEmail string
		SendgridAPIKey      string
		RollbarToken        string

		Server   ServerConfig
		Database DatabaseConfig
		Cache    CacheConfig
	}
)

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewConfig loads the app configuration from the environment; an optional
// config/.env.<env> file is loaded first if it exists.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "GreenwichEnglish")
	conf.SetDefault("secretKey", "x#pq5-wer)enb$+57=dz&uoxh2(h!m)*c2(#yg4h^$cegm2emy")
	conf.SetDefault("frontendBaseURL", "http://localhost:3000")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("advisingNotifyEmail", "advising@localhost")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("serverHost", "0.0.0.0")
	conf.SetDefault("serverPort", 8000)
	conf.SetDefault("jwtExpirationDelta", 10*time.Minute)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	conf.SetDefault("dbEngine", "postgres")
	conf.SetDefault("dbName", "greenwich")
	conf.SetDefault("dbHost", "localhost")
	conf.SetDefault("dbPort", 5432)
	conf.SetDefault("dbUser", "")
	conf.SetDefault("dbPassword", "")
	conf.SetDefault("dbAdminUser", "")
	conf.SetDefault("dbAdminPassword", "")
	conf.SetDefault("dbDisableTLS", true)
	conf.SetDefault("listCacheTTL", 20*time.Minute)
	conf.SetDefault("testCacheTTL", 20*time.Minute)
	conf.SetDefault("leaderboardCacheTTL", 20*time.Minute)
	conf.SetDefault("profileCacheTTL", 5*time.Minute)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:             conf.GetString("appName"),
		Env:                 env,
		Debug:               conf.GetBool("debug"),
		TestMode:            env == "TEST",
		SecretKey:           conf.GetString("secretKey"),
		FrontendBaseURL:     conf.GetString("frontendBaseURL"),
		DefaultFromEmail:    conf.GetString("defaultFromEmail"),
		AdvisingNotifyEmail: conf.GetString("advisingNotifyEmail"),
		SendgridAPIKey:      conf.GetString("sendgridApiKey"),
		RollbarToken:        conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:                      conf.GetString("serverHost"),
			Port:                      conf.GetInt("serverPort"),
			JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("dbEngine"),
			Name:          conf.GetString("dbName"),
			Host:          conf.GetString("dbHost"),
			Port:          conf.GetInt("dbPort"),
			User:          conf.GetString("dbUser"),
			Password:      conf.GetString("dbPassword"),
			AdminUser:     conf.GetString("dbAdminUser"),
			AdminPassword: conf.GetString("dbAdminPassword"),
			DisableTLS:    conf.GetBool("dbDisableTLS"),
		},
		Cache: CacheConfig{
			ListTTL:        conf.GetDuration("listCacheTTL"),
			TestTTL:        conf.GetDuration("testCacheTTL"),
			LeaderboardTTL: conf.GetDuration("leaderboardCacheTTL"),
			ProfileTTL:     conf.GetDuration("profileCacheTTL"),
		},
	}
}
