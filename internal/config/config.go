package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	WordPress struct {
		SiteURL     string `mapstructure:"site_url"`
		Username    string `mapstructure:"username"`
		AppPassword string `mapstructure:"app_password"`
	} `mapstructure:"wordpress"`
	OpenAI struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
		Model   string `mapstructure:"model"`
	} `mapstructure:"openai"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret         string        `mapstructure:"jwt_secret"`
		TokenLifespan     time.Duration `mapstructure:"token_lifespan"`
		AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Taxonomy struct {
		CacheTTL  time.Duration `mapstructure:"cache_ttl"`
		PageDelay time.Duration `mapstructure:"page_delay"`
	} `mapstructure:"taxonomy"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

func LoadConfig() (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.env", "development")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("auth.token_lifespan", "24h")
	viper.SetDefault("taxonomy.cache_ttl", "15m")
	viper.SetDefault("taxonomy.page_delay", "200ms")

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("wordpress.site_url", "WP_SITE_URL")
	viper.BindEnv("wordpress.username", "WP_USERNAME")
	viper.BindEnv("wordpress.app_password", "WP_APP_PASSWORD")
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	viper.BindEnv("openai.model", "OPENAI_MODEL")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("auth.admin_password_hash", "ADMIN_PASSWORD_HASH")
	viper.BindEnv("taxonomy.cache_ttl", "TAXONOMY_CACHE_TTL")
	viper.BindEnv("taxonomy.page_delay", "TAXONOMY_PAGE_DELAY")
	viper.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")

	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	err = viper.Unmarshal(&cfg)
	return
}
