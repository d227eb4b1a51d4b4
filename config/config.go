package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	RedisURL string
	CartTTL  time.Duration

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	MongoURI string
	MongoDB  string

	JWTSecret string

	StripeSecretKey string
	Currency        string

	MpesaURL       string
	TigoPesaURL    string
	AirtelMoneyURL string
	CarrierAPIKey  string
	PaymentTimeout time.Duration

	KafkaBrokers string
	KafkaTopic   string

	SMSUsername string
	SMSAPIKey   string
	SMSSender   string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:  time.Hour * 24 * 7, // carts survive a week of inactivity

		PostgresUser:     getEnv("POSTGRES_USER", "farmstore"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       getEnv("POSTGRES_DB", "farmstore"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "Africa/Dar_es_Salaam"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "farmstore"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		Currency:        getEnv("CURRENCY", "tzs"),

		MpesaURL:       getEnv("MPESA_URL", "https://openapi.m-pesa.com/sandbox/ipg/v2/vodacomTZN"),
		TigoPesaURL:    getEnv("TIGO_PESA_URL", "https://accessgwtest.tigo.co.tz/v2/tigo/mfs"),
		AirtelMoneyURL: getEnv("AIRTEL_MONEY_URL", "https://openapiuat.airtel.africa/merchant/v1"),
		CarrierAPIKey:  os.Getenv("CARRIER_API_KEY"),
		PaymentTimeout: getDuration("PAYMENT_TIMEOUT", 30*time.Second),

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "order.created"),

		SMSUsername: os.Getenv("SMS_USERNAME"),
		SMSAPIKey:   os.Getenv("SMS_API_KEY"),
		SMSSender:   getEnv("SMS_SENDER", "ChickenFarm"),
	}
}

func (c Config) KafkaBrokerList() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	return strings.Split(c.KafkaBrokers, ",")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
