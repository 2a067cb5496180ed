package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	PGHost     string
	PGUser     string
	PGDBName   string
	PGPassword string
	PGPort     string

	JwtSecretKey          string
	ServiceName           string
	ElasticAPMServerURL   string
	ElasticAPMServiceName string
	ElasticAPMEnvironment string

	ListenAddr string

	RouterHost     string
	RouterPort     string
	RouterUser     string
	RouterPassword string

	PayHeroAPIUsername string
	PayHeroAPIPassword string
	PayHeroBaseURL     string
	PayHeroChannelID   int
	PayHeroCallbackURL string

	SweepIntervalSeconds int
	PendingTTLSeconds    int
	DefaultAccessSeconds int
	CredentialLength     int

	SNMPTarget    string
	SNMPPort      int
	SNMPVersion   string
	SNMPCommunity string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
	}

	config := &Config{
		PGHost:     os.Getenv("PG_HOST"),
		PGUser:     os.Getenv("PG_USER"),
		PGDBName:   os.Getenv("PG_DBNAME"),
		PGPassword: os.Getenv("PG_PASSWORD"),
		PGPort:     os.Getenv("PG_PORT"),

		JwtSecretKey:          os.Getenv("JwtSecretKey"),
		ServiceName:           os.Getenv("SERVICE_NAME"),
		ElasticAPMServerURL:   os.Getenv("ELASTIC_APM_SERVER_URL"),
		ElasticAPMServiceName: os.Getenv("ELASTIC_APM_SERVICE_NAME"),
		ElasticAPMEnvironment: os.Getenv("ELASTIC_APM_ENVIRONMENT"),

		ListenAddr: getEnv("LISTEN_ADDR", ":4000"),

		RouterHost:     os.Getenv("ROUTER_HOST"),
		RouterPort:     getEnv("ROUTER_PORT", "8728"),
		RouterUser:     os.Getenv("ROUTER_USER"),
		RouterPassword: os.Getenv("ROUTER_PASSWORD"),

		PayHeroAPIUsername: os.Getenv("PAYHERO_API_USERNAME"),
		PayHeroAPIPassword: os.Getenv("PAYHERO_API_PASSWORD"),
		PayHeroBaseURL:     getEnv("PAYHERO_BASE_URL", "https://backend.payhero.co.ke"),
		PayHeroChannelID:   getEnvInt("PAYHERO_CHANNEL_ID", 852),
		PayHeroCallbackURL: os.Getenv("PAYHERO_CALLBACK_URL"),

		SweepIntervalSeconds: getEnvInt("SWEEP_INTERVAL_SECONDS", 3600),
		PendingTTLSeconds:    getEnvInt("PENDING_TTL_SECONDS", 3600),
		DefaultAccessSeconds: getEnvInt("DEFAULT_ACCESS_SECONDS", 3600),
		CredentialLength:     getEnvInt("CREDENTIAL_LENGTH", 8),

		SNMPTarget:    os.Getenv("SNMP_TARGET"),
		SNMPPort:      getEnvInt("SNMP_PORT", 161),
		SNMPVersion:   getEnv("SNMP_VERSION", "v2c"),
		SNMPCommunity: getEnv("SNMP_COMMUNITY", "public"),
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
