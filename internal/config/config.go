package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Upstream  UpstreamConfig
	Kafka     KafkaConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Dashboard DashboardConfig
	Jobs      JobsConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// BackendConfig points at the two REST surfaces the dashboard calls.
type BackendConfig struct {
	RequestsURL  string
	UsersURL     string
	Timeout      time.Duration
	ServiceToken string
}

type UpstreamConfig struct {
	URL              string
	ReconnectDelay   time.Duration
	HandshakeTimeout time.Duration
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	Topic   string
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
	AllowedRoles []string
	CookieSecure bool
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type DashboardConfig struct {
	Timezone     string
	Location     *time.Location
	SendBuffer   int
	AllowOrigins []string
}

type JobsConfig struct {
	TickInterval   time.Duration
	ResyncInterval time.Duration
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Backend: BackendConfig{
			RequestsURL:  getEnv("REQUESTS_API_URL", "http://localhost:8001"),
			UsersURL:     getEnv("USERS_API_URL", "http://localhost:8000/v1/api"),
			Timeout:      getDuration("BACKEND_TIMEOUT", 10*time.Second),
			ServiceToken: strings.TrimSpace(os.Getenv("BACKEND_SERVICE_TOKEN")),
		},
		Upstream: UpstreamConfig{
			URL:              getEnv("REQUESTS_SOCKET_URL", "ws://localhost:8001/ws/requests/"),
			ReconnectDelay:   getDuration("REQUESTS_SOCKET_RECONNECT", 0),
			HandshakeTimeout: getDuration("REQUESTS_SOCKET_HANDSHAKE_TIMEOUT", 10*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(firstEnv("KAFKA_BROKERS", "KAFKA_BROKER")),
			GroupID: getEnv("KAFKA_GROUP_ID", "manager-dashboard"),
			Topic:   getEnv("KAFKA_REQUESTS_TOPIC", "customer-requests"),
		},
		Security: SecurityConfig{
			JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
			JWTPublicKey: strings.ReplaceAll(strings.TrimSpace(os.Getenv("JWT_PUBLIC_KEY")), `\n`, "\n"),
			AllowedRoles: splitList(os.Getenv("JWT_ALLOWED_ROLES")),
			CookieSecure: getBool("COOKIE_SECURE", false),
		},
		Logging: LoggingConfig{
			Directory: getEnv("LOG_DIR", "./logs"),
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
		},
		Dashboard: DashboardConfig{
			Timezone:     getEnv("DASHBOARD_TIMEZONE", "Local"),
			SendBuffer:   getInt("WS_SEND_BUFFER", 16),
			AllowOrigins: splitList(os.Getenv("WS_ALLOWED_ORIGINS")),
		},
		Jobs: JobsConfig{
			TickInterval:   getDuration("TICK_INTERVAL", time.Second),
			ResyncInterval: getDuration("RESYNC_INTERVAL", 5*time.Minute),
		},
	}

	loc, err := time.LoadLocation(cfg.Dashboard.Timezone)
	if err != nil {
		return nil, fmt.Errorf("DASHBOARD_TIMEZONE: %w", err)
	}
	cfg.Dashboard.Location = loc

	if cfg.Server.Port == "" {
		return nil, fmt.Errorf("PORT must not be empty")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

// getDuration accepts Go durations ("90s") or bare seconds ("90"). "0" disables a feature.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if value, err := strconv.Atoi(raw); err == nil {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if value, err := strconv.ParseBool(raw); err == nil {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
