package app

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8000" || cfg.DBDriver != "sqlite" || cfg.WSSendBuffer != 64 || cfg.WSPingInterval != 30*time.Second {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.AccessTokenTTL != time.Hour || cfg.RefreshTokenTTL != 24*time.Hour {
		t.Fatalf("token ttl defaults: %v %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		t.Fatalf("no default origins")
	}
	if cfg.MetricsEnabled || cfg.MetricsScrapeInterval != 10*time.Second {
		t.Fatalf("metrics defaults: %v %v", cfg.MetricsEnabled, cfg.MetricsScrapeInterval)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", " Postgres ")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("WS_SEND_BUFFER", "8")
	t.Setenv("REDIS_ADDR", " cache:6379 ")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != "postgres" || cfg.AccessTokenTTL != 15*time.Minute || !cfg.AuthRequired || cfg.WSSendBuffer != 8 {
		t.Fatalf("parsed: %+v", cfg)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Fatalf("origins: got=%v want=%v", cfg.CORSAllowedOrigins, want)
	}
	if !cfg.MetricsEnabled || cfg.Redis().Options().Addr != "cache:6379" {
		t.Fatalf("metrics/redis: %v %q", cfg.MetricsEnabled, cfg.Redis().Options().Addr)
	}
	if cfg.Database().Driver != "postgres" || cfg.Redis().Channel != "engparente:events" {
		t.Fatalf("derived configs: %+v %+v", cfg.Database(), cfg.Redis())
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"driver":   {"DB_DRIVER", "mysql"},
		"ttl":      {"ACCESS_TOKEN_TTL", "-1s"},
		"duration": {"WS_PING_INTERVAL", "soon"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := LoadConfig(); err == nil {
				t.Fatalf("%s=%s accepted", kv[0], kv[1])
			}
		})
	}
}
