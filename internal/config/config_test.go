package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "LEADS_BACKEND", "DATABASE_URL", "LEADS_TABLE",
		"LEAD_INSERT_TIMEOUT", "MAX_BODY_BYTES", "CORS_ALLOWED_ORIGINS", "METRICS_ENABLED",
		"LEADFORM_ENDPOINT", "LEADFORM_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.LeadsBackend != BackendPostgres {
		t.Fatalf("expected postgres backend by default, got %s", cfg.LeadsBackend)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("expected empty database url, got %s", cfg.DatabaseURL)
	}
	if cfg.LeadsTable != "leads" {
		t.Fatalf("expected default leads table, got %s", cfg.LeadsTable)
	}
	if cfg.LeadInsertTimeout != 10*time.Second {
		t.Fatalf("expected default insert timeout, got %s", cfg.LeadInsertTimeout)
	}
	if cfg.MaxBodyBytes != 64<<10 {
		t.Fatalf("expected default body cap, got %d", cfg.MaxBodyBytes)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
	if cfg.LeadFormEndpoint != "http://localhost:8080/api/submit-lead" {
		t.Fatalf("unexpected default form endpoint %s", cfg.LeadFormEndpoint)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LEADS_BACKEND", " DynamoDB ")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("LEADS_TABLE", "landing-leads")
	t.Setenv("LEAD_INSERT_TIMEOUT", "3s")
	t.Setenv("MAX_BODY_BYTES", "1024")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LEADFORM_TIMEOUT", "2s")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.LeadsBackend != BackendDynamoDB {
		t.Fatalf("expected normalized backend, got %q", cfg.LeadsBackend)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.LeadsTable != "landing-leads" {
		t.Fatalf("expected table override, got %s", cfg.LeadsTable)
	}
	if cfg.LeadInsertTimeout != 3*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.LeadInsertTimeout)
	}
	if cfg.MaxBodyBytes != 1024 {
		t.Fatalf("expected body cap override, got %d", cfg.MaxBodyBytes)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Fatalf("expected origins %v, got %v", want, cfg.CORSAllowedOrigins)
	}
	if cfg.MetricsEnabled {
		t.Fatalf("expected metrics disabled")
	}
	if cfg.LeadFormTimeout != 2*time.Second {
		t.Fatalf("expected form timeout override, got %s", cfg.LeadFormTimeout)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("LEAD_INSERT_TIMEOUT", "soon")
	t.Setenv("MAX_BODY_BYTES", "lots")
	t.Setenv("METRICS_ENABLED", "maybe")
	cfg := Load()
	if cfg.LeadInsertTimeout != 10*time.Second {
		t.Fatalf("expected fallback timeout, got %s", cfg.LeadInsertTimeout)
	}
	if cfg.MaxBodyBytes != 64<<10 {
		t.Fatalf("expected fallback body cap, got %d", cfg.MaxBodyBytes)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected fallback metrics enabled")
	}
}
