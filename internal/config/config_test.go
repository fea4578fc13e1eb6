package config

import (
	"testing"
	"time"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	r := cfg.Retry()
	if r.Attempts != 3 || r.BaseDelay != 50*time.Millisecond || r.MaxDelay != time.Second {
		t.Errorf("retry defaults: %+v", r)
	}
	if cfg.DBLockTimeout != 2*time.Second {
		t.Errorf("lock timeout: %v", cfg.DBLockTimeout)
	}

	p, err := cfg.Policy()
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if p.Open != 8*time.Hour || p.Close != 18*time.Hour {
		t.Errorf("hours: %v-%v", p.Open, p.Close)
	}
	if len(p.Days) != 5 || p.Days[0] != time.Monday {
		t.Errorf("days: %v", p.Days)
	}
	if p.MinAdvance != 2*time.Hour || p.MaxAdvance != 90*24*time.Hour {
		t.Errorf("advance: %v / %v", p.MinAdvance, p.MaxAdvance)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BUSINESS_DAYS", "sat, Sun")
	t.Setenv("BUSINESS_CLOSE", "24:00")
	t.Setenv("BOOKING_MIN_ADVANCE", "30m")
	t.Setenv("BOOKING_RETRY_ATTEMPTS", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("NOTIFY_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p, _ := cfg.Policy()
	if len(p.Days) != 2 || p.Days[0] != time.Saturday || p.Days[1] != time.Sunday {
		t.Errorf("days: %v", p.Days)
	}
	if p.Close != 24*time.Hour {
		t.Errorf("close: %v", p.Close)
	}
	if p.MinAdvance != 30*time.Minute {
		t.Errorf("min advance: %v", p.MinAdvance)
	}
	if cfg.Retry().Attempts != 5 {
		t.Errorf("attempts: %d", cfg.Retry().Attempts)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("origins: %v", cfg.CORSOrigins)
	}
	if cfg.NotifyEnabled {
		t.Error("NOTIFY_ENABLED override ignored")
	}
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	tests := map[string][2]string{
		"unknown day":   {"BUSINESS_DAYS", "Mon,Funday"},
		"bad clock":     {"BUSINESS_OPEN", "8am"},
		"close <= open": {"BUSINESS_CLOSE", "07:00"},
		"bad timezone":  {"CLINIC_TIMEZONE", "Mars/Olympus"},
		"no max delay":  {"BOOKING_RETRY_MAX_DELAY", "0s"},
		"no base delay": {"BOOKING_RETRY_BASE_DELAY", "0s"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"08:00", 8 * time.Hour, true},
		{"17:30", 17*time.Hour + 30*time.Minute, true},
		{"24:00", 24 * time.Hour, true},
		{"24:30", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("%q: err = %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.in, got, tt.want)
		}
	}
}
