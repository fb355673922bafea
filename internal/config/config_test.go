package config

import (
	"testing"
	"time"
)

func TestLoad_Default(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("LOG_FORMAT", "")
	Load()
	if Cfg.Port != "8080" {
		t.Errorf("porta predefinita attesa 8080, ottenuta %s", Cfg.Port)
	}
	if Cfg.RateLimitRPS != 20 || Cfg.LogFormat != "json" {
		t.Errorf("valori predefiniti inattesi: rps=%d formato=%s", Cfg.RateLimitRPS, Cfg.LogFormat)
	}
	if err := Cfg.Validate(); err != nil {
		t.Errorf("configurazione predefinita non valida: %v", err)
	}
}

func TestLoad_Ambiente(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("H2C_ENABLED", "true")
	t.Setenv("ANNO_FISCALE", "2025")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_FORMAT", "TEXT")
	Load()
	if Cfg.Port != "9090" || !Cfg.H2CEnabled || Cfg.AnnoFiscale != 2025 {
		t.Errorf("variabili d'ambiente ignorate: %+v", Cfg)
	}
	if Cfg.ShutdownTimeout != 3*time.Second || Cfg.LogFormat != "text" {
		t.Errorf("timeout/formato inattesi: %v %s", Cfg.ShutdownTimeout, Cfg.LogFormat)
	}
}

func TestEnvHelpers_ValoriErrati(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "forse")
	t.Setenv("X_DUR", "dieci")
	if envInt("X_INT", 7) != 7 || envBool("X_BOOL", true) != true || envDuration("X_DUR", time.Minute) != time.Minute {
		t.Error("valori non parsabili devono usare il fallback")
	}
}

func TestValidate_Errori(t *testing.T) {
	c := Config{Port: "porta", RateLimitRPS: 0, RateLimitBurst: 1, MaxUploadMB: 0, LogFormat: "xml"}
	if err := c.Validate(); err == nil {
		t.Error("configurazione errata accettata")
	}
}
