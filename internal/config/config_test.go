package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("STORE_ADDR", "localhost:6379")
		t.Setenv("STORE_PASSWORD", "storepass")
		t.Setenv("STORE_DB", "0")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("SECRET_KEY", "jwt_secret")
		t.Setenv("OPERATOR_EMAIL", "admin@example.com")
		t.Setenv("OPERATOR_PASSWORD_HASH", "$2a$10$abc")
		t.Setenv("PRINTER_DEVICE_NAME", "BlueTooth Printer")
		t.Setenv("PRINTER_STATE_FILE", "/tmp/printer_state.bin")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost:6379", cfg.StoreAddr)
		assert.Equal(t, "storepass", cfg.StorePassword)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "jwt_secret", cfg.JWTSecret)
		assert.Equal(t, "admin@example.com", cfg.OperatorEmail)
		assert.Equal(t, "BlueTooth Printer", cfg.PrinterName)
		assert.Equal(t, "/tmp/printer_state.bin", cfg.PrinterStateFile)
	})

	t.Run("Printer defaults applied", func(t *testing.T) {
		t.Setenv("STORE_ADDR", "localhost:6379")
		t.Setenv("PRINTER_DEVICE_NAME", "")
		t.Setenv("PRINTER_STATE_FILE", "")

		cfg := LoadConfig()

		assert.Equal(t, "BlueTooth Printer", cfg.PrinterName)
		assert.Equal(t, "printer_state.bin", cfg.PrinterStateFile)
	})
}
