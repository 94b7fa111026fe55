package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	StoreAddr        string
	StorePassword    string
	StoreDB          string
	AppPort          string
	AppEnv           string
	JWTSecret        string
	OperatorEmail    string
	OperatorPassHash string
	PrinterName      string
	PrinterStateFile string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		StoreAddr:        os.Getenv("STORE_ADDR"),
		StorePassword:    os.Getenv("STORE_PASSWORD"),
		StoreDB:          os.Getenv("STORE_DB"),
		AppPort:          os.Getenv("APP_PORT"),
		AppEnv:           os.Getenv("APP_ENV"),
		JWTSecret:        os.Getenv("SECRET_KEY"),
		OperatorEmail:    os.Getenv("OPERATOR_EMAIL"),
		OperatorPassHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		PrinterName:      os.Getenv("PRINTER_DEVICE_NAME"),
		PrinterStateFile: os.Getenv("PRINTER_STATE_FILE"),
	}

	if cfg.StoreAddr == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.PrinterName == "" {
		cfg.PrinterName = "BlueTooth Printer"
	}
	if cfg.PrinterStateFile == "" {
		cfg.PrinterStateFile = "printer_state.bin"
	}

	return cfg
}
