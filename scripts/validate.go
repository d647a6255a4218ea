package main

import (
	"flag"
	"log/slog"

	"gymhub/internal/logger"
	"gymhub/internal/validation"
)

func main() {
	var baseURL string
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "Base URL for API validation")
	flag.Parse()

	logger.Init(logger.Config{Level: "info", Format: "text"})
	slog.Info("Starting API validation", "url", baseURL)

	if err := validation.RunValidation(baseURL); err != nil {
		logger.Fatal("❌ Валидация не пройдена", "error", err)
	}

	slog.Info("✅ Валидация успешно пройдена!")
}
