package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	apideal "deal_underwriter/pkg/api/deal"
)

type serverConfig struct {
	Listen string `yaml:"listen"`
}

func main() {
	// Load environment variables
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	// Listen address: config file, then env, then default.
	cfg := serverConfig{Listen: ":8080"}
	if data, err := os.ReadFile("config/server.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logger.Warn("bad server config, using defaults", zap.Error(err))
		}
	}
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.Listen = addr
	}

	handler := apideal.NewHandler(logger)

	// Deal endpoints
	http.HandleFunc("/api/deal/analyze", handler.HandleAnalyze)
	http.HandleFunc("/api/deal/structure", handler.HandleStructure)
	http.HandleFunc("/api/deal/compare", handler.HandleCompare)
	http.HandleFunc("/api/deal/promote", handler.HandlePromote)
	http.HandleFunc("/api/deal/promote-sensitivity", handler.HandlePromoteSensitivity)
	http.HandleFunc("/api/deal/report", handler.HandleReport)

	logger.Info("API server starting", zap.String("listen", cfg.Listen))
	if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}
