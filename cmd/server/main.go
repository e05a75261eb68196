// Package main provides the sun times API HTTP server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"go.ngs.io/suntimes-api/internal/adapter/store"
	"go.ngs.io/suntimes-api/internal/adapter/store/csv"
	"go.ngs.io/suntimes-api/internal/adapter/store/grid"
	httpHandler "go.ngs.io/suntimes-api/internal/http"
	"go.ngs.io/suntimes-api/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("suntimes-api version %s\n", version)
		return
	}

	// Load configuration from environment.
	port := getEnv("PORT", "8080")
	dataDir := getEnv("DATA_DIR", "./data")
	gridPath := getEnv("DAYLENGTH_GRID_PATH", "")
	memoSize := getEnvInt("MEMO_SIZE", usecase.DefaultMemoSize)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(getEnv("LOG_LEVEL", "info")),
	}))
	slog.SetDefault(logger)

	logger.Info("starting sun times API server",
		"version", version,
		"port", port,
		"data_dir", dataDir,
		"memo_size", memoSize,
	)

	// Initialize stores.
	var places store.PlaceLoader = csv.NewPlaceStore(dataDir)

	// Initialize day-length grid (optional).
	var dayLengthGrid store.DayLengthGrid
	if gridPath != "" {
		gridStore := grid.NewStore(gridPath)
		meta, err := gridStore.Metadata()
		if err != nil {
			logger.Error("failed to open day-length grid", "path", gridPath, "error", err)
			os.Exit(1)
		}
		logger.Info("day-length grid enabled", "path", gridPath, "year", meta.Year, "depression_deg", meta.DepressionDeg)
		dayLengthGrid = gridStore
	} else {
		logger.Info("day-length grid disabled (DAYLENGTH_GRID_PATH not set)")
	}

	// Initialize use case.
	sunTimesUC := usecase.NewSunTimesUseCase(places, dayLengthGrid, usecase.NewMemo(memoSize))

	// Setup router.
	router := httpHandler.SetupRouter(sunTimesUC, logger)

	addr := fmt.Sprintf(":%s", port)
	logger.Info("server listening", "addr", addr)

	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt is getEnv for integers; unparsable values fall back to the
// default.
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Sun Times API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  suntimes-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  DATA_DIR                Directory holding places.csv (default: ./data)")
	fmt.Println("  DAYLENGTH_GRID_PATH     Day-length NetCDF grid (optional, enables source=grid)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println("  MEMO_SIZE               Maximum cached days (default: 4096)")
	fmt.Println("  LOG_LEVEL               debug, info, warn, or error (default: info)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  suntimes-api")
	fmt.Println()
	fmt.Println("  # Serve interpolated day lengths from a generated grid")
	fmt.Println("  DAYLENGTH_GRID_PATH=./data/daylength.nc suntimes-api")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /health                    Health check")
	fmt.Println("  GET /metrics                   Prometheus metrics")
	fmt.Println("  GET /v1/places                 List named places")
	fmt.Println("  GET /v1/sun/times              Sunrise, solar noon and sunset")
	fmt.Println("  GET /v1/sun/daylength          Day length (engine or grid)")
	fmt.Println()
}
