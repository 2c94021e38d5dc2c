package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr          string        // API bind address, e.g., "127.0.0.1:8080" (Windows) or ":8080" (Docker)
	LogDir        string        // logs directory
	HistoryPath   string        // sqlite file for the rolling history; empty means in-memory
	CheckInterval time.Duration // periodic re-check interval; 0 disables the scheduler
	AdminAPIKeys  []string      // keys allowed to trigger checks over the API
	TriggerRPM    int           // rate limit for the check-trigger endpoint
	TriggerBurst  int
}

func FromEnv() Config {
	// Bind address (Windows-friendly default)
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	// History (empty means use the in-memory store)
	historyPath := os.Getenv("HISTORY_PATH")

	interval := time.Duration(0)
	if v := os.Getenv("CHECK_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			interval = time.Duration(ms) * time.Millisecond
		}
	}

	triggerRPM := 6
	if v := os.Getenv("TRIGGER_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			triggerRPM = n
		}
	}
	triggerBurst := 2
	if v := os.Getenv("TRIGGER_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			triggerBurst = n
		}
	}

	return Config{
		Addr:          addr,
		LogDir:        logDir,
		HistoryPath:   historyPath,
		CheckInterval: interval,
		AdminAPIKeys:  splitKeys(os.Getenv("ADMIN_API_KEYS")),
		TriggerRPM:    triggerRPM,
		TriggerBurst:  triggerBurst,
	}
}

func splitKeys(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
