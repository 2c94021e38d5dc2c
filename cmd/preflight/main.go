// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	addr := strings.TrimSpace(os.Getenv("ADDR"))
	logDir := strings.TrimSpace(os.Getenv("LOG_DIR"))
	historyPath := strings.TrimSpace(os.Getenv("HISTORY_PATH"))
	interval := strings.TrimSpace(os.Getenv("CHECK_INTERVAL_MS"))
	admin := strings.TrimSpace(os.Getenv("ADMIN_API_KEYS"))

	if addr == "" {
		warn("ADDR is empty; default in your app may be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if logDir == "" {
		warn("LOG_DIR empty — logs default to ./logs.")
	} else {
		ok("LOG_DIR=" + logDir)
	}

	if historyPath == "" {
		warn("HISTORY_PATH empty — rolling history will not survive restarts.")
	} else {
		ok("HISTORY_PATH present")
	}

	if interval != "" {
		ms, err := strconv.Atoi(interval)
		if err != nil || ms < 0 {
			fail("CHECK_INTERVAL_MS must be a non-negative integer, got " + interval)
		}
		if ms > 0 && ms < 30000 {
			warn("CHECK_INTERVAL_MS below 30000 — runs can take up to 30s and may overlap the tick.")
		}
		ok("CHECK_INTERVAL_MS=" + interval)
	} else {
		warn("CHECK_INTERVAL_MS empty — periodic checks disabled; only the API trigger runs checks.")
	}

	if admin == "" {
		warn("ADMIN_API_KEYS empty — anyone can trigger checks over the API.")
	} else if strings.Contains(admin, " ") {
		warn("ADMIN_API_KEYS contains spaces; use comma-separated with no spaces, e.g. key1,key2")
	} else {
		ok("ADMIN_API_KEYS present")
	}

	ok("preflight passed")
}
