// Command areacheck checks addresses against the configured delivery service
// area from a terminal. It reads the same environment variables as the server.
//
// Usage:
//
//	areacheck check "10 Park Road, KT2 6QL"
//	areacheck check --lat 51.42 --lon -0.21 "The Broadway"
//	areacheck describe
//	printf 'K\nKT\nKT2 6QL\n' | areacheck watch
package main

import (
	"os"

	"github.com/couchcryptid/delivery-area-service/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	root := newRootCmd(observability.NewMetrics())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
