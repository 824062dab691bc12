// Command sample-data generates a synthetic wellness snapshot and submits
// it to a running engine, so the dashboard endpoints have data to serve.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/vitalis/internal/sample"
	"github.com/okian/vitalis/pkg/logger"
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9090", "base URL of the engine")
		days    = flag.Int("days", 7, "number of daily records to generate")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed (fixed seed gives reproducible data)")
		timeout = flag.Duration("timeout", 30*time.Second, "HTTP request timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get().Named("sample-data")
	ctx := context.Background()

	snap := sample.NewGenerator(*seed).Snapshot(*days)
	log.Info(ctx, "generated snapshot",
		logger.String("snapshotID", snap.ID),
		logger.Int("days", *days),
		logger.Int("sleepSegments", len(snap.Sleep)),
		logger.Int("intradaySamples", len(snap.HRIntraday)),
	)

	body, err := sample.Post(ctx, *baseURL, snap, *timeout)
	if err != nil {
		log.Error(ctx, "submit failed", logger.Error(err), logger.String("response", body))
		os.Exit(1)
	}
	log.Info(ctx, "snapshot accepted", logger.String("response", body))
}
