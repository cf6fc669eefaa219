package main

import (
	"context"
	"log/slog"
	"os"

	"story-pipeline/bootstrap"
)

func main() {
	if err := bootstrap.Run(context.Background()); err != nil {
		slog.Error("story pipeline exited", "error", err)
		os.Exit(1)
	}
}
