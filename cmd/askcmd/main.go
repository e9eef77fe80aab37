package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fail(err)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	if hint := domain.Hint(err); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
	os.Exit(1)
}

func isVerbose() bool {
	v := os.Getenv(domain.EnvDebug)
	return strings.EqualFold(v, "1") || strings.EqualFold(v, "true")
}
