// Example program demonstrating the releaserc library API.
//
// Run from the repo root:
//
//	go run ./example/
//
// With remote mode (set GITHUB_TOKEN first):
//
//	GITHUB_TOKEN=ghp_xxx go run ./example/
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/MyCarrier-DevOps/go-releaserc/pkg/sdk"
)

func main() {
	ctx := context.Background()

	localConfig()
	checkRepository(ctx)

	if os.Getenv("GITHUB_TOKEN") != "" {
		remoteConfig(ctx)
	}
}

func localConfig() {
	result, err := sdk.Load(sdk.LoadOptions{Path: "."})
	if err != nil {
		log.Fatalf("loading configuration failed: %v", err)
	}

	data, err := sdk.Render(result.Config, sdk.FormatYAML)
	if err != nil {
		log.Fatalf("rendering configuration failed: %v", err)
	}

	fmt.Printf("=== Local configuration (%s) ===\n%s\n", result.Source, data)
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}

func checkRepository(ctx context.Context) {
	report, err := sdk.Check(ctx, sdk.CheckOptions{Path: "."})
	if err != nil {
		log.Fatalf("preflight failed: %v", err)
	}

	fmt.Println("=== Preflight ===")
	for _, f := range report.Findings {
		fmt.Printf("%-5s %-9s %s\n", f.Status, f.Check, f.Message)
	}
	fmt.Printf("ready: %t\n\n", report.Ready())
}

func remoteConfig(ctx context.Context) {
	result, err := sdk.LoadRemote(ctx, sdk.RemoteOptions{
		Owner: "MyCarrier-DevOps",
		Repo:  "go-releaserc",
		Token: os.Getenv("GITHUB_TOKEN"),
		Ref:   "main",
	})
	if err != nil {
		log.Fatalf("remote load failed: %v", err)
	}

	fmt.Printf("=== Remote configuration (%s) ===\n", result.Source)
	fmt.Printf("branches: %v\nplugins: %v\n", result.Config.BranchNames(), result.Config.PluginNames())
}
