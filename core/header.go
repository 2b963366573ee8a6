package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// headersEnabled reports whether headers can be printed without corrupting
// machine-readable output on stdout.
func headersEnabled(cfg *contract.Config) bool {
	return cfg.Output == schema.TextOut || cfg.Output == "" || cfg.OutputFile != ""
}

// logScoreHeader prints a concise, 2-line header for scoring one version.
func logScoreHeader(cfg *contract.Config, dir, version string) {
	if !headersEnabled(cfg) {
		return
	}
	if cfg.UseEmojis {
		fmt.Printf("🔎 Project: %s (Version: %s)\n", cfg.Project, version)
		fmt.Printf("📂 Results: %s\n", dir)
		return
	}
	fmt.Printf("Project: %s (Version: %s)\n", cfg.Project, version)
	fmt.Printf("Results: %s\n", dir)
}

// logTrendHeader prints a header for scoring several versions in order.
func logTrendHeader(cfg *contract.Config) {
	if !headersEnabled(cfg) {
		return
	}
	versions := strings.Join(cfg.VersionNames, " → ")
	if cfg.UseEmojis {
		fmt.Printf("🔎 Project: %s\n", cfg.Project)
		fmt.Printf("📈 Versions: %s (%d points)\n", versions, len(cfg.VersionNames))
		return
	}
	fmt.Printf("Project: %s\n", cfg.Project)
	fmt.Printf("Versions: %s (%d points)\n", versions, len(cfg.VersionNames))
}

// logCompareHeader prints a header for comparing two versions.
func logCompareHeader(cfg *contract.Config) {
	if !headersEnabled(cfg) {
		return
	}
	if cfg.UseEmojis {
		fmt.Printf("🔎 Project: %s (Indicator: %s)\n", cfg.Project, cfg.Indicator)
		fmt.Printf("📊 Comparing: %s ↔ %s\n", cfg.VersionNames[0], cfg.VersionNames[1])
		return
	}
	fmt.Printf("Project: %s (Indicator: %s)\n", cfg.Project, cfg.Indicator)
	fmt.Printf("Comparing: %s <-> %s\n", cfg.VersionNames[0], cfg.VersionNames[1])
}
