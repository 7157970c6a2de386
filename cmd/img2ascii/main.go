// Command img2ascii converts images to ASCII art.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/wbrown/img2ascii/internal/config"
	"github.com/wbrown/img2ascii/internal/configpaths"
	"github.com/wbrown/img2ascii/internal/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env files feed the env-backed flags, so they load before parsing.
	envFiles, envErr := configpaths.LoadEnv(".")

	userCfg := configpaths.FindUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("img2ascii"),
		kong.Description("Convert images to ASCII art using measured glyph intensities."),
		kong.UsageOnError(),
		config.Vars(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		return 2
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()
	if envErr != nil {
		logger.Warn("failed to load env file", "error", envErr)
	}
	if len(envFiles) > 0 {
		logger.Debug("loaded env files", "files", envFiles)
	}

	catalog, err := cli.LoadCatalog()
	if err != nil {
		// Nothing can be converted without font data.
		logger.Error("failed to load font catalog", "catalog", cli.Catalog, "error", err)
		return 1
	}
	logger.Debug("loaded font catalog", "fonts", catalog.Names())

	ctx.Bind(logger)
	ctx.Bind(catalog)

	err = ctx.Run()
	if err != nil {
		logger.Error("command failed", slog.String("command", ctx.Command()), slog.Any("error", err))
		return 1
	}
	return 0
}
