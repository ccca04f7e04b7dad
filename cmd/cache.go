package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/designpipe/config"
	"github.com/gaurav-prasanna/designpipe/core/fetch"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the Figma API response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached API responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCache()
		if err != nil {
			return err
		}
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		loggerFromContext(cmd.Context()).Info("Cache cleared", "dir", cache.Dir())
		return nil
	},
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := openCache()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd, cachePathCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCache() (*fetch.Cache, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	cache, err := fetch.NewCache(cfg.Figma.CacheDir, cfg.Figma.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return cache, nil
}
