package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nguyentantai21042004/skill-flow/internal/config"
)

const defaultConfigPath = "config.yaml"

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "skills",
		Short:         "Conversation analysis and image description skills",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", defaultConfigPath, "path to the YAML config file")
	root.PersistentFlags().String("log-level", "", "override logging.level (debug|info|warn|error)")
	_ = v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	bindEnv(v)

	root.AddCommand(
		newAnalyzeCmd(v),
		newWatchCmd(v),
		newMemoryCmd(v),
		newImageCmd(v),
	)
	return root
}

// bindEnv maps environment variables onto viper keys. Later names in a
// BindEnv call are fallbacks for earlier ones.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("skills")
	v.AutomaticEnv()
	_ = v.BindEnv("gemini_api_keys", "GEMINI_API_KEYS", "GEMINI_API_KEY")
	_ = v.BindEnv("lemonfox_api_key", "LEMONFOX_API_KEY")
}

// loadConfig reads the config file, applies env/flag overrides and validates.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v.GetString("config"))
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config, v *viper.Viper) {
	if keys := splitKeys(v.GetString("gemini_api_keys")); len(keys) > 0 {
		cfg.Gemini.APIKeys = keys
	}
	if key := strings.TrimSpace(v.GetString("lemonfox_api_key")); key != "" {
		cfg.Transcription.APIKey = key
	}
	if level := strings.TrimSpace(v.GetString("log_level")); level != "" {
		cfg.Logging.Level = level
	}
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// setup loads config and builds the app for a subcommand.
func setup(ctx context.Context, v *viper.Viper, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg, logOut)
}
