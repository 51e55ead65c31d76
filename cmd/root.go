package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobscreen"
)

// Config is the full application configuration, unmarshalled from the
// config file with flag and environment overrides.
type Config struct {
	DataDir    string            `mapstructure:"data-dir"`
	Strict     bool              `mapstructure:"strict"`
	Chunk      *ChunkConfig      `mapstructure:"chunk"`
	Retrieval  *RetrievalConfig  `mapstructure:"retrieval"`
	Prompt     *PromptConfig     `mapstructure:"prompt"`
	Evidence   *EvidenceConfig   `mapstructure:"evidence"`
	Generation *GenerationConfig `mapstructure:"generation"`
	Serve      *ServeConfig      `mapstructure:"serve"`
}

type ChunkConfig struct {
	Size    int `mapstructure:"size"`
	Overlap int `mapstructure:"overlap"`
}

type RetrievalConfig struct {
	TopK  int     `mapstructure:"top-k"`
	MinDF int     `mapstructure:"min-df"`
	MaxDF float64 `mapstructure:"max-df"`
}

type PromptConfig struct {
	MaxContextChars int `mapstructure:"max-context-chars"`
	MaxQueryChars   int `mapstructure:"max-query-chars"`
}

type EvidenceConfig struct {
	ForcedPerChecklist int     `mapstructure:"forced-per-checklist"`
	BiasWeight         float64 `mapstructure:"bias-weight"`
}

type GenerationConfig struct {
	Provider string        `mapstructure:"provider"`
	Ollama   *OllamaConfig `mapstructure:"ollama"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type OllamaConfig struct {
	Model         string        `mapstructure:"model"`
	Timeout       time.Duration `mapstructure:"timeout"`
	WarmupTimeout time.Duration `mapstructure:"warmup-timeout"`
}

type GeminiConfig struct {
	Model      string `mapstructure:"model"`
	APIKeyFile string `mapstructure:"api-key-file"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type ServeConfig struct {
	Listen string `mapstructure:"listen"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobscreen classifies job postings as Real, Fake or Uncertain using a local evidence corpus and a text-generation model",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("generation.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscreen.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("data-dir", "", "directory with the evidence corpus (default ./data)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// A missing config file is fine since every key has a default; a config
	// file that exists but does not parse is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.DataDir == "" {
		config.DataDir = "data"
	}
	return config, nil
}
