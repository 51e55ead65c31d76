package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jobscreen/internal/generation"
	"jobscreen/internal/generation/gemini"
	"jobscreen/internal/generation/ollama"
	"jobscreen/internal/logger"
	"jobscreen/internal/pipeline"
	"jobscreen/internal/secrets"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Classify a single job posting as Real, Fake or Uncertain",
	Long:  "Reads a job posting from --text, --file or stdin, runs the retrieval-and-verdict pipeline and prints the plain-text verdict on stdout.",
	Run: func(cmd *cobra.Command, _ []string) {
		check(cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("text", "t", "", "job posting text")
	checkCmd.Flags().StringP("file", "f", "", "path to a file with the job posting text")
}

func check(cmd *cobra.Command) {
	ctx := context.Background()

	logg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logg.Fatal("getting a config", zap.Error(err))
	}

	text, err := readPosting(cmd)
	if err != nil {
		logg.Fatal("reading the job posting", zap.Error(err))
	}

	checker := newChecker(ctx, config, logg)
	fmt.Println(checker.Check(ctx, text).String())
}

// readPosting resolves the posting text from --text, --file or stdin, in
// that order of precedence.
func readPosting(cmd *cobra.Command) (string, error) {
	if text := cmd.Flag("text").Value.String(); strings.TrimSpace(text) != "" {
		return text, nil
	}

	if path := cmd.Flag("file").Value.String(); strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading posting file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// newChecker assembles the pipeline from the configuration. A broken
// generation backend is logged and left nil: the pipeline degrades to its
// conservative verdict instead of refusing to start.
func newChecker(ctx context.Context, config *Config, logg *zap.Logger) *pipeline.Checker {
	generator, err := newGenerator(ctx, config.Generation, logg)
	if err != nil {
		logg.Warn("generation backend unavailable", zap.Error(err))
	} else {
		logg.Debug("generation backend ready", zap.String("backend", generator.Name()))
	}

	return pipeline.New(pipelineConfig(config), generator, logg)
}

func pipelineConfig(config *Config) pipeline.Config {
	cfg := pipeline.Config{
		DataDir: config.DataDir,
		Strict:  config.Strict,
	}
	if config.Chunk != nil {
		cfg.ChunkSize = config.Chunk.Size
		cfg.ChunkOverlap = config.Chunk.Overlap
	}
	if config.Retrieval != nil {
		cfg.TopK = config.Retrieval.TopK
		cfg.MinDF = config.Retrieval.MinDF
		cfg.MaxDF = config.Retrieval.MaxDF
	}
	if config.Prompt != nil {
		cfg.MaxContextChars = config.Prompt.MaxContextChars
		cfg.MaxQueryChars = config.Prompt.MaxQueryChars
	}
	if config.Evidence != nil {
		cfg.ForcedPerChecklist = config.Evidence.ForcedPerChecklist
		cfg.BiasWeight = config.Evidence.BiasWeight
	} else {
		cfg.ForcedPerChecklist = 1
	}
	return cfg
}

func newGenerator(ctx context.Context, config *GenerationConfig, logg *zap.Logger) (generation.Generator, error) {
	provider := "ollama"
	if config != nil && strings.TrimSpace(config.Provider) != "" {
		provider = strings.ToLower(strings.TrimSpace(config.Provider))
	}

	switch provider {
	case "ollama":
		var model string
		var timeout, warmupTimeout time.Duration
		if config != nil && config.Ollama != nil {
			model = config.Ollama.Model
			timeout = config.Ollama.Timeout
			warmupTimeout = config.Ollama.WarmupTimeout
		}
		return ollama.New(model, timeout, warmupTimeout, logg), nil

	case "gemini":
		if config == nil || config.Gemini == nil {
			return nil, fmt.Errorf("gemini configuration is required when provider is gemini")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: config.Gemini.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set generation.gemini.api-key-file or GEMINI_API_KEY)", err)
		}

		return gemini.New(ctx, apiKey, config.Gemini.Model, config.Gemini.MaxRetries, logg)

	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", provider)
	}
}
