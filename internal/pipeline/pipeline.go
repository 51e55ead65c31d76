// Package pipeline wires the retrieval-and-verdict flow together: rule
// prefilter, corpus loading, TF-IDF retrieval, evidence tagging, prompt
// assembly, model invocation and output normalization. Every failure mode
// degrades into a well-formed verdict; Check never fails.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"jobscreen/internal/corpus"
	"jobscreen/internal/generation"
	"jobscreen/internal/logger"
	"jobscreen/internal/prefilter"
	"jobscreen/internal/retrieval"
	"jobscreen/internal/verdict"
)

// Config carries every tunable of the pipeline, injected once at
// construction instead of being read from the process environment ad hoc.
type Config struct {
	DataDir            string
	ChunkSize          int
	ChunkOverlap       int
	TopK               int
	MinDF              int
	MaxDF              float64
	MaxContextChars    int
	MaxQueryChars      int
	ForcedPerChecklist int
	BiasWeight         float64
	// Strict switches every degradation point from Uncertain to Fake.
	Strict bool
}

// Defaults mirror the reference deployment: 600/120 chunking, top-3
// retrieval, 3000-char context window.
func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 600
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		c.ChunkOverlap = 120
	}
	if c.TopK <= 0 {
		c.TopK = 3
	}
	if c.MinDF < 1 {
		c.MinDF = 1
	}
	if c.MaxDF <= 0 || c.MaxDF > 1 {
		c.MaxDF = 0.9
	}
	if c.MaxContextChars <= 0 {
		c.MaxContextChars = 3000
	}
	if c.MaxQueryChars <= 0 {
		c.MaxQueryChars = 1500
	}
	if c.ForcedPerChecklist < 0 {
		c.ForcedPerChecklist = 0
	}
	if c.BiasWeight == 0 {
		c.BiasWeight = 1
	}
	return c
}

// Checker runs the full pipeline for one job posting per Check call. It
// holds no cross-invocation state: the corpus is reloaded and re-vectorized
// every time, trading recomputation for zero cache-invalidation concerns.
type Checker struct {
	cfg        Config
	generator  generation.Generator
	normalizer *verdict.Normalizer
	logger     *zap.Logger
}

const maxReasonPreview = 200

// New builds a Checker. The generator may be nil, in which case generation
// is treated as permanently failed and every non-prefilter path degrades.
func New(cfg Config, gen generation.Generator, log *zap.Logger) *Checker {
	cfg = cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}

	fallback := verdict.Uncertain
	if cfg.Strict {
		fallback = verdict.Fake
	}

	return &Checker{
		cfg:        cfg,
		generator:  gen,
		normalizer: verdict.NewNormalizer(fallback),
		logger:     log,
	}
}

// Check classifies one job posting. It always returns a well-formed
// verdict, absorbing corpus, retrieval and generation failures per the
// degradation policy.
func (c *Checker) Check(ctx context.Context, rawText string) *verdict.Verdict {
	query := NormalizeQuery(rawText, c.cfg.MaxQueryChars)
	if query == "" {
		return verdict.New(c.fallback(), "no job text provided")
	}

	if v := prefilter.Check(query); v != nil {
		c.logger.Info("prefilter verdict",
			zap.String("label", string(v.Label)),
			zap.Strings("reasons", v.Reasons),
		)
		return v
	}

	passages := c.loadCorpus()
	if len(passages) == 0 {
		// Rule checks found nothing and there is no evidence to weigh the
		// posting against; absence of strong red flags is the only signal.
		return verdict.New(verdict.Real,
			"no strong red flags detected by rule checks",
			"no local evidence corpus available for deeper review",
		)
	}

	results, err := retrieval.Retrieve(passages, query, c.cfg.TopK, c.cfg.MinDF, c.cfg.MaxDF)
	if err != nil {
		c.logger.Warn("retrieval failed", zap.Error(err))
		return verdict.New(c.fallback(), "internal retrieval error, posting not evaluated against evidence")
	}

	evidence := selectEvidence(passages, results, c.cfg.ForcedPerChecklist)
	netBias := bias(evidence, c.cfg.BiasWeight)
	prompt := buildPrompt(evidence, netBias, query, c.cfg.MaxContextChars)

	c.logger.Debug("assembled prompt",
		zap.Int("evidence_passages", len(evidence)),
		zap.Float64("net_bias", netBias),
		zap.Int("prompt_length", len(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, maxReasonPreview)),
	)

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("generation failed", zap.Error(err))
		reason := fmt.Sprintf("model unavailable (%s)", logger.TruncateForLog(err.Error(), maxReasonPreview))
		return verdict.New(c.fallback(), reason)
	}

	c.logger.Debug("raw generation output",
		zap.Int("output_length", len(raw)),
		zap.String("output_preview", logger.TruncateForLog(raw, maxReasonPreview)),
	)

	return c.normalizer.Normalize(raw)
}

func (c *Checker) generate(ctx context.Context, prompt string) (string, error) {
	if c.generator == nil {
		return "", fmt.Errorf("no generation backend configured")
	}
	return c.generator.Generate(ctx, prompt)
}

func (c *Checker) fallback() verdict.Label {
	if c.cfg.Strict {
		return verdict.Fake
	}
	return verdict.Uncertain
}

// loadCorpus reads and chunks the evidence library. Loader problems are
// logged and treated as an empty corpus, never surfaced as failures.
func (c *Checker) loadCorpus() []corpus.Passage {
	docs, err := corpus.Load(c.cfg.DataDir)
	if err != nil {
		c.logger.Warn("loading corpus", zap.Error(err))
		return nil
	}

	passages := corpus.Build(docs, c.cfg.ChunkSize, c.cfg.ChunkOverlap)
	c.logger.Debug("corpus loaded",
		zap.Int("documents", len(docs)),
		zap.Int("passages", len(passages)),
	)
	return passages
}
