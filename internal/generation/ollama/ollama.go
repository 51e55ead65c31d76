// Package ollama invokes a locally installed ollama binary as the
// generation backend. The prompt travels on stdin and the raw completion is
// read from stdout, so the integration survives any ollama version that
// keeps the `ollama run <model>` contract.
package ollama

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobscreen/internal/logger"
)

const (
	defaultModel         = "phi3"
	defaultTimeout       = 60 * time.Second
	defaultWarmupTimeout = 30 * time.Second

	// warmupPrompt is a trivial completion that forces model load without
	// producing interesting output.
	warmupPrompt = "ok"
)

// runner abstracts process execution so the retry policy is testable
// without a real ollama install.
type runner func(ctx context.Context, model, prompt string) (string, error)

// state tracks the invoker through its bounded retry sequence.
type state int

const (
	stateIdle state = iota
	stateCalling
	stateWarmingUp
	stateDone
)

// Invoker runs the ollama CLI with a timeout and a single warm-up-then-retry
// fallback. First calls after boot routinely time out while the model loads;
// the warm-up forces initialization so the one retry has a fair chance.
type Invoker struct {
	model         string
	timeout       time.Duration
	warmupTimeout time.Duration
	logger        *zap.Logger

	run runner
}

// New creates an invoker for the given model. Zero values fall back to
// defaults.
func New(model string, timeout, warmupTimeout time.Duration, logg *zap.Logger) *Invoker {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if warmupTimeout <= 0 {
		warmupTimeout = defaultWarmupTimeout
	}

	inv := &Invoker{
		model:         model,
		timeout:       timeout,
		warmupTimeout: warmupTimeout,
		logger:        logger.WithBackend(logg, "ollama", model),
	}
	inv.run = inv.runProcess
	return inv
}

func (i *Invoker) Name() string { return "ollama/" + i.model }

// Generate executes the bounded state machine:
// Idle -> Calling -> {success | failure} -> WarmingUp -> Calling -> Done.
// At most one warm-up and one retry; when both attempts fail the last error
// is returned for the pipeline to degrade on.
func (i *Invoker) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for st := stateCalling; st != stateDone; {
		switch st {
		case stateCalling:
			callCtx, cancel := context.WithTimeout(ctx, i.timeout)
			output, err := i.run(callCtx, i.model, prompt)
			cancel()

			if err == nil && strings.TrimSpace(output) != "" {
				return strings.TrimSpace(output), nil
			}
			if err == nil {
				err = errors.New("model produced no output")
			}

			if lastErr != nil {
				// Second attempt already failed; stop here.
				return "", fmt.Errorf("generation failed after warm-up retry: %w", err)
			}
			lastErr = err
			i.logger.Warn("generation attempt failed, warming up model", zap.Error(err))
			st = stateWarmingUp

		case stateWarmingUp:
			warmCtx, cancel := context.WithTimeout(ctx, i.warmupTimeout)
			if _, err := i.run(warmCtx, i.model, warmupPrompt); err != nil {
				i.logger.Debug("warm-up call failed", zap.Error(err))
			}
			cancel()
			st = stateCalling
		}
	}

	return "", lastErr
}

// runProcess executes `ollama run <model>` with the prompt on stdin.
func (i *Invoker) runProcess(ctx context.Context, model, prompt string) (string, error) {
	cmd := exec.CommandContext(ctx, "ollama", "run", model)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.New("ollama call timed out")
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("ollama run: %w: %s", err, detail)
		}
		return "", fmt.Errorf("ollama run: %w", err)
	}

	return stdout.String(), nil
}
