package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jobscreen/internal/logger"
	"jobscreen/internal/verdict"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	defaultResultsFile = "evaluation_results.csv"
)

var evalPrompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptYes, PromptNo},
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the classifier against a labelled CSV dataset",
	Long: "Reads a CSV file where the last numeric column of each row is the expected label " +
		"(0 = Real, 1 = Fake, 2 = Uncertain) and the remaining columns form the posting text. " +
		"Runs every row through the pipeline, writes per-row results and prints accuracy with a confusion matrix.",
	Run: func(cmd *cobra.Command, _ []string) {
		eval(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringP("file", "f", "", "path to the labelled CSV dataset (required)")
	evalCmd.Flags().IntP("max", "m", 0, "evaluate at most this many rows (0 means all)")
	evalCmd.Flags().StringP("output", "o", defaultResultsFile, "path for the per-row results CSV")
	evalCmd.Flags().BoolP("auto-aprove", "y", false, "do not ask for confirmation before running the model")

	evalCmd.MarkFlagRequired("file")
}

// sample is one labelled row of the evaluation dataset.
type sample struct {
	text     string
	expected verdict.Label
}

func eval(cmd *cobra.Command) {
	ctx := context.Background()

	logg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logg.Fatal("getting a config", zap.Error(err))
	}

	path := cmd.Flag("file").Value.String()
	samples, skipped, err := loadSamples(path)
	if err != nil {
		logg.Fatal("loading the evaluation dataset", zap.Error(err))
	}
	if skipped > 0 {
		logg.Info("skipped rows without a usable label", zap.Int("count", skipped))
	}
	if len(samples) == 0 {
		logg.Fatal("the dataset contains no labelled rows", zap.String("file", path))
	}

	if max, _ := cmd.Flags().GetInt("max"); max > 0 && max < len(samples) {
		samples = samples[:max]
	}

	fmt.Printf("About to run %d model call(s) for %q.\n", len(samples), path)

	if auto, _ := cmd.Flags().GetBool("auto-aprove"); !auto {
		_, answer, err := evalPrompt.Run()
		if err != nil {
			logg.Fatal("running the confirmation prompt", zap.Error(err))
		}
		if answer != PromptYes {
			logg.Info("evaluation cancelled")
			return
		}
	}

	checker := newChecker(ctx, config, logg)

	output := cmd.Flag("output").Value.String()
	out, err := os.Create(output)
	if err != nil {
		logg.Fatal("creating the results file", zap.Error(err))
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"expected", "predicted", "match", "reasons", "text"}); err != nil {
		logg.Fatal("writing the results header", zap.Error(err))
	}

	// confusion[actual][predicted], indexed via labelIndex.
	var confusion [3][3]int
	correct := 0

	for i, s := range samples {
		result := checker.Check(ctx, s.text)

		match := result.Label == s.expected
		if match {
			correct++
		}
		confusion[labelIndex(s.expected)][labelIndex(result.Label)]++

		logg.Debug("evaluated a row",
			zap.Int("row", i+1),
			zap.String("expected", string(s.expected)),
			zap.String("predicted", string(result.Label)),
		)

		record := []string{
			string(s.expected),
			string(result.Label),
			strconv.FormatBool(match),
			strings.Join(result.Reasons, "; "),
			s.text,
		}
		if err := w.Write(record); err != nil {
			logg.Fatal("writing a result row", zap.Error(err))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		logg.Fatal("flushing the results file", zap.Error(err))
	}

	fmt.Print(report(len(samples), correct, confusion))
	logg.Info("evaluation finished", zap.String("results", output))
}

// loadSamples parses the dataset. For each row the rightmost integer column
// in [0, 2] is the expected label and the remaining columns, joined with a
// space, are the posting text. Rows without such a column (headers included)
// are skipped and counted.
func loadSamples(path string) ([]sample, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("parsing dataset: %w", err)
	}

	var samples []sample
	skipped := 0

	for _, record := range records {
		s, ok := parseSample(record)
		if !ok {
			skipped++
			continue
		}
		samples = append(samples, s)
	}

	return samples, skipped, nil
}

func parseSample(record []string) (sample, bool) {
	for i := len(record) - 1; i >= 0; i-- {
		label, ok := numericLabel(record[i])
		if !ok {
			continue
		}

		rest := make([]string, 0, len(record)-1)
		for j, field := range record {
			if j == i {
				continue
			}
			rest = append(rest, field)
		}

		text := strings.TrimSpace(strings.Join(rest, " "))
		if text == "" {
			return sample{}, false
		}
		return sample{text: text, expected: label}, true
	}

	return sample{}, false
}

func numericLabel(field string) (verdict.Label, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return "", false
	}
	switch n {
	case 0:
		return verdict.Real, true
	case 1:
		return verdict.Fake, true
	case 2:
		return verdict.Uncertain, true
	}
	return "", false
}

// labels fixes the row and column order of the confusion matrix.
var labels = [3]verdict.Label{verdict.Real, verdict.Fake, verdict.Uncertain}

func labelIndex(label verdict.Label) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return 2
}

func report(total, correct int, confusion [3][3]int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nEvaluated %d row(s), %d correct (accuracy %.1f%%).\n\n", total, correct, 100*float64(correct)/float64(total))

	b.WriteString("Confusion matrix (rows are expected, columns are predicted):\n")
	fmt.Fprintf(&b, "%-12s", "")
	for _, label := range labels {
		fmt.Fprintf(&b, "%10s", label)
	}
	b.WriteString("\n")

	for i, label := range labels {
		fmt.Fprintf(&b, "%-12s", label)
		for j := range labels {
			fmt.Fprintf(&b, "%10d", confusion[i][j])
		}
		b.WriteString("\n")
	}

	return b.String()
}
