package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stakahama/negaposi/internal/cache"
	"github.com/stakahama/negaposi/internal/classify"
	"github.com/stakahama/negaposi/internal/kokkai"
	"github.com/stakahama/negaposi/internal/lexicon"
	"github.com/stakahama/negaposi/internal/model"
	"github.com/stakahama/negaposi/internal/pipeline"
	"github.com/stakahama/negaposi/internal/report"
	"github.com/stakahama/negaposi/internal/score"
	"github.com/stakahama/negaposi/internal/tokenize"
)

var (
	speaker         string
	fromDate        string
	untilDate       string
	mode            string
	assumeYes       bool
	dicPath         string
	classifierName  string
	classifierModel string
	noRobots        bool
	noCache         bool
	timeout         time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <keyword>",
	Short: "Fetch matching speeches and rank affiliations by sentiment",
	Long: `Analyze searches the proceedings API for speeches containing the
keyword, fetches them page by page, groups them by the speaker's party
affiliation, and prints affiliations ranked by sentiment score.

Example:
  negaposi analyze 原発
  negaposi analyze 予算 --speaker 岸田 --from 2024-01-01 --until 2024-12-31
  negaposi analyze 外交 --mode model --classifier openai`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Query flags
	analyzeCmd.Flags().StringVar(&speaker, "speaker", "", "restrict to one speaker name")
	analyzeCmd.Flags().StringVar(&fromDate, "from", "", "start date YYYY-MM-DD (default: one year ago)")
	analyzeCmd.Flags().StringVar(&untilDate, "until", "", "end date YYYY-MM-DD (default: today)")

	// Scoring flags
	analyzeCmd.Flags().StringVar(&mode, "mode", score.ModeLexicon, "scoring mode (lexicon, model)")
	analyzeCmd.Flags().StringVar(&dicPath, "dic", "", "polarity dictionary path (lexicon mode)")
	analyzeCmd.Flags().StringVar(&classifierName, "classifier", "", "classifier provider for model mode (openai, ollama)")
	analyzeCmd.Flags().StringVar(&classifierModel, "classifier-model", "", "classifier model name")

	// Fetch flags
	analyzeCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the fetch confirmation prompt")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip the robots.txt check")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the classifier verdict cache")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request HTTP timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	keyword := args[0]
	ctx := context.Background()

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.Output.Verbose = verbose
	if dicPath != "" {
		cfg.Lexicon.Path = dicPath
	}
	if classifierName != "" {
		cfg.Classifier.Provider = classifierName
	}
	if classifierModel != "" {
		cfg.Classifier.Model = classifierModel
	}
	if noRobots {
		cfg.Fetch.CheckRobots = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Keyword: %s\n", keyword)
		fmt.Fprintf(os.Stderr, "Mode: %s\n", mode)
		fmt.Fprintf(os.Stderr, "Endpoint: %s\n", cfg.Fetch.BaseURL)
		fmt.Fprintln(os.Stderr)
	}

	scorer, err := buildScorer(ctx, cfg)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Config:   cfg,
		Client:   kokkai.NewClient(cfg.HTTP, cfg.Fetch),
		Scorer:   scorer,
		Reporter: report.NewReporter(cfg.Output),
	}
	if cfg.Fetch.CheckRobots {
		p.Robots = kokkai.NewRobotsGate(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	if !assumeYes {
		p.Confirm = confirmFetch
	}

	return p.Run(ctx, model.SearchQuery{
		Keyword: keyword,
		Speaker: speaker,
		From:    fromDate,
		Until:   untilDate,
	})
}

// buildScorer assembles the scoring strategy selected by --mode
func buildScorer(ctx context.Context, cfg *model.Config) (score.Scorer, error) {
	switch mode {
	case score.ModeLexicon:
		lex, err := lexicon.Load(cfg.Lexicon.Path)
		if err != nil {
			return nil, fmt.Errorf("load polarity dictionary: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Loaded %d dictionary entries from %s\n", lex.Len(), cfg.Lexicon.Path)
		}

		tok, err := tokenize.NewKagomeTokenizer()
		if err != nil {
			return nil, err
		}
		return score.NewLexiconScorer(lex, tok), nil

	case score.ModeModel:
		// Get API key from environment
		switch cfg.Classifier.Provider {
		case "openai":
			cfg.Classifier.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Classifier.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.Classifier.BaseURL = baseURL
			}
		}

		classifier, err := classify.NewClassifier(classify.Config{
			Provider:  cfg.Classifier.Provider,
			Model:     cfg.Classifier.Model,
			APIKey:    cfg.Classifier.APIKey,
			BaseURL:   cfg.Classifier.BaseURL,
			Timeout:   cfg.Classifier.Timeout,
			MaxTokens: cfg.Classifier.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		if classifier == nil {
			return nil, fmt.Errorf("model mode requires a classifier provider (--classifier)")
		}
		if !classifier.IsAvailable(ctx) {
			return nil, fmt.Errorf("classifier %s is not available", classifier.Name())
		}

		if cfg.Cache.Enabled {
			store := cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
			classifier = classify.WithCache(classifier, store, cfg.Classifier.Model, cfg.Cache.TTL)
		}

		return score.NewModelScorer(classifier), nil

	default:
		return nil, fmt.Errorf("unknown scoring mode: %s (supported: lexicon, model)", mode)
	}
}

// confirmFetch asks on stdin before a bulk fetch begins. Anything but
// an answer starting with n confirms.
func confirmFetch(total int) bool {
	fmt.Fprintf(os.Stderr, "Fetch %d speeches? [Y/n] ", total)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "n")
}
