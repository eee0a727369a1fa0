package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"robustgo/pkg/cache"
	"robustgo/pkg/core"
	"robustgo/pkg/dataset"
	"robustgo/pkg/model"
	"robustgo/pkg/perturb"
	"robustgo/pkg/reporter"
	"robustgo/pkg/results"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCommand() *cobra.Command {
	var (
		datasetPath    string
		task           string
		labels         []string
		languages      []string
		limit          int
		provider       string
		modelName      string
		mockResponse   string
		batchSize      int
		workers        int
		seed           int64
		outputDir      string
		format         string
		outputPath     string
		perturbFlags   []string
		cacheEnabled   bool
		cacheDir       string
		rateLimitRPS   float64
		rateLimitBurst int
		temperature    float64
		maxTokens      int
		topP           float64
		systemPrompt   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a robustness sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveString(datasetPath, appConfig.Dataset)
			if path == "" {
				return errors.New("dataset path is required")
			}
			taskResolved := resolveString(task, appConfig.Task)
			if taskResolved == "" {
				taskResolved = "sentiment"
			}
			labelsResolved := labels
			if len(labelsResolved) == 0 {
				labelsResolved = appConfig.Labels
			}
			if len(labelsResolved) == 0 {
				labelsResolved = defaultLabels(taskResolved)
			}
			if len(labelsResolved) == 0 {
				return fmt.Errorf("no label set for task %q; pass --labels", taskResolved)
			}
			languagesResolved := languages
			if len(languagesResolved) == 0 {
				languagesResolved = appConfig.Languages
			}
			limitResolved := resolveInt(limit, appConfig.Limit, 0)
			providerResolved := resolveString(provider, appConfig.Provider)
			if providerResolved == "" {
				providerResolved = "mock"
			}
			modelResolved := resolveString(modelName, appConfig.Model.Name)
			mockResolved := resolveString(mockResponse, appConfig.Model.MockResponse)
			outputDirResolved := resolveString(outputDir, appConfig.OutputDir)
			if outputDirResolved == "" {
				outputDirResolved = "./results"
			}
			formatResolved := resolveString(format, appConfig.Format)
			if formatResolved == "" {
				formatResolved = "table"
			}
			outputResolved := resolveString(outputPath, appConfig.Output)
			batchResolved := resolveInt(batchSize, appConfig.BatchSize, 16)
			workerCount := resolveInt(workers, appConfig.Workers, 1)
			seedResolved := seed
			if !cmd.Flags().Changed("seed") && appConfig.Seed != 0 {
				seedResolved = appConfig.Seed
			}
			rpsResolved := rateLimitRPS
			if rpsResolved <= 0 {
				rpsResolved = appConfig.RateLimitRPS
			}
			burstResolved := resolveInt(rateLimitBurst, appConfig.RateLimitBurst, 1)

			specs, err := resolvePerturbations(perturbFlags, appConfig.Perturbations)
			if err != nil {
				return err
			}

			examples, err := dataset.Load(path)
			if err != nil {
				return err
			}
			examples = dataset.FilterLanguages(examples, languagesResolved)
			examples = dataset.Limit(examples, limitResolved)
			if len(examples) == 0 {
				return errors.New("dataset is empty after filtering")
			}
			for lang, count := range dataset.Stats(examples) {
				logger.Info("loaded examples", zap.String("language", lang), zap.Int("count", count))
			}

			var rateLimiter core.RateLimiter
			if rpsResolved > 0 {
				limiter, stop, err := core.NewRateLimiter(rpsResolved, burstResolved)
				if err != nil {
					return err
				}
				rateLimiter = limiter
				defer stop()
			}

			backend, err := buildModel(providerResolved, modelResolved, mockResolved, labelsResolved)
			if err != nil {
				return err
			}
			if cacheEnabled || appConfig.Cache.Enabled {
				dir := resolveString(cacheDir, appConfig.Cache.Dir)
				ttl := time.Duration(appConfig.Cache.TTLHours) * time.Hour
				c, err := cache.New(dir, ttl)
				if err != nil {
					return err
				}
				backend = cache.Wrap(backend, c)
			}

			runner := &model.Classifier{
				Model:  backend,
				Labels: labelsResolved,
				Options: model.GenerateOptions{
					Temperature:  float32(temperature),
					MaxTokens:    maxTokens,
					TopP:         float32(topP),
					SystemPrompt: systemPrompt,
				},
				Limiter: rateLimiter,
			}

			store, err := results.NewStore(filepath.Join(outputDirResolved, sanitizeName(backend.Name())))
			if err != nil {
				return err
			}

			snapshot := runSnapshot{
				Dataset:       path,
				Task:          taskResolved,
				Labels:        labelsResolved,
				Languages:     languagesResolved,
				Limit:         limitResolved,
				Provider:      providerResolved,
				Model:         backend.Name(),
				BatchSize:     batchResolved,
				Workers:       workerCount,
				Seed:          seedResolved,
				Perturbations: specs,
				StartedAt:     time.Now().UTC(),
			}
			if err := writeSnapshot(filepath.Join(store.Dir, "run_config.json"), snapshot); err != nil {
				return err
			}

			cells := expandCells(specs)
			progress := newProgressBar(progressWriter(cmd), 1+len(cells))
			progress.Update(0)

			evaluator := &core.Evaluator{Runner: runner, BatchSize: batchResolved}

			ctx := cmd.Context()
			clean, err := evaluator.EvaluateTask(ctx, examples, taskResolved, results.CleanTag)
			if err != nil {
				return err
			}
			if err := persistEvaluation(store, results.Key{Task: taskResolved, Perturbation: results.CleanTag}, clean); err != nil {
				return err
			}
			progress.Update(1)

			writer := io.Writer(os.Stdout)
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}
			rep, err := buildReporter(formatResolved, writer)
			if err != nil {
				return err
			}

			var (
				mu        sync.Mutex
				wg        sync.WaitGroup
				completed = 1
				firstErr  error
			)
			jobs := make(chan cellSpec)
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			for w := 0; w < workerCount; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for cell := range jobs {
						report, err := runCell(ctx, evaluator, store, clean, examples, taskResolved, seedResolved, cell)
						mu.Lock()
						if err != nil {
							if firstErr == nil {
								firstErr = err
								cancel()
							}
							mu.Unlock()
							continue
						}
						completed++
						progress.Update(completed)
						if renderErr := rep.Report(report); renderErr != nil && firstErr == nil {
							firstErr = renderErr
							cancel()
						}
						mu.Unlock()
					}
				}()
			}
			for _, cell := range cells {
				jobs <- cell
			}
			close(jobs)
			wg.Wait()

			return firstErr
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "path to dataset file (json or jsonl)")
	cmd.Flags().StringVar(&task, "task", "", "task name (sentiment, nli)")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "label set for the task")
	cmd.Flags().StringSliceVar(&languages, "languages", nil, "languages to keep (default all)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max examples to evaluate (0 = all)")
	cmd.Flags().StringVar(&provider, "provider", "", "model provider (mock, openai, anthropic, gemini, ollama)")
	cmd.Flags().StringVar(&modelName, "model", "", "model name")
	cmd.Flags().StringVar(&mockResponse, "mock-response", "", "fixed mock response")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "prediction batch size")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent perturbation cells")
	cmd.Flags().Int64Var(&seed, "seed", 42, "base random seed")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "results directory")
	cmd.Flags().StringVar(&format, "format", "", "report format (table, json, html, markdown, csv)")
	cmd.Flags().StringVar(&outputPath, "output", "", "report file path (default stdout)")
	cmd.Flags().StringArrayVar(&perturbFlags, "perturbation", nil, "perturbation spec, e.g. noise:0.1,0.25 (repeatable)")
	cmd.Flags().BoolVar(&cacheEnabled, "cache", false, "cache model responses on disk")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory")
	cmd.Flags().Float64Var(&rateLimitRPS, "rate-limit-rps", 0, "max requests per second (0 = unlimited)")
	cmd.Flags().IntVar(&rateLimitBurst, "rate-limit-burst", 1, "rate limit burst size")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "model temperature (0 = default)")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "max completion tokens (0 = provider default)")
	cmd.Flags().Float64Var(&topP, "top-p", 0, "nucleus sampling top-p (0 = default)")
	cmd.Flags().StringVar(&systemPrompt, "system-prompt", "", "system prompt override")

	return cmd
}

type cellSpec struct {
	Name  string
	Level float64
}

// runCell perturbs the dataset, evaluates it, persists the cell's artifacts,
// and returns a renderable report. The perturbation seed is derived from the
// base seed and the cell identity, so cells reproduce regardless of worker
// scheduling.
func runCell(ctx context.Context, evaluator *core.Evaluator, store *results.Store, clean core.Evaluation, examples []core.Example, task string, baseSeed int64, cell cellSpec) (reporter.CellReport, error) {
	key := results.Key{Task: task, Perturbation: cell.Name, Level: cell.Level}
	cellSeed := perturb.DeriveSeed(baseSeed, task+"/"+key.Tag())

	p, err := buildPerturber(cell.Name, cellSeed, cell.Level)
	if err != nil {
		return reporter.CellReport{}, err
	}
	perturbed, records := perturb.Apply(examples, p)

	eval, err := evaluator.EvaluateTask(ctx, perturbed, task, key.Tag())
	if err != nil {
		return reporter.CellReport{}, err
	}
	if err := persistEvaluation(store, key, eval); err != nil {
		return reporter.CellReport{}, err
	}
	if _, err := store.WriteProvenance(key, records); err != nil {
		return reporter.CellReport{}, err
	}

	report := reporter.CellReport{
		Task:         task,
		Model:        evaluator.Runner.Name(),
		Perturbation: cell.Name,
		Level:        cell.Level,
		Languages:    eval.Languages,
		Summaries:    make(map[string]core.RobustnessSummary, len(eval.Languages)),
	}
	for _, lang := range eval.Languages {
		cleanMetrics, ok := clean.Metrics[lang]
		if !ok {
			continue
		}
		consistency := core.Consistency(predictionLabels(clean.Predictions[lang]), predictionLabels(eval.Predictions[lang]))
		summary := core.Summarize(cleanMetrics, eval.Metrics[lang], consistency)

		langKey := key
		langKey.Language = lang
		if _, err := store.WriteSummary(langKey, summary); err != nil {
			return reporter.CellReport{}, err
		}
		report.Summaries[lang] = summary
	}
	return report, nil
}

// persistEvaluation writes one pass's per-language prediction tables and its
// metrics document.
func persistEvaluation(store *results.Store, key results.Key, eval core.Evaluation) error {
	for _, lang := range eval.Languages {
		group := eval.Examples[lang]
		preds := eval.Predictions[lang]
		rows := make([]results.Row, len(preds))
		for i, pred := range preds {
			rows[i] = results.Row{
				ID:         pred.ID,
				Text:       group[i].Input().Flatten(),
				Label:      group[i].Label,
				Prediction: pred.Label,
				Score:      pred.Score,
			}
		}
		langKey := key
		langKey.Language = lang
		if _, err := store.WritePredictions(langKey, rows); err != nil {
			return err
		}
	}
	_, err := store.WriteMetrics(key, eval.Metrics)
	return err
}

func predictionLabels(preds []core.Prediction) []string {
	labels := make([]string, len(preds))
	for i, pred := range preds {
		labels[i] = pred.Label
	}
	return labels
}

func expandCells(specs []PerturbationConfig) []cellSpec {
	var cells []cellSpec
	for _, spec := range specs {
		for _, level := range spec.Levels {
			cells = append(cells, cellSpec{Name: spec.Name, Level: level})
		}
	}
	return cells
}

// resolvePerturbations merges flag specs over config specs and falls back to
// the default sweep when neither is given.
func resolvePerturbations(flags []string, configured []PerturbationConfig) ([]PerturbationConfig, error) {
	if len(flags) > 0 {
		specs := make([]PerturbationConfig, 0, len(flags))
		for _, flag := range flags {
			spec, err := parsePerturbation(flag)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
		return specs, nil
	}
	if len(configured) > 0 {
		specs := make([]PerturbationConfig, 0, len(configured))
		for _, spec := range configured {
			if len(spec.Levels) == 0 {
				spec.Levels = defaultLevels(spec.Name)
			}
			if len(spec.Levels) == 0 {
				return nil, fmt.Errorf("perturbation %q has no levels", spec.Name)
			}
			specs = append(specs, spec)
		}
		return specs, nil
	}
	return []PerturbationConfig{
		{Name: "noise", Levels: defaultLevels("noise")},
		{Name: "codemix", Levels: defaultLevels("codemix")},
		{Name: "paraphrase", Levels: defaultLevels("paraphrase")},
	}, nil
}

func parsePerturbation(spec string) (PerturbationConfig, error) {
	name, levelsPart, found := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return PerturbationConfig{}, fmt.Errorf("empty perturbation spec %q", spec)
	}
	if !found || strings.TrimSpace(levelsPart) == "" {
		levels := defaultLevels(name)
		if len(levels) == 0 {
			return PerturbationConfig{}, fmt.Errorf("unknown perturbation: %s", name)
		}
		return PerturbationConfig{Name: name, Levels: levels}, nil
	}
	var levels []float64
	for _, part := range strings.Split(levelsPart, ",") {
		level, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return PerturbationConfig{}, fmt.Errorf("bad level in %q: %w", spec, err)
		}
		levels = append(levels, level)
	}
	return PerturbationConfig{Name: name, Levels: levels}, nil
}

func defaultLevels(name string) []float64 {
	switch name {
	case "noise":
		return []float64{0.1, 0.25}
	case "codemix":
		return []float64{0.3, 0.7}
	case "paraphrase":
		return []float64{0.3}
	}
	return nil
}

func buildPerturber(name string, seed int64, level float64) (perturb.Perturber, error) {
	switch name {
	case "noise":
		return perturb.NewNoiseInjector(seed, level, nil), nil
	case "codemix":
		return perturb.NewCodeMixer(seed, level), nil
	case "paraphrase":
		return perturb.NewParaphraser(seed, perturb.StrategySynonym, level), nil
	default:
		return nil, fmt.Errorf("unknown perturbation: %s", name)
	}
}

func defaultLabels(task string) []string {
	switch task {
	case "sentiment":
		return []string{"positive", "negative", "neutral"}
	case "nli":
		return []string{"entailment", "neutral", "contradiction"}
	}
	return nil
}

func buildModel(provider, modelName, mockResponse string, labels []string) (model.Model, error) {
	switch provider {
	case "mock":
		return model.Mock{
			NameValue:    resolveString(modelName, "mock"),
			Labels:       labels,
			ResponseText: mockResponse,
		}, nil
	case "openai":
		openaiModel, err := model.NewOpenAIModelFromEnv(modelName)
		if err != nil {
			return nil, err
		}
		cfg := appConfig.OpenAI
		if cfg.Model != "" && modelName == "" {
			openaiModel.Model = cfg.Model
		}
		if cfg.TimeoutSeconds > 0 {
			openaiModel.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxRetries > 0 {
			openaiModel.MaxRetries = cfg.MaxRetries
		}
		if cfg.BackoffMillis > 0 {
			openaiModel.Backoff = time.Duration(cfg.BackoffMillis) * time.Millisecond
		}
		return openaiModel, nil
	case "anthropic":
		anthropicModel, err := model.NewAnthropicModelFromEnv(modelName)
		if err != nil {
			return nil, err
		}
		cfg := appConfig.Anthropic
		if cfg.Model != "" && modelName == "" {
			anthropicModel.Model = cfg.Model
		}
		if cfg.TimeoutSeconds > 0 {
			anthropicModel.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxRetries > 0 {
			anthropicModel.MaxRetries = cfg.MaxRetries
		}
		if cfg.BackoffMillis > 0 {
			anthropicModel.Backoff = time.Duration(cfg.BackoffMillis) * time.Millisecond
		}
		if cfg.MaxTokens > 0 {
			anthropicModel.MaxTokens = cfg.MaxTokens
		}
		return anthropicModel, nil
	case "gemini":
		geminiModel, err := model.NewGeminiModelFromEnv(modelName)
		if err != nil {
			return nil, err
		}
		cfg := appConfig.Gemini
		if cfg.Model != "" && modelName == "" {
			geminiModel.Model = cfg.Model
		}
		if cfg.TimeoutSeconds > 0 {
			geminiModel.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxRetries > 0 {
			geminiModel.MaxRetries = cfg.MaxRetries
		}
		if cfg.BackoffMillis > 0 {
			geminiModel.Backoff = time.Duration(cfg.BackoffMillis) * time.Millisecond
		}
		return geminiModel, nil
	case "ollama":
		cfg := appConfig.Ollama
		ollamaModel, err := model.NewOllamaModel(cfg.BaseURL, resolveString(modelName, cfg.Model))
		if err != nil {
			return nil, err
		}
		if cfg.TimeoutSeconds > 0 {
			ollamaModel.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		if cfg.MaxRetries > 0 {
			ollamaModel.MaxRetries = cfg.MaxRetries
		}
		if cfg.BackoffMillis > 0 {
			ollamaModel.Backoff = time.Duration(cfg.BackoffMillis) * time.Millisecond
		}
		return ollamaModel, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

type runSnapshot struct {
	Dataset       string               `json:"dataset"`
	Task          string               `json:"task"`
	Labels        []string             `json:"labels"`
	Languages     []string             `json:"languages,omitempty"`
	Limit         int                  `json:"limit,omitempty"`
	Provider      string               `json:"provider"`
	Model         string               `json:"model"`
	BatchSize     int                  `json:"batch_size"`
	Workers       int                  `json:"workers"`
	Seed          int64                `json:"seed"`
	Perturbations []PerturbationConfig `json:"perturbations"`
	StartedAt     time.Time            `json:"started_at"`
}

func writeSnapshot(path string, snapshot runSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// sanitizeName makes a model name safe for use as a directory name.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, name)
}

func buildReporter(format string, writer io.Writer) (reporter.Reporter, error) {
	switch format {
	case reporter.FormatJSON:
		return reporter.JSONReporter{Writer: writer, Pretty: true}, nil
	case reporter.FormatTable:
		return reporter.TableReporter{Writer: writer}, nil
	case reporter.FormatHTML:
		return reporter.HTMLReporter{Writer: writer}, nil
	case reporter.FormatMarkdown:
		return reporter.MarkdownReporter{Writer: writer}, nil
	case reporter.FormatCSV:
		return reporter.CSVReporter{Writer: writer}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

type progressBar struct {
	writer io.Writer
	total  int
	start  time.Time
	isTTY  bool
}

func newProgressBar(writer io.Writer, total int) *progressBar {
	return &progressBar{
		writer: writer,
		total:  total,
		start:  time.Now(),
		isTTY:  isTerminal(writer),
	}
}

func (p *progressBar) Update(completed int) {
	width := 30
	if p.total <= 0 {
		return
	}

	ratio := float64(completed) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))

	bar := strings.Repeat("=", filled) + strings.Repeat(".", width-filled)
	percent := int(ratio * 100)
	elapsed := time.Since(p.start).Truncate(time.Second)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	line := fmt.Sprintf("[%s] %3d%% (%d/%d cells) %s", barStyle.Render(bar), percent, completed, p.total, elapsed)
	if p.isTTY {
		fmt.Fprintf(p.writer, "\r%s", line)
	} else {
		fmt.Fprintf(p.writer, "%s\n", line)
	}

	if completed >= p.total {
		fmt.Fprintln(p.writer)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func progressWriter(cmd *cobra.Command) io.Writer {
	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()

	if isTerminal(stderr) {
		return stderr
	}
	if isTerminal(stdout) {
		return stdout
	}
	return stderr
}

func resolveString(value string, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func resolveInt(value int, fallback int, defaultValue int) int {
	if value > 0 {
		return value
	}
	if fallback > 0 {
		return fallback
	}
	return defaultValue
}
