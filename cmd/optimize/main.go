package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/thrust/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	generations := flag.Int("generations", 30, "Generations flown per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	method := flag.String("method", "cmaes", "Search method: cmaes or neldermead")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *seeds < 1 || *generations < 1 {
		log.Fatal("--seeds and --generations must be positive")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *generations, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Seeds already run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	var searcher optimize.Method
	switch *method {
	case "cmaes":
		searcher = &optimize.CmaEsChol{
			InitStepSize: 0.3,
			Population:   popSize,
		}
	case "neldermead":
		searcher = &optimize.NelderMead{}
	default:
		log.Fatalf("unknown method %q", *method)
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "final_best", "completion_rate"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := logWriter.Write(header); err != nil {
		log.Fatalf("failed to write log header: %v", err)
	}

	evalCount := 0
	bestFitness := 1e18
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			// Clamped values are the ones actually used
			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			finalBest, completion := evaluator.LastResult()
			row := []string{
				strconv.Itoa(evalCount),
				fmt.Sprintf("%.6f", fitness),
				fmt.Sprintf("%.6f", finalBest),
				fmt.Sprintf("%.4f", completion),
			}
			for _, v := range clamped {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			_ = logWriter.Write(row)
			logWriter.Flush()

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

			fmt.Printf("Eval %s/%s: best_fitness=%s completed=%.1f%% (best=%s) | elapsed: %s, ETA: %s\n",
				humanize.Comma(int64(evalCount)), humanize.Comma(int64(*maxEvals)),
				humanize.FtoaWithDigits(finalBest, 2), completion*100,
				humanize.FtoaWithDigits(-bestFitness, 2),
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting %s search over %d parameters, max_evals=%d\n", *method, dim, *maxEvals)
	perEval := int64(*seeds) * int64(*generations) * int64(baseCfg.Population.Size)
	fmt.Printf("Seeds per evaluation: %d, generations per run: %d (%s agent lifetimes per eval)\n",
		*seeds, *generations, humanize.Comma(perEval))

	result, err := optimize.Minimize(problem, initX, settings, searcher)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nOptimization complete after %s evaluations in %s\n", humanize.Comma(int64(evalCount)), formatDuration(totalTime))
	fmt.Printf("Best fitness: %s\n", humanize.FtoaWithDigits(-bestFitness, 3))
	if bestParams == nil {
		return
	}

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.6f\n", spec.Name, spec.Path, bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	// Generation history of the best run
	if history := evaluator.BestHistory(); len(history) > 0 {
		historyPath := filepath.Join(*outputDir, "best_run.csv")
		f, err := os.Create(historyPath)
		if err != nil {
			log.Printf("failed to create best run history: %v", err)
			return
		}
		defer f.Close()
		if err := gocsv.MarshalFile(&history, f); err != nil {
			log.Printf("failed to write best run history: %v", err)
		} else {
			fmt.Printf("Best run history saved to: %s\n", historyPath)
		}
	}
}
