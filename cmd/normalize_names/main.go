package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"namenorm/database"
	"namenorm/dictionaries"
	"namenorm/normalization"
	"namenorm/quality"
)

func main() {
	inputPath := flag.String("input", "", "File with names to normalize, one per line (stdin if empty)")
	lang := flag.String("lang", "auto", "Input language: ru, uk, en or auto")
	dictDir := flag.String("dicts", "", "Directory with dictionary YAML files")
	dbPath := flag.String("db", "", "Service database path for audit records (disabled if empty)")
	outputPath := flag.String("output", "", "Export file path (prints to stdout if empty)")
	format := flag.String("format", "json", "Export format: json, csv or excel")
	crossLang := flag.Bool("cross-lang", false, "Allow cross-language diminutive resolution")
	fastPath := flag.Bool("fastpath", false, "Enable ASCII fast path")
	shadow := flag.Bool("shadow", false, "Run shadow comparison of the fast path against the full pipeline")
	flag.Parse()

	store, err := loadStore(*dictDir)
	if err != nil {
		log.Fatalf("failed to load dictionaries: %v", err)
	}

	lines, err := readLines(*inputPath)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}
	if len(lines) == 0 {
		log.Fatal("no input names")
	}

	normalizer := normalization.NewNormalizer(store, nil, nil)

	opts := normalization.DefaultOptions()
	opts.Language = *lang
	opts.AllowCrossLangDiminutives = *crossLang
	opts.ASCIIFastPath = *fastPath

	if *shadow {
		runShadow(normalizer, lines, opts)
		return
	}

	var audit normalization.AuditStore
	if *dbPath != "" {
		serviceDB, err := database.NewServiceDB(*dbPath)
		if err != nil {
			log.Fatalf("failed to open service database: %v", err)
		}
		defer serviceDB.Close()
		audit = serviceDB
	}

	items := make([]normalization.BatchItem, 0, len(lines))
	for i, line := range lines {
		items = append(items, normalization.BatchItem{ID: i + 1, Text: line})
	}

	start := time.Now()
	batch := normalization.NewBatchNormalizer(normalizer, audit, nil, context.Background())
	result, err := batch.Process(items, opts)
	if err != nil {
		log.Fatalf("failed to normalize: %v", err)
	}

	if *outputPath != "" {
		exporter := normalization.NewExporter()
		if err := exporter.Export(*outputPath, normalization.ExportFormat(*format), result); err != nil {
			log.Fatalf("failed to export: %v", err)
		}
		fmt.Printf("Exported %d results to %s\n", len(result.Items), *outputPath)
	} else {
		for _, item := range result.Items {
			if item.Result == nil {
				continue
			}
			fmt.Printf("%s -> %s\n", item.Input, item.Result.Normalized)
		}
	}

	fmt.Println("\n--- Name Normalization ---")
	fmt.Printf("Total: %d\n", result.TotalProcessed)
	fmt.Printf("Succeeded: %d\n", result.Succeeded)
	fmt.Printf("Failed: %d\n", result.Failed)
	fmt.Printf("Duration: %s\n", time.Since(start).Round(time.Millisecond))
	for _, e := range result.Errors {
		fmt.Printf("Error: %s\n", e)
	}
}

func runShadow(normalizer *normalization.Normalizer, lines []string, opts normalization.Options) {
	comparator := quality.NewShadowComparator(normalizer)
	report := comparator.Compare(context.Background(), lines, opts)

	fmt.Println("--- Shadow Comparison ---")
	fmt.Printf("Total: %d\n", report.Total)
	fmt.Printf("Exact match rate: %.4f\n", report.ExactMatchRate)
	fmt.Printf("Stem match rate: %.4f\n", report.StemMatchRate)
	fmt.Printf("Mismatches: %d\n", report.Mismatches)
	for _, d := range report.Divergent {
		fmt.Printf("  %q: fast=%q full=%q\n", d.Input, d.FastPath, d.Full)
	}
}

func loadStore(dir string) (*dictionaries.Store, error) {
	if dir == "" {
		return dictionaries.NewDefaultStore(), nil
	}
	return dictionaries.LoadDir(dir)
}

func readLines(path string) ([]string, error) {
	file := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		file = f
	}

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
