package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/coolbeans/lexground/pkg/corpus"
	"github.com/coolbeans/lexground/pkg/evaluation"
	"github.com/coolbeans/lexground/pkg/matcher"
	"github.com/coolbeans/lexground/pkg/retrieve"
	"github.com/coolbeans/lexground/pkg/semantic"
	"github.com/coolbeans/lexground/pkg/severity"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

const (
	defaultChunksPath = "data/legal_chunks.json"
	defaultTermsPath  = "data/matcher_terms.json"
	defaultCachePath  = "data/semantic_cache.db"
	defaultDataPath   = "data/fact2law_dataset.json"
	defaultReportPath = "data/eval_fact2law_report.json"
)

func main() {
	// A missing .env file is fine; the environment may carry the keys.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "lexground",
		Short: "Legal-reference retrieval engine for PIL drafting",
		Long: `Lexground maps free-text fact narratives to the constitutional
articles and statutory sections that ground a public interest
litigation petition.

It combines:
  - A topic-to-provision constitutional lookup
  - A prioritized lexical rule matcher over crime families
  - A semantic search index over the legal reference corpus
  - A severity scorer driving petition tone and filtering
  - An offline evaluation harness (hit@k, avoid-negative@k)`,
		Version: version,
	}

	rootCmd.AddCommand(retrieveCmd())
	rootCmd.AddCommand(severityCmd())
	rootCmd.AddCommand(corpusCmd())
	rootCmd.AddCommand(familiesCmd())
	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(datasetCmd())
	rootCmd.AddCommand(evalCmd())
	rootCmd.AddCommand(harvestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRegistry assembles the crime-family registry: built-in families,
// optional YAML overrides, then keyword extensions.
func buildRegistry(familiesDir, termsPath string) (*matcher.Registry, error) {
	registry := matcher.NewRegistry()
	if familiesDir != "" {
		if err := registry.LoadDirectory(familiesDir); err != nil {
			return nil, err
		}
	}
	if termsPath != "" {
		if err := registry.LoadTermsFile(termsPath); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// buildIndex constructs the semantic index, or returns nil when the embedding
// backend is unavailable; semantic search is strictly additive.
func buildIndex(ctx context.Context, entries []corpus.Entry, cachePath string) *semantic.Index {
	apiKey := os.Getenv("GEMINI_API_KEY")
	embedder, err := semantic.NewGeminiEmbedder(ctx, apiKey, os.Getenv("EMBEDDING_MODEL"))
	if err != nil {
		log.Printf("semantic search disabled: %v", err)
		return nil
	}

	var cache *semantic.Cache
	if cachePath != "" {
		cache, err = semantic.OpenCache(cachePath)
		if err != nil {
			log.Printf("embedding cache unavailable: %v", err)
		}
	}

	index, err := semantic.Build(ctx, embedder, entries, semantic.BuildOptions{Cache: cache})
	if err != nil {
		log.Printf("semantic search disabled: %v", err)
		return nil
	}
	return index
}

func retrieveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Retrieve legal references for an issue summary",
		Long: `Retrieve the ordered list of legal references for a fact narrative.

Example:
  lexground retrieve --issue "Man murdered in Delhi by unknown assailants." --topics crime`,
		RunE: func(cmd *cobra.Command, args []string) error {
			issue, _ := cmd.Flags().GetString("issue")
			topics, _ := cmd.Flags().GetStringSlice("topics")
			entities, _ := cmd.Flags().GetStringSlice("entities")
			chunksPath, _ := cmd.Flags().GetString("chunks")
			familiesDir, _ := cmd.Flags().GetString("families")
			termsPath, _ := cmd.Flags().GetString("terms")
			cachePath, _ := cmd.Flags().GetString("cache")
			noSemantic, _ := cmd.Flags().GetBool("no-semantic")

			if issue == "" {
				return fmt.Errorf("--issue flag is required")
			}

			ctx := cmd.Context()
			entries := corpus.Build(corpus.BuildOptions{ChunksPath: chunksPath})

			registry, err := buildRegistry(familiesDir, termsPath)
			if err != nil {
				return err
			}

			var index *semantic.Index
			if !noSemantic {
				index = buildIndex(ctx, entries, cachePath)
			}

			engine := retrieve.NewEngine(retrieve.Config{
				Corpus:  entries,
				Matcher: matcher.New(registry),
				Index:   index,
			})

			results := engine.RetrieveLegalSections(ctx, issue, topics, entities)
			jurisdiction := retrieve.JurisdictionInfo(topics)

			return printJSON(map[string]any{
				"legal_sections": results,
				"jurisdiction":   jurisdiction,
			})
		},
	}

	cmd.Flags().String("issue", "", "Fact narrative to retrieve references for")
	cmd.Flags().StringSlice("topics", nil, "Classified topic labels (e.g. crime,corruption)")
	cmd.Flags().StringSlice("entities", nil, "Named entities from the article")
	cmd.Flags().String("chunks", defaultChunksPath, "Statutory chunk JSON file")
	cmd.Flags().String("families", "", "Directory of YAML crime-family overrides")
	cmd.Flags().String("terms", defaultTermsPath, "Keyword-extension JSON file")
	cmd.Flags().String("cache", defaultCachePath, "Embedding cache file")
	cmd.Flags().Bool("no-semantic", false, "Skip the semantic search passes")
	return cmd
}

func severityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "severity",
		Short: "Score the severity of article text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _ := cmd.Flags().GetString("text")
			explain, _ := cmd.Flags().GetBool("explain")

			scorer := severity.NewScorer()
			if explain {
				return printJSON(scorer.Explain(text))
			}

			score := scorer.Score(text)
			return printJSON(map[string]any{
				"severity_score": score,
				"priority_level": severity.LevelFor(score),
			})
		},
	}

	cmd.Flags().String("text", "", "Article text to score")
	cmd.Flags().Bool("explain", false, "Include matched keywords and reasoning")
	return cmd
}

func corpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Build the reference corpus and print per-category statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			chunksPath, _ := cmd.Flags().GetString("chunks")

			entries := corpus.Build(corpus.BuildOptions{ChunksPath: chunksPath})

			counts := make(map[string]int)
			for _, e := range entries {
				counts[string(e.Category)]++
			}

			fmt.Printf("Corpus: %d entries\n", len(entries))
			for category, n := range counts {
				fmt.Printf("  %-25s %d\n", category, n)
			}
			return nil
		},
	}

	cmd.Flags().String("chunks", defaultChunksPath, "Statutory chunk JSON file")
	return cmd
}

func familiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "families",
		Short: "List registered crime families by priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			familiesDir, _ := cmd.Flags().GetString("dir")
			termsPath, _ := cmd.Flags().GetString("terms")

			registry, err := buildRegistry(familiesDir, termsPath)
			if err != nil {
				return err
			}

			for _, f := range registry.List() {
				fmt.Printf("%3d  %-10s %-30s sections=%s max=%d keywords=%d\n",
					f.Priority, f.Key, f.Name, strings.Join(f.Sections, ","), f.MaxResults, len(f.Keywords))
			}
			return nil
		},
	}

	cmd.Flags().String("dir", "", "Directory of YAML crime-family overrides")
	cmd.Flags().String("terms", defaultTermsPath, "Keyword-extension JSON file")
	return cmd
}

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or inspect the embedding index",
	}
	cmd.AddCommand(indexBuildCmd())
	cmd.AddCommand(indexStatsCmd())
	return cmd
}

func indexBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Embed the full corpus and persist the cache",
		Long: `Build the semantic index over the full corpus and persist the
embedding cache. Requires GEMINI_API_KEY.

Example:
  lexground index build --chunks data/legal_chunks.json --cache data/semantic_cache.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			chunksPath, _ := cmd.Flags().GetString("chunks")
			cachePath, _ := cmd.Flags().GetString("cache")

			ctx := cmd.Context()
			entries := corpus.Build(corpus.BuildOptions{ChunksPath: chunksPath})

			apiKey := os.Getenv("GEMINI_API_KEY")
			embedder, err := semantic.NewGeminiEmbedder(ctx, apiKey, os.Getenv("EMBEDDING_MODEL"))
			if err != nil {
				return err
			}
			defer embedder.Close()

			cache, err := semantic.OpenCache(cachePath)
			if err != nil {
				return err
			}
			defer cache.Close()

			index, err := semantic.Build(ctx, embedder, entries, semantic.BuildOptions{Cache: cache})
			if err != nil {
				return err
			}

			fmt.Printf("Semantic index ready (%d entries, model %s)\n", index.Size(), embedder.Model())
			return nil
		},
	}

	cmd.Flags().String("chunks", defaultChunksPath, "Statutory chunk JSON file")
	cmd.Flags().String("cache", defaultCachePath, "Embedding cache file")
	return cmd
}

func indexStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the cached index metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			cachePath, _ := cmd.Flags().GetString("cache")

			cache, err := semantic.OpenCache(cachePath)
			if err != nil {
				return err
			}
			defer cache.Close()

			meta, found, err := cache.Meta()
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("No index cached yet; run `lexground index build`.")
				return nil
			}

			fmt.Printf("Cached index: %d vectors, dimension %d, model %s\n",
				meta.CorpusSize, meta.Dimension, meta.Model)
			return nil
		},
	}

	cmd.Flags().String("cache", defaultCachePath, "Embedding cache file")
	return cmd
}

func datasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage labeled fact-to-law datasets",
	}
	cmd.AddCommand(datasetGenerateCmd())
	return cmd
}

func datasetGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic labeled fact-to-law dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			total, _ := cmd.Flags().GetInt("total")
			out, _ := cmd.Flags().GetString("out")
			seed, _ := cmd.Flags().GetInt64("seed")

			examples := evaluation.Generate(total, seed)
			if err := evaluation.SaveDataset(out, examples); err != nil {
				return err
			}

			byFamily := make(map[string]int)
			for _, ex := range examples {
				byFamily[ex.Family()]++
			}
			fmt.Printf("Wrote %d examples to %s\n", len(examples), out)
			fmt.Printf("By family: %v\n", byFamily)
			return nil
		},
	}

	cmd.Flags().Int("total", 150, "Total examples to generate")
	cmd.Flags().String("out", defaultDataPath, "Output JSON path")
	cmd.Flags().Int64("seed", 42, "Random seed")
	return cmd
}

func evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate rule-matcher retrieval against a labeled dataset",
		Long: `Run the lexical rule matcher over every dataset example and report
hit@k and avoid-negative@k, overall and per crime family.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataPath, _ := cmd.Flags().GetString("data")
			reportPath, _ := cmd.Flags().GetString("report")
			ks, _ := cmd.Flags().GetIntSlice("k")
			chunksPath, _ := cmd.Flags().GetString("chunks")
			familiesDir, _ := cmd.Flags().GetString("families")
			termsPath, _ := cmd.Flags().GetString("terms")

			examples, err := evaluation.LoadDataset(dataPath)
			if err != nil {
				return err
			}

			entries := corpus.Build(corpus.BuildOptions{ChunksPath: chunksPath})
			statutory := corpus.Statutory(entries)

			registry, err := buildRegistry(familiesDir, termsPath)
			if err != nil {
				return err
			}
			m := matcher.New(registry)

			predictor := evaluation.PredictorFunc(func(issue string) []string {
				matches := m.Match(issue, statutory)
				sections := make([]string, 0, len(matches))
				for _, match := range matches {
					if match.SectionID != "" {
						sections = append(sections, match.SectionID)
					}
				}
				return sections
			})

			report := evaluation.Evaluate(predictor, examples, ks)
			if err := report.Save(reportPath); err != nil {
				return err
			}

			return printJSON(report.Overall)
		},
	}

	cmd.Flags().String("data", defaultDataPath, "Labeled dataset JSON path")
	cmd.Flags().String("report", defaultReportPath, "Report output path")
	cmd.Flags().IntSlice("k", []int{1, 3, 5}, "Cutoffs to evaluate")
	cmd.Flags().String("chunks", defaultChunksPath, "Statutory chunk JSON file")
	cmd.Flags().String("families", "", "Directory of YAML crime-family overrides")
	cmd.Flags().String("terms", "", "Keyword-extension JSON file")
	return cmd
}

func harvestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest keyword extensions from a labeled dataset",
		Long: `Mine dataset issue summaries for frequent family-specific tokens the
matcher does not know yet and write them in matcher_terms.json layout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataPath, _ := cmd.Flags().GetString("data")
			out, _ := cmd.Flags().GetString("out")

			examples, err := evaluation.LoadDataset(dataPath)
			if err != nil {
				return err
			}

			existing := make(map[string][]string)
			for _, f := range matcher.DefaultFamilies() {
				existing[f.Key] = f.Keywords
			}

			terms := evaluation.HarvestTerms(examples, existing)
			if err := evaluation.SaveTerms(out, terms); err != nil {
				return err
			}

			fmt.Printf("Wrote keyword extensions for %d families to %s\n", len(terms), out)
			return nil
		},
	}

	cmd.Flags().String("data", defaultDataPath, "Labeled dataset JSON path")
	cmd.Flags().String("out", defaultTermsPath, "Output matcher terms path")
	return cmd
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
