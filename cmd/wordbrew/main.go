/*
Package main implements the wordbrew data pipeline CLI.

Wordbrew turns raw word-frequency corpora into curated, playable word
lists. The pipeline runs in stages, each exposed as a subcommand:

	wordbrew condense <input-dir> <output-file>

reads raw ngram data, keeps only tokens that normalize to playable words,
and folds the counts into one compact log10-encoded file.

	wordbrew tags <wiktionary-xml> <output-dir>

extracts definition tags for short lowercase English words from a raw
Wiktionary export and writes per-length tag tables.

	wordbrew rank <input-dir> <output-dir>

scores condensed ngram files against the profanity set, the reference
corpus and remote dictionary definitions, writing one ranked list per
input file. Definition lookups are cached on disk between runs.

	wordbrew split <input-file> <output-dir>

splits a finished one-word-per-line list into per-length files.

	wordbrew brotli <input-file>

compresses a data file in place (writing <input-file>.br); every other
subcommand reads .br inputs transparently.

Runtime settings (scoring profile, year window, lookup retries, data
paths) come from a TOML config file selected with --config.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wordbrew/wordbrew/internal/logger"
	"github.com/wordbrew/wordbrew/internal/textio"
	"github.com/wordbrew/wordbrew/pkg/config"
	"github.com/wordbrew/wordbrew/pkg/corpus"
	"github.com/wordbrew/wordbrew/pkg/pipeline"
	"github.com/wordbrew/wordbrew/pkg/wiktionary"
)

var log = logger.New("wordbrew")

var (
	configPath string
	debug      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "wordbrew",
		Short:        "Word list curation pipeline",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetDebug(debug)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(newCondenseCmd())
	rootCmd.AddCommand(newTagsCmd())
	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newSplitCmd())
	rootCmd.AddCommand(newCompressCmd())
	return rootCmd
}

func newCondenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "condense <input-dir> <output-file>",
		Short: "Fold raw ngram data into one condensed log10 file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return pipeline.Condense(args[0], args[1], pipeline.CondenseOptions{
				MinYear: cfg.Pipeline.MinYear,
				MaxYear: cfg.Pipeline.MaxYear,
			})
		},
	}
}

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <wiktionary-xml> <output-dir>",
		Short: "Extract per-length definition tag tables from a Wiktionary export",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			input, output := args[0], args[1]
			if !textio.IsFile(input) {
				return fmt.Errorf("could not read %s - not a file", input)
			}
			if err := textio.EnsureEmptyDir(output); err != nil {
				return err
			}

			tables := make(map[int]map[string][][]string)
			count := 0
			err := wiktionary.ExtractTags(input, wiktionary.DefaultTitleFilter, func(page wiktionary.Page) error {
				table := tables[len(page.Title)]
				if table == nil {
					table = make(map[string][][]string)
					tables[len(page.Title)] = table
				}
				// A title can appear more than once in the export; later
				// pages extend the earlier tag sets.
				table[page.Title] = append(table[page.Title], page.TagSets...)
				count++
				if count%1000 == 0 {
					log.Infof("%d %s", count, page.Title)
				}
				return nil
			})
			if err != nil {
				return err
			}

			for length, table := range tables {
				if err := wiktionary.WriteTagTable(output, length, table); err != nil {
					return err
				}
				log.Infof("Wrote %s: %d words", wiktionary.TagFileName(length), len(table))
			}
			return nil
		},
	}
}

func newRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <input-dir> <output-dir>",
		Short: "Score condensed ngram files into ranked word lists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			profile, err := cfg.Profile()
			if err != nil {
				return err
			}
			if err := textio.EnsureDir(cfg.Paths.Cache); err != nil {
				return err
			}

			tagCorpus := wiktionary.NewTagCorpus(cfg.Paths.Tags)
			client := wiktionary.NewClient(cfg.Lookup.BaseURL)
			ranker := &pipeline.Ranker{
				Profanity:  corpus.NewProfanity(),
				Reference:  corpus.NewReference(cfg.Paths.Reference),
				Checker:    wiktionary.NewChecker(cfg.Paths.Cache, tagCorpus, client, cfg.Lookup.Retries),
				Profile:    profile,
				FlushEvery: cfg.Pipeline.FlushEvery,
			}
			return ranker.Rank(cmd.Context(), args[0], args[1])
		},
	}
}

func newSplitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split <input-file> <output-dir>",
		Short: "Split a word list into one file per word length",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return pipeline.Split(args[0], args[1])
		},
	}
}

func newCompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brotli <input-file>",
		Short: "Brotli-compress a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			output, err := textio.Compress(args[0])
			if err != nil {
				return err
			}
			log.Infof("Wrote %s", output)
			return nil
		},
	}
}
