package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nzaccagnino/studydesk/internal/api"
	"github.com/nzaccagnino/studydesk/internal/domain"
	"github.com/nzaccagnino/studydesk/internal/generator"
	"github.com/nzaccagnino/studydesk/internal/views"
)

// loadApp builds the app and performs the initial read synchronously.
func loadApp(ctx context.Context, configPath string) (*app, error) {
	a, err := newApp(configPath)
	if err != nil {
		return nil, err
	}
	a.syncer.Start(ctx)
	return a, nil
}

func newGradesCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "grades",
		Short: "Print the current grade of every course",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			doc := a.store.Snapshot()
			return printGrades(cmd.OutOrStdout(), views.Performance(doc.Courses, doc.Tasks))
		},
	}
}

func printGrades(out io.Writer, summaries []views.GradeSummary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tCOURSE\tGRADE\tGRADED WEIGHT\tTASKS\tBAND")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%.1f%%\t%.0f%%\t%d/%d\t%s\n",
			s.Course.Code, s.Course.Name, s.Current, s.Progress, s.Graded, len(s.Tasks), s.Band())
	}
	return w.Flush()
}

func newExportCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole document as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			path, _ := cmd.Flags().GetString("out")

			a, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			if path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}
				defer f.Close()
				out = f
			}
			return exportDocument(out, a.store.Snapshot(), format)
		},
	}
	cmd.Flags().String("format", "json", "Output format: json or yaml")
	cmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	return cmd
}

func exportDocument(out io.Writer, doc domain.Document, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newGenerateCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate flashcards from a note into a deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, _ := cmd.Flags().GetString("note")
			deckID, _ := cmd.Flags().GetString("deck")

			a, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			doc := a.store.Snapshot()
			note, ok := findByID(doc.Notes, noteID, func(n domain.Note) string { return n.ID })
			if !ok {
				return fmt.Errorf("note %q not found", noteID)
			}
			if _, ok := findByID(doc.Decks, deckID, func(d domain.Deck) string { return d.ID }); !ok {
				return fmt.Errorf("deck %q not found", deckID)
			}

			forms, err := generator.FromNote(cmd.Context(), generator.New(a.cfg.Generator), note, deckID)
			if err != nil {
				return err
			}
			cards := a.store.AddFlashcardsBatch(forms)
			a.log.Infow("Flashcards generated", "note", noteID, "deck", deckID, "count", len(cards))

			for _, c := range cards {
				fmt.Fprintf(cmd.OutOrStdout(), "+ %s\n  %s\n", c.Front, c.Back)
			}
			return nil
		},
	}
	cmd.Flags().String("note", "", "Source note id")
	cmd.Flags().String("deck", "", "Target deck id")
	_ = cmd.MarkFlagRequired("note")
	_ = cmd.MarkFlagRequired("deck")
	return cmd
}

func findByID[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, it := range items {
		if idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func newRemoteCommand(configPath *string) *cobra.Command {
	remote := &cobra.Command{
		Use:   "remote",
		Short: "Manage the remote document",
	}
	remote.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a bin holding the default document and store its id in the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			if a.cfg.Remote.BinID != "" {
				return fmt.Errorf("config already points at bin %s", a.cfg.Remote.BinID)
			}
			if a.cfg.Remote.MasterKey == "" {
				return fmt.Errorf("remote.master_key is required")
			}

			client := api.NewClient(a.cfg.Remote.URL, "", a.cfg.Remote.MasterKey)
			id, err := client.Create(cmd.Context(), domain.Defaults())
			if err != nil {
				return err
			}

			a.cfg.Remote.BinID = id
			a.cfg.Remote.Enabled = true
			if err := a.cfg.Save(*configPath); err != nil {
				return err
			}
			a.log.Infow("Remote bin created", "bin", id)
			fmt.Fprintf(cmd.OutOrStdout(), "bin %s created\n", id)
			return nil
		},
	})
	return remote
}
