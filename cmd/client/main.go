package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nzaccagnino/studydesk/internal/api"
	"github.com/nzaccagnino/studydesk/internal/auth"
	"github.com/nzaccagnino/studydesk/internal/config"
	"github.com/nzaccagnino/studydesk/internal/domain"
	"github.com/nzaccagnino/studydesk/internal/generator"
	"github.com/nzaccagnino/studydesk/internal/i18n"
	"github.com/nzaccagnino/studydesk/internal/logger"
	"github.com/nzaccagnino/studydesk/internal/store"
	"github.com/nzaccagnino/studydesk/internal/ui"
)

const flushTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	var configPath string
	rootCmd := &cobra.Command{
		Use:   "studydesk",
		Short: "Notes, flashcards, tasks and grades for your courses",
		Long:  "StudyDesk keeps notes, flashcard decks, courses, tasks and grades in one document synced to a jsonbin-compatible store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), configPath)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "Path to config.yml")

	rootCmd.AddCommand(newGradesCommand(&configPath))
	rootCmd.AddCommand(newExportCommand(&configPath))
	rootCmd.AddCommand(newGenerateCommand(&configPath))
	rootCmd.AddCommand(newRemoteCommand(&configPath))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", i18n.T().Error, err)
		os.Exit(1)
	}
}

// app is the state shared by every command: config, logger, store and the
// Syncer bound to it.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *store.Store
	syncer  *api.Syncer
	persist bool
}

func newApp(configPath string) (*app, error) {
	if !config.ConfigExists(configPath) {
		if err := firstTimeSetup(configPath); err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Language != "" {
		i18n.SetLanguage(i18n.Language(cfg.Language))
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	gate := auth.Gate{Username: cfg.Login.Username, Password: cfg.Login.Password}
	if err := login(gate); err != nil {
		log.WithError(err).Warnw("Login refused")
		log.Close()
		return nil, err
	}

	st := store.New(domain.Defaults())

	var remote api.Remote
	client := api.NewClient(cfg.Remote.URL, cfg.Remote.BinID, cfg.Remote.MasterKey)
	if cfg.Remote.Enabled && client.IsConfigured() {
		remote = client
	}
	syncer := api.NewSyncer(st, remote,
		api.WithDebounce(cfg.Sync.Debounce),
		api.WithLogger(log),
	)

	return &app{cfg: cfg, log: log, store: st, syncer: syncer, persist: remote != nil}, nil
}

func (a *app) user() domain.User {
	if a.cfg.User.Name == "" {
		return domain.DefaultUser
	}
	return domain.User{ID: domain.DefaultUser.ID, Name: a.cfg.User.Name, Initials: initials(a.cfg.User.Name)}
}

// close saves pending edits before stopping the Syncer.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	a.syncer.Flush(ctx)
	a.syncer.Stop()
	a.log.Infow("Shutdown complete")
	a.log.Close()
}

func runTUI(ctx context.Context, configPath string) error {
	printLogo()

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	a.log.Infow("Starting", "persist", a.persist, "generator", a.cfg.Generator.APIKey != "")

	m := ui.NewModel(ctx, ui.Deps{
		Store:     a.store,
		Syncer:    a.syncer,
		Generator: generator.New(a.cfg.Generator),
		User:      a.user(),
		Persist:   a.persist,
		Log:       a.log,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func login(gate auth.Gate) error {
	if !gate.Enabled() {
		return nil
	}
	t := i18n.T()
	for attempt := 0; attempt < auth.MaxAttempts; attempt++ {
		username, err := prompt(t.Username, false)
		if err != nil {
			return err
		}
		password, err := prompt(t.Password, true)
		if err != nil {
			return err
		}
		if gate.Check(username, password) {
			return nil
		}
		fmt.Println(t.LoginFailed)
	}
	return errors.New(t.LoginExceeded)
}

func prompt(label string, secret bool) (string, error) {
	fmt.Print(label)

	if secret && term.IsTerminal(int(os.Stdin.Fd())) {
		value, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("%s: %w", i18n.T().Error, err)
		}
		return strings.TrimSpace(string(value)), nil
	}

	value, err := stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("%s: %w", i18n.T().Error, err)
	}
	return strings.TrimSpace(value), nil
}

var stdin = bufio.NewReader(os.Stdin)

func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func printLogo() {
	fmt.Println()
	fmt.Println("   ┏━┓╺┳╸╻ ╻╺┳┓╻ ╻╺┳┓┏━╸┏━┓╻┏ ")
	fmt.Println("   ┗━┓ ┃ ┃ ┃ ┃┃┗┳┛ ┃┃┣╸ ┗━┓┣┻┓")
	fmt.Println("   ┗━┛ ╹ ┗━┛╺┻┛ ╹ ╺┻┛┗━╸┗━┛╹ ╹")
	fmt.Println()
}

func firstTimeSetup(configPath string) error {
	fmt.Println("  Welcome to StudyDesk! / Benvenuto in StudyDesk!")
	fmt.Println()

	fmt.Println("  Select language / Seleziona lingua:")
	fmt.Println("  [1] English")
	fmt.Println("  [2] Italiano")
	fmt.Print("  > ")

	choice, err := stdin.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	language := "en"
	if strings.TrimSpace(choice) == "2" {
		language = "it"
	}
	i18n.SetLanguage(i18n.Language(language))

	cfg := config.Default()
	cfg.Language = language
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	if language == "it" {
		fmt.Println("  Configurazione creata!")
		fmt.Println("  Modifica config.yml o .env per collegare il tuo bin jsonbin.")
	} else {
		fmt.Println("  Configuration created!")
		fmt.Println("  Edit config.yml or .env to connect your jsonbin bin.")
	}
	fmt.Println()

	return nil
}
