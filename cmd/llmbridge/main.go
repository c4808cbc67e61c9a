// Command llmbridge is a small CLI around the gateway: send a prompt, test
// provider connectivity, or inspect a local inference endpoint.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"llmbridge/config"
	"llmbridge/internal/catalog"
	"llmbridge/internal/core"
	"llmbridge/internal/credentials"
	"llmbridge/internal/gateway"
	"llmbridge/internal/probe"
	"llmbridge/internal/version"
)

var (
	flagModel   string
	flagBaseURL string
	flagSystem  string
	flagStream  bool
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "llmbridge",
		Short:         "Unified client for heterogeneous LLM chat APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional; real env vars win either way.
			_ = godotenv.Load()

			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: time.TimeOnly,
			})))
		},
	}
	root.PersistentFlags().StringVar(&flagModel, "model", "", "model id (overrides LLMBRIDGE_MODEL)")
	root.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "endpoint base URL (overrides the model default)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	chatCmd := &cobra.Command{
		Use:   "chat [prompt]",
		Short: "Send a prompt to the active model",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChat,
	}
	chatCmd.Flags().StringVar(&flagSystem, "system", "", "system prompt")
	chatCmd.Flags().BoolVar(&flagStream, "stream", true, "stream output as it is generated")

	root.AddCommand(
		chatCmd,
		&cobra.Command{
			Use:   "test",
			Short: "Check that the active provider accepts the configured credentials",
			RunE:  runTest,
		},
		&cobra.Command{
			Use:   "models [base-url]",
			Short: "List models served by an OpenAI-compatible or Ollama endpoint",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runModels,
		},
		&cobra.Command{
			Use:   "status [base-url]",
			Short: "Check whether a local inference service is running",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runStatus,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(version.Info())
			},
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// loadSettings builds Settings from the environment, then applies CLI
// overrides. A model override goes through the credential switch so the
// right provider key becomes active.
func loadSettings() (core.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return core.Settings{}, err
	}
	if flagModel != "" && flagModel != settings.ModelID {
		credentials.SwitchModel(&settings, flagModel)
	}
	if flagBaseURL != "" {
		settings.BaseURL = flagBaseURL
	}
	return settings, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var messages []core.Message
	if flagSystem != "" {
		messages = append(messages, core.Message{Role: core.RoleSystem, Content: flagSystem})
	}
	messages = append(messages, core.Message{Role: core.RoleUser, Content: strings.Join(args, " ")})

	g := gateway.New()

	if !flagStream {
		text, err := g.SendMessage(cmd.Context(), messages, settings, nil)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}

	printer := &streamPrinter{w: os.Stdout}
	text, err := g.SendMessage(cmd.Context(), messages, settings, printer.print)
	if err != nil {
		return err
	}
	printer.print(text)
	fmt.Println()
	return nil
}

// streamPrinter writes cumulative text incrementally, emitting only the
// unseen suffix of each update. A dialect may replace the accumulated text
// with a shorter or diverging final form (the Responses completed event
// does); already-printed output cannot be unprinted, so such an update is
// skipped rather than sliced out of range.
type streamPrinter struct {
	w       io.Writer
	printed string
}

func (p *streamPrinter) print(cumulative string) {
	if !strings.HasPrefix(cumulative, p.printed) {
		return
	}
	_, _ = io.WriteString(p.w, cumulative[len(p.printed):])
	p.printed = cumulative
}

func runTest(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	fmt.Println(gateway.New().TestConnection(cmd.Context(), settings))
	return nil
}

// probeBaseURL picks the endpoint for probe commands: the positional
// argument, then the configured base URL, then the model's default.
func probeBaseURL(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	settings, err := loadSettings()
	if err != nil {
		return "", err
	}
	if settings.BaseURL != "" {
		return settings.BaseURL, nil
	}
	return catalog.DefaultBaseURL(settings.ModelID), nil
}

func runModels(cmd *cobra.Command, args []string) error {
	baseURL, err := probeBaseURL(args)
	if err != nil {
		return err
	}
	models, err := probe.New().DiscoverModels(cmd.Context(), baseURL)
	if err != nil {
		return err
	}
	for _, model := range models {
		fmt.Println(model)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	baseURL, err := probeBaseURL(args)
	if err != nil {
		return err
	}
	status := probe.New().CheckLocalServiceStatus(cmd.Context(), baseURL)
	if !status.Running {
		fmt.Println("not running")
		return nil
	}
	fmt.Printf("running (%d models)\n", len(status.Models))
	for _, model := range status.Models {
		fmt.Println("  " + model)
	}
	return nil
}
