// Package main provides the Restaceratops CLI application entry point.
// Restaceratops is an AI-powered API testing assistant that answers testing
// questions through a remote completion service and degrades gracefully to a
// deterministic guidance catalog when the service is unavailable.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"restaceratops/internal/config"
	"restaceratops/internal/logger"
	"restaceratops/internal/services"
	"restaceratops/internal/testutils"
	"restaceratops/pkg/resttypes"
)

var (
	logLevel string
	logFile  string
	testMode bool
	version  = "1.0.0" // This could be set at build time
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "restaceratops",
	Short: "Restaceratops - AI-powered API testing assistant",
	Long: `Restaceratops answers API testing questions with a remote language model
when one is configured, and with built-in guidance documents when it is not.
It can also generate test-specification documents from API descriptions.`,
	Run: runChat, // Default behavior is the interactive chat loop
}

// chatCmd represents the chat command (explicit version of default behavior)
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long:  `Start an interactive conversation. Type /reset, /stats or /quit for control commands.`,
	Run:   runChat,
}

// askCmd answers a single question and exits
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single API testing question",
	Args:  cobra.MinimumNArgs(1),
	Run:   runAsk,
}

// genspecCmd generates a test specification document
var genspecCmd = &cobra.Command{
	Use:   "genspec",
	Short: "Generate a test specification from an API description",
	Long: `Generate a YAML-shaped test specification document from a free-text API
description and requirements. Falls back to a built-in template when no
remote model is configured.`,
	Run: runGenSpec,
}

// analyzeCmd analyzes pasted test results
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze test results from stdin",
	Long:  `Read test-result output from stdin and print status-code-specific remediation guidance.`,
	Run:   runAnalyze,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("Restaceratops v%s\n", version)
	},
}

var (
	specDescription  string
	specRequirements string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")

	// Bind flags to viper
	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-file flag: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("test-mode", rootCmd.PersistentFlags().Lookup("test-mode")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding test-mode flag: %v\n", err)
		os.Exit(1)
	}

	genspecCmd.Flags().StringVarP(&specDescription, "description", "d", "", "API description (required)")
	genspecCmd.Flags().StringVarP(&specRequirements, "requirements", "r", "", "Testing requirements")
	_ = genspecCmd.MarkFlagRequired("description")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(genspecCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

// assistant bundles the services the CLI commands operate on.
type assistant struct {
	conversation *services.ConversationService
	specgen      *services.SpecGenService
	analyzer     *services.ResultAnalyzerService
	markdown     *services.MarkdownService
}

// buildAssistant wires up and initializes the service graph. Every command
// goes through here so flag handling and configuration stay in one place.
func buildAssistant() (*assistant, error) {
	if err := logger.Configure(logLevel, logFile, testMode); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	testutils.SetTestMode(testMode)

	cfg := config.Load()

	factory := services.NewClientFactoryService()
	if err := factory.Initialize(); err != nil {
		return nil, err
	}
	client, err := factory.ClientForConfig(cfg)
	if err != nil {
		return nil, err
	}

	intent := services.NewIntentService()
	catalog := services.NewGuidanceCatalogService()
	conversation := services.NewConversationService(client, intent, catalog, cfg)
	specgen := services.NewSpecGenService(client)
	analyzer := services.NewResultAnalyzerService()
	markdown := services.NewMarkdownService()

	// The classifier and catalog must come up before the conversation
	// service that consults them.
	for _, svc := range []resttypes.Service{intent, catalog, conversation, specgen, analyzer, markdown} {
		if err := svc.Initialize(); err != nil {
			return nil, fmt.Errorf("failed to initialize %s service: %w", svc.Name(), err)
		}
	}

	return &assistant{
		conversation: conversation,
		specgen:      specgen,
		analyzer:     analyzer,
		markdown:     markdown,
	}, nil
}

func runChat(_ *cobra.Command, _ []string) {
	app, err := buildAssistant()
	if err != nil {
		logger.Fatal("Failed to start", "error", err)
	}

	stats := app.conversation.Stats()
	fmt.Printf("🦖 Restaceratops v%s (provider: %s, remote: %v)\n", version, stats.Provider, stats.Configured)
	fmt.Println("Type your question, or /reset, /stats, /quit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch input {
		case "/quit", "/exit":
			return
		case "/reset":
			fmt.Println(app.conversation.Reset())
			continue
		case "/stats":
			s := app.conversation.Stats()
			fmt.Printf("provider=%s model=%s configured=%v history=%d\n",
				s.Provider, s.Model, s.Configured, s.HistoryLength)
			continue
		}

		result := app.conversation.HandleTurn(context.Background(), input)
		fmt.Println(app.markdown.RenderOrPlain(result.Text))
	}
}

func runAsk(_ *cobra.Command, args []string) {
	app, err := buildAssistant()
	if err != nil {
		logger.Fatal("Failed to start", "error", err)
	}

	question := strings.Join(args, " ")
	result := app.conversation.HandleTurn(context.Background(), question)
	fmt.Println(app.markdown.RenderOrPlain(result.Text))
}

func runGenSpec(_ *cobra.Command, _ []string) {
	app, err := buildAssistant()
	if err != nil {
		logger.Fatal("Failed to start", "error", err)
	}

	result := app.specgen.GenerateTestSpec(context.Background(), specDescription, specRequirements)
	fmt.Println(result.Document)
}

func runAnalyze(_ *cobra.Command, _ []string) {
	app, err := buildAssistant()
	if err != nil {
		logger.Fatal("Failed to start", "error", err)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		logger.Fatal("Failed to read stdin", "error", err)
	}

	fmt.Println(app.markdown.RenderOrPlain(app.analyzer.Analyze(string(data))))
}
