// Package main is the tubechat CLI entry point.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tubechat/tubechat/internal/chat"
	"github.com/tubechat/tubechat/internal/cli"
	"github.com/tubechat/tubechat/internal/config"
	"github.com/tubechat/tubechat/internal/embedding"
	"github.com/tubechat/tubechat/internal/indexer"
	"github.com/tubechat/tubechat/internal/llm"
	"github.com/tubechat/tubechat/internal/server"
	"github.com/tubechat/tubechat/internal/youtube"
	"github.com/tubechat/tubechat/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/tubechat/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists it
// is used instead.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	// Credentials come from the environment; a .env in the working directory is
	// picked up for development.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "chat":
		runChat()
	case "transcript":
		runTranscript()
	case "version", "--version", "-v":
		fmt.Printf("tubechat version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// components holds the shared clients a chat session is built from.
type components struct {
	cfg        *config.Config
	logger     *zap.Logger
	transcript *youtube.Client
	embedder   embedding.Embedder
	llm        llm.Client
}

func (c *components) newSession() *chat.Session {
	idx := indexer.New(c.embedder, indexer.NewChunker(c.cfg.Chat.ChunkSize, c.cfg.Chat.ChunkOverlap), c.logger)
	return chat.NewSession(c.transcript, idx, c.llm, c.cfg.Chat.RetrieveK, c.cfg.Chat.HistoryLimit, c.logger)
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	apiKey, err := config.LoadAPIKey()
	if err != nil {
		return nil, err
	}
	openaiTimeout := time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second
	embedder := embedding.NewOpenAIEmbedder(
		cfg.OpenAI.BaseURL,
		apiKey,
		cfg.OpenAI.EmbeddingModel,
		cfg.OpenAI.Dimensions,
		openaiTimeout,
	)
	llmClient := llm.NewOpenAI(cfg.OpenAI.BaseURL, apiKey, cfg.OpenAI.ChatModel, cfg.OpenAI.Temperature, openaiTimeout)
	transcript := youtube.NewClient(
		cfg.YouTube.Languages,
		time.Duration(cfg.YouTube.TimeoutSeconds)*time.Second,
		youtube.WithLogger(logger),
	)
	return &components{
		cfg:        cfg,
		logger:     logger,
		transcript: transcript,
		embedder:   embedder,
		llm:        llmClient,
	}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (chunk vectors, request details)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}

	srv := server.NewServer(comps.newSession, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: tubechat chat [flags] <youtube-url>")
		os.Exit(1)
	}
	videoURL := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	session := comps.newSession()
	defer session.Close()

	ctx := context.Background()
	fmt.Printf("Loading transcript for %s ...\n", videoURL)
	if err := session.LoadVideo(ctx, videoURL); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load video: %v\n", err)
		os.Exit(1)
	}
	cli.WriteVideoInfo(os.Stdout, session.Video(), session.ChunkCount())

	repl(ctx, session)
}

// repl reads questions from stdin until EOF. Lines starting with "/" are
// commands: /history prints the conversation so far, /quotes <phrase> searches
// the transcript for a phrase, /quit exits.
func repl(ctx context.Context, session *chat.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch {
		case line == "/quit" || line == "/exit":
			return
		case line == "/history":
			_ = cli.WriteHistory(os.Stdout, session.History(), cli.OutputText)
		case strings.HasPrefix(line, "/quotes "):
			phrase := strings.TrimSpace(strings.TrimPrefix(line, "/quotes "))
			hits, err := session.Quotes(ctx, phrase, 5)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Quote search failed: %v\n", err)
				continue
			}
			_ = cli.WriteQuotes(os.Stdout, hits, cli.OutputText)
		default:
			answer, err := session.Answer(ctx, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Answer failed: %v\n", err)
				continue
			}
			fmt.Printf("\n%s\n\n", answer)
		}
	}
}

func runTranscript() {
	fs := flag.NewFlagSet("transcript", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: tubechat transcript [flags] <youtube-url>")
		os.Exit(1)
	}
	videoURL := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	videoID, ok := youtube.ExtractVideoID(videoURL)
	if !ok {
		fmt.Fprintf(os.Stderr, "Not a recognizable YouTube URL: %s\n", videoURL)
		os.Exit(1)
	}
	client := youtube.NewClient(
		cfg.YouTube.Languages,
		time.Duration(cfg.YouTube.TimeoutSeconds)*time.Second,
		youtube.WithLogger(logger),
	)
	transcript, err := client.FetchTranscript(context.Background(), videoID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch transcript: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(transcript)
}

func printUsage() {
	fmt.Println(`tubechat - Chat with a YouTube video's transcript

Usage:
  tubechat server [flags]             Start the HTTP API server
  tubechat chat [flags] <url>         Load a video and chat interactively
  tubechat transcript [flags] <url>   Fetch and print a video transcript
  tubechat version                    Show version
  tubechat help                       Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/tubechat/config.yaml)
  --debug            Enable debug logging (chunk vectors, request details)

Chat Flags:
  --config string    Config file path
  --debug            Enable debug logging

REPL commands:
  /history           Print the conversation so far
  /quotes <phrase>   Search the transcript for a phrase
  /quit              Exit

The OpenAI API key is read from the OPENAI_API_KEY environment variable
(a .env file in the working directory is honored).

Examples:
  tubechat chat https://www.youtube.com/watch?v=dQw4w9WgXcQ
  tubechat transcript https://youtu.be/dQw4w9WgXcQ
  tubechat server --debug`)
}
