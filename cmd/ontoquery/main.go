// Package main implements the ontoquery command, an interactive
// question-answering loop over a typed knowledge graph. Questions are
// read line by line from stdin and each answer envelope is printed as
// indented JSON.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/c360/ontoquery/config"
	"github.com/c360/ontoquery/enrich"
	"github.com/c360/ontoquery/graph"
	"github.com/c360/ontoquery/health"
	"github.com/c360/ontoquery/llm"
	"github.com/c360/ontoquery/metric"
	"github.com/c360/ontoquery/orchestrator"
	"github.com/c360/ontoquery/schema"
	"github.com/c360/ontoquery/validation"
)

const (
	Version = "0.1.0"
	appName = "ontoquery"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to JSON config file")
	validate := flag.Bool("validate", false, "validate the config and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *validate {
		fmt.Println("configuration is valid")
		return nil
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)
	logger.Info("starting", "config_path", *configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *metric.Metrics
	var registry *metric.Registry
	if cfg.Metrics.Enabled {
		registry = metric.NewRegistry()
		metrics = registry.Metrics
	}

	monitor := health.NewMonitor()
	o, err := buildPipeline(cfg, logger, metrics, monitor)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		go serveOps(cfg.Metrics.Addr, registry, monitor, logger)
	}

	return questionLoop(ctx, o)
}

// buildPipeline wires the store, gateway, dispatcher, collaborators
// and orchestrator from the loaded config.
func buildPipeline(cfg config.Config, logger *slog.Logger, metrics *metric.Metrics, monitor *health.Monitor) (*orchestrator.Orchestrator, error) {
	store, err := graph.NewStore(graph.StoreConfig{
		SchemaPath:    cfg.Graph.SchemaPath,
		InstancePath:  cfg.Graph.InstancePath,
		BaseNamespace: cfg.Graph.BaseNamespace,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}
	monitor.RegisterCheck("store", func() health.Status {
		return health.NewHealthy("store", fmt.Sprintf("%d triples committed", store.Graph().Len()))
	})

	gateway := validation.NewGateway(validation.GatewayConfig{
		Store:   store,
		Runner:  validation.InferenceRunner{MaxIterations: cfg.Pipeline.MaxInferenceIterations},
		Logger:  logger,
		Metrics: metrics,
	})

	catalog := enrich.NewCatalogClient(enrich.CatalogConfig{
		BaseURL: cfg.Catalog.BaseURL,
		MailTo:  cfg.Catalog.MailTo,
		Logger:  logger,
	})
	dispatcher := enrich.NewDispatcher(enrich.DispatcherConfig{
		Gateway: gateway,
		Fetcher: catalog,
		Base:    store.Graph().Base(),
		Logger:  logger,
	})

	ocfg := orchestrator.Config{
		Store:              store,
		Gateway:            gateway,
		Dispatcher:         dispatcher,
		Translator:         llm.NewTemplateTranslator(store.Graph().Base(), logger),
		GenerateConfidence: cfg.Pipeline.GenerateConfidence,
		RefineConfidence:   cfg.Pipeline.RefineConfidence,
		CacheSize:          cfg.Pipeline.CacheSize,
		Logger:             logger,
		Metrics:            metrics,
	}

	if cfg.LLM.Enabled {
		client, err := llm.NewClient(llm.ClientConfig{
			BaseURL:       cfg.LLM.BaseURL,
			Model:         cfg.LLM.Model,
			APIKey:        cfg.LLM.APIKey,
			Timeout:       cfg.LLM.Timeout(),
			SchemaSnippet: func() string { return schema.Snippet(store.Graph()) },
			Logger:        logger,
			Metrics:       metrics,
		})
		if err != nil {
			return nil, err
		}
		ocfg.Escalation = client
		ocfg.Refiner = client
		ocfg.Proposer = client
	}

	return orchestrator.New(ocfg)
}

func serveOps(addr string, registry *metric.Registry, monitor *health.Monitor, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	mux.Handle("/healthz", monitor.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("ops endpoint listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("ops endpoint failed", "error", err)
	}
}

// questionLoop reads questions from stdin until EOF, "exit" or
// cancellation.
func questionLoop(ctx context.Context, o *orchestrator.Orchestrator) error {
	scanner := bufio.NewScanner(os.Stdin)
	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")

	fmt.Println(`Ask a question ("exit" to quit):`)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}

		envelope := o.HandleQuery(ctx, text)
		if err := out.Encode(envelope); err != nil {
			return err
		}
	}
	return scanner.Err()
}
