package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"selection-hook/config"
	"selection-hook/engine"
	"selection-hook/filter"
	"selection-hook/logutil"
	"selection-hook/messages"
)

func main() {
	// Parse command line flags
	runOnce := flag.Bool("runonce", false, "Retrieve the current selection once and exit")
	jsonOutput := flag.Bool("json", false, "Print selections as JSON lines")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logutil.Setup(cfg.EnableFileLogging)

	eng := engine.New()
	applyFilters(eng, cfg)

	if *runOnce {
		runSelectionOnce(eng, cfg, *jsonOutput)
		return
	}

	err = eng.Start(engine.Options{
		PassiveMode:       cfg.PassiveMode,
		ForwardMouseMove:  cfg.ForwardMouseMove,
		ClipboardFallback: cfg.ClipboardFallback,
		DoubleClickTime:   cfg.DoubleClickTime,
	})
	if err != nil {
		log.Fatalf("Failed to start selection engine: %v", err)
	}
	defer eng.Stop()

	log.Printf("Selection watcher initialized")

	// Print selections until interrupted
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	br := eng.Bridge()
	for {
		select {
		case <-sigChan:
			log.Printf("Shutting down due to signal...")
			return
		case ev := <-br.Selections():
			printSelection(ev.Result, *jsonOutput)
		case ev := <-br.Aux():
			if errEv, ok := ev.(messages.ErrorEvent); ok {
				log.Printf("Engine error: %v", errEv.Err)
			}
		}
	}
}

func applyFilters(eng *engine.Engine, cfg *config.Config) {
	f := eng.Filters()
	switch {
	case len(cfg.IncludePrograms) > 0:
		f.SetGlobal(filter.NewSpec(filter.IncludeList, cfg.IncludePrograms))
	case len(cfg.ExcludePrograms) > 0:
		f.SetGlobal(filter.NewSpec(filter.ExcludeList, cfg.ExcludePrograms))
	}
	if len(cfg.ClipboardExcludePrograms) > 0 {
		f.SetClipboard(filter.NewSpec(filter.ExcludeList, cfg.ClipboardExcludePrograms))
	}
}

// runSelectionOnce retrieves whatever is selected right now and exits.
func runSelectionOnce(eng *engine.Engine, cfg *config.Config, jsonOutput bool) {
	err := eng.Start(engine.Options{
		PassiveMode:       true,
		ClipboardFallback: cfg.ClipboardFallback,
	})
	if err != nil {
		log.Fatalf("Failed to start selection engine: %v", err)
	}
	defer eng.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := eng.RequestCurrentSelection(ctx)
	if err != nil {
		log.Fatalf("Selection retrieval failed: %v", err)
	}
	if res.Text == "" {
		fmt.Println("No selection detected")
		return
	}
	printSelection(res, jsonOutput)
}

func printSelection(res messages.SelectionResult, jsonOutput bool) {
	if jsonOutput {
		out, err := json.Marshal(struct {
			Text     string `json:"text"`
			Program  string `json:"program"`
			Method   string `json:"method"`
			PosLevel int    `json:"posLevel"`
		}{res.Text, res.ProgramName, res.Method.String(), int(res.PosLevel)})
		if err != nil {
			log.Printf("Failed to encode selection: %v", err)
			return
		}
		fmt.Println(string(out))
		return
	}
	fmt.Printf("[%s] %s: %q\n", res.Method, res.ProgramName, res.Text)
}
