package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AzSumToshko/youtube-to-mp3/internal/batch"
	"github.com/AzSumToshko/youtube-to-mp3/internal/config"
	"github.com/AzSumToshko/youtube-to-mp3/internal/model"
	"github.com/AzSumToshko/youtube-to-mp3/internal/report"
	"github.com/AzSumToshko/youtube-to-mp3/internal/ytdlp"
)

func main() {
	// Command line flags
	var (
		batchFlag    = flag.String("config", "", "Path to batch file (JSON with tracks and destinations)")
		settingsFlag = flag.String("settings", "", "Path to settings file")
		outputFlag   = flag.String("output", "", "Music folder (overrides settings)")
		noTagsFlag   = flag.Bool("no-tags", false, "Skip ID3 tagging and cover art")
		localFlag    = flag.Bool("local", false, "Place files in the local music folder")
		remoteFlag   = flag.Bool("remote", false, "Place files on the remote host via scp")
		playlistFlag = flag.Bool("playlist", false, "Create playlist file per destination")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "List work items without downloading")
	)

	flag.Parse()

	// CLI mode - require a batch file or a URL
	if *batchFlag == "" && flag.NArg() == 0 {
		fmt.Println("YouTube to MP3 - Download, tag and file YouTube audio")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  yt2mp3 -config <batch.json> [options]")
		fmt.Println("  yt2mp3 <URL> [destination] [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: yt2mp3-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load settings
	settings := config.DefaultSettings()
	if *settingsFlag != "" {
		var err error
		settings, err = config.Load(*settingsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *outputFlag != "" {
		settings.MusicFolder = *outputFlag
	}
	if *noTagsFlag {
		settings.ModifyTags = false
	}
	if *localFlag {
		settings.RemotePlacement = false
	}
	if *remoteFlag {
		settings.RemotePlacement = true
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *verboseFlag {
		settings.Verbose = true
	}

	// Resolve work items
	var items []model.WorkItem
	if *batchFlag != "" {
		var warnings []string
		var err error
		items, warnings, err = config.LoadBatch(*batchFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading batch file: %v\n", err)
			os.Exit(1)
		}
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "⚠️  %s\n", warning)
		}
	} else {
		destination := config.DefaultDestination
		if flag.NArg() > 1 {
			destination = flag.Arg(1)
		}
		items = []model.WorkItem{{URL: flag.Arg(0), Destination: destination}}
	}

	// Check external tools before doing any work
	if err := ytdlp.CheckDependencies(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := batch.NewManager(settings, func(event batch.ProgressEvent) {
		if event.Level == batch.LevelVerbose && !settings.Verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case batch.LevelError:
			prefix = "❌ "
		case batch.LevelWarning:
			prefix = "⚠️  "
		case batch.LevelSuccess:
			prefix = "✅ "
		case batch.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("🎵 YouTube to MP3")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if *dryRunFlag {
		fmt.Printf("Loaded %d track(s):\n", len(items))
		for _, item := range items {
			fmt.Printf("  %s → %s\n", item.URL, item.Destination)
		}
		fmt.Println("\n[Dry run - not downloading]")
		return
	}

	fmt.Printf("📥 Processing %d track(s)...\n", len(items))
	fmt.Println()

	result, err := manager.Run(ctx, items)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The failure report survives cancellation: items finished before
	// the interrupt are still accounted for.
	if wrote, reportErr := report.WriteIfFailed(result, settings.FailureReportPath); reportErr != nil {
		fmt.Fprintf(os.Stderr, "Error writing failure report: %v\n", reportErr)
	} else if wrote {
		fmt.Printf("\n📄 Failure report written to %s\n", settings.FailureReportPath)
	}

	if ctx.Err() != nil {
		fmt.Println("\nBatch cancelled.")
		os.Exit(130)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! %d succeeded, %d failed\n", result.Succeeded(), result.Failed())
}
