package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/vidqueue/vidqueue/internal/config"
	"github.com/vidqueue/vidqueue/internal/coordinator"
	"github.com/vidqueue/vidqueue/internal/download"
	"github.com/vidqueue/vidqueue/internal/history"
	"github.com/vidqueue/vidqueue/internal/model"
	"github.com/vidqueue/vidqueue/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	fmt.Printf("vidqueue v%s\n", version)

	settings := loadSettings()
	if err := platform.CreateDirectoryIfNotExists(settings.DownloadDir); err != nil {
		log.Printf("Failed to ensure download dir: %v", err)
	}

	store := history.NewStore(historyPath())

	c := coordinator.New(settings, store, coordinator.Callbacks{
		OnStatus: func(message string) {
			fmt.Println(message)
		},
		OnProgress: func(row int, percent float64, speed, eta string) {
			fmt.Printf("\r[%d] %5.1f%%  %s  ETA %s   ", row, percent, speed, eta)
		},
		OnItemCompleted: func(row int) {
			fmt.Printf("\n[%d] completed\n", row)
		},
		OnItemFailed: func(row int, message string) {
			fmt.Printf("\n[%d] %s\n", row, message)
		},
		OnSearchResult: func(result model.SearchResult) {
			fmt.Printf("Found: %s\n", result.Title)
		},
		OnSearchFinished: func() {
			fmt.Println("Search finished. Type 'results' to pick formats.")
		},
		OnDownloadFinished: func() {
			fmt.Println("Batch finished.")
		},
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Println("\nShutting down...")
		c.Shutdown()
		os.Exit(0)
	}()

	repl(c, store)
	c.Shutdown()
}

func loadSettings() *config.Settings {
	path, err := config.SettingsPath()
	if err != nil {
		log.Printf("Config dir unavailable: %v", err)
		return config.DefaultSettings()
	}
	settings, err := config.Load(path)
	if err != nil {
		log.Printf("Failed to load settings: %v", err)
		return config.DefaultSettings()
	}
	return settings
}

func historyPath() string {
	dir, err := platform.GetCacheDir(config.AppName)
	if err != nil {
		log.Printf("Cache dir unavailable: %v", err)
		dir = "."
	}
	return filepath.Join(dir, history.FileName)
}

func repl(c *coordinator.Coordinator, store *history.Store) {
	printHelp()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		switch fields[0] {
		case "search":
			if len(fields) < 2 {
				fmt.Println("Usage: search <url>")
				break
			}
			if err := c.StartSearch(fields[1]); err != nil {
				fmt.Println(err)
			}

		case "results":
			printResults(c)

		case "download":
			startDownload(c, fields[1:])

		case "queue":
			printQueue(c)

		case "history":
			printHistory(store, strings.Join(fields[1:], " "))

		case "help":
			printHelp()

		case "quit", "exit":
			return

		default:
			fmt.Printf("Unknown command %q, try 'help'\n", fields[0])
		}
		fmt.Print("> ")
	}
}

func printHelp() {
	fmt.Println(`Commands:
  search <url>              resolve a video or playlist URL
  results                   list resolved entries and their formats
  download <entry> <fmt>    download one entry with the chosen format number
  queue                     show queue rows and statuses
  history [query]           show recent downloads, optionally filtered
  quit`)
}

func printResults(c *coordinator.Coordinator) {
	results := c.Results()
	if len(results) == 0 {
		fmt.Println("No results yet.")
		return
	}
	for i, r := range results {
		fmt.Printf("%d. %s\n   %s\n", i+1, r.Title, r.URL)
		for j, f := range r.Formats {
			fmt.Printf("   %d) %s\n", j+1, f.Display)
		}
	}
}

func startDownload(c *coordinator.Coordinator, args []string) {
	results := c.Results()
	if len(args) < 2 {
		fmt.Println("Usage: download <entry> <format>")
		return
	}
	entry, err1 := strconv.Atoi(args[0])
	format, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || entry < 1 || entry > len(results) {
		fmt.Println("Pick an entry and format number from 'results'.")
		return
	}
	r := results[entry-1]
	if format < 1 || format > len(r.Formats) {
		fmt.Printf("Entry %d has %d formats.\n", entry, len(r.Formats))
		return
	}

	jobs := []download.Job{{
		Title:    r.Title,
		URL:      r.URL,
		FormatID: r.Formats[format-1].ID,
	}}
	err := c.StartDownload(jobs, nil)
	switch {
	case errors.Is(err, coordinator.ErrBusy):
		fmt.Println("A batch is already running; wait for it to finish.")
	case err != nil:
		fmt.Println(err)
	default:
		fmt.Printf("Downloading %s...\n", r.Title)
	}
}

func printQueue(c *coordinator.Coordinator) {
	items := c.Items()
	if len(items) == 0 {
		fmt.Println("Queue is empty.")
		return
	}
	for _, item := range items {
		fmt.Printf("[%d] %-9s %5.1f%%  %s\n", item.Row, item.Status, item.Progress, item.Title)
	}
}

func printHistory(store *history.Store, query string) {
	var entries []history.Entry
	if query == "" {
		entries = store.Recent(history.DefaultRecentLimit)
	} else {
		entries = store.Search(query)
	}
	if len(entries) == 0 {
		fmt.Println("No history entries.")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  (%s)\n", e.Timestamp, e.Title, e.DownloadPath)
	}
}
