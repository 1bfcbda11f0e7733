// wotdctl is the headless companion to wotd.
//
// Usage:
//
//	wotdctl <command> [flags]
//
// Commands:
//
//	import    Load a vocabulary CSV into a SQLite database
//	lookup    Find a word or reading in an imported database
//	today     Print the entry each frame shows on a given day
//	frames    Print the frame collection
//	version   Print version information
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Mr-Dark-debug/wotd/internal/config"
	"github.com/Mr-Dark-debug/wotd/internal/database"
	"github.com/Mr-Dark-debug/wotd/internal/rotation"
	"github.com/Mr-Dark-debug/wotd/internal/vocab"
	"github.com/Mr-Dark-debug/wotd/pkg/timeutil"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	defaults := config.DefaultOptions()

	switch os.Args[1] {
	case "import":
		cmdImport(defaults)
	case "lookup":
		cmdLookup(defaults)
	case "today":
		cmdToday(defaults)
	case "frames":
		cmdFrames(defaults)
	case "version":
		fmt.Printf("wotd v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`wotdctl: word-of-the-day tooling

Usage:
  wotdctl <command> [flags]

Commands:
  import     Load a vocabulary CSV into a SQLite database
  lookup     Find a word or reading in an imported database
  today      Print the entry each frame shows on a given day
  frames     Print the frame collection
  version    Print version information

Run 'wotdctl <command> --help' for details on each command.`)
}

func defaultDB(o config.Options) string {
	return filepath.Join(filepath.Dir(o.ConfigPath), "vocabulary.db")
}

// cmdImport parses a CSV dataset and replaces the database contents.
func cmdImport(defaults config.Options) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	csvPath := fs.String("csv", defaults.VocabPath, "Vocabulary CSV to import")
	dbPath := fs.String("db", defaultDB(defaults), "Path to SQLite database")
	readings := fs.Bool("readings", false, "Derive missing kana before storing")
	history := fs.Int("history", 0, "List the last N imports instead of importing")
	fs.Parse(os.Args[2:])

	store, err := database.NewDBService(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	if *history > 0 {
		imports, err := store.Imports(*history)
		if err != nil {
			log.Fatalf("Query failed: %v", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSOURCE\tROWS\tIMPORTED")
		for _, imp := range imports {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", imp.ImportID, imp.Source, imp.RowCount,
				time.Unix(imp.ImportedAt, 0).Format(time.DateTime))
		}
		w.Flush()
		return
	}

	var opts []vocab.LoadOption
	if *readings {
		r, err := vocab.NewKagomeReader()
		if err != nil {
			log.Fatalf("Failed to start reading analyzer: %v", err)
		}
		opts = append(opts, vocab.WithReadings(r))
	}

	table, err := vocab.Load(vocab.CSVSource{Path: *csvPath}, opts...)
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}

	entries := make([]vocab.Entry, table.Len())
	for i := range entries {
		entries[i] = table.Get(i)
	}

	imp, err := store.ReplaceVocabulary(*csvPath, entries)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	fmt.Printf("Imported %d entries from %s into %s (import %d)\n",
		imp.RowCount, *csvPath, *dbPath, imp.ImportID)
}

// cmdLookup prints the stored rows matching a word or reading.
func cmdLookup(defaults config.Options) {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	dbPath := fs.String("db", defaultDB(defaults), "Path to SQLite database")
	fs.Parse(os.Args[2:])

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a word or reading is required")
		fs.Usage()
		os.Exit(1)
	}

	store, err := database.NewDBService(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	rows, err := store.Lookup(fs.Arg(0))
	if err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}
	if len(rows) == 0 {
		fmt.Printf("No entry for %q\n", fs.Arg(0))
		os.Exit(1)
	}
	b, _ := json.MarshalIndent(rows, "", "  ")
	fmt.Println(string(b))
}

type todayRow struct {
	Frame  int64       `json:"frame"`
	Offset int         `json:"lookat_offset"`
	Day    string      `json:"day"`
	Index  int         `json:"index"`
	Entry  vocab.Entry `json:"entry"`
}

// cmdToday shows what every frame displays on a day.
func cmdToday(defaults config.Options) {
	fs := flag.NewFlagSet("today", flag.ExitOnError)
	cfgPath := fs.String("config", defaults.ConfigPath, "Frame collection file")
	vocabPath := fs.String("vocab", defaults.VocabPath, "Vocabulary CSV or SQLite database")
	date := fs.String("date", "", "Day to show, YYYY-MM-DD in UTC (default: today)")
	outputFormat := fs.String("format", "text", "Output format: text, json")
	fs.Parse(os.Args[2:])

	day := timeutil.Today()
	if *date != "" {
		t, err := time.Parse(time.DateOnly, *date)
		if err != nil {
			log.Fatalf("Invalid date %q: %v", *date, err)
		}
		day = timeutil.DayBucket(t)
	}

	opts := defaults
	opts.ConfigPath = *cfgPath
	opts.VocabPath = *vocabPath
	opts.LogPath = ""
	logger, _, _ := opts.OpenLogger()

	table, err := opts.LoadVocabulary(logger)
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}
	frames, err := config.NewStore(opts.ConfigPath).Load()
	if err != nil {
		log.Fatalf("Failed to load frames: %v", err)
	}

	sel := rotation.NewSelector(table)
	rows := make([]todayRow, len(frames))
	for i, f := range frames {
		key := f.InstanceKey()
		rows[i] = todayRow{
			Frame:  f.ID,
			Offset: f.LookatOffset,
			Day:    timeutil.FormatDay(day),
			Index:  rotation.Index(day, key, table.Len()),
			Entry:  sel.Select(day, key),
		}
	}

	switch *outputFormat {
	case "json":
		b, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Println(string(b))
	case "text":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "FRAME\tLOOK\tINDEX\tWORD\tKANA\tENGLISH\n")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
				r.Frame, r.Offset, r.Index, r.Entry.Word, r.Entry.Kana, r.Entry.English)
		}
		w.Flush()
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *outputFormat)
		os.Exit(1)
	}
}

// cmdFrames prints the collection after defaults have been applied.
func cmdFrames(defaults config.Options) {
	fs := flag.NewFlagSet("frames", flag.ExitOnError)
	cfgPath := fs.String("config", defaults.ConfigPath, "Frame collection file")
	normalize := fs.Bool("write", false, "Write the completed collection back to the file")
	fs.Parse(os.Args[2:])

	store := config.NewStore(*cfgPath)
	frames, err := store.Load()
	if err != nil {
		log.Fatalf("Failed to load frames: %v", err)
	}

	for _, f := range frames {
		fmt.Printf("%s  font=%q colours=[%s]\n", f, f.Font,
			strings.Join([]string{f.MainTextColour, f.SecondTextColour, f.LockColour, f.UnlockColour}, " | "))
	}

	if *normalize {
		if err := store.Save(frames); err != nil {
			log.Fatalf("Failed to save frames: %v", err)
		}
		fmt.Printf("Wrote %d frames to %s\n", len(frames), store.Path())
	}
}
