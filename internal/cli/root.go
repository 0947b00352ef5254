// Package cli implements the memo-timeline CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rcliao/memo-timeline/internal/docstore"
	"github.com/rcliao/memo-timeline/internal/model"
)

var (
	dbPath     string
	formatFlag string
	verbose    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "memo-timeline",
	Short: "A global timeline over per-document memo logs",
	Long: "Aggregates timestamped memos scattered across many documents into one\n" +
		"chronological, filterable timeline. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $MEMO_TIMELINE_DB or ~/.memo-timeline/memos.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("MEMO_TIMELINE_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".memo-timeline", "memos.db")
}

// defaultLimit is the display cap used when neither the flag nor the
// MEMO_TIMELINE_MAX env var overrides it.
const defaultLimit = 500

func getLimit(cmd *cobra.Command) int {
	if cmd.Flags().Changed("limit") {
		n, _ := cmd.Flags().GetInt("limit")
		return n
	}
	if env := os.Getenv("MEMO_TIMELINE_MAX"); env != "" {
		if n, err := strconv.Atoi(env); err == nil {
			return n
		}
	}
	n, _ := cmd.Flags().GetInt("limit")
	return n
}

func openStore() (*docstore.SQLiteStore, error) {
	return docstore.NewSQLiteStore(getDBPath())
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// parseWindow maps the CLI window flags onto a filter window.
func parseWindow(name, fromStr, toStr string) (model.Window, error) {
	switch name {
	case "", "all":
		return model.Window{Kind: model.All}, nil
	case "today":
		return model.Window{Kind: model.Today}, nil
	case "7d":
		return model.Window{Kind: model.Last7}, nil
	case "30d":
		return model.Window{Kind: model.Last30}, nil
	case "custom":
		from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return model.Window{}, fmt.Errorf("invalid --from date %q (use YYYY-MM-DD)", fromStr)
		}
		to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			return model.Window{}, fmt.Errorf("invalid --to date %q (use YYYY-MM-DD)", toStr)
		}
		return model.Window{Kind: model.Custom, From: from, To: to}, nil
	default:
		return model.Window{}, fmt.Errorf("unknown window %q (use all, today, 7d, 30d, custom)", name)
	}
}

func windowFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("window", "w", "all", "Time window: all, today, 7d, 30d, custom")
	cmd.Flags().String("from", "", "Custom window start (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Custom window end (YYYY-MM-DD)")
	cmd.Flags().IntP("limit", "l", defaultLimit, "Max displayed memos, newest win; 0 means unbounded")
}

func windowFromFlags(cmd *cobra.Command) (model.Window, error) {
	name, _ := cmd.Flags().GetString("window")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	return parseWindow(name, fromStr, toStr)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
