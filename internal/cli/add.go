package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/memo-timeline/internal/docstore"
	"github.com/rcliao/memo-timeline/internal/model"
	"github.com/rcliao/memo-timeline/internal/timeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add <doc-id> [text]",
		Short: "Add a memo to a document",
		Long:  "Add a memo to a document's log. Text can be a positional arg or piped via stdin.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAdd,
	}
	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	docID := args[0]

	var text string
	if len(args) > 1 {
		text = strings.Join(args[1:], " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			text = string(b)
		}
	}
	if strings.TrimSpace(text) == "" {
		exitErr("add", fmt.Errorf("memo text is required (positional arg or stdin)"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	cache := timeline.NewCache(timeline.Config{
		Adapter: s,
		Logger:  newLogger(),
		Window:  model.Window{Kind: model.All},
	})

	entry, err := cache.Add(cmd.Context(), docID, text)
	if errors.Is(err, docstore.ErrNoMemoField) {
		exitErr("add", fmt.Errorf("document %s has no memo log attribute; recreate it without --no-memo-log to enable memos", docID))
	}
	if err != nil {
		exitErr("add", err)
	}

	b, _ := json.Marshal(entry)
	fmt.Println(string(b))
}
