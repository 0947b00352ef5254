package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/memo-timeline/internal/model"
	"github.com/rcliao/memo-timeline/internal/timeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <doc-id> <text>",
		Short: "Rewrite one memo's text",
		Long: "Rewrite the text of the memo identified by --ts. When several memos in\n" +
			"the log share a timestamp, the first in log order is edited.",
		Args: cobra.MinimumNArgs(2),
		Run:  runEdit,
	}
	cmd.Flags().Int64("ts", 0, "Timestamp of the memo to edit (required)")
	cmd.MarkFlagRequired("ts")
	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	docID := args[0]
	text := strings.Join(args[1:], " ")
	ts, _ := cmd.Flags().GetInt64("ts")

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

	if err := cache.Edit(cmd.Context(), docID, ts, text); err != nil {
		exitErr("edit", err)
	}

	fmt.Printf(`{"ok":true,"document_id":%q,"ts":%d}`+"\n", docID, ts)
}
