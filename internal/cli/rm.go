package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/memo-timeline/internal/model"
	"github.com/rcliao/memo-timeline/internal/timeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <doc-id>",
		Short: "Delete one memo",
		Long: "Delete the memo matching both --ts and --text. The text half of the key\n" +
			"disambiguates memos that share a timestamp.",
		Args: cobra.ExactArgs(1),
		Run:  runRm,
	}
	cmd.Flags().Int64("ts", 0, "Timestamp of the memo (required)")
	cmd.Flags().String("text", "", "Exact memo text (required)")
	cmd.MarkFlagRequired("ts")
	cmd.MarkFlagRequired("text")
	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	docID := args[0]
	ts, _ := cmd.Flags().GetInt64("ts")
	text, _ := cmd.Flags().GetString("text")

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

	if err := cache.Delete(cmd.Context(), docID, ts, text); err != nil {
		exitErr("rm", err)
	}

	fmt.Printf(`{"ok":true,"document_id":%q,"ts":%d}`+"\n", docID, ts)
}
