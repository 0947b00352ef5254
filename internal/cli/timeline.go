package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/memo-timeline/internal/timeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the global memo timeline",
		Long:  "Collect every document's memo log into one day-grouped timeline.",
		Run:   runTimeline,
	}
	windowFlags(cmd)
	RootCmd.AddCommand(cmd)
}

func runTimeline(cmd *cobra.Command, args []string) {
	w, err := windowFromFlags(cmd)
	if err != nil {
		exitErr("timeline", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	cache := timeline.NewCache(timeline.Config{
		Adapter: s,
		Logger:  newLogger(),
		Window:  w,
		Limit:   getLimit(cmd),
	})
	if err := cache.Reload(cmd.Context()); err != nil {
		exitErr("collect", err)
	}

	groups := cache.Groups()

	if formatFlag == "json" {
		b, _ := json.MarshalIndent(groups, "", "  ")
		fmt.Println(string(b))
		return
	}

	if len(groups) == 0 {
		fmt.Println("(no memos for this filter)")
		return
	}
	for i, g := range groups {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(g.Day.Format("2006-01-02"))
		for _, e := range g.Entries {
			fmt.Printf("  • %s", e.Text)
			if e.Container != "" || e.Title != "" {
				fmt.Printf("  [%s / %s]", e.Container, e.Title)
			}
			fmt.Println()
		}
	}
}
