package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/memo-timeline/internal/export"
	"github.com/rcliao/memo-timeline/internal/timeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the timeline to a file",
		Long:  "Export the filtered, day-grouped timeline as plain text or HTML.",
		Run:   runExport,
	}
	windowFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	cmd.Flags().Bool("html", false, "Write HTML instead of plain text")
	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	w, err := windowFromFlags(cmd)
	if err != nil {
		exitErr("export", err)
	}
	outPath, _ := cmd.Flags().GetString("out")
	asHTML, _ := cmd.Flags().GetBool("html")

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
	if len(groups) == 0 {
		exitErr("export", fmt.Errorf("no memos match this filter"))
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			exitErr("export", err)
		}
		defer f.Close()
		out = f
	}

	if asHTML {
		err = export.WriteHTML(out, groups)
	} else {
		err = export.WriteText(out, groups)
	}
	if err != nil {
		exitErr("export", err)
	}
}
