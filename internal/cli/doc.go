package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/memo-timeline/internal/docstore"
)

func init() {
	docCmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage documents",
	}

	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a document",
		Args:  cobra.MaximumNArgs(1),
		Run:   runDocAdd,
	}
	addCmd.Flags().StringP("container", "c", "", "Container the document belongs to")
	addCmd.Flags().Bool("no-memo-log", false, "Create without the memo log attribute (memos disabled)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Run:   runDocList,
	}
	listCmd.Flags().StringP("container", "c", "", "Filter by container")

	showCmd := &cobra.Command{
		Use:   "show <doc-id>",
		Short: "Show one document and its memo log",
		Args:  cobra.ExactArgs(1),
		Run:   runDocShow,
	}

	docCmd.AddCommand(addCmd, listCmd, showCmd)
	RootCmd.AddCommand(docCmd)
}

func runDocAdd(cmd *cobra.Command, args []string) {
	title := ""
	if len(args) > 0 {
		title = args[0]
	}
	container, _ := cmd.Flags().GetString("container")
	noMemoLog, _ := cmd.Flags().GetBool("no-memo-log")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	doc, err := s.CreateDocument(cmd.Context(), docstore.CreateParams{
		Container: container,
		Title:     title,
		NoMemoLog: noMemoLog,
	})
	if err != nil {
		exitErr("doc add", err)
	}

	b, _ := json.Marshal(doc)
	fmt.Println(string(b))
}

func runDocList(cmd *cobra.Command, args []string) {
	container, _ := cmd.Flags().GetString("container")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	docs, err := s.ListDocuments(cmd.Context(), container)
	if err != nil {
		exitErr("doc list", err)
	}

	if formatFlag == "json" {
		b, _ := json.MarshalIndent(docs, "", "  ")
		fmt.Println(string(b))
		return
	}
	for _, d := range docs {
		note := ""
		if !d.HasMemoLog {
			note = "  (no memo log)"
		}
		fmt.Printf("%s  [%s]  %s%s\n", d.ID, d.Container, docstore.TitleSnippet(d.Title), note)
	}
}

func runDocShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	doc, err := s.GetDocument(cmd.Context(), args[0])
	if err != nil {
		exitErr("doc show", err)
	}
	raw, err := s.ReadMemoRaw(cmd.Context(), doc.ID)
	if err != nil {
		exitErr("doc show", err)
	}

	b, _ := json.MarshalIndent(doc, "", "  ")
	fmt.Println(string(b))
	if raw != "" {
		fmt.Println(raw)
	}
}
