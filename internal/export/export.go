// Package export renders day-grouped memo timelines as plain text or a
// standalone HTML document. Both renderings consume the same grouping,
// so they stay consistent with the live view.
package export

import (
	"fmt"
	"html"
	"io"

	"github.com/rcliao/memo-timeline/internal/model"
)

const dayFormat = "2006-01-02"

// WriteText writes the grouped timeline as plain text: an ISO date
// header per day, an indented bullet per memo, a blank line between
// days.
func WriteText(w io.Writer, groups []model.DayGroup) error {
	for i, g := range groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, g.Day.Format(dayFormat)); err != nil {
			return err
		}
		for _, e := range g.Entries {
			if _, err := fmt.Fprintf(w, "  - %s\n", e.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

const htmlHead = `<!DOCTYPE html>
<html lang='en'>
<head>
<meta charset='utf-8'>
<title>Memo Timeline</title>
<style>
body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
    background-color: #f5f7fb;
    padding: 16px;
}
.memo-date {
    background-color: #e8efff;
    color: #1e3a8a;
    padding: 4px 10px;
    border-radius: 8px;
    margin-top: 16px;
    margin-bottom: 4px;
    display: inline-block;
    font-weight: bold;
}
.memo-list {
    list-style-type: disc;
    margin: 4px 0 0 24px;
    padding: 0;
}
.memo-item {
    margin: 2px 0;
    line-height: 1.4;
}
</style>
</head>
<body>
`

// WriteHTML writes the grouped timeline as a self-contained HTML page
// with one header div and bullet list per day. Memo text is escaped.
func WriteHTML(w io.Writer, groups []model.DayGroup) error {
	if _, err := io.WriteString(w, htmlHead); err != nil {
		return err
	}
	for _, g := range groups {
		day := html.EscapeString(g.Day.Format(dayFormat))
		if _, err := fmt.Fprintf(w, "<div class='memo-date'>%s</div>\n<ul class='memo-list'>\n", day); err != nil {
			return err
		}
		for _, e := range g.Entries {
			if _, err := fmt.Fprintf(w, "<li class='memo-item'>%s</li>\n", html.EscapeString(e.Text)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul>\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
