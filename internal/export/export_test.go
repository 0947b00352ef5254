package export

import (
	"strings"
	"testing"
	"time"

	"github.com/rcliao/memo-timeline/internal/model"
)

func testGroups() []model.DayGroup {
	d1 := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return []model.DayGroup{
		{Day: d1, Entries: []model.Entry{
			{TS: d1.Unix(), Text: "first memo"},
			{TS: d1.Unix(), Text: "second memo"},
		}},
		{Day: d2, Entries: []model.Entry{
			{TS: d2.Unix(), Text: "with <tags> & ampersand"},
		}},
	}
}

func TestWriteText(t *testing.T) {
	var b strings.Builder
	if err := WriteText(&b, testGroups()); err != nil {
		t.Fatalf("write text: %v", err)
	}

	want := "2025-03-09\n" +
		"  - first memo\n" +
		"  - second memo\n" +
		"\n" +
		"2025-03-10\n" +
		"  - with <tags> & ampersand\n"
	if b.String() != want {
		t.Errorf("unexpected output:\n%s", b.String())
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var b strings.Builder
	if err := WriteText(&b, nil); err != nil {
		t.Fatalf("write text: %v", err)
	}
	if b.String() != "" {
		t.Errorf("expected empty output, got %q", b.String())
	}
}

func TestWriteHTML(t *testing.T) {
	var b strings.Builder
	if err := WriteHTML(&b, testGroups()); err != nil {
		t.Fatalf("write html: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"<div class='memo-date'>2025-03-09</div>",
		"<li class='memo-item'>first memo</li>",
		"<div class='memo-date'>2025-03-10</div>",
		"<li class='memo-item'>with &lt;tags&gt; &amp; ampersand</li>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output", want)
		}
	}

	if strings.Count(out, "<ul class='memo-list'>") != 2 {
		t.Error("expected one list per day group")
	}
	if strings.Count(out, "</ul>") != 2 {
		t.Error("expected every list closed")
	}
	if !strings.HasSuffix(out, "</body>\n</html>\n") {
		t.Error("expected complete document")
	}
}
