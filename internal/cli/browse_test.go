package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/pipeline"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

// stubFetch records requested hints and returns no-op commands.
type stubFetch struct {
	hints []string
}

func (s *stubFetch) fetch(hint string) tea.Cmd {
	s.hints = append(s.hints, hint)
	return func() tea.Msg { return nil }
}

func records(n int) []wallpaper.Record {
	out := make([]wallpaper.Record, n)
	for i := range out {
		u := "https://img.example/" + string(rune('a'+i)) + ".jpg"
		out[i] = wallpaper.Record{Title: "Image " + string(rune('A'+i)), Thumb: u, Full: u}
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m browseModel, msg tea.Msg) (browseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(browseModel), cmd
}

func loaded(t *testing.T, stub *stubFetch, n int) browseModel {
	t.Helper()
	m := newBrowseModel([]wallpaper.Type{wallpaper.TypeUpx8, wallpaper.TypeOfficial}, "", stub.fetch)
	m.Init()
	m, _ = update(t, m, batchMsg{result: pipeline.Result{Wallpapers: records(n), Provider: wallpaper.TypeUpx8}})
	return m
}

func TestBrowseInitFetchesHint(t *testing.T) {
	stub := &stubFetch{}
	m := newBrowseModel(nil, "official", stub.fetch)
	if m.Init() == nil {
		t.Fatal("Init() should return a fetch command")
	}
	if len(stub.hints) != 1 || stub.hints[0] != "official" {
		t.Errorf("hints = %v", stub.hints)
	}
	if !m.loading {
		t.Error("model should start in the loading state")
	}
}

func TestBrowseBatchAppends(t *testing.T) {
	stub := &stubFetch{}
	m := loaded(t, stub, 3)
	if m.loading || len(m.records) != 3 || m.provider != wallpaper.TypeUpx8 {
		t.Fatalf("after first batch: loading=%v records=%d provider=%q", m.loading, len(m.records), m.provider)
	}

	m, cmd := update(t, m, key("n"))
	if cmd == nil || !m.loading {
		t.Fatal("n should start a fetch")
	}
	if got := stub.hints[len(stub.hints)-1]; got != "upx8" {
		t.Errorf("next batch hint = %q, want the current provider", got)
	}

	m, _ = update(t, m, batchMsg{result: pipeline.Result{Wallpapers: records(2), Provider: wallpaper.TypeUpx8}})
	if len(m.records) != 5 {
		t.Errorf("records = %d, want 5", len(m.records))
	}
}

func TestBrowseIgnoresKeysWhileLoading(t *testing.T) {
	stub := &stubFetch{}
	m := loaded(t, stub, 2)
	m, _ = update(t, m, key("n"))
	before := len(stub.hints)

	if _, cmd := update(t, m, key("n")); cmd != nil {
		t.Error("n while loading should not start another fetch")
	}
	if len(stub.hints) != before {
		t.Errorf("hints = %v", stub.hints)
	}
}

func TestBrowseNavigation(t *testing.T) {
	m := loaded(t, &stubFetch{}, 3)
	m.height = 2

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("j"))
	m, _ = update(t, m, key("down"))
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", m.cursor)
	}
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}

	m, _ = update(t, m, key("up"))
	m, _ = update(t, m, key("k"))
	m, _ = update(t, m, key("k"))
	if m.cursor != 0 || m.offset != 0 {
		t.Errorf("cursor/offset = %d/%d, want 0/0", m.cursor, m.offset)
	}
}

func TestBrowseSwitchProvider(t *testing.T) {
	stub := &stubFetch{}
	m := loaded(t, stub, 1)

	m, _ = update(t, m, key("p"))
	if got := stub.hints[len(stub.hints)-1]; got != "official" {
		t.Errorf("switch hint = %q, want official", got)
	}
	m, _ = update(t, m, batchMsg{result: pipeline.Result{Wallpapers: records(1), Provider: wallpaper.TypeOfficial}})
	m, _ = update(t, m, key("p"))
	if got := stub.hints[len(stub.hints)-1]; got != "upx8" {
		t.Errorf("switch hint = %q, want wrap-around to upx8", got)
	}
}

func TestBrowseSelect(t *testing.T) {
	m := loaded(t, &stubFetch{}, 3)
	m, _ = update(t, m, key("down"))
	m, cmd := update(t, m, key("enter"))

	if cmd == nil {
		t.Fatal("enter should quit")
	}
	if m.Selected == nil || m.Selected.Title != "Image B" {
		t.Errorf("Selected = %+v", m.Selected)
	}
}

func TestBrowseViewShowsFailure(t *testing.T) {
	m := newBrowseModel(nil, "", (&stubFetch{}).fetch)
	m, _ = update(t, m, batchMsg{result: pipeline.Result{
		Wallpapers: []wallpaper.Record{},
		Provider:   wallpaper.TypeOfficial,
		Err:        errors.New(errors.ErrCodeTimeout, "upstream timed out"),
	}})

	view := m.View()
	if !strings.Contains(view, "upstream timed out") {
		t.Errorf("view should show the failure:\n%s", view)
	}
	if m.Selected != nil {
		t.Error("nothing should be selected")
	}
	if _, cmd := update(t, m, key("enter")); cmd != nil {
		t.Error("enter with no records should do nothing")
	}
}
