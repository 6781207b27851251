package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/tabi/internal/llm"
	"github.com/alexanderramin/tabi/internal/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 4, 3, 7, 30, 0, 0, time.UTC)

// stubGateway records requests and answers with a fixed text or error.
// When release is non-nil, Generate blocks until it is closed or the
// context is canceled.
type stubGateway struct {
	mu       sync.Mutex
	text     string
	err      error
	release  chan struct{}
	requests []llm.GenerateRequest
}

func (g *stubGateway) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	text, err, release := g.text, g.err, g.release
	g.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &llm.GenerateResponse{Text: text}, nil
}

func (g *stubGateway) calls() []llm.GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]llm.GenerateRequest(nil), g.requests...)
}

// testApp wires an App with an in-memory itinerary and the given gateway.
func testApp(t *testing.T, gw llm.Gateway) *App {
	t.Helper()
	var svc *suggest.Service
	if gw != nil {
		svc = suggest.NewService(gw)
	}
	app := NewApp(svc, nil, nil)
	app.HistoryPath = ""
	app.IsInteractive = func() bool { return false }
	app.Now = func() time.Time { return testNow }
	return app
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// --- Root command ---

func TestRootCmd_NonInteractiveShowsHelp(t *testing.T) {
	app := testApp(t, nil)

	out, err := executeCmd(t, app, "")
	require.NoError(t, err)
	assert.Contains(t, out, "tabi")
	assert.Contains(t, out, "suggest")
	assert.Contains(t, out, "parse")
}

// --- parse ---

func TestParseCmd_FromStdinSortsItems(t *testing.T) {
	app := testApp(t, nil)

	out, err := executeCmd(t, app, "9:00 朝食\nメモ\n- 08:00 ~ 08:30 出発", "parse")
	require.NoError(t, err)
	assert.Contains(t, out, "2件")
	assert.Less(t, strings.Index(out, "出発"), strings.Index(out, "朝食"))
	assert.NotContains(t, out, "メモ")
}

func TestParseCmd_NoTimes(t *testing.T) {
	app := testApp(t, nil)

	out, err := executeCmd(t, app, "ただのメモ", "parse")
	require.NoError(t, err)
	assert.Contains(t, out, "見つかりませんでした")
}

func TestParseCmd_ICSToStdout(t *testing.T) {
	app := testApp(t, nil)
	path := writeFile(t, "plan.txt", "09:00 清水寺\n12:00 昼食")

	out, err := executeCmd(t, app, "", "parse", path, "--ics", "-", "--date", "2026-05-01")
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:清水寺")
	assert.Contains(t, out, "DTSTART:20260501T090000Z")
	assert.Contains(t, out, "DTEND:20260501T120000Z")
}

func TestParseCmd_ICSToFile(t *testing.T) {
	app := testApp(t, nil)
	dest := filepath.Join(t.TempDir(), "plan.ics")

	out, err := executeCmd(t, app, "10:00 美術館", "parse", "--ics", dest)
	require.NoError(t, err)
	assert.Contains(t, out, dest)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(b), "SUMMARY:美術館")
	assert.Contains(t, string(b), "DTSTART:20260403T100000Z")
}

func TestParseCmd_InvalidDate(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "10:00 美術館", "parse", "--ics", "-", "--date", "May 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--date")
}

func TestParseCmd_MissingFile(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "", "parse", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

// --- suggest ---

func TestSuggestCmd_PrintsSuggestion(t *testing.T) {
	gw := &stubGateway{text: "### 代替案\n- 10:00 国立博物館"}
	app := testApp(t, gw)
	plan := writeFile(t, "plan.txt", "10:00 嵐山散策\n09:00 朝食")

	out, err := executeCmd(t, app, "", "suggest", "--plan", plan, "--problem", "雨が降ってきた")
	require.NoError(t, err)
	assert.Contains(t, out, "国立博物館")

	calls := gw.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, suggest.SystemInstruction, calls[0].SystemPrompt)
	assert.Contains(t, calls[0].UserPrompt, "- 09:00: 朝食\n- 10:00: 嵐山散策")
	assert.Contains(t, calls[0].UserPrompt, "雨が降ってきた")
}

func TestSuggestCmd_TemplatesAppendToConstraints(t *testing.T) {
	gw := &stubGateway{text: "ok"}
	app := testApp(t, gw)

	_, err := executeCmd(t, app, "", "suggest", "--constraints", "予算は少なめ", "--template", "1", "--template", "3")
	require.NoError(t, err)

	calls := gw.calls()
	require.Len(t, calls, 1)
	want := suggest.AppendTemplate(
		suggest.AppendTemplate("予算は少なめ", suggest.ConstraintTemplates[0]),
		suggest.ConstraintTemplates[2],
	)
	assert.Contains(t, calls[0].UserPrompt, want)
}

func TestSuggestCmd_TemplateOutOfRange(t *testing.T) {
	gw := &stubGateway{text: "ok"}
	app := testApp(t, gw)

	_, err := executeCmd(t, app, "", "suggest", "--template", "9")
	require.Error(t, err)
	assert.Empty(t, gw.calls())
}

func TestSuggestCmd_EmptyInputSkipsGateway(t *testing.T) {
	gw := &stubGateway{text: "should not be used"}
	app := testApp(t, gw)

	_, err := executeCmd(t, app, "", "suggest")
	require.Error(t, err)
	assert.Equal(t, suggest.EmptyInputMessage, err.Error())
	assert.Empty(t, gw.calls())
}

func TestSuggestCmd_InvalidMode(t *testing.T) {
	gw := &stubGateway{text: "ok"}
	app := testApp(t, gw)

	_, err := executeCmd(t, app, "", "suggest", "--problem", "雨", "--mode", "hotels")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), suggest.InvalidInputMessage))
	assert.Empty(t, gw.calls())
}

func TestSuggestCmd_GatewayFailure(t *testing.T) {
	gw := &stubGateway{err: llm.ErrUnauthorized}
	app := testApp(t, gw)

	_, err := executeCmd(t, app, "", "suggest", "--problem", "雨")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "エラーが発生しました: ")
	assert.Contains(t, err.Error(), llm.ErrUnauthorized.Error())
	assert.Contains(t, err.Error(), "APIキー")
}

func TestSuggestCmd_NoGatewayConfigured(t *testing.T) {
	app := testApp(t, nil)
	app.GatewayErr = llm.ErrMissingAPIKey

	_, err := executeCmd(t, app, "", "suggest", "--problem", "雨")
	require.Error(t, err)
	assert.Contains(t, err.Error(), llm.ErrMissingAPIKey.Error())
}

// --- templates ---

func TestTemplatesCmd(t *testing.T) {
	app := testApp(t, nil)

	out, err := executeCmd(t, app, "", "templates")
	require.NoError(t, err)
	for _, tmpl := range suggest.ConstraintTemplates {
		assert.Contains(t, out, tmpl)
	}
}

// --- helpers ---

func TestParseDay(t *testing.T) {
	d, err := parseDay("", testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow, d)

	d, err = parseDay("2026-12-24", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC), d)

	_, err = parseDay("24/12/2026", testNow)
	assert.Error(t, err)
}

func TestParseIndex(t *testing.T) {
	i, err := parseIndex("2", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	for _, in := range []string{"0", "4", "x", ""} {
		_, err := parseIndex(in, 3)
		assert.Error(t, err, in)
	}

	_, err = parseIndex("1", 0)
	assert.Error(t, err)
}
