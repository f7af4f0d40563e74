package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meetmate/internal/adapter/handler"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/infrastructure/memdb"
	"github.com/johnquangdev/meetmate/pkg/config"
)

type harness struct {
	baseURL string
	store   *memdb.Store
	logger  *zap.Logger
	t       *testing.T
}

func newHarness(t *testing.T) *harness {
	return newHarnessWith(t, nil)
}

// newHarnessWith serves the demo backend through wrap, when set
func newHarnessWith(t *testing.T, wrap func(store *memdb.Store, next http.Handler) http.Handler) *harness {
	t.Helper()
	store := memdb.New()
	memdb.Seed(store)
	var h http.Handler = handler.NewServer(store, "", zaptest.NewLogger(t))
	if wrap != nil {
		h = wrap(store, h)
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &harness{baseURL: srv.URL + handler.APIPrefix, store: store, t: t}
}

// run executes the command tree and returns stdout
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	deps := &Deps{
		LoadConfig: func() (*config.Config, error) {
			return &config.Config{
				Env:    config.EnvDevelopment,
				Output: config.OutputText,
				API:    config.APIConfig{BaseURL: h.baseURL, Timeout: 5 * time.Second},
				Cache:  config.CacheConfig{Driver: config.CacheNone},
				Behavior: config.BehaviorConfig{
					FallbackEnabled: true,
					WatchInterval:   time.Second,
					SyncConcurrency: 2,
				},
			}, nil
		},
		NewLogger: func(*config.Config) (*zap.Logger, error) {
			if h.logger != nil {
				return h.logger, nil
			}
			return zaptest.NewLogger(h.t), nil
		},
		Out: &out,
		Err: &errOut,
		In:  strings.NewReader(""),
	}
	err := Execute(context.Background(), deps, args)
	return out.String(), err
}

func TestMeetingList_JSON(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("meeting", "list", "-o", "json")
	require.NoError(t, err)

	var resp struct {
		Items []struct {
			ID    string `json:"id"`
			Phase string `json:"phase"`
		} `json:"items"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Items, 3)
}

func TestMeetingList_YAMLKeepsJSONNames(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("meeting", "get", memdb.SeedPostMeetingID, "--output", "yaml")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, memdb.SeedPostMeetingID, doc["id"])
	assert.Equal(t, "post", doc["phase"])
	assert.Contains(t, doc, "meeting_type")
}

func TestMeetingList_RejectsUnknownPhase(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("meeting", "list", "--phase", "later")
	assert.Error(t, err)
}

func TestMeetingStart_AlreadyLive(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("meeting", "start", memdb.SeedInMeetingID)
	require.NoError(t, err)
	assert.Contains(t, out, "is already in; nothing sent.")
}

func TestMeetingStart_MovesPreMeeting(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("meeting", "start", memdb.SeedPreMeetingID)
	require.NoError(t, err)
	assert.Contains(t, out, "is now in.")

	m, err := h.store.GetMeeting(memdb.SeedPreMeetingID)
	require.NoError(t, err)
	assert.EqualValues(t, "in", m.Phase)
}

func TestMeetingWatch_StopsWhenMeetingEnds(t *testing.T) {
	var once sync.Once
	h := newHarnessWith(t, func(store *memdb.Store, next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			// another client ends the meeting after the first poll
			if r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/meetings/"+memdb.SeedInMeetingID) {
				once.Do(func() {
					_, err := store.UpdatePhase(memdb.SeedInMeetingID, entities.PhasePost)
					assert.NoError(t, err)
				})
			}
		})
	})

	done := make(chan struct{})
	var out string
	var err error
	go func() {
		defer close(done)
		out, err = h.run("meeting", "watch", memdb.SeedInMeetingID, "--interval", "10ms")
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after the meeting ended")
	}

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " is in"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " is post"), lines[1])
}

func TestMeetingWatch_MissingMeeting(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("meeting", "watch", "00000000-0000-4000-8000-00000000dead", "--interval", "10ms")
	assert.Error(t, err)
}

func TestViewMeeting_LogsChatContextChanges(t *testing.T) {
	h := newHarness(t)
	core, logs := observer.New(zapcore.DebugLevel)
	h.logger = zap.New(core)

	_, err := h.run("view", "meeting", memdb.SeedPostMeetingID)
	require.NoError(t, err)

	changed := logs.FilterMessage("chat.context.changed").All()
	require.NotEmpty(t, changed)
	assert.Equal(t, memdb.SeedPostMeetingID, changed[0].ContextMap()["meeting_id"])
	assert.Equal(t, "post", changed[0].ContextMap()["phase"])
}

func TestMinutesGenerate_PostMeeting(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("minutes", "generate", memdb.SeedPostMeetingID)
	require.NoError(t, err)
	assert.Contains(t, out, "Minutes v1 (draft)")
	assert.Contains(t, out, "Gateway steering committee")
	assert.NotContains(t, out, "offline draft")

	out, err = h.run("minutes", "show", memdb.SeedPostMeetingID, "-o", "json")
	require.NoError(t, err)
	var resp minutesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Minutes)
	assert.Equal(t, 1, resp.Minutes.Version)
}

func TestMinutesGenerate_RequiresPostPhase(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("minutes", "generate", memdb.SeedPreMeetingID)
	assert.Error(t, err)
}

func TestTasksSync_PartialFailure(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("tasks", "sync", memdb.SeedPostMeetingID, "--target", "jira")
	require.Error(t, err)
	assert.Equal(t, "1 of 3 items failed to sync", err.Error())
	assert.Contains(t, out, "2 of 3 items synced to jira.")

	_, err = h.run("tasks", "sync", memdb.SeedPostMeetingID, "--target", "jira", "--item", memdb.SeedActionRunbookID)
	require.NoError(t, err)
}

func TestTasksSync_RequiresTarget(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("tasks", "sync", memdb.SeedPostMeetingID)
	assert.Error(t, err)
}

func TestKnowledgeSearch(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("knowledge", "search", "rollout", "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Payment gateway rollout plan")
}

func TestAsk_ScopesToMeeting(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("ask", "--meeting", memdb.SeedPostMeetingID, "-o", "json", "who", "owns", "the", "runbook?")
	require.NoError(t, err)

	var resp struct {
		Context struct {
			Scope     string `json:"scope"`
			MeetingID string `json:"meeting_id"`
			Phase     string `json:"phase"`
		} `json:"context"`
		Answer string `json:"answer"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "meeting", resp.Context.Scope)
	assert.Equal(t, memdb.SeedPostMeetingID, resp.Context.MeetingID)
	assert.Equal(t, "post", resp.Context.Phase)
	assert.NotEmpty(t, resp.Answer)
}

func TestAsk_Knowledge(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("ask", "--knowledge", "rollout")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[knowledge: Knowledge Hub]"))
	assert.Contains(t, out, memdb.SeedDocumentID)
}

func TestAsk_FlagsAreExclusive(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("ask", "--knowledge", "--meeting", memdb.SeedPostMeetingID, "hi")
	assert.Error(t, err)
}

func TestViewDashboard_Buckets(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("view", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "== Upcoming (1)")
	assert.Contains(t, out, "== Live (1)")
	assert.Contains(t, out, "== Finished (1)")
	assert.Contains(t, out, "3 meetings in total.")
}

func TestViewMeeting_TabDoesNotChangePhase(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("view", "meeting", memdb.SeedPreMeetingID, "--tab", "post", "-o", "json")
	require.NoError(t, err)

	var resp struct {
		ActiveTab string          `json:"active_tab"`
		Tab       json.RawMessage `json:"tab"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "post", resp.ActiveTab)
	assert.NotEmpty(t, resp.Tab)

	m, err := h.store.GetMeeting(memdb.SeedPreMeetingID)
	require.NoError(t, err)
	assert.EqualValues(t, "pre", m.Phase)
}

func TestTemplateCreateAndUpdate(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("template", "create", "--name", "Steering", "--type", "steering",
		"--section", "Decisions", "--section", "Risks: open risks and owners", "-o", "json")
	require.NoError(t, err)

	var created struct {
		ID       string `json:"id"`
		Sections []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.Len(t, created.Sections, 2)
	assert.Equal(t, "Risks", created.Sections[1].Title)
	assert.Equal(t, "open risks and owners", created.Sections[1].Description)

	out, err = h.run("template", "update", created.ID, "--name", "Steering committee", "-o", "json")
	require.NoError(t, err)

	var updated struct {
		Name        string            `json:"name"`
		MeetingType string            `json:"meeting_type"`
		Sections    []json.RawMessage `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, "Steering committee", updated.Name)
	assert.Equal(t, "steering", updated.MeetingType)
	assert.Len(t, updated.Sections, 2)
}

func TestParseSections(t *testing.T) {
	got := parseSections([]string{"Summary", " Actions : who does what ", ":", ""})
	require.Len(t, got, 2)
	assert.Equal(t, "Summary", got[0].Title)
	assert.Empty(t, got[0].Description)
	assert.Equal(t, "Actions", got[1].Title)
	assert.Equal(t, "who does what", got[1].Description)
}

func TestOutputFlag_Invalid(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("meeting", "list", "-o", "xml")
	assert.Error(t, err)
}

func TestHelp_NeedsNoConfig(t *testing.T) {
	var out bytes.Buffer
	deps := &Deps{
		LoadConfig: func() (*config.Config, error) {
			t.Fatal("help must not load configuration")
			return nil, nil
		},
		Out: &out,
		Err: &out,
		In:  strings.NewReader(""),
	}
	require.NoError(t, Execute(context.Background(), deps, []string{"--help"}))
	assert.Contains(t, out.String(), "meetmate view dashboard")
}
