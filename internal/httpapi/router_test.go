package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"arenic/internal/arenaid"
	"arenic/internal/recording"
	"arenic/internal/timeline"
)

type fakeEngine struct {
	enqueued []recording.Command
	machine  *recording.Machine
}

func (f *fakeEngine) Enqueue(cmd recording.Command) { f.enqueued = append(f.enqueued, cmd) }
func (f *fakeEngine) Machine() *recording.Machine   { return f.machine }

func newTestRouter(t *testing.T) (*fakeEngine, *httptest.Server) {
	t.Helper()
	eng := &fakeEngine{machine: recording.NewMachine(noopStore{}, nil)}
	r := NewRouter(RouterConfig{
		Engine:          eng,
		RateLimitConfig: &RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000, CleanupInterval: 0},
		DisableLogging:  true,
	})
	return eng, httptest.NewServer(r)
}

type noopStore struct{}

func (noopStore) IsGhost(timeline.EntityID, arenaid.ID) bool { return false }
func (noopStore) Publish(timeline.EntityID, arenaid.ID, *timeline.Published) {}

func TestHandleCommandQueuesAndAccepts(t *testing.T) {
	eng, ts := newTestRouter(t)
	defer ts.Close()

	body, _ := json.Marshal(CommandSchema{Type: recording.CmdStartRecording, Entity: "e1", Arena: 0})
	resp, err := http.Post(ts.URL+"/api/command", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/command: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusAccepted)
	}
	if len(eng.enqueued) != 1 || eng.enqueued[0].Entity != "e1" {
		t.Fatalf("enqueued = %+v, want one command for e1", eng.enqueued)
	}
}

func TestHandleCommandRejectsMissingEntity(t *testing.T) {
	_, ts := newTestRouter(t)
	defer ts.Close()

	body, _ := json.Marshal(CommandSchema{Type: recording.CmdStartRecording, Arena: 0})
	resp, err := http.Post(ts.URL+"/api/command", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/command: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleCommandRejectsInvalidArena(t *testing.T) {
	_, ts := newTestRouter(t)
	defer ts.Close()

	body, _ := json.Marshal(CommandSchema{Type: recording.CmdStartRecording, Entity: "e1", Arena: 200})
	resp, err := http.Post(ts.URL+"/api/command", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/command: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleStatusReportsMode(t *testing.T) {
	_, ts := newTestRouter(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET /api/status: %v", err)
	}
	defer resp.Body.Close()

	var status map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status["mode"] != "Idle" {
		t.Fatalf("mode = %v, want Idle", status["mode"])
	}
}
