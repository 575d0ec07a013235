package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/domain"
	"github.com/gyscos/coinched/events"
	"github.com/gyscos/coinched/pos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coinched.yaml")
	data := []byte("addr: \":9000\"\nlog_level: debug\nwait_timeout: 2s\nidle_timeout: 10m\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.WaitTimeout))
	assert.Equal(t, 10*time.Minute, time.Duration(cfg.IdleTimeout))

	// Unset keys keep their defaults
	assert.Equal(t, time.Duration(DefaultConfig().JoinTimeout), time.Duration(cfg.JoinTimeout))

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.JoinTimeout = Duration(5 * time.Second)
	cfg.WaitTimeout = Duration(50 * time.Millisecond)
	s := NewServer(cfg)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Stop()
	})
	return ts
}

// joinFour joins a full table over HTTP and returns infos by seat.
func joinFour(t *testing.T, ts *httptest.Server) [4]domain.NewPartyInfo {
	t.Helper()

	results := make(chan domain.NewPartyInfo, 4)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(ts.URL+"/join", "application/json", nil)
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var info domain.NewPartyInfo
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
			results <- info
		}()
	}
	wg.Wait()
	close(results)

	var infos [4]domain.NewPartyInfo
	for info := range results {
		infos[info.PlayerPos] = info
	}
	return infos
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	return resp
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	return resp
}

func TestJoinAndPlayOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	infos := joinFour(t, ts)

	// Every seat got a distinct id
	seen := map[uint32]bool{}
	for seat := pos.P0; seat <= pos.P3; seat++ {
		require.NotZero(t, infos[seat].PlayerID)
		assert.False(t, seen[infos[seat].PlayerID])
		seen[infos[seat].PlayerID] = true
	}

	// The opening hand has eight cards
	resp := get(t, ts.URL+"/hand/"+uitoa(infos[pos.P2].PlayerID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var hand cards.Hand
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hand))
	resp.Body.Close()
	assert.Equal(t, 8, hand.Size())

	// P0 opens the auction
	resp = postJSON(t, ts.URL+"/bid/"+uitoa(infos[pos.P0].PlayerID),
		map[string]string{"target": "80", "suit": "H"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ev events.Event
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ev))
	resp.Body.Close()
	assert.Equal(t, 1, ev.ID)
	assert.Equal(t, events.FromPlayer{
		Pos:   pos.P0,
		Event: events.Bidded{Suit: cards.Hearts, Target: bid.Target80},
	}, ev.Event)

	// Another seat replays the stored event
	resp = get(t, ts.URL+"/wait/"+uitoa(infos[pos.P3].PlayerID)+"/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ev))
	resp.Body.Close()
	assert.Equal(t, 1, ev.ID)

	// Waiting past the log tip times out with no content
	resp = get(t, ts.URL+"/wait/"+uitoa(infos[pos.P3].PlayerID)+"/2")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Turn violations surface as client errors
	resp = postJSON(t, ts.URL+"/pass/"+uitoa(infos[pos.P3].PlayerID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var fail struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fail))
	resp.Body.Close()
	assert.NotEmpty(t, fail.Error)

	// Scores and seat snapshots
	resp = get(t, ts.URL+"/scores/"+uitoa(infos[pos.P1].PlayerID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var scores scoresResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&scores))
	resp.Body.Close()
	assert.Equal(t, [2]int{0, 0}, scores.Scores)

	resp = get(t, ts.URL+"/pos/"+uitoa(infos[pos.P2].PlayerID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var seat posResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&seat))
	resp.Body.Close()
	assert.Equal(t, 2, seat.Pos)
}

func TestLeaveOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	infos := joinFour(t, ts)

	resp := postJSON(t, ts.URL+"/leave/"+uitoa(infos[pos.P1].PlayerID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The whole table is de-registered
	resp = postJSON(t, ts.URL+"/pass/"+uitoa(infos[pos.P0].PlayerID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUnknownPlayerOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	// Player ids are never zero
	resp := postJSON(t, ts.URL+"/pass/0", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = get(t, ts.URL+"/hand/notanumber")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestHelpPage(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/no/such/route")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var help struct {
		Title  string   `json:"title"`
		Routes []string `json:"routes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&help))
	resp.Body.Close()
	assert.NotEmpty(t, help.Routes)
}

func uitoa(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
