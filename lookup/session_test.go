package lookup

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_LastRequestWins(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/search", func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Query == "slow" {
			started <- struct{}{}
			select {
			case <-r.Context().Done():
				return
			case <-release:
			}
		}
		_, _ = io.WriteString(w, `{"companies":[{"ico":"1","name":"`+req.Query+`"}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Set(context.Background(), signedToken(t, time.Now().Add(time.Hour))))
	session := NewSession(newTestClient(srv.URL, tokens, nil))

	type outcome struct {
		res   *Result
		trace Trace
	}
	done := make(chan outcome, 1)
	go func() {
		res, trace := session.Search(context.Background(), "slow", nil)
		done <- outcome{res, trace}
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("slow search never reached the backend")
	}

	res, trace := session.Search(context.Background(), "fast", nil)
	require.NotNil(t, res)
	assert.Equal(t, StateDone, trace.Final())
	require.Len(t, res.Companies, 1)
	assert.Equal(t, "fast", res.Companies[0].Name)

	select {
	case first := <-done:
		assert.Nil(t, first.res)
		assert.Equal(t, StateSuperseded, first.trace.Final())
	case <-time.After(5 * time.Second):
		t.Fatal("superseded search did not finish")
	}
}

func TestSession_SingleSearchCompletes(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.v2Body = v2Envelope

	session := NewSession(newTestClient(srv.URL, nil, nil))
	res, trace := session.Search(context.Background(), "test", nil)

	require.NotNil(t, res)
	assert.Equal(t, []State{StateIdle, StateAuthenticating, StateQueryingV2, StateDone}, trace.States())
}

func TestSession_SearchAfterCancel(t *testing.T) {
	_, srv := newFakeBackend(t)
	session := NewSession(newTestClient(srv.URL, nil, nil))

	session.Cancel()
	res, _ := session.Search(context.Background(), "test", nil)
	assert.NotNil(t, res)
}
