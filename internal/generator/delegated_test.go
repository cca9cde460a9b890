// AngelaMos | 2026
// delegated_test.go

package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

type stubCompleter struct {
	text  string
	err   error
	calls int
}

func (s *stubCompleter) Name() string { return "stub" }

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

var fitnessReels = Request{
	Niche:       "Fitness & Health",
	Goal:        "Go Viral",
	ContentType: "Reels Idea",
}

func TestDelegatedWithoutCompleterReturnsPlaceholder(t *testing.T) {
	c, err := NewDelegated(nil, nil).Generate(context.Background(), fitnessReels)
	require.NoError(t, err)

	assert.Equal(t, "Stop scrolling if you're into Fitness & Health! 🚀", c.Hook)
	assert.Equal(t, "Discover how to go viral using the power of viral reels ideas.", c.Caption)
	assert.Equal(t, "#FitnessHealth #growth #viralcontent", c.Hashtags)
	require.NotNil(t, c.CTA)
	assert.Equal(t, "Follow us for more reels ideas like this!", *c.CTA)
}

func TestDelegatedSwallowsUpstreamFailures(t *testing.T) {
	for _, upstreamErr := range []error{
		fmt.Errorf("%w: 429", ErrRateLimited),
		fmt.Errorf("%w: 500", ErrUpstream),
		errors.New("dial tcp: connection refused"),
	} {
		stub := &stubCompleter{err: upstreamErr}
		c, err := NewDelegated(stub, nil).Generate(context.Background(), fitnessReels)

		require.NoError(t, err)
		assert.Equal(t, 1, stub.calls)
		assert.Equal(t, "This might just be your breakthrough moment in Fitness & Health. 🎯", c.Hook)
		assert.Equal(t, "#FitnessHealthTips #viralGrowth #strategy", c.Hashtags)
	}
}

func TestDelegatedEmptyReplyUsesFallback(t *testing.T) {
	stub := &stubCompleter{text: "   \n"}
	c, err := NewDelegated(stub, nil).Generate(context.Background(), fitnessReels)
	require.NoError(t, err)
	assert.Contains(t, c.Hook, "breakthrough moment")
}

func TestDelegatedParsesReply(t *testing.T) {
	stub := &stubCompleter{
		text: "Hook: You skipped leg day again\nCaption: Here is why it matters.\nHashtags: #legday #gym\nCTA: Save this",
	}
	c, err := NewDelegated(stub, nil).Generate(context.Background(), fitnessReels)
	require.NoError(t, err)

	assert.Equal(t, "You skipped leg day again", c.Hook)
	assert.Equal(t, "Here is why it matters.", c.Caption)
	assert.Equal(t, "#legday #gym", c.Hashtags)
	require.NotNil(t, c.CTA)
	assert.Equal(t, "Save this", *c.CTA)
}

func TestPrompt(t *testing.T) {
	assert.Equal(t,
		"Generate a viral Reels Idea for the Fitness & Health niche to achieve Go Viral. Return a hook, caption, hashtags, and CTA.",
		Prompt(fitnessReels),
	)
}

func newChatServer(t *testing.T, status int, body string, seen *atomic.Value) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err == nil && seen != nil {
			seen.Store(payload)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAICompleterSendsPersonaAndTemperature(t *testing.T) {
	var seen atomic.Value
	srv := newChatServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "gpt-3.5-turbo",
		"choices": [{
			"index": 0,
			"message": {"role": "assistant", "content": "Hook: h\nCaption: c\nHashtags: #t"},
			"finish_reason": "stop"
		}]
	}`, &seen)

	completer := NewOpenAICompleter(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1/",
	})

	text, err := completer.Complete(context.Background(), SystemPersona, Prompt(fitnessReels))
	require.NoError(t, err)
	assert.Equal(t, "Hook: h\nCaption: c\nHashtags: #t", text)

	payload, ok := seen.Load().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gpt-3.5-turbo", payload["model"])
	assert.InDelta(t, 0.9, payload["temperature"], 0.0001)

	messages, ok := payload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	user := messages[1].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, SystemPersona, system["content"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, Prompt(fitnessReels), user["content"])
}

func TestOpenAICompleterClassifiesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrUpstream},
		{"unauthorized", http.StatusUnauthorized, ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newChatServer(t, tt.status,
				`{"error": {"message": "nope", "type": "error"}}`, nil)

			completer := NewOpenAICompleter(OpenAIConfig{
				APIKey:  "test-key",
				BaseURL: srv.URL + "/v1",
			})

			_, err := completer.Complete(context.Background(), SystemPersona, "p")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpenAICompleterEmptyChoices(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, `{"id": "x", "choices": []}`, nil)
	completer := NewOpenAICompleter(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

	_, err := completer.Complete(context.Background(), SystemPersona, "p")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestDelegatedOpenAIRateLimitFallsBack(t *testing.T) {
	srv := newChatServer(t, http.StatusTooManyRequests,
		`{"error": {"message": "slow down", "type": "requests"}}`, nil)

	gen := NewDelegated(NewOpenAICompleter(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
	}), nil)

	c, err := gen.Generate(context.Background(), fitnessReels)
	require.NoError(t, err)
	assert.Equal(t, "This might just be your breakthrough moment in Fitness & Health. 🎯", c.Hook)
}

func TestClassifyGeminiError(t *testing.T) {
	limited := &googleapi.Error{Code: http.StatusTooManyRequests, Message: "quota"}
	assert.ErrorIs(t, classifyGeminiError(limited), ErrRateLimited)

	if ae, ok := apierror.FromError(limited); ok {
		assert.ErrorIs(t, classifyGeminiError(ae), ErrRateLimited)
	}

	broken := &googleapi.Error{Code: http.StatusBadGateway, Message: "bad gateway"}
	assert.ErrorIs(t, classifyGeminiError(broken), ErrUpstream)
	assert.ErrorIs(t, classifyGeminiError(errors.New("boom")), ErrUpstream)
}
