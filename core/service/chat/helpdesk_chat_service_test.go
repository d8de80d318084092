package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"helpdesk_server/core/domain"
)

type fakeAnalyzer struct {
	record *domain.EnrichmentRecord
	calls  int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string, _ domain.Priority) *domain.EnrichmentRecord {
	f.calls++
	return f.record
}

type fakeCache struct {
	entries map[string]*domain.EnrichmentRecord
	getErr  error
	setErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.EnrichmentRecord)}
}

func (f *fakeCache) Get(_ context.Context, key string) (*domain.EnrichmentRecord, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	record, ok := f.entries[key]
	return record, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, record *domain.EnrichmentRecord, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.entries[key] = record
	return nil
}

type fakeHistory struct {
	lines     map[string][]string
	appendErr error
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{lines: make(map[string][]string)}
}

func (f *fakeHistory) Append(_ context.Context, sessionID, message string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.lines[sessionID] = append(f.lines[sessionID], message)
	return nil
}

func (f *fakeHistory) Recent(_ context.Context, sessionID string, n int64) ([]string, error) {
	lines := f.lines[sessionID]
	if int64(len(lines)) > n {
		lines = lines[int64(len(lines))-n:]
	}
	return lines, nil
}

type fakeReplies struct {
	reply string
	err   error
	calls int
}

func (f *fakeReplies) GenerateReply(_ context.Context, _ string, _ *domain.EnrichmentRecord) (string, error) {
	f.calls++
	return f.reply, f.err
}

func chatRecord() *domain.EnrichmentRecord {
	return &domain.EnrichmentRecord{
		Sentiment:          domain.SentimentNeutral,
		PredictedCategory:  domain.CategoryPasswordReset,
		AutomatedResponse:  "canned password reset steps",
		ChatbotSuggestions: []string{"Open the password reset portal"},
	}
}

func TestHandleMessageLLMReply(t *testing.T) {
	analyzer := &fakeAnalyzer{record: chatRecord()}
	history := newFakeHistory()
	replies := &fakeReplies{reply: "Sure, here is how to reset your password."}
	svc := NewService(analyzer, newFakeCache(), history, replies, nil)

	turn, err := svc.HandleMessage(context.Background(), "sess-1", "I forgot my password")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	if turn.Reply != replies.reply {
		t.Errorf("reply = %q, want the LLM reply", turn.Reply)
	}
	if len(turn.Suggestions) != 1 || turn.Suggestions[0] != "Open the password reset portal" {
		t.Errorf("suggestions = %v", turn.Suggestions)
	}
	if turn.Enrichment == nil {
		t.Error("turn must carry the enrichment record")
	}

	lines := history.lines["sess-1"]
	if len(lines) != 2 {
		t.Fatalf("history lines = %d, want 2", len(lines))
	}
	if lines[0] != "user: I forgot my password" {
		t.Errorf("user line = %q", lines[0])
	}
	if lines[1] != "assistant: "+replies.reply {
		t.Errorf("assistant line = %q", lines[1])
	}
}

func TestHandleMessageCannedFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		replies *fakeReplies
	}{
		{"generator error", &fakeReplies{err: errors.New("circuit open")}},
		{"blank reply", &fakeReplies{reply: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeAnalyzer{record: chatRecord()}, nil, nil, tt.replies, nil)

			turn, err := svc.HandleMessage(context.Background(), "sess-1", "help")
			if err != nil {
				t.Fatalf("HandleMessage: %v", err)
			}
			if turn.Reply != "canned password reset steps" {
				t.Errorf("reply = %q, want the canned response", turn.Reply)
			}
		})
	}
}

func TestHandleMessageNoGenerator(t *testing.T) {
	svc := NewService(&fakeAnalyzer{record: chatRecord()}, nil, nil, nil, nil)

	turn, err := svc.HandleMessage(context.Background(), "sess-1", "help")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if turn.Reply != "canned password reset steps" {
		t.Errorf("reply = %q, want the canned response", turn.Reply)
	}
}

func TestHandleMessageCacheHitSkipsAnalyzer(t *testing.T) {
	analyzer := &fakeAnalyzer{record: chatRecord()}
	cache := newFakeCache()
	svc := NewService(analyzer, cache, nil, nil, nil)

	if _, err := svc.HandleMessage(context.Background(), "s", "My Printer   Is Broken"); err != nil {
		t.Fatalf("first message: %v", err)
	}
	if analyzer.calls != 1 || cache.sets != 1 {
		t.Fatalf("first message: analyzer calls = %d, cache sets = %d", analyzer.calls, cache.sets)
	}

	// Same text modulo case and whitespace shares the cache entry.
	if _, err := svc.HandleMessage(context.Background(), "s", "my printer is broken"); err != nil {
		t.Fatalf("second message: %v", err)
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer calls = %d, want cache hit to skip the second call", analyzer.calls)
	}
}

func TestHandleMessageCacheFailuresAreNonFatal(t *testing.T) {
	analyzer := &fakeAnalyzer{record: chatRecord()}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewService(analyzer, cache, nil, nil, nil)

	turn, err := svc.HandleMessage(context.Background(), "s", "help me")
	if err != nil {
		t.Fatalf("HandleMessage must survive cache failure: %v", err)
	}
	if turn.Enrichment == nil {
		t.Error("enrichment must come from the analyzer on cache failure")
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer calls = %d, want 1", analyzer.calls)
	}
}

func TestHandleMessageHistoryFailureIsNonFatal(t *testing.T) {
	history := newFakeHistory()
	history.appendErr = errors.New("redis down")
	svc := NewService(&fakeAnalyzer{record: chatRecord()}, nil, history, nil, nil)

	if _, err := svc.HandleMessage(context.Background(), "s", "help"); err != nil {
		t.Fatalf("HandleMessage must survive history failure: %v", err)
	}
}

type panickingAnalyzer struct{}

func (panickingAnalyzer) Analyze(_ context.Context, _ string, _ domain.Priority) *domain.EnrichmentRecord {
	panic("calculator blew up")
}

func TestHandleMessageSurvivesAnalysisPanic(t *testing.T) {
	history := newFakeHistory()
	svc := NewService(panickingAnalyzer{}, nil, history, nil, nil)

	turn, err := svc.HandleMessage(context.Background(), "sess-1", "help me")
	if err != nil {
		t.Fatalf("HandleMessage must not fail on analysis panic: %v", err)
	}
	if turn.Enrichment == nil || !turn.Enrichment.FromFallback {
		t.Error("turn must carry the default record marked FromFallback")
	}
	if turn.Reply == "" {
		t.Error("reply must fall back to the default canned response")
	}
	if len(history.lines["sess-1"]) != 2 {
		t.Errorf("history lines = %d, want the turn recorded despite the panic", len(history.lines["sess-1"]))
	}
}

func TestHandleMessageValidation(t *testing.T) {
	svc := NewService(&fakeAnalyzer{record: chatRecord()}, nil, nil, nil, nil)

	if _, err := svc.HandleMessage(context.Background(), "s", "   "); err == nil {
		t.Error("blank message must be rejected")
	}
	if _, err := svc.HandleMessage(context.Background(), "", "help"); err == nil {
		t.Error("empty session id must be rejected")
	}
}

func TestHistory(t *testing.T) {
	history := newFakeHistory()
	history.lines["s"] = []string{"user: a", "assistant: b", "user: c"}
	svc := NewService(&fakeAnalyzer{record: chatRecord()}, nil, history, nil, nil)

	lines, err := svc.History(context.Background(), "s", 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(lines) != 2 || lines[0] != "assistant: b" {
		t.Errorf("lines = %v", lines)
	}

	// No history store wired.
	svc = NewService(&fakeAnalyzer{record: chatRecord()}, nil, nil, nil, nil)
	lines, err = svc.History(context.Background(), "s", 2)
	if err != nil || lines != nil {
		t.Errorf("got %v/%v, want nil/nil without a history store", lines, err)
	}
}

func TestCacheKeyNormalization(t *testing.T) {
	if cacheKey("Hello   World") != cacheKey("hello world") {
		t.Error("keys must match modulo case and whitespace")
	}
	if cacheKey("hello world") == cacheKey("goodbye world") {
		t.Error("different texts must not collide")
	}
}
