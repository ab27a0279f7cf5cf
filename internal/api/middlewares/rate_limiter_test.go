package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	mw "github.com/5w1tchy/bookshelf-api/internal/api/middlewares"
	"github.com/redis/go-redis/v9"
)

// fakeScripter answers every script call with a fixed reply.
type fakeScripter struct {
	reply []interface{}
	err   error
	keys  []string
}

func (f *fakeScripter) cmd(ctx context.Context, keys []string) *redis.Cmd {
	f.keys = keys
	cmd := redis.NewCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	cmd.SetVal(f.reply)
	return cmd
}

func (f *fakeScripter) Eval(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.cmd(ctx, keys)
}

func (f *fakeScripter) EvalSha(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.cmd(ctx, keys)
}

func (f *fakeScripter) EvalRO(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.cmd(ctx, keys)
}

func (f *fakeScripter) EvalShaRO(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.cmd(ctx, keys)
}

func (f *fakeScripter) ScriptExists(ctx context.Context, _ ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceCmd(ctx)
}

func (f *fakeScripter) ScriptLoad(ctx context.Context, _ string) *redis.StringCmd {
	return redis.NewStringCmd(ctx)
}

func TestTokenBucket_Allowed(t *testing.T) {
	rdb := &fakeScripter{reply: []interface{}{int64(1), int64(19), int64(0)}}
	tb := mw.NewTokenBucket(rdb, 5, 20, mw.PerIPKey("rl:books", nil))

	req := httptest.NewRequest("GET", "/books", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()

	tb.Middleware(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "20" {
		t.Errorf("Expected limit 20, got %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "19" {
		t.Errorf("Expected remaining 19, got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if len(rdb.keys) != 1 || rdb.keys[0] != "rl:books:192.0.2.1" {
		t.Errorf("Unexpected bucket key %v", rdb.keys)
	}
}

func TestTokenBucket_Blocked(t *testing.T) {
	rdb := &fakeScripter{reply: []interface{}{int64(0), int64(0), int64(1500)}}
	tb := mw.NewTokenBucket(rdb, 5, 20, mw.PerIPKey("rl:books", nil))

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	tb.Middleware(next).ServeHTTP(rec, httptest.NewRequest("GET", "/books", nil))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rec.Code)
	}
	if called {
		t.Error("Handler should not run when limited")
	}
	if rec.Header().Get("Retry-After") != "2" {
		t.Errorf("Expected Retry-After 2, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestTokenBucket_FailsOpen(t *testing.T) {
	rdb := &fakeScripter{err: errors.New("connection refused")}
	tb := mw.NewTokenBucket(rdb, 5, 20, mw.PerIPKey("rl:books", nil))

	rec := httptest.NewRecorder()
	tb.Middleware(okHandler).ServeHTTP(rec, httptest.NewRequest("GET", "/books", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected request to pass when redis is down, got %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "" {
		t.Error("No rate limit headers expected when redis is down")
	}
}

func TestTokenBucket_SpoofedForwardingSharesBucket(t *testing.T) {
	rdb := &fakeScripter{reply: []interface{}{int64(1), int64(3), int64(0)}}
	tb := mw.NewTokenBucket(rdb, 5, 20, mw.PerIPKey("tb", nil))

	buckets := map[string]bool{}
	for _, xff := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest("GET", "/books", nil)
		req.RemoteAddr = "198.51.100.4:5000"
		req.Header.Set("X-Forwarded-For", xff)
		req.Header.Set("X-Real-IP", xff)
		tb.Middleware(okHandler).ServeHTTP(httptest.NewRecorder(), req)
		buckets[rdb.keys[0]] = true
	}

	if len(buckets) != 1 || !buckets["tb:198.51.100.4"] {
		t.Errorf("Expected one bucket for the peer, got %v", buckets)
	}
}

func TestPerIPKey(t *testing.T) {
	proxies := mw.NewClientIP([]netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")})

	tests := []struct {
		name   string
		ips    *mw.ClientIP
		remote string
		xff    string
		xrip   string
		expect string
	}{
		{"remote addr", nil, "198.51.100.4:80", "", "", "rl:198.51.100.4"},
		{"untrusted peer ignores forwarding", proxies, "198.51.100.4:80", "203.0.113.9", "203.0.113.10", "rl:198.51.100.4"},
		{"trusted peer forwards", proxies, "10.0.0.2:80", "203.0.113.9", "", "rl:203.0.113.9"},
		{"spoofed left hops skipped", proxies, "10.0.0.2:80", "6.6.6.6, 203.0.113.9, 10.0.0.3", "", "rl:203.0.113.9"},
		{"real ip behind proxy", proxies, "10.0.0.2:80", "", "203.0.113.10", "rl:203.0.113.10"},
		{"garbage hop stops walk", proxies, "10.0.0.2:80", "203.0.113.9, not-an-ip", "", "rl:10.0.0.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/books", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xrip != "" {
				req.Header.Set("X-Real-IP", tt.xrip)
			}
			if got := mw.PerIPKey("rl", tt.ips)(req); got != tt.expect {
				t.Errorf("Expected %q, got %q", tt.expect, got)
			}
		})
	}
}
