package statushttp

import (
	"encoding/json"
	"testing"

	"github.com/valyala/fasthttp"
)

func serveRequest(t *testing.T, s *Server, method, path, body string) *fasthttp.RequestCtx {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	s.Handler(&ctx)
	return &ctx
}

func TestStatusEndpoint(t *testing.T) {
	s := New(func() Snapshot {
		return Snapshot{Playing: true, MoveNum: 12, ToPlay: "W", Q: -0.25}
	}, nil, nil)

	ctx := serveRequest(t, s, fasthttp.MethodGet, "/status", "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status code = %d", ctx.Response.StatusCode())
	}
	var snap Snapshot
	if err := json.Unmarshal(ctx.Response.Body(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !snap.Playing || snap.MoveNum != 12 || snap.ToPlay != "W" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestChatEndpoint(t *testing.T) {
	s := New(nil, func(sender, text string) string {
		return sender + " asked: " + text
	}, nil)

	ctx := serveRequest(t, s, fasthttp.MethodPost, "/chat", `{"sender":"alice","text":"winrate"}`)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status code = %d", ctx.Response.StatusCode())
	}
	var resp chatResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Reply != "alice asked: winrate" {
		t.Fatalf("reply = %q", resp.Reply)
	}
}

func TestChatEndpointRejectsEmptyText(t *testing.T) {
	s := New(nil, func(sender, text string) string { return "x" }, nil)
	ctx := serveRequest(t, s, fasthttp.MethodPost, "/chat", `{"sender":"a","text":"  "}`)
	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("status code = %d, want 400", ctx.Response.StatusCode())
	}
}

func TestUnknownRoute(t *testing.T) {
	s := New(nil, nil, nil)
	ctx := serveRequest(t, s, fasthttp.MethodGet, "/nope", "")
	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("status code = %d, want 404", ctx.Response.StatusCode())
	}
}
