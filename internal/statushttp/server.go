// Package statushttp exposes a small HTTP surface over a running player.
package statushttp

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Snapshot reports the current game state.
type Snapshot struct {
	Playing bool    `json:"playing"`
	MoveNum int     `json:"move_num"`
	ToPlay  string  `json:"to_play,omitempty"`
	Q       float64 `json:"q"`
	Result  string  `json:"result,omitempty"`
}

// SnapshotFunc returns the current snapshot.
type SnapshotFunc func() Snapshot

// ChatFunc answers a chat message.
type ChatFunc func(sender, text string) string

type chatRequest struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Server serves GET /status and POST /chat.
type Server struct {
	snapshot SnapshotFunc
	chat     ChatFunc
	logger   *zap.Logger

	srv *fasthttp.Server
}

func New(snapshot SnapshotFunc, chat ChatFunc, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{snapshot: snapshot, chat: chat, logger: logger}
	s.srv = &fasthttp.Server{
		Handler:      s.Handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Name:         "minigo-status",
	}
	return s
}

func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch {
	case path == "/status" && ctx.IsGet():
		s.handleStatus(ctx)
	case path == "/chat" && ctx.IsPost():
		s.handleChat(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (s *Server) handleStatus(ctx *fasthttp.RequestCtx) {
	snap := Snapshot{}
	if s.snapshot != nil {
		snap = s.snapshot()
	}
	writeJSON(ctx, fasthttp.StatusOK, snap)
}

func (s *Server) handleChat(ctx *fasthttp.RequestCtx) {
	var req chatRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		return
	}
	reply := ""
	if s.chat != nil {
		reply = s.chat(req.Sender, req.Text)
	}
	writeJSON(ctx, fasthttp.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("status server listening", zap.String("addr", addr))
	return s.srv.ListenAndServe(addr)
}

func (s *Server) Shutdown() error {
	return s.srv.Shutdown()
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(payload)
}
