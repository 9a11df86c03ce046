package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
)

// DialWebSocket opens a websocket connection to rawURL and wraps its binary
// message stream as a Conn, letting agents reach masters behind HTTP
// front-ends.
func DialWebSocket(ctx context.Context, rawURL string) (*Conn, error) {
	ws, _, err := websocket.Dial(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial %s: %w", rawURL, err)
	}
	return New(websocket.NetConn(ctx, ws, websocket.MessageBinary)), nil
}

// UpgradeWebSocket upgrades an inbound HTTP request and wraps it as a Conn.
// The returned Conn lives until ctx is cancelled or Close is called.
func UpgradeWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Conn, error) {
	ws, err := websocket.Accept(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket accept: %w", err)
	}
	return New(websocket.NetConn(ctx, ws, websocket.MessageBinary)), nil
}
