package session

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/pathguide/internal/app"
	"github.com/inamate/pathguide/internal/document"
	"github.com/inamate/pathguide/internal/sketch"
)

func defaultFactory() (*app.App, error) {
	page, err := document.Default()
	if err != nil {
		return nil, err
	}
	return app.FromManifest(page, sketch.Config{})
}

func newTestClient(t *testing.T) (*Hub, *Client) {
	t.Helper()
	h := NewHub(defaultFactory, nil)
	a, err := defaultFactory()
	require.NoError(t, err)
	return h, NewClient(h, nil, a, "sess_test", "client-1")
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func next(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	default:
		t.Fatal("no message queued")
		return Message{}
	}
}

func frame(t *testing.T, msg Message) FramePayload {
	t.Helper()
	require.Equal(t, TypeFrame, msg.Type, string(msg.Payload))
	var f FramePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &f))
	return f
}

func TestShowSendsFrame(t *testing.T) {
	h, c := newTestClient(t)

	h.handleMessage(c, &Message{Type: TypeSketchShow, Sketch: "lineTo"})
	msg := next(t, c)
	assert.Equal(t, "lineTo", msg.Sketch)
	assert.Equal(t, "sess_test", msg.SessionID)
	assert.Equal(t, int64(1), msg.Seq)

	f := frame(t, msg)
	assert.Equal(t, "lineTo", f.Sketch)
	assert.NotEmpty(t, f.Commands)
	assert.Contains(t, f.Code, "path.lineTo( vec2( 270.0, 140.0 ) );")
	require.Len(t, f.Links, 8)
	assert.True(t, f.Links[1].Active)
}

func TestMessagesBeforeShow(t *testing.T) {
	h, c := newTestClient(t)

	h.handleMessage(c, &Message{Type: TypeKey, Payload: payload(t, KeyPayload{Key: "r"})})
	msg := next(t, c)
	require.Equal(t, TypeError, msg.Type)

	var e ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &e))
	assert.Equal(t, TypeKey, e.Request)
	assert.Equal(t, errNoSketch.Error(), e.Message)
}

func TestDragOverProtocol(t *testing.T) {
	h, c := newTestClient(t)
	h.handleMessage(c, &Message{Type: TypeSketchShow, Sketch: "lineTo"})
	next(t, c)

	h.handleMessage(c, &Message{Type: TypePointerDown, Payload: payload(t, PointerPayload{X: 420, Y: 340})})
	next(t, c)
	h.handleMessage(c, &Message{Type: TypePointerDrag, Payload: payload(t, PointerPayload{X: 400, Y: 300})})
	f := frame(t, next(t, c))
	assert.Contains(t, f.Code, "path.lineTo( vec2( 400.0, 300.0 ) );")

	h.handleMessage(c, &Message{Type: TypePointerUp, Payload: payload(t, PointerPayload{X: 400, Y: 300})})
	next(t, c)

	// a drag with nothing grabbed sends nothing
	h.handleMessage(c, &Message{Type: TypePointerDrag, Payload: payload(t, PointerPayload{X: 1, Y: 1})})
	assert.Empty(t, c.send)
}

func TestSettingOverProtocol(t *testing.T) {
	h, c := newTestClient(t)
	h.handleMessage(c, &Message{Type: TypeSketchShow, Sketch: "arc"})
	next(t, c)

	h.handleMessage(c, &Message{Type: TypeSettingSet, Payload: payload(t, SettingPayload{Name: "radius", Value: 60})})
	f := frame(t, next(t, c))
	assert.Contains(t, f.Code, ", 60.0, ")
	assert.Equal(t, 60.0, f.Settings[0].Number)

	h.handleMessage(c, &Message{Type: TypeSettingSet, Payload: payload(t, SettingPayload{Name: "colour", Value: 1})})
	assert.Equal(t, TypeError, next(t, c).Type)
}

func TestDispatchErrors(t *testing.T) {
	h, c := newTestClient(t)

	h.handleMessage(c, &Message{Type: TypeSketchShow, Sketch: "spiral"})
	assert.Equal(t, TypeError, next(t, c).Type)

	h.handleMessage(c, &Message{Type: TypeSketchShow, Sketch: "quadTo"})
	next(t, c)

	tests := []*Message{
		{Type: "bogus"},
		{Type: TypePointerDown, Payload: json.RawMessage(`"nope"`)},
		{Type: TypeKey, Sketch: "lineTo", Payload: payload(t, KeyPayload{Key: "b"})},
	}
	for _, msg := range tests {
		h.handleMessage(c, msg)
		assert.Equal(t, TypeError, next(t, c).Type, msg.Type)
	}

	// unused keys are ignored
	h.handleMessage(c, &Message{Type: TypeKey, Payload: payload(t, KeyPayload{Key: "z"})})
	assert.Empty(t, c.send)

	h.handleMessage(c, &Message{Type: TypeKey, Payload: payload(t, KeyPayload{Key: "b"})})
	assert.Contains(t, frame(t, next(t, c)).Code, "calcBoundingBox")

	h.handleMessage(c, &Message{Type: TypeSketchReset})
	next(t, c)
}

func TestSendAfterClose(t *testing.T) {
	_, c := newTestClient(t)
	c.close()
	c.close()
	assert.NotPanics(t, func() { c.Send(&Message{Type: TypeFrame}) })
}

func TestWelcome(t *testing.T) {
	_, c := newTestClient(t)
	c.sendWelcome()

	msg := next(t, c)
	require.Equal(t, TypeWelcome, msg.Type)
	var wp WelcomePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &wp))
	assert.Equal(t, "sess_test", wp.SessionID)
	assert.Equal(t, "Path2d", wp.Title)
	assert.Len(t, wp.Links, 8)
}

func TestHubRegister(t *testing.T) {
	h := NewHub(defaultFactory, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	a, err := defaultFactory()
	require.NoError(t, err)
	c := NewClient(h, nil, a, "sess_a", "client-a")

	h.Register(c)
	assert.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 5*time.Millisecond)
	// the hub only tracks the client; it never writes to it
	assert.Empty(t, c.send)

	h.Unregister(c)
	assert.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	<-h.done
	// after shutdown registration no longer blocks
	h.Register(c)
}

func dialServer(t *testing.T, ctx context.Context) string {
	t.Helper()
	h := NewHub(defaultFactory, nil)
	go h.Run(ctx)
	srv := httptest.NewServer(h.Handler([]string{"*"}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) Message {
	t.Helper()
	rctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, data, err := conn.Read(rctx)
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// A show sent right after dialing races nothing: the welcome is queued
// before the session starts reading and always arrives first.
func TestShowImmediatelyAfterDial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	url := dialServer(t, ctx)

	show, err := json.Marshal(Message{Type: TypeSketchShow, Sketch: "arc"})
	require.NoError(t, err)

	const sessions = 20
	conns := make([]*websocket.Conn, sessions)
	for i := range conns {
		conn, _, err := websocket.Dial(ctx, url, nil)
		require.NoError(t, err)
		defer conn.Close(websocket.StatusNormalClosure, "")
		require.NoError(t, conn.Write(ctx, websocket.MessageText, show))
		conns[i] = conn
	}

	for _, conn := range conns {
		welcome := readMessage(t, ctx, conn)
		assert.Equal(t, TypeWelcome, welcome.Type)
		assert.Equal(t, int64(1), welcome.Seq)

		f := frame(t, readMessage(t, ctx, conn))
		assert.Equal(t, "arc", f.Sketch)
		for _, l := range f.Links {
			assert.Equal(t, l.Name == "arc", l.Active, l.Name)
		}
	}
}

func TestWebsocketSession(t *testing.T) {
	h := NewHub(defaultFactory, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	srv := httptest.NewServer(h.Handler([]string{"*"}))
	defer srv.Close()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	read := func() Message {
		t.Helper()
		rctx, rcancel := context.WithTimeout(ctx, 5*time.Second)
		defer rcancel()
		_, data, err := conn.Read(rctx)
		require.NoError(t, err)
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	welcome := read()
	require.Equal(t, TypeWelcome, welcome.Type)
	var wp WelcomePayload
	require.NoError(t, json.Unmarshal(welcome.Payload, &wp))
	assert.Equal(t, "Path2d", wp.Title)
	assert.True(t, strings.HasPrefix(wp.SessionID, "sess_"))

	data, err := json.Marshal(Message{Type: TypeSketchShow, Sketch: "close"})
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, data))

	f := frame(t, read())
	assert.Equal(t, "close", f.Sketch)
	assert.Contains(t, f.Code, "path.close();")
}
