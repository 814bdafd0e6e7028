package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/mdocgo/mdocgo/internal/mdoc"
	"github.com/mdocgo/mdocgo/internal/mdocfixture"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleValidateStream upgrades the connection, reads one JSON tree
// fixture message, then walks it emitting one JSON diagnostic message
// per rule failure as the walk proceeds — so a client that stops
// reading simply leaves the walk mid-document, per §5's cancellation
// note ("a caller abandoning an iteration simply stops calling next").
func (s *server) handleValidateStream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, data, err := conn.ReadMessage()
	if err != nil {
		if err != io.EOF {
			conn.WriteJSON(echo.Map{"error": err.Error()})
		}
		return nil
	}

	fx, err := mdocfixture.Parse(data)
	if err != nil {
		conn.WriteJSON(echo.Map{"error": err.Error()})
		return nil
	}
	tree, err := fx.Build()
	if err != nil {
		conn.WriteJSON(echo.Map{"error": err.Error()})
		return nil
	}

	var promote func(mdoc.Kind) bool
	if s.policy != nil {
		promote = s.policy.Promote
	}
	sink := &streamSink{conn: conn, promote: promote}

	v := mdoc.NewValidator(tree, sink)
	v.ManSection = fx.ManSection
	v.Walk(tree.Root)

	conn.WriteJSON(echo.Map{"done": true})
	return nil
}

// streamSink implements mdoc.Sink by writing each diagnostic straight
// to the websocket connection instead of buffering it, mirroring
// mdoc.DefaultSink's message shape but trading the in-memory slice for
// an immediate write.
type streamSink struct {
	conn    *websocket.Conn
	promote func(mdoc.Kind) bool
}

func (s *streamSink) send(d mdoc.Diagnostic) {
	_ = s.conn.WriteJSON(d)
}

func (s *streamSink) promoted(kind mdoc.Kind) bool {
	return s.promote != nil && s.promote(kind)
}

func (s *streamSink) Err(format string, args ...any) bool {
	s.send(mdoc.Diagnostic{Severity: mdoc.SevErr, Message: fmt.Sprintf(format, args...)})
	return false
}

func (s *streamSink) Warn(kind mdoc.Kind, format string, args ...any) bool {
	s.send(mdoc.Diagnostic{Severity: mdoc.SevWarn, Kind: kind, Message: fmt.Sprintf(format, args...)})
	return !s.promoted(kind)
}

func (s *streamSink) NErr(node mdoc.NodeID, format string, args ...any) bool {
	s.send(mdoc.Diagnostic{Severity: mdoc.SevErr, Node: node, Message: fmt.Sprintf(format, args...)})
	return false
}

func (s *streamSink) NWarn(node mdoc.NodeID, kind mdoc.Kind, format string, args ...any) bool {
	s.send(mdoc.Diagnostic{Severity: mdoc.SevWarn, Kind: kind, Node: node, Message: fmt.Sprintf(format, args...)})
	return !s.promoted(kind)
}

func (s *streamSink) PErr(line, col int, format string, args ...any) bool {
	s.send(mdoc.Diagnostic{Severity: mdoc.SevErr, Line: line, Col: col, Message: fmt.Sprintf(format, args...)})
	return false
}
