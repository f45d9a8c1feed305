// Package ws is the websocket gateway. Each connection owns one event bus
// subscription; client frames are turned into commands and bus events are written
// back as {"event", "data"} frames.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"crowddelivery/internal/adapters/in/apierr"
	"crowddelivery/internal/core/application/usecases/commands"
	"crowddelivery/internal/core/domain/model/chat"
	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/eventbus"
	"crowddelivery/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
	repliesBuffer  = 16
)

// Handlers are the commands reachable over the websocket.
type Handlers struct {
	AcceptOrder   commands.AcceptOrderCommandHandler
	RelayLocation commands.RelayLocationCommandHandler
	SendChat      commands.SendChatMessageCommandHandler
}

type Gateway struct {
	bus      *eventbus.Bus
	h        Handlers
	upgrader websocket.Upgrader
	logger   *slog.Logger

	wg sync.WaitGroup
}

func NewGateway(bus *eventbus.Bus, h Handlers, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		bus: bus,
		h:   h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients are mobile apps and the merchant web console on other origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws"),
	}
}

// Register mounts the gateway at GET /ws.
func (g *Gateway) Register(e *echo.Echo) {
	e.GET("/ws", g.Serve)
}

// Serve upgrades the request and runs the connection until either side closes it.
func (g *Gateway) Serve(ctx echo.Context) error {
	conn, err := g.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// The upgrader has already answered the request.
		g.logger.DebugContext(ctx.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}

	g.wg.Add(1)
	defer g.wg.Done()

	newConnection(g, conn).run()
	return nil
}

// Wait blocks until every connection served so far has finished.
func (g *Gateway) Wait() {
	g.wg.Wait()
}

type connection struct {
	g       *Gateway
	conn    *websocket.Conn
	sub     *eventbus.Subscription
	replies chan reply
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func newConnection(g *Gateway, conn *websocket.Conn) *connection {
	ctx, cancel := context.WithCancel(context.Background())
	sub := g.bus.Subscribe()
	return &connection{
		g:       g,
		conn:    conn,
		sub:     sub,
		replies: make(chan reply, repliesBuffer),
		logger:  g.logger.With("subscription", sub.ID()),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (c *connection) run() {
	c.logger.Debug("client connected")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writeLoop()
	}()

	c.readLoop()

	c.cancel()
	c.sub.Close()
	<-writerDone
	_ = c.conn.Close()

	c.logger.Debug("client disconnected")
}

func (c *connection) readLoop() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var f Frame
		if err := c.conn.ReadJSON(&f); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				c.replyError(errs.NewValueIsInvalidErrorWithCause("frame", err))
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info("connection closed unexpectedly", "error", err)
			}
			return
		}
		c.handle(f)
	}
}

// writeLoop is the only goroutine writing to the socket. When it stops it closes
// the socket, which ends the read loop as well.
func (c *connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.cancel()
		_ = c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.sub.Events():
			if !ok {
				c.closeWith(c.sub.Err())
				return
			}
			if err := c.write(ev); err != nil {
				return
			}
		case r := <-c.replies:
			if err := c.write(r); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *connection) write(v any) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(v); err != nil {
		c.logger.Debug("write failed", "error", err)
		return err
	}
	return nil
}

// closeWith tells the client why its subscription ended. A slow client has to
// reconnect and resync from the REST API.
func (c *connection) closeWith(reason error) {
	code, text := websocket.CloseNormalClosure, "bye"
	switch {
	case errors.Is(reason, eventbus.ErrSlowSubscriber):
		code, text = websocket.ClosePolicyViolation, reason.Error()
		c.logger.Warn("disconnecting slow client")
	case errors.Is(reason, eventbus.ErrBusClosed):
		code, text = websocket.CloseGoingAway, reason.Error()
	}
	msg := websocket.FormatCloseMessage(code, text)
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func (c *connection) send(event string, data any) {
	select {
	case c.replies <- reply{Event: event, Data: data}:
	case <-c.ctx.Done():
	}
}

func (c *connection) replyError(err error) {
	status, body := apierr.FromError(err)
	if status >= http.StatusInternalServerError {
		c.logger.Error("command failed", "error", err)
	}
	c.send(EventError, body)
}

func (c *connection) handle(f Frame) {
	var err error
	switch f.Event {
	case EventJoin:
		err = c.join(f.Data)
	case EventChatJoin:
		err = c.chatRoom(f.Data, c.sub.Join)
	case EventChatLeave:
		err = c.chatRoom(f.Data, c.sub.Leave)
	case EventOrderAccept:
		err = c.accept(f.Data)
	case EventLocationUpdate:
		err = c.relayLocation(f.Data)
	case EventChatSend:
		err = c.sendChat(f.Data)
	default:
		err = errs.NewValueIsInvalidErrorWithCause("event", errors.New("unknown event "+f.Event))
	}
	if err != nil {
		c.replyError(err)
	}
}

func (c *connection) join(raw json.RawMessage) error {
	var d joinData
	if err := decode(raw, &d); err != nil {
		return err
	}
	if d.UserID <= 0 {
		return errs.NewValueIsRequiredError("userId")
	}
	c.sub.Join(ports.UserChannel(d.UserID))
	return nil
}

func (c *connection) chatRoom(raw json.RawMessage, apply func(channel string)) error {
	var d chatRoomData
	if err := decode(raw, &d); err != nil {
		return err
	}
	if d.OrderID <= 0 {
		return errs.NewValueIsRequiredError("orderId")
	}
	apply(ports.OrderChannel(d.OrderID))
	return nil
}

func (c *connection) accept(raw json.RawMessage) error {
	var d acceptData
	if err := decode(raw, &d); err != nil {
		return err
	}

	cmd, err := commands.NewAcceptOrderCommand(d.OrderID, d.RiderID)
	if err != nil {
		return err
	}

	result, err := c.g.h.AcceptOrder.Handle(c.ctx, cmd)
	if err != nil {
		return err
	}

	c.send(EventAcceptResult, AcceptResult{
		OrderID: d.OrderID,
		Outcome: string(result.Outcome),
		Order:   result.Order,
	})
	return nil
}

func (c *connection) relayLocation(raw json.RawMessage) error {
	var d locationData
	if err := decode(raw, &d); err != nil {
		return err
	}

	cmd, err := commands.NewRelayLocationCommand(d.UserID, d.Lat, d.Lng)
	if err != nil {
		return err
	}
	_, err = c.g.h.RelayLocation.Handle(c.ctx, cmd)
	return err
}

func (c *connection) sendChat(raw json.RawMessage) error {
	var d chatSendData
	if err := decode(raw, &d); err != nil {
		return err
	}

	cmd, err := commands.NewSendChatMessageCommand(d.OrderID, d.SenderID, chat.Kind(d.Type), d.Message, d.URL)
	if err != nil {
		return err
	}
	_, err = c.g.h.SendChat.Handle(c.ctx, cmd)
	return err
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errs.NewValueIsRequiredError("data")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("data", err)
	}
	return nil
}
