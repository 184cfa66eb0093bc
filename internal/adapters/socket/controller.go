package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/chandrasingh0914/mersiv-backend/internal/app"
	"github.com/chandrasingh0914/mersiv-backend/internal/config"
)

const sendBuffer = 32

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller upgrades viewer connections and bridges frames between the
// websocket and the hub.
type Controller struct {
	Hub *app.Hub
	cfg *config.Config
}

func NewController(hub *app.Hub, cfg *config.Config) *Controller {
	return &Controller{Hub: hub, cfg: cfg}
}

// Handle upgrades the request, registers the session with the hub and starts
// the read/write pumps. The session id is minted here; clients never choose
// their own.
func (ctl *Controller) Handle(ctx context.Context, c *gin.Context) {
	sid := app.SessionID(uuid.NewString())

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "socket").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "socket").Str("sid", string(sid)).Msg("new WS connection")

	conn := newConn(ws, sendBuffer)
	ctl.Hub.Connect(sid, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}

func (ctl *Controller) writePump(ctx context.Context, c *Conn) {
	ticker := time.NewTicker(ctl.cfg.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ws.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteTimeout)); err != nil {
				return
			}
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "socket").Msg("writePump ping error")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.ws.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteTimeout)); err != nil {
				log.Error().Err(err).Str("module", "socket").Msg("writePump set deadline")
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "socket").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, sid app.SessionID, c *Conn) {
	defer func() {
		log.Info().Str("module", "socket").Str("sid", string(sid)).Msg("readPump closing")
		ctl.Hub.Disconnect(sid)
		cancel()
		c.Close()
	}()

	pongWait := ctl.cfg.PingPeriod * 10 / 9
	c.ws.SetReadLimit(ctl.cfg.ReadLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.ws.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "socket").Str("sid", string(sid)).Msg("readPump read error")
				}
				return
			}
			ctl.handleFrame(sid, data)
		}
	}
}

// handleFrame dispatches one inbound frame. The recover boundary keeps a
// fault in one handler from taking down the pump or the process; the
// connection stays usable and a later disconnect is still processed.
func (ctl *Controller) handleFrame(sid app.SessionID, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Str("module", "socket").Str("sid", string(sid)).Msg("recovered from event handler")
		}
	}()

	var env app.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "socket").Str("sid", string(sid)).Msg("bad json frame")
		return
	}

	switch env.Event {
	case app.EventJoinStore:
		var ref app.RoomRef
		if err := json.Unmarshal(env.Data, &ref); err != nil {
			log.Error().Err(err).Str("module", "socket").Str("sid", string(sid)).Msg("bad join payload")
			return
		}
		ctl.Hub.Join(sid, ref.StoreID)
	case app.EventLeaveStore:
		var ref app.RoomRef
		if err := json.Unmarshal(env.Data, &ref); err != nil {
			log.Error().Err(err).Str("module", "socket").Str("sid", string(sid)).Msg("bad leave payload")
			return
		}
		ctl.Hub.Leave(sid, ref.StoreID)
	case app.EventPositionUpdate:
		var edit app.PositionEdit
		if err := json.Unmarshal(env.Data, &edit); err != nil {
			log.Error().Err(err).Str("module", "socket").Str("sid", string(sid)).Msg("bad position payload")
			return
		}
		ctl.Hub.RelayEdit(sid, edit)
	default:
		log.Warn().Str("module", "socket").Str("event", env.Event).Msg("unknown event")
	}
}
