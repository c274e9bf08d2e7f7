package endpoints

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/minbar-signage/minbar/internal/db"
	"github.com/minbar-signage/minbar/internal/http/api"
	"github.com/minbar-signage/minbar/internal/http/api/tv/packets"
	"github.com/minbar-signage/minbar/internal/push"
	"github.com/minbar-signage/minbar/internal/redis"
)

const pairingCodeTTL = 10 * time.Minute

type PairController struct {
	store db.Store
}

func NewPairController(store db.Store) *PairController {
	return &PairController{store: store}
}

func PairModule(store db.Store) api.Module {
	ctl := NewPairController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/pair/register", ctl.registerPair)
		c.RAW_GET("/pair/qr/:code", ctl.pairQR)
		c.PUBLIC_POST("/connect", ctl.connect)
	})
}

// POST /api/tv/pair/register is called by an unpaired display on boot.
// The code it gets back is shown on screen (and as a QR) until an admin
// claims it.
func (p *PairController) registerPair(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RegisterPairRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	code, err := newPairingCode()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate pairing code"}
	}

	redis.Set(ctx, code, request.DeviceID, pairingCodeTTL)
	log.Info().Str("device_id", request.DeviceID).Msg("pairing code registered")

	return packets.RegisterPairResponse{
		PairingCode: code,
		ExpiresIn:   int(pairingCodeTTL.Seconds()),
	}, nil
}

// GET /api/tv/pair/qr/:code renders the pairing code as a PNG so the
// display can show a scannable version next to the digits.
func (p *PairController) pairQR(ctx *gin.Context) {
	code := ctx.Param("code")
	if _, err := redis.Get(ctx, code); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "pairing code not found"})
		return
	}

	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not render qr code"})
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

// POST /api/tv/connect attaches a paired display to the MQTT fan-out.
func (p *PairController) connect(ctx *gin.Context) (any, *api.APIError) {
	var request packets.ConnectRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := p.store.GetScreenByDeviceID(request.DeviceID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "device not paired"}
	}

	client, err := push.NewClient("screen-" + request.DeviceID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not reach broker"}
	}
	push.RegisterScreen(request.DeviceID, client)

	log.Info().Str("device_id", request.DeviceID).Int("screen_id", screen.ID).Msg("screen connected")
	return gin.H{"message": "connected"}, nil
}

// newPairingCode returns a 6-digit code. Codes collide rarely at this
// scale and expire quickly; the last writer wins.
func newPairingCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
