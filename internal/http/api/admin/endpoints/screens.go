package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/db"
	"github.com/minbar-signage/minbar/internal/http/api"
	"github.com/minbar-signage/minbar/internal/http/api/admin/packets"
	"github.com/minbar-signage/minbar/internal/model"
	"github.com/minbar-signage/minbar/internal/redis"
)

type ScreenController struct {
	store db.Store
}

func NewScreenController(store db.Store) *ScreenController {
	return &ScreenController{store: store}
}

func ScreenModule(store db.Store) api.Module {
	ctl := NewScreenController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/screens", ctl.listScreens)
		c.POST("/screens", ctl.createScreen)
		c.POST("/screens/:id/pair", ctl.pairScreen)
		c.DELETE("/screens/:id", ctl.deleteScreen)
	})
}

// GET /api/admin/screens
func (s *ScreenController) listScreens(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := s.store.ListScreens()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list screens"}
	}

	response := make([]packets.ScreenResponse, 0, len(list))
	for _, it := range list {
		response = append(response, screenResponse(it))
	}
	return response, nil
}

// POST /api/admin/screens
func (s *ScreenController) createScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := s.store.CreateScreen(request.Name, request.Location)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create screen"}
	}
	return screenResponse(screen), nil
}

// POST /api/admin/screens/:id/pair claims a pairing code registered by
// a display device and binds its device ID to the screen record.
func (s *ScreenController) pairScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.PairScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	deviceID, err := redis.Get(ctx, request.PairingCode)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "pairing code not found"}
	}

	if _, err := s.store.GetScreenByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}

	if err := s.store.PairScreen(id, deviceID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not pair screen"}
	}

	log.Info().Int("screen_id", id).Str("device_id", deviceID).Msg("screen paired")
	return gin.H{"message": "paired"}, nil
}

// DELETE /api/admin/screens/:id
func (s *ScreenController) deleteScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := s.store.DeleteScreen(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete screen"}
	}
	return gin.H{"message": "deleted"}, nil
}

func screenResponse(sc model.Screen) packets.ScreenResponse {
	return packets.ScreenResponse{
		ID:        sc.ID,
		DeviceID:  sc.DeviceID,
		Name:      sc.Name,
		Location:  sc.Location,
		Paired:    sc.Paired,
		CreatedAt: sc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: sc.UpdatedAt.Format(time.RFC3339),
	}
}
