package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/engine"
	"github.com/minbar-signage/minbar/internal/http/api"
	"github.com/minbar-signage/minbar/internal/http/api/admin/packets"
	"github.com/minbar-signage/minbar/internal/model"
	"github.com/minbar-signage/minbar/internal/phase"
	"github.com/minbar-signage/minbar/internal/ramadan"
	"github.com/minbar-signage/minbar/internal/redis"
)

type OverrideController struct {
	eng *engine.Engine
}

func NewOverrideController(eng *engine.Engine) *OverrideController {
	return &OverrideController{eng: eng}
}

func OverrideModule(eng *engine.Engine) api.Module {
	ctl := NewOverrideController(eng)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/overrides", ctl.getOverrides)
		c.POST("/overrides/phase", ctl.setPhaseOverride)
		c.POST("/overrides/ramadan", ctl.setRamadanOverride)
	})
}

// GET /api/admin/overrides
func (o *OverrideController) getOverrides(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	response := packets.OverridesResponse{
		Ramadan: o.eng.RamadanForce().String(),
	}
	if forced := o.eng.PhaseOverride(); forced != nil {
		response.Phase = string(*forced)
	}
	return response, nil
}

// POST /api/admin/overrides/phase
func (o *OverrideController) setPhaseOverride(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.PhaseOverrideRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.Phase != "" && !phase.Valid(phase.Phase(request.Phase)) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown phase"}
	}

	o.announce(ctx, model.OverrideEvent{Kind: model.OverrideKindPhase, Value: request.Phase})
	return gin.H{"message": "phase override set"}, nil
}

// POST /api/admin/overrides/ramadan
func (o *OverrideController) setRamadanOverride(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.RamadanOverrideRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, ok := ramadan.ParseForceMode(request.Mode); !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "mode must be on, off or auto"}
	}

	o.announce(ctx, model.OverrideEvent{Kind: model.OverrideKindRamadan, Value: request.Mode})
	return gin.H{"message": "ramadan override set"}, nil
}

// announce publishes the change notification; if the channel is down
// the engine is updated directly so a single-node deployment still
// reacts.
func (o *OverrideController) announce(ctx *gin.Context, ev model.OverrideEvent) {
	if err := redis.PublishOverride(ctx, ev); err != nil {
		log.Warn().Err(err).Msg("override channel unavailable, applying directly")
		o.eng.HandleOverride(ev)
	}
}
