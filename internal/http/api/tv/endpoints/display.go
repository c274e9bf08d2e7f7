package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/minbar-signage/minbar/internal/engine"
	"github.com/minbar-signage/minbar/internal/http/api"
)

type DisplayController struct {
	eng *engine.Engine
}

func NewDisplayController(eng *engine.Engine) *DisplayController {
	return &DisplayController{eng: eng}
}

func DisplayModule(eng *engine.Engine) api.Module {
	ctl := NewDisplayController(eng)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/display", ctl.getDisplay)
	})
}

// GET /api/tv/display returns the last derived display state. Screens
// poll this on boot and then rely on MQTT pushes for phase changes.
func (d *DisplayController) getDisplay(ctx *gin.Context) (any, *api.APIError) {
	return d.eng.State(), nil
}
