package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/minbar-signage/minbar/internal/db"
	"github.com/minbar-signage/minbar/internal/engine"
	"github.com/minbar-signage/minbar/internal/http/api"
	"github.com/minbar-signage/minbar/internal/http/api/admin/packets"
	"github.com/minbar-signage/minbar/internal/model"
	"github.com/minbar-signage/minbar/internal/timeutil"
)

type TimetableController struct {
	store db.Store
	eng   *engine.Engine
}

func NewTimetableController(store db.Store, eng *engine.Engine) *TimetableController {
	return &TimetableController{store: store, eng: eng}
}

func TimetableModule(store db.Store, eng *engine.Engine) api.Module {
	ctl := NewTimetableController(store, eng)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUT("/timetables/today", ctl.upsertToday)
		c.GET("/timetables/today", ctl.getToday)
		c.GET("/timetables", ctl.listTimetables)
	})
}

// PUT /api/admin/timetables/today
func (t *TimetableController) upsertToday(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.TimetableRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	day := request.Day
	if day == "" {
		day = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "day must be YYYY-MM-DD"}
	}

	row := model.Timetable{
		Day:           day,
		Fajr:          request.Fajr,
		FajrJamaat:    request.FajrJamaat,
		Sunrise:       request.Sunrise,
		Zuhr:          request.Zuhr,
		ZuhrJamaat:    request.ZuhrJamaat,
		Asr:           request.Asr,
		AsrJamaat:     request.AsrJamaat,
		Maghrib:       request.Maghrib,
		MaghribJamaat: request.MaghribJamaat,
		Isha:          request.Isha,
		IshaJamaat:    request.IshaJamaat,
	}
	if err := validateTimetable(row); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	saved, err := t.store.UpsertTimetable(row)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save timetable"}
	}

	// A table for today supersedes the running one immediately.
	if saved.Day == time.Now().Format("2006-01-02") {
		times := saved.Times()
		t.eng.SetTimes(&times)
		log.Info().Str("day", saved.Day).Msg("today's timetable replaced")
	}

	return saved, nil
}

// GET /api/admin/timetables/today
func (t *TimetableController) getToday(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	row, err := t.store.GetTimetable(time.Now().Format("2006-01-02"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "no timetable for today"}
	}
	return row, nil
}

// GET /api/admin/timetables?limit=30
func (t *TimetableController) listTimetables(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	limit := 30
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid limit"}
		}
		limit = parsed
	}

	rows, err := t.store.ListTimetables(limit)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list timetables"}
	}
	return rows, nil
}

// validateTimetable rejects values that are present but unparsable.
// Empty values are allowed; the engine drops those prayers.
func validateTimetable(t model.Timetable) error {
	for _, nt := range t.Times().Ordered() {
		if nt.Adhan != "" {
			if _, err := timeutil.ParseClock(nt.Adhan); err != nil {
				return err
			}
		}
		if nt.Jamaat != "" {
			if _, err := timeutil.ParseClock(nt.Jamaat); err != nil {
				return err
			}
		}
	}
	return nil
}
