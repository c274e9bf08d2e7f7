package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/minbar-signage/minbar/internal/db"
	"github.com/minbar-signage/minbar/internal/engine"
	"github.com/minbar-signage/minbar/internal/http/api"
	authapi "github.com/minbar-signage/minbar/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/minbar-signage/minbar/internal/http/api/admin/endpoints"
	tvapi "github.com/minbar-signage/minbar/internal/http/api/tv/endpoints"
	"github.com/minbar-signage/minbar/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, storageSystem storage.Storage, eng *engine.Engine) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		adminapi.TimetableModule(store, eng),
		adminapi.OverrideModule(eng),
		adminapi.ScreenModule(store),
		adminapi.SlideModule(store, storageSystem),
		// session endpoints that require auth
		authapi.AuthSessionModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		tvapi.DisplayModule(eng),
		tvapi.PairModule(store),
	)

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
