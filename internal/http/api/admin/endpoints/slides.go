package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minbar-signage/minbar/internal/db"
	"github.com/minbar-signage/minbar/internal/http/api"
	"github.com/minbar-signage/minbar/internal/http/api/admin/packets"
	"github.com/minbar-signage/minbar/internal/model"
	"github.com/minbar-signage/minbar/internal/storage"
)

type SlideController struct {
	store         db.Store
	storageSystem storage.Storage
}

func NewSlideController(store db.Store, storageSystem storage.Storage) *SlideController {
	return &SlideController{store: store, storageSystem: storageSystem}
}

func SlideModule(store db.Store, storageSystem storage.Storage) api.Module {
	ctl := NewSlideController(store, storageSystem)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/slides", ctl.listSlides)
		c.POST("/slides", ctl.uploadSlide)
		c.DELETE("/slides/:id", ctl.deleteSlide)
	})
}

// GET /api/admin/slides
func (s *SlideController) listSlides(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := s.store.ListSlides()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list slides"}
	}

	response := make([]packets.SlideResponse, 0, len(list))
	for _, it := range list {
		response = append(response, packets.SlideResponse{
			ID:        it.ID,
			Name:      it.Name,
			URL:       it.URL,
			CreatedAt: it.CreatedAt.Format(time.RFC3339),
		})
	}
	return response, nil
}

// POST /api/admin/slides (multipart: name, file)
func (s *SlideController) uploadSlide(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.PostForm("name")
	if name == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "name is required"}
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
	}

	url, err := s.storageSystem.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store slide"}
	}

	slide, err := s.store.CreateSlide(name, url, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create slide"}
	}
	return slide, nil
}

// DELETE /api/admin/slides/:id
func (s *SlideController) deleteSlide(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := s.store.DeleteSlide(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete slide"}
	}
	return gin.H{"message": "deleted"}, nil
}
