package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core/content"
)

type contentApi struct {
	svc *content.Service
}

func registerContentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := contentApi{svc: deps.ContentSvc}

	// public website endpoints
	cg := g.Group("/content")
	cg.GET("/slider", api.querySlider)
	cg.GET("/gallery", api.queryGallery)
	cg.GET("/faculty", api.queryFaculty)

	// editor endpoints
	ag := g.Group("/admin/content", jwt, adminMiddleware())
	ag.POST("/slider", api.createSlider)
	ag.DELETE("/slider/:id", api.destroySlider)
	ag.POST("/gallery", api.createGallery)
	ag.DELETE("/gallery/:id", api.destroyGallery)
	ag.POST("/faculty", api.createFaculty)
	ag.PUT("/faculty/:id", api.updateFaculty)
	ag.DELETE("/faculty/:id", api.destroyFaculty)
}

// Slider

func (api *contentApi) querySlider(ctx echo.Context) error {
	images, err := api.svc.ListSliderImages(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying slider images")
	}
	if images == nil {
		images = []content.SliderImage{}
	}
	return ctx.JSON(http.StatusOK, images)
}

func (api *contentApi) createSlider(ctx echo.Context) error {
	var data content.NewSliderImage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSliderImage")
	}

	img, err := api.svc.AddSliderImage(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, img)
}

func (api *contentApi) destroySlider(ctx echo.Context) error {
	if err := api.svc.DeleteSliderImage(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Gallery

func (api *contentApi) queryGallery(ctx echo.Context) error {
	photos, err := api.svc.ListGalleryPhotos(ctx.Request().Context(), ctx.QueryParam("category"))
	if err != nil {
		return errors.Wrap(err, "querying gallery photos")
	}
	if photos == nil {
		photos = []content.GalleryPhoto{}
	}
	return ctx.JSON(http.StatusOK, photos)
}

func (api *contentApi) createGallery(ctx echo.Context) error {
	var data content.NewGalleryPhoto
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGalleryPhoto")
	}

	photo, err := api.svc.AddGalleryPhoto(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, photo)
}

func (api *contentApi) destroyGallery(ctx echo.Context) error {
	if err := api.svc.DeleteGalleryPhoto(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Faculty

func (api *contentApi) queryFaculty(ctx echo.Context) error {
	members, err := api.svc.ListFacultyMembers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying faculty members")
	}
	if members == nil {
		members = []content.FacultyMember{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *contentApi) createFaculty(ctx echo.Context) error {
	var data content.NewFacultyMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFacultyMember")
	}

	m, err := api.svc.AddFacultyMember(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *contentApi) updateFaculty(ctx echo.Context) error {
	var data content.UpdateFacultyMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateFacultyMember")
	}

	m, err := api.svc.UpdateFacultyMember(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *contentApi) destroyFaculty(ctx echo.Context) error {
	if err := api.svc.DeleteFacultyMember(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
