package echoapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core"
	"github.com/littleheartschool/backend/core/admission"
)

type admissionApi struct {
	svc       *admission.Service
	collector *admission.Collector
}

func registerAdmissionAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := admissionApi{
		svc:       deps.AdmissionSvc,
		collector: deps.Collector,
	}

	// public intake endpoints
	pg := g.Group("/admissions/applications")
	pg.POST("", api.submit, rateLimitMiddleware(deps.Limiter, deps.Conf.Redis, "intake"))
	pg.POST("/steps/:step", api.validateStep)

	// reviewer endpoints
	ag := g.Group("/admin/applications", jwt, adminMiddleware())
	ag.GET("", api.query)
	ag.GET("/stats", api.stats)
	ag.GET("/export", api.export)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.PUT("/:id/status", api.updateStatus)
	ag.PUT("/:id/payment", api.updatePayment)
	ag.POST("/:id/notes", api.addNote)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *admissionApi) submit(ctx echo.Context) error {
	var data admission.NewApplication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewApplication")
	}

	app, err := api.collector.Submit(ctx.Request().Context(), &data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, app)
}

func (api *admissionApi) validateStep(ctx echo.Context) error {
	step, err := strconv.Atoi(ctx.Param("step"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid step")
	}

	var data admission.NewApplication
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewApplication")
	}

	next, err := api.collector.Advance(admission.Step(step), &data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NextStepResponse{NextStep: int(next), Title: next.Title()})
}

func (api *admissionApi) query(ctx echo.Context) error {
	filter := new(admission.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []admission.Application{})
	}

	var apps []admission.Application
	var err error
	if filter.IsEmpty() {
		apps, err = api.svc.QueryAll(ctx.Request().Context())
	} else {
		apps, err = api.svc.Filter(ctx.Request().Context(), *filter)
	}
	if err != nil {
		return errors.Wrap(err, "querying applications")
	}
	if apps == nil {
		apps = []admission.Application{}
	}
	return ctx.JSON(http.StatusOK, apps)
}

func (api *admissionApi) retrieve(ctx echo.Context) error {
	app, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *admissionApi) update(ctx echo.Context) error {
	var patch admission.ApplicationPatch
	if err := ctx.Bind(&patch); err != nil {
		return errors.Wrap(err, "binding to ApplicationPatch")
	}

	app, err := api.svc.Edit(ctx.Request().Context(), ctx.Param("id"), patch)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *admissionApi) updateStatus(ctx echo.Context) error {
	var data StatusUpdateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusUpdateRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	app, err := api.svc.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), admission.Status(data.Status))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *admissionApi) updatePayment(ctx echo.Context) error {
	var data PaymentUpdateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PaymentUpdateRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	app, err := api.svc.SetPayment(ctx.Request().Context(), ctx.Param("id"), *data.Paid)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *admissionApi) addNote(ctx echo.Context) error {
	var data NoteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NoteRequest")
	}

	app, err := api.svc.AppendNote(ctx.Request().Context(), ctx.Param("id"), data.Text)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *admissionApi) destroy(ctx echo.Context) error {
	confirmed, _ := strconv.ParseBool(ctx.QueryParam("confirm"))

	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id"), confirmed); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *admissionApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *admissionApi) export(ctx echo.Context) error {
	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", admission.ExportFilename(time.Now())))
	res.WriteHeader(http.StatusOK)
	return api.svc.ExportCSV(ctx.Request().Context(), res)
}

type (
	StatusUpdateRequest struct {
		Status string `json:"status" validate:"required,status"`
	}

	PaymentUpdateRequest struct {
		Paid *bool `json:"paid" validate:"required"`
	}

	NoteRequest struct {
		Text string `json:"text"`
	}

	NextStepResponse struct {
		NextStep int    `json:"next_step"`
		Title    string `json:"title"`
	}
)

func (sr *StatusUpdateRequest) Validate() error {
	sr.Status = core.CleanString(sr.Status, true /* lower */)
	return core.Validate.Struct(sr)
}

func (pr *PaymentUpdateRequest) Validate() error {
	return core.Validate.Struct(pr)
}
