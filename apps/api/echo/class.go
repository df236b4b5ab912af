package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/class"
	"github.com/trezcool/studium/core/schedule"
)

type classApi struct {
	deps *ServerDeps
}

func registerClassAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := classApi{deps: deps}

	cg := g.Group("/classes", jwt)
	cg.POST("", api.create)
	cg.GET("", api.query)

	// detail endpoints; the class must belong to the authenticated user
	dg := cg.Group("/:id", ownedClassMiddleware(deps.ClassSvc))
	dg.GET("", api.retrieve)
	dg.DELETE("", api.destroy)
	dg.POST("/syllabus", api.ingestSyllabus)
	dg.GET("/assignments", api.queryAssignments)
	dg.GET("/blocks", api.queryBlocks)
	dg.DELETE("/blocks", api.destroyBlocks)
}

// Handlers

func (api *classApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data class.NewClass
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err = data.Validate(ctx.Request().Context(), api.deps.Validate, api.deps.ClassSvc, claims.Subject); err != nil {
		return err
	}

	cls, err := api.deps.ClassSvc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	classes, err := api.deps.ClassSvc.QueryByUser(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	cls, err := getContextClass(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) destroy(ctx echo.Context) error {
	cls, err := getContextClass(ctx)
	if err != nil {
		return err
	}

	// drop the derived schedule first; assignments cascade in the DB
	if err = api.deps.ScheduleSvc.DeleteByClass(ctx.Request().Context(), cls.ID); err != nil {
		return errors.Wrap(err, "deleting study blocks")
	}
	if err = api.deps.ClassSvc.Delete(ctx.Request().Context(), cls.ID); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type IngestSyllabusRequest struct {
	Text string `json:"text" validate:"required"`
}

func (r *IngestSyllabusRequest) Validate(deps *ServerDeps) error {
	r.Text = core.CleanString(r.Text)
	return deps.Validate.Struct(r)
}

func (api *classApi) ingestSyllabus(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	cls, err := getContextClass(ctx)
	if err != nil {
		return err
	}

	var data IngestSyllabusRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IngestSyllabusRequest")
	}
	if err = data.Validate(api.deps); err != nil {
		return err
	}

	res, err := api.deps.SyllabusSvc.Ingest(ctx.Request().Context(), claims.Subject, claims.Email, cls.ID, data.Text)
	if err != nil {
		if errors.Cause(err) == class.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "ingesting syllabus")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *classApi) queryAssignments(ctx echo.Context) error {
	cls, err := getContextClass(ctx)
	if err != nil {
		return err
	}

	asgs, err := api.deps.ClassSvc.QueryAssignments(ctx.Request().Context(), cls.ID)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if asgs == nil {
		asgs = []class.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *classApi) queryBlocks(ctx echo.Context) error {
	cls, err := getContextClass(ctx)
	if err != nil {
		return err
	}

	blocks, err := api.deps.ScheduleSvc.QueryByClass(ctx.Request().Context(), cls.ID)
	if err != nil {
		return errors.Wrap(err, "querying study blocks")
	}
	if blocks == nil {
		blocks = []schedule.StudyBlock{}
	}
	return ctx.JSON(http.StatusOK, blocks)
}

func (api *classApi) destroyBlocks(ctx echo.Context) error {
	cls, err := getContextClass(ctx)
	if err != nil {
		return err
	}

	if err = api.deps.ScheduleSvc.DeleteByClass(ctx.Request().Context(), cls.ID); err != nil {
		return errors.Wrap(err, "deleting study blocks")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ownedClassMiddleware resolves :id to a class owned by the authenticated
// user and stashes it in the context. Other users' classes 404.
func ownedClassMiddleware(svc *class.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}

			cls, err := svc.GetOwned(ctx.Request().Context(), ctx.Param("id"), claims.Subject)
			if err != nil {
				if errors.Cause(err) == class.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding class by ID")
			}
			ctx.Set(contextClassKey, cls)
			return next(ctx)
		}
	}
}

const contextClassKey = "class"

var errClsNotFoundInCtx = errors.New("class object not found in echo.Context")

func getContextClass(ctx echo.Context) (class.Class, error) {
	if cls, ok := ctx.Get(contextClassKey).(class.Class); ok {
		return cls, nil
	}
	return class.Class{}, errors.Wrap(errClsNotFoundInCtx, "retrieving object from context")
}
