package mazeapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/infrastruture/csvstore"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController serves the maze routes.
type MazeController struct {
	mazeService i.MazeService
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService) (*MazeController, error) {
	if ms == nil {
		return nil, errors.New("maze service is nil")
	}
	return &MazeController{
		mazeService: ms,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.generate)
		mazes.GET("", mc.list)
		mazes.GET("/:ID", mc.byID)
		mazes.GET("/:ID/render", mc.render)
		mazes.GET("/:ID/csv", mc.csv)
		mazes.GET("/:ID/solution", mc.solution)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.DELETE("/:ID", mc.delete)
	}
}

// generate handles maze creation requests.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := mc.mazeService.Generate(ctx.Request.Context(), request.Width, request.Height, request.Seed)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMazeResponse(m))
}

// list returns the newest mazes without their cells.
func (mc *MazeController) list(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	metas, err := mc.mazeService.List(ctx.Request.Context(), limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"mazes": metas})
}

func (mc *MazeController) byID(ctx *gin.Context) {
	m, ok := mc.load(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, newMazeResponse(m))
}

// render draws the maze in the requested format (ascii, svg or png).
func (mc *MazeController) render(ctx *gin.Context) {
	renderer, err := render.ByName(ctx.DefaultQuery("format", "svg"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	opts := render.Options{}
	if raw := ctx.Query("scale"); raw != "" {
		scale, err := strconv.Atoi(raw)
		if err != nil || scale <= 0 || scale > render.MaxScale {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("scale must be in [1, %d]", render.MaxScale)})
			return
		}
		opts.Scale = scale
	}

	m, ok := mc.load(ctx)
	if !ok {
		return
	}

	if withSolution, _ := strconv.ParseBool(ctx.Query("solution")); withSolution {
		path, err := mc.mazeService.Solve(ctx.Request.Context(), m.ID)
		if err != nil {
			abortWithError(ctx, err)
			return
		}
		opts.Solution = path
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, m.Grid, opts); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, renderer.ContentType(), buf.Bytes())
}

// csv downloads the maze as a cell table.
func (mc *MazeController) csv(ctx *gin.Context) {
	m, ok := mc.load(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := csvstore.Encode(&buf, m.Grid); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("maze_%dx%d_%d.csv", m.Width(), m.Height(), m.Seed)))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (mc *MazeController) solution(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	path, err := mc.mazeService.Solve(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &SolutionResponse{ID: id, Length: len(path), Path: path})
}

func (mc *MazeController) delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := mc.mazeService.Delete(ctx.Request.Context(), id); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (mc *MazeController) load(ctx *gin.Context) (*dmn.Maze, bool) {
	id, ok := parseID(ctx)
	if !ok {
		return nil, false
	}

	m, err := mc.mazeService.ByID(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return nil, false
	}
	return m, true
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return uuid.Nil, false
	}
	return id, true
}

// abortWithError maps service errors to HTTP statuses.
func abortWithError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, dmn.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, service.ErrMazeTooLarge),
		errors.Is(err, render.ErrUnknownFormat):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
