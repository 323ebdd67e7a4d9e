package navigationapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-floodfill/api/identity"
	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
	"github.com/beka-birhanu/vinom-floodfill/navigation/navigator"
	"github.com/beka-birhanu/vinom-floodfill/service"
	"github.com/beka-birhanu/vinom-floodfill/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxGeneratedSize = 32

// NavigationController serves navigation runs and maze dumps.
type NavigationController struct {
	navigation i.Navigation
}

// NewNavigationController initializes a NavigationController.
func NewNavigationController(n i.Navigation) (*NavigationController, error) {
	if n == nil {
		return nil, errors.New("navigation service is nil")
	}
	return &NavigationController{navigation: n}, nil
}

// RegisterPublic registers public routes.
func (nc *NavigationController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("/classic", nc.classicMaze)
		mazes.GET("/generated", nc.generatedMaze)
	}
}

// RegisterProtected registers protected routes.
func (nc *NavigationController) RegisterProtected(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.POST("", nc.solve)
		runs.GET("", nc.list)
		runs.GET("/:ID", nc.run)
	}
}

// solve runs a navigation request for the calling operator.
func (nc *NavigationController) solve(ctx *gin.Context) {
	operatorID, err := identity.OperatorID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := dmn.SolveRequest{
		OperatorID: operatorID,
		Source:     dmn.MazeSource(request.Source),
		Size:       request.Size,
		Seed:       request.Seed,
		Walls:      request.Walls,
		Start:      request.Start,
		Goals:      request.Goals,
		MaxReplans: request.MaxReplans,
	}
	if request.Heading != "" {
		heading, err := maze.ParseDirection(request.Heading)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.Heading = &heading
	}

	run, err := nc.navigation.Solve(ctx.Request.Context(), req)
	switch {
	case err == nil:
		ctx.JSON(http.StatusCreated, run)
	case errors.Is(err, service.ErrInvalidRequest):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, navigator.ErrUnsolvable) && run != nil:
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "run": run})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while solving maze"})
	}
}

// run returns one of the operator's runs.
func (nc *NavigationController) run(ctx *gin.Context) {
	operatorID, err := identity.OperatorID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := nc.navigation.Run(ctx.Request.Context(), ID)
	if err != nil {
		if errors.Is(err, i.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading run"})
		return
	}
	if run.OperatorID != operatorID {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	ctx.JSON(http.StatusOK, run)
}

// list returns the operator's latest runs; ?limit= caps the count.
func (nc *NavigationController) list(ctx *gin.Context) {
	operatorID, err := identity.OperatorID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var limit int64
	if raw := ctx.Query("limit"); raw != "" {
		if limit, err = strconv.ParseInt(raw, 10, 64); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	runs, err := nc.navigation.Runs(ctx.Request.Context(), operatorID, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while listing runs"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (nc *NavigationController) classicMaze(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, mazeResponse(maze.Classic(), maze.ClassicStart(), maze.ClassicGoals()))
}

// generatedMaze dumps the maze a "generated" run with the same size and seed navigates.
func (nc *NavigationController) generatedMaze(ctx *gin.Context) {
	size, err := strconv.Atoi(ctx.DefaultQuery("size", "8"))
	if err != nil || size <= 0 || size > maxGeneratedSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
		return
	}
	seed, err := strconv.ParseInt(ctx.DefaultQuery("seed", "1"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
		return
	}

	m, err := maze.Generate(size, seed)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, mazeResponse(m, maze.Position{Row: size - 1, Col: 0}, maze.CenterGoals(size)))
}

func mazeResponse(m *maze.Maze, start maze.Position, goals []maze.Position) *MazeResponse {
	return &MazeResponse{
		Size:   m.Size(),
		Digest: m.Digest(),
		Start:  start,
		Goals:  goals,
		Walls:  m.InteriorWalls(),
		ASCII:  m.String(),
		Table:  maze.FormatWalls(m),
	}
}
