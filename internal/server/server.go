package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/lists/internal/database"
	"github.com/mdouchement/lists/internal/lists"
	"github.com/mdouchement/lists/internal/server/middlewares"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// An IOC is an Iversion Of Control pattern used to init the server package.
type IOC struct {
	Version  string
	Database database.Client
	// Index params
	ListIndex     string
	ListItemIndex string
	// Acting user params
	UserHeader  string
	DefaultUser string
	// Streaming params
	ImportBatchSize int
	ExportPageSize  int
	// Gatherer exposes /metrics when not nil.
	Gatherer prometheus.Gatherer
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl IOC) *echo.Echo {
	if ctrl.ListIndex == "" {
		ctrl.ListIndex = lists.DefaultListIndex
	}
	if ctrl.ListItemIndex == "" {
		ctrl.ListItemIndex = lists.DefaultListItemIndex
	}
	if ctrl.UserHeader == "" {
		ctrl.UserHeader = "X-Remote-User"
	}
	if ctrl.DefaultUser == "" {
		ctrl.DefaultUser = "elastic"
	}

	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	engine.Validator = middlewares.NewValidator()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	router := engine.Group("")

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	if ctrl.Gatherer != nil {
		router.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(ctrl.Gatherer, promhttp.HandlerOpts{})))
	}

	scoper := scoper{
		db:            ctrl.Database,
		listIndex:     ctrl.ListIndex,
		listItemIndex: ctrl.ListItemIndex,
	}
	list := &list{
		scoper: scoper,
	}
	item := &item{
		scoper:          scoper,
		importBatchSize: ctrl.ImportBatchSize,
		exportPageSize:  ctrl.ExportPageSize,
	}

	// The same API is served for the default space and for each named space.
	for _, prefix := range []string{"/api", "/s/:" + middlewares.SpaceParam + "/api"} {
		api := router.Group(prefix)
		api.Use(middlewares.CurrentSpace())
		api.Use(middlewares.CurrentUser(ctrl.UserHeader, ctrl.DefaultUser))

		//
		// list handlers
		//
		api.POST("/lists", list.Create)
		api.GET("/lists", list.Show)
		api.PATCH("/lists", list.Update)
		api.DELETE("/lists", list.Delete)

		//
		// list item handlers
		//
		api.POST("/lists/items", item.Create)
		api.GET("/lists/items", item.Show)
		api.DELETE("/lists/items", item.Delete)
		api.POST("/lists/items/_import", item.Import)
		api.POST("/lists/items/_export", item.Export)
	}

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

// A scoper builds the lists.Scope of a request.
type scoper struct {
	db            database.Client
	listIndex     string
	listItemIndex string
}

func (s scoper) scope(c echo.Context) lists.Scope {
	return lists.NewScope(s.db, s.listIndex, s.listItemIndex, currentSpaceID(c), currentUser(c))
}

func currentUser(c echo.Context) string {
	user, _ := c.Get(middlewares.CurrentUserContextKey).(string)
	return user
}

func currentSpaceID(c echo.Context) string {
	space, _ := c.Get(middlewares.CurrentSpaceContextKey).(string)
	return space
}
