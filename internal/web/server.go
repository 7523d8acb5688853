package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mvreilly/recipebox/internal/database"
	"github.com/mvreilly/recipebox/internal/recipe"
	"github.com/mvreilly/recipebox/internal/urlutil"
)

//go:embed templates/*.html
var templateFS embed.FS

// TitleFetcher resolves a recipe page to its title. An empty return
// means no title could be determined.
type TitleFetcher interface {
	FetchTitle(ctx context.Context, url string) string
}

// Server is the local web UI for browsing the recipe collection.
type Server struct {
	db       *database.DB
	registry *recipe.Registry
	titles   TitleFetcher
	engine   *gin.Engine
}

// New creates the web server and wires up all routes.
func New(db *database.DB, registry *recipe.Registry, titles TitleFetcher) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		db:       db,
		registry: registry,
		titles:   titles,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", s.handleIndex)
	engine.GET("/recipes/new", s.handleNewForm)
	engine.POST("/recipes/new", s.handleCreate)
	engine.GET("/recipes/:id", s.handleShow)
	engine.GET("/api/recipes", s.handleAPIList)

	s.engine = engine
	return s
}

// Handler exposes the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts serving on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Query("q")

	var (
		recipes []database.Recipe
		err     error
	)
	if query != "" {
		recipes, err = s.db.Search(ctx, query)
	} else {
		recipes, err = s.db.ListRecipes(ctx, database.ListOptions{})
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load recipes: %v", err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Recipes": recipes,
		"Query":   query,
	})
}

func (s *Server) handleShow(c *gin.Context) {
	r, err := s.db.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load recipe: %v", err)
		return
	}
	if r == nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return
	}

	c.HTML(http.StatusOK, "show.html", gin.H{"Recipe": r})
}

func (s *Server) handleNewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "new.html", gin.H{})
}

func (s *Server) handleCreate(c *gin.Context) {
	ctx := c.Request.Context()
	rawURL := c.PostForm("url")
	title := c.PostForm("title")

	if rawURL == "" {
		c.HTML(http.StatusBadRequest, "new.html", gin.H{
			"Error": "A recipe URL is required.",
		})
		return
	}

	provider := s.registry.Find(rawURL)
	if provider == nil {
		c.HTML(http.StatusBadRequest, "new.html", gin.H{
			"Error": "That URL does not belong to a known recipe source.",
			"URL":   rawURL,
			"Title": title,
		})
		return
	}

	if title == "" {
		title = s.titles.FetchTitle(ctx, rawURL)
	}
	if title == "" {
		title = urlutil.TitleFromPath(rawURL)
	}
	if title == "" {
		c.HTML(http.StatusBadRequest, "new.html", gin.H{
			"Error": "Could not determine a title; please provide one.",
			"URL":   rawURL,
		})
		return
	}

	homepage := urlutil.Homepage(rawURL)
	r := &database.Recipe{
		MessageID: database.ManualMessageID,
		Source:    provider.Name(),
		Title:     title,
		URL:       rawURL,
		Homepage:  &homepage,
		CreatedAt: time.Now(),
	}

	if _, err := s.db.InsertIfAbsent(ctx, r); err != nil {
		c.String(http.StatusInternalServerError, "failed to save recipe: %v", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleAPIList(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		recipes []database.Recipe
		err     error
	)
	if q := c.Query("q"); q != "" {
		recipes, err = s.db.Search(ctx, q)
	} else {
		recipes, err = s.db.ListRecipes(ctx, database.ListOptions{
			Source: c.Query("source"),
		})
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if recipes == nil {
		recipes = []database.Recipe{}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
