package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/kobo-export/internal/entities"
	"github.com/mrlokans/kobo-export/internal/kobo"
)

// RouterConfig carries the viewer's dependencies. The catalog and item
// list are built once by the entrypoint and passed in explicitly; there is
// no ambient shared instance.
type RouterConfig struct {
	Catalog       *kobo.Catalog
	Items         []entities.Item
	TemplatesPath string
	StaticPath    string
	Version       string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	funcMap := template.FuncMap{
		"formatDate": entities.FormatDate,
	}
	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	controller := NewViewerController(cfg.Catalog, cfg.Items)

	router.GET("/", controller.BooksPage)
	router.GET("/books/:id", controller.BookPage)

	router.GET("/api/books", controller.ListBooks)
	router.GET("/api/books/:id", controller.GetBook)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.Version})
	})

	return router
}
