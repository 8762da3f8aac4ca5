package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/kobo-export/internal/config"
	http_controllers "github.com/mrlokans/kobo-export/internal/http"
	"github.com/mrlokans/kobo-export/internal/kobo"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting viewer at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run materializes the catalog and item list from the device database,
// then serves the read-only viewer over them. Everything is loaded before
// the first request is accepted and never mutated afterwards.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting kobo-export viewer v%s", version)

	repo := kobo.NewRepository(cfg.Kobo.DatabasePath)

	catalog, err := kobo.LoadCatalog(repo)
	if err != nil {
		log.Fatalf("Failed to read the device database: %v", err)
	}

	items, err := kobo.ExtractItems(repo, catalog, kobo.Filters{})
	if err != nil {
		log.Fatalf("Failed to extract items: %v", err)
	}

	log.Printf("Loaded %d books and %d items from %s",
		catalog.Len(), len(items), cfg.Kobo.DatabasePath)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:       catalog,
		Items:         items,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		Version:       version,
	})

	Serve(router, cfg)
}
