package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ancientlore/cachefs"
	"github.com/ancientlore/gallery/gallery"
	"github.com/ancientlore/gallery/web"
	"github.com/facebookgo/flagenv"
	"github.com/golang/groupcache"
)

// main is where it all begins. 😀
func main() {
	// Setup flags
	var (
		fPort              = flag.Int("port", 8080, "Port to listen on.")
		fReadTimeout       = flag.Duration("readtimeout", 10*time.Second, "HTTP server read timeout.")
		fReadHeaderTimeout = flag.Duration("readheadertimeout", 5*time.Second, "HTTP server read header timeout.")
		fWriteTimeout      = flag.Duration("writetimeout", 30*time.Second, "HTTP server write timeout.")
		fRoot              = flag.String("root", ".", "Root of gallery site; templates are read from its \"templates\" folder.")
		fCache             = flag.Duration("cache", 0, "How long to cache site files; 0 reads the disk on every request.")
		fCacheSize         = flag.Int64("cachesize", 10*1024*1024, "Cache size in bytes.")
	)
	flag.Parse()
	flagenv.Parse()

	// Create HTTP server
	var srv = http.Server{
		Addr:              fmt.Sprintf(":%d", *fPort),
		ReadTimeout:       *fReadTimeout,
		WriteTimeout:      *fWriteTimeout,
		ReadHeaderTimeout: *fReadHeaderTimeout,
	}

	// Open the site folder
	fi, err := os.Stat(*fRoot)
	if err != nil || !fi.IsDir() {
		log.Printf("Cannot use root %q: %v", *fRoot, err)
		os.Exit(1)
	}
	var site fs.FS = os.DirFS(*fRoot)
	log.Printf("Serving templates from %q", *fRoot)

	// Setup groupcache (with no peers) when caching is enabled
	if *fCache > 0 {
		groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })
		site = cachefs.New(site, &cachefs.Config{GroupName: "gallery", SizeInBytes: *fCacheSize, Duration: *fCache})
		log.Printf("Caching site files for %s in %d bytes", *fCache, *fCacheSize)
	}

	// Read settings
	cfg, err := gallery.LoadConfig(site)
	if err != nil {
		log.Printf("Cannot load %s: %s", gallery.ConfigFile, err)
		os.Exit(2)
	}

	// Create the gallery
	g, err := gallery.New(site, cfg.Options()...)
	if err != nil {
		log.Printf("Cannot create gallery: %s", err)
		os.Exit(3)
	}
	c, err := g.Store().List()
	if err != nil {
		log.Printf("Cannot list templates: %s", err)
	} else {
		log.Printf("Found %d templates in %d folders", c.Count(), len(c))
	}

	// Setup handlers
	srv.Handler = web.LogHandler(
		web.HeaderHandler(
			web.ExpiresHandler(
				gziphandler.GzipHandler(
					web.ErrorHandler(g, site),
				),
				time.Duration(cfg.Expires),
			),
			cfg.Headers,
		),
	)
	log.Print("Created handlers")

	// Create signal handler for graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)

		// interrupt signal sent from terminal
		signal.Notify(sigint, os.Interrupt)
		// sigterm signal sent from kubernetes
		signal.Notify(sigint, syscall.SIGTERM)

		<-sigint

		// We received an interrupt signal, shut down.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			// Error from closing listeners, or context timeout:
			log.Printf("HTTP server Shutdown: %v", err)
		}
	}()

	// Listen for requests
	log.Print("Listening for requests")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Printf("HTTP server: %v", err)
	} else {
		log.Print("Goodbye.")
	}
}
