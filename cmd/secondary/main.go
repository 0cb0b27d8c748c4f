// cmd/secondary is the entrypoint for a replicated log secondary node.
//
// It accepts an optional positional port argument, matching the source's
// "no flags other than a positional port" convention, with PORT and
// DELAY_MS still readable from the environment. It always listens on
// 0.0.0.0.
//
// Example:
//
//	DELAY_MS=100 ./secondary 8001
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppriyankuu/replicated-log/internal/api"
	"github.com/ppriyankuu/replicated-log/internal/config"
	"github.com/ppriyankuu/replicated-log/internal/secondary"
)

func main() {
	port := config.Int("PORT", 8001)
	if len(os.Args) > 1 {
		if p, err := strconv.Atoi(os.Args[1]); err == nil {
			port = p
		}
	}
	delayMs := config.Int("DELAY_MS", 0)

	log.Printf("secondary starting: port=%d delay_ms=%d", port, delayMs)

	state := secondary.New(time.Duration(delayMs) * time.Millisecond)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.Logger("secondary"), api.Recovery("secondary"))
	api.NewSecondaryHandler(state).Register(router)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + strconv.Itoa(port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("secondary listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("secondary server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down secondary")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("secondary shutdown error: %v", err)
	}
}
