// cmd/master is the entrypoint for the replicated log's master node.
//
// Configuration is read from the environment only; the binary takes no
// command-line flags.
//
// Example — single master with two secondaries:
//
//	SECONDARIES=http://sec1:8001,http://sec2:8002 PORT=8000 ./master
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
	"github.com/ppriyankuu/replicated-log/internal/master"
)

func main() {
	host := config.String("HOST", "0.0.0.0")
	port := config.Int("PORT", 8000)
	secondaries := config.StringList("SECONDARIES")
	hbInterval := config.Seconds("HEARTBEAT_INTERVAL", 2*time.Second)
	hbTimeout := config.Seconds("HEARTBEAT_TIMEOUT", 5*time.Second)
	suspectThreshold := config.Int("SUSPECTED_THRESHOLD", 2)
	unhealthyThreshold := config.Int("UNHEALTHY_THRESHOLD", 5)

	log.Printf("master starting: addr=%s:%d secondaries=%v hb_interval=%s hb_timeout=%s",
		host, port, secondaries, hbInterval, hbTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state := master.New(ctx, secondaries, hbInterval, hbTimeout, suspectThreshold, unhealthyThreshold)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.Logger("master"), api.Recovery("master"))
	api.NewMasterHandler(state).Register(router)

	// Blocking writes can wait as long as master.writeConcernTimeout allows
	// (max(60s, required*30s)); give the server headroom above the worst
	// case instead of hardcoding 60s.
	maxWriteConcernWait := time.Duration(len(secondaries)+1) * 30 * time.Second
	if maxWriteConcernWait < 60*time.Second {
		maxWriteConcernWait = 60 * time.Second
	}

	srv := &http.Server{
		Addr:         host + ":" + strconv.Itoa(port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: maxWriteConcernWait + 10*time.Second,
	}

	go func() {
		log.Printf("master listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("master server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down master")
	cancel() // stop health monitor and replication workers

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("master shutdown error: %v", err)
	}
}
