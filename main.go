package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbolis/crew-survey/app"
	"github.com/mbolis/crew-survey/config"
	"github.com/mbolis/crew-survey/log"
	"github.com/mbolis/crew-survey/routes"
	"github.com/mbolis/crew-survey/telegram"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api, err := telegram.Connect(cfg.TelegramToken)
	if err != nil {
		log.Fatal("main.telegram:", err)
	}
	log.Infof("Authorized as @%s", api.Self.UserName)

	svc, closer, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("main.backend:", err)
	}
	defer closer.Close()
	log.Infof("Storing submissions in %s backend", cfg.Backend)

	bot := telegram.New(api, svc.Engine)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return bot.Run(ctx, api)
	})
	group.Go(func() error {
		return runServer(ctx, cfg, routes.Wire())
	})

	err = group.Wait()
	if err != nil {
		log.Error("main.run:", err)
	}
	log.Info("Stopped")
}

func runServer(ctx context.Context, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	log.Info("Listening on " + cfg.Url())
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
