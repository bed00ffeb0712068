package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/pm-portfolio/internal/config"
	"github.com/Zachkp/pm-portfolio/internal/contact"
	"github.com/Zachkp/pm-portfolio/internal/content"
	"github.com/Zachkp/pm-portfolio/internal/site"
	"github.com/Zachkp/pm-portfolio/internal/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var data *content.Content
	if cfg.ContentPath != "" {
		data, err = content.LoadFile(cfg.ContentPath, cfg.ImageDomains)
	} else {
		data, err = content.Default(cfg.ImageDomains)
	}
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	var sender contact.Sender
	if cfg.SMTPConfigured() {
		sender = contact.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ContactTo)
		log.Printf("Contact form delivers to %s via %s", cfg.ContactTo, cfg.SMTPHost)
	} else {
		sender = contact.StubSender{Delay: cfg.StubDelay}
		log.Println("SMTP not configured: contact messages are logged, not sent")
	}

	srv, err := site.New(cfg, data, contact.NewService(sender, db, cfg.ContactTimeout), db)
	if err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	// Visit writes must finish before the deferred db.Close runs.
	defer srv.Drain()
	srv.Prune(ctx)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
