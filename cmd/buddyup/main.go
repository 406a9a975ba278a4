package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/buddyup-app/go-buddyup/internal/api"
	"github.com/buddyup-app/go-buddyup/internal/config"
	"github.com/buddyup-app/go-buddyup/internal/realtime"
	"github.com/buddyup-app/go-buddyup/internal/session"
	"github.com/buddyup-app/go-buddyup/internal/stats"
	"github.com/buddyup-app/go-buddyup/internal/tokenstore"
	"github.com/joho/godotenv"
)

var (
	configPath string
	baseURL    string
	wsURL      string
	stateDir   string
	email      string
	password   string
	guest      bool
)

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".buddyup"
	}
	return filepath.Join(home, ".buddyup")
}

func loadConfig(logger *log.Logger) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}

	if err := godotenv.Load(); err == nil {
		logger.Println("loaded environment from .env")
	}

	if v := os.Getenv("BUDDYUP_BASE_URL"); v != "" && baseURL == "" {
		baseURL = v
	}
	if v := os.Getenv("BUDDYUP_WS_URL"); v != "" && wsURL == "" {
		wsURL = v
	}

	return config.NewConfig(baseURL, wsURL, stateDir)
}

func main() {
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&baseURL, "base-url", "", "backend base URL, e.g. https://api.buddyup.example")
	flag.StringVar(&wsURL, "ws-url", "", "realtime endpoint, e.g. wss://api.buddyup.example/ws")
	flag.StringVar(&stateDir, "state-dir", defaultStateDir(), "directory for persisted client state")
	flag.StringVar(&email, "email", "", "log in with this email")
	flag.StringVar(&password, "password", "", "password for -email")
	flag.BoolVar(&guest, "guest", false, "continue as guest")
	flag.Parse()

	logger := log.New(os.Stderr, "[buddyup] ", log.LstdFlags)

	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Fatal("config:", err)
	}

	store, err := tokenstore.NewFileStore(cfg.StateDir, logger)
	if err != nil {
		logger.Fatal("token store:", err)
	}

	deviceID, err := store.DeviceID()
	if err != nil {
		logger.Fatal("device id:", err)
	}

	statsUpdater := stats.NewStatsUpdater()
	statsUpdater.Run()
	defer statsUpdater.Stop()

	client := api.NewClient(cfg.BaseURL, &http.Client{Timeout: cfg.RequestTimeout}, deviceID, statsUpdater, logger)

	factory := func(ctx context.Context, token string) (session.RealtimeChannel, error) {
		return realtime.Dial(ctx, cfg.WebsocketURL, token, cfg.TypingTTL, statsUpdater, logger)
	}

	ctrl := session.NewController(client, store, factory, statsUpdater, cfg, logger)

	ctx := context.Background()
	if err := ctrl.Bootstrap(ctx); err != nil {
		logger.Fatal("bootstrap:", err)
	}

	if !ctrl.IsAuthenticated() {
		switch {
		case email != "" && password != "":
			if err := ctrl.Login(ctx, email, password); err != nil {
				logger.Fatal("login:", err)
			}
			logger.Printf("logged in as %s", ctrl.User().Name)
		case guest:
			ctrl.ContinueAsGuest()
			logger.Println("continuing as guest")
		default:
			logger.Fatal("no session: pass -email/-password or -guest")
		}
	} else if ctrl.IsOffline() {
		logger.Println("offline: showing cached session")
	} else {
		logger.Printf("resumed session for %s", ctrl.User().Name)
	}

	if err := ctrl.EnsureDataLoaded(ctx); err != nil {
		logger.Println("data load:", err)
	}

	fmt.Println("Activities:")
	for _, a := range ctrl.Activities() {
		fmt.Printf("  [%s] %s @ %s (%s)\n", a.Status, a.Title, a.Location.Name, a.StartsAt.Format("Jan 2 15:04"))
	}

	fmt.Println("Chats:")
	for _, c := range ctrl.Chats() {
		preview := ""
		if c.LastMessage != nil {
			preview = c.LastMessage.Content
		}
		fmt.Printf("  %s (%d unread): %s\n", c.Id, c.UnreadCount, preview)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	logger.Println("tailing realtime events, ctrl-c to exit")
	sig := <-sigs
	logger.Printf("received signal: %s\n", sig)

	ctrl.Shutdown()
	logger.Println("shutdown complete")
}
