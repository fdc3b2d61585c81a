// Command liarheads serves the Liar Heads game.
//
// It supports three commands:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" – plays a game in the terminal
//
// Settings come from the environment (and an optional .env file); flags
// override them. ngrok tunneling is available for easy external access
// during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/liarheads/api"
	"github.com/wricardo/mcp-training/liarheads/game/config"
	"github.com/wricardo/mcp-training/liarheads/game/engine"
	"github.com/wricardo/mcp-training/liarheads/game/service"
	"github.com/wricardo/mcp-training/liarheads/game/session"
	"github.com/wricardo/mcp-training/liarheads/transport/mcp"
	"github.com/wricardo/mcp-training/liarheads/transport/websocket"
	"github.com/wricardo/mcp-training/liarheads/tui"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Liar Heads Game Server"
)

const (
	cleanupInterval = time.Hour
	shutdownTimeout = 10 * time.Second
)

// main loads .env, then runs the command line.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("error loading .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("liarheads failed")
	}
}

// newApp builds the command tree. Flags are defined once on the root and
// inherited by every subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "liarheads",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Usage: "directory containing game configurations (CONFIG_DIR)"},
			&cli.StringFlag{Name: "default-config", Usage: "config used for new sessions (DEFAULT_CONFIG)"},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error (LOG_LEVEL)"},
			&cli.BoolFlag{Name: "debug", Usage: "debug logging with a console writer (DEBUG)"},
			&cli.IntFlag{Name: "seed", Value: -1, Usage: "seed for reproducible draws, negative for random (GAME_SEED)"},
			&cli.StringFlag{Name: "host", Usage: "HTTP server host (HOST)"},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port (PORT)"},
			&cli.BoolFlag{Name: "ngrok", Usage: "enable ngrok tunnel (NGROK_ENABLED)"},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token (NGROK_AUTHTOKEN)"},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain (NGROK_DOMAIN)"},
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run HTTP server with API, WebSocket, and MCP endpoint (default)",
				Action: serveAction,
			},
			{
				Name:   "mcp",
				Usage:  "run MCP stdio server with internal HTTP server",
				Action: mcpAction,
			},
			{
				Name:      "play",
				Usage:     "play in the terminal",
				ArgsUsage: "[config]",
				Action:    playAction,
			},
		},
	}
}

// resolveSettings reads settings from the environment and applies the
// flags that were set explicitly.
func resolveSettings(cmd *cli.Command) (config.Settings, error) {
	s, err := config.LoadSettings()
	if err != nil {
		return config.Settings{}, err
	}

	if cmd.IsSet("config-dir") {
		s.ConfigDir = cmd.String("config-dir")
	}
	if cmd.IsSet("default-config") {
		s.DefaultConfig = cmd.String("default-config")
	}
	if cmd.IsSet("log-level") {
		s.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("debug") {
		s.Debug = cmd.Bool("debug")
	}
	if cmd.IsSet("seed") {
		s.Seed = int64(cmd.Int("seed"))
	}
	if cmd.IsSet("host") {
		s.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		s.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("ngrok") {
		s.NgrokEnabled = cmd.Bool("ngrok")
	}
	if cmd.IsSet("ngrok-auth") {
		s.NgrokAuthToken = cmd.String("ngrok-auth")
	}
	if cmd.IsSet("ngrok-domain") {
		s.NgrokDomain = cmd.String("ngrok-domain")
	}

	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

// setupLogging configures the global zerolog logger. Logs always go to
// out, never stdout, so the stdio MCP transport stays clean.
func setupLogging(s config.Settings, out io.Writer) error {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	if s.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if s.Debug {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).With().Timestamp().Caller().Logger()
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	}
	return nil
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if err := setupLogging(s, os.Stderr); err != nil {
		return err
	}
	log.Info().Str("version", Version).Str("mode", "serve").Msg("starting " + AppName)

	gameService, err := initializeServices(ctx, s)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	return runHTTPServer(ctx, s, gameService)
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if err := setupLogging(s, os.Stderr); err != nil {
		return err
	}
	log.Info().Str("version", Version).Str("mode", "mcp").Msg("starting " + AppName)

	gameService, err := initializeServices(ctx, s)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	return runStdioMCPWithInternalServer(ctx, s, gameService)
}

func playAction(ctx context.Context, cmd *cli.Command) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	// The terminal belongs to the UI; only debug logs are kept.
	out := io.Discard
	if s.Debug {
		f, err := os.Create("liarheads-debug.log")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := setupLogging(s, out); err != nil {
		return err
	}

	e, err := newPlayEngine(s, cmd.Args().First())
	if err != nil {
		return err
	}
	return tui.Run(ctx, e)
}

// newPlayEngine loads the named config (or the default one) and builds a
// local engine for it.
func newPlayEngine(s config.Settings, name string) (*engine.GameEngine, error) {
	configs, err := config.NewManager(s.ConfigDir, s.DefaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	gameConfig := configs.GetDefault()
	if name != "" {
		if gameConfig, err = configs.LoadConfig(name); err != nil {
			return nil, err
		}
	}

	var opts []engine.EngineOption
	if seed, ok := s.Seeded(); ok {
		opts = append(opts, engine.WithSeed(seed))
	}
	return engine.NewEngine(gameConfig, opts...)
}

// mcpHandler answers JSON-RPC messages posted to /mcp.
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// newRouter mounts the API at the root and the MCP endpoint at /mcp.
func newRouter(gameService service.GameService, hub *websocket.Hub, baseURL string) *http.ServeMux {
	router := http.NewServeMux()
	router.Handle("/", api.NewServer(gameService, hub))
	router.HandleFunc("/mcp", mcpHandler(mcp.NewClient(baseURL)))
	return router
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled it also provisions a public tunnel. It returns when ctx is cancelled.
func runHTTPServer(ctx context.Context, s config.Settings, gameService service.GameService) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	router := newRouter(gameService, hub, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().
			Str("addr", addr).
			Str("api", fmt.Sprintf("http://%s/api", addr)).
			Str("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)).
			Str("mcp", fmt.Sprintf("http://%s/mcp", addr)).
			Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if s.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, s, router)
		}()
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// runNgrok serves handler through an ngrok tunnel until ctx is cancelled.
func runNgrok(ctx context.Context, s config.Settings, handler http.Handler) {
	authToken := s.NgrokAuthToken
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTH_TOKEN")
	}
	if authToken == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if s.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(s.NgrokDomain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	log.Info().Str("domain", s.NgrokDomain).Msg("starting ngrok tunnel")
	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	url := tun.URL()
	log.Info().
		Str("url", url).
		Str("api", url+"/api").
		Str("mcp", url+"/mcp").
		Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// initializeServices wires session/config managers and the game service.
// It also starts a background cleanup routine, bound to ctx, to prune idle sessions.
func initializeServices(ctx context.Context, s config.Settings) (service.GameService, error) {
	configManager, err := config.NewManager(s.ConfigDir, s.DefaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	var opts []session.Option
	if seed, ok := s.Seeded(); ok {
		opts = append(opts, session.WithSeed(seed))
		log.Info().Uint64("seed", seed).Msg("seeded sessions")
	}
	sessionManager := session.NewManager(opts...)
	sessionManager.StartCleanup(ctx, cleanupInterval, s.SessionTTL)

	log.Info().
		Str("config_dir", s.ConfigDir).
		Int("configs", configManager.Count()).
		Str("default", configManager.GetDefault().Name).
		Msg("services initialized")

	return service.NewGameService(sessionManager, configManager), nil
}

// apiAvailable reports whether an API server answers at baseURL.
func apiAvailable(baseURL string) bool {
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at s.APIBaseURL; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, s config.Settings, gameService service.GameService) error {
	baseURL := s.APIBaseURL
	log.Info().Str("url", baseURL).Msg("checking for external API server")

	if apiAvailable(baseURL) {
		log.Info().Str("url", baseURL).Msg("external API server found, using it for MCP")
	} else {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = fmt.Sprintf("http://%s", listener.Addr().String())

		hub := websocket.NewHub()
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()
		defer httpServer.Close()

		log.Info().Str("url", baseURL).Msg("started internal HTTP server for MCP stdio")
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Info().Str("api", baseURL).Msg("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
