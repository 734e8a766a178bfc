package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	starter "github.com/goliatone/go-auth-starter"
	"github.com/goliatone/go-auth-starter/config"
	"github.com/goliatone/go-auth-starter/mailer"
	"github.com/goliatone/go-auth-starter/template"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("starter"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	if err := run(lgr); err != nil {
		lgr.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(lgr *glog.BaseLogger) error {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid configuration")
	}

	if os.Getenv("DEBUG") != "" {
		fmt.Println(print.MaybeHighlightJSON(cfg))
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := starter.NewRepositoryManager(db)
	repo.MustValidate()

	transport := mailer.NewSMTPTransport(mailer.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
	})

	dispatcher := mailer.New(transport, template.Default(),
		mailer.WithFrom(cfg.Mail.From, cfg.Mail.FromName),
		mailer.WithAppName(cfg.App.Name),
		mailer.WithLogger(printfLogger{lgr.GetLogger("mailer")}),
	)

	// Transport must be reachable before the process accepts traffic.
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := dispatcher.Probe(probeCtx); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "mail transport probe failed")
	}
	defer dispatcher.Close()

	bindings := starter.NewBindings(dispatcher,
		starter.WithBindingsLogger(printfLogger{lgr.GetLogger("hooks")}),
	)

	resolver := starter.NewSessionResolver(
		[]byte(cfg.Auth.Secret),
		repo.Sessions(),
		starter.WithSessionIssuer(cfg.Auth.URL),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: starter.EnvelopeErrorHandler(printfLogger{lgr.GetLogger("http")}),
	})

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.App.FrontendURLs, ","),
		AllowCredentials: true,
	}))

	server := starter.NewHTTPServer(
		placeholderEngine(bindings),
		starter.NewNormalizer(starter.WithNormalizerLogger(printfLogger{lgr.GetLogger("normalizer")})),
		resolver,
		repo,
		starter.WithHTTPLogger(printfLogger{lgr.GetLogger("http")}),
		starter.WithBasePath(cfg.Auth.BasePath),
		starter.WithGlobalPrefix(cfg.App.GlobalPrefix),
	)
	server.Register(app)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(fmt.Sprintf(":%d", cfg.App.Port))
	}()

	lgr.Info("server started", "port", cfg.App.Port)

	select {
	case sig := <-waitExitSignal():
		lgr.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	return app.ShutdownWithTimeout(10 * time.Second)
}

func openDatabase(ctx context.Context, cfg *config.Config, lgr *glog.BaseLogger) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Database.GetDSN())
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to open database")
	}

	persistence.RegisterModel((*starter.User)(nil))
	persistence.RegisterModel((*starter.Session)(nil))
	persistence.RegisterModel((*starter.Account)(nil))
	persistence.RegisterModel((*starter.Verification)(nil))

	client, err := persistence.New(cfg.Database, sqldb, sqlitedialect.New())
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to create persistence client")
	}

	client.SetLogger(lgr.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(starter.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return nil, err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)
	if err := client.ValidateDialects(ctx); err != nil {
		return nil, err
	}

	if err := client.Migrate(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "migrations failed")
	}

	return client.DB(), nil
}

// placeholderEngine answers every lifecycle pass with a domain error until a
// real engine is plugged in. A real engine takes the bindings as its
// notification callbacks; the placeholder holds them so the wiring is in
// place when one lands.
func placeholderEngine(bindings *starter.Bindings) starter.Engine {
	engine := &notConfiguredEngine{bindings: bindings}
	return engine
}

type notConfiguredEngine struct {
	bindings *starter.Bindings
}

func (e *notConfiguredEngine) Handle(ctx context.Context, req *starter.EngineRequest) (any, error) {
	return nil, starter.NewEngineError(starter.CodeBadRequest, "Authentication engine not configured")
}

func waitExitSignal() chan os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return ch
}

// printfLogger adapts the structured logger to the printf surface the
// library types expect.
type printfLogger struct {
	lgr glog.Logger
}

func (p printfLogger) Debug(format string, args ...any) {
	p.lgr.Debug(fmt.Sprintf(format, args...))
}

func (p printfLogger) Info(format string, args ...any) {
	p.lgr.Info(fmt.Sprintf(format, args...))
}

func (p printfLogger) Error(format string, args ...any) {
	p.lgr.Error(fmt.Sprintf(format, args...))
}
