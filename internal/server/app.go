// Package server wires configuration, record stores, domain services and the
// HTTP API together and runs them until the process is signalled.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/foodstore/internal/common"
	"github.com/dmitrijs2005/foodstore/internal/logging"
	"github.com/dmitrijs2005/foodstore/internal/server/config"
	"github.com/dmitrijs2005/foodstore/internal/server/httpapi"
	"github.com/dmitrijs2005/foodstore/internal/server/messages"
	"github.com/dmitrijs2005/foodstore/internal/server/models"
	"github.com/dmitrijs2005/foodstore/internal/server/orders"
	"github.com/dmitrijs2005/foodstore/internal/server/recordstore"
	"github.com/dmitrijs2005/foodstore/internal/server/users"
	"github.com/dmitrijs2005/foodstore/internal/timex"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	if c.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("secret key: %w", err)
		}
		c.SecretKey = key
		logger.Warn(context.Background(), "no secret key configured, tokens will not survive a restart")
	}

	policy, err := recordstore.ParseCorruptPolicy(c.CorruptPolicy)
	if err != nil {
		return nil, err
	}
	opts := []recordstore.Option{
		recordstore.WithCorruptPolicy(policy),
		recordstore.WithLogger(logger),
	}

	userStore, err := recordstore.New[models.User](c.StorageBackend, c.DataDir, common.UsersCollection, opts...)
	if err != nil {
		return nil, fmt.Errorf("users store: %w", err)
	}
	orderStore, err := recordstore.New[models.Order](c.StorageBackend, c.DataDir, common.OrdersCollection, opts...)
	if err != nil {
		return nil, fmt.Errorf("orders store: %w", err)
	}
	messageStore, err := recordstore.New[models.ContactMessage](c.StorageBackend, c.DataDir, common.MessagesCollection, opts...)
	if err != nil {
		return nil, fmt.Errorf("messages store: %w", err)
	}

	us := users.NewService(userStore, c.BcryptCost, logger)
	ol := orders.NewLedger(orderStore, logger)
	ml := messages.NewLog(messageStore, timex.UTC, logger)

	api := httpapi.NewServer(c.EndpointAddrHTTP, logger, us, ol, ml,
		c.SecretKey, c.AccessTokenValidityDuration,
		userStore, orderStore, messageStore)

	logger.Info(context.Background(), "storage ready",
		"backend", c.StorageBackend, "data_dir", c.DataDir, "corrupt_policy", string(policy))

	return &App{config: c, logger: logger, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.api.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}
