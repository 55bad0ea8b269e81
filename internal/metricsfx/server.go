package metricsfx

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/yurykabanov/snapaudit/pkg/http/middleware"
)

const (
	ConfigServerAddress      = "metrics.address"
	ConfigServerTimeoutRead  = "metrics.timeout.read"
	ConfigServerTimeoutWrite = "metrics.timeout.write"
	ConfigServerLogRequests  = "metrics.log.requests"
)

type HttpServerConfig struct {
	Address           string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	EnableRequestsLog bool
}

func HttpServerConfigProvider(v *viper.Viper) (*HttpServerConfig, error) {
	return &HttpServerConfig{
		Address:           v.GetString(ConfigServerAddress),
		ReadTimeout:       v.GetDuration(ConfigServerTimeoutRead),
		WriteTimeout:      v.GetDuration(ConfigServerTimeoutWrite),
		EnableRequestsLog: v.GetBool(ConfigServerLogRequests),
	}, nil
}

func HttpServer(
	config *HttpServerConfig,
	logger *logrus.Logger,
	defaultLogger *log.Logger,
	router *mux.Router,
) (*http.Server, error) {
	var h http.Handler = router

	if config.EnableRequestsLog {
		h = middleware.WithRequestLogging(router, logger)
	}

	h = middleware.WithRequestId(h, middleware.DefaultRequestIdProvider)

	return &http.Server{
		Addr:         config.Address,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		ErrorLog:     defaultLogger,
		Handler:      h,
	}, nil
}

func HttpRouter() (*mux.Router, error) {
	return mux.NewRouter(), nil
}

// RunServer serves the compliance endpoint in daemon mode. One-shot runs
// audit and exit, so no listener is bound for them.
func RunServer(
	lc fx.Lifecycle,
	v *viper.Viper,
	logger *logrus.Logger,
	config *HttpServerConfig,
	server *http.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if v.GetBool("once") {
				logger.Debug("Compliance endpoint disabled for one-shot run")
				return nil
			}

			listener, err := net.Listen("tcp", config.Address)
			if err != nil {
				return err
			}

			go server.Serve(listener)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
