package vspherefx

import (
	"context"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/vim25/soap"
	"go.uber.org/fx"
)

const (
	ConfigVsphereServer   = "server"
	ConfigVsphereUsername = "username"
	ConfigVspherePassword = "password"
	ConfigVsphereInsecure = "insecure"
)

const connectTimeout = 30 * time.Second

type ConnectionConfig struct {
	Server   string
	Username string
	Password string
	Insecure bool
}

func ConnectionConfigProvider(v *viper.Viper) (*ConnectionConfig, error) {
	config := &ConnectionConfig{
		Server:   v.GetString(ConfigVsphereServer),
		Username: v.GetString(ConfigVsphereUsername),
		Password: v.GetString(ConfigVspherePassword),
		Insecure: v.GetBool(ConfigVsphereInsecure),
	}

	if config.Server == "" {
		return nil, errors.New("vSphere server address is required")
	}

	return config, nil
}

func VsphereClient(config *ConnectionConfig, logger *logrus.Logger) (*govmomi.Client, error) {
	logger.WithField("server", config.Server).Debug("Connecting to vSphere")

	u, err := soap.ParseURL(config.Server)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to parse vSphere server address")
	}

	if config.Username != "" {
		u.User = url.UserPassword(config.Username, config.Password)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := govmomi.NewClient(ctx, u, config.Insecure)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to connect to vSphere")
	}

	return client, nil
}

func CloseVsphereClient(lc fx.Lifecycle, client *govmomi.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Logout(ctx)
		},
	})
}
