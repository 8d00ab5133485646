package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/infrastructure/api"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/services"
	"github.com/iota-uz/restaurant-admin/pkg/backend"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/configuration"
	"github.com/iota-uz/restaurant-admin/pkg/eventbus"
	"github.com/iota-uz/restaurant-admin/pkg/session"
)

type cliEnv struct {
	Token    string `env:"BACKOFFICE_TOKEN"`
	UserType string `env:"BACKOFFICE_USER_TYPE" envDefault:"admin"`
}

type rootOptions struct {
	token    string
	userType string
	baseURL  string
}

type backoffice struct {
	orders      *services.OrderService
	departments *services.DepartmentService
	dateLayout  string
}

// factory builds the services a command talks to.
type factory func(opts *rootOptions) (*backoffice, error)

func newRootCmd(build factory) *cobra.Command {
	var defaults cliEnv
	_ = env.Parse(&defaults)
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "backoffice",
		Short:         "Manage restaurant orders and departments from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(opts.token) == "" {
				return withCode(exitUsage, fmt.Errorf("--token or BACKOFFICE_TOKEN is required"))
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.token, "token", defaults.Token, "Backend authorization token")
	cmd.PersistentFlags().StringVar(&opts.userType, "user-type", defaults.UserType, "User type the calls are authorized as")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Backend base URL (defaults to BACKEND_BASE_URL)")

	cmd.AddCommand(newOrdersCmd(opts, build))
	cmd.AddCommand(newDepartmentsCmd(opts, build))
	return cmd
}

func defaultFactory(opts *rootOptions) (*backoffice, error) {
	conf := configuration.Use()
	backendOpts := conf.Backend
	if opts.baseURL != "" {
		backendOpts.BaseURL = opts.baseURL
		if err := backendOpts.Validate(); err != nil {
			return nil, withCode(exitUsage, err)
		}
	}
	client := backend.NewClient(backendOpts, backend.WithLogger(conf.Logger()))
	bus := eventbus.NewEventPublisher(conf.Logger())
	return &backoffice{
		orders: services.NewOrderService(
			api.NewOrderRepository(client, conf.Export.Currency), bus, 0, conf.Export.DateLayout,
		),
		departments: services.NewDepartmentService(
			api.NewDepartmentRepository(client), bus, 0, conf.Export.DateLayout,
		),
		dateLayout: conf.Export.DateLayout,
	}, nil
}

// sessionContext carries the token and user type the way a logged-in browser
// session would.
func sessionContext(ctx context.Context, opts *rootOptions) context.Context {
	s := session.New(strings.TrimSpace(opts.token), strings.TrimSpace(opts.userType), "en", time.Hour)
	return composables.WithSession(ctx, s)
}

func Execute() {
	if err := newRootCmd(defaultFactory).Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
