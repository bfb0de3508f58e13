package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	corepersistence "github.com/meterdesk/meterdesk/modules/core/infrastructure/persistence"
	corecontrollers "github.com/meterdesk/meterdesk/modules/core/presentation/controllers"
	coreservices "github.com/meterdesk/meterdesk/modules/core/services"
	wopersistence "github.com/meterdesk/meterdesk/modules/workorders/infrastructure/persistence"
	wocontrollers "github.com/meterdesk/meterdesk/modules/workorders/presentation/controllers"
	woservices "github.com/meterdesk/meterdesk/modules/workorders/services"
	"github.com/meterdesk/meterdesk/pkg/configuration"
	"github.com/meterdesk/meterdesk/pkg/eventbus"
	"github.com/meterdesk/meterdesk/pkg/httpapi"
	"github.com/meterdesk/meterdesk/pkg/metrics"
	"github.com/meterdesk/meterdesk/pkg/middleware"
	"github.com/meterdesk/meterdesk/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Pool          *pgxpool.Pool
}

// Default assembles the production server: middleware stack, both modules'
// services wired to postgres, and every REST controller.
func Default(options *DefaultOptions) *server.HTTPServer {
	conf := options.Configuration

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.WithPool(options.Pool),
		middleware.Cors(strings.Split(conf.AllowedOrigins, ",")...),
		middleware.RequestParams(),
	}

	bus := eventbus.NewEventPublisher(options.Logger)

	userService := coreservices.NewUserService(corepersistence.NewUserRepository(), bus)
	orgService := coreservices.NewOrgService(
		corepersistence.NewGroupRepository(),
		corepersistence.NewProjectRepository(),
		corepersistence.NewAccessLevelRepository(),
	)
	directory := coreservices.NewDirectoryService(userService, orgService)
	prefs := corepersistence.NewPreferenceRepository()

	userQuery := coreservices.NewUserQueryService(
		userService, orgService, prefs,
		conf.Report.Location(), conf.Report.LanguageTag(),
	)

	refService := woservices.NewReferenceService(
		wopersistence.NewStatusRepository(),
		wopersistence.NewServiceTypeRepository(),
		wopersistence.NewMeterTypeRepository(),
		wopersistence.NewTroubleCodeRepository(),
	)
	woService := woservices.NewWorkOrderService(wopersistence.NewWorkOrderRepository(), bus)
	woQuery := woservices.NewWorkOrderQueryService(
		wopersistence.NewWorkOrderRepository(), refService, directory, prefs,
		conf.Report.Location(), conf.Report.LanguageTag(),
	)

	controllers := []server.Controller{
		wocontrollers.NewWorkOrdersController(woService, woQuery),
		wocontrollers.NewReferenceController(refService),
		corecontrollers.NewUsersController(userService, userQuery),
		corecontrollers.NewOrgController(orgService),
	}
	if conf.Prometheus.Enabled {
		controllers = append(controllers, metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	return server.NewHTTPServer(controllers, middlewares, notFound, methodNotAllowed)
}
