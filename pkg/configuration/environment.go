package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/meterdesk/meterdesk/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"meterdesk"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"meterdesk"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

// ReportOptions governs how list views and exports interpret timestamps and
// compare strings. Filtering and display share one timezone so a date-range
// filter and the rendered cell never disagree.
type ReportOptions struct {
	Timezone string `env:"REPORT_TIMEZONE" envDefault:"Local"`
	Locale   string `env:"REPORT_LOCALE" envDefault:"en"`

	location *time.Location
	tag      language.Tag
}

func (r *ReportOptions) load() error {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", r.Timezone, err)
	}
	r.location = loc

	tag, err := language.Parse(r.Locale)
	if err != nil {
		return fmt.Errorf("invalid REPORT_LOCALE %q: %w", r.Locale, err)
	}
	r.tag = tag
	return nil
}

func (r *ReportOptions) Location() *time.Location {
	return r.location
}

func (r *ReportOptions) LanguageTag() language.Tag {
	return r.tag
}

type Configuration struct {
	Database      DatabaseOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions
	Report        ReportOptions

	MigrationsEnabled bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
	ServerPort        int    `env:"PORT" envDefault:"3200"`
	GoAppEnvironment  string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress     string `env:"-"`
	Origin            string `env:"ORIGIN" envDefault:"http://localhost:3200"`
	AllowedOrigins    string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	LogPath           string `env:"LOG_PATH" envDefault:"./logs/app.log"`

	// The gateway in front of this service resolves the session and forwards
	// the acting user in this header.
	UserIDHeader string `env:"USER_ID_HEADER" envDefault:"X-User-Id"`
	// Looked up in the request; a random uuidv4 is generated when absent.
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// Looked up in the request; request.RemoteAddr is used when absent.
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production {
		return "https"
	}
	return "http"
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.Report.load(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	return nil
}

func (c *Configuration) Unload() {
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
}
