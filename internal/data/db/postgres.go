package db

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// SQLitePath is used when Driver is sqlite.
	SQLitePath string
	// QueryTimeout becomes the Postgres statement_timeout.
	QueryTimeout time.Duration
}

func (c Config) postgresDSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	q := url.Values{}
	q.Set("sslmode", sslMode)
	if c.QueryTimeout > 0 {
		// pgx forwards unknown DSN params as session runtime params.
		q.Set("statement_timeout", strconv.FormatInt(c.QueryTimeout.Milliseconds(), 10))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Service owns the process-wide store handle. It is opened once at startup
// and closed on shutdown.
type Service struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

func NewService(logg *logger.Logger, cfg Config) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gormCfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormLog,
		NowFunc:                                  NowUTC,
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "", DriverPostgres:
		driver = DriverPostgres
		db, err = gorm.Open(postgres.Open(cfg.postgresDSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
	case DriverSQLite:
		db, err = OpenSQLite(cfg.SQLitePath, gormCfg)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (allowed: %q, %q)", cfg.Driver, DriverPostgres, DriverSQLite)
	}

	serviceLog.Info("Store connected", "driver", driver)
	return &Service{db: db, driver: driver, log: serviceLog}, nil
}

// OpenSQLite opens a file-backed SQLite store. SQLite allows a single writer,
// so the pool is pinned to one connection and concurrent callers queue in
// database/sql instead of failing with SQLITE_BUSY.
func OpenSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if strings.TrimSpace(path) == "" {
		path = "smarthustle.db"
	}
	if gormCfg == nil {
		gormCfg = &gorm.Config{TranslateError: true, NowFunc: NowUTC}
	}
	dsn := path + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// NowUTC stamps created_at/updated_at. Window queries compare against UTC
// bounds, and SQLite compares timestamps as text.
func NowUTC() time.Time { return time.Now().UTC() }

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Driver() string { return s.driver }

func (s *Service) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.log.Info("Closing store")
	return sqlDB.Close()
}
