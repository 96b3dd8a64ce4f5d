package database

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const driverName = "mysql"

type Config struct {
	Host           string        `envconfig:"HOST"`
	Port           int           `envconfig:"PORT" default:"3306" validate:"min=1,max=65535"`
	User           string        `envconfig:"USER"`
	Password       string        `envconfig:"PASSWORD"`
	Name           string        `envconfig:"NAME"`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s" validate:"gt=0"`
	WriteTimeout   time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s" validate:"gt=0"`
	// MaxIdleConns of zero closes every connection once its request releases it.
	MaxIdleConns int `envconfig:"MAX_IDLE_CONNS" default:"0" validate:"min=0"`
	MaxOpenConns int `envconfig:"MAX_OPEN_CONNS" default:"0" validate:"min=0"`
}

func (cfg Config) DSN() string {
	dsn := mysql.NewConfig()
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.DBName = cfg.Name
	dsn.Timeout = cfg.ConnectTimeout
	dsn.WriteTimeout = cfg.WriteTimeout
	dsn.Collation = "utf8mb4_unicode_ci"
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}

// Open prepares a handle without dialing; connections are established lazily
// by Connx on the request path.
func Open(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "could not open mysql handle")
	}
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	return db, nil
}

func Ping(ctx context.Context, db *sqlx.DB) error {
	conn, err := db.Connx(ctx)
	if err != nil {
		return errors.Wrap(err, "could not connect to mysql")
	}
	defer conn.Close()
	return errors.Wrap(conn.PingContext(ctx), "mysql ping failed")
}
