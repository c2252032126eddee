package main

import (
	"database/sql"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"truco-server/internal/config"
	"truco-server/pkg/db"
)

var wait = flag.Duration("wait", time.Second*10, "how long to wait for the database to accept connections")

func main() {
	flag.Parse()

	dbh := waitForDB(db.DSN(), *wait)
	defer dbh.Close()

	path := config.Instance().MigrationsPath
	if err := db.MigrateDB(dbh, path); err != nil {
		logrus.WithError(err).Fatal("could not migrate the database")
	}

	logrus.WithField("migrationsPath", path).Info("database is up to date")
}

// waitForDB retries until the database answers or the timeout expires
func waitForDB(dsn string, timeout time.Duration) *sql.DB {
	deadline := time.Now().Add(timeout)
	for {
		dbh, err := db.Open(dsn)
		if err == nil {
			return dbh
		}

		if time.Now().After(deadline) {
			logrus.WithError(err).Fatal("could not connect to database")
		}

		logrus.WithError(err).Debug("database is not ready")
		time.Sleep(time.Millisecond * 500)
	}
}
