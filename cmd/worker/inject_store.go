package main

import (
	sq "github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/wire"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pandodao/card-transfer/store"
	"github.com/pandodao/card-transfer/store/card"
	"github.com/pandodao/card-transfer/store/db"
	"github.com/pandodao/card-transfer/store/property"
	"github.com/pandodao/card-transfer/store/transfer"
	"github.com/pandodao/card-transfer/store/user"
	"github.com/spf13/viper"
	"github.com/tsenart/nap"
)

var storeSet = wire.NewSet(
	provideDB,
	provideBuilder,
	card.New,
	transfer.New,
	property.New,
	user.New,
)

func provideDB(v *viper.Viper) (*nap.DB, func(), error) {
	driver := v.GetString("db.driver")
	dsn := v.GetString("db.dsn")
	conn, err := nap.Open(driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Migrate(conn.Master(), driver); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return conn, func() { _ = conn.Close() }, nil
}

func provideBuilder(v *viper.Viper) sq.StatementBuilderType {
	return store.Builder(v.GetString("db.driver"))
}
