package main

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/wire"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store"
	"github.com/pandodao/card-transfer/store/card"
	"github.com/pandodao/card-transfer/store/db"
	"github.com/pandodao/card-transfer/store/session"
	"github.com/pandodao/card-transfer/store/transfer"
	"github.com/pandodao/card-transfer/store/user"
	"github.com/pandodao/card-transfer/store/verification"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/tsenart/nap"
)

var storeSet = wire.NewSet(
	provideDB,
	provideBuilder,
	provideRedis,
	provideVerificationStore,
	provideSessionStore,
	card.New,
	transfer.New,
	user.New,
)

func provideDB(v *viper.Viper) (*nap.DB, func(), error) {
	driver := v.GetString("db.driver")
	dsn := v.GetString("db.dsn")

	for _, replica := range v.GetStringSlice("db.replicas") {
		dsn += ";" + replica
	}

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

// provideRedis returns a nil client unless auth state is kept in redis.
func provideRedis(v *viper.Viper) (redis.UniversalClient, func(), error) {
	if v.GetString("auth.store") != "redis" {
		return nil, func() {}, nil
	}

	addr := v.GetString("redis.addr")
	if addr == "" {
		return nil, nil, fmt.Errorf("redis.addr is required when auth.store is redis")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	})
	return client, func() { _ = client.Close() }, nil
}

const memoryStoreSize = 4096

func provideVerificationStore(v *viper.Viper, client redis.UniversalClient) core.VerificationStore {
	if client != nil {
		return verification.NewRedis(client)
	}

	return verification.NewMemory(memoryStoreSize, v.GetDuration("auth.verification_ttl"))
}

func provideSessionStore(v *viper.Viper, client redis.UniversalClient) core.SessionStore {
	if client != nil {
		return session.NewRedis(client)
	}

	return session.NewMemory(memoryStoreSize, v.GetDuration("auth.session_ttl"))
}
