package main

import (
	"github.com/google/wire"
	"github.com/pandodao/card-transfer/worker/auditor"
	"github.com/spf13/viper"
)

var workerSet = wire.NewSet(
	provideAuditorConfig,
	auditor.New,
)

func provideAuditorConfig(v *viper.Viper) auditor.Config {
	return auditor.Config{
		Interval: v.GetDuration("auditor.interval"),
	}
}
