package main

import (
	"log/slog"

	"github.com/google/wire"
	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/service/account"
	"github.com/pandodao/card-transfer/service/auth"
	"github.com/pandodao/card-transfer/service/dashboard"
	"github.com/pandodao/card-transfer/service/transfer"
	"github.com/spf13/viper"
)

var serviceSet = wire.NewSet(
	provideAuthConfig,
	provideCodeGenerator,
	provideCodeSender,
	auth.New,
	account.New,
	transfer.New,
	dashboard.New,
)

func provideAuthConfig(v *viper.Viper) auth.Config {
	return auth.Config{
		Secret:          v.GetString("auth.secret"),
		VerificationTTL: v.GetDuration("auth.verification_ttl"),
		SessionTTL:      v.GetDuration("auth.session_ttl"),
	}
}

func provideCodeGenerator(v *viper.Viper) core.CodeGenerator {
	if code := v.GetString("auth.code"); code != "" {
		return auth.FixedCode(code)
	}

	return auth.RandomCode(v.GetInt("auth.code_digits"))
}

func provideCodeSender(logger *slog.Logger) core.CodeSender {
	return auth.NewLogSender(logger)
}
