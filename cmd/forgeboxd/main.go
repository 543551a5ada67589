package main

import (
	"flag"
	"os"
	"time"

	"forgebox/pkg/box"
	"forgebox/pkg/config"
	"forgebox/pkg/forge"
	"forgebox/pkg/log"
	"forgebox/pkg/server"
	"forgebox/pkg/session"
)

const (
	defaultRetryMax     = 3
	defaultRetryWaitMin = 1 * time.Second
	defaultRetryWaitMax = 30 * time.Second
)

func main() {
	// Initialize logger
	_ = log.Logger

	addr := flag.String("addr", ":3000", "Listen address")
	envFile := flag.String("env", ".env", "Path to the .env file")
	retryMax := flag.Int("retry-max", defaultRetryMax, "Maximum number of retries for upstream transport errors")
	retryWaitMin := flag.Duration("retry-wait-min", defaultRetryWaitMin, "Minimum wait time between retries")
	retryWaitMax := flag.Duration("retry-wait-max", defaultRetryWaitMax, "Maximum wait time between retries")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debug {
		log.SetDebugMode()
		log.Debug().Msg("Debug mode enabled")
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	sessions := session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	tokens := session.NewTokens(session.TokensOptions{
		ForgeClientID:     cfg.ForgeClientID,
		ForgeClientSecret: cfg.ForgeClientSecret,
		ForgeTokenURL:     cfg.ForgeBaseURL + "/authentication/v1/authenticate",
		BoxClientID:       cfg.BoxClientID,
		BoxClientSecret:   cfg.BoxClientSecret,
		BoxAuthURL:        cfg.BoxAuthURL,
		BoxTokenURL:       cfg.BoxTokenURL,
		BoxRedirectURL:    cfg.BoxCallbackURL,
	})

	boxClient := box.NewClient(cfg.BoxAPIBaseURL, *retryMax, *retryWaitMin, *retryWaitMax)
	ossClient := forge.NewOSSClient(cfg.ForgeBaseURL, *retryMax, *retryWaitMin, *retryWaitMax)
	derivativeClient := forge.NewDerivativeClient(cfg.ForgeBaseURL, *retryMax, *retryWaitMin, *retryWaitMax)

	srv := server.New(cfg, sessions, tokens, boxClient, ossClient, derivativeClient)
	if err := srv.Start(*addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}

	os.Exit(0)
}
