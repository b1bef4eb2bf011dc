// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sivanov/vaulty/internal/app"
	"github.com/sivanov/vaulty/internal/authz"
	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/crypto"
	"github.com/sivanov/vaulty/internal/handler"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/server"
	"github.com/sivanov/vaulty/internal/service"
	"github.com/sivanov/vaulty/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// Exit codes by failing subsystem: log init=1, config=2, secrets key
// material=3, access-key key material=4, server/DB=5.
const (
	exitLogInit       = 1
	exitConfig        = 2
	exitSecretsKeys   = 3
	exitAccessKeyInit = 4
	exitServerOrDB    = 5
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vaulty-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		os.Exit(exitConfig)
	}

	if cfg.Logger.LogFilePath != "" {
		fileLog, err := logger.NewFileLogger("vaulty-server", cfg.Logger.LogFilePath)
		if err != nil {
			log.Error().Err(err).Msg("failed to open log file")
			os.Exit(exitLogInit)
		}
		log = fileLog
	}

	log.Debug().Any("config", cfg).Msg("resolved configuration")

	rsaPriv, rsaPub, aesKey, aesNonce, err := crypto.LoadSecretsKeyMaterial(cfg.Secrets)
	if err != nil {
		log.Error().Err(err).Msg("failed to load secrets key material")
		os.Exit(exitSecretsKeys)
	}

	ecdsaSign, ecdsaVerify, err := crypto.LoadAccessKeyMaterial(cfg.AccessKeys)
	if err != nil {
		log.Error().Err(err).Msg("failed to load access-key material")
		os.Exit(exitAccessKeyInit)
	}

	keychain := crypto.NewKeychain(rsaPriv, rsaPub, aesKey, aesNonce, ecdsaSign, ecdsaVerify)

	db, initState, err := store.Open(cfg.Storage.DataFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to open database")
		os.Exit(exitServerOrDB)
	}
	defer db.Close()

	services := service.NewServices(db, keychain, cfg, log)

	if initState == store.InitializeStateCreated {
		if err := app.Bootstrap(context.Background(), services, log); err != nil {
			log.Error().Err(err).Msg("first-run bootstrap failed")
			os.Exit(exitServerOrDB)
		}
	}

	authorizer := authz.NewDataPlane(db, keychain)

	handlers := handler.NewHandlers(services, authorizer, cfg, log)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to create server")
		os.Exit(exitServerOrDB)
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
