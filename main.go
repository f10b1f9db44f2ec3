// Package main video store API.
//
// @title           Video Store API
// @version         1.0
// @description     Customers, videos and rentals (check-out / check-in) of a video rental store.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"videostore/app/echoServer"
	customerctrl "videostore/app/echoServer/controller/customer"
	rentalctrl "videostore/app/echoServer/controller/rental"
	videoctrl "videostore/app/echoServer/controller/video"
	"videostore/config"
	customerrepo "videostore/repository/customer"
	"videostore/repository/memory"
	rentalrepo "videostore/repository/rental"
	videorepo "videostore/repository/video"
	customersvc "videostore/service/customer"
	rentalsvc "videostore/service/rental"
	videosvc "videostore/service/video"
	"videostore/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// storage
	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("store init failed", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	// services
	cs := customersvc.New(st.tx, st.customers, st.rentals)
	vs := videosvc.New(st.tx, st.videos, st.rentals)
	rs := rentalsvc.New(st.tx, st.customers, st.videos, st.rentals,
		rentalsvc.WithPeriod(time.Duration(cfg.RentalPeriodDays)*24*time.Hour),
	)

	// controllers
	e := echoServer.New(log, echoServer.C{
		Customer: &customerctrl.Controller{Svc: cs, Log: log},
		Video:    &videoctrl.Controller{Svc: vs, Log: log},
		Rental:   &rentalctrl.Controller{Svc: rs, Log: log},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}

type store struct {
	tx        database.Transactor
	customers customerrepo.Repo
	videos    videorepo.Repo
	rentals   rentalrepo.Repo
}

func openStore(ctx context.Context, cfg config.App, log *slog.Logger) (*store, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn("using in-memory store, data is lost on exit")
		m := memory.New()
		return &store{tx: m, customers: m.Customers(), videos: m.Videos(), rentals: m.Rentals()}, func() {}, nil
	}

	// DB: pgxpool
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	// repos
	return &store{
		tx:        db,
		customers: customerrepo.New(),
		videos:    videorepo.New(),
		rentals:   rentalrepo.New(),
	}, db.Close, nil
}
