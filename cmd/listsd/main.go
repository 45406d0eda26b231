package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mdouchement/lists/internal/config"
	"github.com/mdouchement/lists/internal/database"
	"github.com/mdouchement/lists/internal/lists"
	"github.com/mdouchement/lists/internal/server"
	"github.com/mdouchement/lists/pkg/stormcodec"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const dbname = "lists.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "listsd",
		Short:   "Value lists server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	initCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)

	reindexCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(reindexCmd)

	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		logrus.Fatalf("%+v", err)
	}
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

// indices returns the list and list item indices of all the configured spaces.
func indices(konf *config.Config) (listIndices, listItemIndices []string) {
	for _, space := range konf.Lists.AllSpaces() {
		listIndices = append(listIndices, lists.ResolveIndex(konf.Lists.ListIndex, space))
		listItemIndices = append(listItemIndices, lists.ResolveIndex(konf.Lists.ListItemIndex, space))
	}
	return listIndices, listItemIndices
}

func load() (*config.Config, func(), error) {
	konf, err := config.Load(cfg)
	if err != nil {
		return nil, nil, err
	}

	closer, err := setupLogger(konf.Log)
	if err != nil {
		return nil, nil, err
	}

	return konf, func() { _ = closer.Close() }, nil
}

func open(ctx context.Context, konf *config.Config) (database.Client, error) {
	switch konf.Database.Driver {
	case config.DriverMongoDB:
		ctx, cancel := context.WithTimeout(ctx, konf.MongoDB.Timeout)
		defer cancel()
		return database.MongoOpen(ctx, konf.MongoDB.URI, konf.MongoDB.Database)
	case config.DriverRedis:
		return database.RedisOpen(ctx, &redis.Options{
			Addr:     konf.Redis.Address,
			Password: konf.Redis.Password,
			DB:       konf.Redis.DB,
		})
	default:
		codec, err := stormcodec.Get(konf.Database.Codec)
		if err != nil {
			return nil, err
		}
		return database.StormOpen(dbnameWithPath(konf.Database.Path), codec)
	}
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, cleanup, err := load()
			if err != nil {
				return err
			}
			defer cleanup()

			listIndices, listItemIndices := indices(konf)
			logrus.WithField("driver", konf.Database.Driver).Infof("Initializing %s", strings.Join(append(listIndices, listItemIndices...), ", "))

			switch konf.Database.Driver {
			case config.DriverMongoDB:
				ctx, cancel := context.WithTimeout(context.Background(), konf.MongoDB.Timeout)
				defer cancel()
				return database.MongoInit(ctx, konf.MongoDB.URI, konf.MongoDB.Database, listItemIndices)
			case config.DriverRedis:
				logrus.Info("Redis needs no initialization")
				return nil
			default:
				codec, err := stormcodec.Get(konf.Database.Codec)
				if err != nil {
					return err
				}
				return database.StormInit(dbnameWithPath(konf.Database.Path), codec, listIndices, listItemIndices)
			}
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, cleanup, err := load()
			if err != nil {
				return err
			}
			defer cleanup()

			if konf.Database.Driver != config.DriverStorm {
				return errors.Errorf("reindex is only supported by the %s driver", config.DriverStorm)
			}

			codec, err := stormcodec.Get(konf.Database.Codec)
			if err != nil {
				return err
			}

			listIndices, listItemIndices := indices(konf)
			return database.StormReIndex(dbnameWithPath(konf.Database.Path), codec, listIndices, listItemIndices)
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, cleanup, err := load()
			if err != nil {
				return err
			}
			defer cleanup()

			db, err := open(context.Background(), konf)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			var gatherer prometheus.Gatherer
			if konf.Metrics.Enabled {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)

				db, err = database.Instrument(db, reg)
				if err != nil {
					return err
				}
				gatherer = reg
			}

			engine := server.EchoEngine(server.IOC{
				Version:         version,
				Database:        db,
				ListIndex:       konf.Lists.ListIndex,
				ListItemIndex:   konf.Lists.ListItemIndex,
				UserHeader:      konf.Auth.UserHeader,
				DefaultUser:     konf.Auth.DefaultUser,
				ImportBatchSize: konf.Lists.ImportBatchSize,
				ExportPageSize:  konf.Lists.ExportPageSize,
				Gatherer:        gatherer,
			})
			server.PrintRoutes(engine)

			address := konf.Address
			message := "could not run server"
			logrus.Infof("Server listening on %s", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					logrus.Infof("Removing existing %s", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)
