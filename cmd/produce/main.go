// Package main provides the produce CLI: it reads a task configuration file
// and produces every configured row to a Kafka topic.
//
// Usage:
//
//	produce run --config ./configs/config.yaml
//
// The config file carries the kafka connection (brokers, schema registry),
// optional storage credentials for s3:// row sources, and the produce task
// itself (topic, row source, key/value serializers).
package main

import (
	"context"
	"fmt"
	"os"

	coreconfig "github.com/Sokol111/kafka-produce/pkg/core/config"
	"github.com/Sokol111/kafka-produce/pkg/core/logger"
	kafkaconfig "github.com/Sokol111/kafka-produce/pkg/messaging/kafka/config"
	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/produce"
	"github.com/Sokol111/kafka-produce/pkg/messaging/kafka/producer"
	"github.com/Sokol111/kafka-produce/pkg/storage"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "produce",
		Short:   "Produce messages to a Kafka topic",
		Long:    `produce reads row records from a configured source and sends each one to a Kafka topic using per-side key/value serializers.`,
		Version: version,
	}

	rootCmd.AddCommand(newRunCmd())

	return rootCmd
}

func newRunCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one production task to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd.Context(), configFile)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to the task configuration file (defaults to CONFIG_FILE)")

	return cmd
}

func runTask(ctx context.Context, configFile string) error {
	var taskErr error

	viperOpts := []coreconfig.ViperOption{}
	if configFile != "" {
		viperOpts = append(viperOpts, coreconfig.WithConfigPath(configFile))
	}

	app := fx.New(
		logger.NewZapLoggingModule(),
		coreconfig.NewViperModule(viperOpts...),
		kafkaconfig.NewKafkaConfigModule(),
		storage.NewStorageModule(),
		producer.NewProducerModule(),
		produce.NewProduceModule(),
		fx.Invoke(func(lc fx.Lifecycle, task *produce.Task, log *zap.Logger, shutdowner fx.Shutdowner) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						out, err := task.Run(ctx)
						if err != nil {
							taskErr = err
							log.Error("production task failed", zap.Error(err))
						} else {
							log.Info("production task finished", zap.Int64("messages_count", out.MessagesCount))
						}
						if err := shutdowner.Shutdown(); err != nil {
							log.Error("failed to initiate shutdown", zap.Error(err))
						}
					}()
					return nil
				},
			})
		}),
	)

	app.Run()

	if err := app.Err(); err != nil {
		return err
	}
	return taskErr
}
