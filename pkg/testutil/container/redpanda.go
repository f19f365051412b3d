// Package container provides testcontainers helpers for integration tests.
package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedpandaContainer runs a single-node Redpanda broker, which serves both the
// Kafka protocol and a Confluent-compatible Schema Registry - everything a
// production task needs, in one container.
type RedpandaContainer struct {
	Container         testcontainers.Container
	SchemaRegistryURL string
	Brokers           string
}

// RedpandaOption configures the Redpanda container.
type RedpandaOption func(*redpandaOptions)

type redpandaOptions struct {
	image string
}

// WithRedpandaImage sets the Redpanda image to use.
func WithRedpandaImage(image string) RedpandaOption {
	return func(o *redpandaOptions) {
		o.image = image
	}
}

// StartRedpandaContainer starts a dev-mode Redpanda container and waits until
// both the Kafka listener and the Schema Registry answer.
func StartRedpandaContainer(ctx context.Context, opts ...RedpandaOption) (*RedpandaContainer, error) {
	options := &redpandaOptions{
		image: "redpandadata/redpanda:v24.1.1",
	}
	for _, opt := range opts {
		opt(options)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        options.image,
			ExposedPorts: []string{"8081/tcp", "9092/tcp"},
			Cmd: []string{
				"redpanda", "start",
				"--mode", "dev-container",
				"--smp", "1",
				"--memory", "512M",
				"--reserve-memory", "0M",
				"--overprovisioned",
				"--node-id", "0",
				"--kafka-addr", "PLAINTEXT://0.0.0.0:9092",
				"--advertise-kafka-addr", "PLAINTEXT://localhost:9092",
				"--schema-registry-addr", "0.0.0.0:8081",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("8081/tcp"),
				wait.ForListeningPort("9092/tcp"),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start redpanda container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	registryPort, err := container.MappedPort(ctx, "8081")
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get schema registry port: %w", err)
	}

	kafkaPort, err := container.MappedPort(ctx, "9092")
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get kafka port: %w", err)
	}

	registryURL := fmt.Sprintf("http://%s:%s", host, registryPort.Port())

	if err := waitForSchemaRegistry(ctx, registryURL, 30*time.Second); err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("schema registry not ready: %w", err)
	}

	return &RedpandaContainer{
		Container:         container,
		SchemaRegistryURL: registryURL,
		Brokers:           fmt.Sprintf("%s:%s", host, kafkaPort.Port()),
	}, nil
}

// Terminate terminates the container.
func (r *RedpandaContainer) Terminate(ctx context.Context) error {
	if r.Container != nil {
		return r.Container.Terminate(ctx)
	}
	return nil
}

func waitForSchemaRegistry(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := &http.Client{Timeout: 2 * time.Second}

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for schema registry at %s", url)
		default:
			resp, err := client.Get(url + "/subjects")
			if err == nil {
				_ = resp.Body.Close() //nolint:errcheck // best effort cleanup
				if resp.StatusCode == http.StatusOK {
					return nil
				}
			}
			time.Sleep(500 * time.Millisecond)
		}
	}
}
