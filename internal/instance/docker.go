package instance

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// Compose labels identifying which project a container belongs to and which
// service it implements.
const (
	composeProjectLabel = "com.docker.compose.project"
	composeServiceLabel = "com.docker.compose.service"
)

// ServiceLister reports the named services currently running in a service
// group. Implemented against the Docker Engine API in production; tests
// substitute fakes.
type ServiceLister interface {
	ListRunningServices(ctx context.Context, project string) ([]string, error)
}

// DockerLister lists running Compose services via the Docker SDK.
type DockerLister struct {
	client *client.Client
}

// NewDockerLister creates a lister from standard environment variables
// (DOCKER_HOST, etc.).
func NewDockerLister() (*DockerLister, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return &DockerLister{client: cli}, nil
}

// ListRunningServices returns the service names of all running containers
// belonging to the given Compose project.
func (d *DockerLister) ListRunningServices(ctx context.Context, project string) ([]string, error) {
	f := filters.NewArgs()
	f.Add("label", composeProjectLabel+"="+project)

	containers, err := d.client.ContainerList(ctx, container.ListOptions{Filters: f})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers for project %s: %w", project, err)
	}

	services := make([]string, 0, len(containers))
	for _, c := range containers {
		if svc, ok := c.Labels[composeServiceLabel]; ok {
			services = append(services, svc)
		}
	}
	return services, nil
}
