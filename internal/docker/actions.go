package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"nanowhale/internal/config"
	"nanowhale/pkg/logging"
)

// Format templates for the listing commands. Field order and delimiter are a
// fixed contract with the parsers in parse.go.
const (
	containerListFormat = "{{.ID}}|{{.Names}}|{{.Image}}|{{.Status}}|{{.State}}|{{.Ports}}"
	imageListFormat     = "{{.ID}}|{{.Repository}}|{{.Tag}}|{{.Size}}"
	volumeListFormat    = "{{.Name}}|{{.Driver}}"
	networkListFormat   = "{{.ID}}|{{.Name}}|{{.Driver}}"
)

// Client issues one-shot engine commands through a Runner.
type Client struct {
	runner Runner
	engine config.EngineSettings
}

// NewClient creates a client over the given runner.
func NewClient(runner Runner, engine config.EngineSettings) *Client {
	return &Client{runner: runner, engine: engine}
}

// Runner exposes the underlying runner for components that spawn their own
// long-lived processes (streams, interactive sessions).
func (c *Client) Runner() Runner { return c.runner }

// Ping verifies the engine daemon is reachable. A failure here at startup is
// fatal to the dashboard view.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.runner.Run(ctx, "version", "--format", "{{.Server.Version}}")
	if err != nil {
		return fmt.Errorf("container engine not reachable: %w", err)
	}
	return nil
}

// ListContainers fetches all containers, running and stopped.
func (c *Client) ListContainers(ctx context.Context) ([]Container, error) {
	out, err := c.runner.Run(ctx, "ps", "-a", "--no-trunc", "--format", containerListFormat)
	if err != nil {
		return nil, err
	}
	return ParseContainers(out), nil
}

// ListImages fetches all images.
func (c *Client) ListImages(ctx context.Context) ([]Image, error) {
	out, err := c.runner.Run(ctx, "images", "--format", imageListFormat)
	if err != nil {
		return nil, err
	}
	return ParseImages(out), nil
}

// ListVolumes fetches all volumes.
func (c *Client) ListVolumes(ctx context.Context) ([]Volume, error) {
	out, err := c.runner.Run(ctx, "volume", "ls", "--format", volumeListFormat)
	if err != nil {
		return nil, err
	}
	return ParseVolumes(out), nil
}

// ListNetworks fetches all networks.
func (c *Client) ListNetworks(ctx context.Context) ([]Network, error) {
	out, err := c.runner.Run(ctx, "network", "ls", "--format", networkListFormat)
	if err != nil {
		return nil, err
	}
	return ParseNetworks(out), nil
}

// ContainerAction is a single-target lifecycle operation.
type ContainerAction string

const (
	ActionStart   ContainerAction = "start"
	ActionStop    ContainerAction = "stop"
	ActionRestart ContainerAction = "restart"
	ActionRemove  ContainerAction = "rm"
)

// ContainerDo applies one lifecycle action to one container.
func (c *Client) ContainerDo(ctx context.Context, action ContainerAction, name string) error {
	_, err := c.runner.Run(ctx, string(action), name)
	if err != nil {
		return fmt.Errorf("failed to %s container %s: %w", action, name, err)
	}
	return nil
}

// RestartPolicy returns the container's configured restart policy name
// (e.g. "no", "always", "unless-stopped").
func (c *Client) RestartPolicy(ctx context.Context, name string) (string, error) {
	out, err := c.runner.Run(ctx, "inspect", "--format", "{{.HostConfig.RestartPolicy.Name}}", name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// WillAutoRestart reports whether stopping the container is futile because
// the engine will bring it back. Errors degrade to false; the stop proceeds
// and the user simply gets no warning.
func (c *Client) WillAutoRestart(ctx context.Context, name string) bool {
	policy, err := c.RestartPolicy(ctx, name)
	if err != nil {
		logging.Debug("Gateway", "restart policy lookup for %s failed: %v", name, err)
		return false
	}
	return policy == "always" || policy == "unless-stopped"
}

// RemoveImage force-removes one image.
func (c *Client) RemoveImage(ctx context.Context, id string) error {
	_, err := c.runner.Run(ctx, "rmi", "-f", id)
	if err != nil {
		return fmt.Errorf("failed to remove image %s: %w", shortID(id), err)
	}
	return nil
}

// RemoveVolume removes one volume, optionally forcing removal while in use.
func (c *Client) RemoveVolume(ctx context.Context, name string, force bool) error {
	args := []string{"volume", "rm"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, name)
	_, err := c.runner.Run(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to remove volume %s: %w", name, err)
	}
	return nil
}

// RemoveNetwork removes one network.
func (c *Client) RemoveNetwork(ctx context.Context, name string) error {
	_, err := c.runner.Run(ctx, "network", "rm", name)
	if err != nil {
		return fmt.Errorf("failed to remove network %s: %w", name, err)
	}
	return nil
}

// Prune removes all unused objects of the given kind.
func (c *Client) Prune(ctx context.Context, kind EntityKind) (string, error) {
	var noun string
	switch kind {
	case KindContainer:
		noun = "container"
	case KindImage:
		noun = "image"
	case KindVolume:
		noun = "volume"
	case KindNetwork:
		noun = "network"
	default:
		return "", fmt.Errorf("cannot prune kind %v", kind)
	}
	out, err := c.runner.Run(ctx, noun, "prune", "-f")
	if err != nil {
		return "", fmt.Errorf("failed to prune %s: %w", kind, err)
	}
	return strings.TrimSpace(out), nil
}

// ContainerEnv returns the container's environment, one VAR=value per entry.
func (c *Client) ContainerEnv(ctx context.Context, name string) ([]string, error) {
	out, err := c.runner.Run(ctx, "exec", name, "env")
	if err != nil {
		return nil, err
	}
	var env []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "=") {
			env = append(env, line)
		}
	}
	return env, nil
}

// InspectContainer returns the engine's full inspection as indented JSON.
func (c *Client) InspectContainer(ctx context.Context, name string) (string, error) {
	out, err := c.runner.Run(ctx, "inspect", name)
	if err != nil {
		return "", err
	}
	// The engine emits a single-element JSON array; re-indent it for display.
	var parsed []json.RawMessage
	if err := json.Unmarshal([]byte(out), &parsed); err != nil || len(parsed) == 0 {
		return strings.TrimSpace(out), nil
	}
	pretty, err := json.MarshalIndent(json.RawMessage(parsed[0]), "", "  ")
	if err != nil {
		return strings.TrimSpace(out), nil
	}
	return string(pretty), nil
}

// TopContainer returns the container's process table as the engine prints it.
func (c *Client) TopContainer(ctx context.Context, name string) (string, error) {
	out, err := c.runner.Run(ctx, "top", name)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// ShellCommand builds the interactive shell session for a container. The
// configured shells are chained so the first one present in the image wins,
// e.g. sh -c "exec /bin/bash || exec /bin/sh".
func (c *Client) ShellCommand(name string) *exec.Cmd {
	shells := c.engine.Shells
	if len(shells) == 0 {
		shells = []string{"/bin/sh"}
	}
	chain := make([]string, len(shells))
	for i, sh := range shells {
		chain[i] = "exec " + sh
	}
	return c.runner.Command("exec", "-it", name, "sh", "-c", strings.Join(chain, " || "))
}

// FollowLogsCommand builds the fullscreen log follower bound directly to the
// terminal.
func (c *Client) FollowLogsCommand(name string, tail int) *exec.Cmd {
	args := []string{"logs", "-f"}
	if tail > 0 {
		args = append(args, "--tail", strconv.Itoa(tail))
	}
	args = append(args, name)
	return c.runner.Command(args...)
}

// shortID truncates an engine ID the way the CLI displays it.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
