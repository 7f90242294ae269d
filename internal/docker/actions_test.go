package docker

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanowhale/internal/config"
)

// fakeRunner records invocations and plays back canned responses keyed by the
// first few arguments.
type fakeRunner struct {
	calls     [][]string
	responses map[string]string
	errors    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: make(map[string]string),
		errors:    make(map[string]error),
	}
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	key := strings.Join(args, " ")
	for k, err := range f.errors {
		if strings.HasPrefix(key, k) {
			return "", err
		}
	}
	for k, out := range f.responses {
		if strings.HasPrefix(key, k) {
			return out, nil
		}
	}
	return "", nil
}

func (f *fakeRunner) Command(args ...string) *exec.Cmd {
	f.calls = append(f.calls, args)
	return exec.Command("true")
}

func newTestClient(r Runner) *Client {
	return NewClient(r, config.DefaultConfig().Engine)
}

func TestClientListContainers(t *testing.T) {
	r := newFakeRunner()
	r.responses["ps -a"] = "1|web|nginx|Up|running|\n"

	containers, err := newTestClient(r).ListContainers(context.Background())
	require.NoError(t, err)
	require.Len(t, containers, 1)
	assert.Equal(t, "web", containers[0].Name)
}

func TestClientListContainersFailurePropagates(t *testing.T) {
	r := newFakeRunner()
	r.errors["ps -a"] = errors.New("daemon down")

	_, err := newTestClient(r).ListContainers(context.Background())
	require.Error(t, err)
}

func TestClientContainerDo(t *testing.T) {
	r := newFakeRunner()
	client := newTestClient(r)

	require.NoError(t, client.ContainerDo(context.Background(), ActionStop, "web"))
	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"stop", "web"}, r.calls[0])
}

func TestClientContainerDoFailureNamesEntity(t *testing.T) {
	r := newFakeRunner()
	r.errors["start broken"] = errors.New("no such container")

	err := newTestClient(r).ContainerDo(context.Background(), ActionStart, "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestClientWillAutoRestart(t *testing.T) {
	tests := []struct {
		name     string
		policy   string
		expected bool
	}{
		{"always restarts", "always", true},
		{"unless-stopped restarts", "unless-stopped", true},
		{"no policy", "no", false},
		{"on-failure", "on-failure", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRunner()
			r.responses["inspect --format"] = tt.policy + "\n"
			assert.Equal(t, tt.expected, newTestClient(r).WillAutoRestart(context.Background(), "web"))
		})
	}
}

func TestClientWillAutoRestartDegradesOnError(t *testing.T) {
	r := newFakeRunner()
	r.errors["inspect"] = errors.New("gone")
	assert.False(t, newTestClient(r).WillAutoRestart(context.Background(), "web"))
}

func TestClientPrune(t *testing.T) {
	r := newFakeRunner()
	r.responses["volume prune -f"] = "Total reclaimed space: 1.2GB\n"

	out, err := newTestClient(r).Prune(context.Background(), KindVolume)
	require.NoError(t, err)
	assert.Equal(t, "Total reclaimed space: 1.2GB", out)
	assert.Equal(t, []string{"volume", "prune", "-f"}, r.calls[0])
}

func TestClientRemoveImageForces(t *testing.T) {
	r := newFakeRunner()
	require.NoError(t, newTestClient(r).RemoveImage(context.Background(), "sha1"))
	assert.Equal(t, []string{"rmi", "-f", "sha1"}, r.calls[0])
}

func TestClientRemoveVolume(t *testing.T) {
	r := newFakeRunner()
	client := newTestClient(r)

	require.NoError(t, client.RemoveVolume(context.Background(), "data", false))
	assert.Equal(t, []string{"volume", "rm", "data"}, r.calls[0])

	require.NoError(t, client.RemoveVolume(context.Background(), "data", true))
	assert.Equal(t, []string{"volume", "rm", "-f", "data"}, r.calls[1])
}

func TestClientContainerEnvFiltersNonAssignments(t *testing.T) {
	r := newFakeRunner()
	r.responses["exec web env"] = "PATH=/usr/bin\nHOME=/root\nnot an assignment\n"

	env, err := newTestClient(r).ContainerEnv(context.Background(), "web")
	require.NoError(t, err)
	assert.Equal(t, []string{"PATH=/usr/bin", "HOME=/root"}, env)
}

func TestClientInspectContainerIndentsJSON(t *testing.T) {
	r := newFakeRunner()
	r.responses["inspect web"] = `[{"Id":"abc","Name":"/web"}]`

	out, err := newTestClient(r).InspectContainer(context.Background(), "web")
	require.NoError(t, err)
	assert.Contains(t, out, "\"Id\": \"abc\"")
	assert.NotContains(t, out, "[")
}

func TestClientInspectContainerFallsBackOnNonJSON(t *testing.T) {
	r := newFakeRunner()
	r.responses["inspect web"] = "not json at all"

	out, err := newTestClient(r).InspectContainer(context.Background(), "web")
	require.NoError(t, err)
	assert.Equal(t, "not json at all", out)
}

func TestClientShellCommandFallbackChain(t *testing.T) {
	r := newFakeRunner()
	cmd := newTestClient(r).ShellCommand("web")
	require.NotNil(t, cmd)
	require.Len(t, r.calls, 1)
	assert.Equal(t,
		[]string{"exec", "-it", "web", "sh", "-c", "exec /bin/bash || exec /bin/sh"},
		r.calls[0])
}

func TestClientFollowLogsCommand(t *testing.T) {
	r := newFakeRunner()
	client := newTestClient(r)

	client.FollowLogsCommand("web", 200)
	assert.Equal(t, []string{"logs", "-f", "--tail", "200", "web"}, r.calls[0])

	client.FollowLogsCommand("web", 0)
	assert.Equal(t, []string{"logs", "-f", "web"}, r.calls[1])
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0123456789ab", shortID("0123456789abcdef"))
	assert.Equal(t, "short", shortID("short"))
}
