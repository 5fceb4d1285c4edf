//go:build e2e

package commands

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-stampwatch/internal/testing/e2e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	binaryPath := filepath.Join(t.TempDir(), "stampwatch")
	output, err := exec.Command("go", "build", "-o", binaryPath, "../cmd").CombinedOutput()
	require.NoError(t, err, "Failed to build binary: %s", string(output))
	return binaryPath
}

func TestInteractiveListRecordsAndPersists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	binary := buildBinary(t)
	home := t.TempDir()
	store := filepath.Join(home, "store.json")
	env := []string{"HOME=" + home}

	session, err := e2e.Start(e2e.Config{
		Command: binary,
		Args:    []string{"--store", store, "--timezone", "UTC", "--no-bell"},
		Env:     env,
	})
	require.NoError(t, err)

	require.NoError(t, session.WaitFor("1/20", 5*time.Second))
	require.NoError(t, session.WaitFor("Initial", time.Second))

	require.NoError(t, session.Send(" "))
	require.NoError(t, session.WaitFor("2/20", 5*time.Second))
	require.NoError(t, session.Send("\r"))
	require.NoError(t, session.WaitFor("3/20", 5*time.Second))

	require.NoError(t, session.Send("?"))
	require.NoError(t, session.WaitFor("Keyboard Shortcuts", 5*time.Second))
	require.NoError(t, session.Send("?"))

	require.NoError(t, session.Stop())

	cmd := exec.Command(binary, "--store", store, "list", "--output", "json")
	cmd.Env = append(cmd.Environ(), env...)
	out, err := cmd.Output()
	require.NoError(t, err)

	var listing struct {
		Count int `json:"count"`
	}
	require.NoError(t, sonic.Unmarshal(out, &listing))
	assert.Equal(t, 3, listing.Count)
}

func TestInteractiveListSeesExternalStamp(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	binary := buildBinary(t)
	home := t.TempDir()
	store := filepath.Join(home, "store.json")
	env := []string{"HOME=" + home}

	session, err := e2e.Start(e2e.Config{
		Command: binary,
		Args:    []string{"--store", store, "--timezone", "UTC", "--no-bell"},
		Env:     env,
	})
	require.NoError(t, err)
	defer session.Stop()
	require.NoError(t, session.WaitFor("1/20", 5*time.Second))

	cmd := exec.Command(binary, "--store", store, "stamp")
	cmd.Env = append(cmd.Environ(), env...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	assert.True(t, strings.Contains(string(out), "[2/20]"))

	assert.NoError(t, session.WaitFor("2/20", 5*time.Second))
}
