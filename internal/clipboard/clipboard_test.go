package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, installed map[string]bool, runErr error) *[]string {
	t.Helper()
	oldLook, oldRun := lookPath, run
	t.Cleanup(func() { lookPath, run = oldLook, oldRun })

	var calls []string
	lookPath = func(name string) (string, error) {
		if installed[name] {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}
	run = func(name string, args []string, stdin string) error {
		calls = append(calls, name+":"+stdin)
		return runErr
	}
	return &calls
}

func TestWriteUsesFirstInstalledCommand(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("candidate order checked on linux")
	}
	calls := stub(t, map[string]bool{"xclip": true, "xsel": true}, nil)

	require.NoError(t, Write("甲子"))
	assert.Equal(t, []string{"xclip:甲子"}, *calls)
	assert.True(t, Available())
}

func TestWriteUnavailable(t *testing.T) {
	calls := stub(t, nil, nil)

	assert.ErrorIs(t, Write("x"), ErrUnavailable)
	assert.False(t, Available())
	assert.Empty(t, *calls)
}

func TestWriteCommandFailure(t *testing.T) {
	boom := errors.New("boom")
	all := map[string]bool{"pbcopy": true, "wl-copy": true, "xclip": true, "xsel": true, "clip": true}
	stub(t, all, boom)

	assert.ErrorIs(t, Write("x"), boom)
}
