package cmdrunner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCmd_SuccessWithStdoutAndStdErr(t *testing.T) {
	r := NewCmdRunner()
	stdout, stderr, err := r.Run(
		context.Background(),
		Command{Name: "sh", Args: []string{"-c", "echo hello && echo 'darkness, my old friend' >& 2 "}},
	)
	assert.NoError(t, err)
	assert.Equal(t, "hello\n", string(stdout))
	assert.Equal(t, "darkness, my old friend\n", string(stderr))
}

func TestCmd_FailWithStdoutAndStdErr(t *testing.T) {
	r := NewCmdRunner()
	stdout, stderr, err := r.Run(
		context.Background(),
		Command{Name: "sh", Args: []string{"-c", "echo hello && echo 'darkness, my old friend' >& 2 && exit 1 "}},
	)
	assert.Error(t, err)
	assert.Equal(t, "exit status 1", err.Error())
	assert.Equal(t, "hello\n", string(stdout))
	assert.Equal(t, "darkness, my old friend\n", string(stderr))
}

func TestCmd_TimeoutWithStdoutAndStdErr(t *testing.T) {
	r := NewCmdRunner()
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*500)
	defer cancel()
	stdout, stderr, err := r.Run(
		ctx,
		Command{Name: "sh", Args: []string{"-c", "echo hello && sleep 0.1 && echo 'darkness, my old friend' >& 2 && sleep 1 && echo never printed"}},
	)
	assert.Error(t, err)
	assert.Equal(t, "command timed out", err.Error())
	assert.Equal(t, "hello\n", string(stdout))
	assert.Equal(t, "darkness, my old friend\n", string(stderr))
}

var readPassword = Command{
	Name: "sh",
	Args: []string{
		"-c",
		`echo hello && \
		read input && \
		[ $input = password ] && \
		echo 'darkness, my old friend' >& 2 ||\
		exit 1`,
	},
	Stdin: []byte("password"),
}

func TestCmd_SuccessWithStdoutAndStdErrAndStdIn(t *testing.T) {
	r := NewCmdRunner()
	stdout, stderr, err := r.Run(context.Background(), readPassword)
	assert.NoError(t, err)
	assert.Equal(t, "hello\n", string(stdout))
	assert.Equal(t, "darkness, my old friend\n", string(stderr))
}

func TestCmd_ConcurrentReuse(t *testing.T) {
	r := NewCmdRunner()
	wg := sync.WaitGroup{}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stdout, stderr, err := r.Run(context.Background(), readPassword)
			assert.NoError(t, err)
			assert.Equal(t, "hello\n", string(stdout))
			assert.Equal(t, "darkness, my old friend\n", string(stderr))
		}()
	}
	wg.Wait()
}

func TestCmd_Env(t *testing.T) {
	r := NewCmdRunner()
	stdout, _, err := r.Run(
		context.Background(),
		Command{
			Name: "sh",
			Args: []string{"-c", "echo $ETH_PASSWORD"},
			Env:  []string{"ETH_PASSWORD=secret"},
		},
	)
	assert.NoError(t, err)
	assert.Equal(t, "secret\n", string(stdout))
}

func TestCmd_Cancelled(t *testing.T) {
	r := NewCmdRunner()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(time.Millisecond * 200)
		cancel()
	}()
	stdout, _, err := r.Run(ctx, Command{Name: "sh", Args: []string{"-c", "echo started && sleep 5"}})
	assert.Error(t, err)
	assert.NotEqual(t, ErrTimedOut, err)
	assert.Equal(t, "started\n", string(stdout))
}

func TestCmd_NotFound(t *testing.T) {
	r := NewCmdRunner()
	_, _, err := r.Run(context.Background(), Command{Name: "/nonexistent/cast"})
	assert.Error(t, err)
}
