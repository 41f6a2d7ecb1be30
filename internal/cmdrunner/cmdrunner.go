package cmdrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	gracefulInterval = time.Second * 5
)

var (
	ErrTimedOut = fmt.Errorf("command timed out")
)

// Command is one invocation of an external program.
type Command struct {
	Name string
	Args []string
	// Stdin is written followed by a newline, then stdin is closed. nil
	// leaves stdin unattached.
	Stdin []byte
	// Env is added on top of the current process environment.
	Env []string
}

func (c Command) String() string {
	return fmt.Sprintf("%s %v", c.Name, c.Args)
}

//go:generate mockgen -source cmdrunner.go -destination cmdrunner_mock.go -package cmdrunner
type CmdRunner interface {
	Run(context.Context, Command) ([]byte, []byte, error)
}

type cmdRunner struct {
	grace time.Duration
}

// NewCmdRunner returns a runner safe for concurrent use: every Run gets its
// own process and buffers.
func NewCmdRunner() *cmdRunner {
	return &cmdRunner{grace: gracefulInterval}
}

// process holds the state of a single Run.
type process struct {
	cmd     *exec.Cmd
	outPipe io.ReadCloser
	errPipe io.ReadCloser
	inPipe  io.WriteCloser
	out     bytes.Buffer
	err     bytes.Buffer
}

func (c *cmdRunner) Run(ctx context.Context, command Command) ([]byte, []byte, error) {
	p, err := start(command)
	if err != nil {
		return nil, nil, err
	}
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := drain(&p.out, p.outPipe); err != nil {
			log.Errorf("command '%s' stdout stream failed: %v", command, err)
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := drain(&p.err, p.errPipe); err != nil {
			log.Errorf("command '%s' stderr stream failed: %v", command, err)
		}
	}()
	if command.Stdin != nil {
		input := append(append(make([]byte, 0, len(command.Stdin)+1), command.Stdin...), '\n')
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer p.inPipe.Close()
			if _, err := p.inPipe.Write(input); err != nil {
				log.Errorf("command '%s' write stdin failed: %v", command, err)
			}
		}()
	}
	streamsDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(streamsDone)
	}()
	cmdErr := c.wait(ctx, p, streamsDone)
	return p.out.Bytes(), p.err.Bytes(), cmdErr
}

func start(command Command) (*process, error) {
	var err error
	p := &process{}
	log.Debugf("Running command %s", command)
	p.cmd = exec.Command(command.Name, command.Args...)
	p.cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if command.Env != nil {
		p.cmd.Env = append(os.Environ(), command.Env...)
	}
	p.outPipe, err = p.cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	p.errPipe, err = p.cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if command.Stdin != nil {
		p.inPipe, err = p.cmd.StdinPipe()
		if err != nil {
			return nil, err
		}
	}
	if err := p.cmd.Start(); err != nil {
		return nil, err
	}
	return p, nil
}

// wait reaps the process once its output streams are closed. cmd.Wait
// must not run before the pipes are drained, so cancellation is handled by
// signalling the process group until the streams close.
func (c *cmdRunner) wait(ctx context.Context, p *process, streamsDone <-chan struct{}) error {
	select {
	case <-streamsDone:
		return p.cmd.Wait()
	case <-ctx.Done():
	}

	// cmd not finished - we are here because of context
	timeout := errors.Is(ctx.Err(), context.DeadlineExceeded)
	p.signal(syscall.SIGTERM)
	select {
	case <-streamsDone:
	case <-time.After(c.grace):
		p.signal(syscall.SIGKILL)
		<-streamsDone
	}
	cmdErr := p.cmd.Wait()
	if timeout {
		return ErrTimedOut
	}
	return cmdErr
}

// drain copies r into buf until EOF.
func drain(buf *bytes.Buffer, r io.Reader) error {
	chunk := make([]byte, 4096)
	for {
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (p *process) signal(sig syscall.Signal) {
	if p.cmd.Process == nil {
		log.Errorf("failed to send signal %v to process: not started", sig)
		return
	}
	if err := syscall.Kill(-p.cmd.Process.Pid, sig); err != nil {
		log.Errorf("failed to send signal %v to process: %v", sig, err)
	}
}
