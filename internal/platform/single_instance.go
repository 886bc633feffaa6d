package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateCommand = "activate"

// InstanceGuard holds the single-instance lock. A second launch connects to
// the guard and asks the running instance to bring its window forward.
type InstanceGuard struct {
	listener net.Listener
	address  string
	once     sync.Once
}

// AcquireSingleInstance attempts to bind a deterministic localhost port. If
// the port is taken, the running instance is asked to activate and
// ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if notifyErr := notifyRunningInstance(address); notifyErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, notifyErr)
		}
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// OnActivate calls handler each time another launch is attempted. It
// returns immediately; connections are served until Release.
func (guard *InstanceGuard) OnActivate(handler func()) {
	if guard == nil || guard.listener == nil {
		return
	}
	go func() {
		for {
			conn, err := guard.listener.Accept()
			if err != nil {
				return
			}
			go serveActivation(conn, handler)
		}
	}()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	var err error
	guard.once.Do(func() {
		err = guard.listener.Close()
	})
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func serveActivation(conn net.Conn, handler func()) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}
	if strings.TrimSpace(line) == activateCommand && handler != nil {
		handler()
	}
}

func notifyRunningInstance(address string) error {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return fmt.Errorf("dial running instance: %w", err)
	}
	defer conn.Close()
	if _, err := fmt.Fprintln(conn, activateCommand); err != nil {
		return fmt.Errorf("send activate: %w", err)
	}
	return nil
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
