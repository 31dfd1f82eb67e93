package bus

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const (
	SockName = "control.sock"
	PidName  = "speechprobe.pid"
	ProtoVer = "0.1"
)

// runtimeDir is where the daemon keeps its socket and pid file,
// ~/.cache/speechprobe on most systems.
func runtimeDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "speechprobe"), nil
}

func SockPath() (string, error) {
	dir, err := runtimeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SockName), nil
}

func PidPath() (string, error) {
	dir, err := runtimeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, PidName), nil
}

func Listen() (net.Listener, error) {
	sp, err := SockPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(sp), 0o700); err != nil {
		return nil, err
	}
	_ = os.Remove(sp) // stale socket from last run
	return net.Listen("unix", sp)
}

func Dial() (net.Conn, error) {
	sp, err := SockPath()
	if err != nil {
		return nil, err
	}
	return net.Dial("unix", sp)
}

// SendCommand writes one command byte and reads the single-line response.
func SendCommand(cmd byte) (string, error) {
	c, err := Dial()
	if err != nil {
		return "", err
	}
	defer c.Close()

	if _, err := c.Write([]byte{cmd, '\n'}); err != nil {
		return "", err
	}

	return bufio.NewReader(c).ReadString('\n')
}

// CheckExistingDaemon returns an error when the pid file points at a live
// process. A missing or stale pid file is not an error; the caller will
// overwrite it.
func CheckExistingDaemon() error {
	pid, ok, err := readPidFile()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if pidAlive(pid) {
		return fmt.Errorf("daemon already running with PID %d", pid)
	}
	return nil
}

// readPidFile reads the recorded daemon pid. ok is false when there is no
// usable pid: no file, or contents that don't parse.
func readPidFile() (pid int, ok bool, err error) {
	pidPath, err := PidPath()
	if err != nil {
		return 0, false, err
	}

	data, err := os.ReadFile(pidPath)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, nil // garbage pid file, treat as stale
	}
	return pid, true, nil
}

// pidAlive probes a process with signal 0, which performs the permission and
// existence checks without delivering anything. EPERM still means the pid is
// taken.
func pidAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func CreatePidFile() error {
	pidPath, err := PidPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(pidPath), 0o700); err != nil {
		return err
	}

	return os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0o600)
}

func RemovePidFile() error {
	pidPath, err := PidPath()
	if err != nil {
		return err
	}
	return os.Remove(pidPath)
}
