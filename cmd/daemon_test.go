package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/goalpace/internal/config"
)

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"daemon", "--detach", "--addr", "127.0.0.1:9000", "--detach=true"})
	want := []string{"daemon", "--addr", "127.0.0.1:9000"}
	if len(got) != len(want) {
		t.Fatalf("filterDetachArg = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPIDAndStateFiles(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "goalpaced.pid")
	if err := writePID(pidFile, 4242); err != nil {
		t.Fatalf("writePID: %v", err)
	}
	pid, err := readPID(pidFile)
	if err != nil {
		t.Fatalf("readPID: %v", err)
	}
	if pid != 4242 {
		t.Errorf("pid = %d, want 4242", pid)
	}

	started := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	in := daemonRuntimeState{PID: pid, Addr: "127.0.0.1:8788", StartedAt: started, DBPath: "/tmp/goalpace.db"}
	if err := writeState(statePath(pidFile), in); err != nil {
		t.Fatalf("writeState: %v", err)
	}
	out, err := readState(statePath(pidFile))
	if err != nil {
		t.Fatalf("readState: %v", err)
	}
	if out.Addr != in.Addr || out.PID != in.PID || !out.StartedAt.Equal(started) {
		t.Errorf("state = %+v, want %+v", out, in)
	}
}

func TestReadPIDRejectsGarbage(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "bad.pid")
	if err := writeState(pidFile, daemonRuntimeState{}); err != nil {
		t.Fatalf("writeState: %v", err)
	}
	if _, err := readPID(pidFile); err == nil {
		t.Fatal("readPID accepted a non-numeric pid file")
	}
}

func TestDaemonSettingsPreferFlags(t *testing.T) {
	defer func(addr string, iv time.Duration, lf string) {
		flagDaemonAddr, flagDaemonInterval, flagDaemonLogFile = addr, iv, lf
	}(flagDaemonAddr, flagDaemonInterval, flagDaemonLogFile)

	cfg := config.DefaultConfig()
	cfg.Daemon.Addr = "127.0.0.1:7000"
	cfg.Daemon.IntervalSec = 45
	cfg.Daemon.LogFile = "/var/log/goalpaced.log"

	flagDaemonAddr, flagDaemonInterval, flagDaemonLogFile = "", 0, ""
	addr, iv, lf := daemonSettings(cfg)
	if addr != "127.0.0.1:7000" || iv != 45*time.Second || lf != "/var/log/goalpaced.log" {
		t.Errorf("daemonSettings = %q %v %q, want config values", addr, iv, lf)
	}

	flagDaemonAddr, flagDaemonInterval = "0.0.0.0:9999", 5*time.Second
	addr, iv, _ = daemonSettings(cfg)
	if addr != "0.0.0.0:9999" || iv != 5*time.Second {
		t.Errorf("daemonSettings = %q %v, want flag values", addr, iv)
	}
}
