package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolveConfigDir_FlagWins(t *testing.T) {
	t.Setenv(EnvConfigDir, "/env/config")

	dir, err := ResolveConfigDir("/flag/config")
	if err != nil {
		t.Fatalf("ResolveConfigDir failed: %v", err)
	}
	if dir != "/flag/config" {
		t.Errorf("expected flag value to win, got %q", dir)
	}
}

func TestResolveConfigDir_EnvBeatsDefault(t *testing.T) {
	t.Setenv(EnvConfigDir, "/env/config")

	dir, err := ResolveConfigDir("")
	if err != nil {
		t.Fatalf("ResolveConfigDir failed: %v", err)
	}
	if dir != "/env/config" {
		t.Errorf("expected env value, got %q", dir)
	}
}

func TestResolveConfigDir_RelativeFlagMadeAbsolute(t *testing.T) {
	dir, err := ResolveConfigDir("relative/config")
	if err != nil {
		t.Fatalf("ResolveConfigDir failed: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("expected absolute path, got %q", dir)
	}
}

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-specific behavior")
	}

	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := DefaultConfigDir()
	if err != nil {
		t.Fatalf("DefaultConfigDir failed: %v", err)
	}
	if dir != filepath.Join("/xdg", "pantry") {
		t.Errorf("expected XDG-based dir, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	orig := platformDir.homeDir
	platformDir.homeDir = func() (string, error) { return "/home/alice", nil }
	defer func() { platformDir.homeDir = orig }()

	dir, err = DefaultConfigDir()
	if err != nil {
		t.Fatalf("DefaultConfigDir failed: %v", err)
	}
	if dir != filepath.Join("/home/alice", ".config", "pantry") {
		t.Errorf("expected home fallback, got %q", dir)
	}
}

func TestResolveDataDir_Precedence(t *testing.T) {
	t.Setenv(EnvDataDir, "/env/data")

	tests := []struct {
		name     string
		flag     string
		config   string
		expected string
	}{
		{"flag wins over all", "/flag/data", "/cfg/data", "/flag/data"},
		{"config beats env", "", "/cfg/data", "/cfg/data"},
		{"env beats default", "", "", "/env/data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := ResolveDataDir(tt.flag, tt.config)
			if err != nil {
				t.Fatalf("ResolveDataDir failed: %v", err)
			}
			if dir != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, dir)
			}
		})
	}
}

func TestResolveDataDir_DefaultIsCWDRelative(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	work := t.TempDir()
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origWD) })

	dir, err := ResolveDataDir("", "")
	if err != nil {
		t.Fatalf("ResolveDataDir failed: %v", err)
	}
	if filepath.Base(dir) != DefaultDataDirName {
		t.Errorf("expected %s under CWD, got %q", DefaultDataDirName, dir)
	}
}
