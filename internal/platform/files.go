package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// AndroidDownloadsDir is used instead of ~/Downloads on Android so files show up in the gallery
const AndroidDownloadsDir = "/sdcard/Download"

// OpenFileInManager opens the system file manager at path. Files are
// highlighted where the platform supports it; directories are opened.
func OpenFileInManager(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		if info.IsDir() {
			return exec.Command(OpenCommand, absPath).Run()
		}
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		if info.IsDir() {
			return exec.Command(ExplorerCommand, absPath).Run()
		}
		return exec.Command(ExplorerCommand, WindowsSelectParam+absPath).Run()
	case OSLinux:
		return openInManagerLinux(absPath, info.IsDir())
	case OSAndroid:
		return openInManagerAndroid(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openInManagerLinux opens the directory containing path
// Note: file selection is not standardized on Linux
func openInManagerLinux(path string, isDir bool) error {
	dir := path
	if !isDir {
		dir = filepath.Dir(path)
	}

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

func openInManagerAndroid(path string) error {
	cmd := exec.Command("am", "start", "-a", "android.intent.action.VIEW",
		"-d", "content://com.android.externalstorage.documents/root/primary/Download")
	if err := cmd.Run(); err == nil {
		return nil
	}

	cmd = exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", "file://"+path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open file in manager: %w", err)
	}
	return nil
}

// CreateDirectoryIfNotExists creates the directory and its parents if missing.
// An existing non-directory at dirPath is an error.
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dirPath)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dirPath, DefaultDirPermissions)
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	isAndroid := runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != ""

	if isAndroid {
		return AndroidDownloadsDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, "Downloads"), nil
}

// WriteFileExclusive writes data to a file that must not exist yet. On a
// failed write the partial file is removed so no truncated output remains.
func WriteFileExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFilePermissions)
	if err != nil {
		return err
	}

	_, writeErr := f.Write(data)
	if writeErr == nil {
		writeErr = f.Sync()
	}
	closeErr := f.Close()

	if err := errors.Join(writeErr, closeErr); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
