package transfer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/AzSumToshko/youtube-to-mp3/internal/ioutils"
)

// PlacementError reports a failed local move or remote transfer.
type PlacementError struct {
	Destination string
	Err         error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("placing file in %q: %v", e.Destination, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// Placer abstracts local filesystem moves and remote transfer. Place
// returns the final path (local path or remote spec) of the file.
type Placer interface {
	Place(ctx context.Context, localPath, destination string) (string, error)
}

// LocalPlacer copies finished files into a destination subfolder of the
// local music folder.
type LocalPlacer struct {
	musicFolder string
}

// NewLocalPlacer creates a LocalPlacer rooted at musicFolder.
func NewLocalPlacer(musicFolder string) *LocalPlacer {
	return &LocalPlacer{musicFolder: musicFolder}
}

// Place copies localPath into <musicFolder>/<destination>/, creating the
// directory if needed, and returns the destination file path.
func (p *LocalPlacer) Place(ctx context.Context, localPath, destination string) (string, error) {
	destDir := filepath.Join(p.musicFolder, ioutils.SanitizeFileName(destination))
	if err := ioutils.EnsureDir(destDir); err != nil {
		return "", &PlacementError{Destination: destination, Err: err}
	}

	destPath := filepath.Join(destDir, filepath.Base(localPath))
	if err := ioutils.CopyFile(ctx, localPath, destPath); err != nil {
		return "", &PlacementError{Destination: destination, Err: err}
	}

	return destPath, nil
}

// SCPConfig holds the connection settings for remote placement.
type SCPConfig struct {
	User     string
	Host     string
	Port     string
	KeyPath  string
	BasePath string
}

// SCPPlacer transfers finished files to a remote host over scp.
type SCPPlacer struct {
	cfg SCPConfig
}

// NewSCPPlacer creates an SCPPlacer with the given connection settings.
func NewSCPPlacer(cfg SCPConfig) *SCPPlacer {
	if cfg.Port == "" {
		cfg.Port = "22"
	}
	return &SCPPlacer{cfg: cfg}
}

// Place copies localPath to
// <user>@<host>:<base>/<destination>/<sanitized name>.
//
// The file is first copied next to itself under a plain temporary name;
// scp gets that simple path locally while the remote side receives the
// real (sanitized) filename.
func (p *SCPPlacer) Place(ctx context.Context, localPath, destination string) (string, error) {
	if _, err := os.Stat(localPath); err != nil {
		return "", &PlacementError{Destination: destination, Err: err}
	}

	tempPath := filepath.Join(filepath.Dir(localPath), "song.mp3")
	if err := ioutils.CopyFile(ctx, localPath, tempPath); err != nil {
		return "", &PlacementError{Destination: destination, Err: err}
	}
	defer os.Remove(tempPath)

	remoteName := ioutils.SanitizeFileName(filepath.Base(localPath))
	remotePath := fmt.Sprintf("%s@%s:%s/%s/%s",
		p.cfg.User, p.cfg.Host, p.cfg.BasePath, destination, remoteName)

	args := []string{"-P", p.cfg.Port}
	if p.cfg.KeyPath != "" {
		args = append(args, "-i", p.cfg.KeyPath)
	}
	args = append(args, tempPath, remotePath)

	cmd := exec.CommandContext(ctx, "scp", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", &PlacementError{
			Destination: destination,
			Err:         fmt.Errorf("scp: %w: %s", err, strings.TrimSpace(string(out))),
		}
	}

	return remotePath, nil
}
