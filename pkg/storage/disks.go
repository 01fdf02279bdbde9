// Package storage resolves public URLs for files kept on named disks, used by
// file controls to show a preview of the stored upload.
package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnknownDisk is returned when a disk name has no configured base URL.
var ErrUnknownDisk = errors.New("storage: unknown disk")

// Disks maps a disk name to the public base URL its files are served from.
type Disks map[string]string

// Resolve joins path onto the base URL of disk.
func (d Disks) Resolve(disk, path string) (string, error) {
	base, ok := d[strings.TrimSpace(disk)]
	if !ok || strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownDisk, disk)
	}
	out, err := url.JoinPath(base, strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("storage: join %q on disk %q: %w", path, disk, err)
	}
	return out, nil
}
