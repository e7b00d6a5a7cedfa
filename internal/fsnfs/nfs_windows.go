//go:build windows

package fsnfs

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

// IsNFS reports whether root is served over an NFS-mounted drive letter.
func IsNFS(root string) bool {
	volume := filepath.VolumeName(root)
	if volume == "" {
		return false
	}
	if !strings.HasSuffix(volume, `\\`) {
		volume += `\\`
	}
	volPtr, err := windows.UTF16PtrFromString(volume)
	if err != nil {
		return false
	}
	var fsName [256]uint16
	if err := windows.GetVolumeInformation(volPtr, nil, 0, nil, nil, nil, &fsName[0], uint32(len(fsName))); err != nil {
		return false
	}
	return isNFSTypePrefix(windows.UTF16ToString(fsName[:]))
}

// isNFSTypePrefix matches loosely on a prefix rather than isNFSType's exact
// "nfs"/"nfs4" equality: Windows' NFS client reports filesystem names like
// "NFS" with no reliable version suffix to match against.
func isNFSTypePrefix(fsType string) bool {
	fsType = strings.ToLower(strings.TrimSpace(fsType))
	return strings.HasPrefix(fsType, "nfs")
}
