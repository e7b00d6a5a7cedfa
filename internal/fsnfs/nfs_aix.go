//go:build aix

package fsnfs

import "golang.org/x/sys/unix"

// IsNFS reports whether root is mounted via NFS.
func IsNFS(root string) bool {
	var st unix.Statfs_t
	if err := unix.Statfs(root, &st); err != nil {
		return false
	}
	fsType := cString(st.Fname[:])
	if fsType == "" {
		fsType = cString(st.Fpack[:])
	}
	return isNFSType(fsType)
}
