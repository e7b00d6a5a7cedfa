//go:build solaris

package fsnfs

import "golang.org/x/sys/unix"

// IsNFS reports whether root is mounted via NFS.
func IsNFS(root string) bool {
	var st unix.Statvfs_t
	if err := unix.Statvfs(root, &st); err != nil {
		return false
	}
	fsType := cString(st.Basetype[:])
	if fsType == "" {
		fsType = cString(st.Fstr[:])
	}
	return isNFSType(fsType)
}
