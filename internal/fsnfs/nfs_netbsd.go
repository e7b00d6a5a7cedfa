//go:build netbsd

package fsnfs

import "golang.org/x/sys/unix"

// IsNFS reports whether root is mounted via NFS.
func IsNFS(root string) bool {
	var st unix.Statvfs_t
	if err := unix.Statvfs(root, &st); err != nil {
		return false
	}
	return isNFSType(cString(st.Fstypename[:]))
}
