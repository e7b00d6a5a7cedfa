//go:build linux

package fsnfs

import "syscall"

const nfsSuperMagic = 0x6969

// IsNFS reports whether root is mounted via NFS (v2/v3/v4).
func IsNFS(root string) bool {
	var st syscall.Statfs_t
	if err := syscall.Statfs(root, &st); err != nil {
		return false
	}
	return st.Type == nfsSuperMagic
}
