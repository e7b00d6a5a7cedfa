package fsnfs

import "strings"

// isNFSType reports whether a filesystem-type string read from a statfs/
// statvfs call names NFS (v2/v3/v4), shared by the aix, darwin, netbsd, and
// solaris backends, which report the type as text rather than a magic number
// (Windows matches on a prefix instead, see isNFSTypePrefix).
func isNFSType(fsType string) bool {
	fsType = strings.ToLower(strings.TrimSpace(fsType))
	return fsType == "nfs" || fsType == "nfs4"
}

// cString converts a fixed-size, NUL-terminated byte/int8/uint8 buffer (as
// returned by statfs/statvfs struct fields on aix, darwin, netbsd, and
// solaris) into a Go string, stopping at the first NUL.
func cString[T ~int8 | ~uint8](buf []T) string {
	end := 0
	for ; end < len(buf); end++ {
		if buf[end] == 0 {
			break
		}
	}
	out := make([]byte, end)
	for i := 0; i < end; i++ {
		out[i] = byte(buf[i])
	}
	return string(out)
}
