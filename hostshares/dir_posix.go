//go:build !windows

package hostshares

// defaultDir returns the platform default host share directory on
// POSIX systems: an owner-private location under /var/lib.
func defaultDir() string {
	return "/var/lib/.ursafe_chunks"
}
