//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package term

func isTerminal(int) bool {
	return false
}
