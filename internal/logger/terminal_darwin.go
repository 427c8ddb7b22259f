//go:build darwin

package logger

import "golang.org/x/sys/unix"

// ioctlReadTermios is the ioctl that reads terminal attributes on macOS.
const ioctlReadTermios = unix.TIOCGETA
