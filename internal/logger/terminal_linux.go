//go:build linux

package logger

import "golang.org/x/sys/unix"

// ioctlReadTermios is the ioctl that reads terminal attributes on Linux.
const ioctlReadTermios = unix.TCGETS
