package fbdev

import (
	"image"
	"log"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

type fixScreenInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
func Open(name string) (*Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	var (
		fd         = f.Fd()
		info       fixScreenInfo
		screenInfo varScreenInfo
	)
	if err = ioctl(fd, fbioGetFScreenInfo, unsafe.Pointer(&info)); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl(fd, fbioGetVScreenInfo, unsafe.Pointer(&screenInfo)); err != nil {
		_ = f.Close()
		return nil, err
	}

	format, err := parseFormat(&screenInfo)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	pix, err := unix.Mmap(int(fd), 0, int(info.SmemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	var (
		stride = int(info.LineLength)
		offset = int(screenInfo.Yoffset)*stride + int(screenInfo.Xoffset)*format.bytes
		rect   = image.Rect(0, 0, int(screenInfo.Xres), int(screenInfo.Yres))
	)
	d, err := newDevice(name, pix, stride, offset, rect, format)
	if err != nil {
		_ = unix.Munmap(pix)
		_ = f.Close()
		return nil, err
	}
	d.closer = func() error {
		if err := unix.Munmap(pix); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}
	if debug {
		log.Printf("fbdev: opened %s", d)
	}
	return d, nil
}

func ioctl(fd, cmd uintptr, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, cmd, uintptr(arg)); errno != 0 {
		return os.NewSyscallError("SYS_IOCTL", errno)
	}
	return nil
}

