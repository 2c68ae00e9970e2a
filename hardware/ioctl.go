package hardware

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl request encoding, after include/uapi/asm-generic/ioctl.h.

const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift
}

func ior(typ, nr, size uintptr) uintptr { return ioc(iocRead, typ, nr, size) }
func iow(typ, nr, size uintptr) uintptr { return ioc(iocWrite, typ, nr, size) }

// spidev requests, include/uapi/linux/spi/spidev.h.
const spiIOCMagic = 'k'

var (
	spiIOCRdBitsPerWord = ior(spiIOCMagic, 3, 1)
	spiIOCWrBitsPerWord = iow(spiIOCMagic, 3, 1)
	spiIOCRdMaxSpeedHz  = ior(spiIOCMagic, 4, 4)
	spiIOCWrMaxSpeedHz  = iow(spiIOCMagic, 4, 4)
	spiIOCRdMode32      = ior(spiIOCMagic, 5, 4)
	spiIOCWrMode32      = iow(spiIOCMagic, 5, 4)
	spiIOCMessage1      = iow(spiIOCMagic, 0, unsafe.Sizeof(spiIOCTransfer{}))
)

// spiIOCTransfer mirrors struct spi_ioc_transfer.
type spiIOCTransfer struct {
	txBuf          uint64
	rxBuf          uint64
	length         uint32
	speedHz        uint32
	delayUsecs     uint16
	bitsPerWord    uint8
	csChange       uint8
	txNbits        uint8
	rxNbits        uint8
	wordDelayUsecs uint8
	pad            uint8
}

// ioctl is replaced in tests.
var ioctl = sysIoctl

func sysIoctl(fd uintptr, req uintptr, arg unsafe.Pointer) (uintptr, error) {
	r, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	runtime.KeepAlive(arg)
	if errno != 0 {
		return r, errno
	}
	return r, nil
}
