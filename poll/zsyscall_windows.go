// File: poll/zsyscall_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Procedures and structures the Windows backend needs beyond what
// golang.org/x/sys/windows exports: the ntdll AFD control path and the
// batched completion dequeue.

//go:build windows

package poll

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modntdll    = windows.NewLazySystemDLL("ntdll.dll")
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procNtDeviceIoControlFile       = modntdll.NewProc("NtDeviceIoControlFile")
	procNtCancelIoFileEx            = modntdll.NewProc("NtCancelIoFileEx")
	procGetQueuedCompletionStatusEx = modkernel32.NewProc("GetQueuedCompletionStatusEx")
	procPostQueuedCompletionStatus  = modkernel32.NewProc("PostQueuedCompletionStatus")
)

// overlappedEntry mirrors OVERLAPPED_ENTRY. The overlapped field is declared
// uintptr on purpose: this backend never passes real OVERLAPPED pointers
// through the port, only slab keys and waker tokens.
type overlappedEntry struct {
	completionKey    uintptr
	overlapped       uintptr
	internal         uintptr
	bytesTransferred uint32
}

// AFD poll ioctl and its event bits, as implemented by \Device\Afd.
const (
	ioctlAfdPoll = 0x00012024

	afdPollReceive          = 0x0001
	afdPollReceiveExpedited = 0x0002
	afdPollSend             = 0x0004
	afdPollDisconnect       = 0x0008
	afdPollAbort            = 0x0010
	afdPollLocalClose       = 0x0020
	afdPollAccept           = 0x0080
	afdPollConnectFail      = 0x0100
)

// sioBaseHandle unwraps layered service providers down to the base socket
// handle AFD knows about.
const sioBaseHandle = 0x48000022

const fileSkipSetEventOnHandle = 2

type afdPollHandleInfo struct {
	handle windows.Handle
	events uint32
	status windows.NTStatus
}

type afdPollInfo struct {
	timeout         int64
	numberOfHandles uint32
	exclusive       uint32
	handles         [1]afdPollHandleInfo
}

func ntDeviceIoControlFile(h windows.Handle, apcContext uintptr, iosb *windows.IO_STATUS_BLOCK, ioctl uint32, inout unsafe.Pointer, size uint32) windows.NTStatus {
	r0, _, _ := syscall.SyscallN(procNtDeviceIoControlFile.Addr(),
		uintptr(h),
		0, // event
		0, // apc routine
		apcContext,
		uintptr(unsafe.Pointer(iosb)),
		uintptr(ioctl),
		uintptr(inout), uintptr(size),
		uintptr(inout), uintptr(size))
	return windows.NTStatus(r0)
}

func ntCancelIoFileEx(h windows.Handle, iosb *windows.IO_STATUS_BLOCK) windows.NTStatus {
	var cancelIosb windows.IO_STATUS_BLOCK
	r0, _, _ := syscall.SyscallN(procNtCancelIoFileEx.Addr(),
		uintptr(h),
		uintptr(unsafe.Pointer(iosb)),
		uintptr(unsafe.Pointer(&cancelIosb)))
	return windows.NTStatus(r0)
}

func getQueuedCompletionStatusEx(port windows.Handle, entries []overlappedEntry, timeoutMs uint32) (int, error) {
	var removed uint32
	r1, _, e1 := syscall.SyscallN(procGetQueuedCompletionStatusEx.Addr(),
		uintptr(port),
		uintptr(unsafe.Pointer(&entries[0])),
		uintptr(len(entries)),
		uintptr(unsafe.Pointer(&removed)),
		uintptr(timeoutMs),
		0) // not alertable
	if r1 == 0 {
		if e1 != 0 {
			return 0, e1
		}
		return 0, syscall.EINVAL
	}
	return int(removed), nil
}

// postCompletion delivers an artificial completion packet. value travels in
// the overlapped-pointer slot of the entry and is never dereferenced.
func postCompletion(port windows.Handle, key uintptr, value uintptr) error {
	r1, _, e1 := syscall.SyscallN(procPostQueuedCompletionStatus.Addr(),
		uintptr(port),
		0, // bytes transferred
		key,
		value)
	if r1 == 0 {
		if e1 != 0 {
			return e1
		}
		return syscall.EINVAL
	}
	return nil
}
