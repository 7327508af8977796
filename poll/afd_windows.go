// File: poll/afd_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Helper handle to the Ancillary Function Driver. All readiness polls are
// DeviceIoControl requests submitted through this handle; completions are
// delivered on the selector's port.

//go:build windows

package poll

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// afdHelperName is an arbitrary suffix under the AFD device namespace; the
// driver accepts any name and the suffix only shows up in debugging tools.
const afdHelperName = `\Device\Afd\HioloadPoll`

// openAfd opens the AFD helper handle and associates it with port under
// keyAfd, so every poll completion carries that key.
func openAfd(port windows.Handle) (windows.Handle, error) {
	name, err := windows.NewNTUnicodeString(afdHelperName)
	if err != nil {
		return windows.InvalidHandle, err
	}
	oa := windows.OBJECT_ATTRIBUTES{ObjectName: name}
	oa.Length = uint32(unsafe.Sizeof(oa))

	var (
		h    windows.Handle
		iosb windows.IO_STATUS_BLOCK
	)
	err = windows.NtCreateFile(&h,
		windows.SYNCHRONIZE,
		&oa,
		&iosb,
		nil,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		windows.FILE_OPEN,
		0,
		0,
		0)
	if err != nil {
		return windows.InvalidHandle, err
	}
	if _, err := windows.CreateIoCompletionPort(h, port, keyAfd, 0); err != nil {
		windows.CloseHandle(h)
		return windows.InvalidHandle, err
	}
	// The helper handle never signals; skip the per-operation event write.
	if err := windows.SetFileCompletionNotificationModes(h, fileSkipSetEventOnHandle); err != nil {
		windows.CloseHandle(h)
		return windows.InvalidHandle, err
	}
	return h, nil
}

// afdPoll submits one AFD poll request for info.handles[0] through the
// helper handle. apcContext is echoed back verbatim as the overlapped field
// of the completion entry; the caller passes a slab key, never a pointer.
// The info and iosb buffers must stay reachable until the completion for
// this request has been consumed.
func afdPoll(afd windows.Handle, info *afdPollInfo, iosb *windows.IO_STATUS_BLOCK, apcContext uintptr) windows.NTStatus {
	iosb.Status = windows.STATUS_PENDING
	return ntDeviceIoControlFile(afd, apcContext, iosb, ioctlAfdPoll,
		unsafe.Pointer(info), uint32(unsafe.Sizeof(*info)))
}

// baseSocket resolves the base provider handle of a socket, stepping past
// any layered service providers. AFD polls must target the base handle.
func baseSocket(raw windows.Handle) (windows.Handle, error) {
	var (
		base     windows.Handle
		returned uint32
	)
	err := windows.WSAIoctl(raw, sioBaseHandle, nil, 0,
		(*byte)(unsafe.Pointer(&base)), uint32(unsafe.Sizeof(base)), &returned, nil, 0)
	if err != nil {
		return windows.InvalidHandle, err
	}
	return base, nil
}

// interestsToAfd translates a portable Interest into the AFD event mask.
// Close and failure bits are always armed alongside the requested
// direction so the caller is not starved when the peer goes away.
func interestsToAfd(interests Interest) uint32 {
	var flags uint32
	if interests.IsReadable() {
		flags |= afdPollReceive | afdPollReceiveExpedited | afdPollAccept |
			afdPollDisconnect | afdPollAbort | afdPollConnectFail
	}
	if interests.IsWritable() {
		flags |= afdPollSend | afdPollAbort | afdPollConnectFail
	}
	return flags
}

// afdToReady maps delivered AFD events onto the portable readiness flags.
func afdToReady(events uint32) readiness {
	var r readiness
	if events&(afdPollReceive|afdPollAccept|afdPollDisconnect|afdPollAbort) != 0 {
		r |= readyReadable
	}
	if events&afdPollReceiveExpedited != 0 {
		r |= readyReadable | readyPriority
	}
	if events&afdPollSend != 0 {
		r |= readyWritable
	}
	if events&(afdPollDisconnect|afdPollAbort|afdPollConnectFail) != 0 {
		r |= readyReadClosed
	}
	if events&(afdPollAbort|afdPollConnectFail) != 0 {
		r |= readyWriteClosed | readyError
	}
	if events&afdPollConnectFail != 0 {
		r |= readyWritable
	}
	return r
}
