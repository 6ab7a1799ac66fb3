// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application. The
// renderer receives the device; it never creates one.
type DeviceHandle = gpucontext.DeviceProvider

// halProvider is implemented by hosts whose Device and Queue are wrapper
// types that expose the hal objects separately.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halDevice extracts the hal device and queue from h.
func halDevice(h DeviceHandle) (hal.Device, hal.Queue, bool) {
	if h == nil {
		return nil, nil, false
	}
	if hp, ok := h.(halProvider); ok {
		d, dok := hp.HalDevice().(hal.Device)
		q, qok := hp.HalQueue().(hal.Queue)
		if dok && qok && d != nil && q != nil {
			return d, q, true
		}
	}
	d, dok := h.Device().(hal.Device)
	q, qok := h.Queue().(hal.Queue)
	if !dok || !qok || d == nil || q == nil {
		return nil, nil, false
	}
	return d, q, true
}

// NullDeviceHandle is a DeviceHandle without a device, for CPU-only hosts.
type NullDeviceHandle struct{}

// Device returns nil.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns TextureFormatUndefined.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports an unknown adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "none", Type: gpucontext.AdapterTypeUnknown}
}

var _ DeviceHandle = NullDeviceHandle{}
