//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"gridsnap/geom"
	"gridsnap/log"
	"gridsnap/monitor"
	"gridsnap/placement"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	shcore = windows.NewLazySystemDLL("shcore.dll")
	dwmapi = windows.NewLazySystemDLL("dwmapi.dll")

	procEnumDisplayMonitors    = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW        = user32.NewProc("GetMonitorInfoW")
	procEnumDisplayDevicesW    = user32.NewProc("EnumDisplayDevicesW")
	procGetForegroundWindow    = user32.NewProc("GetForegroundWindow")
	procGetWindow              = user32.NewProc("GetWindow")
	procIsWindowVisible        = user32.NewProc("IsWindowVisible")
	procIsIconic               = user32.NewProc("IsIconic")
	procGetWindowLongW         = user32.NewProc("GetWindowLongW")
	procGetWindowRect          = user32.NewProc("GetWindowRect")
	procGetSystemMetrics       = user32.NewProc("GetSystemMetrics")
	procSetWindowPos           = user32.NewProc("SetWindowPos")
	procShowWindow             = user32.NewProc("ShowWindow")
	procIsZoomed               = user32.NewProc("IsZoomed")
	procSetProcessDpiAwareness = user32.NewProc("SetProcessDpiAwarenessContext")
	procGetDpiForMonitor       = shcore.NewProc("GetDpiForMonitor")
	procDwmGetWindowAttribute  = dwmapi.NewProc("DwmGetWindowAttribute")
)

const (
	monitorInfoPrimary = 1
	eddDeviceInterface = 1 // EDD_GET_DEVICE_INTERFACE_NAME
	mdtEffectiveDPI    = 0

	gwlStyle      = ^uintptr(15) // GWL_STYLE (-16)
	gwlExStyle    = ^uintptr(19) // GWL_EXSTYLE (-20)
	gwHwndNext    = 2
	wsExToolWin   = 0x00000080
	wsThickFrame  = 0x00040000
	smCxMinTrack  = 34
	smCyMinTrack  = 35
	swRestore     = 9
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010

	dwmaCloaked             = 14
	dwmaExtendedFrameBounds = 9
)

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is (HANDLE)(-4)
var dpiAwarenessPerMonitorV2 = ^uintptr(3)

type rect32 struct {
	Left, Top, Right, Bottom int32
}

func (r rect32) rect() geom.Rect {
	return geom.FromEdges(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
}

type monitorInfoExW struct {
	Size    uint32
	Monitor rect32
	Work    rect32
	Flags   uint32
	Device  [32]uint16
}

type displayDeviceW struct {
	Size         uint32
	DeviceName   [32]uint16
	DeviceString [128]uint16
	StateFlags   uint32
	DeviceID     [128]uint16
	DeviceKey    [128]uint16
}

type nativeBackend struct {
	// self is the foreground window when the backend was opened: the
	// terminal the overlay runs in.
	self WindowHandle
}

// Native returns the Win32 backend. The process is switched to per-monitor
// DPI awareness so every rectangle is in physical pixels.
func Native() (Backend, error) {
	if procSetProcessDpiAwareness.Find() == nil {
		if r, _, _ := procSetProcessDpiAwareness.Call(dpiAwarenessPerMonitorV2); r == 0 {
			log.WarningLog.Printf("SetProcessDpiAwarenessContext failed, coordinates may be scaled")
		}
	}
	self, _, _ := procGetForegroundWindow.Call()
	return nativeBackend{self: WindowHandle(self)}, nil
}

func (nativeBackend) Monitors() ([]monitor.Descriptor, error) {
	var descs []monitor.Descriptor
	var enumErr error

	cb := windows.NewCallback(func(hMonitor, hdc, lprc, data uintptr) uintptr {
		var mi monitorInfoExW
		mi.Size = uint32(unsafe.Sizeof(mi))
		if r, _, err := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi))); r == 0 {
			enumErr = fmt.Errorf("GetMonitorInfoW: %w", err)
			return 0
		}
		device := windows.UTF16ToString(mi.Device[:])
		phys := mi.Monitor.rect()
		descs = append(descs, monitor.Descriptor{
			ID:       monitor.DeriveID(deviceIdentity(device), phys),
			Name:     device,
			Physical: phys,
			WorkArea: mi.Work.rect(),
			DPIScale: dpiScale(hMonitor),
			Primary:  mi.Flags&monitorInfoPrimary != 0,
		})
		return 1
	})

	if r, _, err := procEnumDisplayMonitors.Call(0, 0, cb, 0); r == 0 && enumErr == nil {
		enumErr = fmt.Errorf("EnumDisplayMonitors: %w", err)
	}
	if enumErr != nil {
		return nil, enumErr
	}
	if len(descs) == 0 {
		return nil, monitor.ErrNoMonitors
	}
	return descs, nil
}

// deviceIdentity returns the device interface path of the first adapter
// output attached to device, falling back to the GDI device name.
func deviceIdentity(device string) string {
	name, err := windows.UTF16PtrFromString(device)
	if err != nil {
		return device
	}
	var dd displayDeviceW
	dd.Size = uint32(unsafe.Sizeof(dd))
	r, _, _ := procEnumDisplayDevicesW.Call(uintptr(unsafe.Pointer(name)), 0, uintptr(unsafe.Pointer(&dd)), eddDeviceInterface)
	if r == 0 {
		return device
	}
	if id := windows.UTF16ToString(dd.DeviceID[:]); id != "" {
		return id
	}
	return device
}

func dpiScale(hMonitor uintptr) float64 {
	if procGetDpiForMonitor.Find() != nil {
		return 1
	}
	var dx, dy uint32
	r, _, _ := procGetDpiForMonitor.Call(hMonitor, mdtEffectiveDPI, uintptr(unsafe.Pointer(&dx)), uintptr(unsafe.Pointer(&dy)))
	if r != 0 || dx == 0 {
		return 1
	}
	return float64(dx) / 96
}

// ActiveWindow returns the foreground window, or the window under the
// overlay's terminal while the terminal has the focus.
func (b nativeBackend) ActiveWindow() (WindowHandle, error) {
	fg, _, _ := procGetForegroundWindow.Call()
	h, err := pickTarget(WindowHandle(fg), b.self, b)
	if err == nil && h != WindowHandle(fg) {
		log.InfoLog.Printf("terminal has the focus, targeting window %#x below it", uintptr(h))
	}
	return h, err
}

func (nativeBackend) below(w WindowHandle) WindowHandle {
	next, _, _ := procGetWindow.Call(uintptr(w), gwHwndNext)
	return WindowHandle(next)
}

func (nativeBackend) eligible(w WindowHandle) bool {
	hwnd := uintptr(w)
	if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
		return false
	}
	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		return false
	}
	if ex, _, _ := procGetWindowLongW.Call(hwnd, gwlExStyle); ex&wsExToolWin != 0 {
		return false
	}
	if procDwmGetWindowAttribute.Find() == nil {
		var cloaked uint32
		hr, _, _ := procDwmGetWindowAttribute.Call(hwnd, dwmaCloaked,
			uintptr(unsafe.Pointer(&cloaked)), unsafe.Sizeof(cloaked))
		if hr == 0 && cloaked != 0 {
			return false
		}
	}
	return true
}

func (nativeBackend) Constraints(h WindowHandle) (placement.WindowConstraints, error) {
	var wr rect32
	if r, _, err := procGetWindowRect.Call(uintptr(h), uintptr(unsafe.Pointer(&wr))); r == 0 {
		return placement.WindowConstraints{}, fmt.Errorf("GetWindowRect: %w", err)
	}
	style, _, _ := procGetWindowLongW.Call(uintptr(h), gwlStyle)
	minW, _, _ := procGetSystemMetrics.Call(smCxMinTrack)
	minH, _, _ := procGetSystemMetrics.Call(smCyMinTrack)
	return placement.WindowConstraints{
		MinW:      int(minW),
		MinH:      int(minH),
		Resizable: style&wsThickFrame != 0,
		Current:   wr.rect().Size(),
	}, nil
}

// MoveResize places the window so its visible frame matches r. Windows 10+
// draws invisible resize borders outside the visible frame, so the target is
// grown by their size.
func (nativeBackend) MoveResize(h WindowHandle, r geom.Rect) error {
	hwnd := uintptr(h)
	if zoomed, _, _ := procIsZoomed.Call(hwnd); zoomed != 0 {
		procShowWindow.Call(hwnd, swRestore)
	}

	target := r
	if l, t, rr, b, ok := invisibleBorders(hwnd); ok {
		target = r.Inset(-l, -t, -rr, -b)
	}

	ret, _, err := procSetWindowPos.Call(hwnd, 0,
		uintptr(target.X), uintptr(target.Y), uintptr(target.W), uintptr(target.H),
		swpNoZOrder|swpNoActivate)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos: %w", err)
	}
	return nil
}

func invisibleBorders(hwnd uintptr) (left, top, right, bottom int, ok bool) {
	if procDwmGetWindowAttribute.Find() != nil {
		return 0, 0, 0, 0, false
	}
	var outer, frame rect32
	if r, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&outer))); r == 0 {
		return 0, 0, 0, 0, false
	}
	hr, _, _ := procDwmGetWindowAttribute.Call(hwnd, dwmaExtendedFrameBounds,
		uintptr(unsafe.Pointer(&frame)), unsafe.Sizeof(frame))
	if hr != 0 {
		return 0, 0, 0, 0, false
	}
	return int(frame.Left - outer.Left), int(frame.Top - outer.Top),
		int(outer.Right - frame.Right), int(outer.Bottom - frame.Bottom), true
}
