package daemon

import (
	"testing"

	"github.com/pilebones/go-udev/netlink"
)

func TestExtractDeviceName(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "devname preferred",
			env:  map[string]string{"DEVNAME": "/dev/sdb1", "DEVPATH": "/devices/pci0000/block/sdb"},
			want: "/dev/sdb1",
		},
		{
			name: "fallback to devpath",
			env:  map[string]string{"DEVPATH": "/devices/pci0000/usb1/block/sdb"},
			want: "/dev/sdb",
		},
		{
			name: "no identifying env",
			env:  map[string]string{},
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractDeviceName(netlink.UEvent{Env: tc.env})
			if got != tc.want {
				t.Fatalf("extractDeviceName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMonitorNilReceiverSafe(t *testing.T) {
	var m *deviceMonitor
	if err := m.Start(t.Context()); err != nil {
		t.Fatalf("nil monitor Start: %v", err)
	}
	m.Stop()
	if m.Running() {
		t.Fatal("nil monitor must not report running")
	}
}
