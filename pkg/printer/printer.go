// Package printer sends ESC/POS receipts to a thermal printer.
package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"
)

// Printer takes a complete ESC/POS byte stream. Implementations open and close the
// connection per job.
type Printer interface {
	Print(ctx context.Context, data []byte) error
}

// Device writes to a printer device file such as /dev/usb/lp0
type Device struct {
	Path string
}

func (p Device) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.Path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open device %s: %w", p.Path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to device %s: %w", p.Path, err)
	}
	return nil
}

// Network dials a raw TCP printer port, e.g. "192.168.1.100:9100"
type Network struct {
	Address string
	Timeout time.Duration
}

func (p Network) Print(ctx context.Context, data []byte) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.Address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * timeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.Address, err)
	}
	return nil
}

// Discard drops every job. It is used when no printer is configured.
type Discard struct{}

func (Discard) Print(context.Context, []byte) error { return nil }

// New returns the printer for kind: "usb" writes to target as a device file,
// "network" dials target, "none" or "" discards.
func New(kind, target string) (Printer, error) {
	switch kind {
	case "usb":
		if target == "" {
			return nil, fmt.Errorf("printer: device path is required for usb printers")
		}
		return Device{Path: target}, nil
	case "network":
		if target == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		return Network{Address: target}, nil
	case "none", "":
		return Discard{}, nil
	}
	return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", kind)
}
