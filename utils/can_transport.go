package utils

import (
	"context"
	"fmt"
	"net"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

// CANWriter sends frames onto the vehicle bus.
type CANWriter interface {
	WriteFrame(ctx context.Context, frame can.Frame) error
	Close() error
}

// CANReader receives frames from the vehicle bus.
type CANReader interface {
	ReadFrame(ctx context.Context) (can.Frame, error)
	Close() error
}

type SocketCANWriter struct {
	conn net.Conn
	tx   *socketcan.Transmitter
}

func NewSocketCANWriter(ctx context.Context, iface string) (*SocketCANWriter, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial: %w", err)
	}
	return &SocketCANWriter{
		conn: conn,
		tx:   socketcan.NewTransmitter(conn),
	}, nil
}

func (w *SocketCANWriter) WriteFrame(ctx context.Context, frame can.Frame) error {
	return w.tx.TransmitFrame(ctx, frame)
}

func (w *SocketCANWriter) Close() error {
	if w.conn != nil {
		return w.conn.Close()
	}
	return nil
}

type SocketCANReader struct {
	conn net.Conn
	recv *socketcan.Receiver
}

func NewSocketCANReader(ctx context.Context, iface string) (*SocketCANReader, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial: %w", err)
	}
	return &SocketCANReader{
		conn: conn,
		recv: socketcan.NewReceiver(conn),
	}, nil
}

// ReadFrame blocks until a frame arrives or ctx is done. The receive runs in
// a goroutine so cancellation does not wait on bus traffic.
func (r *SocketCANReader) ReadFrame(ctx context.Context) (can.Frame, error) {
	frameCh := make(chan can.Frame, 1)
	errCh := make(chan error, 1)

	go func() {
		if r.recv.Receive() {
			frameCh <- r.recv.Frame()
		} else {
			errCh <- fmt.Errorf("receive failed")
		}
	}()

	select {
	case <-ctx.Done():
		return can.Frame{}, ctx.Err()
	case frame := <-frameCh:
		return frame, nil
	case err := <-errCh:
		return can.Frame{}, err
	}
}

func (r *SocketCANReader) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
