package base

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
)

// requestTerminator ends a request. A request may also end at EOF.
const requestTerminator = '\n'

// ErrMessageTooLarge is returned by readMessage if a request exceeds the configured size
var ErrMessageTooLarge = errors.New("message too large")

// readMessage reads one request from the connection into buf.
// The request ends at the first newline (which is not part of the request) or
// when the client closes its writing side. Requests longer than maxSize bytes
// fail with ErrMessageTooLarge. buf must hold at least maxSize+1 bytes.
func readMessage(conn net.Conn, buf []byte, maxSize int) ([]byte, error) {
	if len(buf) < maxSize+1 {
		buf = make([]byte, maxSize+1)
	}
	buf = buf[:maxSize+1]

	n := 0
	for {
		m, err := conn.Read(buf[n:])
		if i := bytes.IndexByte(buf[n:n+m], requestTerminator); i >= 0 {
			return buf[:n+i], nil
		}
		n += m

		if n > maxSize {
			return nil, fmt.Errorf("%w: more than %d bytes", ErrMessageTooLarge, maxSize)
		}
		if errors.Is(err, io.EOF) {
			if n == 0 {
				return nil, io.EOF
			}
			return buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// writeMessage writes a request followed by the terminator in a single write
func writeMessage(conn net.Conn, data []byte) error {
	b := net.Buffers{data, []byte{requestTerminator}}
	_, err := b.WriteTo(conn)
	return err
}

// closeWrite half-closes the connection if the connection type supports it
func closeWrite(conn net.Conn) error {
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return nil
}
