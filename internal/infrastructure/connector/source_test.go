package connector

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConnector struct {
	closeErr error
	closed   bool
}

func (s *stubConnector) Connect(ctx context.Context) error { return nil }

func (s *stubConnector) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	return nil, nil
}

func (s *stubConnector) Close() error {
	s.closed = true
	return s.closeErr
}

// ──────────────────────────────────────────────────────────────────────────────
// Desconexión de la fuente externa
// ──────────────────────────────────────────────────────────────────────────────

func TestSourceDisconnect_RegistraErrorDeCierre(t *testing.T) {
	var buf bytes.Buffer
	conn := &stubConnector{closeErr: errors.New("connection reset")}
	src := &Source{
		cfg:  Config{Connection: Connection{Type: "mysql"}},
		conn: conn,
		log:  zerolog.New(&buf),
	}

	src.Disconnect()

	require.True(t, conn.closed, "la conexión debe intentar cerrarse aunque falle")
	assert.Contains(t, buf.String(), "error al desconectar fuente externa")
	assert.Contains(t, buf.String(), "connection reset")
}

func TestSourceDisconnect_CierreLimpioNoRegistraError(t *testing.T) {
	var buf bytes.Buffer
	conn := &stubConnector{}
	src := &Source{
		cfg:  Config{Connection: Connection{Type: "sqlite"}},
		conn: conn,
		log:  zerolog.New(&buf),
	}

	src.Disconnect()

	assert.True(t, conn.closed)
	assert.NotContains(t, buf.String(), "error al desconectar fuente externa")
}
