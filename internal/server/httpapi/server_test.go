package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodstore/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := NewServer("127.0.0.1:0", logging.NewNopLogger(), nil, nil, nil, testSecret, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunBadAddress(t *testing.T) {
	s := NewServer("256.0.0.1:bad", logging.NewNopLogger(), nil, nil, nil, testSecret, time.Minute)
	require.Error(t, s.Run(context.Background()))
}
