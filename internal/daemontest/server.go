package daemontest

import (
	"net/http/httptest"
	"testing"
)

// Serve starts d on a local port and stops it when the test ends.
func Serve(t testing.TB, d *Daemon) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(d.Handler())
	t.Cleanup(srv.Close)
	return srv
}
