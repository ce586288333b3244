package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrettyHandlerRedactsSecrets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil))

	log.Info("login attempt",
		"username", "admin",
		"password", "hunter2",
		"jwt_secret", "signing-key",
		slog.Group("request", slog.String("authorization", "Bearer abc.def.ghi")),
	)

	out := buf.String()
	require.Contains(t, out, "login attempt")
	require.Contains(t, out, "admin")
	require.Contains(t, out, "request.authorization")
	require.NotContains(t, out, "hunter2")
	require.NotContains(t, out, "signing-key")
	require.NotContains(t, out, "abc.def.ghi")
}

func TestPrettyHandlerLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	log.Info("quiet")
	require.Empty(t, buf.String())

	log.With("component", "media").Warn("loud")
	require.Contains(t, buf.String(), "loud")
	require.Contains(t, buf.String(), "component")
}
