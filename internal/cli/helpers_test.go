// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cmdline/internal/config"
)

const testGrammar = `
[[type]]
name = "text"
needs_data = true

[[type]]
name = "flag"

[[command]]
command = "show interfaces"
help = "Show interface status"
  [[command.argument]]
  name = "statistics"
  type = "flag"

[[command]]
command = "show log"
help = "Show log messages"
  [[command.argument]]
  name = "since"
  type = "text"

[[command]]
command = "tell"
  [[command.argument]]
  name = "user"
  type = "text"
  mandatory = true

  [[command.argument]]
  name = "message"
  type = "text"
  nokeyword = true
  multiple_words = true
`

type testApp struct {
	*App
	path string
	out  *bytes.Buffer
	err  *bytes.Buffer
}

func writeGrammar(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// newTestApp returns an app over testGrammar with plain output captured
// in buffers. The grammar is not loaded yet.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.toml")
	writeGrammar(t, path, testGrammar)

	cfg := config.Default()
	cfg.Grammar.Path = path
	cfg.Grammar.Watch = false
	cfg.UI.Color = "never"

	var out, errOut bytes.Buffer
	app, err := NewApp(Args{}, WithConfig(cfg), WithOutput(&out, &errOut))
	require.NoError(t, err)
	return &testApp{App: app, path: path, out: &out, err: &errOut}
}

func newLoadedApp(t *testing.T) *testApp {
	t.Helper()
	app := newTestApp(t)
	require.NoError(t, app.Load())
	return app
}
