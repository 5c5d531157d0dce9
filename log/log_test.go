package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRoot(t *testing.T, l Logger) {
	t.Helper()
	prev := Root()
	SetDefault(l)
	t.Cleanup(func() { SetDefault(prev) })
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("trace")
	require.NoError(t, err)
	assert.Equal(t, LevelTrace, lvl)

	lvl, err = ParseLevel("Warning")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, lvl)

	lvl, err = ParseLevel("5")
	require.NoError(t, err)
	assert.Equal(t, LevelTrace, lvl)

	lvl, err = ParseLevel("0")
	require.NoError(t, err)
	assert.Equal(t, LevelCrit, lvl)

	lvl, err = ParseLevel("3")
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
	_, err = ParseLevel("-1")
	assert.Error(t, err)
}

func TestModuleFiltering(t *testing.T) {
	var buf bytes.Buffer
	withRoot(t, NewLogger(NewTerminalHandlerWithLevel(&buf, LevelTrace, false)))

	DisableModule(TreeModule)
	Debug(TreeModule, "hidden")
	assert.Empty(t, buf.String())

	EnableModule(TreeModule)
	t.Cleanup(func() { DisableModule(TreeModule) })
	Trace(TreeModule, "parsed tree", "constants", 2)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "TRACE["), out)
	assert.Contains(t, out, "parsed tree")
	assert.Contains(t, out, "module=tree_mod")
	assert.Contains(t, out, "constants=2")

	buf.Reset()
	Warn(BoxModule, "always shown")
	assert.True(t, strings.HasPrefix(buf.String(), "WARN ["), buf.String())

	buf.Reset()
	Warn(BoxModule, "quoted", "note", "two words")
	assert.Contains(t, buf.String(), `note="two words"`)
}

func TestEnableModules(t *testing.T) {
	EnableModules("codec_mod, store_mod")
	t.Cleanup(func() {
		DisableModule(CodecModule)
		DisableModule(StoreModule)
	})
	enabled := EnabledModules()
	assert.Contains(t, enabled, CodecModule)
	assert.Contains(t, enabled, StoreModule)
	assert.NotContains(t, enabled, TypeModule)
}

func TestDiscardByDefault(t *testing.T) {
	assert.False(t, NewLogger(DiscardHandler()).Enabled(context.Background(), LevelCrit))
}

func TestStructuredLog(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	l := NewStructuredLog(CodecModule, "decode", []byte{0x04, 0x8c}, "type", "Int", "consumed", 2, "time", ts)
	b, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Equal(t, `{"time":"2024-01-02T03:04:05Z","module":"codec_mod","event":"decode","type":"Int","consumed":2,"codec_encoded":"048c"}`, string(b))

	var buf bytes.Buffer
	withRoot(t, NewLogger(JSONHandlerWithLevel(&buf, LevelDebug)))
	EnableModule(CodecModule)
	t.Cleanup(func() { DisableModule(CodecModule) })
	Structured(CodecModule, "encode", []byte{0x01})
	line := strings.TrimSpace(buf.String())
	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "encode", rec["msg"])
	assert.Equal(t, "debug", rec["lvl"])
	structured := rec["structured"].(map[string]interface{})
	assert.Equal(t, "01", structured["codec_encoded"])
}

func TestTerminalColors(t *testing.T) {
	var buf bytes.Buffer
	withRoot(t, NewLogger(NewTerminalHandlerWithLevel(&buf, LevelTrace, true)))

	Error(CodecModule, "boom")
	Root().Write(LevelCrit, CodecModule, "worse")
	out := buf.String()
	assert.Contains(t, out, "\x1b[31mERROR\x1b[0m[")
	assert.Contains(t, out, "\x1b[35mCRIT \x1b[0m[")
}
