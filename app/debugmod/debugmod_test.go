package debugmod

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		res, err := Render(DefaultParams())
		require.NoError(t, err)
		src := string(res)
		assert.True(t, strings.HasPrefix(src, "module Debuggy.App exposing (backend)\n"))
		assert.Contains(t, src, `url = "http://localhost:8001/https://backend-debugger.lamdera.app/_r/data"`)
		assert.Contains(t, src, "timeout = Just (Duration.seconds 10)")
		assert.Contains(t, src, "backend backendNoOp sessionName broadcast sendToFrontend")
		assert.Contains(t, src, "sendToViewer : msg -> DataType -> Command BackendOnly toFrontend msg")
		assert.True(t, strings.HasSuffix(src, "        )\n"))
		assert.NotContains(t, src, "{{")
	})

	t.Run("empty params are the defaults", func(t *testing.T) {
		def, err := Render(DefaultParams())
		require.NoError(t, err)
		res, err := Render(Params{})
		require.NoError(t, err)
		assert.Equal(t, def, res)
	})

	t.Run("custom module and relay", func(t *testing.T) {
		res, err := Render(Params{ModuleName: "Dev.Debugger", RelayURL: "http://127.0.0.1:9000/data", TimeoutSeconds: 3})
		require.NoError(t, err)
		src := string(res)
		assert.True(t, strings.HasPrefix(src, "module Dev.Debugger exposing (backend)\n"))
		assert.Contains(t, src, `url = "http://127.0.0.1:9000/data"`)
		assert.Contains(t, src, "Duration.seconds 3)")
	})

	t.Run("all three event kinds are encoded", func(t *testing.T) {
		res, err := Render(DefaultParams())
		require.NoError(t, err)
		for _, kind := range []string{"Json.Encode.int 0", "Json.Encode.int 1", "Json.Encode.int 2"} {
			assert.Contains(t, string(res), kind)
		}
	})

	t.Run("invalid module name", func(t *testing.T) {
		_, err := Render(Params{ModuleName: "debuggy.app"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid elm module name")
	})

	t.Run("negative timeout", func(t *testing.T) {
		_, err := Render(Params{TimeoutSeconds: -1})
		require.Error(t, err)
	})
}
