package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualHandler_ErrorsGoToBothOutputs(t *testing.T) {
	var out, errOut bytes.Buffer

	core := slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(NewDualHandler(core, &errOut)).With(slog.String("op", "test"))

	log.Info("import started")
	log.Error("import failed", slog.String("error", "boom"))

	assert.Contains(t, out.String(), "import started")
	assert.Contains(t, out.String(), "import failed")

	assert.NotContains(t, errOut.String(), "import started")
	assert.Contains(t, errOut.String(), "import failed")
	assert.Contains(t, errOut.String(), "op=test")
}

func TestNew_ProdSkipsDebug(t *testing.T) {
	var out bytes.Buffer

	log := New(EnvProd, &out, "")
	log.Debug("hidden")
	log.Info("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}

func TestNew_DevIsJSON(t *testing.T) {
	var out bytes.Buffer

	New(EnvDev, &out, "").Info("hello")

	assert.Contains(t, out.String(), `"msg":"hello"`)
}

func TestNew_WritesErrorsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	var out bytes.Buffer

	New(EnvLocal, &out, path).Error("technet down")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "technet down")
}
