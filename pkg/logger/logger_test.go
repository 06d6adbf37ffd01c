package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kits-invoicing/pkg/logger"
)

func TestNew_JSONEnProduccion(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.Info().Str("invoice_no", "KITS-ROB-001").Msg("factura creada")
	log.Debug().Msg("no debe aparecer")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "KITS-ROB-001", entry["invoice_no"])
	assert.Equal(t, "factura creada", entry["message"])
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "verbose", Output: &buf})

	log.Debug().Msg("oculto")
	assert.Zero(t, buf.Len())
}
