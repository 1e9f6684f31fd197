package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/brintopos/brintopos/internal/adapters/outbound/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, err := logging.New(buf, "info", "json")
	require.NoError(t, err)

	logger.WithField("invoice_id", "42").Info("invoice finalized")
	logger.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "invoice finalized", line["msg"])
	assert.Equal(t, "42", line["invoice_id"])
}

func TestNew_Text(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, err := logging.New(buf, "debug", "text")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.Debug("table selected")
	assert.Contains(t, buf.String(), "table selected")
}

func TestNew_Errors(t *testing.T) {
	_, err := logging.New(new(bytes.Buffer), "loud", "text")
	assert.Error(t, err)

	_, err = logging.New(new(bytes.Buffer), "info", "xml")
	assert.Error(t, err)
}
