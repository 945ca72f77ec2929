package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	Setup("debug", true)
	For("recipes").WithField("recipe_id", "r1").Info("listed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "recipes", entry["component"])
	assert.Equal(t, "r1", entry["recipe_id"])
	assert.Equal(t, "listed", entry["msg"])
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestSetupUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	Setup("chatty", false)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Unknown log level")
}
