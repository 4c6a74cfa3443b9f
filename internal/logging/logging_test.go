package logging

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	logger := NewLogrusAdapter("debug", "json")
	require.NotNil(t, logger)

	// Invalid level falls back instead of failing.
	assert.NotNil(t, NewLogrusAdapter("nonsense", "text"))
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	base := logrus.New()
	logger := NewLogrusAdapterFromLogger(base)
	require.NotNil(t, logger)
	logger.WithField("k", "v").Info("hello")
}

func TestMockLogger(t *testing.T) {
	m := &MockLogger{}
	m.Info("import started", Field{Key: "rows", Value: 10})
	m.WithError(errors.New("boom")).Error("import failed")

	assert.True(t, m.HasEntry("INFO", "import started"))
	assert.True(t, m.HasEntry("ERROR", "import failed"))
	assert.False(t, m.HasEntry("WARN", "import failed"))
}

func TestMockLogger_WithFieldsChains(t *testing.T) {
	m := &MockLogger{}
	m.WithField("a", 1).WithFields(Field{Key: "b", Value: 2}).Warn("chained")
	assert.True(t, m.HasEntry("WARN", "chained"))
}
