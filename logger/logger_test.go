package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/tmp/chrombench.log", logFile("/tmp/"))
	assert.Equal(t, "/var/log/chrombench.log", logFile("/var/log"))
}
