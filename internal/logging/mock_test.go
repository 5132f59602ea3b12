package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerCapturesEntries(t *testing.T) {
	mock := &MockLogger{}

	mock.Info("first", Field{Key: FieldFile, Value: "extrato.csv"})
	mock.Warn("second")

	require.Len(t, mock.Entries, 2)
	assert.Equal(t, "INFO", mock.Entries[0].Level)
	assert.Equal(t, "first", mock.Entries[0].Message)
	assert.Equal(t, []Field{{Key: FieldFile, Value: "extrato.csv"}}, mock.Entries[0].Fields)
	assert.Equal(t, "WARN", mock.Entries[1].Level)
	assert.True(t, mock.HasMessage("second"))
	assert.False(t, mock.HasMessage("third"))
}

func TestMockLoggerPendingContextScopedToOneEntry(t *testing.T) {
	mock := &MockLogger{}
	boom := errors.New("boom")

	mock.WithError(boom).WithField("file", "a.csv").Warn("bad file")
	mock.Info("clean entry")

	require.Len(t, mock.Entries, 2)
	assert.Equal(t, boom, mock.Entries[0].Error)
	assert.Equal(t, []Field{{Key: "file", Value: "a.csv"}}, mock.Entries[0].Fields)

	// The error and field belong to the first call chain only.
	assert.Nil(t, mock.Entries[1].Error)
	assert.Empty(t, mock.Entries[1].Fields)
}
