package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bptree"
)

func TestZapAdapter(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZap(zap.New(core))

	log.Debug("root split", "height", 2)
	log.Warn("slow", "op", "insert")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "root split", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(2), entries[0].ContextMap()["height"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "insert", entries[1].ContextMap()["op"])
}

func TestLogrusAdapter(t *testing.T) {
	t.Parallel()

	base, hook := logrustest.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	log := NewLogrus(base)

	log.Info("root collapse", "height", 1, "keys", 0)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "root collapse", entry.Message)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, 1, entry.Data["height"])
	assert.Equal(t, 0, entry.Data["keys"])

	log.Error("dangling", "key")
	assert.Equal(t, "key", hook.LastEntry().Data["!BADKEY"])
}

func TestTreeWithZapLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	tree, err := bptree.New[int, string](3, bptree.WithLogger(NewZap(zap.New(core))))
	require.NoError(t, err)

	for k := 0; k < 10; k++ {
		require.NoError(t, tree.Insert(k, "v"))
	}

	splits := logs.FilterMessage("root split").All()
	assert.Len(t, splits, tree.Height()-1)
	assert.Equal(t, int64(tree.Height()), splits[len(splits)-1].ContextMap()["height"])
}
