package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"go.viam.com/test"
	"gopkg.in/yaml.v3"
)

type cellStruct struct {
	X int
	y int
}

// assertLogMatches compares one line of output with expected. The time only has to have the
// same shape and the caller only the same file.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualParts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	expectedParts := strings.Split(expected, "\t")
	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))
	test.That(t, len(actualParts[0]), test.ShouldEqual, len(expectedParts[0]))
	test.That(t, actualParts[1:3], test.ShouldResemble, expectedParts[1:3])

	actualFile, actualLine, found := strings.Cut(actualParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFile, _, _ := strings.Cut(expectedParts[3], ":")
	test.That(t, actualFile, test.ShouldEqual, expectedFile)
	_, err = strconv.Atoi(actualLine)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, actualParts[4], test.ShouldEqual, expectedParts[4])
	if len(actualParts) == 5 {
		return
	}
	var actualFields, expectedFields map[string]any
	test.That(t, json.Unmarshal([]byte(actualParts[5]), &actualFields), test.ShouldBeNil)
	test.That(t, json.Unmarshal([]byte(expectedParts[5]), &expectedFields), test.ShouldBeNil)
	test.That(t, actualFields, test.ShouldResemble, expectedFields)
}

func TestConsoleOutputFormat(t *testing.T) {
	out := &bytes.Buffer{}
	logger := NewBlankLogger("planner")
	logger.AddAppender(NewWriterAppender(out))

	logger.Info("region rebuilt")
	assertLogMatches(t, out,
		"2026-03-02T09:12:09.459Z\tINFO\tplanner\tlogging/logger_test.go:61\tregion rebuilt")

	logger.Infof("%d goal cells", 12)
	assertLogMatches(t, out,
		"2026-03-02T09:12:09.459Z\tINFO\tplanner\tlogging/logger_test.go:65\t12 goal cells")

	logger.Warnw("goal cells", "count", 12)
	assertLogMatches(t, out,
		"2026-03-02T09:12:09.459Z\tWARN\tplanner\tlogging/logger_test.go:69\tgoal cells\t{\"count\":12}")

	logger.Debugw("cell", "cell", cellStruct{X: 3, y: 4})
	assertLogMatches(t, out,
		"2026-03-02T09:12:09.459Z\tDEBUG\tplanner\tlogging/logger_test.go:73\tcell\t{\"cell\":{\"X\":3}}")

	logger.Errorw("dangling", "key")
	assertLogMatches(t, out,
		"2026-03-02T09:12:09.459Z\tERROR\tplanner\tlogging/logger_test.go:77\tdangling\t{\"key\":\"unpaired log key\"}")
}

func TestLevels(t *testing.T) {
	core, logs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	logger := NewBlankLogger("levels")
	logger.AddAppender(core)
	logger.SetLevel(WARN)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Errorf("kept %d", 2)

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logs.FilterMessage("kept").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("kept 2").Len(), test.ShouldEqual, 1)
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)

	t.Run("debug mode context bypasses the level", func(t *testing.T) {
		ctx := EnableDebugMode(context.Background(), "")
		test.That(t, IsDebugMode(ctx), test.ShouldBeTrue)
		test.That(t, DebugModeTag(ctx), test.ShouldHaveLength, 8)
		test.That(t, DebugModeTag(EnableDebugMode(context.Background(), "plan-7")), test.ShouldEqual, "plan-7")
		test.That(t, IsDebugMode(context.Background()), test.ShouldBeFalse)

		logger.CDebugf(ctx, "visible %s", "anyway")
		logger.CDebugw(ctx, "visible too", "cells", 3)
		logger.CDebugf(context.Background(), "still dropped")
		test.That(t, logs.FilterMessage("visible anyway").Len(), test.ShouldEqual, 1)
		test.That(t, logs.FilterMessage("visible too").Len(), test.ShouldEqual, 1)
		test.That(t, logs.FilterMessage("still dropped").Len(), test.ShouldEqual, 0)
	})
}

func TestSublogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("globalplanner")
	subsub := sub.Sublogger("region")

	subsub.Infow("rebuilt", "points", 4)
	entries := logs.All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "globalplanner.region")
	test.That(t, entries[0].ContextMap()["points"], test.ShouldEqual, int64(4))

	t.Run("levels are copied, appenders are shared", func(t *testing.T) {
		root := NewBlankLogger("root")
		root.SetLevel(ERROR)
		child := root.Sublogger("child")
		test.That(t, child.GetLevel(), test.ShouldEqual, ERROR)
		child.SetLevel(DEBUG)
		test.That(t, root.GetLevel(), test.ShouldEqual, ERROR)

		// added after the child was created
		core, logs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
		root.AddAppender(core)
		child.Debug("reaches the root appender")
		test.That(t, logs.FilterMessage("reaches the root appender").Len(), test.ShouldEqual, 1)
	})
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warning", WARN},
		{"warn", WARN},
		{" error ", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
	}

	for _, bad := range []string{"loud", "fatal", "panic"} {
		_, err := LevelFromString(bad)
		test.That(t, err, test.ShouldNotBeNil)
	}

	var cfg struct {
		Level Level `json:"level" yaml:"level"`
	}
	test.That(t, json.Unmarshal([]byte(`{"level":"warn"}`), &cfg), test.ShouldBeNil)
	test.That(t, cfg.Level, test.ShouldEqual, WARN)
	test.That(t, yaml.Unmarshal([]byte("level: debug"), &cfg), test.ShouldBeNil)
	test.That(t, cfg.Level, test.ShouldEqual, DEBUG)
	data, err := json.Marshal(cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldContainSubstring, `"level":"debug"`)
	test.That(t, json.Unmarshal([]byte(`{"level":"loud"}`), &cfg), test.ShouldNotBeNil)
}

func TestFileAppender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.log")
	appender := NewFileAppender(path, 1, 1)
	logger := NewBlankLogger("file")
	logger.AddAppender(appender)

	logger.Infow("plan", "poses", 3)
	test.That(t, logger.Sync(), test.ShouldBeNil)
	test.That(t, appender.Close(), test.ShouldBeNil)

	contents, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(contents), test.ShouldContainSubstring, "INFO\tfile\t")
	test.That(t, string(contents), test.ShouldContainSubstring, `{"poses":3}`)
	test.That(t, NewWriterAppender(&bytes.Buffer{}).Close(), test.ShouldBeNil)
}
