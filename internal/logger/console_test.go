package logger

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		logLevel     string
		messageLevel string
		message      string
		shouldAppear bool
	}{
		// trace level - should see everything
		{name: "trace sees trace", logLevel: "trace", messageLevel: "trace", message: "trace msg", shouldAppear: true},
		{name: "trace sees debug", logLevel: "trace", messageLevel: "debug", message: "debug msg", shouldAppear: true},
		{name: "trace sees info", logLevel: "trace", messageLevel: "info", message: "info msg", shouldAppear: true},
		{name: "trace sees warn", logLevel: "trace", messageLevel: "warn", message: "warn msg", shouldAppear: true},
		{name: "trace sees error", logLevel: "trace", messageLevel: "error", message: "error msg", shouldAppear: true},
		{name: "trace sees fatal", logLevel: "trace", messageLevel: "fatal", message: "fatal msg", shouldAppear: true},

		// debug level - should not see trace
		{name: "debug blocks trace", logLevel: "debug", messageLevel: "trace", message: "trace msg", shouldAppear: false},
		{name: "debug sees debug", logLevel: "debug", messageLevel: "debug", message: "debug msg", shouldAppear: true},
		{name: "debug sees info", logLevel: "debug", messageLevel: "info", message: "info msg", shouldAppear: true},

		// info level - should not see trace/debug
		{name: "info blocks trace", logLevel: "info", messageLevel: "trace", message: "trace msg", shouldAppear: false},
		{name: "info blocks debug", logLevel: "info", messageLevel: "debug", message: "debug msg", shouldAppear: false},
		{name: "info sees info", logLevel: "info", messageLevel: "info", message: "info msg", shouldAppear: true},
		{name: "info sees warn", logLevel: "info", messageLevel: "warn", message: "warn msg", shouldAppear: true},
		{name: "info sees fatal", logLevel: "info", messageLevel: "fatal", message: "fatal msg", shouldAppear: true},

		// warn level - should only see warn and above
		{name: "warn blocks info", logLevel: "warn", messageLevel: "info", message: "info msg", shouldAppear: false},
		{name: "warn sees warn", logLevel: "warn", messageLevel: "warn", message: "warn msg", shouldAppear: true},
		{name: "warn sees error", logLevel: "warn", messageLevel: "error", message: "error msg", shouldAppear: true},

		// error level - should only see error and fatal
		{name: "error blocks warn", logLevel: "error", messageLevel: "warn", message: "warn msg", shouldAppear: false},
		{name: "error sees error", logLevel: "error", messageLevel: "error", message: "error msg", shouldAppear: true},
		{name: "error sees fatal", logLevel: "error", messageLevel: "fatal", message: "fatal msg", shouldAppear: true},

		// fatal level - should only see fatal
		{name: "fatal blocks error", logLevel: "fatal", messageLevel: "error", message: "error msg", shouldAppear: false},
		{name: "fatal sees fatal", logLevel: "fatal", messageLevel: "fatal", message: "fatal msg", shouldAppear: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.logLevel)

			// Log message at specified level
			switch tt.messageLevel {
			case "trace":
				logger.LogTrace(tt.message)
			case "debug":
				logger.LogDebug(tt.message)
			case "info":
				logger.LogInfo(tt.message)
			case "warn":
				logger.LogWarn(tt.message)
			case "error":
				logger.LogError(tt.message)
			case "fatal":
				logger.LogFatal(tt.message)
			}

			output := buf.String()
			contains := strings.Contains(output, tt.message)

			if tt.shouldAppear && !contains {
				t.Errorf("Expected message %q to appear in output, but it didn't. Output: %q", tt.message, output)
			}
			if !tt.shouldAppear && contains {
				t.Errorf("Expected message %q NOT to appear in output, but it did. Output: %q", tt.message, output)
			}
		})
	}
}

// TestConsoleLoggerFormat verifies the "[HH:MM:SS] [LEVEL] message" format
func TestConsoleLoggerFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "trace")

	logger.LogInfo("hello world")

	output := buf.String()
	pattern := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[INFO\] hello world\n$`)
	if !pattern.MatchString(output) {
		t.Errorf("Output format mismatch. Got: %q", output)
	}
}

// TestConsoleLoggerFormattedMethods verifies the printf-style variants
func TestConsoleLoggerFormattedMethods(t *testing.T) {
	tests := []struct {
		name      string
		log       func(cl *ConsoleLogger)
		wantLevel string
		wantMsg   string
	}{
		{name: "Tracef", log: func(cl *ConsoleLogger) { cl.Tracef("step %d of %d", 3, 40) }, wantLevel: "[TRACE]", wantMsg: "step 3 of 40"},
		{name: "Debugf", log: func(cl *ConsoleLogger) { cl.Debugf("loaded %d bytes", 512) }, wantLevel: "[DEBUG]", wantMsg: "loaded 512 bytes"},
		{name: "Infof", log: func(cl *ConsoleLogger) { cl.Infof("resolved %s", "/tmp/x") }, wantLevel: "[INFO]", wantMsg: "resolved /tmp/x"},
		{name: "Warnf", log: func(cl *ConsoleLogger) { cl.Warnf("skipping %q", "bad") }, wantLevel: "[WARN]", wantMsg: `skipping "bad"`},
		{name: "Errorf", log: func(cl *ConsoleLogger) { cl.Errorf("readlink failed: %v", "EACCES") }, wantLevel: "[ERROR]", wantMsg: "readlink failed: EACCES"},
		{name: "Fatalf", log: func(cl *ConsoleLogger) { cl.Fatalf("line count overflow in %s", "big.txt") }, wantLevel: "[FATAL]", wantMsg: "line count overflow in big.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, "trace")

			tt.log(logger)

			output := buf.String()
			if !strings.Contains(output, tt.wantLevel) {
				t.Errorf("Output missing level %q. Output: %q", tt.wantLevel, output)
			}
			if !strings.Contains(output, tt.wantMsg) {
				t.Errorf("Output missing message %q. Output: %q", tt.wantMsg, output)
			}
		})
	}
}

// TestNilWriterDiscards verifies a nil writer silently discards messages
func TestNilWriterDiscards(t *testing.T) {
	logger := NewConsoleLogger(nil, "trace")

	// Must not panic
	logger.LogTrace("trace")
	logger.LogInfo("info")
	logger.Fatalf("fatal %d", 1)
}

// TestInvalidLogLevelDefaultsToInfo verifies invalid levels fall back to info
func TestInvalidLogLevelDefaultsToInfo(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "empty level", logLevel: ""},
		{name: "unknown level", logLevel: "verbose"},
		{name: "whitespace level", logLevel: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.logLevel)

			logger.LogDebug("debug message")
			logger.LogInfo("info message")

			output := buf.String()
			if strings.Contains(output, "debug message") {
				t.Error("debug message should be filtered when defaulting to info")
			}
			if !strings.Contains(output, "info message") {
				t.Error("info message should appear when defaulting to info")
			}
		})
	}
}

// TestLogLevelCaseInsensitive verifies level strings are case-insensitive
func TestLogLevelCaseInsensitive(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "WARN")

	logger.LogInfo("info message")
	logger.LogWarn("warn message")

	output := buf.String()
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered at WARN level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should appear at WARN level")
	}
}

// TestConcurrentLogging verifies thread safety under concurrent writes
func TestConcurrentLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "trace")

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				logger.Infof("goroutine %d message %d", n, j)
			}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	// Every line must be a complete, well-formed log entry
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1000 {
		t.Fatalf("expected 1000 log lines, got %d", len(lines))
	}
	pattern := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[INFO\] goroutine \d+ message \d+$`)
	for i, line := range lines {
		if !pattern.MatchString(line) {
			t.Fatalf("line %d malformed: %q", i, line)
		}
	}
}

// TestNoOpLoggerDiscards verifies NoOpLogger discards everything without panicking
func TestNoOpLoggerDiscards(t *testing.T) {
	logger := NewNoOpLogger()

	logger.LogTrace("trace")
	logger.LogDebug("debug")
	logger.LogInfo("info")
	logger.LogWarn("warn")
	logger.LogError("error")
	logger.LogFatal("fatal")
	logger.Tracef("formatted %d", 1)
	logger.Fatalf("formatted %d", 2)
}
