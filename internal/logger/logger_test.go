package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warn", WARN},
		{"WARNING", WARN},
		{"error", ERROR},
		{"unknown", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf)
	l.SetLevel(WARN)

	l.Debug("debug 消息")
	l.Info("info 消息")
	l.Warn("warn 消息")
	l.Error("error 消息")

	out := buf.String()
	if strings.Contains(out, "debug 消息") || strings.Contains(out, "info 消息") {
		t.Errorf("低于 WARN 级别的日志不应输出: %s", out)
	}
	if !strings.Contains(out, "warn 消息") || !strings.Contains(out, "error 消息") {
		t.Errorf("WARN 及以上级别的日志应输出: %s", out)
	}
}

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf)

	l.LogEvent("MATCH", true, 12.5, "login button")
	l.LogEvent("LOCATE", false, 850.0, "not found")

	out := buf.String()
	if !strings.Contains(out, "MATCH") || !strings.Contains(out, "OK") {
		t.Errorf("成功事件日志缺失: %s", out)
	}
	if !strings.Contains(out, "LOCATE") || !strings.Contains(out, "NG") {
		t.Errorf("失败事件日志缺失: %s", out)
	}
}

func TestSetFile(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf)

	logPath := filepath.Join(t.TempDir(), "agent.log")
	if err := l.SetFile(logPath); err != nil {
		t.Fatalf("SetFile() error = %v", err)
	}

	l.Info("写入文件的消息")

	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), "写入文件的消息") {
		t.Errorf("日志文件内容不完整: %s", data)
	}
}
