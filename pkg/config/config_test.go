package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultAgentConfig(t *testing.T) {
	config := DefaultAgentConfig()

	if config.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("默认 BaseURL 错误: %s", config.BaseURL)
	}
	if config.Model != "gpt-5-mini" {
		t.Errorf("默认 Model 错误: %s", config.Model)
	}
	if config.MatchThreshold != 0.8 {
		t.Errorf("默认 MatchThreshold 应为 0.8, 实际为 %v", config.MatchThreshold)
	}
	if config.PauseBetweenActions != 0.5 {
		t.Errorf("默认 PauseBetweenActions 应为 0.5, 实际为 %v", config.PauseBetweenActions)
	}
	if !config.AbortOnCorner {
		t.Error("默认 AbortOnCorner 应为 true")
	}
	if config.ElementsDir != "elements" {
		t.Errorf("默认 ElementsDir 错误: %s", config.ElementsDir)
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	config := &AgentConfig{
		APIKey:              "test_key",
		BaseURL:             "http://localhost:8080/v1",
		Model:               "test-model",
		MaxTokens:           500,
		ElementsDir:         "elems",
		ScreenshotsDir:      "shots",
		SaveScreenshots:     false,
		MatchThreshold:      0.9,
		PauseBetweenActions: 1.0,
		AbortOnCorner:       false,
		LogLevel:            "DEBUG",
	}

	if err := manager.Save(config); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if loaded.BaseURL != config.BaseURL {
		t.Errorf("BaseURL 不匹配: %s != %s", loaded.BaseURL, config.BaseURL)
	}
	if loaded.Model != config.Model {
		t.Errorf("Model 不匹配: %s != %s", loaded.Model, config.Model)
	}
	if loaded.MatchThreshold != config.MatchThreshold {
		t.Errorf("MatchThreshold 不匹配: %v != %v", loaded.MatchThreshold, config.MatchThreshold)
	}
	if loaded.AbortOnCorner != config.AbortOnCorner {
		t.Error("AbortOnCorner 不匹配")
	}
}

func TestLoadMissingFile(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("配置文件不存在时 Load 不应报错: %v", err)
	}
	if config.Model != "gpt-5-mini" {
		t.Errorf("配置文件不存在时应返回默认配置, Model = %s", config.Model)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	config, err := manager.Load()
	if err == nil {
		t.Error("配置文件损坏时 Load 应报错")
	}
	if config == nil {
		t.Fatal("配置文件损坏时仍应返回默认配置")
	}
	if config.Model != "gpt-5-mini" {
		t.Errorf("配置文件损坏时应回退默认配置, Model = %s", config.Model)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env_key")

	manager := NewManagerWithDir(t.TempDir())
	if err := manager.Save(&AgentConfig{APIKey: "file_key", Model: "m"}); err != nil {
		t.Fatal(err)
	}

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if config.APIKey != "env_key" {
		t.Errorf("环境变量应覆盖配置文件中的 api_key, 实际为 %s", config.APIKey)
	}
}

func TestClear(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	if err := manager.Clear(); err != nil {
		t.Errorf("清除不存在的配置不应报错: %v", err)
	}

	if err := manager.Save(DefaultAgentConfig()); err != nil {
		t.Fatal(err)
	}
	if err := manager.Clear(); err != nil {
		t.Errorf("清除配置失败: %v", err)
	}
	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}
}
