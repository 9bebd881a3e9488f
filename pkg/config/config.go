// Package config 提供代理配置的加载和保存
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// AgentConfig 代理配置
type AgentConfig struct {
	// 视觉模型配置
	APIKey    string `json:"api_key"`
	BaseURL   string `json:"base_url"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`

	// 元素缓存与截图目录
	ElementsDir     string `json:"elements_dir"`
	ScreenshotsDir  string `json:"screenshots_dir"`
	SaveScreenshots bool   `json:"save_screenshots"`

	// 匹配与输入配置
	MatchThreshold      float64 `json:"match_threshold"`
	PauseBetweenActions float64 `json:"pause_between_actions"`
	AbortOnCorner       bool    `json:"abort_on_corner"`

	// 日志配置
	LogLevel string `json:"log_level"`
}

// DefaultAgentConfig 默认代理配置
func DefaultAgentConfig() *AgentConfig {
	return &AgentConfig{
		APIKey:              "",
		BaseURL:             "https://api.openai.com/v1",
		Model:               "gpt-5-mini",
		MaxTokens:           1000,
		ElementsDir:         "elements",
		ScreenshotsDir:      "screenshots",
		SaveScreenshots:     true,
		MatchThreshold:      0.8,
		PauseBetweenActions: 0.5,
		AbortOnCorner:       true,
		LogLevel:            "INFO",
	}
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器，配置保存在用户目录下
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := filepath.Join(homeDir, ".computer-use-agent")
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，配置文件不存在时返回默认配置
// 环境变量 OPENAI_API_KEY 优先于配置文件中的 api_key
func (m *Manager) Load() (*AgentConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	config := DefaultAgentConfig()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		applyEnv(config)
		return config, nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		applyEnv(config)
		return config, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		config = DefaultAgentConfig()
		applyEnv(config)
		return config, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnv(config)
	return config, nil
}

// applyEnv 应用环境变量覆盖
func applyEnv(config *AgentConfig) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.APIKey = key
	}
}

// Save 保存配置
func (m *Manager) Save(config *AgentConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置文件
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*AgentConfig, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(config *AgentConfig) error {
	return defaultManager.Save(config)
}

// Clear 使用默认管理器清除配置
func Clear() error {
	return defaultManager.Clear()
}
