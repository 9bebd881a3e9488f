package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dastan92/computer-use-agents/internal/logger"
	"github.com/dastan92/computer-use-agents/pkg/agent"
	"github.com/dastan92/computer-use-agents/pkg/config"
	"github.com/dastan92/computer-use-agents/pkg/screen"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// 命令行参数
	var (
		apiKey      = flag.String("api-key", "", "OpenAI 兼容接口的 API 密钥")
		baseURL     = flag.String("base-url", "", "接口地址 (例: https://api.openai.com/v1)")
		model       = flag.String("model", "", "视觉模型名称")
		threshold   = flag.Float64("threshold", 0, "模板匹配置信度阈值 (0-1)")
		logLevel    = flag.String("log-level", "", "日志级别 (DEBUG/INFO/WARN/ERROR)")
		logFile     = flag.String("log-file", "", "日志文件路径 (留空只输出到控制台)")
		noShots     = flag.Bool("no-screenshots", false, "不保存截图")
		saveConfig  = flag.Bool("save", false, "保存配置到本地")
		showVersion = flag.Bool("version", false, "显示版本信息")
		showHelp    = flag.Bool("help", false, "显示帮助信息")
	)

	flag.Parse()

	// 显示版本
	if *showVersion {
		printVersion()
		return
	}

	// 显示帮助
	if *showHelp {
		printUsage()
		return
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("[WARN] 加载配置失败: %v\n", err)
	}

	// 命令行参数优先级高于配置文件
	if *apiKey != "" {
		cfg.APIKey = *apiKey
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *threshold > 0 {
		cfg.MatchThreshold = *threshold
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *noShots {
		cfg.SaveScreenshots = false
	}

	// 验证必要参数
	if cfg.APIKey == "" {
		fmt.Println("[ERROR] 缺少 API 密钥，请使用 -api-key 参数或 OPENAI_API_KEY 环境变量")
		printUsage()
		os.Exit(1)
	}

	// 保存配置
	if *saveConfig {
		if err := config.Save(cfg); err != nil {
			fmt.Printf("[WARN] 保存配置失败: %v\n", err)
		} else {
			fmt.Printf("[INFO] 配置已保存到 %s\n", config.GetDefaultManager().GetConfigFile())
		}
	}

	// 日志设置
	logger.Default().SetLevel(logger.ParseLevel(cfg.LogLevel))
	if *logFile != "" {
		if err := logger.Default().SetFile(*logFile); err != nil {
			fmt.Printf("[WARN] 打开日志文件失败: %v\n", err)
		}
		defer logger.Default().Close()
	}

	// 打印启动信息
	fmt.Println("========================================")
	fmt.Printf("  Computer Use Agent v%s\n", Version)
	fmt.Println("========================================")
	fmt.Printf("模型: %s @ %s\n", cfg.Model, cfg.BaseURL)
	w, h := screen.Size()
	fmt.Printf("屏幕: %dx%d\n", w, h)
	fmt.Println()

	a, err := agent.New(cfg)
	if err != nil {
		fmt.Printf("[ERROR] 初始化代理失败: %v\n", err)
		os.Exit(1)
	}

	a.RunInteractive(os.Stdin, os.Stdout)
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("Computer Use Agent v%s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

// printUsage 打印帮助信息
func printUsage() {
	fmt.Println("Computer Use Agent - AI 驱动的桌面自动化代理")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  agent [选项]")
	fmt.Println()
	fmt.Println("选项:")
	fmt.Println("  -api-key string     OpenAI 兼容接口的 API 密钥")
	fmt.Println("  -base-url string    接口地址 (例: https://api.openai.com/v1)")
	fmt.Println("  -model string       视觉模型名称")
	fmt.Println("  -threshold float    模板匹配置信度阈值 (0-1)")
	fmt.Println("  -log-level string   日志级别 (DEBUG/INFO/WARN/ERROR)")
	fmt.Println("  -log-file string    日志文件路径")
	fmt.Println("  -no-screenshots     不保存截图")
	fmt.Println("  -save               保存配置到本地")
	fmt.Println("  -version            显示版本信息")
	fmt.Println("  -help               显示帮助信息")
	fmt.Println()
	fmt.Println("示例:")
	fmt.Println("  # 指定密钥启动")
	fmt.Println("  agent -api-key sk-xxx")
	fmt.Println()
	fmt.Println("  # 指定密钥并保存配置")
	fmt.Println("  agent -api-key sk-xxx -model gpt-5-mini -save")
	fmt.Println()
	fmt.Println("  # 使用已保存的配置启动")
	fmt.Println("  agent")
	fmt.Println()
	fmt.Printf("配置文件位置: %s\n", config.GetDefaultManager().GetConfigFile())
}
