package agent

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RunInteractive 运行交互式命令循环
// 一次执行一条命令，等待完成后再读取下一条
func (a *Agent) RunInteractive(in io.Reader, out io.Writer) {
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "桌面自动化代理 - 交互模式")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	printHelp(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n输入结束，退出")
			return
		}

		command := strings.TrimSpace(scanner.Text())
		if command == "" {
			continue
		}
		if command == "quit" || command == "exit" {
			fmt.Fprintln(out, "退出代理")
			return
		}

		a.dispatch(out, command)
	}
}

// dispatch 解析并执行一条命令
func (a *Agent) dispatch(out io.Writer, command string) {
	name, arg, _ := strings.Cut(command, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "help":
		printHelp(out)

	case "observe":
		_, _, analysis, err := a.Observe()
		if err != nil {
			fmt.Fprintf(out, "观察失败: %v\n", err)
			return
		}
		fmt.Fprintln(out, strings.Repeat("-", 60))
		fmt.Fprintln(out, analysis)
		fmt.Fprintln(out, strings.Repeat("-", 60))

	case "goal":
		if arg == "" {
			fmt.Fprintln(out, "用法: goal <目标描述>")
			return
		}
		suggestion, err := a.ObserveAndAct(arg)
		if err != nil {
			fmt.Fprintf(out, "获取建议失败: %v\n", err)
			return
		}
		fmt.Fprintln(out, strings.Repeat("-", 60))
		fmt.Fprintln(out, suggestion)
		fmt.Fprintln(out, strings.Repeat("-", 60))

	case "smart_click":
		if arg == "" {
			fmt.Fprintln(out, "用法: smart_click <元素描述>")
			return
		}
		ok, pt := a.SmartClick(arg)
		if ok {
			fmt.Fprintf(out, "已点击 %q @ (%d, %d)\n", arg, pt.X, pt.Y)
		} else {
			fmt.Fprintf(out, "未能找到元素 %q\n", arg)
		}

	case "click":
		parts := strings.Fields(arg)
		if len(parts) != 2 {
			fmt.Fprintln(out, "用法: click <x> <y>")
			return
		}
		x, errX := strconv.Atoi(parts[0])
		y, errY := strconv.Atoi(parts[1])
		if errX != nil || errY != nil {
			fmt.Fprintln(out, "坐标必须是整数")
			return
		}
		if err := a.Click(x, y); err != nil {
			fmt.Fprintf(out, "点击失败: %v\n", err)
		}

	case "type":
		if arg == "" {
			fmt.Fprintln(out, "用法: type <文字>")
			return
		}
		if err := a.TypeText(arg); err != nil {
			fmt.Fprintf(out, "输入失败: %v\n", err)
		}

	case "press":
		if arg == "" {
			fmt.Fprintln(out, "用法: press <按键>")
			return
		}
		if err := a.PressKey(arg); err != nil {
			fmt.Fprintf(out, "按键失败: %v\n", err)
		}

	case "hotkey":
		keys := strings.Fields(arg)
		if len(keys) == 0 {
			fmt.Fprintln(out, "用法: hotkey <键1> <键2> ...")
			return
		}
		if err := a.HotKey(keys...); err != nil {
			fmt.Fprintf(out, "组合键失败: %v\n", err)
		}

	case "scroll":
		amount, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintln(out, "用法: scroll <行数> (正数向上，负数向下)")
			return
		}
		if err := a.Scroll(amount); err != nil {
			fmt.Fprintf(out, "滚动失败: %v\n", err)
		}

	case "move":
		parts := strings.Fields(arg)
		if len(parts) != 2 {
			fmt.Fprintln(out, "用法: move <x> <y>")
			return
		}
		x, errX := strconv.Atoi(parts[0])
		y, errY := strconv.Atoi(parts[1])
		if errX != nil || errY != nil {
			fmt.Fprintln(out, "坐标必须是整数")
			return
		}
		if err := a.MoveTo(x, y); err != nil {
			fmt.Fprintf(out, "移动失败: %v\n", err)
		}

	case "wait":
		seconds, err := strconv.ParseFloat(arg, 64)
		if err != nil || seconds < 0 {
			fmt.Fprintln(out, "用法: wait <秒数>")
			return
		}
		a.Wait(seconds)

	case "list_elements":
		names := a.LearnedElements()
		if len(names) == 0 {
			fmt.Fprintln(out, "尚未学习任何元素")
			return
		}
		fmt.Fprintln(out, "已学习的元素:")
		for _, name := range names {
			fmt.Fprintf(out, "  - %s\n", name)
		}

	case "clear_elements":
		if err := a.ClearElements(); err != nil {
			fmt.Fprintf(out, "清空元素缓存失败: %v\n", err)
			return
		}
		fmt.Fprintln(out, "元素缓存已清空")

	case "status":
		status, err := a.Status()
		if err != nil {
			fmt.Fprintf(out, "获取状态失败: %v\n", err)
			return
		}
		fmt.Fprintf(out, "PID: %d | 内存: %.1f MB | CPU: %.1f%% | 运行: %s | 动作: %d | 元素: %d\n",
			status.PID, status.MemoryMB, status.CPUPercent,
			status.Uptime, status.Actions, status.Elements)

	default:
		fmt.Fprintf(out, "未知命令: %s (输入 help 查看命令列表)\n", name)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `
命令:
  observe                  截屏并分析当前画面
  goal <目标>              根据目标获取下一步动作建议
  smart_click <元素描述>   AI 定位并点击元素 (如: smart_click login button)
  click <x> <y>            在指定坐标点击
  type <文字>              输入文字
  press <按键>             按下单个按键 (如: enter, esc)
  hotkey <键...>           按下组合键 (如: hotkey ctrl c)
  scroll <行数>            滚动 (正数向上，负数向下)
  move <x> <y>             移动鼠标
  wait <秒数>              等待
  list_elements            列出已学习的元素
  clear_elements           清空元素缓存
  status                   显示代理运行状态
  quit                     退出`)
}
