package vision

import "fmt"

// DefaultAnalysisPrompt 默认的屏幕描述指令
const DefaultAnalysisPrompt = `Describe what you see on this screen in detail.
Include:
- Main elements and UI components
- Text content visible
- Interactive elements (buttons, links, forms)
- Current state of the application/window
- Any notable features or areas of interest`

// SuggestActionPrompt 生成基于目标的动作建议指令
func SuggestActionPrompt(goal string) string {
	return fmt.Sprintf(`Goal: %s

Analyze this screenshot and suggest the next action to take.
Provide a specific action in this format:
ACTION: [click/type/scroll/move/wait]
TARGET: [description of where to click or what to type]
REASON: [why this action helps achieve the goal]

Be specific about coordinates or text to type.`, goal)
}

// ElementLocationPrompt 生成元素定位指令
// 要求模型以百分比形式返回元素包围框，响应必须是 KEY: value 行格式
func ElementLocationPrompt(description string, screenWidth, screenHeight int) string {
	return fmt.Sprintf(`Find the "%s" on this screen.

Screen size: %dx%d pixels

Provide the estimated location as percentages from top-left corner (0,0):
- LEFT: percentage from left edge (0-100)
- TOP: percentage from top edge (0-100)
- WIDTH: percentage of screen width (0-100)
- HEIGHT: percentage of screen height (0-100)

Format your response EXACTLY like this:
ELEMENT: [name of the element]
LEFT: [number]
TOP: [number]
WIDTH: [number]
HEIGHT: [number]
CONFIDENCE: [low/medium/high]

Be as precise as possible.`, description, screenWidth, screenHeight)
}
