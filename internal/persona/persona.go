// Package persona は回答生成サービスに渡す固定のペルソナ指示を提供する。
//
// 指示の内容はロジックを持たない設定データであり、1行を1つの指示として扱う。
// 既定では埋め込みのinstructions.mdを使用し、起動時に別ファイルへ差し替えられる。
package persona

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

// AgentName は回答生成エージェントの名前。
const AgentName = "Developer Information ChatBot"

// markdownInstruction はMarkdown形式での回答を求める指示。
const markdownInstruction = "Use markdown to format your answers."

//go:embed instructions.md
var defaultInstructions string

// Persona はペルソナ指示の集合。
type Persona struct {
	// Name はエージェント名。
	Name string
	// Instructions は1行ずつの指示。
	Instructions []string
	// Markdown はMarkdown形式での回答を求めるかどうか。
	Markdown bool
}

// Default は埋め込みの指示からペルソナを生成する。
func Default(markdown bool) Persona {
	return Persona{
		Name:         AgentName,
		Instructions: splitLines(defaultInstructions),
		Markdown:     markdown,
	}
}

// Load は指定されたファイルから指示を読み込む。pathが空の場合は組み込みの指示を使用する。
func Load(path string, markdown bool) (Persona, error) {
	if path == "" {
		return Default(markdown), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Persona{}, fmt.Errorf("ペルソナファイルの読み込みに失敗: %w", err)
	}

	instructions := splitLines(string(content))
	if len(instructions) == 0 {
		return Persona{}, fmt.Errorf("ペルソナファイルが空です: %s", path)
	}

	return Persona{
		Name:         AgentName,
		Instructions: instructions,
		Markdown:     markdown,
	}, nil
}

// SystemPrompt は回答生成サービスに渡すシステムプロンプトを組み立てる。
func (p Persona) SystemPrompt() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(p.Instructions, "\n"))
	if p.Markdown {
		sb.WriteString("\n\n")
		sb.WriteString(markdownInstruction)
	}
	return sb.String()
}

// splitLines は改行で分割し、先頭と末尾の空行を取り除く。
// 途中の空行は見出しの区切りとして残す。
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")

	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
