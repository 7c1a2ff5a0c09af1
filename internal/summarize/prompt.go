package summarize

import (
	"strings"
	"unicode/utf8"

	"nota/internal/acquire"
)

// MaxContentChars は送信前にコンテンツを切り詰める上限文字数
// プロバイダを問わず適用され、リクエストサイズとコストを抑える
const MaxContentChars = 50_000

// systemPrompt は固定のシステムプロンプト（ユーザー設定不可）
const systemPrompt = `You are an expert study assistant. Given the content of a video, you will:
1. Produce a concise summary of the video.
2. Produce structured study notes covering the main topics in order.
3. Highlight key takeaways and important definitions.
4. Format the entire output with Markdown headings, bullet points and bold terms.`

// audioInstruction は音声ペイロード用の指示文
const audioInstruction = `The content of this video is provided as an inline audio sample. Listen to the audio, transcribe the speech mentally, and produce the summary and study notes from what is said.`

// SystemPrompt は固定のシステムプロンプトを返す
func SystemPrompt() string { return systemPrompt }

// BuildUserPrompt はペイロードからユーザープロンプトを構築する
// transcript はテキストを切り詰めて埋め込み、audio は解析指示のみを返す
// （音声データ自体はプロバイダ側でインライン添付される）
func BuildUserPrompt(payload *acquire.Payload) string {
	if payload.Kind == acquire.KindAudio {
		return audioInstruction
	}

	var sb strings.Builder
	sb.WriteString("Here is the video content:\n\n")
	sb.WriteString(TruncateContent(payload.Data))
	return sb.String()
}

// TruncateContent は上限バイト数でコンテンツを切り詰める
// マルチバイト文字の途中で切らないよう、ルーン境界まで戻る
func TruncateContent(s string) string {
	if len(s) <= MaxContentChars {
		return s
	}

	cut := MaxContentChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
