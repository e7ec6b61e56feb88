// Package dto はOpenAI互換チャット補完APIのJSONボディを定義します。
package dto

// ChatMessage はリクエスト/レスポンス中の1メッセージです。
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest は POST /chat/completions のボディです。
type ChatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatCompletionResponse は必要なフィールドだけをデコードします。
type ChatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
