package providers

import "context"

// LLMProvider adalah abstraksi untuk backend model teks (Gemini, HTTP gateway).
// Provider hanya tahu "kirim prompt, terima teks atau error".
type LLMProvider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Close()
}
