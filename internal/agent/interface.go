package agent

import "context"

// Job adalah unit kerja sekali jalan yang dijadwalkan oleh Scheduler.
// Implementasi harus immutable setelah dijadwalkan; semua data yang dibutuhkan
// sudah di-snapshot saat job dibuat.
//
// Contoh implementasi:
//   - autoReplyRun: membalas komentar atas nama pemilik post
type Job interface {
	// GetName mengembalikan nama job (untuk logging & metrics)
	GetName() string

	// Execute menjalankan task utama job.
	// Context dibatalkan ketika scheduler dihentikan.
	Execute(ctx context.Context) error
}

// JobFunc adapts a plain function to Job.
type JobFunc struct {
	Name string
	Fn   func(ctx context.Context) error
}

func (f JobFunc) GetName() string {
	return f.Name
}

func (f JobFunc) Execute(ctx context.Context) error {
	return f.Fn(ctx)
}
