package engine

// Config holds engine behavior settings.
type Config struct {
	// StoreText controls whether input and output text are retained in
	// history records. When false, only layout pair and length are kept.
	StoreText bool
}
