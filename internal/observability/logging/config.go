package logging

// Config selects the log encoding, minimum level, and destination.
type Config struct {
	Format string
	Level  string
	Output string
}

// DefaultConfig logs jsonl at info to stderr, keeping stdout free for
// verification results.
func DefaultConfig() Config {
	return Config{Format: "jsonl", Level: "info", Output: "stderr"}
}

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

func levelPriority(level string) int {
	if p, ok := levelRank[level]; ok {
		return p
	}
	return levelRank[LevelInfo]
}
