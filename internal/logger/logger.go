package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until Init is called,
// so library packages and tests can log unconditionally.
var Log = zap.NewNop().Sugar()

var logFile *os.File

// Init replaces Log with a console logger at info level, or debug when verbose.
// Entries go to stderr unless logPath names a file to append to; stdout is left
// for command output.
func Init(verbose bool, logPath string) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encoderConfig.EncodeCaller = nil
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		closeFile()
		logFile = f
		sink = zapcore.AddSync(f)
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	Log = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, level)).Sugar()
	return nil
}

// Sync flushes buffered entries and closes the log file, if any.
func Sync() {
	_ = Log.Sync()
	closeFile()
}

func closeFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
