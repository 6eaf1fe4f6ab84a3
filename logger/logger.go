package logger

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	LogEnable         = "CHROMBENCH_LOGLEVEL"
	LogPath           = "CHROMBENCH_LOGPATH"
	LogTimeout        = "CHROMBENCH_LOGTIMEOUT"
	LogDefaultTimeout = 24

	DebugLogging    = 10
	InfoLogging     = 20
	WarningLogging  = 30
	ErrorLogging    = 40
	CriticalLogging = 50
)

var Log *log.Logger

// logFile builds the log path whether or not the directory from the
// environment carries a trailing slash.
func logFile(logPath string) string {
	return filepath.Join(logPath, "chrombench.log")
}

func init() {
	logPath := "/tmp/"
	if env := os.Getenv(LogPath); len(env) > 0 {
		logPath = env
	}
	timeout := LogDefaultTimeout
	if env := os.Getenv(LogTimeout); len(env) > 0 {
		if t, err := strconv.Atoi(env); err == nil {
			timeout = t
		}
	}
	logfile := logFile(logPath)
	// drop the file once its first-line timestamp goes stale
	if f, err := os.Open(logfile); err == nil {
		scanner := bufio.NewScanner(f)
		scanner.Scan()
		f.Close()
		if tag, terr := time.Parse(time.RFC3339, scanner.Text()); terr == nil {
			if int(time.Since(tag).Hours()) > timeout {
				os.Remove(logfile)
			}
		} else {
			os.Remove(logfile)
		}
	}
	wrt := io.Writer(os.Stderr)
	if f, err := os.OpenFile(logfile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644); err == nil {
		if stat, serr := f.Stat(); serr == nil && stat.Size() == 0 {
			f.WriteString(time.Now().Format(time.RFC3339) + "\n")
			f.Sync()
		}
		wrt = io.MultiWriter(os.Stderr, f)
	} else {
		log.Printf("logger cannot open file: %v", err)
	}
	Log = log.New(wrt, "", log.LstdFlags)
}

func LogLevel() int {
	if env, err := strconv.Atoi(os.Getenv(LogEnable)); err == nil {
		return env
	}
	return CriticalLogging
}

func levelName(level int) string {
	switch level {
	case DebugLogging:
		return "DEBUG"
	case InfoLogging:
		return "INFO"
	case WarningLogging:
		return "WARNING"
	case ErrorLogging:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

func logObj(level int, name string, v interface{}) {
	if LogLevel() <= level {
		data, _ := json.MarshalIndent(v, "", " ")
		Log.Printf("%s %s:\n%s\n", levelName(level), name, data)
	}
}

func logPrintf(level int, format string, a ...interface{}) {
	if LogLevel() <= level {
		Log.Printf(levelName(level)+" "+format, a...)
	}
}

func DebugObj(name string, v interface{}) { logObj(DebugLogging, name, v) }

func DebugPrintf(format string, a ...interface{}) { logPrintf(DebugLogging, format, a...) }

func InfoObj(name string, v interface{}) { logObj(InfoLogging, name, v) }

func InfoPrintf(format string, a ...interface{}) { logPrintf(InfoLogging, format, a...) }

func WarningObj(name string, v interface{}) { logObj(WarningLogging, name, v) }

func WarningPrintf(format string, a ...interface{}) { logPrintf(WarningLogging, format, a...) }

func ErrorObj(name string, v interface{}) { logObj(ErrorLogging, name, v) }

func ErrorPrintf(format string, a ...interface{}) { logPrintf(ErrorLogging, format, a...) }

func CriticalObj(name string, v interface{}) { logObj(CriticalLogging, name, v) }

func CriticalPrintf(format string, a ...interface{}) { logPrintf(CriticalLogging, format, a...) }
