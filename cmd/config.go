package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "kinfmt"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	projectFlagName   = "project"
	keepStyleFlagName = "keep-style"
	noTUIFlagName     = "no-tui"
	verboseFlagName   = "verbose"
	checkFlagName     = "check"

	projectRootKey      = "project.root"
	sourceRootKey       = "roots.source"
	testRootKey         = "roots.test"
	mockRootKey         = "roots.mock"
	reflectionKey       = "roots.reflection"
	implExtensionKey    = "resolve.impl_extension"
	formatterBinaryKey  = "formatter.binary"
	formatterTimeoutKey = "formatter.timeout"
	styleFileKey        = "style.file"
	placeholderKey      = "style.placeholder"
	keepStyleKey        = "style.keep_derived"

	defaultProjectRoot      = "."
	defaultSourceRoot       = "core"
	defaultTestRoot         = "test"
	defaultMockRoot         = "test/mock"
	defaultReflection       = "core"
	defaultImplExtension    = ".cpp"
	defaultFormatterBinary  = "clang-format"
	defaultFormatterTimeout = 30 * time.Second
	defaultStyleFile        = ".clang-format"
	defaultPlaceholder      = "MAIN_INCLUDE_FILE"
	defaultKeepStyle        = false

	envPrefix = "KINFMT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".kinfmt.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(projectRootKey, defaultProjectRoot)
	viper.SetDefault(sourceRootKey, defaultSourceRoot)
	viper.SetDefault(testRootKey, defaultTestRoot)
	viper.SetDefault(mockRootKey, defaultMockRoot)
	viper.SetDefault(reflectionKey, defaultReflection)
	viper.SetDefault(implExtensionKey, defaultImplExtension)
	viper.SetDefault(formatterBinaryKey, defaultFormatterBinary)
	viper.SetDefault(formatterTimeoutKey, int64(defaultFormatterTimeout.Seconds()))
	viper.SetDefault(styleFileKey, defaultStyleFile)
	viper.SetDefault(placeholderKey, defaultPlaceholder)
	viper.SetDefault(keepStyleKey, defaultKeepStyle)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
