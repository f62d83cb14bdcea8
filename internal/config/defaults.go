package config

const (
	defaultConfigPath     = "~/.config/ytshorts/config.toml"
	defaultBind           = "127.0.0.1:3002"
	defaultOutputURL      = "/output/"
	defaultDataDir        = "./data"
	defaultYtDlp          = "yt-dlp"
	defaultDownloadFormat = "mp4"
	defaultFFmpeg         = "ffmpeg"
	defaultTranscriber    = "whisper"
	defaultWhisper        = "whisper"
	defaultWhisperModel   = "base"
	defaultWhisperCpp     = "whisper-cli"
	defaultMaxLineLength  = 40
	defaultSecondsPerLine = 2
	defaultFont           = "Arial"
	defaultFontSize       = 36
	defaultMarginV        = 30
	defaultMaxConcurrent  = 2
	defaultTimeoutSeconds = 7200
	defaultLogFormat      = "auto"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind:           defaultBind,
			AllowedOrigins: []string{"*"},
			OutputURL:      defaultOutputURL,
		},
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Tools: Tools{
			YtDlp:          defaultYtDlp,
			DownloadFormat: defaultDownloadFormat,
			FFmpeg:         defaultFFmpeg,
			Transcriber:    defaultTranscriber,
			Whisper:        defaultWhisper,
			WhisperModel:   defaultWhisperModel,
			WhisperCpp:     defaultWhisperCpp,
		},
		Captions: Captions{
			MaxLineLength:  defaultMaxLineLength,
			SecondsPerLine: defaultSecondsPerLine,
			Font:           defaultFont,
			FontSize:       defaultFontSize,
			MarginV:        defaultMarginV,
		},
		Jobs: Jobs{
			MaxConcurrent:  defaultMaxConcurrent,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
