package config

const (
	defaultCatalogPath    = "~/.local/share/mangareel/manga_list.json"
	defaultLedgerPath     = "~/.local/share/mangareel/used.json"
	defaultOutputDir      = "~/.local/share/mangareel/output"
	defaultAssetsDir      = "~/.local/share/mangareel/assets"
	defaultLogDir         = "~/.local/share/mangareel/logs"
	defaultWidth          = 1080
	defaultHeight         = 1920
	defaultFPS            = 30
	defaultTitleSeconds   = 3.0
	defaultItemSeconds    = 4.5
	defaultOutroSeconds   = 3.0
	defaultBatchSize      = 5
	defaultBitrate        = "4500k"
	defaultPreset         = "medium"
	defaultHashtags       = "#manga #recommendation #anime"
	defaultOutro          = "If you watched til the end, hit follow for more recs!"
	defaultTTSBaseURL     = "https://translate.google.com/translate_tts"
	defaultTTSLanguage    = "en"
	defaultSearchBaseURL  = "https://serpapi.com/search.json"
	defaultRequestTimeout = 20
	defaultSMTPPort       = 465
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

var defaultTitles = []string{
	"Top 5 today's manga (funny picks!)",
	"Today's top 5 manga you need to read",
	"Five manga that ruined my sleep",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogPath: defaultCatalogPath,
			LedgerPath:  defaultLedgerPath,
			OutputDir:   defaultOutputDir,
			AssetsDir:   defaultAssetsDir,
			LogDir:      defaultLogDir,
		},
		Video: Video{
			Width:        defaultWidth,
			Height:       defaultHeight,
			FPS:          defaultFPS,
			TitleSeconds: defaultTitleSeconds,
			ItemSeconds:  defaultItemSeconds,
			OutroSeconds: defaultOutroSeconds,
			BatchSize:    defaultBatchSize,
			Bitrate:      defaultBitrate,
			Preset:       defaultPreset,
		},
		Content: Content{
			Titles:   append([]string(nil), defaultTitles...),
			Hashtags: defaultHashtags,
			Outro:    defaultOutro,
		},
		TTS: TTS{
			Enabled:        true,
			BaseURL:        defaultTTSBaseURL,
			Language:       defaultTTSLanguage,
			RequestTimeout: defaultRequestTimeout,
		},
		ImageSearch: ImageSearch{
			BaseURL:        defaultSearchBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Email: Email{
			Port: defaultSMTPPort,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
