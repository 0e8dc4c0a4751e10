package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` //Режим дебага
	StubMode  bool `env:"STUB_MODE"`  // Работать без сети: ответы генерирует заглушка

	// OpenAI
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY"`         // Пусто — SDK сам возьмёт ключ из окружения
	OpenAIBaseURL  string        `env:"OPENAI_BASE_URL"`        // Альтернативный endpoint (прокси, совместимый сервер)
	MaxRetries     int           `env:"OPENAI_MAX_RETRIES"`     // Повторы SDK при сетевых ошибках и 429/5xx
	RequestTimeout time.Duration `env:"OPENAI_REQUEST_TIMEOUT"` // Таймаут одной команды целиком

	// Чат
	ChatModel         string `env:"CHAT_MODEL"`          // Модель для команды c
	SystemPrompt      string `env:"SYSTEM_PROMPT"`       // Системная реплика чата
	MaxHistoryRecords int    `env:"MAX_HISTORY_RECORDS"` // Сколько последних пар вопрос/ответ помнить

	// Картинки
	ImageModel          string        `env:"IMAGE_MODEL"`           // dall-e-2|dall-e-3|gpt-image-1
	ImageSize           int           `env:"IMAGE_SIZE"`            // Сторона квадрата: 256, 512 или 1024
	ImageCount          int           `env:"IMAGE_COUNT"`           // Сколько картинок генерировать за раз
	ImageResponseFormat string        `env:"IMAGE_RESPONSE_FORMAT"` // url|b64_json
	ImagesOutputDir     string        `env:"IMAGES_OUTPUT_DIR"`     // Куда сохранять полученные картинки
	ImageOpenViewer     bool          `env:"IMAGE_OPEN_VIEWER"`     // Открывать картинку системным просмотрщиком
	ImageInsecureTLS    bool          `env:"IMAGE_INSECURE_TLS"`    // Не проверять сертификат при скачивании картинки
	ImagesTTL           time.Duration `env:"IMAGES_TTL"`            // Картинки старше удаляются при старте
	MaxDownloadBytes    int64         `env:"MAX_DOWNLOAD_BYTES"`    // Ограничение на размер скачиваемой картинки

	// Викторина
	QuizModel     string `env:"QUIZ_MODEL"`     // Пусто — используется ChatModel
	QuizQuestions int    `env:"QUIZ_QUESTIONS"` // Количество вопросов

	// Озвучка последнего ответа (команда s)
	TTSService string `env:"TTS_SERVICE"` // none|google|gemini|yandex
	GoogleTTS  GoogleTTSConfig
	GeminiTTS  GeminiTTSConfig
	YandexTTS  YandexTTSConfig

	NotificationSoundPath string `env:"NOTIFICATION_SOUND_PATH"` // Звук после ответа ИИ; пусто — без звука
}

// YandexTTSConfig конфигурация для синтеза речи через Yandex SpeechKit.
type YandexTTSConfig struct {
	APIKey  string `env:"YC_TTS_API_KEY"` // Ключ берём из .env/ENV. Если пуст — при использовании будет ошибка
	Voice   string `env:"YC_TTS_VOICE"`
	Format  string `env:"YC_TTS_FORMAT"`  // mp3|wav
	Speed   string `env:"YC_TTS_SPEED"`   // 1.0 по умолчанию в API
	Emotion string `env:"YC_TTS_EMOTION"` // neutral|good|evil
	Volume  int    `env:"YC_TTS_VOLUME"`  // 0-100; 100 — не изменять громкость
}

// GoogleTTSConfig конфигурация для синтеза речи через Google Cloud Text-to-Speech.
type GoogleTTSConfig struct {
	// Путь к файлу ключа сервисного аккаунта. Фактически SDK читает ENV GOOGLE_APPLICATION_CREDENTIALS.
	CredentialsPath  string  `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	Language         string  `env:"GOOGLE_TTS_LANGUAGE"`
	Voice            string  `env:"GOOGLE_TTS_VOICE"`
	SpeakingRate     float64 `env:"GOOGLE_TTS_SPEAKING_RATE"`
	Pitch            float64 `env:"GOOGLE_TTS_PITCH"`
	VolumeGainDb     float64 `env:"GOOGLE_TTS_VOLUME_DB"`
	EffectsProfileID string  `env:"GOOGLE_TTS_EFFECTS_PROFILE_ID"`
	// Тип входа: text|ssml.
	InputType string `env:"GOOGLE_TTS_INPUT_TYPE"`
}

// GeminiTTSConfig конфигурация Gemini-TTS (Cloud TTS v1beta1, авторизация через ADC).
type GeminiTTSConfig struct {
	Endpoint         string  `env:"GEMINI_TTS_ENDPOINT"`
	ModelName        string  `env:"GEMINI_TTS_MODEL"`
	VoiceName        string  `env:"GEMINI_TTS_VOICE"`
	Language         string  `env:"GEMINI_TTS_LANGUAGE"`
	Prompt           string  `env:"GEMINI_TTS_PROMPT"` // Стилевой промпт, только для Gemini
	SpeakingRate     float64 `env:"GEMINI_TTS_SPEAKING_RATE"`
	Pitch            float64 `env:"GEMINI_TTS_PITCH"`
	VolumeGainDb     float64 `env:"GEMINI_TTS_VOLUME_DB"`
	EffectsProfileID string  `env:"GEMINI_TTS_EFFECTS_PROFILE_ID"`
	InputType        string  `env:"GEMINI_TTS_INPUT_TYPE"`
}

// Допустимые значения
var (
	ImageSizes      = []int{256, 512, 1024}
	ResponseFormats = []string{"url", "b64_json"}
	TTSServices     = []string{"none", "google", "gemini", "yandex"}
)

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:      false,
		MaxRetries:     2,
		RequestTimeout: 2 * time.Minute,
		// Чат
		ChatModel:         "gpt-4o-mini",
		SystemPrompt:      "You are a helpful assistant.",
		MaxHistoryRecords: 5,
		// Картинки
		ImageModel:          "dall-e-2",
		ImageSize:           256, // 256, 512 или 1024
		ImageCount:          1,
		ImageResponseFormat: "url",
		ImagesOutputDir:     "images",
		ImageOpenViewer:     true,
		ImagesTTL:           24 * time.Hour,
		MaxDownloadBytes:    20 << 20,
		// Викторина
		QuizQuestions: 5,
		// Озвучка выключена, пока явно не выбран сервис
		TTSService: "none",
		YandexTTS: YandexTTSConfig{
			Voice:   "alena",
			Format:  "mp3",
			Speed:   "1.0",
			Emotion: "neutral",
			Volume:  100,
		},
		GoogleTTS: GoogleTTSConfig{
			CredentialsPath:  "service-account.json",
			Language:         "en-US",
			Voice:            "en-US-Standard-C",
			SpeakingRate:     1.0,
			EffectsProfileID: "headphone-class-device",
		},
		GeminiTTS: GeminiTTSConfig{
			ModelName:    "gemini-2.5-flash-tts",
			VoiceName:    "Kore",
			Language:     "en-US",
			SpeakingRate: 1.0,
		},
	}
}

// NewConfig загружает конфигурацию приложения: дефолты, .env, окружение, флаги командной строки.
// При невалидной конфигурации печатает ошибку и завершает процесс, как flag.ExitOnError.
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg, err := Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

// Load разбирает окружение и args поверх Defaults(). .env к этому моменту уже должен быть загружен.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	// Стартуем с дефолтов, затем перекрываем окружением и флагами
	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага")
	fs.BoolVar(&cfg.StubMode, "stub", cfg.StubMode, "не ходить в сеть, отвечать заглушкой")
	// OpenAI
	fs.StringVar(&cfg.OpenAIAPIKey, "api-key", cfg.OpenAIAPIKey, "ключ OpenAI API (по умолчанию OPENAI_API_KEY)")
	fs.StringVar(&cfg.OpenAIBaseURL, "base-url", cfg.OpenAIBaseURL, "альтернативный base URL OpenAI API")
	fs.IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "число повторов запроса в SDK")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "таймаут выполнения одной команды, напр. 90s")
	// Чат
	fs.StringVar(&cfg.ChatModel, "chat-model", cfg.ChatModel, "модель для чата")
	fs.StringVar(&cfg.SystemPrompt, "system-prompt", cfg.SystemPrompt, "системная реплика чата")
	fs.IntVar(&cfg.MaxHistoryRecords, "max-history-records", cfg.MaxHistoryRecords, "сколько последних пар вопрос/ответ помнить (0 — без истории)")
	// Картинки
	fs.StringVar(&cfg.ImageModel, "image-model", cfg.ImageModel, "модель генерации картинок")
	fs.IntVar(&cfg.ImageSize, "image-size", cfg.ImageSize, "размер картинки: 256|512|1024")
	fs.IntVar(&cfg.ImageCount, "image-count", cfg.ImageCount, "сколько картинок генерировать (1-10)")
	fs.StringVar(&cfg.ImageResponseFormat, "image-response-format", cfg.ImageResponseFormat, "формат ответа: url|b64_json")
	fs.StringVar(&cfg.ImagesOutputDir, "images-output-dir", cfg.ImagesOutputDir, "папка для сохранения картинок")
	fs.BoolVar(&cfg.ImageOpenViewer, "image-open-viewer", cfg.ImageOpenViewer, "открывать картинку системным просмотрщиком")
	fs.BoolVar(&cfg.ImageInsecureTLS, "image-insecure-tls", cfg.ImageInsecureTLS, "не проверять TLS-сертификат при скачивании картинки")
	fs.DurationVar(&cfg.ImagesTTL, "images-ttl", cfg.ImagesTTL, "картинки старше удаляются при старте (0 — не удалять)")
	fs.Int64Var(&cfg.MaxDownloadBytes, "max-download-bytes", cfg.MaxDownloadBytes, "максимальный размер скачиваемой картинки")
	// Викторина
	fs.StringVar(&cfg.QuizModel, "quiz-model", cfg.QuizModel, "модель для викторины (пусто — как в чате)")
	fs.IntVar(&cfg.QuizQuestions, "quiz-questions", cfg.QuizQuestions, "количество вопросов викторины")
	// TTS
	fs.StringVar(&cfg.TTSService, "tts-service", cfg.TTSService, "сервис озвучки: none|google|gemini|yandex")
	fs.StringVar(&cfg.YandexTTS.APIKey, "yc-tts-api-key", cfg.YandexTTS.APIKey, "API ключ Yandex SpeechKit TTS (перекрывает ENV)")
	fs.StringVar(&cfg.YandexTTS.Voice, "yc-tts-voice", cfg.YandexTTS.Voice, "голос Yandex TTS")
	fs.StringVar(&cfg.GoogleTTS.CredentialsPath, "google-tts-credentials", cfg.GoogleTTS.CredentialsPath, "путь к service-account.json")
	fs.StringVar(&cfg.GoogleTTS.Language, "google-tts-language", cfg.GoogleTTS.Language, "язык синтеза, напр. en-US")
	fs.StringVar(&cfg.GoogleTTS.Voice, "google-tts-voice", cfg.GoogleTTS.Voice, "имя голоса Google TTS")
	fs.StringVar(&cfg.GeminiTTS.VoiceName, "gemini-tts-voice", cfg.GeminiTTS.VoiceName, "голос Gemini TTS")
	fs.StringVar(&cfg.GeminiTTS.Prompt, "gemini-tts-prompt", cfg.GeminiTTS.Prompt, "стилевой промпт Gemini TTS")
	fs.StringVar(&cfg.NotificationSoundPath, "notification-sound-path", cfg.NotificationSoundPath, "звук после ответа ИИ (mp3 или wav)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.TTSService = strings.ToLower(strings.TrimSpace(cfg.TTSService))
	cfg.ImageResponseFormat = strings.ToLower(strings.TrimSpace(cfg.ImageResponseFormat))
	if cfg.QuizModel == "" {
		cfg.QuizModel = cfg.ChatModel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые иначе привели бы к 400 от API уже во время работы.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(ImageSizes, c.ImageSize) {
		errs = append(errs, fmt.Errorf("image size must be one of %v, got %d", ImageSizes, c.ImageSize))
	}
	if c.ImageCount < 1 || c.ImageCount > 10 {
		errs = append(errs, fmt.Errorf("image count must be within 1..10, got %d", c.ImageCount))
	}
	if !slices.Contains(ResponseFormats, c.ImageResponseFormat) {
		errs = append(errs, fmt.Errorf("image response format must be one of %v, got %q", ResponseFormats, c.ImageResponseFormat))
	}
	if c.QuizQuestions < 1 || c.QuizQuestions > 20 {
		errs = append(errs, fmt.Errorf("quiz questions must be within 1..20, got %d", c.QuizQuestions))
	}
	if !slices.Contains(TTSServices, c.TTSService) {
		errs = append(errs, fmt.Errorf("tts service must be one of %v, got %q", TTSServices, c.TTSService))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries must not be negative"))
	}
	if c.MaxHistoryRecords < 0 {
		errs = append(errs, errors.New("max history records must not be negative"))
	}
	if c.MaxDownloadBytes <= 0 {
		errs = append(errs, errors.New("max download bytes must be positive"))
	}
	if c.ImagesOutputDir == "" {
		errs = append(errs, errors.New("images output dir must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// PrepareGoogleCredentials переносит путь к ключу из конфига в ENV, если ENV пуст,
// и проверяет, что файл существует. Нужен только для сервиса google.
func (c *Config) PrepareGoogleCredentials() error {
	cred := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	if cred == "" {
		if cp := strings.TrimSpace(c.GoogleTTS.CredentialsPath); cp != "" {
			_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", cp)
			cred = cp
		}
	}
	if cred == "" {
		return errors.New("google tts: GOOGLE_APPLICATION_CREDENTIALS is not set; use ENV or -google-tts-credentials")
	}
	if _, err := os.Stat(cred); err != nil {
		return fmt.Errorf("google tts: credentials file not found: %s", cred)
	}
	return nil
}
