package model

// Config holds the application configuration settings.
type Config struct {
	StorageType  string `json:"storage_type" env:"PACKPRO_STORAGE_TYPE" validate:"storagetype"`
	DataDir      string `json:"data_dir" env:"PACKPRO_DATA_DIR" validate:"dirpath"`
	StorageFile  string `json:"storage_file" env:"PACKPRO_STORAGE_FILE"`
	LogDir       string `json:"log_dir" env:"PACKPRO_LOG_DIR" validate:"dirpath"`
	LogFile      string `json:"log_file" env:"PACKPRO_LOG_FILE"`
	LogLevel     string `json:"log_level" env:"PACKPRO_LOG_LEVEL" validate:"loglevel"`
	StrictRefs   bool   `json:"strict_refs" env:"PACKPRO_STRICT_REFS"`
	GeminiAPIKey string `json:"-" env:"GEMINI_API_KEY"`
	GeminiModel  string `json:"gemini_model" env:"PACKPRO_GEMINI_MODEL"`
}
