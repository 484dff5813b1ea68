package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// GOOGLE_PLACES_API_KEY is the compiled-in credential. It is the highest
// priority source and is normally left empty; set it at build time with
// -ldflags only for single-tenant deployments.
var GOOGLE_PLACES_API_KEY = ""

// Credential resolution
const CREDENTIAL_ENV_VAR = "GOOGLE_PLACES_API_KEY"
const API_KEY_OPTION_NAME = "api_key"

// Cache config
const PLACE_CACHE_TTL_MINUTES = 30

// Rate limit config: requests per rolling window, per actor.
const RATE_LIMIT_REQUESTS = 20
const RATE_LIMIT_WINDOW_SECONDS = 60

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const SAMPLE_PLACE_RESOURCE = "sample_place.json"

// Config holds the runtime settings loaded from the environment.
type Config struct {
	Env           string
	ListenAddress string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// CacheSalt salts the one-way hash used for cache keys.
	CacheSalt string

	// EditorTokens maps bearer tokens to actor names with editor capability.
	EditorTokens map[string]string

	// HoursTimeZone is the zone opening hours are evaluated in. The
	// upstream behavior this service mirrors used UTC unconditionally, so
	// UTC stays the default.
	HoursTimeZone string

	// RefreshPlaceIDs are re-resolved periodically to keep their cache
	// entries warm. Empty disables the refresher. RefreshPlaceIDsFile,
	// when set, names a JSON array file that takes precedence over the
	// inline list.
	RefreshPlaceIDs        []string
	RefreshPlaceIDsFile    string
	RefreshIntervalMinutes int
}

// Load reads configuration from the environment, honoring a .env file if
// one exists.
func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	refreshInterval, _ := strconv.Atoi(getEnv("REFRESH_INTERVAL_MINUTES", "25"))

	return &Config{
		Env:           getEnv("ENVIRONMENT", "prod"),
		ListenAddress: getEnv("LISTEN_ADDRESS", ":8080"),

		RedisAddress:  getEnv("REDIS_ADDRESS", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		CacheSalt: getEnv("CACHE_SALT", "localscoop-default-salt"),

		EditorTokens: parseEditorTokens(getEnv("EDITOR_TOKENS", "")),

		HoursTimeZone: getEnv("HOURS_TIME_ZONE", "UTC"),

		RefreshPlaceIDs:        splitNonEmpty(getEnv("REFRESH_PLACE_IDS", "")),
		RefreshPlaceIDsFile:    getEnv("REFRESH_PLACE_IDS_FILE", ""),
		RefreshIntervalMinutes: refreshInterval,
	}
}

// parseEditorTokens parses "token1=alice,token2=bob" into a token to
// actor-name map. Entries without a name get the token's position as a
// synthetic actor name.
func parseEditorTokens(raw string) map[string]string {
	tokens := make(map[string]string)
	for i, pair := range splitNonEmpty(raw) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			tokens[parts[0]] = parts[1]
		} else if parts[0] != "" {
			tokens[parts[0]] = "editor-" + strconv.Itoa(i)
		}
	}
	return tokens
}

func splitNonEmpty(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
