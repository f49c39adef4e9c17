package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/ymorita/studylog/internal/pkg/envutil"
	"github.com/ymorita/studylog/internal/pkg/logger"
)

type Config struct {
	Port         string
	AuthMode     string
	JWTSecretKey string
	NoteLocation *time.Location
	CORSOrigins  []string
}

// LoadConfig reads the process environment. NOTE_TIMEZONE controls which
// calendar day new notes are stamped with; it must be a valid IANA zone.
func LoadConfig(log *logger.Logger) (Config, error) {
	port := envutil.GetEnv("PORT", "8080", log)
	authMode := envutil.GetEnv("AUTH_MODE", "mock", log)
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	tzName := envutil.GetEnv("NOTE_TIMEZONE", "Asia/Tokyo", log)

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return Config{}, fmt.Errorf("invalid NOTE_TIMEZONE %q: %w", tzName, err)
	}

	var origins []string
	rawOrigins := envutil.GetEnv("CORS_ORIGINS", "", log)
	for _, o := range strings.Split(rawOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Port:         port,
		AuthMode:     authMode,
		JWTSecretKey: jwtSecretKey,
		NoteLocation: loc,
		CORSOrigins:  origins,
	}, nil
}
