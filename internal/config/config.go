package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// APIBaseURL - URL de base de l'API Cedra (ex: http://localhost:5000/api)
func APIBaseURL() string {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:5000/api"
}

// UploadsBaseURL - hôte qui sert les images stockées; les références
// relatives sont résolues contre cette base + le segment /uploads
func UploadsBaseURL() string {
	if v := os.Getenv("UPLOADS_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:5000"
}

func HTTPTimeout() time.Duration {
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s > 0 {
			return time.Duration(s) * time.Second
		}
		log.Printf("⚠️ HTTP_TIMEOUT_SECONDS invalide (%q) — on garde la valeur par défaut", v)
	}
	return 30 * time.Second
}

func RedisHost() string {
	return os.Getenv("REDIS_HOST")
}

func RedisPassword() string {
	return os.Getenv("REDIS_PASSWORD")
}

// TokenFile - où le token de session admin est conservé entre deux commandes
func TokenFile() string {
	if v := os.Getenv("ADMIN_TOKEN_FILE"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cedra_admin_token"
	}
	return home + "/.cedra_admin_token"
}
