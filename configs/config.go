package config

import (
	"os"
	"strings"
)

// R2 holds the credentials for one Cloudflare R2 bucket. Each brand owns
// its own bucket; the unprefixed variables describe the shared fallback.
type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type Config struct {
	MetaAppID          string
	MetaAppSecret      string
	MetaRedirectURI    string
	OpenAIAPIKey       string
	PrintifyAPIToken   string
	PrintifyShopID     string
	ShopifyStoreDomain string
	ShopifyAccessToken string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GmailSender        string
	GmailRefreshToken  string
	PostgresURI        string
	RedisURI           string
	FrontendURL        string
	R2                 R2
	BrandR2            map[string]R2
	SecretKey          string
	CookieName         string
}

// BrandSlugs lists the brands with dedicated storage buckets. Any other
// slug resolves to the shared bucket.
var BrandSlugs = []string{"dailydishdash", "wallsofwill", "handyhub"}

func LoadConfig() *Config {
	brandR2 := make(map[string]R2, len(BrandSlugs))
	for _, slug := range BrandSlugs {
		brandR2[slug] = loadR2(strings.ToUpper(slug) + "_")
	}

	return &Config{
		MetaAppID:          getEnv("META_APP_ID", ""),
		MetaAppSecret:      getEnv("META_APP_SECRET", ""),
		MetaRedirectURI:    getEnv("META_REDIRECT_URI", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		PrintifyAPIToken:   getEnv("PRINTIFY_API_TOKEN", ""),
		PrintifyShopID:     getEnv("PRINTIFY_SHOP_ID", ""),
		ShopifyStoreDomain: getEnv("SHOPIFY_STORE_DOMAIN", ""),
		ShopifyAccessToken: getEnv("SHOPIFY_ACCESS_TOKEN", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", ""),
		GmailSender:        getEnv("GMAIL_SENDER", ""),
		GmailRefreshToken:  getEnv("GMAIL_REFRESH_TOKEN", ""),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		RedisURI:           getEnv("REDIS_URI", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2:                 loadR2(""),
		BrandR2:            brandR2,
		SecretKey:          getEnv("SECRET_KEY", ""),
		CookieName:         getEnv("COOKIE_NAME", ""),
	}
}

func loadR2(prefix string) R2 {
	return R2{
		AccountID:     getEnv(prefix+"R2_ACCOUNT_ID", ""),
		AccessKey:     getEnv(prefix+"R2_ACCESS_KEY", ""),
		SecretKey:     getEnv(prefix+"R2_SECRET_KEY", ""),
		BucketName:    getEnv(prefix+"R2_BUCKET_NAME", ""),
		PublicBaseURL: getEnv(prefix+"R2_PUBLIC_BASE_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
