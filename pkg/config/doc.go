// Package config loads typed configuration from the process environment.
//
// Values are parsed into structs tagged for github.com/caarlos0/env/v11. Dotenv
// files read with github.com/joho/godotenv fill in variables the process does
// not already define, so real environment always wins over a file:
//
//	type StripeConfig struct {
//		SecretKey string `env:"STRIPE_SECRET_KEY,required"`
//	}
//
//	cfg, err := config.Load[StripeConfig](config.WithEnvFiles(".env"))
//
// Without WithEnvFiles a ".env" in the working directory is read when present.
package config
