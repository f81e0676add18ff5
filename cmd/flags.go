package main

import (
	"github.com/urfave/cli/v2"

	"github.com/sheetinvoicer/pkg/config"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML config file", EnvVars: []string{"SHEETINVOICER_CONFIG"}},
		&cli.StringFlag{Name: "addr", Usage: "HTTP listen address", EnvVars: []string{"ADDR"}},
		&cli.StringFlag{Name: "resend-api-key", Usage: "Resend API key; emails are only logged when empty", EnvVars: []string{"RESEND_API_KEY"}},
		&cli.StringFlag{Name: "from", Usage: "sender address", EnvVars: []string{"MAIL_FROM"}},
		&cli.StringFlag{Name: "database-url", Usage: "Postgres DSN for dispatch history", EnvVars: []string{"DATABASE_URL"}},
		&cli.StringFlag{Name: "s3-bucket", Usage: "bucket for archived PDFs", EnvVars: []string{"S3_BUCKET"}},
		&cli.StringFlag{Name: "s3-region", Usage: "S3 region", EnvVars: []string{"S3_REGION", "AWS_REGION"}},
		&cli.StringFlag{Name: "s3-endpoint", Usage: "custom S3 endpoint", EnvVars: []string{"S3_ENDPOINT"}},
		&cli.StringFlag{Name: "s3-access-key", Usage: "S3 access key", EnvVars: []string{"S3_ACCESS_KEY", "AWS_ACCESS_KEY_ID"}},
		&cli.StringFlag{Name: "s3-secret-key", Usage: "S3 secret key", EnvVars: []string{"S3_SECRET_KEY", "AWS_SECRET_ACCESS_KEY"}},
		&cli.BoolFlag{Name: "s3-path-style", Usage: "use path-style S3 addressing", EnvVars: []string{"S3_PATH_STYLE"}},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", EnvVars: []string{"LOG_LEVEL"}},
		&cli.StringFlag{Name: "sentry-dsn", Usage: "forward warnings and errors to Sentry", EnvVars: []string{"SENTRY_DSN"}},
		&cli.StringFlag{Name: "env", Usage: "deployment environment name", EnvVars: []string{"APP_ENV"}},
	}
}

// loadConfig reads the config file and applies any flag or environment
// overrides on top of it.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}

	str := func(name string, dst *string) {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	str("addr", &cfg.Server.Addr)
	str("resend-api-key", &cfg.Mail.Resend.APIKey)
	str("from", &cfg.Mail.Resend.From)
	str("database-url", &cfg.Database.URL)
	str("s3-bucket", &cfg.Storage.Bucket)
	str("s3-region", &cfg.Storage.Region)
	str("s3-endpoint", &cfg.Storage.Endpoint)
	str("s3-access-key", &cfg.Storage.AccessKey)
	str("s3-secret-key", &cfg.Storage.SecretKey)
	str("log-level", &cfg.Log.Level)
	str("sentry-dsn", &cfg.Log.SentryDSN)
	str("env", &cfg.Log.Environment)
	if c.IsSet("s3-path-style") {
		cfg.Storage.PathStyle = c.Bool("s3-path-style")
	}

	return cfg, cfg.Validate()
}
