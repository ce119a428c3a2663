package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/guard"
)

// SiteConfig holds the settings that shape the site. Store credentials are
// not here: they are read on first store access.
type SiteConfig struct {
	Port         string        `mapstructure:"port"`
	Templates    string        `mapstructure:"templates"`
	StaticDir    string        `mapstructure:"static_dir"`
	ResumePath   string        `mapstructure:"resume_path"`
	OwnerName    string        `mapstructure:"owner_name"`
	ContactDelay time.Duration `mapstructure:"contact_success_delay"`
	AdminPolicy  string        `mapstructure:"admin_policy"`
	SMTP         SMTPConfig    `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to"`
}

func (c SiteConfig) Mail() contact.MailConfig {
	return contact.MailConfig{Host: c.SMTP.Host, Port: c.SMTP.Port, User: c.SMTP.User, Pass: c.SMTP.Pass, To: c.SMTP.To}
}

func (c SiteConfig) Policy() guard.Policy {
	return guard.ParsePolicy(c.AdminPolicy)
}

// loadSiteConfig reads site.yaml from dir when present, then applies
// PORTFOLIO_* overrides. PORT and SMTP_* are honoured for existing deploys.
func loadSiteConfig(dir string) (SiteConfig, error) {
	v := viper.New()
	v.SetConfigName("site")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("port", "8080")
	v.SetDefault("templates", "templates/*")
	v.SetDefault("static_dir", "./static")
	v.SetDefault("resume_path", "./static/resume.pdf")
	v.SetDefault("owner_name", "BENAYAS")
	v.SetDefault("contact_success_delay", contact.DefaultSuccessDelay)
	v.SetDefault("admin_policy", string(guard.PolicyBypass))
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", "")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "")

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	legacy := map[string]string{
		"port":      "PORT",
		"smtp.host": "SMTP_HOST",
		"smtp.port": "SMTP_PORT",
		"smtp.user": "SMTP_USER",
		"smtp.pass": "SMTP_PASS",
		"smtp.to":   "TO_EMAIL",
	}
	for key, env := range legacy {
		prefixed := "PORTFOLIO_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return SiteConfig{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return SiteConfig{}, fmt.Errorf("reading site config: %w", err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("unmarshalling site config: %w", err)
	}
	return cfg, nil
}
